package handler

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/quickeats/fulfillment-service/internal/apperr"
	"github.com/quickeats/fulfillment-service/internal/cart"
	"github.com/quickeats/fulfillment-service/internal/cart/dto"
	"github.com/quickeats/fulfillment-service/internal/pkg/httpx"
	"go.uber.org/zap"
)

type Handler struct {
	uc       cart.UseCase
	validate *validator.Validate
	logger   *zap.Logger
}

func NewHandler(uc cart.UseCase, log *zap.Logger) *Handler {
	return &Handler{uc: uc, validate: validator.New(), logger: log}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/cart", h.Get).Methods(http.MethodGet)
	r.HandleFunc("/cart", h.Clear).Methods(http.MethodDelete)
	r.HandleFunc("/cart/items", h.AddItem).Methods(http.MethodPost)
	r.HandleFunc("/cart/items/{lineID}", h.UpdateLine).Methods(http.MethodPatch)
	r.HandleFunc("/cart/items/{lineID}", h.RemoveLine).Methods(http.MethodDelete)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := httpx.Actor(w, r, h.logger)
	if !ok {
		return
	}
	view, err := h.uc.Get(r.Context(), actor)
	if err != nil {
		httpx.WriteError(w, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, view)
}

func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	actor, ok := httpx.Actor(w, r, h.logger)
	if !ok {
		return
	}

	var input dto.AddItemInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.WriteError(w, h.logger, err)
		return
	}
	if err := h.validate.Struct(&input); err != nil {
		httpx.WriteError(w, h.logger, apperr.Validation("invalid_body", "%v", err))
		return
	}

	line, err := h.uc.AddItem(r.Context(), actor, &input)
	if err != nil {
		httpx.WriteError(w, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, line)
}

func (h *Handler) UpdateLine(w http.ResponseWriter, r *http.Request) {
	actor, ok := httpx.Actor(w, r, h.logger)
	if !ok {
		return
	}

	var input dto.UpdateLineInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.WriteError(w, h.logger, err)
		return
	}

	lineID := mux.Vars(r)["lineID"]
	if err := h.uc.UpdateLine(r.Context(), actor, lineID, input.Quantity); err != nil {
		httpx.WriteError(w, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) RemoveLine(w http.ResponseWriter, r *http.Request) {
	actor, ok := httpx.Actor(w, r, h.logger)
	if !ok {
		return
	}
	if err := h.uc.RemoveLine(r.Context(), actor, mux.Vars(r)["lineID"]); err != nil {
		httpx.WriteError(w, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) Clear(w http.ResponseWriter, r *http.Request) {
	actor, ok := httpx.Actor(w, r, h.logger)
	if !ok {
		return
	}
	if err := h.uc.Clear(r.Context(), actor); err != nil {
		httpx.WriteError(w, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusNoContent, nil)
}
