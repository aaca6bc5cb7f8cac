package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/quickeats/fulfillment-service/internal/menu"
	"github.com/quickeats/fulfillment-service/internal/pkg/httpx"
	"go.uber.org/zap"
)

type Handler struct {
	uc     menu.UseCase
	logger *zap.Logger
}

func NewHandler(uc menu.UseCase, log *zap.Logger) *Handler {
	return &Handler{uc: uc, logger: log}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/restaurants/{restaurantID}/menu", h.ListItems).Methods(http.MethodGet)
	r.HandleFunc("/menu/items/{itemID}", h.GetItem).Methods(http.MethodGet)
	r.HandleFunc("/menu/items/{itemID}/availability", h.SetAvailability).Methods(http.MethodPatch)
}

func (h *Handler) ListItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.uc.ListItems(r.Context(), mux.Vars(r)["restaurantID"])
	if err != nil {
		httpx.WriteError(w, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, items)
}

func (h *Handler) GetItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.uc.GetItem(r.Context(), mux.Vars(r)["itemID"])
	if err != nil {
		httpx.WriteError(w, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, item)
}

type availabilityRequest struct {
	IsAvailable bool `json:"is_available"`
}

func (h *Handler) SetAvailability(w http.ResponseWriter, r *http.Request) {
	actor, ok := httpx.Actor(w, r, h.logger)
	if !ok {
		return
	}

	var req availabilityRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, h.logger, err)
		return
	}

	item, err := h.uc.SetAvailability(r.Context(), actor, mux.Vars(r)["itemID"], req.IsAvailable)
	if err != nil {
		httpx.WriteError(w, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, item)
}
