package handler

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/quickeats/fulfillment-service/internal/apperr"
	"github.com/quickeats/fulfillment-service/internal/pkg/httpx"
	"github.com/quickeats/fulfillment-service/internal/rider"
	"github.com/quickeats/fulfillment-service/internal/rider/dto"
	"go.uber.org/zap"
)

type Handler struct {
	uc       rider.UseCase
	validate *validator.Validate
	logger   *zap.Logger
}

func NewHandler(uc rider.UseCase, log *zap.Logger) *Handler {
	return &Handler{uc: uc, validate: validator.New(), logger: log}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/rider/presence", h.SetOnline).Methods(http.MethodPut)
	r.HandleFunc("/rider/location", h.UpdateLocation).Methods(http.MethodPut)
	r.HandleFunc("/rider/orders/available", h.ListAvailable).Methods(http.MethodGet)
	r.HandleFunc("/rider/orders/current", h.CurrentOrder).Methods(http.MethodGet)
	r.HandleFunc("/rider/orders/{orderID}/accept", h.Accept).Methods(http.MethodPost)
	r.HandleFunc("/orders/{orderID}/rider-location", h.OrderRiderLocation).Methods(http.MethodGet)
}

func (h *Handler) SetOnline(w http.ResponseWriter, r *http.Request) {
	actor, ok := httpx.Actor(w, r, h.logger)
	if !ok {
		return
	}

	var input dto.SetOnlineInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.WriteError(w, h.logger, err)
		return
	}

	p, err := h.uc.SetOnline(r.Context(), actor, &input)
	if err != nil {
		httpx.WriteError(w, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, p)
}

func (h *Handler) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	actor, ok := httpx.Actor(w, r, h.logger)
	if !ok {
		return
	}

	var input dto.LocationInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.WriteError(w, h.logger, err)
		return
	}
	if err := h.validate.Struct(&input); err != nil {
		httpx.WriteError(w, h.logger, apperr.Validation("invalid_body", "%v", err))
		return
	}

	if err := h.uc.UpdateLocation(r.Context(), actor, &input); err != nil {
		httpx.WriteError(w, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) OrderRiderLocation(w http.ResponseWriter, r *http.Request) {
	actor, ok := httpx.Actor(w, r, h.logger)
	if !ok {
		return
	}
	loc, err := h.uc.OrderRiderLocation(r.Context(), actor, mux.Vars(r)["orderID"])
	if err != nil {
		httpx.WriteError(w, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, loc)
}

func (h *Handler) Accept(w http.ResponseWriter, r *http.Request) {
	actor, ok := httpx.Actor(w, r, h.logger)
	if !ok {
		return
	}
	o, err := h.uc.Accept(r.Context(), actor, mux.Vars(r)["orderID"])
	if err != nil {
		httpx.WriteError(w, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, o)
}

func (h *Handler) CurrentOrder(w http.ResponseWriter, r *http.Request) {
	actor, ok := httpx.Actor(w, r, h.logger)
	if !ok {
		return
	}
	o, err := h.uc.CurrentOrder(r.Context(), actor)
	if err != nil {
		httpx.WriteError(w, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, o)
}

func (h *Handler) ListAvailable(w http.ResponseWriter, r *http.Request) {
	actor, ok := httpx.Actor(w, r, h.logger)
	if !ok {
		return
	}
	orders, err := h.uc.ListAvailableOrders(r.Context(), actor)
	if err != nil {
		httpx.WriteError(w, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, orders)
}
