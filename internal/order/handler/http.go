package handler

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/quickeats/fulfillment-service/internal/apperr"
	"github.com/quickeats/fulfillment-service/internal/model"
	"github.com/quickeats/fulfillment-service/internal/order"
	"github.com/quickeats/fulfillment-service/internal/order/dto"
	"github.com/quickeats/fulfillment-service/internal/pkg/httpx"
	"go.uber.org/zap"
)

type Handler struct {
	uc       order.UseCase
	validate *validator.Validate
	logger   *zap.Logger
}

func NewHandler(uc order.UseCase, log *zap.Logger) *Handler {
	return &Handler{uc: uc, validate: validator.New(), logger: log}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/orders/checkout", h.Checkout).Methods(http.MethodPost)
	r.HandleFunc("/orders", h.ListMine).Methods(http.MethodGet)
	r.HandleFunc("/restaurant/orders", h.ListRestaurantQueue).Methods(http.MethodGet)
	r.HandleFunc("/orders/{orderID}", h.Get).Methods(http.MethodGet)
	r.HandleFunc("/orders/{orderID}/status", h.Transition).Methods(http.MethodPatch)
	r.HandleFunc("/orders/{orderID}/review", h.AddReview).Methods(http.MethodPost)
	r.HandleFunc("/orders/{orderID}/chat", h.ListChat).Methods(http.MethodGet)
	r.HandleFunc("/orders/{orderID}/chat", h.SendChat).Methods(http.MethodPost)
}

func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	actor, ok := httpx.Actor(w, r, h.logger)
	if !ok {
		return
	}

	var input dto.CheckoutInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.WriteError(w, h.logger, err)
		return
	}
	if err := h.validate.Struct(&input); err != nil {
		httpx.WriteError(w, h.logger, apperr.Validation("invalid_body", "%v", err))
		return
	}

	o, err := h.uc.Checkout(r.Context(), actor, &input)
	if err != nil {
		httpx.WriteError(w, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, o)
}

type statusUpdateRequest struct {
	Status          string `json:"status" validate:"required"`
	PrepTimeMinutes *int   `json:"prep_time_minutes"`
}

func (h *Handler) Transition(w http.ResponseWriter, r *http.Request) {
	actor, ok := httpx.Actor(w, r, h.logger)
	if !ok {
		return
	}

	var req statusUpdateRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, h.logger, err)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		httpx.WriteError(w, h.logger, apperr.Validation("invalid_body", "%v", err))
		return
	}

	o, err := h.uc.Transition(r.Context(), actor, mux.Vars(r)["orderID"],
		model.OrderStatus(req.Status), &dto.TransitionInput{PrepTimeMinutes: req.PrepTimeMinutes})
	if err != nil {
		httpx.WriteError(w, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, o)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := httpx.Actor(w, r, h.logger)
	if !ok {
		return
	}
	o, err := h.uc.GetOrder(r.Context(), actor, mux.Vars(r)["orderID"])
	if err != nil {
		httpx.WriteError(w, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, o)
}

func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	actor, ok := httpx.Actor(w, r, h.logger)
	if !ok {
		return
	}
	orders, err := h.uc.ListMine(r.Context(), actor)
	if err != nil {
		httpx.WriteError(w, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, orders)
}

func (h *Handler) ListRestaurantQueue(w http.ResponseWriter, r *http.Request) {
	actor, ok := httpx.Actor(w, r, h.logger)
	if !ok {
		return
	}
	orders, err := h.uc.ListRestaurantQueue(r.Context(), actor, r.URL.Query().Get("status"))
	if err != nil {
		httpx.WriteError(w, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, orders)
}

func (h *Handler) AddReview(w http.ResponseWriter, r *http.Request) {
	actor, ok := httpx.Actor(w, r, h.logger)
	if !ok {
		return
	}

	var input dto.ReviewInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.WriteError(w, h.logger, err)
		return
	}
	if err := h.validate.Struct(&input); err != nil {
		httpx.WriteError(w, h.logger, apperr.Validation("invalid_body", "%v", err))
		return
	}

	rev, err := h.uc.AddReview(r.Context(), actor, mux.Vars(r)["orderID"], &input)
	if err != nil {
		httpx.WriteError(w, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, rev)
}

func (h *Handler) ListChat(w http.ResponseWriter, r *http.Request) {
	actor, ok := httpx.Actor(w, r, h.logger)
	if !ok {
		return
	}
	msgs, err := h.uc.ListChat(r.Context(), actor, mux.Vars(r)["orderID"])
	if err != nil {
		httpx.WriteError(w, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, msgs)
}

func (h *Handler) SendChat(w http.ResponseWriter, r *http.Request) {
	actor, ok := httpx.Actor(w, r, h.logger)
	if !ok {
		return
	}

	var input dto.ChatInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.WriteError(w, h.logger, err)
		return
	}
	if err := h.validate.Struct(&input); err != nil {
		httpx.WriteError(w, h.logger, apperr.Validation("invalid_body", "%v", err))
		return
	}

	m, err := h.uc.SendChat(r.Context(), actor, mux.Vars(r)["orderID"], &input)
	if err != nil {
		httpx.WriteError(w, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, m)
}
