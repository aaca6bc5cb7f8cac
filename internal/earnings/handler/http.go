package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/quickeats/fulfillment-service/internal/earnings"
	"github.com/quickeats/fulfillment-service/internal/pkg/httpx"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Handler struct {
	uc     earnings.UseCase
	logger *zap.Logger
}

func NewHandler(uc earnings.UseCase, log *zap.Logger) *Handler {
	return &Handler{uc: uc, logger: log}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/earnings", h.Get).Methods(http.MethodGet)
	r.HandleFunc("/earnings/withdrawals", h.ListWithdrawals).Methods(http.MethodGet)
	r.HandleFunc("/earnings/withdrawals", h.RequestWithdrawal).Methods(http.MethodPost)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := httpx.Actor(w, r, h.logger)
	if !ok {
		return
	}
	e, err := h.uc.GetEarnings(r.Context(), actor)
	if err != nil {
		httpx.WriteError(w, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, e)
}

type withdrawalRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

func (h *Handler) RequestWithdrawal(w http.ResponseWriter, r *http.Request) {
	actor, ok := httpx.Actor(w, r, h.logger)
	if !ok {
		return
	}

	var req withdrawalRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, h.logger, err)
		return
	}

	wr, err := h.uc.RequestWithdrawal(r.Context(), actor, req.Amount)
	if err != nil {
		httpx.WriteError(w, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, wr)
}

func (h *Handler) ListWithdrawals(w http.ResponseWriter, r *http.Request) {
	actor, ok := httpx.Actor(w, r, h.logger)
	if !ok {
		return
	}
	list, err := h.uc.ListWithdrawals(r.Context(), actor)
	if err != nil {
		httpx.WriteError(w, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, list)
}
