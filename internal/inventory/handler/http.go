package handler

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/quickeats/fulfillment-service/internal/inventory"
	"github.com/quickeats/fulfillment-service/internal/inventory/dto"
	"github.com/quickeats/fulfillment-service/internal/model"
	"github.com/quickeats/fulfillment-service/internal/pkg/httpx"
	"go.uber.org/zap"
)

type Handler struct {
	uc     inventory.UseCase
	logger *zap.Logger
}

func NewHandler(uc inventory.UseCase, log *zap.Logger) *Handler {
	return &Handler{uc: uc, logger: log}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/inventory/items/{itemID}/adjust", h.AdjustStock).Methods(http.MethodPost)
	r.HandleFunc("/inventory/movements", h.ListMovements).Methods(http.MethodGet)
}

type adjustRequest struct {
	QuantityChange int    `json:"quantity_change"`
	Notes          string `json:"notes"`
}

func (h *Handler) AdjustStock(w http.ResponseWriter, r *http.Request) {
	actor, ok := httpx.Actor(w, r, h.logger)
	if !ok {
		return
	}

	var req adjustRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, h.logger, err)
		return
	}

	item, err := h.uc.AdjustStock(r.Context(), actor, &dto.AdjustStockInput{
		ItemID:         mux.Vars(r)["itemID"],
		QuantityChange: req.QuantityChange,
		Notes:          req.Notes,
	})
	if err != nil {
		httpx.WriteError(w, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, item)
}

type movementsResponse struct {
	Movements []model.StockMovement `json:"movements"`
	Total     int                   `json:"total"`
	Page      int                   `json:"page"`
	PageSize  int                   `json:"page_size"`
}

func (h *Handler) ListMovements(w http.ResponseWriter, r *http.Request) {
	actor, ok := httpx.Actor(w, r, h.logger)
	if !ok {
		return
	}

	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	pageSize, _ := strconv.Atoi(q.Get("page_size"))

	movements, total, err := h.uc.ListMovements(r.Context(), actor, &dto.MovementFilters{
		ItemID:   q.Get("item_id"),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		httpx.WriteError(w, h.logger, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, movementsResponse{
		Movements: movements,
		Total:     total,
		Page:      page,
		PageSize:  pageSize,
	})
}
