package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/quickeats/fulfillment-service/internal/notification"
	"github.com/quickeats/fulfillment-service/internal/pkg/httpx"
	"go.uber.org/zap"
)

type Handler struct {
	svc    *notification.Service
	logger *zap.Logger
}

func NewHandler(svc *notification.Service, log *zap.Logger) *Handler {
	return &Handler{svc: svc, logger: log}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/notifications", h.List).Methods(http.MethodGet)
	r.HandleFunc("/notifications/{notificationID}/read", h.MarkRead).Methods(http.MethodPatch)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := httpx.Actor(w, r, h.logger)
	if !ok {
		return
	}
	list, err := h.svc.List(r.Context(), actor.ID)
	if err != nil {
		httpx.WriteError(w, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, list)
}

func (h *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
	actor, ok := httpx.Actor(w, r, h.logger)
	if !ok {
		return
	}
	if err := h.svc.MarkRead(r.Context(), actor.ID, mux.Vars(r)["notificationID"]); err != nil {
		httpx.WriteError(w, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusNoContent, nil)
}
