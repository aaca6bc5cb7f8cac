package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/quickeats/fulfillment-service/internal/apperr"
	"github.com/quickeats/fulfillment-service/internal/auth"
	"go.uber.org/zap"
)

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// WriteError maps the error taxonomy onto HTTP status codes. Internal
// errors are logged and masked; domain errors pass their message through.
func WriteError(w http.ResponseWriter, log *zap.Logger, err error) {
	var e *apperr.Error
	if !errors.As(err, &e) || e.Kind == apperr.KindInternal {
		log.Error("request failed", zap.Error(err))
		WriteJSON(w, http.StatusInternalServerError, errorBody{Error: "internal error", Code: "internal"})
		return
	}

	status := http.StatusInternalServerError
	switch e.Kind {
	case apperr.KindValidation:
		status = http.StatusBadRequest
	case apperr.KindConflict:
		status = http.StatusConflict
	case apperr.KindAuthorization:
		status = http.StatusForbidden
	case apperr.KindNotFound:
		status = http.StatusNotFound
	}

	WriteJSON(w, status, errorBody{Error: e.Message, Code: e.Code})
}

// Actor pulls the authenticated actor off the request context. Handlers
// sit behind the auth middleware, so a miss means a wiring mistake; the
// request is rejected either way.
func Actor(w http.ResponseWriter, r *http.Request, log *zap.Logger) (auth.Actor, bool) {
	a, ok := auth.ActorFromContext(r.Context())
	if !ok {
		WriteError(w, log, apperr.Authorization("unauthenticated", "missing credentials"))
	}
	return a, ok
}

// DecodeJSON decodes a request body, rejecting unknown fields.
func DecodeJSON(r *http.Request, dest interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		return apperr.Validation("invalid_body", "invalid request body")
	}
	return nil
}
