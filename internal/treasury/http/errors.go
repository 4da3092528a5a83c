package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/treasury/internal/treasury/service"
	"github.com/aussiebroadwan/treasury/pkg/httpx"
	"github.com/aussiebroadwan/treasury/pkg/slogx"
	"github.com/aussiebroadwan/treasury/pkg/treasurysdk"
)

// writeServiceError maps a service error onto the JSON error body. Anything
// unclassified is a persistence failure: it is logged and hidden behind a
// generic 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		httpx.WriteError(w, http.StatusUnauthorized, treasurysdk.ErrorCodeInvalidToken, err.Error())
	case errors.Is(err, service.ErrForbidden):
		httpx.WriteError(w, http.StatusForbidden, treasurysdk.ErrorCodeAccessDenied, err.Error())
	case errors.Is(err, service.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, treasurysdk.ErrorCodeNotFound, err.Error())
	case errors.Is(err, service.ErrConflict):
		httpx.WriteError(w, http.StatusConflict, treasurysdk.ErrorCodeConflict, err.Error())
	case errors.Is(err, service.ErrValidation):
		httpx.WriteError(w, http.StatusBadRequest, treasurysdk.ErrorCodeInvalidRequest, err.Error())
	default:
		slogx.FromContext(r.Context()).Error("request failed", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, treasurysdk.ErrorCodeServerError, "internal server error")
	}
}

func writeBadRequest(w http.ResponseWriter, desc string) {
	httpx.WriteError(w, http.StatusBadRequest, treasurysdk.ErrorCodeInvalidRequest, desc)
}

func writeChanged(w http.ResponseWriter, changed bool) {
	httpx.WriteJSON(w, http.StatusOK, treasurysdk.ChangedResponse{Changed: changed})
}

func writeCreated(w http.ResponseWriter, id string) {
	httpx.WriteJSON(w, http.StatusCreated, treasurysdk.CreatedResponse{ID: id})
}
