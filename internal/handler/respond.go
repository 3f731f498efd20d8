// Package handler holds the JSON response helpers shared by the
// storefront, api and admin handlers.
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/vitrinebr/vitrine/internal/domain"
	"github.com/vitrinebr/vitrine/internal/middleware"
)

// RespondJSON writes a JSON response with the given status.
func RespondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

// RespondRaw relays an already-encoded JSON body verbatim.
func RespondRaw(w http.ResponseWriter, status int, body json.RawMessage) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
}

// RespondError maps a domain error to an HTTP status and writes the
// user-facing message as {"error": message}. Internal errors are logged
// with the underlying cause; the client only sees the generic message.
func RespondError(w http.ResponseWriter, r *http.Request, err error) {
	code := domain.ErrorCode(err)
	status := errorCodeToHTTPStatus(code)

	logger := middleware.GetLogger(r.Context())
	attrs := []any{"error", err.Error(), "code", code, "status", status}
	if status >= 500 {
		logger.Error("request failed", attrs...)
	} else {
		logger.Info("request rejected", attrs...)
	}

	RespondJSON(w, status, map[string]string{"error": domain.ErrorMessage(err)})
}

func errorCodeToHTTPStatus(code string) int {
	switch code {
	case domain.EINVALID:
		return http.StatusBadRequest
	case domain.ENOTFOUND:
		return http.StatusNotFound
	case domain.EUNAVAILABLE:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
