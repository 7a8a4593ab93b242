package playerhandlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	playerservice "github.com/bettercodepaul/Skat/app/modules/player/application"
	"github.com/bettercodepaul/Skat/internal/observability/attr"
)

const (
	codeNotFound   = "not_found"
	codeConflict   = "conflict"
	codeBadRequest = "bad_request"
	codeInternal   = "internal_error"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}

func badRequest(w http.ResponseWriter, field, message string) {
	writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: codeBadRequest, Message: message, Field: field})
}

// writeError maps service failures onto status codes. Anything that is not a
// domain failure is logged and reported as an opaque 500.
func (h *PlayerHandlers) writeError(ctx context.Context, w http.ResponseWriter, err error) {
	var fe *playerservice.FieldError
	if errors.As(err, &fe) {
		resp := ErrorResponse{Message: fe.Message, Field: fe.Field}
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, playerservice.ErrNotFound):
			status, resp.Error = http.StatusNotFound, codeNotFound
		case errors.Is(err, playerservice.ErrConflict):
			status, resp.Error = http.StatusConflict, codeConflict
		case errors.Is(err, playerservice.ErrInvalidInput):
			status, resp.Error = http.StatusBadRequest, codeBadRequest
		default:
			resp = ErrorResponse{Error: codeInternal, Message: "internal server error"}
		}
		writeJSON(w, status, resp)
		return
	}

	h.logger.ErrorContext(ctx, "Player request failed",
		attr.ExtractCorrelationID(ctx),
		attr.Error(err),
	)
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: codeInternal, Message: "internal server error"})
}
