package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/avoronin/docvault/internal/common"
)

type errorResponse struct {
	Detail string `json:"detail"`
}

func (s *Server) writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error(ctx, "error encoding response", "error", err)
	}
}

// writeError maps service errors to status codes with fixed, non-leaking
// bodies. Anything outside the known taxonomy is a server error and gets
// logged with its cause; the client sees only a generic message.
func (s *Server) writeError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrorMissingToken), errors.Is(err, common.ErrorUnauthorized):
		s.writeJSON(ctx, w, http.StatusUnauthorized, errorResponse{Detail: "Could not validate credentials"})
	case errors.Is(err, common.ErrorAlreadyRegistered):
		s.writeJSON(ctx, w, http.StatusBadRequest, errorResponse{Detail: "User already registered"})
	case errors.Is(err, common.ErrorNotFound):
		s.writeJSON(ctx, w, http.StatusNotFound, errorResponse{Detail: "Document not found"})
	case errors.Is(err, common.ErrorAttachmentsNotConfigured):
		s.writeJSON(ctx, w, http.StatusServiceUnavailable, errorResponse{Detail: "Attachments are not available"})
	default:
		s.logger.Error(ctx, "internal error", "error", err)
		s.writeJSON(ctx, w, http.StatusInternalServerError, errorResponse{Detail: "Internal server error"})
	}
}
