package server

import (
	"encoding/json"
	"net/http"

	"ledgerly/internal/api"
	"ledgerly/internal/models"

	"go.uber.org/zap"
)

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zap.L().Warn("Failed to encode response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, models.ErrorResponse{Success: false, Error: message})
}

// writeLedgerError maps err to its status; storage causes are logged, never returned
func (s *Server) writeLedgerError(w http.ResponseWriter, r *http.Request, err error) {
	ledgerErr := api.AsLedgerError(err)
	if ledgerErr.Code == api.CodeStorage {
		zap.L().Error("Request failed",
			zap.String("request_id", requestIdFrom(r.Context())),
			zap.String("action", r.URL.Query().Get("action")),
			zap.Error(ledgerErr.Err))
	} else {
		zap.L().Debug("Request rejected",
			zap.String("request_id", requestIdFrom(r.Context())),
			zap.String("code", string(ledgerErr.Code)),
			zap.String("message", ledgerErr.Message))
	}
	writeError(w, ledgerErr.HTTPStatus(), ledgerErr.Message)
}
