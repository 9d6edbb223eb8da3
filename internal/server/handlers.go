package server

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"ledgerly/internal/api"
	"ledgerly/internal/models"
)

func (s *Server) recordTransaction(w http.ResponseWriter, r *http.Request) {
	var req models.RecordTransactionRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeLedgerError(w, r, err)
		return
	}

	id, err := s.ledger.RecordTransaction(r.Context(), req)
	if err != nil {
		s.writeLedgerError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.RecordTransactionResponse{
		Success:       true,
		TransactionId: id,
		Message:       "Transaction recorded successfully",
	})
}

func (s *Server) updateTransactionStatus(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateStatusRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeLedgerError(w, r, err)
		return
	}

	if err := s.ledger.UpdateTransactionStatus(r.Context(), req); err != nil {
		s.writeLedgerError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.MessageResponse{
		Success: true,
		Message: "Transaction status updated successfully",
	})
}

func (s *Server) getTransactionHistory(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	userId, err := parseUserId(query)
	if err != nil {
		s.writeLedgerError(w, r, err)
		return
	}
	limit, err := parseInt(query, "limit", api.DefaultHistoryLimit)
	if err != nil {
		s.writeLedgerError(w, r, err)
		return
	}
	offset, err := parseInt(query, "offset", 0)
	if err != nil {
		s.writeLedgerError(w, r, err)
		return
	}

	page, err := s.ledger.GetTransactionHistory(r.Context(), models.HistoryQuery{
		UserId:        userId,
		WalletAddress: query.Get("wallet_address"),
		Limit:         limit,
		Offset:        offset,
		Type:          query.Get("type"),
	})
	if err != nil {
		s.writeLedgerError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.HistoryResponse{
		Success:      true,
		Transactions: page.Transactions,
		Total:        page.Total,
		Limit:        page.Limit,
		Offset:       page.Offset,
	})
}

func (s *Server) getPendingTransactions(w http.ResponseWriter, r *http.Request) {
	userId, err := parseUserId(r.URL.Query())
	if err != nil {
		s.writeLedgerError(w, r, err)
		return
	}

	pending, err := s.ledger.GetPendingTransactions(r.Context(), userId)
	if err != nil {
		s.writeLedgerError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.PendingResponse{
		Success:             true,
		PendingTransactions: pending,
	})
}

func (s *Server) getTransactionSummary(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	userId, err := parseUserId(query)
	if err != nil {
		s.writeLedgerError(w, r, err)
		return
	}
	days, err := parseInt(query, "days", api.DefaultSummaryDays)
	if err != nil {
		s.writeLedgerError(w, r, err)
		return
	}

	summaries, days, err := s.ledger.GetTransactionSummary(r.Context(), userId, days)
	if err != nil {
		s.writeLedgerError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.SummaryResponse{
		Success:   true,
		Summaries: summaries,
		Days:      days,
	})
}

func decodeBody(r *http.Request, dst interface{}) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return api.ValidationError("Invalid JSON body: %v", err)
	}
	return nil
}

func parseUserId(query url.Values) (models.UserId, error) {
	userId, err := models.ParseUserId(query.Get("user_id"))
	if err != nil {
		return 0, api.ValidationError("Invalid user_id: %s", query.Get("user_id"))
	}
	return userId, nil
}

func parseInt(query url.Values, key string, defaultValue int) (int, error) {
	raw := query.Get(key)
	if raw == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, api.ValidationError("Invalid %s: %s", key, raw)
	}
	return value, nil
}
