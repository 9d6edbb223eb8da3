package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"ledgerly/internal/models"
	"ledgerly/internal/store"

	"go.uber.org/zap"
)

// AppendTransaction inserts one record and returns its store-assigned id
func (s *Service) AppendTransaction(ctx context.Context, params store.AppendParams) (int64, error) {
	zap.L().Debug("Appending transaction",
		zap.Int64("sender_id", int64(params.SenderId)),
		zap.Int64("receiver_id", int64(params.ReceiverId)),
		zap.String("amount", params.Amount.String()),
		zap.String("type", string(params.TransactionType)))

	now := s.timestamp()
	var id int64
	err := s.db.QueryRowxContext(ctx, s.db.Rebind(queryInsertTransaction),
		params.SenderId, params.ReceiverId, params.SenderEmail, params.ReceiverEmail,
		params.Amount, params.Memo, params.TransactionHash, params.TransactionType, params.Status,
		now, now).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) && params.TransactionHash != nil {
			zap.L().Warn("Duplicate transaction hash detected",
				zap.Stringp("transaction_hash", params.TransactionHash))
			return 0, fmt.Errorf("%w: transaction_hash %s already exists", store.ErrDuplicateTransaction, *params.TransactionHash)
		}
		zap.L().Error("Failed to insert transaction", zap.Error(err))
		return 0, fmt.Errorf("failed to insert transaction: %w", err)
	}

	zap.L().Info("Transaction recorded",
		zap.Int64("transaction_id", id),
		zap.Int64("sender_id", int64(params.SenderId)),
		zap.Int64("receiver_id", int64(params.ReceiverId)),
		zap.String("amount", params.Amount.String()))
	return id, nil
}

// UpdateTransactionStatus applies a status transition addressed by chain hash.
// Returns store.ErrTransactionNotFound when no record carries the hash and
// store.ErrTerminalStatus when the record already settled on a different status.
func (s *Service) UpdateTransactionStatus(ctx context.Context, params store.StatusUpdateParams) error {
	zap.L().Debug("Updating transaction status",
		zap.String("transaction_hash", params.TransactionHash),
		zap.String("status", string(params.Status)))

	result, err := s.db.ExecContext(ctx, s.db.Rebind(queryUpdateTransactionStatus),
		params.Status, params.Confirmations, params.BlockNumber, params.BlockHash, params.TransactionIndex,
		params.GasUsed, params.GasCost, params.ErrorMessage, params.BlockchainTimestamp, s.timestamp(),
		params.TransactionHash, params.Status)
	if err != nil {
		zap.L().Error("Failed to update transaction status",
			zap.String("transaction_hash", params.TransactionHash), zap.Error(err))
		return fmt.Errorf("failed to update transaction status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected > 0 {
		zap.L().Info("Transaction status updated",
			zap.String("transaction_hash", params.TransactionHash),
			zap.String("status", string(params.Status)))
		return nil
	}

	// Nothing matched: tell a missing hash apart from a settled record
	var current models.TransactionStatus
	err = s.db.QueryRowxContext(ctx, s.db.Rebind(queryGetTransactionStatusByHash), params.TransactionHash).Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: transaction_hash %s", store.ErrTransactionNotFound, params.TransactionHash)
	}
	if err != nil {
		return fmt.Errorf("failed to look up transaction status: %w", err)
	}

	zap.L().Warn("Rejected transition out of terminal status",
		zap.String("transaction_hash", params.TransactionHash),
		zap.String("current_status", string(current)),
		zap.String("requested_status", string(params.Status)))
	return fmt.Errorf("%w: %s is %s, cannot become %s", store.ErrTerminalStatus, params.TransactionHash, current, params.Status)
}

// GetTransactionHistory returns one page of the user's visible history and the
// number of visible records, both read from the same snapshot
func (s *Service) GetTransactionHistory(ctx context.Context, filter store.HistoryFilter) ([]models.Transaction, int, error) {
	zap.L().Debug("Querying transaction history",
		zap.Int64("user_id", int64(filter.UserId)),
		zap.String("type", string(filter.Type)),
		zap.Int("limit", filter.Limit),
		zap.Int("offset", filter.Offset))

	tx, err := s.db.BeginTxx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to begin read transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	visibilityArgs := []interface{}{filter.UserId, filter.UserId, filter.UserId, filter.Type, filter.Type}

	transactions := []models.Transaction{}
	pageArgs := append(append([]interface{}{}, visibilityArgs...), filter.Limit, filter.Offset)
	if err := tx.SelectContext(ctx, &transactions, tx.Rebind(queryGetTransactionHistory), pageArgs...); err != nil {
		zap.L().Error("Failed to query transaction history",
			zap.Int64("user_id", int64(filter.UserId)), zap.Error(err))
		return nil, 0, fmt.Errorf("failed to query transaction history: %w", err)
	}

	var total int
	if err := tx.GetContext(ctx, &total, tx.Rebind(queryCountTransactionHistory), visibilityArgs...); err != nil {
		zap.L().Error("Failed to count transaction history",
			zap.Int64("user_id", int64(filter.UserId)), zap.Error(err))
		return nil, 0, fmt.Errorf("failed to count transaction history: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, 0, fmt.Errorf("failed to finish read transaction: %w", err)
	}
	return transactions, total, nil
}
