package database

import (
	"context"
	"fmt"

	"ledgerly/internal/models"

	"go.uber.org/zap"
)

// GetPendingTransactions lists the pending view oldest first. A zero userId lists every sender.
func (s *Service) GetPendingTransactions(ctx context.Context, userId models.UserId) ([]models.PendingTransaction, error) {
	zap.L().Debug("Querying pending transactions", zap.Int64("user_id", int64(userId)))

	pending := []models.PendingTransaction{}
	if err := s.db.SelectContext(ctx, &pending, s.db.Rebind(queryGetPendingTransactions), userId, userId); err != nil {
		zap.L().Error("Failed to query pending transactions",
			zap.Int64("user_id", int64(userId)), zap.Error(err))
		return nil, fmt.Errorf("failed to query pending transactions: %w", err)
	}
	return pending, nil
}
