package api

import (
	"context"

	"ledgerly/internal/models"

	"go.uber.org/zap"
)

// GetPendingTransactions lists pending records oldest first, for one sender or all when userId is 0
func (s *LedgerService) GetPendingTransactions(ctx context.Context, userId models.UserId) ([]models.PendingTransaction, error) {
	if userId < 0 {
		return nil, ValidationError("Invalid user_id")
	}

	pending, err := s.store.GetPendingTransactions(ctx, userId)
	if err != nil {
		zap.L().Error("Failed to get pending transactions", zap.Int64("user_id", int64(userId)), zap.Error(err))
		return nil, StorageError("Failed to fetch pending transactions", err)
	}
	return pending, nil
}

// GetTransactionSummary returns the user's daily rollups covering the last days days.
// days is clamped to [1, MaxSummaryDays]; the clamped value is returned alongside.
func (s *LedgerService) GetTransactionSummary(ctx context.Context, userId models.UserId, days int) ([]models.TransactionSummary, int, error) {
	if userId <= 0 {
		return nil, 0, ValidationError("Missing user_id")
	}

	days = clamp(days, 1, MaxSummaryDays)
	since := models.NewDate(s.now().AddDate(0, 0, -days))

	summaries, err := s.store.GetTransactionSummaries(ctx, userId, since)
	if err != nil {
		zap.L().Error("Failed to get transaction summary",
			zap.Int64("user_id", int64(userId)),
			zap.Int("days", days),
			zap.Error(err))
		return nil, 0, StorageError("Failed to fetch summary", err)
	}
	return summaries, days, nil
}

// RebuildSummaries recomputes the daily rollups for the days consecutive days ending on last
func (s *LedgerService) RebuildSummaries(ctx context.Context, last models.Date, days int) (int, error) {
	if days <= 0 {
		return 0, ValidationError("days must be positive")
	}

	written := 0
	for i := days - 1; i >= 0; i-- {
		day := models.NewDate(last.AddDate(0, 0, -i))
		n, err := s.store.RebuildDailySummaries(ctx, day)
		if err != nil {
			zap.L().Error("Failed to rebuild daily summaries", zap.Stringer("day", day), zap.Error(err))
			return written, StorageError("Failed to rebuild summaries for "+day.String(), err)
		}
		written += n
	}
	return written, nil
}
