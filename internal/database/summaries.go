/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package database

import (
	"context"
	"fmt"
	"sort"

	"ledgerly/internal/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// GetTransactionSummaries returns the user's daily rollups on or after since, newest first
func (s *Service) GetTransactionSummaries(ctx context.Context, userId models.UserId, since models.Date) ([]models.TransactionSummary, error) {
	zap.L().Debug("Querying transaction summaries",
		zap.Int64("user_id", int64(userId)),
		zap.Stringer("since", since))

	summaries := []models.TransactionSummary{}
	if err := s.db.SelectContext(ctx, &summaries, s.db.Rebind(queryGetTransactionSummaries), userId, since); err != nil {
		zap.L().Error("Failed to query transaction summaries",
			zap.Int64("user_id", int64(userId)), zap.Error(err))
		return nil, fmt.Errorf("failed to query transaction summaries: %w", err)
	}
	return summaries, nil
}

// RebuildDailySummaries recomputes every user's rollup for day from the completed
// transactions created within it and replaces the stored rows atomically.
// Returns the number of summary rows written.
func (s *Service) RebuildDailySummaries(ctx context.Context, day models.Date) (int, error) {
	start := models.NewDate(day.Time).Time
	end := start.AddDate(0, 0, 1)

	zap.L().Info("Rebuilding daily summaries", zap.Stringer("day", day))

	completed := []models.Transaction{}
	if err := s.db.SelectContext(ctx, &completed, s.db.Rebind(queryGetCompletedTransactionsBetween), start, end); err != nil {
		zap.L().Error("Failed to load completed transactions", zap.Stringer("day", day), zap.Error(err))
		return 0, fmt.Errorf("failed to load completed transactions: %w", err)
	}

	summaries := aggregateDailySummaries(day, completed)

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, tx.Rebind(queryDeleteTransactionSummariesForDay), models.NewDate(start)); err != nil {
		return 0, fmt.Errorf("failed to clear summaries for %s: %w", day, err)
	}
	for _, summary := range summaries {
		if _, err := tx.NamedExecContext(ctx, queryInsertTransactionSummary, summary); err != nil {
			return 0, fmt.Errorf("failed to insert summary for user %d: %w", summary.UserId, err)
		}
	}

	if err := tx.Commit(); err != nil {
		zap.L().Error("Failed to commit daily summaries", zap.Stringer("day", day), zap.Error(err))
		return 0, fmt.Errorf("failed to commit summaries: %w", err)
	}

	zap.L().Info("Daily summaries rebuilt",
		zap.Stringer("day", day),
		zap.Int("transactions", len(completed)),
		zap.Int("summaries", len(summaries)))
	return len(summaries), nil
}

// aggregateDailySummaries folds completed transactions into one rollup per participant.
// The sender's side is outgoing and carries the gas cost; the receiver's side is incoming,
// where a send counts as a receive.
func aggregateDailySummaries(day models.Date, transactions []models.Transaction) []models.TransactionSummary {
	byUser := make(map[models.UserId]*models.TransactionSummary)
	summaryFor := func(userId models.UserId) *models.TransactionSummary {
		summary, ok := byUser[userId]
		if !ok {
			summary = &models.TransactionSummary{
				UserId:        userId,
				SummaryDate:   models.NewDate(day.Time),
				TotalIncoming: decimal.Zero,
				TotalOutgoing: decimal.Zero,
				TotalGasFees:  decimal.Zero,
				NetAmount:     decimal.Zero,
			}
			byUser[userId] = summary
		}
		return summary
	}

	for _, t := range transactions {
		outgoing := summaryFor(t.SenderId)
		outgoing.TotalTransactions++
		outgoing.OutgoingCount++
		outgoing.TotalOutgoing = outgoing.TotalOutgoing.Add(t.Amount)
		if t.GasCost.Valid {
			outgoing.TotalGasFees = outgoing.TotalGasFees.Add(t.GasCost.Decimal)
		}
		countType(outgoing, t.TransactionType)

		incoming := summaryFor(t.ReceiverId)
		incoming.TotalTransactions++
		incoming.IncomingCount++
		incoming.TotalIncoming = incoming.TotalIncoming.Add(t.Amount)
		if t.TransactionType == models.TypeSend {
			countType(incoming, models.TypeReceive)
		} else {
			countType(incoming, t.TransactionType)
		}
	}

	summaries := make([]models.TransactionSummary, 0, len(byUser))
	for _, summary := range byUser {
		summary.NetAmount = summary.TotalIncoming.Sub(summary.TotalOutgoing).Sub(summary.TotalGasFees)
		summaries = append(summaries, *summary)
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].UserId < summaries[j].UserId
	})
	return summaries
}

func countType(summary *models.TransactionSummary, transactionType models.TransactionType) {
	switch transactionType {
	case models.TypeSend:
		summary.SendCount++
	case models.TypeReceive:
		summary.ReceiveCount++
	case models.TypeFaucet:
		summary.FaucetCount++
	case models.TypeBetting:
		summary.BettingCount++
	case models.TypeContract:
		summary.ContractCount++
	}
}
