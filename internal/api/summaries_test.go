package api

import (
	"context"
	"errors"
	"testing"

	"ledgerly/internal/models"

	"github.com/stretchr/testify/require"
)

func TestGetPendingTransactions(t *testing.T) {
	fake := &fakeStore{}
	pending, err := newTestService(fake).GetPendingTransactions(context.Background(), 7)
	require.NoError(t, err)
	require.NotNil(t, pending)
	require.Equal(t, models.UserId(7), fake.pendingUser)

	fake = &fakeStore{err: errors.New("no such table: pending_transactions")}
	_, err = newTestService(fake).GetPendingTransactions(context.Background(), 0)
	ledgerErr := requireLedgerError(t, err, CodeStorage)
	require.Equal(t, "Failed to fetch pending transactions", ledgerErr.Message)
}

func TestGetTransactionSummary(t *testing.T) {
	tests := []struct {
		name         string
		days         int
		expectedDays int
		since        string
	}{
		{"default", DefaultSummaryDays, 30, "2024-02-13"},
		{"over maximum", 120, 90, "2023-12-15"},
		{"zero", 0, 1, "2024-03-13"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeStore{}
			summaries, days, err := newTestService(fake).GetTransactionSummary(context.Background(), 7, tt.days)
			require.NoError(t, err)
			require.NotNil(t, summaries)
			require.Equal(t, tt.expectedDays, days)
			require.Equal(t, tt.since, fake.since.String())
		})
	}
}

func TestGetTransactionSummary_MissingUser(t *testing.T) {
	_, _, err := newTestService(&fakeStore{}).GetTransactionSummary(context.Background(), 0, 30)
	ledgerErr := requireLedgerError(t, err, CodeValidation)
	require.Equal(t, "Missing user_id", ledgerErr.Message)
}

func TestRebuildSummaries(t *testing.T) {
	fake := &fakeStore{}
	last, err := models.ParseDate("2024-03-01")
	require.NoError(t, err)

	written, err := newTestService(fake).RebuildSummaries(context.Background(), last, 3)
	require.NoError(t, err)
	require.Equal(t, 6, written)
	require.Len(t, fake.rebuilt, 3)
	require.Equal(t, "2024-02-28", fake.rebuilt[0].String())
	require.Equal(t, "2024-03-01", fake.rebuilt[2].String())

	_, err = newTestService(fake).RebuildSummaries(context.Background(), last, 0)
	requireLedgerError(t, err, CodeValidation)
}
