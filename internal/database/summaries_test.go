package database

import (
	"context"
	"testing"
	"time"

	"ledgerly/internal/models"
	"ledgerly/internal/store"

	"github.com/shopspring/decimal"
)

func TestAggregateDailySummaries(t *testing.T) {
	day := models.NewDate(time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC))
	transactions := []models.Transaction{
		{SenderId: alice, ReceiverId: bob, Amount: decimal.RequireFromString("10"), TransactionType: models.TypeSend,
			GasCost: decimal.NewNullDecimal(decimal.RequireFromString("0.5"))},
		{SenderId: bob, ReceiverId: alice, Amount: decimal.RequireFromString("4"), TransactionType: models.TypeBetting},
		{SenderId: carol, ReceiverId: alice, Amount: decimal.RequireFromString("100"), TransactionType: models.TypeFaucet},
	}

	summaries := aggregateDailySummaries(day, transactions)
	if len(summaries) != 3 {
		t.Fatalf("Expected 3 summaries, got %d", len(summaries))
	}

	tests := []struct {
		name          string
		summary       models.TransactionSummary
		userId        models.UserId
		total         int64
		incoming      int64
		outgoing      int64
		totalIncoming string
		totalOutgoing string
		gasFees       string
		net           string
		send          int64
		receive       int64
		faucet        int64
		betting       int64
	}{
		{"alice", summaries[0], alice, 3, 2, 1, "104", "10", "0.5", "93.5", 1, 0, 1, 1},
		{"bob", summaries[1], bob, 2, 1, 1, "10", "4", "0", "6", 0, 1, 0, 1},
		{"carol", summaries[2], carol, 1, 0, 1, "0", "100", "0", "-100", 0, 0, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.summary
			if s.UserId != tt.userId {
				t.Fatalf("Expected user %d, got %d", tt.userId, s.UserId)
			}
			if s.SummaryDate.String() != "2024-03-14" {
				t.Errorf("Expected summary date 2024-03-14, got %s", s.SummaryDate)
			}
			if s.TotalTransactions != tt.total || s.IncomingCount != tt.incoming || s.OutgoingCount != tt.outgoing {
				t.Errorf("Expected counts %d/%d/%d, got %d/%d/%d", tt.total, tt.incoming, tt.outgoing,
					s.TotalTransactions, s.IncomingCount, s.OutgoingCount)
			}
			if !s.TotalIncoming.Equal(decimal.RequireFromString(tt.totalIncoming)) {
				t.Errorf("Expected total incoming %s, got %s", tt.totalIncoming, s.TotalIncoming)
			}
			if !s.TotalOutgoing.Equal(decimal.RequireFromString(tt.totalOutgoing)) {
				t.Errorf("Expected total outgoing %s, got %s", tt.totalOutgoing, s.TotalOutgoing)
			}
			if !s.TotalGasFees.Equal(decimal.RequireFromString(tt.gasFees)) {
				t.Errorf("Expected gas fees %s, got %s", tt.gasFees, s.TotalGasFees)
			}
			if !s.NetAmount.Equal(decimal.RequireFromString(tt.net)) {
				t.Errorf("Expected net amount %s, got %s", tt.net, s.NetAmount)
			}
			if s.SendCount != tt.send || s.ReceiveCount != tt.receive || s.FaucetCount != tt.faucet || s.BettingCount != tt.betting {
				t.Errorf("Expected send/receive/faucet/betting %d/%d/%d/%d, got %d/%d/%d/%d",
					tt.send, tt.receive, tt.faucet, tt.betting,
					s.SendCount, s.ReceiveCount, s.FaucetCount, s.BettingCount)
			}
		})
	}
}

func TestRebuildDailySummaries(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()
	ctx := context.Background()

	// The test clock runs on 2024-03-14
	completed := appendParams(alice, bob, "7.25", "0xsettled")
	mustAppend(t, service, completed)
	err := service.UpdateTransactionStatus(ctx, store.StatusUpdateParams{
		TransactionHash: "0xsettled",
		Status:          models.StatusCompleted,
		GasCost:         decimal.NewNullDecimal(decimal.RequireFromString("0.25")),
	})
	if err != nil {
		t.Fatalf("UpdateTransactionStatus failed: %v", err)
	}
	mustAppend(t, service, appendParams(alice, carol, "1", "0xpending"))

	day, _ := models.ParseDate("2024-03-14")
	written, err := service.RebuildDailySummaries(ctx, day)
	if err != nil {
		t.Fatalf("RebuildDailySummaries failed: %v", err)
	}
	if written != 2 {
		t.Fatalf("Expected 2 summaries written, got %d", written)
	}

	// Rebuilding the same day replaces rather than duplicates
	if _, err := service.RebuildDailySummaries(ctx, day); err != nil {
		t.Fatalf("Second RebuildDailySummaries failed: %v", err)
	}

	since, _ := models.ParseDate("2024-03-01")
	summaries, err := service.GetTransactionSummaries(ctx, alice, since)
	if err != nil {
		t.Fatalf("GetTransactionSummaries failed: %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("Expected 1 summary for alice, got %d", len(summaries))
	}
	got := summaries[0]
	if got.SummaryDate.String() != "2024-03-14" {
		t.Errorf("Expected summary date 2024-03-14, got %s", got.SummaryDate)
	}
	if got.OutgoingCount != 1 || !got.TotalOutgoing.Equal(decimal.RequireFromString("7.25")) {
		t.Errorf("Expected one outgoing of 7.25, got %d of %s", got.OutgoingCount, got.TotalOutgoing)
	}
	if !got.NetAmount.Equal(decimal.RequireFromString("-7.5")) {
		t.Errorf("Expected net amount -7.5, got %s", got.NetAmount)
	}

	// A later cutoff excludes the day
	later, _ := models.ParseDate("2024-03-15")
	summaries, err = service.GetTransactionSummaries(ctx, alice, later)
	if err != nil {
		t.Fatalf("GetTransactionSummaries failed: %v", err)
	}
	if len(summaries) != 0 {
		t.Errorf("Expected no summaries after cutoff, got %d", len(summaries))
	}

	// Another day has nothing to aggregate
	otherDay, _ := models.ParseDate("2024-03-13")
	written, err = service.RebuildDailySummaries(ctx, otherDay)
	if err != nil {
		t.Fatalf("RebuildDailySummaries failed: %v", err)
	}
	if written != 0 {
		t.Errorf("Expected no summaries for an empty day, got %d", written)
	}
}
