package store

import (
	"context"
	"errors"
	"time"

	"ledgerly/internal/models"

	"github.com/shopspring/decimal"
)

// Sentinel errors shared across all backend implementations.
var (
	ErrDuplicateTransaction = errors.New("duplicate transaction")
	ErrTransactionNotFound  = errors.New("transaction not found")
	ErrTerminalStatus       = errors.New("transaction already in a terminal status")
)

// AppendParams contains the fields of a new ledger record.
// A nil TransactionHash is stored as NULL.
type AppendParams struct {
	SenderId        models.UserId
	ReceiverId      models.UserId
	SenderEmail     string
	ReceiverEmail   string
	Amount          decimal.Decimal
	Memo            *string
	TransactionHash *string
	TransactionType models.TransactionType
	Status          models.TransactionStatus
}

// StatusUpdateParams carries a status transition plus the chain metadata reported with it.
// Nil metadata overwrites the stored value with NULL.
type StatusUpdateParams struct {
	TransactionHash     string
	Status              models.TransactionStatus
	Confirmations       int64
	BlockNumber         *int64
	BlockHash           *string
	TransactionIndex    *int64
	GasUsed             *int64
	GasCost             decimal.NullDecimal
	ErrorMessage        *string
	BlockchainTimestamp *time.Time
}

// HistoryFilter selects one page of a user's visible history. An empty Type matches every type.
type HistoryFilter struct {
	UserId models.UserId
	Type   models.TransactionType
	Limit  int
	Offset int
}

// LedgerStore defines the contract that every backend (SQLite, PostgreSQL) must satisfy.
type LedgerStore interface {
	// --- Transactions ---
	AppendTransaction(ctx context.Context, params AppendParams) (int64, error)
	UpdateTransactionStatus(ctx context.Context, params StatusUpdateParams) error
	GetTransactionHistory(ctx context.Context, filter HistoryFilter) ([]models.Transaction, int, error)

	// --- Read models ---
	GetPendingTransactions(ctx context.Context, userId models.UserId) ([]models.PendingTransaction, error)
	GetTransactionSummaries(ctx context.Context, userId models.UserId, since models.Date) ([]models.TransactionSummary, error)
	RebuildDailySummaries(ctx context.Context, day models.Date) (int, error)

	// --- Lifecycle ---
	Ping(ctx context.Context) error
	Close()
}
