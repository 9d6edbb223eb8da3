package api

import (
	"context"
	"errors"
	"testing"
	"time"

	"ledgerly/internal/models"
	"ledgerly/internal/store"

	"github.com/stretchr/testify/require"
)

// fakeStore records the last call of each kind and returns canned results
type fakeStore struct {
	appended    *store.AppendParams
	updated     *store.StatusUpdateParams
	filter      *store.HistoryFilter
	pendingUser models.UserId
	since       models.Date
	rebuilt     []models.Date

	nextId  int64
	history []models.Transaction
	total   int
	err     error
}

var _ store.LedgerStore = (*fakeStore)(nil)

func (f *fakeStore) AppendTransaction(_ context.Context, params store.AppendParams) (int64, error) {
	f.appended = &params
	if f.err != nil {
		return 0, f.err
	}
	f.nextId++
	return f.nextId, nil
}

func (f *fakeStore) UpdateTransactionStatus(_ context.Context, params store.StatusUpdateParams) error {
	f.updated = &params
	return f.err
}

func (f *fakeStore) GetTransactionHistory(_ context.Context, filter store.HistoryFilter) ([]models.Transaction, int, error) {
	f.filter = &filter
	return f.history, f.total, f.err
}

func (f *fakeStore) GetPendingTransactions(_ context.Context, userId models.UserId) ([]models.PendingTransaction, error) {
	f.pendingUser = userId
	return []models.PendingTransaction{}, f.err
}

func (f *fakeStore) GetTransactionSummaries(_ context.Context, _ models.UserId, since models.Date) ([]models.TransactionSummary, error) {
	f.since = since
	return []models.TransactionSummary{}, f.err
}

func (f *fakeStore) RebuildDailySummaries(_ context.Context, day models.Date) (int, error) {
	f.rebuilt = append(f.rebuilt, day)
	return 2, f.err
}

func (f *fakeStore) Ping(context.Context) error {
	return f.err
}

func (f *fakeStore) Close() {}

func newTestService(fake *fakeStore) *LedgerService {
	service := NewLedgerService(fake)
	service.now = func() time.Time {
		return time.Date(2024, 3, 14, 15, 30, 0, 0, time.UTC)
	}
	return service
}

func requireLedgerError(t *testing.T, err error, code ErrorCode) *LedgerError {
	t.Helper()
	var ledgerErr *LedgerError
	require.ErrorAs(t, err, &ledgerErr)
	require.Equal(t, code, ledgerErr.Code)
	return ledgerErr
}

func TestHealthCheck(t *testing.T) {
	fake := &fakeStore{}
	require.NoError(t, newTestService(fake).HealthCheck(context.Background()))

	fake.err = errors.New("database is locked")
	require.Error(t, newTestService(fake).HealthCheck(context.Background()))
}

func TestLedgerError_HTTPStatus(t *testing.T) {
	tests := []struct {
		err    *LedgerError
		status int
	}{
		{ValidationError("bad"), 400},
		{NotFoundError("missing", nil), 404},
		{ConflictError("taken", nil), 409},
		{MethodNotAllowedError("nope"), 405},
		{StorageError("broken", errors.New("disk full")), 500},
	}

	for _, tt := range tests {
		t.Run(string(tt.err.Code), func(t *testing.T) {
			require.Equal(t, tt.status, tt.err.HTTPStatus())
		})
	}
}

func TestAsLedgerError(t *testing.T) {
	cause := errors.New("boom")
	ledgerErr := AsLedgerError(cause)
	require.Equal(t, CodeStorage, ledgerErr.Code)
	require.ErrorIs(t, ledgerErr, cause)

	conflict := ConflictError("taken", store.ErrDuplicateTransaction)
	require.Same(t, conflict, AsLedgerError(conflict))
	require.ErrorIs(t, conflict, store.ErrDuplicateTransaction)
}
