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

package api

import (
	"context"
	"fmt"
	"time"

	"ledgerly/internal/store"
)

const (
	DefaultHistoryLimit = 50
	MaxHistoryLimit     = 100
	DefaultSummaryDays  = 30
	MaxSummaryDays      = 90

	// NUMERIC(36, 18) on PostgreSQL
	maxAmountScale = 18
)

// LedgerService validates requests and applies them to the ledger store
type LedgerService struct {
	store store.LedgerStore
	now   func() time.Time
}

func NewLedgerService(ledgerStore store.LedgerStore) *LedgerService {
	return &LedgerService{
		store: ledgerStore,
		now:   time.Now,
	}
}

func (s *LedgerService) HealthCheck(ctx context.Context) error {
	if err := s.store.Ping(ctx); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}
	return nil
}
