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
	"time"

	"ledgerly/internal/models"
	"ledgerly/internal/store"

	"github.com/jmoiron/sqlx"
	"github.com/xo/dburl"
	"go.uber.org/zap"
)

// Compile-time check: *Service must satisfy store.LedgerStore.
var _ store.LedgerStore = (*Service)(nil)

type Service struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewService(ctx context.Context, cfg models.DatabaseConfig) (*Service, error) {
	// Validate configuration
	if cfg.Url == "" {
		return nil, fmt.Errorf("database url cannot be empty")
	}
	if cfg.MaxOpenConns <= 0 {
		return nil, fmt.Errorf("max open connections must be positive, got %d", cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns < 0 {
		return nil, fmt.Errorf("max idle connections cannot be negative, got %d", cfg.MaxIdleConns)
	}
	if cfg.PingTimeout <= 0 {
		return nil, fmt.Errorf("ping timeout must be positive, got %v", cfg.PingTimeout)
	}

	u, err := dburl.Parse(cfg.Url)
	if err != nil {
		return nil, fmt.Errorf("invalid database url: %w", err)
	}
	if u.Driver != driverSqlite && u.Driver != driverPostgres {
		return nil, fmt.Errorf("unsupported database driver %q", u.Driver)
	}

	zap.L().Info("Opening database", zap.String("driver", u.Driver), zap.String("url", u.Redacted()))
	db, err := sqlx.Open(u.Driver, u.DSN)
	if err != nil {
		return nil, fmt.Errorf("unable to open database: %w", err)
	}

	// Set connection timeouts and limits
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	// Test connection with timeout
	pingCtx, cancel := context.WithTimeout(ctx, cfg.PingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			zap.L().Warn("Failed to close database after ping failure", zap.Error(closeErr))
		}
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	if cfg.AutoMigrate {
		if err := MigrateUp(cfg.Url); err != nil {
			if closeErr := db.Close(); closeErr != nil {
				zap.L().Warn("Failed to close database after migration failure", zap.Error(closeErr))
			}
			return nil, fmt.Errorf("unable to initialize schema: %w", err)
		}
	} else {
		zap.L().Info("Skipping schema migrations (DB_AUTO_MIGRATE=false)")
	}

	zap.L().Info("Database service initialized successfully")
	return &Service{db: db, now: time.Now}, nil
}

func (s *Service) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Service) Close() {
	if err := s.db.Close(); err != nil {
		zap.L().Warn("Failed to close database connection", zap.Error(err))
	}
}

func (s *Service) timestamp() time.Time {
	return s.now().UTC()
}
