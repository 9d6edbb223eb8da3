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
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/xo/dburl"
	"go.uber.org/zap"
)

const (
	driverSqlite   = "sqlite3"
	driverPostgres = "postgres"
)

//go:embed migrations
var migrationFiles embed.FS

type migrateLogger struct{}

func (migrateLogger) Printf(format string, v ...interface{}) {
	zap.L().Info(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (migrateLogger) Verbose() bool {
	return false
}

// MigrateUp applies every pending migration for the database behind databaseUrl
func MigrateUp(databaseUrl string) error {
	m, err := newMigrator(databaseUrl)
	if err != nil {
		return err
	}
	defer closeMigrator(m)

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("unable to apply migrations: %w", err)
	}

	version, dirty, _ := m.Version()
	zap.L().Info("Database schema up to date", zap.Uint("version", version), zap.Bool("dirty", dirty))
	return nil
}

// MigrateDown rolls back steps migrations, or all of them when steps <= 0
func MigrateDown(databaseUrl string, steps int) error {
	m, err := newMigrator(databaseUrl)
	if err != nil {
		return err
	}
	defer closeMigrator(m)

	if steps > 0 {
		err = m.Steps(-steps)
	} else {
		err = m.Down()
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("unable to roll back migrations: %w", err)
	}
	return nil
}

// MigrationVersion reports the applied schema version; ok is false on a fresh database
func MigrationVersion(databaseUrl string) (version uint, dirty bool, ok bool, err error) {
	m, err := newMigrator(databaseUrl)
	if err != nil {
		return 0, false, false, err
	}
	defer closeMigrator(m)

	version, dirty, err = m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, false, nil
	}
	if err != nil {
		return 0, false, false, fmt.Errorf("unable to read schema version: %w", err)
	}
	return version, dirty, true, nil
}

// newMigrator opens a dedicated handle: closing the migrator closes the database it was given
func newMigrator(databaseUrl string) (*migrate.Migrate, error) {
	u, err := dburl.Parse(databaseUrl)
	if err != nil {
		return nil, fmt.Errorf("invalid database url: %w", err)
	}

	db, err := sql.Open(u.Driver, u.DSN)
	if err != nil {
		return nil, fmt.Errorf("unable to open database: %w", err)
	}

	var driver migratedb.Driver
	switch u.Driver {
	case driverSqlite:
		driver, err = migratesqlite.WithInstance(db, &migratesqlite.Config{})
	case driverPostgres:
		driver, err = migratepg.WithInstance(db, &migratepg.Config{})
	default:
		err = fmt.Errorf("unsupported database driver %q", u.Driver)
	}
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("unable to prepare migration driver: %w", err)
	}

	source, err := iofs.New(migrationFiles, "migrations/"+u.Driver)
	if err != nil {
		_ = driver.Close()
		return nil, fmt.Errorf("unable to load embedded migrations: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, u.Driver, driver)
	if err != nil {
		_ = driver.Close()
		return nil, fmt.Errorf("unable to create migrator: %w", err)
	}
	m.Log = migrateLogger{}
	return m, nil
}

func closeMigrator(m *migrate.Migrate) {
	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		zap.L().Warn("Failed to close migration source", zap.Error(sourceErr))
	}
	if dbErr != nil {
		zap.L().Warn("Failed to close migration database", zap.Error(dbErr))
	}
}
