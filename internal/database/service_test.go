package database

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"ledgerly/internal/models"
)

func testDatabaseUrl(t *testing.T) string {
	return "sqlite:" + filepath.Join(t.TempDir(), "ledger.db") + "?_busy_timeout=5000"
}

func setupTestDb(t *testing.T) (*Service, func()) {
	cfg := models.DatabaseConfig{
		Url:             testDatabaseUrl(t),
		MaxOpenConns:    4,
		MaxIdleConns:    2,
		ConnMaxLifetime: time.Minute,
		ConnMaxIdleTime: time.Minute,
		PingTimeout:     time.Second,
		AutoMigrate:     true,
	}

	service, err := NewService(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	// Every call to the clock advances one second so ordering is deterministic
	var mu sync.Mutex
	current := time.Date(2024, 3, 14, 9, 0, 0, 0, time.UTC)
	service.now = func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		current = current.Add(time.Second)
		return current
	}

	cleanup := func() {
		service.Close()
	}

	return service, cleanup
}

func TestNewService_InvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  models.DatabaseConfig
	}{
		{"empty url", models.DatabaseConfig{MaxOpenConns: 1, PingTimeout: time.Second}},
		{"no connections", models.DatabaseConfig{Url: "sqlite:x.db", PingTimeout: time.Second}},
		{"negative idle", models.DatabaseConfig{Url: "sqlite:x.db", MaxOpenConns: 1, MaxIdleConns: -1, PingTimeout: time.Second}},
		{"no ping timeout", models.DatabaseConfig{Url: "sqlite:x.db", MaxOpenConns: 1}},
		{"unsupported driver", models.DatabaseConfig{Url: "mysql://root@localhost/ledger", MaxOpenConns: 1, PingTimeout: time.Second}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewService(context.Background(), tt.cfg); err == nil {
				t.Errorf("Expected error for %s, got nil", tt.name)
			}
		})
	}
}

func TestService_Ping(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()

	if err := service.Ping(context.Background()); err != nil {
		t.Fatalf("Ping failed: %v", err)
	}
}

func TestMigrations_UpDownUp(t *testing.T) {
	databaseUrl := testDatabaseUrl(t)

	if err := MigrateUp(databaseUrl); err != nil {
		t.Fatalf("MigrateUp failed: %v", err)
	}
	version, dirty, ok, err := MigrationVersion(databaseUrl)
	if err != nil {
		t.Fatalf("MigrationVersion failed: %v", err)
	}
	if !ok || dirty || version != 3 {
		t.Errorf("Expected clean version 3, got version=%d dirty=%v ok=%v", version, dirty, ok)
	}

	if err := MigrateDown(databaseUrl, 1); err != nil {
		t.Fatalf("MigrateDown failed: %v", err)
	}
	version, _, _, err = MigrationVersion(databaseUrl)
	if err != nil {
		t.Fatalf("MigrationVersion failed: %v", err)
	}
	if version != 2 {
		t.Errorf("Expected version 2 after one step down, got %d", version)
	}

	if err := MigrateDown(databaseUrl, 0); err != nil {
		t.Fatalf("MigrateDown (all) failed: %v", err)
	}
	if _, _, ok, err := MigrationVersion(databaseUrl); err != nil || ok {
		t.Errorf("Expected no applied version, got ok=%v err=%v", ok, err)
	}

	if err := MigrateUp(databaseUrl); err != nil {
		t.Fatalf("Second MigrateUp failed: %v", err)
	}
}
