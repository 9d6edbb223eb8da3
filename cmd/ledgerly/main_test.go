package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func runApp(t *testing.T, args ...string) string {
	t.Helper()
	t.Setenv("DATABASE_URL", "sqlite:"+filepath.Join(t.TempDir(), "ledger.db"))
	t.Setenv("LOG_LEVEL", "error")

	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	require.NoError(t, app.Run(append([]string{"ledgerly"}, args...)))
	return out.String()
}

func TestMigrateVersion(t *testing.T) {
	out := runApp(t, "migrate", "version")
	require.Contains(t, out, "no migrations applied")
}

func TestSummarize(t *testing.T) {
	out := runApp(t, "summarize", "--date", "2024-03-14", "--days", "3")
	require.True(t, strings.HasPrefix(out, "Rebuilt 0 summary rows for 3 day(s) ending 2024-03-14"), out)
}

func TestHistory(t *testing.T) {
	out := runApp(t, "history", "--user", "7")
	require.Contains(t, out, "TRANSACTION HISTORY - user 7")
	require.Contains(t, out, "No visible transactions")
}

func TestHistory_RequiresUser(t *testing.T) {
	t.Setenv("DATABASE_URL", "sqlite:"+filepath.Join(t.TempDir(), "ledger.db"))
	app := newApp()
	app.Writer = &bytes.Buffer{}
	app.ErrWriter = &bytes.Buffer{}
	require.Error(t, app.Run([]string{"ledgerly", "history"}))
}
