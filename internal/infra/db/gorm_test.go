package db_test

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"backoffice/internal/infra/db"
	"backoffice/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_WritesSQLThroughSlog(t *testing.T) {
	var buf bytes.Buffer
	log := logging.NewWithWriter(&buf, "debug")

	gdb, err := db.OpenSQLite(filepath.Join(t.TempDir(), "log.db"), db.NewLogger(log, "debug"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(gdb) })

	ctx := logging.WithRequestID(context.Background(), "req-7")
	require.NoError(t, gdb.WithContext(ctx).Exec("SELECT 1").Error)

	var found map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var rec map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &rec), line)
		if rec["request_id"] == "req-7" {
			found = rec
		}
	}
	require.NotNil(t, found, buf.String())
	assert.Equal(t, "SQL executed", found["msg"])
	trace, _ := found["trace"].(map[string]any)
	assert.Equal(t, "SELECT 1", trace["sql"])
}

func TestNewLogger_QuietAboveDebug(t *testing.T) {
	var buf bytes.Buffer
	log := logging.NewWithWriter(&buf, "info")

	gdb, err := db.OpenSQLite(filepath.Join(t.TempDir(), "quiet.db"), db.NewLogger(log, "info"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(gdb) })

	require.NoError(t, gdb.Exec("SELECT 1").Error)
	assert.NotContains(t, buf.String(), "SELECT 1")
}
