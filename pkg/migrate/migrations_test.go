package migrate

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readMigration(t *testing.T, suffix string) string {
	t.Helper()
	matches, err := fs.Glob(embedded, Dir+"/*_"+suffix+".sql")
	require.NoError(t, err)
	require.Len(t, matches, 1, "migración %s", suffix)
	data, err := fs.ReadFile(embedded, matches[0])
	require.NoError(t, err)
	return string(data)
}

func TestMigrations_TodasTienenUpYDown(t *testing.T) {
	files, err := fs.Glob(embedded, Dir+"/*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, files)
	for _, f := range files {
		data, err := fs.ReadFile(embedded, f)
		require.NoError(t, err)
		assert.Contains(t, string(data), "-- +goose Up", f)
		assert.Contains(t, string(data), "-- +goose Down", f)
	}
}

func TestMigrations_LocationsSembradas(t *testing.T) {
	content := readMigration(t, "create_locations")
	for _, sub := range []string{
		"CHECK (kind IN ('vendor', 'internal', 'customer'))",
		"'Partners/Vendors', 'vendor'",
		"'WH/Stock', 'internal'",
		"'Partners/Customers', 'customer'",
	} {
		assert.True(t, strings.Contains(content, sub), "falta %q", sub)
	}
}

func TestMigrations_StockMovesRestricciones(t *testing.T) {
	content := readMigration(t, "create_stock_moves")
	for _, sub := range []string{
		"REFERENCES products(id) ON DELETE RESTRICT",
		"CHECK (type = 'adjustment' OR quantity > 0)",
		"CHECK ((status = 'done') = (done_at IS NOT NULL))",
		"DROP TABLE IF EXISTS stock_moves",
	} {
		assert.True(t, strings.Contains(content, sub), "falta %q", sub)
	}
}
