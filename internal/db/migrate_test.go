package db

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	// The ALTER TABLE statement fails with "duplicate column name" on re-runs.
	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	for _, table := range []string{"charts", "bars"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_CreatesIndexes(t *testing.T) {
	db := openTestDB(t)

	for _, idx := range []string{"idx_bars_chart_position", "idx_bars_chart_bundle"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, idx).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
	}
}

func TestMigrate_ForeignKeysEnabled(t *testing.T) {
	db := openTestDB(t)

	var fk int
	require.NoError(t, db.QueryRow(`PRAGMA foreign_keys`).Scan(&fk))
	assert.Equal(t, 1, fk, "foreign keys should be enabled")
}

func TestOpenDB_ForeignKeysOnEveryConnection(t *testing.T) {
	db, err := OpenDB(filepath.Join(t.TempDir(), "fk.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	var conns []*sql.Conn
	for i := 0; i < 3; i++ {
		conn, err := db.Conn(ctx)
		require.NoError(t, err)
		conns = append(conns, conn)

		var fk int
		require.NoError(t, conn.QueryRowContext(ctx, `PRAGMA foreign_keys`).Scan(&fk))
		assert.Equal(t, 1, fk, "connection %d", i)
	}
	for _, c := range conns {
		c.Close()
	}
}

func TestMigrate_ChartNameUniqueIgnoringCase(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO charts (id, name, created_at, updated_at) VALUES ('c1', 'Release', 'x', 'x')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO charts (id, name, created_at, updated_at) VALUES ('c2', 'RELEASE', 'x', 'x')`)
	assert.Error(t, err)
}

func TestMigrate_BarsCascadeOnChartDelete(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO charts (id, name, created_at, updated_at) VALUES ('c1', 'Release', 'x', 'x')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO bars (chart_id, bar_id, position, created_at, updated_at) VALUES ('c1', 'b1', 0, 'x', 'x')`)
	require.NoError(t, err)

	_, err = db.Exec(`DELETE FROM charts WHERE id = 'c1'`)
	require.NoError(t, err)

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM bars`).Scan(&n))
	assert.Equal(t, 0, n)
}

func TestMigrate_BarIDMustNotBeBlank(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO charts (id, name, created_at, updated_at) VALUES ('c1', 'Release', 'x', 'x')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO bars (chart_id, bar_id, position, created_at, updated_at) VALUES ('c1', '  ', 0, 'x', 'x')`)
	assert.Error(t, err)
}
