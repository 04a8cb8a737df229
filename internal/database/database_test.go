package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate(t *testing.T) {
	t.Run("applies migrations once", func(t *testing.T) {
		db, err := Open(filepath.Join(t.TempDir(), "test.db"))
		require.NoError(t, err)
		t.Cleanup(func() { db.Close() })

		ctx := context.Background()

		applied, err := Migrate(ctx, db)
		require.NoError(t, err)
		assert.Equal(t, 1, applied)

		applied, err = Migrate(ctx, db)
		require.NoError(t, err)
		assert.Zero(t, applied, "second run should be a no-op")

		version, err := SchemaVersion(ctx, db)
		require.NoError(t, err)
		assert.Equal(t, int64(1), version)

		_, err = db.Exec(`SELECT id, user_id, symbol, quantity, price, fee, date, seq FROM "transaction"`)
		assert.NoError(t, err)
	})

	t.Run("health check fails on closed database", func(t *testing.T) {
		db, err := Open(filepath.Join(t.TempDir(), "closed.db"))
		require.NoError(t, err)
		db.Close()

		assert.Error(t, HealthCheck(db))
	})
}
