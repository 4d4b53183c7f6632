package postgres

import (
	"io"
	"testing"

	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationSource(t *testing.T) {
	src, err := iofs.New(migrationFS, "migrations")
	require.NoError(t, err)
	defer src.Close()

	first, err := src.First()
	require.NoError(t, err)
	assert.Equal(t, uint(1), first)

	up, identifier, err := src.ReadUp(first)
	require.NoError(t, err)
	defer up.Close()
	assert.Equal(t, "init", identifier)
	body, err := io.ReadAll(up)
	require.NoError(t, err)
	for _, table := range []string{"users", "events", "user_events"} {
		assert.Contains(t, string(body), "CREATE TABLE IF NOT EXISTS "+table+" (")
	}
	assert.Contains(t, string(body), "ON DELETE CASCADE")

	down, _, err := src.ReadDown(first)
	require.NoError(t, err)
	defer down.Close()
	body, err = io.ReadAll(down)
	require.NoError(t, err)
	assert.Contains(t, string(body), "DROP TABLE IF EXISTS user_events")
}

func TestMigrate_BadURL(t *testing.T) {
	_, err := Migrate("not-a-url")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "init migrator")
}
