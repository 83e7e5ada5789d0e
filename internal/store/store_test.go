package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/routine/internal/config"
)

func TestOpen_SQLite(t *testing.T) {
	b, err := Open(context.Background(), config.DatabaseConfig{
		Driver: config.DriverSQLite,
		URL:    "file:TestOpen_SQLite?mode=memory&cache=shared",
	})
	require.NoError(t, err)
	defer b.Close()

	tasks, err := b.ListTasks(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), config.DatabaseConfig{Driver: "mysql"})
	assert.ErrorContains(t, err, "mysql")
}
