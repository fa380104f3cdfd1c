package database

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateURL(t *testing.T) {
	assert.Equal(t, "pgx5://app:pw@db:5432/lf?sslmode=disable", MigrateURL("postgres://app:pw@db:5432/lf?sslmode=disable"))
	assert.Equal(t, "pgx5://app@db/lf", MigrateURL("postgresql://app@db/lf"))
	assert.Equal(t, "pgx5://already", MigrateURL("pgx5://already"))
}

func TestMigrationsArePaired(t *testing.T) {
	ups, err := fs.Glob(migrationsFS, "migrations/*.up.sql")
	require.NoError(t, err)
	downs, err := fs.Glob(migrationsFS, "migrations/*.down.sql")
	require.NoError(t, err)

	require.NotEmpty(t, ups)
	assert.Len(t, downs, len(ups))
}
