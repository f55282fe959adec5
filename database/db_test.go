package database

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildDSNPrefersDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@host:5432/db")
	t.Setenv("DB_HOST", "ignored")
	require.Equal(t, "postgres://u:p@host:5432/db", buildDSN())
}

func TestBuildDSNFromIndividualVars(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "")
	t.Setenv("DB_USER", "")
	t.Setenv("DB_PASSWORD", "")
	t.Setenv("DB_NAME", "")
	t.Setenv("DB_SSLMODE", "")
	require.Equal(t,
		"host=localhost port=5432 user=postgres password=postgres dbname=hotelrbs sslmode=disable",
		buildDSN())
}

func TestBuildDSNEmptyWhenUnconfigured(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_HOST", "")
	require.Empty(t, buildDSN())
	require.False(t, Enabled())
}
