package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServeFailsWhenExplicitDSNIsUnreachable(t *testing.T) {
	t.Setenv("DB_DSN", "postgres://u:p@127.0.0.1:1/db?sslmode=disable&connect_timeout=1")
	t.Setenv("RATE_LIMIT_ENABLED", "false")
	t.Setenv("AUTH_MODE", "dev")

	_, err := runCLI(t, "serve", "--env-file", filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open postgres")
}
