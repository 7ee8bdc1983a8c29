package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.Execute()
	return out.String(), err
}

func TestRoutesValidateEmbedded(t *testing.T) {
	out, err := runCLI(t, "routes", "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "embedded:api-config.json: 4 routes OK")
}

func TestRoutesListFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "routes.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
routes:
  - title: list animals
    predicates: ["Path=/api/animals", "Method=GET"]
    filters: ["RateLimit=10,2s", "StripPrefix=1"]
`), 0o600))

	out, err := runCLI(t, "routes", "list", path)
	require.NoError(t, err)
	assert.Contains(t, out, "/api/animals")
	assert.Contains(t, out, "10/2s")
	assert.Contains(t, out, "list animals")
}

func TestRoutesValidateRejectsBadDescriptor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "routes.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"routes":[{"predicates":["Method=GET"]}]}`), 0o600))

	_, err := runCLI(t, "routes", "validate", path)
	assert.Error(t, err)
}
