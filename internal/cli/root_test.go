package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_Subcommands(t *testing.T) {
	cmd := NewRootCommand()
	assert.Equal(t, "seed", cmd.Use)

	for _, name := range []string{"migrate", "demo"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, sub.Name())
	}

	demo, _, err := cmd.Find([]string{"demo"})
	require.NoError(t, err)
	migrate := demo.Flags().Lookup("migrate")
	require.NotNil(t, migrate)
	assert.Equal(t, "false", migrate.DefValue)
}

func TestRootCommand_GlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	timeout := cmd.PersistentFlags().Lookup("timeout")
	require.NotNil(t, timeout)
	assert.Equal(t, "2m0s", timeout.DefValue)

	verbose := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verbose)
	assert.Equal(t, "v", verbose.Shorthand)
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCommand_RequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	_, err := execute(t, "migrate")
	assert.ErrorContains(t, err, "database url is required")
}

func TestRootCommand_RejectsBadInput(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/discovery")

	_, err := execute(t, "demo", "--timeout", "0s")
	assert.ErrorContains(t, err, "timeout must be positive")

	_, err = execute(t, "demo", "extra")
	assert.Error(t, err)

	_, err = execute(t, "migrate", "--env-file", filepath.Join(t.TempDir(), "missing.env"))
	assert.ErrorContains(t, err, "could not load env file")
}

func TestRootCommand_EnvFileProvidesURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	os.Unsetenv("DATABASE_URL")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("DATABASE_URL=not-a-valid-url\n"), 0o600))

	// URL берется из файла, поэтому падает уже разбор строки подключения
	_, err := execute(t, "migrate", "--env-file", path)
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "database url is required")
	assert.Contains(t, err.Error(), "failed to parse database URL")
}
