package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fernet/fernet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndewijer/portfolio-tracker/internal/config"
	"github.com/ndewijer/portfolio-tracker/internal/service"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return strings.TrimSpace(out.String()), err
}

func TestTokenCmd(t *testing.T) {
	t.Run("mints a token that verifies with the configured key", func(t *testing.T) {
		var k fernet.Key
		require.NoError(t, k.Generate())
		t.Setenv("AUTH_FERNET_KEYS", k.Encode())

		token, err := run(t, "token", "--user", "alice")
		require.NoError(t, err)

		msg := fernet.VerifyAndDecrypt([]byte(token), time.Minute, []*fernet.Key{&k})
		assert.Equal(t, "alice", string(msg))
	})

	t.Run("requires a user", func(t *testing.T) {
		_, err := run(t, "token")
		assert.Error(t, err)
	})

	t.Run("requires a key", func(t *testing.T) {
		t.Setenv("AUTH_FERNET_KEYS", "")
		_, err := run(t, "token", "--user", "alice")
		assert.Error(t, err)
	})

	t.Run("generates a usable key", func(t *testing.T) {
		out, err := run(t, "token", "--generate-key")
		require.NoError(t, err)

		_, err = fernet.DecodeKey(out)
		assert.NoError(t, err)
	})
}

func TestMigrateCmd(t *testing.T) {
	t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "cli.db"))
	t.Setenv("LOG_LEVEL", "error")

	out, err := run(t, "migrate")
	require.NoError(t, err)
	assert.Equal(t, "schema at version 1 (1 applied)", out)

	out, err = run(t, "migrate")
	require.NoError(t, err)
	assert.Equal(t, "schema at version 1 (0 applied)", out)
}

func TestVersionCmd(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "portfolio-tracker dev"), out)
}

func TestAnchorPolicy(t *testing.T) {
	assert.Equal(t, service.AnchorCostBasis, anchorPolicy(config.AnchorCost))
	assert.Equal(t, service.AnchorMarketValue, anchorPolicy(config.AnchorMarket))
}
