package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofrs/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/distribution-auth/tokenlife/token"
)

const testConfig = `
logger:
  level: debug
  development: true

defaults:
  warnFor: 30s
  type: access

tokens:
  - value: abc123
    expires: "2009-11-10T23:00:00Z"
  - value: def456
    expires: 1257894000000
    warnFor: 1000
    type: refresh
  - expiresIn: 15m
`

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	err := os.WriteFile(path, []byte(testConfig), 0o600)
	require.NoError(t, err)

	config, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, Logger{Level: "debug", Development: true}, config.Logger)
	assert.Equal(t, Defaults{WarnFor: 30 * time.Second, Type: "access"}, config.Defaults)
	assert.Len(t, config.Tokens, 3)

	require.NoError(t, config.Validate())

	t.Run("Missing", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		require.Error(t, err)
	})
}

func TestConfig_TokenOptions(t *testing.T) {
	config, err := Parse([]byte(testConfig))
	require.NoError(t, err)

	now := time.Date(2009, time.November, 10, 22, 0, 0, 0, time.UTC)
	clock := clockwork.NewFakeClockAt(now)

	options, err := config.TokenOptions(clock)
	require.NoError(t, err)
	require.Len(t, options, 3)

	expires := time.Date(2009, time.November, 10, 23, 0, 0, 0, time.UTC)

	assert.Equal(t, "abc123", options[0].Value)
	assert.True(t, expires.Equal(options[0].Expires))
	assert.Equal(t, 30*time.Second, options[0].WarnFor)
	assert.Equal(t, token.Access, options[0].Type)

	assert.Equal(t, "def456", options[1].Value)
	assert.True(t, expires.Equal(options[1].Expires))
	assert.Equal(t, time.Second, options[1].WarnFor)
	assert.Equal(t, token.Refresh, options[1].Type)

	_, err = uuid.FromString(options[2].Value)
	assert.NoError(t, err, "missing values should be generated")
	assert.True(t, now.Add(15*time.Minute).Equal(options[2].Expires))
	assert.Equal(t, 30*time.Second, options[2].WarnFor)
	assert.Equal(t, token.Access, options[2].Type)

	// entries are not modified
	assert.NotContains(t, config.Tokens[2], "value")
	assert.Contains(t, config.Tokens[2], "expiresIn")
}

func TestConfig_Validate(t *testing.T) {
	testCases := []struct {
		name   string
		config string
	}{
		{
			name:   "NoTokens",
			config: "logger:\n  level: info\n",
		},
		{
			name:   "InvalidLevel",
			config: "logger:\n  level: loud\ntokens:\n  - expiresIn: 1m\n    type: access\n",
		},
		{
			name:   "InvalidDefaultType",
			config: "defaults:\n  type: id\ntokens:\n  - expiresIn: 1m\n",
		},
		{
			name:   "NegativeDefaultWarnFor",
			config: "defaults:\n  warnFor: -1s\ntokens:\n  - expiresIn: 1m\n    type: access\n",
		},
		{
			name:   "MissingType",
			config: "tokens:\n  - expiresIn: 1m\n",
		},
		{
			name:   "MissingExpiry",
			config: "tokens:\n  - type: access\n",
		},
		{
			name:   "AmbiguousExpiry",
			config: "tokens:\n  - type: access\n    expiresIn: 1m\n    expires: 1257894000000\n",
		},
		{
			name:   "InvalidExpiresIn",
			config: "tokens:\n  - type: access\n    expiresIn: soon\n",
		},
		{
			name:   "NumericExpiresIn",
			config: "tokens:\n  - type: access\n    expiresIn: 60\n",
		},
	}

	for _, testCase := range testCases {
		testCase := testCase

		t.Run(testCase.name, func(t *testing.T) {
			config, err := Parse([]byte(testCase.config))
			require.NoError(t, err)

			err = config.Validate()
			require.Error(t, err)
		})
	}

	t.Run("UnknownDefault", func(t *testing.T) {
		_, err := Parse([]byte("defaults:\n  lifetime: 1h\n"))
		require.Error(t, err)
	})
}

func TestLogger_Build(t *testing.T) {
	logger, err := Logger{Level: "debug", Development: true}.Build()
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))

	logger, err = Logger{}.Build()
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel), "production logger should not log debug messages")

	_, err = Logger{Level: "loud"}.Build()
	require.Error(t, err)
}
