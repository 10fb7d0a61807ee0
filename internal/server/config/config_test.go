package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "./nbbkp", c.BackupPath)
	assert.Equal(t, "UTF-8", c.Encoding)
	assert.Equal(t, "127.0.0.1", c.BindAddr)
	assert.Equal(t, 5000, c.BindPort)
	assert.Equal(t, "tokens.db", c.TokenFile)
	assert.Equal(t, "YourVerySecurePassWd", c.AdminPassword)
	assert.Empty(t, c.AdminPasswordHash)
	assert.Equal(t, 5.0, c.AdminRateLimit)
	assert.Equal(t, 10, c.AdminRateBurst)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, BackendFS, c.BlobBackend)
	assert.Equal(t, "nullboard", c.S3Bucket)
	assert.Equal(t, "us-east-1", c.S3Region)
	assert.True(t, c.S3UsePathStyle)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}

	c := LoadConfig()
	require.NotNil(t, c, "LoadConfig must not return nil")

	var want Config
	want.LoadDefaults()
	assert.Equal(t, want, *c)
}

func TestAddress(t *testing.T) {
	c := Config{BindAddr: "127.0.0.1", BindPort: 5000}
	assert.Equal(t, "127.0.0.1:5000", c.Address())

	c = Config{BindAddr: "::1", BindPort: 8080}
	assert.Equal(t, "[::1]:8080", c.Address())

	c = Config{BindPort: 80}
	assert.Equal(t, ":80", c.Address())
}

func TestTokenPath(t *testing.T) {
	c := Config{BackupPath: "/srv/nbbkp", TokenFile: "tokens.db"}
	assert.Equal(t, filepath.Join("/srv/nbbkp", "tokens.db"), c.TokenPath())

	abs := filepath.Join(t.TempDir(), "elsewhere.db")
	c.TokenFile = abs
	assert.Equal(t, abs, c.TokenPath())
}
