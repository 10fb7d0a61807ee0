package server

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/nbbackup/internal/common"
	"github.com/dmitrijs2005/nbbackup/internal/server/blobstore"
	"github.com/dmitrijs2005/nbbackup/internal/server/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	orig := logOutput
	logOutput = io.Discard
	t.Cleanup(func() { logOutput = orig })

	c := &config.Config{}
	c.LoadDefaults()
	c.BackupPath = filepath.Join(t.TempDir(), "nbbkp")
	return c
}

func TestNewApp_CreatesRootAndLedger(t *testing.T) {
	c := testConfig(t)

	app, err := NewApp(context.Background(), c)
	require.NoError(t, err)
	require.NotNil(t, app)

	fi, err := os.Stat(c.BackupPath)
	require.NoError(t, err)
	assert.True(t, fi.IsDir())

	ledger, err := os.ReadFile(filepath.Join(c.BackupPath, common.DefaultTokenFile))
	require.NoError(t, err)
	assert.Empty(t, ledger)
	assert.Equal(t, c.TokenPath(), app.registry.Path())
}

func TestNewApp_KeepsExistingLedger(t *testing.T) {
	c := testConfig(t)
	require.NoError(t, os.MkdirAll(c.BackupPath, 0o770))
	path := filepath.Join(c.BackupPath, common.DefaultTokenFile)
	require.NoError(t, os.WriteFile(path, []byte("AAAA-BBBB-CCCC-DDDD alice\n"), 0o660))

	app, err := NewApp(context.Background(), c)
	require.NoError(t, err)

	ok, err := app.registry.Validate(context.Background(), "AAAA-BBBB-CCCC-DDDD")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestNewApp_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *config.Config)
	}{
		{"unknown encoding", func(c *config.Config) { c.Encoding = "no-such-charset" }},
		{"non ASCII compatible encoding", func(c *config.Config) { c.Encoding = "UTF-16BE" }},
		{"unknown backend", func(c *config.Config) { c.BlobBackend = "tape" }},
		{"no admin password", func(c *config.Config) { c.AdminPassword = "" }},
		{"bad password hash", func(c *config.Config) { c.AdminPasswordHash = "not-bcrypt" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testConfig(t)
			tt.mutate(c)

			app, err := NewApp(context.Background(), c)
			assert.Error(t, err)
			assert.Nil(t, app)
		})
	}
}

func Test_newBlobStore(t *testing.T) {
	c := testConfig(t)

	s, err := newBlobStore(context.Background(), c)
	require.NoError(t, err)
	fs, ok := s.(*blobstore.FileStore)
	require.True(t, ok)
	assert.Equal(t,
		filepath.Join(c.BackupPath, "TOK", common.AppConfigFile),
		fs.Path(blobstore.TokenKey("TOK", common.AppConfigFile)))

	c.BlobBackend = config.BackendS3
	c.S3AccessKey, c.S3SecretKey = "ak", "sk"
	c.S3BaseEndpoint = "http://127.0.0.1:9000"
	s, err = newBlobStore(context.Background(), c)
	require.NoError(t, err)
	_, ok = s.(*blobstore.S3Store)
	assert.True(t, ok)
}
