package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func Test_parseFile_SourcesAndPrecedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Run("loads from json", func(t *testing.T) {
		path := writeTempFile(t, "cfg.json", `{
			"backup_path": "/srv/nbbkp",
			"encoding": "ISO-8859-1",
			"bind_addr": "0.0.0.0",
			"bind_port": 8080,
			"token_file": "ledger.db",
			"admin_password": "pw",
			"admin_rate_limit": 1.5,
			"admin_rate_burst": 3,
			"log_level": "debug",
			"blob_backend": "s3",
			"s3_bucket": "bucket",
			"s3_region": "eu-west-1",
			"s3_access_key": "ak",
			"s3_secret_key": "sk",
			"s3_base_endpoint": "http://minio:9000",
			"s3_prefix": "nb",
			"s3_use_path_style": false
		}`)
		os.Args = []string{"testbin", "-config", path}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseFile(cfg)

		assert.Equal(t, "/srv/nbbkp", cfg.BackupPath)
		assert.Equal(t, "ISO-8859-1", cfg.Encoding)
		assert.Equal(t, "0.0.0.0", cfg.BindAddr)
		assert.Equal(t, 8080, cfg.BindPort)
		assert.Equal(t, "ledger.db", cfg.TokenFile)
		assert.Equal(t, "pw", cfg.AdminPassword)
		assert.Equal(t, 1.5, cfg.AdminRateLimit)
		assert.Equal(t, 3, cfg.AdminRateBurst)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, BackendS3, cfg.BlobBackend)
		assert.Equal(t, "bucket", cfg.S3Bucket)
		assert.Equal(t, "eu-west-1", cfg.S3Region)
		assert.Equal(t, "ak", cfg.S3AccessKey)
		assert.Equal(t, "sk", cfg.S3SecretKey)
		assert.Equal(t, "http://minio:9000", cfg.S3BaseEndpoint)
		assert.Equal(t, "nb", cfg.S3Prefix)
		assert.False(t, cfg.S3UsePathStyle)
	})

	t.Run("loads from toml", func(t *testing.T) {
		path := writeTempFile(t, "cfg.toml", `
backup_path = "/var/lib/nbbkp"
bind_port = 9000
blob_backend = "fs"
`)
		os.Args = []string{"testbin", "-c", path}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseFile(cfg)

		assert.Equal(t, "/var/lib/nbbkp", cfg.BackupPath)
		assert.Equal(t, 9000, cfg.BindPort)
		assert.Equal(t, "127.0.0.1", cfg.BindAddr, "absent keys keep their value")
		assert.Equal(t, "tokens.db", cfg.TokenFile)
	})

	t.Run("no config flag → no changes", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{BackupPath: "keep", BindPort: 1234}
		parseFile(cfg)

		assert.Equal(t, &Config{BackupPath: "keep", BindPort: 1234}, cfg)
	})

	t.Run("invalid JSON → panics", func(t *testing.T) {
		path := writeTempFile(t, "bad.json", `{ this is not valid json`)
		os.Args = []string{"testbin", "-config", path}

		require.Panics(t, func() { parseFile(&Config{}) })
	})

	t.Run("invalid TOML → panics", func(t *testing.T) {
		path := writeTempFile(t, "bad.toml", `bind_port = "not a number"`)
		os.Args = []string{"testbin", "-config", path}

		require.Panics(t, func() { parseFile(&Config{}) })
	})

	t.Run("missing file → panics", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", filepath.Join(t.TempDir(), "absent.json")}

		require.Panics(t, func() { parseFile(&Config{}) })
	})
}
