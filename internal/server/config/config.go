// Package config handles configuration for the backup server: defaults,
// an optional JSON or TOML file, environment variables (with .env support)
// and finally command-line flags, in that order of precedence.
package config

import (
	"net"
	"path/filepath"
	"strconv"
)

// Config holds runtime settings of the backup server.
//
// Fields:
//   - BackupPath: root directory of tokens.db and all token namespaces.
//   - Encoding: IANA charset used for every text file written.
//   - BindAddr / BindPort: HTTP listen address.
//   - TokenFile: ledger file name, relative to BackupPath.
//   - AdminPassword / AdminPasswordHash: admin credential; the bcrypt hash wins when set.
//   - AdminRateLimit / AdminRateBurst: token bucket for /admin requests (per second).
//   - LogLevel: debug, info, warn or error.
//   - BlobBackend: "fs" (default) or "s3" for board and config blobs.
//   - S3*: bucket settings used when BlobBackend is "s3".
type Config struct {
	BackupPath        string
	Encoding          string
	BindAddr          string
	BindPort          int
	TokenFile         string
	AdminPassword     string
	AdminPasswordHash string
	AdminRateLimit    float64
	AdminRateBurst    int
	LogLevel          string
	BlobBackend       string
	S3Bucket          string
	S3Region          string
	S3AccessKey       string
	S3SecretKey       string
	S3BaseEndpoint    string
	S3Prefix          string
	S3UsePathStyle    bool
}

const (
	BackendFS = "fs"
	BackendS3 = "s3"
)

// LoadDefaults populates Config with the historical defaults of the server.
// NOTE: the admin password default is public and must be overridden.
func (c *Config) LoadDefaults() {
	c.BackupPath = "./nbbkp"
	c.Encoding = "UTF-8"
	c.BindAddr = "127.0.0.1"
	c.BindPort = 5000
	c.TokenFile = "tokens.db"
	c.AdminPassword = "YourVerySecurePassWd"
	c.AdminPasswordHash = ""
	c.AdminRateLimit = 5
	c.AdminRateBurst = 10
	c.LogLevel = "info"
	c.BlobBackend = BackendFS
	c.S3Bucket = "nullboard"
	c.S3Region = "us-east-1"
	c.S3UsePathStyle = true
}

// Address returns the host:port to listen on.
func (c *Config) Address() string {
	return net.JoinHostPort(c.BindAddr, strconv.Itoa(c.BindPort))
}

// TokenPath returns the ledger location. An absolute TokenFile is used as is.
func (c *Config) TokenPath() string {
	if filepath.IsAbs(c.TokenFile) {
		return c.TokenFile
	}
	return filepath.Join(c.BackupPath, c.TokenFile)
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional config file, the environment, and finally command-line
// flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg)
	parseEnv(cfg, ".env")
	parseFlags(cfg)
	return cfg
}
