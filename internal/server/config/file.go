package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/dmitrijs2005/nbbackup/internal/flagx"
)

// FileConfig is the on-disk shape of the config file. The same keys are
// used for JSON and TOML.
type FileConfig struct {
	BackupPath        string  `json:"backup_path" toml:"backup_path"`
	Encoding          string  `json:"encoding" toml:"encoding"`
	BindAddr          string  `json:"bind_addr" toml:"bind_addr"`
	BindPort          int     `json:"bind_port" toml:"bind_port"`
	TokenFile         string  `json:"token_file" toml:"token_file"`
	AdminPassword     string  `json:"admin_password" toml:"admin_password"`
	AdminPasswordHash string  `json:"admin_password_hash" toml:"admin_password_hash"`
	AdminRateLimit    float64 `json:"admin_rate_limit" toml:"admin_rate_limit"`
	AdminRateBurst    int     `json:"admin_rate_burst" toml:"admin_rate_burst"`
	LogLevel          string  `json:"log_level" toml:"log_level"`
	BlobBackend       string  `json:"blob_backend" toml:"blob_backend"`
	S3Bucket          string  `json:"s3_bucket" toml:"s3_bucket"`
	S3Region          string  `json:"s3_region" toml:"s3_region"`
	S3AccessKey       string  `json:"s3_access_key" toml:"s3_access_key"`
	S3SecretKey       string  `json:"s3_secret_key" toml:"s3_secret_key"`
	S3BaseEndpoint    string  `json:"s3_base_endpoint" toml:"s3_base_endpoint"`
	S3Prefix          string  `json:"s3_prefix" toml:"s3_prefix"`
	S3UsePathStyle    bool    `json:"s3_use_path_style" toml:"s3_use_path_style"`
}

// parseFile overlays config with the file named by -c / -config.
//
// The file format follows the extension: ".toml" is TOML, anything else is
// JSON. Keys absent from the file keep their current value. An unreadable
// or invalid file panics.
func parseFile(config *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	fc := toFileConfig(config)
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = toml.Unmarshal(data, fc)
	} else {
		err = json.Unmarshal(data, fc)
	}
	if err != nil {
		panic(fmt.Errorf("config file %s: %w", path, err))
	}

	fc.apply(config)
}

func toFileConfig(c *Config) *FileConfig {
	return &FileConfig{
		BackupPath:        c.BackupPath,
		Encoding:          c.Encoding,
		BindAddr:          c.BindAddr,
		BindPort:          c.BindPort,
		TokenFile:         c.TokenFile,
		AdminPassword:     c.AdminPassword,
		AdminPasswordHash: c.AdminPasswordHash,
		AdminRateLimit:    c.AdminRateLimit,
		AdminRateBurst:    c.AdminRateBurst,
		LogLevel:          c.LogLevel,
		BlobBackend:       c.BlobBackend,
		S3Bucket:          c.S3Bucket,
		S3Region:          c.S3Region,
		S3AccessKey:       c.S3AccessKey,
		S3SecretKey:       c.S3SecretKey,
		S3BaseEndpoint:    c.S3BaseEndpoint,
		S3Prefix:          c.S3Prefix,
		S3UsePathStyle:    c.S3UsePathStyle,
	}
}

func (fc *FileConfig) apply(c *Config) {
	c.BackupPath = fc.BackupPath
	c.Encoding = fc.Encoding
	c.BindAddr = fc.BindAddr
	c.BindPort = fc.BindPort
	c.TokenFile = fc.TokenFile
	c.AdminPassword = fc.AdminPassword
	c.AdminPasswordHash = fc.AdminPasswordHash
	c.AdminRateLimit = fc.AdminRateLimit
	c.AdminRateBurst = fc.AdminRateBurst
	c.LogLevel = fc.LogLevel
	c.BlobBackend = fc.BlobBackend
	c.S3Bucket = fc.S3Bucket
	c.S3Region = fc.S3Region
	c.S3AccessKey = fc.S3AccessKey
	c.S3SecretKey = fc.S3SecretKey
	c.S3BaseEndpoint = fc.S3BaseEndpoint
	c.S3Prefix = fc.S3Prefix
	c.S3UsePathStyle = fc.S3UsePathStyle
}
