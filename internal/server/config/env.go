package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvBackupPath        = "NBBKP_PATH"
	EnvEncoding          = "NBBKP_ENC"
	EnvBindAddr          = "NBBKP_BIND_ADDR"
	EnvBindPort          = "NBBKP_BIND_PORT"
	EnvTokenFile         = "NBBKP_TOKEN_FILE"
	EnvAdminPassword     = "NBBKP_ADMIN_PWD"
	EnvAdminPasswordHash = "NBBKP_ADMIN_PWD_HASH"
	EnvAdminRateLimit    = "NBBKP_ADMIN_RATE_LIMIT"
	EnvAdminRateBurst    = "NBBKP_ADMIN_RATE_BURST"
	EnvLogLevel          = "NBBKP_LOG_LEVEL"
	EnvBlobBackend       = "NBBKP_BLOB_BACKEND"
	EnvS3Bucket          = "NBBKP_S3_BUCKET"
	EnvS3Region          = "NBBKP_S3_REGION"
	EnvS3AccessKey       = "NBBKP_S3_ACCESS_KEY"
	EnvS3SecretKey       = "NBBKP_S3_SECRET_KEY"
	EnvS3BaseEndpoint    = "NBBKP_S3_ENDPOINT"
	EnvS3Prefix          = "NBBKP_S3_PREFIX"
	EnvS3UsePathStyle    = "NBBKP_S3_PATH_STYLE"
)

// parseEnv loads the given dotenv files (missing ones are skipped; variables
// already set in the process win) and overlays config with every NBBKP_*
// variable that is set. Malformed numbers panic.
func parseEnv(config *Config, dotenvFiles ...string) {
	for _, f := range dotenvFiles {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			panic(fmt.Errorf("load %s: %w", f, err))
		}
	}

	envString(EnvBackupPath, &config.BackupPath)
	envString(EnvEncoding, &config.Encoding)
	envString(EnvBindAddr, &config.BindAddr)
	envInt(EnvBindPort, &config.BindPort)
	envString(EnvTokenFile, &config.TokenFile)
	envString(EnvAdminPassword, &config.AdminPassword)
	envString(EnvAdminPasswordHash, &config.AdminPasswordHash)
	envFloat(EnvAdminRateLimit, &config.AdminRateLimit)
	envInt(EnvAdminRateBurst, &config.AdminRateBurst)
	envString(EnvLogLevel, &config.LogLevel)
	envString(EnvBlobBackend, &config.BlobBackend)
	envString(EnvS3Bucket, &config.S3Bucket)
	envString(EnvS3Region, &config.S3Region)
	envString(EnvS3AccessKey, &config.S3AccessKey)
	envString(EnvS3SecretKey, &config.S3SecretKey)
	envString(EnvS3BaseEndpoint, &config.S3BaseEndpoint)
	envString(EnvS3Prefix, &config.S3Prefix)
	envBool(EnvS3UsePathStyle, &config.S3UsePathStyle)
}

func envString(name string, dst *string) {
	if v, ok := os.LookupEnv(name); ok {
		*dst = v
	}
}

func envInt(name string, dst *int) {
	v, ok := os.LookupEnv(name)
	if !ok {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		panic(fmt.Errorf("%s: %w", name, err))
	}
	*dst = n
}

func envFloat(name string, dst *float64) {
	v, ok := os.LookupEnv(name)
	if !ok {
		return
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		panic(fmt.Errorf("%s: %w", name, err))
	}
	*dst = f
}

func envBool(name string, dst *bool) {
	v, ok := os.LookupEnv(name)
	if !ok {
		return
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		panic(fmt.Errorf("%s: %w", name, err))
	}
	*dst = b
}
