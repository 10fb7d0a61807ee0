package config

import (
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{
			name: "all flags",
			args: []string{"cmd",
				"-d", "/srv/nbbkp", "-a", "0.0.0.0", "-p", "8080", "-t", "ledger.db",
				"-e", "ISO-8859-1", "-w", "pw", "-l", "debug", "-b", "s3",
			},
			expected: &Config{
				BackupPath:    "/srv/nbbkp",
				BindAddr:      "0.0.0.0",
				BindPort:      8080,
				TokenFile:     "ledger.db",
				Encoding:      "ISO-8859-1",
				AdminPassword: "pw",
				LogLevel:      "debug",
				BlobBackend:   "s3",
			},
		},
		{
			name:     "config flag and unknown flags are ignored",
			args:     []string{"cmd", "-c", "conf.json", "-x", "1", "-p", "6000"},
			expected: &Config{BindPort: 6000},
		},
		{
			name:        "bad port panics",
			args:        []string{"cmd", "-p", "http"},
			expectPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args
			config := &Config{}

			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(config) })
				return
			}
			require.NotPanics(t, func() { parseFlags(config) })
			assert.Empty(t, cmp.Diff(tt.expected, config))
		})
	}
}
