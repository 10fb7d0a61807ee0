package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/nbbackup/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-d string   backup root directory
//	-a string   bind address
//	-p int      bind port
//	-t string   token file name
//	-e string   text encoding
//	-w string   admin password
//	-l string   log level
//	-b string   blob backend ("fs" or "s3")
//
// Only these flags are looked at, so -c/-config and foreign flags pass
// through untouched. A bad value panics.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-a", "-p", "-t", "-e", "-w", "-l", "-b"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.BackupPath, "d", config.BackupPath, "backup root directory")
	fs.StringVar(&config.BindAddr, "a", config.BindAddr, "address to bind to")
	fs.IntVar(&config.BindPort, "p", config.BindPort, "port to listen on")
	fs.StringVar(&config.TokenFile, "t", config.TokenFile, "token ledger file name")
	fs.StringVar(&config.Encoding, "e", config.Encoding, "text encoding of stored files")
	fs.StringVar(&config.AdminPassword, "w", config.AdminPassword, "admin password")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.StringVar(&config.BlobBackend, "b", config.BlobBackend, "blob backend: fs or s3")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
