// Package server wires the backup server together: it opens the token
// ledger, picks the blob backend, and runs the HTTP transport until the
// process is told to stop.
package server

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/nbbackup/internal/filex"
	"github.com/dmitrijs2005/nbbackup/internal/logging"
	"github.com/dmitrijs2005/nbbackup/internal/server/admin"
	"github.com/dmitrijs2005/nbbackup/internal/server/appconfig"
	"github.com/dmitrijs2005/nbbackup/internal/server/blobstore"
	"github.com/dmitrijs2005/nbbackup/internal/server/config"
	"github.com/dmitrijs2005/nbbackup/internal/server/httpapi"
	"github.com/dmitrijs2005/nbbackup/internal/server/revisions"
	"github.com/dmitrijs2005/nbbackup/internal/server/tokens"
	"github.com/dmitrijs2005/nbbackup/internal/textenc"
)

var logOutput io.Writer = os.Stdout

type App struct {
	config   *config.Config
	logger   logging.Logger
	registry *tokens.Registry
	services httpapi.Services
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSON(logOutput, c.LogLevel)

	codec, err := textenc.Lookup(c.Encoding)
	if err != nil {
		return nil, err
	}

	if err := filex.EnsureDir(c.BackupPath); err != nil {
		return nil, fmt.Errorf("backup path init error: %w", err)
	}

	registry, err := tokens.NewRegistry(c.TokenPath(), codec, logger)
	if err != nil {
		return nil, fmt.Errorf("token ledger init error: %w", err)
	}

	blobs, err := newBlobStore(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("blob store init error: %w", err)
	}

	auth, err := admin.NewAuthenticator(admin.Options{
		Password:     c.AdminPassword,
		PasswordHash: c.AdminPasswordHash,
		RateLimit:    c.AdminRateLimit,
		RateBurst:    c.AdminRateBurst,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("admin auth init error: %w", err)
	}

	return &App{
		config:   c,
		logger:   logger,
		registry: registry,
		services: httpapi.Services{
			Registry: registry,
			Boards:   revisions.NewStore(blobs, logger),
			Configs:  appconfig.NewStore(blobs, logger),
			Admin:    auth,
			Codec:    codec,
		},
	}, nil
}

func newBlobStore(ctx context.Context, c *config.Config) (blobstore.Store, error) {
	switch c.BlobBackend {
	case config.BackendFS, "":
		return blobstore.NewFileStore(c.BackupPath), nil
	case config.BackendS3:
		return blobstore.NewS3Store(ctx, blobstore.S3Config{
			Bucket:       c.S3Bucket,
			Region:       c.S3Region,
			AccessKey:    c.S3AccessKey,
			SecretKey:    c.S3SecretKey,
			BaseEndpoint: c.S3BaseEndpoint,
			Prefix:       c.S3Prefix,
			UsePathStyle: c.S3UsePathStyle,
		})
	default:
		return nil, fmt.Errorf("unknown blob backend %q", c.BlobBackend)
	}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := httpapi.NewServer(app.config.Address(), app.logger, app.services)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...",
		"backup_path", app.config.BackupPath,
		"ledger", app.registry.Path(),
		"backend", app.config.BlobBackend,
	)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

}
