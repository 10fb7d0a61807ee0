// Package httpapi serves the Nullboard backup protocol over HTTP.
package httpapi

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/dmitrijs2005/nbbackup/internal/common"
	"github.com/dmitrijs2005/nbbackup/internal/logging"
	"github.com/dmitrijs2005/nbbackup/internal/textenc"
)

const shutdownTimeout = 5 * time.Second

// Registry is the token ledger as seen by the handlers.
type Registry interface {
	Issue(ctx context.Context, user string) (string, error)
	Lookup(ctx context.Context, user string) (string, error)
	List(ctx context.Context) ([]string, error)
	Validate(ctx context.Context, token string) (bool, error)
	Revoke(ctx context.Context, user, token string) error
}

type BoardStore interface {
	WriteRevision(ctx context.Context, token string, boardID int64, envelope, data, meta []byte) error
	DeleteBoard(ctx context.Context, token string, boardID int64) error
}

type ConfigStore interface {
	WriteConfig(ctx context.Context, token string, conf []byte) error
}

type AdminAuth interface {
	Check(ctx context.Context, login, password string) error
}

// Services bundles what the handlers need. A nil Codec means UTF-8.
type Services struct {
	Registry Registry
	Boards   BoardStore
	Configs  ConfigStore
	Admin    AdminAuth
	Codec    *textenc.Codec
}

type Server struct {
	address string
	app     *fiber.App
	svc     Services
	logger  logging.Logger
}

func NewServer(address string, l logging.Logger, svc Services) *Server {
	if svc.Codec == nil {
		svc.Codec = textenc.UTF8
	}
	s := &Server{
		address: address,
		svc:     svc,
		logger:  l.With("module", "http_server"),
	}

	app := fiber.New(fiber.Config{
		AppName:               "nbbackup",
		ErrorHandler:          s.errorHandler,
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(s.requestLogger)
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "PUT, DELETE, POST",
		AllowHeaders: common.AccessTokenHeaderName,
	}))

	app.Post("/admin/:cmd", s.admin)

	app.Put("/config", s.requireToken, s.putConfig)
	app.Put("/board/:id<int>", s.requireToken, s.putBoard)
	app.Delete("/board/:id<int>", s.requireToken, s.deleteBoard)

	s.app = app
	return s
}

// App exposes the underlying fiber app, mostly for app.Test.
func (s *Server) App() *fiber.App { return s.app }

// Run listens on the configured address until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.app.ShutdownWithContext(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown failed", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	return s.app.Listen(s.address)
}
