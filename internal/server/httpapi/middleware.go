package httpapi

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/nbbackup/internal/common"
	"github.com/dmitrijs2005/nbbackup/internal/server/tokens"
)

const (
	requestIDHeader = "X-Request-Id"
	tokenLocal      = "token"
)

func (s *Server) requestLogger(c *fiber.Ctx) error {
	start := time.Now()
	id := uuid.NewString()
	c.Set(requestIDHeader, id)

	err := c.Next()
	if err != nil {
		// Render now so the logged status is the one sent.
		if herr := c.App().Config().ErrorHandler(c, err); herr != nil {
			_ = c.SendStatus(fiber.StatusInternalServerError)
		}
	}

	s.logger.Info(c.UserContext(), "request",
		"request_id", id,
		"method", c.Method(),
		"path", c.Path(),
		"status", c.Response().StatusCode(),
		"duration", time.Since(start).String(),
	)
	return nil
}

// requireToken checks X-Access-Token against the ledger and stores the
// token for the handler.
func (s *Server) requireToken(c *fiber.Ctx) error {
	raw := c.Get(common.AccessTokenHeaderName)
	if raw == "" {
		return fmt.Errorf("%w: %s header", common.ErrMissingField, common.AccessTokenHeaderName)
	}
	token, err := tokens.Format(raw)
	if err != nil {
		return err
	}
	ok, err := s.svc.Registry.Validate(c.UserContext(), token)
	if err != nil {
		return err
	}
	if !ok {
		return common.ErrUnauthorized
	}
	c.Locals(tokenLocal, token)
	return c.Next()
}

func tokenFrom(c *fiber.Ctx) string {
	token, _ := c.Locals(tokenLocal).(string)
	return token
}

// boardID parses the :id route parameter. Only non-negative integers name a
// board; anything else is an unknown route.
func boardID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id < 0 {
		return 0, fiber.ErrNotFound
	}
	return id, nil
}

// formValue returns the named form field and whether it was sent at all, so
// that an empty value can be told apart from a missing one.
func formValue(c *fiber.Ctx, key string) (string, bool) {
	if args := c.Request().PostArgs(); args.Has(key) {
		return string(args.Peek(key)), true
	}
	if form, err := c.MultipartForm(); err == nil {
		if v := form.Value[key]; len(v) > 0 {
			return v[0], true
		}
	}
	return "", false
}
