package httpapi

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/dmitrijs2005/nbbackup/internal/common"
)

// toHTTPError maps domain errors onto a status and a plain-text body.
func toHTTPError(err error) *fiber.Error {
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		return fe
	case errors.Is(err, common.ErrUnauthorized):
		return fiber.NewError(fiber.StatusUnauthorized, "Access Denied")
	case errors.Is(err, common.ErrRateLimited):
		return fiber.NewError(fiber.StatusTooManyRequests, "Too Many Requests")
	case errors.Is(err, common.ErrMalformedInput):
		return fiber.NewError(fiber.StatusBadRequest, "Incorrectly formatted request data")
	case errors.Is(err, common.ErrMissingField), errors.Is(err, common.ErrInvalidFormat):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, common.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, "Not Found")
	case errors.Is(err, common.ErrUserExists), errors.Is(err, common.ErrMismatch):
		return fiber.NewError(fiber.StatusForbidden, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "Internal Server Error")
	}
}

func (s *Server) errorHandler(c *fiber.Ctx, err error) error {
	he := toHTTPError(err)
	if he.Code >= fiber.StatusInternalServerError {
		s.logger.Error(c.UserContext(), "request failed", "path", c.Path(), "error", err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.Status(he.Code).SendString(he.Message)
}
