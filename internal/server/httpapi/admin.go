package httpapi

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/dmitrijs2005/nbbackup/internal/common"
)

type adminCommand func(s *Server, c *fiber.Ctx) error

var adminCommands = map[string]adminCommand{
	"new-token":   (*Server).newToken,
	"get-token":   (*Server).getToken,
	"list-tokens": (*Server).listTokens,
	"del-token":   (*Server).delToken,
}

// admin handles POST /admin/:cmd. Credentials are checked before the
// command name.
func (s *Server) admin(c *fiber.Ctx) error {
	login, hasLogin := formValue(c, "login")
	password, hasPassword := formValue(c, "password")
	if !hasLogin || !hasPassword {
		return common.ErrUnauthorized
	}
	if err := s.svc.Admin.Check(c.UserContext(), login, password); err != nil {
		return err
	}

	cmd, ok := adminCommands[c.Params("cmd")]
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid command")
	}
	return cmd(s, c)
}

func (s *Server) newToken(c *fiber.Ctx) error {
	user, ok := formValue(c, "user")
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "No 'user' parameter passed in request")
	}
	token, err := s.svc.Registry.Issue(c.UserContext(), user)
	if errors.Is(err, common.ErrUserExists) {
		return fiber.NewError(fiber.StatusForbidden, fmt.Sprintf("User %s already exists", user))
	}
	if err != nil {
		return err
	}
	return c.SendString(token)
}

func (s *Server) getToken(c *fiber.Ctx) error {
	user, ok := formValue(c, "user")
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "No 'user' parameter passed in request")
	}
	token, err := s.svc.Registry.Lookup(c.UserContext(), user)
	if err != nil {
		return err
	}
	return c.SendString(token)
}

func (s *Server) listTokens(c *fiber.Ctx) error {
	list, err := s.svc.Registry.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.SendString(strings.Join(list, "\n"))
}

func (s *Server) delToken(c *fiber.Ctx) error {
	user, hasUser := formValue(c, "user")
	token, hasToken := formValue(c, "token")
	if !hasUser || !hasToken {
		return fiber.NewError(fiber.StatusBadRequest, "No 'user' or 'token' parameter passed in request")
	}
	err := s.svc.Registry.Revoke(c.UserContext(), user, token)
	if errors.Is(err, common.ErrMismatch) {
		return fiber.NewError(fiber.StatusForbidden,
			fmt.Sprintf("No matching record found for user '%s' and token '%s'", user, token))
	}
	if err != nil {
		return err
	}
	return c.SendString("")
}
