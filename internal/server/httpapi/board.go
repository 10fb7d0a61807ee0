package httpapi

import (
	"github.com/gofiber/fiber/v2"
)

const okBody = "true"

// putConfig handles PUT /config. A request without a conf field is a no-op
// that still succeeds.
func (s *Server) putConfig(c *fiber.Ctx) error {
	conf, ok := formValue(c, "conf")
	if !ok {
		return c.SendString(okBody)
	}
	b, err := s.encode(conf)
	if err != nil {
		return err
	}
	if err := s.svc.Configs.WriteConfig(c.UserContext(), tokenFrom(c), b); err != nil {
		return err
	}
	return c.SendString(okBody)
}

// putBoard handles PUT /board/:id. The data field doubles as the revision
// envelope and is required; meta is optional.
func (s *Server) putBoard(c *fiber.Ctx) error {
	id, err := boardID(c)
	if err != nil {
		return err
	}

	var envelope, data, meta []byte
	if v, ok := formValue(c, "data"); ok {
		envelope = []byte(v)
		if data, err = s.encode(v); err != nil {
			return err
		}
	}
	if v, ok := formValue(c, "meta"); ok {
		if meta, err = s.encode(v); err != nil {
			return err
		}
	}

	if err := s.svc.Boards.WriteRevision(c.UserContext(), tokenFrom(c), id, envelope, data, meta); err != nil {
		return err
	}
	return c.SendString(okBody)
}

func (s *Server) deleteBoard(c *fiber.Ctx) error {
	id, err := boardID(c)
	if err != nil {
		return err
	}
	if err := s.svc.Boards.DeleteBoard(c.UserContext(), tokenFrom(c), id); err != nil {
		return err
	}
	return c.SendString(okBody)
}

// encode converts a form value to the storage encoding. The result is never
// nil, so an empty field still produces an (empty) file.
func (s *Server) encode(v string) ([]byte, error) {
	b, err := s.svc.Codec.Encode(v)
	if err != nil {
		return nil, err
	}
	if b == nil {
		b = []byte{}
	}
	return b, nil
}
