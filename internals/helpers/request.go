package helper

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ActorHeader: id aktor opaque dari gateway/auth di depan service ini.
const ActorHeader = "X-Actor-ID"

// ActorID membaca X-Actor-ID. Kosong → uuid.Nil (audit dikosongkan).
func ActorID(c *fiber.Ctx) (uuid.UUID, error) {
	raw := strings.TrimSpace(c.Get(ActorHeader))
	if raw == "" {
		return uuid.Nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, ActorHeader+" tidak valid")
	}
	return id, nil
}

// RequireActorID: seperti ActorID tapi header wajib ada.
func RequireActorID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := ActorID(c)
	if err != nil {
		return uuid.Nil, err
	}
	if id == uuid.Nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, ActorHeader+" wajib diisi")
	}
	return id, nil
}

func ParseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params(name)))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, name+" tidak valid")
	}
	return id, nil
}

// ParseUUIDQuery: query opsional, kosong → nil.
func ParseUUIDQuery(c *fiber.Ctx, key string) (*uuid.UUID, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, key+" tidak valid")
	}
	return &id, nil
}

// QueryBool: "1/true/yes" → true, kosong → def.
func QueryBool(c *fiber.Ctx, key string, def bool) bool {
	raw := strings.ToLower(strings.TrimSpace(c.Query(key)))
	if raw == "" {
		return def
	}
	if raw == "yes" {
		return true
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return def
	}
	return b
}
