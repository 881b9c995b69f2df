package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	// RayIDHeader is the response header carrying the request ID.
	RayIDHeader = "X-Ray-Id"
	// RayIDKey is the fiber.Ctx locals key for the request ID.
	RayIDKey = "ray_id"
)

// RayID generates a unique request ID for every incoming request.
// Clients may supply their own via the X-Ray-Id header; otherwise one
// is generated. The ID is stored in the context locals and echoed back
// in the response header.
func RayID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get(RayIDHeader)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Locals(RayIDKey, rid)
		c.Set(RayIDHeader, rid)
		return c.Next()
	}
}
