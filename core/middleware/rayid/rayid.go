package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// HeaderName carries the ray id in requests and responses.
const HeaderName = "X-Ray-ID"

// LocalsKey is the fiber locals key holding the ray id.
const LocalsKey = "ray_id"

// New returns a middleware assigning every request a ray id.
// An incoming X-Ray-ID header is reused.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(HeaderName)
		if id == "" {
			id = uuid.NewString()
		}
		c.Locals(LocalsKey, id)
		c.Set(HeaderName, id)
		return c.Next()
	}
}
