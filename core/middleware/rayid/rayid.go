package rayid

import (
	"table-reconciler/core/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Header is the request and response header carrying the ray id.
const Header = "X-Ray-ID"

// New returns a middleware that assigns every request a ray id. An incoming
// X-Ray-ID header is reused; otherwise a random UUID is generated. The id is
// stored in c.Locals under logger.RayIDKey and echoed in the response.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get(Header)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Locals(logger.RayIDKey, rid)
		c.Set(Header, rid)
		return c.Next()
	}
}
