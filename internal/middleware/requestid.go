package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	// HeaderRequestID is the header carrying the request identifier.
	HeaderRequestID = "X-Request-ID"
	// RequestIDKey is the fiber locals key the identifier is stored under.
	RequestIDKey = "request_id"
)

// RequestID makes sure every request carries a stable identifier: an
// incoming one is kept, otherwise a fresh UUID is minted. The identifier is
// echoed on the response and exposed via locals for log correlation.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}

		c.Locals(RequestIDKey, id)
		c.Set(HeaderRequestID, id)

		return c.Next()
	}
}
