package middleware

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/hagwonlab/homework-board/apperr"
	"github.com/hagwonlab/homework-board/model"
	"github.com/hagwonlab/homework-board/services"
	"github.com/hagwonlab/homework-board/utils/response"
)

// IdentityHeader carries the asserted caller identity. There is no
// authentication mechanism; the caller tells us who they are and the
// directory confirms the user exists.
const IdentityHeader = "X-User-Id"

const identityLocal = "currentUser"

// IdentityMiddleware resolves the asserted caller identity into a User once
// per request, before any service call.
type IdentityMiddleware struct {
	users *services.UserService
}

// NewIdentityMiddleware creates a new identity middleware backed by the user
// directory.
func NewIdentityMiddleware(users *services.UserService) *IdentityMiddleware {
	return &IdentityMiddleware{users: users}
}

// Required rejects requests without a resolvable identity.
func (m *IdentityMiddleware) Required() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Get(IdentityHeader)
		if raw == "" {
			return response.Unauthorized(c, "Missing "+IdentityHeader+" header")
		}

		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return response.Unauthorized(c, "Invalid user id")
		}

		user, err := m.users.GetUser(uint(id))
		if err != nil {
			if apperr.IsNotFound(err) {
				return response.Unauthorized(c, "Unknown user")
			}
			return response.InternalServerError(c, "")
		}

		c.Locals(identityLocal, user)
		return c.Next()
	}
}

// CurrentUser returns the identity resolved by Required. It panics when
// called from a route that is not behind the middleware.
func CurrentUser(c *fiber.Ctx) *model.User {
	return c.Locals(identityLocal).(*model.User)
}
