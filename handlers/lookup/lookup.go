// Package lookup exposes the legacy single-item detail view backed by the
// third-party todo API. It has nothing to do with this service's own todos.
package lookup

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/hagwonlab/homework-board/services/placeholder"
	"github.com/hagwonlab/homework-board/utils/response"
)

// LookupHandler handles external todo lookups
type LookupHandler struct {
	client *placeholder.Client
}

// NewLookupHandler creates a new lookup handler
func NewLookupHandler(client *placeholder.Client) *LookupHandler {
	return &LookupHandler{client: client}
}

// GetTodoItem handles GET /api/lookup/todos/:id. The item with external id 1
// has its title overridden to a fixed literal; this is a deliberate legacy
// quirk, kept as-is.
func (h *LookupHandler) GetTodoItem(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid todo id")
	}

	item, err := h.client.GetTodoItem(c.Context(), id)
	if err != nil {
		var clientErr *placeholder.ClientError
		if errors.As(err, &clientErr) {
			return response.BadGateway(c, clientErr.Message)
		}
		return response.InternalServerError(c, "")
	}
	if item == nil {
		return response.NotFound(c, "todo item "+strconv.Itoa(id)+" not found")
	}

	if item.ID == 1 {
		item.Title = "hi"
	}

	return response.Success(c, item)
}
