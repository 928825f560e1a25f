package todo

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/hagwonlab/homework-board/model"
	"github.com/hagwonlab/homework-board/services"
	"github.com/hagwonlab/homework-board/utils/middleware"
	"github.com/hagwonlab/homework-board/utils/response"
	"github.com/hagwonlab/homework-board/utils/validation"
)

// TodoHandler handles todo requests. The caller identity is resolved by the
// identity middleware; role dispatch happens here and the access rules are
// enforced by the service.
type TodoHandler struct {
	todos     *services.TodoService
	users     *services.UserService
	validator *validation.Validator
}

// NewTodoHandler creates a new todo handler
func NewTodoHandler(todos *services.TodoService, users *services.UserService) *TodoHandler {
	return &TodoHandler{
		todos:     todos,
		users:     users,
		validator: validation.NewValidator(),
	}
}

// CreateTodoRequest represents the request body for creating todos. A nil
// assignee fans the creation out to every registered student.
type CreateTodoRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description"`
	DueDate     *string `json:"due_date"`
	Completed   bool    `json:"completed"`
	AssigneeID  *uint   `json:"assignee_id"`
}

// UpdateTodoRequest is a teacher patch body. A missing key leaves the field
// unchanged; an explicit null clears the nullable ones.
type UpdateTodoRequest struct {
	Title       model.Field[string] `json:"title"`
	Description model.Field[string] `json:"description"`
	DueDate     model.Field[string] `json:"due_date"`
	Completed   model.Field[bool]   `json:"completed"`
	AssigneeID  model.Field[uint]   `json:"assignee_id"`
}

// AssignTodoRequest represents the request body for assigning a todo
type AssignTodoRequest struct {
	AssigneeID *uint `json:"assignee_id" validate:"required"`
}

func todoID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	return uint(id), err
}

// ListTodos handles GET /api/todos: owned todos for a teacher, assigned
// todos for a student, newest first.
func (h *TodoHandler) ListTodos(c *fiber.Ctx) error {
	caller := middleware.CurrentUser(c)

	var (
		todos []model.Todo
		err   error
	)
	if caller.Role == model.RoleTeacher {
		todos, err = h.todos.ListForTeacher(caller.ID)
	} else {
		todos, err = h.todos.ListForStudent(caller.ID)
	}
	if err != nil {
		return response.ServiceError(c, err)
	}

	serialized, err := serializeTodos(h.users, todos)
	if err != nil {
		return response.InternalServerError(c, "")
	}
	return response.Success(c, serialized)
}

// CreateTodo handles POST /api/todos
func (h *TodoHandler) CreateTodo(c *fiber.Ctx) error {
	caller := middleware.CurrentUser(c)

	var req CreateTodoRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	req.Title = strings.TrimSpace(req.Title)
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.BadRequest(c, validation.FormatValidationMessage(err))
	}

	dueDate, err := services.NormalizeDueDate(req.DueDate)
	if err != nil {
		return response.ServiceError(c, err)
	}

	created, err := h.todos.CreateTodos(caller.ID, services.CreateTodoInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     dueDate,
		Completed:   req.Completed,
		AssigneeID:  req.AssigneeID,
	})
	if err != nil {
		return response.ServiceError(c, err)
	}

	serialized, err := serializeTodos(h.users, created)
	if err != nil {
		return response.InternalServerError(c, "")
	}
	if len(serialized) == 1 {
		return response.Created(c, serialized[0])
	}
	return response.Created(c, serialized)
}

// GetTodo handles GET /api/todos/:id
func (h *TodoHandler) GetTodo(c *fiber.Ctx) error {
	caller := middleware.CurrentUser(c)

	id, err := todoID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid todo id")
	}

	var item *model.Todo
	if caller.Role == model.RoleTeacher {
		item, err = h.todos.VerifyTeacherAccess(id, caller.ID)
	} else {
		item, err = h.todos.VerifyStudentAccess(id, caller.ID)
	}
	if err != nil {
		return response.ServiceError(c, err)
	}

	serialized, err := serializeTodo(h.users, *item)
	if err != nil {
		return response.InternalServerError(c, "")
	}
	return response.Success(c, serialized)
}

// AssignTodo handles POST /api/todos/:id/assign
func (h *TodoHandler) AssignTodo(c *fiber.Ctx) error {
	caller := middleware.CurrentUser(c)

	id, err := todoID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid todo id")
	}

	var req AssignTodoRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.BadRequest(c, validation.FormatValidationMessage(err))
	}

	updated, err := h.todos.AssignTodo(id, caller.ID, *req.AssigneeID)
	if err != nil {
		return response.ServiceError(c, err)
	}

	serialized, err := serializeTodo(h.users, *updated)
	if err != nil {
		return response.InternalServerError(c, "")
	}
	return response.Success(c, serialized)
}

// ReplaceTodo handles PUT /api/todos/:id: a full replace from the owning
// teacher where title is required and the nullable fields default to cleared.
func (h *TodoHandler) ReplaceTodo(c *fiber.Ctx) error {
	caller := middleware.CurrentUser(c)

	id, err := todoID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid todo id")
	}

	var req UpdateTodoRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if title, ok := req.Title.Get(); !ok || strings.TrimSpace(title) == "" {
		return response.BadRequest(c, "title must be a non-empty string")
	}

	update := services.TodoUpdate{
		Title:      req.Title,
		Completed:  req.Completed,
		AssigneeID: req.AssigneeID,
		// PUT replaces the nullable fields even when they are absent
		Description: req.Description,
		DueDate:     req.DueDate,
	}
	if !req.Description.Present() {
		update.Description = model.FieldOf("")
	}
	if !req.DueDate.Present() {
		update.DueDate = model.NullField[string]()
	}

	updated, err := h.todos.UpdateTodoByTeacher(id, caller.ID, update)
	if err != nil {
		return response.ServiceError(c, err)
	}

	serialized, err := serializeTodo(h.users, *updated)
	if err != nil {
		return response.InternalServerError(c, "")
	}
	return response.Success(c, serialized)
}

// UpdateTodo handles PATCH /api/todos/:id. Teachers may patch any field; a
// student may only toggle completion, and any other field in the body is
// rejected before it reaches the service.
func (h *TodoHandler) UpdateTodo(c *fiber.Ctx) error {
	caller := middleware.CurrentUser(c)

	id, err := todoID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid todo id")
	}

	var req UpdateTodoRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	var updated *model.Todo
	if caller.Role == model.RoleTeacher {
		updated, err = h.todos.UpdateTodoByTeacher(id, caller.ID, services.TodoUpdate{
			Title:       req.Title,
			Description: req.Description,
			DueDate:     req.DueDate,
			Completed:   req.Completed,
			AssigneeID:  req.AssigneeID,
		})
	} else {
		if req.Title.Present() || req.Description.Present() ||
			req.DueDate.Present() || req.AssigneeID.Present() || !req.Completed.Present() {
			return response.Forbidden(c, "students may only change the completion flag")
		}
		completed, ok := req.Completed.Get()
		if !ok {
			return response.BadRequest(c, "completed must be a boolean")
		}
		updated, err = h.todos.UpdateTodoByStudent(id, caller.ID, completed)
	}
	if err != nil {
		return response.ServiceError(c, err)
	}

	serialized, err := serializeTodo(h.users, *updated)
	if err != nil {
		return response.InternalServerError(c, "")
	}
	return response.Success(c, serialized)
}

// DeleteTodo handles DELETE /api/todos/:id
func (h *TodoHandler) DeleteTodo(c *fiber.Ctx) error {
	caller := middleware.CurrentUser(c)

	id, err := todoID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid todo id")
	}

	if err := h.todos.DeleteTodo(id, caller.ID); err != nil {
		return response.ServiceError(c, err)
	}
	return response.NoContent(c)
}
