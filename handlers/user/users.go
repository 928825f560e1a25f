package user

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/hagwonlab/homework-board/model"
	"github.com/hagwonlab/homework-board/services"
	"github.com/hagwonlab/homework-board/utils/middleware"
	"github.com/hagwonlab/homework-board/utils/response"
	"github.com/hagwonlab/homework-board/utils/validation"
)

// UserHandler handles user directory requests
type UserHandler struct {
	users     *services.UserService
	validator *validation.Validator
}

// NewUserHandler creates a new user handler
func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{
		users:     users,
		validator: validation.NewValidator(),
	}
}

// CreateUserRequest represents the request body for creating a user
type CreateUserRequest struct {
	Name string `json:"name" validate:"required,min=1,max=255"`
	Role string `json:"role" validate:"required,oneof=teacher student"`
}

// CreateStudentRequest represents the request body for creating a student
type CreateStudentRequest struct {
	Name string `json:"name" validate:"required,min=1,max=255"`
}

// ListUsers handles GET /api/users
func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.users.ListUsers()
	if err != nil {
		return response.ServiceError(c, err)
	}
	return response.Success(c, users)
}

// GetUser handles GET /api/users/:id
func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid user id")
	}

	user, err := h.users.GetUser(uint(id))
	if err != nil {
		return response.ServiceError(c, err)
	}
	return response.Success(c, user)
}

// CreateUser handles POST /api/users. The role enum is validated here at the
// boundary, not by the directory.
func (h *UserHandler) CreateUser(c *fiber.Ctx) error {
	var req CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.BadRequest(c, validation.FormatValidationMessage(err))
	}

	user, err := h.users.CreateUser(req.Name, model.Role(req.Role))
	if err != nil {
		return response.ServiceError(c, err)
	}
	return response.Created(c, user)
}

// ListStudents handles GET /api/students
func (h *UserHandler) ListStudents(c *fiber.Ctx) error {
	students, err := h.users.ListStudents()
	if err != nil {
		return response.ServiceError(c, err)
	}
	return response.Success(c, students)
}

// CreateStudent handles POST /api/students. Only a teacher may register
// students.
func (h *UserHandler) CreateStudent(c *fiber.Ctx) error {
	caller := middleware.CurrentUser(c)
	if _, err := h.users.EnsureTeacher(caller.ID); err != nil {
		return response.ServiceError(c, err)
	}

	var req CreateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.BadRequest(c, validation.FormatValidationMessage(err))
	}

	student, err := h.users.CreateStudent(req.Name)
	if err != nil {
		return response.ServiceError(c, err)
	}
	return response.Created(c, student)
}

// DeleteStudent handles DELETE /api/students/:id. Only a teacher may remove
// students; deleting a non-student id fails validation and removes nothing.
func (h *UserHandler) DeleteStudent(c *fiber.Ctx) error {
	caller := middleware.CurrentUser(c)
	if _, err := h.users.EnsureTeacher(caller.ID); err != nil {
		return response.ServiceError(c, err)
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid user id")
	}

	if err := h.users.DeleteStudent(uint(id)); err != nil {
		return response.ServiceError(c, err)
	}
	return response.NoContent(c)
}
