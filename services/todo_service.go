package services

import (
	"strings"
	"time"

	"github.com/hagwonlab/homework-board/apperr"
	"github.com/hagwonlab/homework-board/database"
	"github.com/hagwonlab/homework-board/model"
)

// TodoService wraps the store's todo operations and enforces the
// ownership/assignment access rules: a todo is created only by a teacher,
// mutated by its owning teacher (any field) or its assigned student
// (completion flag only), and deleted only by its owning teacher.
type TodoService struct {
	store database.TodoStore
	users *UserService
}

// NewTodoService creates a new todo service. Permission checks are delegated
// to the given user directory.
func NewTodoService(store database.TodoStore, users *UserService) *TodoService {
	return &TodoService{store: store, users: users}
}

// CreateTodoInput carries the fields for CreateTodos. A nil AssigneeID fans
// the creation out to every registered student. CompletedAt overrides the
// stamp for pre-completed items (used by the seeder); it is ignored unless
// Completed is true.
type CreateTodoInput struct {
	Title       string
	Description string
	DueDate     *string // already normalized, canonical YYYY-MM-DD
	Completed   bool
	AssigneeID  *uint
	CompletedAt *time.Time
}

// TodoUpdate is a partial update from the owning teacher. Absent fields leave
// the stored value unchanged; a present-and-null DueDate or AssigneeID clears
// the column.
type TodoUpdate struct {
	Title       model.Field[string]
	Description model.Field[string]
	DueDate     model.Field[string]
	Completed   model.Field[bool]
	AssigneeID  model.Field[uint]
}

// ListForTeacher returns the todos owned by the teacher, newest id first.
func (s *TodoService) ListForTeacher(teacherID uint) ([]model.Todo, error) {
	if _, err := s.users.EnsureTeacher(teacherID); err != nil {
		return nil, err
	}
	return s.store.ListTodos(database.TodoFilter{OwnerID: &teacherID})
}

// ListForStudent returns the todos assigned to the student, newest id first.
func (s *TodoService) ListForStudent(studentID uint) ([]model.Todo, error) {
	if _, err := s.users.EnsureStudent(studentID); err != nil {
		return nil, err
	}
	return s.store.ListTodos(database.TodoFilter{AssigneeID: &studentID})
}

// CreateTodos creates one todo when an assignee is given, or one per
// registered student when it is not. The fan-out issues one insert per
// student and is not wrapped in a transaction; a crash mid-way can leave a
// partial set.
func (s *TodoService) CreateTodos(ownerID uint, in CreateTodoInput) ([]model.Todo, error) {
	if _, err := s.users.EnsureTeacher(ownerID); err != nil {
		return nil, err
	}

	completedAt := s.creationStamp(in)

	if in.AssigneeID != nil {
		student, err := s.users.EnsureStudent(*in.AssigneeID)
		if err != nil {
			return nil, err
		}
		todo, err := s.store.CreateTodo(database.CreateTodoParams{
			Title:       in.Title,
			Description: in.Description,
			Completed:   in.Completed,
			OwnerID:     ownerID,
			AssigneeID:  &student.ID,
			DueDate:     in.DueDate,
			CompletedAt: completedAt,
		})
		if err != nil {
			return nil, err
		}
		return []model.Todo{*todo}, nil
	}

	students, err := s.users.ListStudents()
	if err != nil {
		return nil, err
	}
	if len(students) == 0 {
		return nil, apperr.Validation("no students are registered")
	}

	created := make([]model.Todo, 0, len(students))
	for _, student := range students {
		assigneeID := student.ID
		todo, err := s.store.CreateTodo(database.CreateTodoParams{
			Title:       in.Title,
			Description: in.Description,
			Completed:   in.Completed,
			OwnerID:     ownerID,
			AssigneeID:  &assigneeID,
			DueDate:     in.DueDate,
			CompletedAt: completedAt,
		})
		if err != nil {
			return nil, err
		}
		created = append(created, *todo)
	}
	return created, nil
}

func (s *TodoService) creationStamp(in CreateTodoInput) *time.Time {
	if !in.Completed {
		return nil
	}
	if in.CompletedAt != nil {
		return in.CompletedAt
	}
	return completionTimestamp(true)
}

func (s *TodoService) getTodo(id uint) (*model.Todo, error) {
	todo, err := s.store.GetTodo(id)
	if err != nil {
		return nil, err
	}
	if todo == nil {
		return nil, apperr.NotFound("todo item %d not found", id)
	}
	return todo, nil
}

// VerifyTeacherAccess returns the todo when it exists and is owned by the
// teacher. A missing todo is NotFound; a foreign one is PermissionDenied.
func (s *TodoService) VerifyTeacherAccess(todoID, teacherID uint) (*model.Todo, error) {
	todo, err := s.getTodo(todoID)
	if err != nil {
		return nil, err
	}
	if todo.OwnerID != teacherID {
		return nil, apperr.PermissionDenied("cannot access this todo item")
	}
	return todo, nil
}

// VerifyStudentAccess returns the todo when it exists and is assigned to the
// student.
func (s *TodoService) VerifyStudentAccess(todoID, studentID uint) (*model.Todo, error) {
	todo, err := s.getTodo(todoID)
	if err != nil {
		return nil, err
	}
	if todo.AssigneeID == nil || *todo.AssigneeID != studentID {
		return nil, apperr.PermissionDenied("cannot access this todo item")
	}
	return todo, nil
}

// AssignTodo assigns the todo to the given student. Completion, due date, and
// the other fields are untouched.
func (s *TodoService) AssignTodo(todoID, ownerID, studentID uint) (*model.Todo, error) {
	if _, err := s.VerifyTeacherAccess(todoID, ownerID); err != nil {
		return nil, err
	}
	student, err := s.users.EnsureStudent(studentID)
	if err != nil {
		return nil, err
	}
	return s.store.UpdateTodo(todoID, model.TodoPatch{
		AssigneeID: model.FieldOf(student.ID),
	})
}

// UpdateTodoByTeacher applies a partial update from the owning teacher.
// Fields absent from the update keep their stored value; a present completed
// flag that differs from the stored one moves the completion timestamp per
// the transition rule, while a self-transition leaves it untouched.
func (s *TodoService) UpdateTodoByTeacher(todoID, ownerID uint, update TodoUpdate) (*model.Todo, error) {
	todo, err := s.VerifyTeacherAccess(todoID, ownerID)
	if err != nil {
		return nil, err
	}

	var patch model.TodoPatch

	if update.Title.Present() {
		title, ok := update.Title.Get()
		if !ok || strings.TrimSpace(title) == "" {
			return nil, apperr.Validation("title must be a non-empty string")
		}
		patch.Title = model.FieldOf(strings.TrimSpace(title))
	}

	if update.Description.Present() {
		// description is never null; clearing means empty string
		description, _ := update.Description.Get()
		patch.Description = model.FieldOf(description)
	}

	if update.DueDate.Present() {
		raw := update.DueDate.Ptr()
		normalized, err := NormalizeDueDate(raw)
		if err != nil {
			return nil, err
		}
		if normalized == nil {
			patch.DueDate = model.NullField[string]()
		} else {
			patch.DueDate = model.FieldOf(*normalized)
		}
	}

	if update.AssigneeID.Present() {
		if id, ok := update.AssigneeID.Get(); ok {
			student, err := s.users.EnsureStudent(id)
			if err != nil {
				return nil, err
			}
			patch.AssigneeID = model.FieldOf(student.ID)
		} else {
			patch.AssigneeID = model.NullField[uint]()
		}
	}

	if update.Completed.Present() {
		completed, ok := update.Completed.Get()
		if !ok {
			return nil, apperr.Validation("completed must be a boolean")
		}
		patch.Completed = model.FieldOf(completed)
		if completed != todo.Completed {
			patch.CompletedAt = completionStampPatch(completed)
		}
	}

	return s.store.UpdateTodo(todoID, patch)
}

// UpdateTodoByStudent toggles the completion flag for the assigned student.
// No other field can be reached through this path.
func (s *TodoService) UpdateTodoByStudent(todoID, studentID uint, completed bool) (*model.Todo, error) {
	todo, err := s.VerifyStudentAccess(todoID, studentID)
	if err != nil {
		return nil, err
	}

	patch := model.TodoPatch{Completed: model.FieldOf(completed)}
	if completed != todo.Completed {
		patch.CompletedAt = completionStampPatch(completed)
	}
	return s.store.UpdateTodo(todoID, patch)
}

// DeleteTodo deletes the todo on behalf of its owning teacher.
func (s *TodoService) DeleteTodo(todoID, ownerID uint) error {
	if _, err := s.VerifyTeacherAccess(todoID, ownerID); err != nil {
		return err
	}
	_, err := s.store.DeleteTodo(todoID)
	return err
}

func completionTimestamp(completed bool) *time.Time {
	if !completed {
		return nil
	}
	now := time.Now().UTC().Truncate(time.Second)
	return &now
}

func completionStampPatch(completed bool) model.Field[time.Time] {
	if stamp := completionTimestamp(completed); stamp != nil {
		return model.FieldOf(*stamp)
	}
	return model.NullField[time.Time]()
}
