package services

import (
	"github.com/hagwonlab/homework-board/apperr"
	"github.com/hagwonlab/homework-board/database"
	"github.com/hagwonlab/homework-board/model"
)

// UserService is the user directory: it wraps the store's user operations and
// enforces role existence and role-match checks for the todo service and the
// HTTP boundary.
type UserService struct {
	store database.UserStore
}

// NewUserService creates a new user directory backed by the given store.
func NewUserService(store database.UserStore) *UserService {
	return &UserService{store: store}
}

// CreateUser creates a user with the given role. Role validity is the
// boundary's responsibility; the directory stores what it is given.
func (s *UserService) CreateUser(name string, role model.Role) (*model.User, error) {
	return s.store.CreateUser(name, role)
}

// CreateStudent is a convenience wrapper for CreateUser with the student role.
func (s *UserService) CreateStudent(name string) (*model.User, error) {
	return s.store.CreateUser(name, model.RoleStudent)
}

// GetUser returns the user with the given id or a NotFound error.
func (s *UserService) GetUser(id uint) (*model.User, error) {
	user, err := s.store.GetUser(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("user %d not found", id)
	}
	return user, nil
}

// ListUsers returns all users in ascending id order.
func (s *UserService) ListUsers() ([]model.User, error) {
	return s.store.ListUsers()
}

// ListStudents returns all students in ascending id order.
func (s *UserService) ListStudents() ([]model.User, error) {
	users, err := s.store.ListUsers()
	if err != nil {
		return nil, err
	}
	students := make([]model.User, 0, len(users))
	for _, user := range users {
		if user.Role == model.RoleStudent {
			students = append(students, user)
		}
	}
	return students, nil
}

// EnsureTeacher returns the user when it exists and is a teacher. A missing
// user is NotFound; a non-teacher is PermissionDenied.
func (s *UserService) EnsureTeacher(id uint) (*model.User, error) {
	user, err := s.GetUser(id)
	if err != nil {
		return nil, err
	}
	if user.Role != model.RoleTeacher {
		return nil, apperr.PermissionDenied("teacher role required")
	}
	return user, nil
}

// EnsureStudent returns the user when it exists and is a student. A missing
// user is NotFound; a non-student is a Validation error, not PermissionDenied:
// the id arrived as input data (an assignee field), so a wrong role means the
// input was invalid rather than the caller unauthorized.
func (s *UserService) EnsureStudent(id uint) (*model.User, error) {
	user, err := s.GetUser(id)
	if err != nil {
		return nil, err
	}
	if user.Role != model.RoleStudent {
		return nil, apperr.Validation("a valid student id is required")
	}
	return user, nil
}

// DeleteStudent validates the role via EnsureStudent and then deletes the
// user. Nothing is deleted when the id does not belong to a student.
func (s *UserService) DeleteStudent(id uint) error {
	student, err := s.EnsureStudent(id)
	if err != nil {
		return err
	}
	_, err = s.store.DeleteUser(student.ID)
	return err
}
