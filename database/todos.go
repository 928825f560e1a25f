package database

import (
	"errors"
	"time"

	"github.com/hagwonlab/homework-board/model"
	"gorm.io/gorm"
)

// TodoStore defines the todo persistence operations the service layer needs.
type TodoStore interface {
	CreateTodo(params CreateTodoParams) (*model.Todo, error)
	GetTodo(id uint) (*model.Todo, error)
	FindTodoByTitleAndOwner(title string, ownerID uint) (*model.Todo, error)
	ListTodos(filter TodoFilter) ([]model.Todo, error)
	UpdateTodo(id uint, patch model.TodoPatch) (*model.Todo, error)
	DeleteTodo(id uint) (bool, error)
	CountTodos() (int64, error)
}

// CreateTodoParams holds the full column set for a todo insert.
type CreateTodoParams struct {
	Title       string
	Description string
	Completed   bool
	OwnerID     uint
	AssigneeID  *uint
	DueDate     *string
	CompletedAt *time.Time
}

// TodoFilter narrows ListTodos. Nil fields are ignored.
type TodoFilter struct {
	OwnerID    *uint
	AssigneeID *uint
}

// CreateTodo inserts a single todo row and returns the persisted record.
func (s *GORMStore) CreateTodo(params CreateTodoParams) (*model.Todo, error) {
	todo := model.Todo{
		Title:       params.Title,
		Description: params.Description,
		Completed:   params.Completed,
		OwnerID:     params.OwnerID,
		AssigneeID:  params.AssigneeID,
		DueDate:     params.DueDate,
		CompletedAt: params.CompletedAt,
	}
	if err := s.db.Create(&todo).Error; err != nil {
		return nil, err
	}
	return &todo, nil
}

// GetTodo returns the todo with the given id, or (nil, nil) when no record
// matches.
func (s *GORMStore) GetTodo(id uint) (*model.Todo, error) {
	var todo model.Todo
	if err := s.db.First(&todo, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &todo, nil
}

// FindTodoByTitleAndOwner returns the first matching todo, or (nil, nil).
// Used by the seeder.
func (s *GORMStore) FindTodoByTitleAndOwner(title string, ownerID uint) (*model.Todo, error) {
	var todo model.Todo
	err := s.db.Where("title = ? AND owner_id = ?", title, ownerID).Order("id").First(&todo).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &todo, nil
}

// ListTodos returns todos matching the filter, newest id first.
func (s *GORMStore) ListTodos(filter TodoFilter) ([]model.Todo, error) {
	query := s.db.Model(&model.Todo{})
	if filter.OwnerID != nil {
		query = query.Where("owner_id = ?", *filter.OwnerID)
	}
	if filter.AssigneeID != nil {
		query = query.Where("assignee_id = ?", *filter.AssigneeID)
	}

	var todos []model.Todo
	if err := query.Order("id DESC").Find(&todos).Error; err != nil {
		return nil, err
	}
	return todos, nil
}

// UpdateTodo writes the present fields of the patch and returns the updated
// row. An empty patch is a plain read-back.
func (s *GORMStore) UpdateTodo(id uint, patch model.TodoPatch) (*model.Todo, error) {
	updates := map[string]interface{}{}
	if patch.Title.Present() {
		updates["title"] = patch.Title.Ptr()
	}
	if patch.Description.Present() {
		updates["description"] = patch.Description.Ptr()
	}
	if patch.Completed.Present() {
		updates["completed"] = patch.Completed.Ptr()
	}
	if patch.AssigneeID.Present() {
		updates["assignee_id"] = patch.AssigneeID.Ptr()
	}
	if patch.DueDate.Present() {
		updates["due_date"] = patch.DueDate.Ptr()
	}
	if patch.CompletedAt.Present() {
		updates["completed_at"] = patch.CompletedAt.Ptr()
	}

	if len(updates) > 0 {
		result := s.db.Model(&model.Todo{}).Where("id = ?", id).Updates(updates)
		if result.Error != nil {
			return nil, result.Error
		}
	}
	return s.GetTodo(id)
}

// DeleteTodo removes a todo and reports whether a row was deleted.
func (s *GORMStore) DeleteTodo(id uint) (bool, error) {
	result := s.db.Delete(&model.Todo{}, id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (s *GORMStore) CountTodos() (int64, error) {
	var count int64
	if err := s.db.Model(&model.Todo{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
