package database

import (
	"errors"

	"github.com/hagwonlab/homework-board/model"
	"gorm.io/gorm"
)

// UserStore defines the user persistence operations the directory layer needs.
type UserStore interface {
	CreateUser(name string, role model.Role) (*model.User, error)
	GetUser(id uint) (*model.User, error)
	FindUserByName(name string) (*model.User, error)
	ListUsers() ([]model.User, error)
	CountUsers() (int64, error)
	DeleteUser(id uint) (bool, error)
}

// CreateUser inserts a new user and returns it with the store-assigned id.
func (s *GORMStore) CreateUser(name string, role model.Role) (*model.User, error) {
	user := model.User{Name: name, Role: role}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUser returns the user with the given id, or (nil, nil) when no record
// matches.
func (s *GORMStore) GetUser(id uint) (*model.User, error) {
	var user model.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// FindUserByName returns the first user with the given name, or (nil, nil).
// Used by the seeder to keep seeding idempotent.
func (s *GORMStore) FindUserByName(name string) (*model.User, error) {
	var user model.User
	err := s.db.Where("name = ?", name).Order("id").First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// ListUsers returns all users in ascending id order.
func (s *GORMStore) ListUsers() ([]model.User, error) {
	var users []model.User
	if err := s.db.Order("id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *GORMStore) CountUsers() (int64, error) {
	var count int64
	if err := s.db.Model(&model.User{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// DeleteUser removes the user with the given id and reports whether a row was
// deleted. Owned todos are removed and assigned todos unassigned by the FK
// constraints on model.User.
func (s *GORMStore) DeleteUser(id uint) (bool, error) {
	result := s.db.Delete(&model.User{}, id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
