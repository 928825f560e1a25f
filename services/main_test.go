package services

import (
	"testing"

	"github.com/hagwonlab/homework-board/database"
	"github.com/hagwonlab/homework-board/model"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestStore opens an in-memory sqlite store with foreign keys enabled,
// mirroring the production schema via AutoMigrate.
func newTestStore(t *testing.T) *database.GORMStore {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// a single connection keeps every query on the same in-memory database
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)

	store := database.NewGORMStore(db)
	require.NoError(t, store.Init())

	t.Cleanup(func() { store.Close() })
	return store
}

func newTestServices(t *testing.T) (*database.GORMStore, *UserService, *TodoService) {
	t.Helper()
	store := newTestStore(t)
	users := NewUserService(store)
	todos := NewTodoService(store, users)
	return store, users, todos
}

func createTeacher(t *testing.T, users *UserService, name string) *model.User {
	t.Helper()
	teacher, err := users.CreateUser(name, model.RoleTeacher)
	require.NoError(t, err)
	return teacher
}

func createStudent(t *testing.T, users *UserService, name string) *model.User {
	t.Helper()
	student, err := users.CreateStudent(name)
	require.NoError(t, err)
	return student
}
