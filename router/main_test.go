package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/hagwonlab/homework-board/database"
	"github.com/hagwonlab/homework-board/services/placeholder"
	"github.com/hagwonlab/homework-board/utils/middleware"
	"github.com/hagwonlab/homework-board/utils/response"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestApp(t *testing.T, lookupURL string) (*fiber.App, *database.GORMStore) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)

	store := database.NewGORMStore(db)
	require.NoError(t, store.Init())
	t.Cleanup(func() { store.Close() })

	app := fiber.New()
	SetupRoutes(app, store, placeholder.NewClient(placeholder.Config{BaseURL: lookupURL}))
	return app, store
}

func doJSON(t *testing.T, app *fiber.App, method, path string, userID uint, body interface{}) (*http.Response, response.Response) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if userID != 0 {
		req.Header.Set(middleware.IdentityHeader, strconv.FormatUint(uint64(userID), 10))
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var envelope response.Response
	if resp.StatusCode != http.StatusNoContent {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	}
	resp.Body.Close()
	return resp, envelope
}

func createUserViaAPI(t *testing.T, app *fiber.App, name, role string) uint {
	t.Helper()

	resp, envelope := doJSON(t, app, http.MethodPost, "/api/users", 0, map[string]string{
		"name": name,
		"role": role,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	data, ok := envelope.Data.(map[string]interface{})
	require.True(t, ok)
	id, ok := data["id"].(float64)
	require.True(t, ok)
	return uint(id)
}

func TestHealthEndpoint(t *testing.T) {
	app, _ := newTestApp(t, "http://127.0.0.1:1")

	resp, envelope := doJSON(t, app, http.MethodGet, "/health", 0, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, envelope.Success)
	assert.Equal(t, "ok", envelope.Message)
}

func TestTodosRequireIdentity(t *testing.T) {
	app, _ := newTestApp(t, "http://127.0.0.1:1")

	resp, envelope := doJSON(t, app, http.MethodGet, "/api/todos", 0, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.False(t, envelope.Success)

	// an unknown identity is also rejected
	resp, _ = doJSON(t, app, http.MethodGet, "/api/todos", 9999, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCreateUserValidation(t *testing.T) {
	app, _ := newTestApp(t, "http://127.0.0.1:1")

	resp, _ := doJSON(t, app, http.MethodPost, "/api/users", 0, map[string]string{
		"name": "Kim",
		"role": "principal",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPost, "/api/users", 0, map[string]string{
		"role": "teacher",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestTodoFlowOverHTTP(t *testing.T) {
	app, _ := newTestApp(t, "http://127.0.0.1:1")

	teacherID := createUserViaAPI(t, app, "Kim", "teacher")
	studentID := createUserViaAPI(t, app, "Lee", "student")

	// fan-out to the single registered student
	resp, envelope := doJSON(t, app, http.MethodPost, "/api/todos", teacherID, map[string]interface{}{
		"title":       "Math homework",
		"description": "p. 32",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.True(t, envelope.Success)

	// one student means one todo, returned as a single object
	data, ok := envelope.Data.(map[string]interface{})
	require.True(t, ok)
	todoID := uint(data["id"].(float64))
	assert.Equal(t, "Math homework", data["title"])

	// a student creating todos is forbidden
	resp, _ = doJSON(t, app, http.MethodPost, "/api/todos", studentID, map[string]interface{}{
		"title": "Nope",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// the student sees the assigned todo
	resp, envelope = doJSON(t, app, http.MethodGet, "/api/todos", studentID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	items, ok := envelope.Data.([]interface{})
	require.True(t, ok)
	assert.Len(t, items, 1)

	// the student may flip the completion flag
	path := fmt.Sprintf("/api/todos/%d", todoID)
	resp, envelope = doJSON(t, app, http.MethodPatch, path, studentID, map[string]interface{}{
		"completed": true,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data, ok = envelope.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, true, data["completed"])
	assert.NotNil(t, data["completed_at"])

	// but nothing else
	resp, _ = doJSON(t, app, http.MethodPatch, path, studentID, map[string]interface{}{
		"title": "renamed",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPatch, path, studentID, map[string]interface{}{
		"completed": true,
		"title":     "renamed",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPatch, path, studentID, map[string]interface{}{
		"completed": nil,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// the teacher may clear the assignee with an explicit null
	resp, envelope = doJSON(t, app, http.MethodPatch, path, teacherID, map[string]interface{}{
		"assignee_id": nil,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data, ok = envelope.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Nil(t, data["assignee"])

	// deletion is owner-only and returns no body
	resp, _ = doJSON(t, app, http.MethodDelete, path, studentID, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodDelete, path, teacherID, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodDelete, path, teacherID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestLookupEndpoint(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/todos/1":
			w.Write([]byte(`{"userId": 1, "id": 1, "title": "delectus aut autem", "completed": false}`))
		case "/todos/2":
			w.Write([]byte(`{"userId": 1, "id": 2, "title": "quis ut nam", "completed": true}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer upstream.Close()

	app, _ := newTestApp(t, upstream.URL)

	// item 1 is special-cased
	resp, envelope := doJSON(t, app, http.MethodGet, "/api/lookup/todos/1", 0, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data, ok := envelope.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "hi", data["title"])

	resp, envelope = doJSON(t, app, http.MethodGet, "/api/lookup/todos/2", 0, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data, ok = envelope.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "quis ut nam", data["title"])

	resp, _ = doJSON(t, app, http.MethodGet, "/api/lookup/todos/77", 0, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodGet, "/api/lookup/todos/0", 0, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLookupUpstreamFailureIsBadGateway(t *testing.T) {
	app, _ := newTestApp(t, "http://127.0.0.1:1")

	resp, envelope := doJSON(t, app, http.MethodGet, "/api/lookup/todos/5", 0, nil)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.False(t, envelope.Success)
}
