package placeholder

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTodoItem(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/todos/7", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"userId": 2, "id": 7, "title": "delegate", "completed": true}`))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})

	item, err := client.GetTodoItem(context.Background(), 7)
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, 7, item.ID)
	assert.Equal(t, 2, item.UserID)
	assert.Equal(t, "delegate", item.Title)
	assert.True(t, item.Completed)
}

func TestGetTodoItemNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})

	item, err := client.GetTodoItem(context.Background(), 99999)
	require.NoError(t, err)
	assert.Nil(t, item)
}

func TestGetTodoItemUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})

	item, err := client.GetTodoItem(context.Background(), 1)
	require.Error(t, err)
	assert.Nil(t, item)

	var clientErr *ClientError
	require.True(t, errors.As(err, &clientErr))
	assert.Contains(t, clientErr.Message, "status 500")
}

func TestGetTodoItemBadJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})

	_, err := client.GetTodoItem(context.Background(), 1)
	require.Error(t, err)

	var clientErr *ClientError
	assert.True(t, errors.As(err, &clientErr))
}

func TestGetTodoItemTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, Timeout: 20 * time.Millisecond})

	_, err := client.GetTodoItem(context.Background(), 1)
	require.Error(t, err)

	var clientErr *ClientError
	require.True(t, errors.As(err, &clientErr))
	assert.Contains(t, clientErr.Message, "did not respond")
}

func TestGetTodoItemConnectionRefused(t *testing.T) {
	client := NewClient(Config{BaseURL: "http://127.0.0.1:1"})

	_, err := client.GetTodoItem(context.Background(), 1)
	require.Error(t, err)

	var clientErr *ClientError
	require.True(t, errors.As(err, &clientErr))
}
