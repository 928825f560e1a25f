// Package placeholder is the outbound client for the third-party todo lookup
// API (jsonplaceholder). It is unrelated to this service's own data model and
// its failures are network errors, not part of the core error taxonomy.
package placeholder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/hagwonlab/homework-board/utils/cache"
)

const (
	// BaseURL is the jsonplaceholder API base URL
	BaseURL = "https://jsonplaceholder.typicode.com"
	// DefaultTimeout is the HTTP client timeout for lookup calls
	DefaultTimeout = 5 * time.Second
	// cacheTTL bounds how long a looked-up item is served from Redis
	cacheTTL = 5 * time.Minute
)

// ClientError reports a failed lookup: timeout, connection failure, bad
// upstream status, or an undecodable body. The boundary maps it to 502.
type ClientError struct {
	Message string
	Cause   error
}

func (e *ClientError) Error() string { return e.Message }

func (e *ClientError) Unwrap() error { return e.Cause }

// TodoItem is the upstream representation of a todo resource.
type TodoItem struct {
	UserID    int    `json:"userId"`
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// Config holds configuration for the lookup client.
type Config struct {
	BaseURL string
	Timeout time.Duration
	Cache   *cache.RedisCache // optional read-through cache
}

// Client fetches todo items from the upstream API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      *cache.RedisCache
}

// NewClient creates a new lookup client.
func NewClient(config Config) *Client {
	if config.BaseURL == "" {
		config.BaseURL = BaseURL
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}

	return &Client{
		baseURL: config.BaseURL,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		cache: config.Cache,
	}
}

// GetTodoItem fetches the todo item with the given upstream id. A missing
// item returns (nil, nil); every other failure is a *ClientError.
func (c *Client) GetTodoItem(ctx context.Context, id int) (*TodoItem, error) {
	cacheKey := fmt.Sprintf("lookup:todo:%d", id)

	if c.cache != nil {
		var cached TodoItem
		if err := c.cache.GetJSON(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
		// cache miss or cache failure: fall through to the network
	}

	url := fmt.Sprintf("%s/todos/%d", c.baseURL, id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &ClientError{Message: "failed to build lookup request", Cause: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return nil, &ClientError{
				Message: fmt.Sprintf("todo lookup did not respond within %s", c.httpClient.Timeout),
				Cause:   err,
			}
		}
		return nil, &ClientError{Message: "could not reach the todo lookup API", Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &ClientError{
			Message: fmt.Sprintf("todo lookup failed with status %d", resp.StatusCode),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ClientError{Message: "failed to read lookup response", Cause: err}
	}

	var item TodoItem
	if err := json.Unmarshal(body, &item); err != nil {
		return nil, &ClientError{Message: "failed to decode lookup response as JSON", Cause: err}
	}

	if c.cache != nil {
		if err := c.cache.SetJSON(ctx, cacheKey, item, cacheTTL); err != nil {
			log.Printf("Warning: failed to cache todo lookup %d: %v", id, err)
		}
	}

	return &item, nil
}
