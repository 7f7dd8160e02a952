// Package client talks to a running task service over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"taskapi/internal/task"
)

type Client struct {
	base string
	http *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		base: strings.TrimRight(baseURL, "/"),
		http: &http.Client{Timeout: 30 * time.Second},
	}
}

// StatusError is a non-2xx reply from the service.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned %d", e.Code)
	}
	return fmt.Sprintf("server returned %d: %s", e.Code, e.Message)
}

// List fetches all tasks in insertion order.
func (c *Client) List(ctx context.Context) ([]task.Task, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/tasks", nil)
	if err != nil {
		return nil, err
	}
	var out []task.Task
	if err := c.do(req, http.StatusOK, &out); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	if out == nil {
		out = []task.Task{}
	}
	return out, nil
}

// Add posts t and returns the echoed task.
func (c *Client) Add(ctx context.Context, t task.Task) (task.Task, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/tasks", bytes.NewReader(t))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	var out task.Task
	if err := c.do(req, http.StatusCreated, &out); err != nil {
		return nil, fmt.Errorf("add task: %w", err)
	}
	return out, nil
}

func (c *Client) do(req *http.Request, want int, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != want {
		se := &StatusError{Code: resp.StatusCode}
		var e struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(body, &e) == nil {
			se.Message = e.Error
		} else {
			se.Message = strings.TrimSpace(string(body))
		}
		return se
	}
	return json.Unmarshal(body, out)
}
