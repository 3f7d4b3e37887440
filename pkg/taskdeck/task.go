package taskdeck

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// ListTasks returns one page of the signed-in user's tasks.
func (c *Client) ListTasks(ctx context.Context, opts ...ListTasksOption) (*TaskList, error) {
	q := url.Values{}
	for _, opt := range opts {
		opt(q)
	}
	path := "/tasks"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var list TaskList
	if err := c.do(req, "list tasks", http.StatusOK, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// CreateTask creates a new task with the given title.
func (c *Client) CreateTask(ctx context.Context, title string, opts ...CreateTaskOption) (*Task, error) {
	body := map[string]any{"title": title}
	for _, opt := range opts {
		opt(body)
	}
	return c.taskCall(ctx, http.MethodPost, "/tasks", body, "create task", http.StatusCreated)
}

// UpdateTask changes the given fields of a task.
func (c *Client) UpdateTask(ctx context.Context, id int64, opts ...UpdateTaskOption) (*Task, error) {
	body := map[string]any{}
	for _, opt := range opts {
		opt(body)
	}
	return c.taskCall(ctx, http.MethodPut, taskPath(id), body, "update task", http.StatusOK)
}

// DeleteTask deletes a task. Deleting it again reports not found.
func (c *Client) DeleteTask(ctx context.Context, id int64) error {
	req, err := c.newRequest(ctx, http.MethodDelete, taskPath(id), nil)
	if err != nil {
		return err
	}
	return c.do(req, "delete task", http.StatusOK, nil)
}

func (c *Client) taskCall(ctx context.Context, method, path string, body any, op string, want int) (*Task, error) {
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return nil, err
	}

	var resp taskResponse
	if err := c.do(req, op, want, &resp); err != nil {
		return nil, err
	}
	return resp.Task, nil
}

func taskPath(id int64) string {
	return "/tasks/" + strconv.FormatInt(id, 10)
}
