package taskmesdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"
)

const apiPrefix = "/api/v1"

// Client talks to a TaskMe server. It is safe for concurrent use.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	mu    sync.RWMutex
	token string
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:    strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// SetToken replaces the bearer token sent with every request.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) do(ctx context.Context, method, path string, in, out any, expectedStatus int) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := c.Token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != expectedStatus {
		return parseErrorResponse(resp, raw)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// ============================================================================
// Health
// ============================================================================

func (c *Client) Livez(ctx context.Context) (*HealthResponse, error) {
	var out HealthResponse
	if err := c.do(ctx, http.MethodGet, "/livez", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Readyz(ctx context.Context) (*HealthResponse, error) {
	var out HealthResponse
	if err := c.do(ctx, http.MethodGet, "/readyz", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// ============================================================================
// Auth
// ============================================================================

func (c *Client) Register(ctx context.Context, req RegisterRequest) (*MessageResponse, error) {
	var out MessageResponse
	if err := c.do(ctx, http.MethodPost, apiPrefix+"/auth/register", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ResendVerification(ctx context.Context, email string) (*MessageResponse, error) {
	var out MessageResponse
	req := ResendVerificationRequest{Email: email}
	if err := c.do(ctx, http.MethodPost, apiPrefix+"/auth/resend-verification", req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login authenticates and keeps the returned token for later calls.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	var out LoginResponse
	req := LoginRequest{Username: username, Password: password}
	if err := c.do(ctx, http.MethodPost, apiPrefix+"/auth/login", req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	c.SetToken(out.AccessToken)
	return &out, nil
}

func (c *Client) Me(ctx context.Context) (*UserProfile, error) {
	var out UserProfile
	if err := c.do(ctx, http.MethodGet, apiPrefix+"/auth/me", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// ============================================================================
// Tasks
// ============================================================================

func (p TaskListParams) query() string {
	q := url.Values{}
	set := func(k, v string) {
		if v != "" {
			q.Set(k, v)
		}
	}
	set("status", p.Status)
	set("priority", p.Priority)
	set("owner", p.Owner)
	set("search", p.Search)
	set("sort_by", p.SortBy)
	set("order", p.Order)
	if p.Offset > 0 {
		q.Set("offset", strconv.Itoa(p.Offset))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

func (c *Client) ListTasks(ctx context.Context, p TaskListParams) ([]Task, error) {
	var out []Task
	if err := c.do(ctx, http.MethodGet, apiPrefix+"/tasks"+p.query(), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetTask(ctx context.Context, id int64) (*Task, error) {
	var out Task
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("%s/tasks/%d", apiPrefix, id), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateTask(ctx context.Context, req TaskCreate) (*Task, error) {
	var out Task
	if err := c.do(ctx, http.MethodPost, apiPrefix+"/tasks", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateTasks(ctx context.Context, req []TaskCreate) ([]Task, error) {
	var out []Task
	if err := c.do(ctx, http.MethodPost, apiPrefix+"/tasks/bulk", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UpdateTask(ctx context.Context, id int64, req TaskUpdate) (*Task, error) {
	var out Task
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("%s/tasks/%d", apiPrefix, id), req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteTask(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("%s/tasks/%d", apiPrefix, id), nil, nil, http.StatusOK)
}

func (c *Client) DeleteTasks(ctx context.Context, ids []int64) (*DeleteResponse, error) {
	var out DeleteResponse
	if err := c.do(ctx, http.MethodDelete, apiPrefix+"/tasks/bulk/delete", ids, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteAllTasks(ctx context.Context) (*DeleteResponse, error) {
	var out DeleteResponse
	if err := c.do(ctx, http.MethodDelete, apiPrefix+"/tasks/all", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// ============================================================================
// Columns
// ============================================================================

func (c *Client) ListColumns(ctx context.Context) ([]Column, error) {
	var out []Column
	if err := c.do(ctx, http.MethodGet, apiPrefix+"/columns", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateColumn(ctx context.Context, req ColumnCreate) (*Column, error) {
	var out Column
	if err := c.do(ctx, http.MethodPost, apiPrefix+"/columns", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateColumn(ctx context.Context, id int64, req ColumnUpdate) (*Column, error) {
	var out Column
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("%s/columns/%d", apiPrefix, id), req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ReorderColumns(ctx context.Context, req []ColumnPosition) ([]Column, error) {
	var out []Column
	if err := c.do(ctx, http.MethodPatch, apiPrefix+"/columns/reorder", req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) DeleteColumn(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("%s/columns/%d", apiPrefix, id), nil, nil, http.StatusOK)
}

// ============================================================================
// Parse, export, share, email
// ============================================================================

func (c *Client) Parse(ctx context.Context, req ParseRequest) (*ParseResponse, error) {
	var out ParseResponse
	if err := c.do(ctx, http.MethodPost, apiPrefix+"/parse", req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// ExportExcel downloads the spreadsheet. query is appended as-is, for
// example "status=Done".
func (c *Client) ExportExcel(ctx context.Context, query string) ([]byte, error) {
	path := apiPrefix + "/export/excel"
	if query != "" {
		path += "?" + query
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if tok := c.Token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, parseErrorResponse(resp, raw)
	}
	return raw, nil
}

func (c *Client) CreateShare(ctx context.Context, taskIDs []int64) (*ShareResponse, error) {
	var out ShareResponse
	if err := c.do(ctx, http.MethodPost, apiPrefix+"/share", ShareRequest{TaskIDs: taskIDs}, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetShared(ctx context.Context, token string) (*SharedTasksResponse, error) {
	var out SharedTasksResponse
	if err := c.do(ctx, http.MethodGet, apiPrefix+"/share/"+url.PathEscape(token), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Notify(ctx context.Context, req NotifyRequest) (*NotifyResponse, error) {
	var out NotifyResponse
	if err := c.do(ctx, http.MethodPost, apiPrefix+"/email/notify", req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
