// Package client talks to the attendance server over HTTP and implements
// shift.Store for a controller running on an employee's machine.
package client

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
	"time"

	"shiftclock_backend/models"
	"shiftclock_backend/shift"
)

const defaultTimeout = 10 * time.Second

// StatusError is a non-2xx reply that does not map onto an engine error.
type StatusError struct {
	Op         string
	StatusCode int
	Code       string
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: server returned %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: server returned %d: %s", e.Op, e.StatusCode, e.Message)
}

type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

type Option func(*Client)

// WithHTTPClient replaces the default client, which has a 10s timeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

func New(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CheckIn opens today's record. The server stamps the time.
func (c *Client) CheckIn(ctx context.Context) (models.AttendanceRecord, error) {
	var resp models.AttendanceResponse
	if err := c.do(ctx, "begin", http.MethodPost, "/check-in", nil, &resp); err != nil {
		return models.AttendanceRecord{}, err
	}
	return resp.Data, nil
}

// CheckOut closes today's record. The server stamps the time and computes
// total hours.
func (c *Client) CheckOut(ctx context.Context) (models.AttendanceRecord, error) {
	var resp models.AttendanceResponse
	if err := c.do(ctx, "end", http.MethodPost, "/check-out", nil, &resp); err != nil {
		return models.AttendanceRecord{}, err
	}
	return resp.Data, nil
}

func (c *Client) Records(ctx context.Context, filter models.RecordFilter) ([]models.AttendanceRecord, error) {
	q := url.Values{}
	if filter.Date != "" {
		q.Set("date", filter.Date)
	}
	if filter.EmployeeID != 0 {
		q.Set("employee_id", strconv.Itoa(filter.EmployeeID))
	}
	var resp models.AttendanceListResponse
	if err := c.do(ctx, "load", http.MethodGet, withQuery("/records", q), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (c *Client) Roster(ctx context.Context, date string) ([]models.RosterEntry, error) {
	q := url.Values{}
	if date != "" {
		q.Set("date", date)
	}
	var resp models.RosterListResponse
	if err := c.do(ctx, "roster", http.MethodGet, withQuery("/roster", q), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (c *Client) CreateRoster(ctx context.Context, req models.CreateRosterRequest) (models.RosterEntry, error) {
	var resp models.RosterResponse
	if err := c.do(ctx, "roster", http.MethodPost, "/roster", req, &resp); err != nil {
		return models.RosterEntry{}, err
	}
	return resp.Data, nil
}

func (c *Client) Employees(ctx context.Context) ([]models.Employee, error) {
	var employees []models.Employee
	if err := c.do(ctx, "employees", http.MethodGet, "/employees", nil, &employees); err != nil {
		return nil, err
	}
	return employees, nil
}

func (c *Client) CreateEmployee(ctx context.Context, fullName string) (models.Employee, error) {
	var emp models.Employee
	req := models.CreateEmployeeRequest{FullName: fullName}
	if err := c.do(ctx, "employees", http.MethodPost, "/employees", req, &emp); err != nil {
		return models.Employee{}, err
	}
	return emp, nil
}

// Health reports whether the server and its store are reachable.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, "health", http.MethodGet, "/health", nil, nil)
}

func (c *Client) do(ctx context.Context, op, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &shift.TransientIOError{Op: op, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &shift.TransientIOError{Op: op, Err: err}
	}

	if resp.StatusCode >= 300 {
		return decodeError(op, resp.StatusCode, raw)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}

// decodeError maps the server's error codes onto the engine's taxonomy.
func decodeError(op string, status int, raw []byte) error {
	var body models.ErrorResponse
	_ = json.Unmarshal(raw, &body)

	switch body.Code {
	case models.CodeAlreadyCheckedIn, models.CodeAlreadyCheckedOut:
		return &shift.ConflictError{Op: op, Reason: body.Error}
	case models.CodeNotCheckedIn:
		return &shift.InvalidStateError{Op: op, State: shift.NotStarted, Reason: body.Error}
	case models.CodeInvalidDuration:
		return &shift.InvalidStateError{Op: op, State: shift.Active, Reason: body.Error}
	}

	serr := &StatusError{Op: op, StatusCode: status, Code: body.Code, Message: body.Error}
	if status >= 500 {
		return &shift.TransientIOError{Op: op, Err: serr}
	}
	return serr
}

func withQuery(path string, q url.Values) string {
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}
