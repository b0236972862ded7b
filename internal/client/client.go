// Package client is a typed HTTP client for the classpoints REST API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/yigit/classpoints/internal/app/models"
	"github.com/yigit/classpoints/internal/app/models/dto"
)

// DefaultBaseURL is used when no server address is configured
const DefaultBaseURL = "http://localhost:4000"

// APIError is a non-2xx response from the server
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s (%d %s)", e.Message, e.Status, e.Code)
	}
	return fmt.Sprintf("%s (%d)", e.Message, e.Status)
}

// Client talks to the API. The zero value is not usable; call New.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithToken sets the bearer token sent on every request
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// New creates a client for baseURL
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the server address
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) newRequest(ctx context.Context, method, path string, body interface{}) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}

// do sends a JSON request and decodes a 2xx body into out
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}

	var body dto.ErrorResponse
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Message != "" {
			apiErr.Message = body.Message
		}
		if body.Error != nil {
			apiErr.Code = string(body.Error.Code)
			if apiErr.Message == "" {
				apiErr.Message = body.Error.Message
			}
		}
	}
	return apiErr
}

// Seating returns all 36 seats
func (c *Client) Seating(ctx context.Context) ([]*models.Seat, error) {
	var seats []*models.Seat
	if err := c.do(ctx, http.MethodGet, "/api/seating", nil, &seats); err != nil {
		return nil, err
	}
	return seats, nil
}

// ReplaceSeating submits a full seating chart
func (c *Client) ReplaceSeating(ctx context.Context, adminPw string, seating []dto.SeatInput) error {
	return c.do(ctx, http.MethodPost, "/api/seating", dto.SeatingRequest{AdminPw: adminPw, Seating: seating}, nil)
}

// Students lists all students
func (c *Client) Students(ctx context.Context) ([]*models.Student, error) {
	var students []*models.Student
	if err := c.do(ctx, http.MethodGet, "/api/students", nil, &students); err != nil {
		return nil, err
	}
	return students, nil
}

// CreateStudent provisions a student
func (c *Client) CreateStudent(ctx context.Context, req dto.CreateStudentRequest) (*models.Student, error) {
	var resp dto.CreateStudentResponse
	if err := c.do(ctx, http.MethodPost, "/api/students", req, &resp); err != nil {
		return nil, err
	}
	return resp.Student, nil
}

// Attend checks a student in for today
func (c *Client) Attend(ctx context.Context, studentID int64) (*dto.AttendanceResponse, error) {
	var resp dto.AttendanceResponse
	if err := c.do(ctx, http.MethodPost, "/api/attendance", dto.AttendanceRequest{StudentID: studentID}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// History lists a student's check-ins, newest first
func (c *Client) History(ctx context.Context, studentID int64) ([]*models.AttendanceRecord, error) {
	var records []*models.AttendanceRecord
	path := "/api/attendance/" + strconv.FormatInt(studentID, 10)
	if err := c.do(ctx, http.MethodGet, path, nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Today returns the seat-by-seat attendance board
func (c *Client) Today(ctx context.Context) ([]*models.TodayEntry, error) {
	var board []*models.TodayEntry
	if err := c.do(ctx, http.MethodGet, "/api/today-attendance", nil, &board); err != nil {
		return nil, err
	}
	return board, nil
}

// Items lists the store catalog
func (c *Client) Items(ctx context.Context) ([]*models.StoreItem, error) {
	var items []*models.StoreItem
	if err := c.do(ctx, http.MethodGet, "/api/items", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// CreateItem adds a catalog item
func (c *Client) CreateItem(ctx context.Context, req dto.CreateItemRequest) (*models.StoreItem, error) {
	var resp dto.CreateItemResponse
	if err := c.do(ctx, http.MethodPost, "/api/items", req, &resp); err != nil {
		return nil, err
	}
	return resp.Item, nil
}

// Buy purchases an item. An unaffordable item is a successful call with Success=false.
func (c *Client) Buy(ctx context.Context, studentID int64, itemKey string) (*dto.BuyResponse, error) {
	var resp dto.BuyResponse
	if err := c.do(ctx, http.MethodPost, "/api/buy", dto.BuyRequest{StudentID: studentID, ItemKey: itemKey}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Purchases lists a student's purchases, newest first
func (c *Client) Purchases(ctx context.Context, studentID int64) ([]*models.Purchase, error) {
	var purchases []*models.Purchase
	path := "/api/purchases/" + strconv.FormatInt(studentID, 10)
	if err := c.do(ctx, http.MethodGet, path, nil, &purchases); err != nil {
		return nil, err
	}
	return purchases, nil
}

// Login authenticates a student
func (c *Client) Login(ctx context.Context, name, password string) (*dto.LoginResponse, error) {
	var resp dto.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/api/login", dto.LoginRequest{Name: name, Password: password}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Me returns the student behind the bearer token
func (c *Client) Me(ctx context.Context) (*models.Student, error) {
	var student models.Student
	if err := c.do(ctx, http.MethodGet, "/api/me", nil, &student); err != nil {
		return nil, err
	}
	return &student, nil
}

// AdminLogin checks the admin passphrase
func (c *Client) AdminLogin(ctx context.Context, adminPw string) error {
	return c.do(ctx, http.MethodPost, "/api/admin/login", dto.AdminLoginRequest{AdminPw: adminPw}, nil)
}

// Export downloads the monthly CSV and returns it with the server-suggested filename
func (c *Client) Export(ctx context.Context, year, month int) ([]byte, string, error) {
	path := fmt.Sprintf("/api/export/%d/%d", year, month)
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("Accept", "text/csv")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", decodeError(resp)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read export: %w", err)
	}

	filename := fmt.Sprintf("%04d-%02d_attendance.csv", year, month)
	if _, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition")); err == nil && params["filename"] != "" {
		filename = params["filename"]
	}
	return data, filename, nil
}
