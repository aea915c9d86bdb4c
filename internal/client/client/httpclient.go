package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/fintrack/internal/client/models"
	"github.com/dmitrijs2005/fintrack/internal/common"
)

// envelope mirrors the server response body.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
}

type HTTPClient struct {
	baseURL string
	http    *http.Client
	token   string
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// SetToken sets the session token attached to protected calls.
func (c *HTTPClient) SetToken(token string) {
	c.token = token
}

func (c *HTTPClient) Token() string {
	return c.token
}

func (c *HTTPClient) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: bad response: %w", ErrUnavailable, err)
	}

	if resp.StatusCode >= http.StatusBadRequest || !env.Success {
		return &APIError{StatusCode: resp.StatusCode, Message: env.Error}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// Register creates an account and stores the returned token on c.
func (c *HTTPClient) Register(ctx context.Context, name, email string, password []byte) (*models.Session, error) {
	in := map[string]string{"name": name, "email": email, "password": string(password)}

	var s models.Session
	if err := c.do(ctx, http.MethodPost, "/auth/register", in, &s); err != nil {
		return nil, err
	}
	c.token = s.Token
	return &s, nil
}

// Login authenticates and stores the returned token on c.
func (c *HTTPClient) Login(ctx context.Context, email string, password []byte) (*models.Session, error) {
	in := map[string]string{"email": email, "password": string(password)}

	var s models.Session
	if err := c.do(ctx, http.MethodPost, "/auth/login", in, &s); err != nil {
		return nil, err
	}
	c.token = s.Token
	return &s, nil
}

func (c *HTTPClient) Profile(ctx context.Context) (*models.Profile, error) {
	var p models.Profile
	if err := c.do(ctx, http.MethodGet, "/user/profile", nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, upd models.ProfileUpdate) (*models.Profile, error) {
	var p models.Profile
	if err := c.do(ctx, http.MethodPut, "/user/profile", upd, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) ListExpenses(ctx context.Context) ([]models.Expense, error) {
	var out struct {
		Expenses []models.Expense `json:"expenses"`
	}
	if err := c.do(ctx, http.MethodGet, "/expenses", nil, &out); err != nil {
		return nil, err
	}
	return out.Expenses, nil
}

func (c *HTTPClient) CreateExpense(ctx context.Context, in models.ExpenseInput) (*models.Expense, error) {
	var e models.Expense
	if err := c.do(ctx, http.MethodPost, "/expenses", in, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (c *HTTPClient) UpdateExpense(ctx context.Context, id string, in models.ExpenseInput) (*models.Expense, error) {
	var e models.Expense
	if err := c.do(ctx, http.MethodPut, "/expenses/"+url.PathEscape(id), in, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (c *HTTPClient) DeleteExpense(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/expenses/"+url.PathEscape(id), nil, nil)
}
