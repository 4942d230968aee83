// Package client is a small HTTP client for the store API, used by the CLI.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/smartstore/store-system/internal/core/domain"
)

const defaultTimeout = 15 * time.Second

// APIError is a non-2xx response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: %d %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

type Client struct {
	baseURL  string
	email    string
	password string
	http     *http.Client
}

// New returns a client that sends Basic credentials when email is set.
func New(baseURL, email, password string) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		email:    email,
		password: password,
		http:     &http.Client{Timeout: defaultTimeout},
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var payload io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		payload = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.email != "" {
		req.SetBasicAuth(c.email, c.password)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		var envelope struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&envelope)
		return &APIError{Status: resp.StatusCode, Message: envelope.Error}
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// --- Users ---

type RegisterUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role,omitempty"`
}

type UpdateUserRequest struct {
	Password string `json:"password,omitempty"`
	Name     string `json:"name,omitempty"`
}

func (c *Client) Me(ctx context.Context) (*domain.User, error) {
	var u domain.User
	if err := c.do(ctx, http.MethodGet, "/api/v1/auth/me", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) ListUsers(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	err := c.do(ctx, http.MethodGet, "/api/v1/users", nil, &users)
	return users, err
}

func (c *Client) GetUser(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	if err := c.do(ctx, http.MethodGet, "/api/v1/users/"+url.PathEscape(email), nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) RegisterUser(ctx context.Context, in RegisterUserRequest) (*domain.User, error) {
	var u domain.User
	if err := c.do(ctx, http.MethodPost, "/api/v1/users", in, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) UpdateUser(ctx context.Context, email string, in UpdateUserRequest) (*domain.User, error) {
	var u domain.User
	if err := c.do(ctx, http.MethodPut, "/api/v1/users/"+url.PathEscape(email), in, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) DeleteUser(ctx context.Context, email string) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/users/"+url.PathEscape(email), nil, nil)
}

// --- Stores ---

type StoreRequest struct {
	ID          string `json:"id,omitempty"`
	Description string `json:"description,omitempty"`
	Address     string `json:"address,omitempty"`
}

func (c *Client) ListStores(ctx context.Context) ([]domain.Store, error) {
	var stores []domain.Store
	err := c.do(ctx, http.MethodGet, "/api/v1/stores", nil, &stores)
	return stores, err
}

func (c *Client) GetStore(ctx context.Context, id string) (*domain.Store, error) {
	var s domain.Store
	if err := c.do(ctx, http.MethodGet, "/api/v1/stores/"+url.PathEscape(id), nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) CreateStore(ctx context.Context, in StoreRequest) (*domain.Store, error) {
	var s domain.Store
	if err := c.do(ctx, http.MethodPost, "/api/v1/stores", in, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) UpdateStore(ctx context.Context, id string, in StoreRequest) (*domain.Store, error) {
	var s domain.Store
	if err := c.do(ctx, http.MethodPut, "/api/v1/stores/"+url.PathEscape(id), in, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) DeleteStore(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/stores/"+url.PathEscape(id), nil, nil)
}

// --- Catalog ---

type ProductRequest struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Size        string  `json:"size,omitempty"`
	Category    string  `json:"category,omitempty"`
	Price       float64 `json:"price"`
	Temperature string  `json:"temperature"`
}

type CustomerRequest struct {
	ID             string `json:"id"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Type           string `json:"type"`
	Email          string `json:"email,omitempty"`
	AccountAddress string `json:"account_address,omitempty"`
}

func (c *Client) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	var p domain.Product
	if err := c.do(ctx, http.MethodGet, "/api/v1/products/"+url.PathEscape(id), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) CreateProduct(ctx context.Context, in ProductRequest) (*domain.Product, error) {
	var p domain.Product
	if err := c.do(ctx, http.MethodPost, "/api/v1/products", in, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) GetCustomer(ctx context.Context, id string) (*domain.Customer, error) {
	var cu domain.Customer
	if err := c.do(ctx, http.MethodGet, "/api/v1/customers/"+url.PathEscape(id), nil, &cu); err != nil {
		return nil, err
	}
	return &cu, nil
}

func (c *Client) CreateCustomer(ctx context.Context, in CustomerRequest) (*domain.Customer, error) {
	var cu domain.Customer
	if err := c.do(ctx, http.MethodPost, "/api/v1/customers", in, &cu); err != nil {
		return nil, err
	}
	return &cu, nil
}
