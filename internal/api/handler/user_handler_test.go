package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/smartstore/store-system/internal/core/domain"
)

func TestUserHandler_Register_Success(t *testing.T) {
	f := newFixture()
	h := NewUserHandler(f.auth)

	c, rec := f.context(http.MethodPost, "/api/v1/users", `{"email":"a@x.com","password":"secret","name":"Ann"}`, nil)
	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "password") || strings.Contains(rec.Body.String(), "$2a$") {
		t.Fatalf("response leaks password material: %s", rec.Body.String())
	}

	var resp userResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Email != "a@x.com" || resp.Role != "USER" {
		t.Fatalf("unexpected user payload: %+v", resp)
	}
}

func TestUserHandler_Register_PrivilegedRoleNeedsAdmin(t *testing.T) {
	f := newFixture()
	h := NewUserHandler(f.auth)
	body := `{"email":"m@x.com","password":"secret","name":"Max","role":"manager"}`

	c, _ := f.context(http.MethodPost, "/api/v1/users", body, nil)
	if err := h.Register(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("anonymous: expected ErrForbidden, got %v", err)
	}

	c, _ = f.context(http.MethodPost, "/api/v1/users", body, &domain.User{Email: "mgr@x.com", Role: domain.RoleManager})
	if err := h.Register(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("manager: expected ErrForbidden, got %v", err)
	}

	c, rec := f.context(http.MethodPost, "/api/v1/users", body, &domain.User{Email: "root@x.com", Role: domain.RoleAdmin})
	if err := h.Register(c); err != nil {
		t.Fatalf("admin: handler error: %v", err)
	}
	var resp userResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Role != "MANAGER" {
		t.Fatalf("expected MANAGER, got %q", resp.Role)
	}
}

func TestUserHandler_Register_UnknownRoleFallsBackOpenly(t *testing.T) {
	f := newFixture()
	h := NewUserHandler(f.auth)

	c, rec := f.context(http.MethodPost, "/api/v1/users", `{"email":"r@x.com","password":"pw","name":"Rory","role":"root"}`, nil)
	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp userResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Role != "USER" {
		t.Fatalf("expected USER fallback, got %q", resp.Role)
	}
}

func TestUserHandler_Register_Duplicate(t *testing.T) {
	f := newFixture()
	h := NewUserHandler(f.auth)
	_, _ = f.auth.RegisterUser(context.Background(), "a@x.com", "secret", "Ann")

	c, _ := f.context(http.MethodPost, "/api/v1/users", `{"email":"a@x.com","password":"x","name":"Other"}`, nil)
	err := h.Register(c)

	var dup *domain.DuplicateUserError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateUserError, got %v", err)
	}
}

func TestUserHandler_Register_InvalidPayload(t *testing.T) {
	f := newFixture()
	h := NewUserHandler(f.auth)

	c, rec := f.context(http.MethodPost, "/api/v1/users", "not-json", nil)
	_ = h.Register(c)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	c, rec = f.context(http.MethodPost, "/api/v1/users", `{"email":"a@x.com","name":"Ann"}`, nil)
	_ = h.Register(c)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "password is required") {
		t.Fatalf("expected message naming the field, got %s", rec.Body.String())
	}
}

func TestUserHandler_GetUpdateDelete(t *testing.T) {
	f := newFixture()
	h := NewUserHandler(f.auth)
	_, _ = f.auth.RegisterUser(context.Background(), "a@x.com", "secret", "Ann")
	caller := &domain.User{Email: "a@x.com", Role: domain.RoleUser}

	c, rec := f.context(http.MethodGet, "/", "", caller)
	c.SetParamNames("email")
	c.SetParamValues("a@x.com")
	if err := h.Get(c); err != nil || rec.Code != http.StatusOK {
		t.Fatalf("get: err=%v code=%d", err, rec.Code)
	}

	c, rec = f.context(http.MethodPut, "/", `{"name":"Anne"}`, caller)
	c.SetParamNames("email")
	c.SetParamValues("a@x.com")
	if err := h.Update(c); err != nil {
		t.Fatalf("update: %v", err)
	}
	var resp userResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Name != "Anne" {
		t.Fatalf("expected updated name, got %q", resp.Name)
	}

	c, rec = f.context(http.MethodDelete, "/", "", caller)
	c.SetParamNames("email")
	c.SetParamValues("a@x.com")
	if err := h.Delete(c); err != nil || rec.Code != http.StatusNoContent {
		t.Fatalf("delete: err=%v code=%d", err, rec.Code)
	}

	c, _ = f.context(http.MethodDelete, "/", "", caller)
	c.SetParamNames("email")
	c.SetParamValues("a@x.com")
	if err := h.Delete(c); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("second delete: expected ErrUserNotFound, got %v", err)
	}

	c, _ = f.context(http.MethodGet, "/", "", caller)
	c.SetParamNames("email")
	c.SetParamValues("a@x.com")
	if err := h.Get(c); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("get after delete: expected ErrUserNotFound, got %v", err)
	}
}

func TestUserHandler_Me(t *testing.T) {
	f := newFixture()
	h := NewUserHandler(f.auth)

	c, rec := f.context(http.MethodGet, "/api/v1/auth/me", "", &domain.User{Email: "a@x.com", Name: "Ann", Role: domain.RoleAdmin, PasswordHash: "$2a$04$x"})
	if err := h.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if strings.Contains(rec.Body.String(), "$2a$") {
		t.Fatalf("response leaks hash: %s", rec.Body.String())
	}

	c, _ = f.context(http.MethodGet, "/api/v1/auth/me", "", nil)
	if err := h.Me(c); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestUserHandler_List(t *testing.T) {
	f := newFixture()
	h := NewUserHandler(f.auth)
	_, _ = f.auth.RegisterUser(context.Background(), "a@x.com", "secret", "Ann")
	_, _ = f.auth.RegisterUser(context.Background(), "b@x.com", "secret", "Bob")

	c, rec := f.context(http.MethodGet, "/api/v1/users", "", &domain.User{Email: "a@x.com", Role: domain.RoleUser})
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp []userResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 2 {
		t.Fatalf("expected 2 users, got %d", len(resp))
	}
}
