package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/fullstacktime/project-tracker/internal/core/domain"
	"github.com/fullstacktime/project-tracker/internal/core/ports"
)

// stubAuthService returns canned results; handlers pass domain errors
// through to the central error handler, so tests assert on the error
// value itself.
type stubAuthService struct {
	registered *domain.User
	pair       *ports.TokenPair
	access     string
	err        error
}

func (s *stubAuthService) Register(_ context.Context, _ ports.RegisterInput) (*domain.User, error) {
	return s.registered, s.err
}

func (s *stubAuthService) Login(_ context.Context, _, _ string) (*ports.TokenPair, error) {
	return s.pair, s.err
}

func (s *stubAuthService) Refresh(_ context.Context, _ string) (string, error) {
	return s.access, s.err
}

func (s *stubAuthService) Logout(_ context.Context, _ string) error {
	return s.err
}

func newEchoContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Register_Success(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{
		registered: &domain.User{
			ID:           5,
			Username:     "alice",
			Email:        "alice@example.com",
			PasswordHash: "$2a$10$secret",
			Role:         domain.RoleWorker,
		},
	})

	c, rec := newEchoContext(t, http.MethodPost, "/api/auth/register/",
		`{"username":"alice","email":"alice@example.com","password":"pass123"}`)

	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["username"] != "alice" || resp["role"] != "WORKER" {
		t.Fatalf("unexpected body: %v", resp)
	}
	if _, leaked := resp["password_hash"]; leaked {
		t.Fatalf("password hash must never be returned")
	}
	if strings.Contains(rec.Body.String(), "secret") {
		t.Fatalf("hash material leaked: %s", rec.Body.String())
	}
}

func TestAuthHandler_Register_ShortPassword(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, _ := newEchoContext(t, http.MethodPost, "/api/auth/register/",
		`{"username":"alice","email":"alice@example.com","password":"12345"}`)

	err := h.Register(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAuthHandler_Register_BadRole(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, _ := newEchoContext(t, http.MethodPost, "/api/auth/register/",
		`{"username":"alice","email":"alice@example.com","password":"pass123","role":"MANAGER"}`)

	err := h.Register(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAuthHandler_ObtainToken_Success(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{
		pair: &ports.TokenPair{
			Access:   "access-token",
			Refresh:  "refresh-token",
			Username: "alice",
			Role:     domain.RoleWorker,
		},
	})

	c, rec := newEchoContext(t, http.MethodPost, "/api/token/",
		`{"username":"alice","password":"pass123"}`)

	if err := h.ObtainToken(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	for _, key := range []string{"access", "refresh", "username", "role"} {
		if resp[key] == "" || resp[key] == nil {
			t.Fatalf("response missing %q: %v", key, resp)
		}
	}
}

func TestAuthHandler_ObtainToken_InvalidCredentials(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{err: domain.ErrInvalidCredentials})

	c, _ := newEchoContext(t, http.MethodPost, "/api/token/",
		`{"username":"alice","password":"wrong"}`)

	if err := h.ObtainToken(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials passthrough, got %v", err)
	}
}

func TestAuthHandler_RefreshToken_Success(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{access: "new-access"})

	c, rec := newEchoContext(t, http.MethodPost, "/api/token/refresh/",
		`{"refresh":"refresh-token"}`)

	if err := h.RefreshToken(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "new-access") {
		t.Fatalf("response missing access token: %s", rec.Body.String())
	}
}

func TestAuthHandler_Logout_Success(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, rec := newEchoContext(t, http.MethodPost, "/api/auth/logout/",
		`{"refresh":"refresh-token"}`)

	if err := h.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}
