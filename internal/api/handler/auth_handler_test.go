package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/usermgmt/user-management-api/internal/core/domain"
	"github.com/usermgmt/user-management-api/internal/core/ports"
)

// stubAuthService records the last Register input and returns a canned user.
type stubAuthService struct {
	registered *ports.RegisterInput
	err        error
}

func (s *stubAuthService) Register(_ context.Context, in ports.RegisterInput) (*domain.User, error) {
	s.registered = &in
	if s.err != nil {
		return nil, s.err
	}
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	return &domain.User{
		ID:           "1",
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: "$2a$10$notshown",
		Roles:        []string{domain.RoleUser},
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

func (s *stubAuthService) Authenticate(context.Context, string, string) (*domain.Identity, error) {
	return nil, domain.ErrInvalidCredentials
}

func newJSONContext(method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestRegisterCreated(t *testing.T) {
	svc := &stubAuthService{}
	h := NewAuthHandler(svc)

	c, rec := newJSONContext(http.MethodPost, "/api/users/register",
		`{"name":"Ada Lovelace","email":"ada@example.com","password":"hunter2"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}

	var resp userResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.ID != "1" || resp.Email != "ada@example.com" {
		t.Errorf("response = %+v", resp)
	}
	if len(resp.Roles) != 1 || resp.Roles[0] != domain.RoleUser {
		t.Errorf("roles = %v, want [%s]", resp.Roles, domain.RoleUser)
	}

	body := rec.Body.String()
	if strings.Contains(body, "hunter2") || strings.Contains(body, "notshown") {
		t.Errorf("response leaks credential material: %s", body)
	}
	if svc.registered == nil || svc.registered.Password != "hunter2" {
		t.Error("service did not receive the registration input")
	}
}

func TestRegisterConflict(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{err: domain.ErrEmailTaken})

	c, rec := newJSONContext(http.MethodPost, "/api/users/register",
		`{"name":"Ada","email":"ada@example.com","password":"pw"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", rec.Code)
	}
}

func TestRegisterMalformedJSON(t *testing.T) {
	svc := &stubAuthService{}
	h := NewAuthHandler(svc)

	c, rec := newJSONContext(http.MethodPost, "/api/users/register", `{"name":`)
	if err := h.Register(c); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if svc.registered != nil {
		t.Error("malformed payload must not reach the service")
	}
}

func TestRegisterValidation(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"missing email", `{"name":"Ada","password":"pw"}`, "email"},
		{"bad email", `{"name":"Ada","email":"not-an-email","password":"pw"}`, "email"},
		{"missing password", `{"name":"Ada","email":"ada@example.com"}`, "password"},
		{"name too short", `{"name":"A","email":"ada@example.com","password":"pw"}`, "name"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &stubAuthService{}
			h := NewAuthHandler(svc)

			c, rec := newJSONContext(http.MethodPost, "/api/users/register", tc.body)
			if err := h.Register(c); err != nil {
				t.Fatalf("Register returned error: %v", err)
			}
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			if !strings.Contains(rec.Body.String(), tc.want) {
				t.Errorf("error body %q does not mention %q", rec.Body.String(), tc.want)
			}
			if svc.registered != nil {
				t.Error("invalid payload must not reach the service")
			}
		})
	}
}
