package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/usermgmt/user-management-api/internal/core/domain"
	"github.com/usermgmt/user-management-api/internal/core/ports"
)

// stubUserService serves canned data from an in-memory map.
type stubUserService struct {
	users    map[string]*domain.User
	page     *ports.PageResult
	err      error
	lastPage ports.PageInput
}

func newStubUserService() *stubUserService {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	return &stubUserService{users: map[string]*domain.User{
		"42": {ID: "42", Name: "Ada", Email: "ada@example.com", PasswordHash: "$2a$10$x", Roles: []string{domain.RoleUser}, CreatedAt: now, UpdatedAt: now},
	}}
}

func (s *stubUserService) CreateBatch(_ context.Context, in []ports.CreateUserInput) ([]*domain.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([]*domain.User, 0, len(in))
	for i, item := range in {
		out = append(out, &domain.User{ID: string(rune('a' + i)), Name: item.Name, Email: item.Email, Roles: []string{domain.RoleUser}})
	}
	return out, nil
}

func (s *stubUserService) List(context.Context) ([]*domain.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([]*domain.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	return out, nil
}

func (s *stubUserService) Page(_ context.Context, in ports.PageInput) (*ports.PageResult, error) {
	s.lastPage = in
	if s.err != nil {
		return nil, s.err
	}
	return s.page, nil
}

func (s *stubUserService) Get(_ context.Context, id string) (*domain.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (s *stubUserService) Update(_ context.Context, id string, in ports.UpdateUserInput) (*domain.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.Name = in.Name
	u.Email = in.Email
	return u, nil
}

func (s *stubUserService) Delete(_ context.Context, id string) error {
	if s.err != nil {
		return s.err
	}
	if _, ok := s.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(s.users, id)
	return nil
}

func newIDContext(method, body, id string) (echo.Context, *httptest.ResponseRecorder) {
	c, rec := newJSONContext(method, "/api/users/"+id, body)
	c.SetPath("/api/users/:id")
	c.SetParamNames("id")
	c.SetParamValues(id)
	return c, rec
}

func TestGetUser(t *testing.T) {
	h := NewUserHandler(newStubUserService())

	c, rec := newIDContext(http.MethodGet, "", "42")
	if err := h.Get(c); err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp userResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.ID != "42" || resp.Email != "ada@example.com" {
		t.Errorf("response = %+v", resp)
	}
}

func TestGetUserNotFound(t *testing.T) {
	h := NewUserHandler(newStubUserService())

	c, rec := newIDContext(http.MethodGet, "", "missing")
	if err := h.Get(c); err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestDeleteUser(t *testing.T) {
	svc := newStubUserService()
	h := NewUserHandler(svc)

	c, rec := newIDContext(http.MethodDelete, "", "42")
	if err := h.Delete(c); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}

	c, rec = newIDContext(http.MethodDelete, "", "42")
	if err := h.Delete(c); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("second delete: status = %d, want 404", rec.Code)
	}
}

func TestUpdateUserConflict(t *testing.T) {
	svc := newStubUserService()
	svc.err = domain.ErrEmailTaken
	h := NewUserHandler(svc)

	c, rec := newIDContext(http.MethodPut, `{"name":"Ada","email":"taken@example.com"}`, "42")
	if err := h.Update(c); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", rec.Code)
	}
}

func TestPageEnvelope(t *testing.T) {
	svc := newStubUserService()
	svc.page = &ports.PageResult{
		Content:       []*domain.User{svc.users["42"]},
		Page:          1,
		Size:          5,
		TotalElements: 11,
		TotalPages:    3,
	}
	h := NewUserHandler(svc)

	c, rec := newJSONContext(http.MethodGet, "/api/users/page?page=1&size=5&sort=name,asc", "")
	if err := h.Page(c); err != nil {
		t.Fatalf("Page returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	if svc.lastPage != (ports.PageInput{Page: 1, Size: 5, Sort: "name,asc"}) {
		t.Errorf("service received %+v", svc.lastPage)
	}

	var resp pageResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.TotalElements != 11 || resp.TotalPages != 3 || len(resp.Content) != 1 {
		t.Errorf("envelope = %+v", resp)
	}
}

func TestPageRejectsNonIntegerParams(t *testing.T) {
	h := NewUserHandler(newStubUserService())

	for _, query := range []string{"page=abc", "size=many"} {
		c, rec := newJSONContext(http.MethodGet, "/api/users/page?"+query, "")
		if err := h.Page(c); err != nil {
			t.Fatalf("Page returned error: %v", err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Errorf("query %q: status = %d, want 400", query, rec.Code)
		}
	}
}

func TestCreateBatch(t *testing.T) {
	h := NewUserHandler(newStubUserService())

	body := `[{"name":"New One","email":"one@example.com","password":"pw"},
	          {"name":"New Two","email":"two@example.com","password":"pw","roles":["ADMIN"]}]`
	c, rec := newJSONContext(http.MethodPost, "/api/users", body)
	if err := h.CreateBatch(c); err != nil {
		t.Fatalf("CreateBatch returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}

	var resp []userResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(resp) != 2 {
		t.Errorf("created %d users, want 2", len(resp))
	}
}

func TestCreateBatchRejectsEmptyAndInvalid(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"empty array", `[]`},
		{"invalid entry", `[{"name":"Ok","email":"ok@example.com","password":"pw"},{"name":"Bad"}]`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewUserHandler(newStubUserService())
			c, rec := newJSONContext(http.MethodPost, "/api/users", tc.body)
			if err := h.CreateBatch(c); err != nil {
				t.Fatalf("CreateBatch returned error: %v", err)
			}
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}
