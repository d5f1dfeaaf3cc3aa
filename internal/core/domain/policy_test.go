package domain

import (
	"net/http"
	"testing"
)

func TestDefaultPolicy(t *testing.T) {
	p := DefaultPolicy("/api/users")

	user := Identity{Email: "u@example.com", Roles: []string{RoleUser}}
	admin := Identity{Email: "a@example.com", Roles: []string{RoleAdmin}}
	auditor := Identity{Email: "x@example.com", Roles: []string{"AUDITOR"}}

	cases := []struct {
		name   string
		method string
		path   string
		public bool
		allow  []Identity
		deny   []Identity
	}{
		{
			name:   "register is public",
			method: http.MethodPost,
			path:   "/api/users/register",
			public: true,
		},
		{
			name:   "paged listing is public",
			method: http.MethodGet,
			path:   "/api/users/page",
			public: true,
		},
		{
			name:   "GET register falls through to the id rule",
			method: http.MethodGet,
			path:   "/api/users/register",
			allow:  []Identity{user, admin},
			deny:   []Identity{auditor},
		},
		{
			name:   "collection listing is admin only",
			method: http.MethodGet,
			path:   "/api/users",
			allow:  []Identity{admin},
			deny:   []Identity{user, auditor},
		},
		{
			name:   "batch create is admin only",
			method: http.MethodPost,
			path:   "/api/users",
			allow:  []Identity{admin},
			deny:   []Identity{user},
		},
		{
			name:   "collection with trailing slash",
			method: http.MethodGet,
			path:   "/api/users/",
			allow:  []Identity{admin},
			deny:   []Identity{user},
		},
		{
			name:   "record access needs user or admin",
			method: http.MethodDelete,
			path:   "/api/users/42",
			allow:  []Identity{user, admin},
			deny:   []Identity{auditor},
		},
		{
			name:   "liveness probe is public",
			method: http.MethodGet,
			path:   "/health",
			public: true,
		},
		{
			name:   "readiness probe is public",
			method: http.MethodGet,
			path:   "/health/ready",
			public: true,
		},
		{
			name:   "metrics endpoint is public",
			method: http.MethodGet,
			path:   "/metrics",
			public: true,
		},
		{
			name:   "swagger subtree is public",
			method: http.MethodGet,
			path:   "/swagger/index.html",
			public: true,
		},
		{
			name:   "unlisted route falls back to authenticated",
			method: http.MethodGet,
			path:   "/internal/debug",
			allow:  []Identity{user, admin, auditor},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := p.Requirement(tc.method, tc.path)
			if req.IsPublic() != tc.public {
				t.Fatalf("IsPublic() = %v, want %v", req.IsPublic(), tc.public)
			}
			for _, id := range tc.allow {
				if !req.SatisfiedBy(id) {
					t.Errorf("identity %v should satisfy the requirement", id.Roles)
				}
			}
			for _, id := range tc.deny {
				if req.SatisfiedBy(id) {
					t.Errorf("identity %v should not satisfy the requirement", id.Roles)
				}
			}
		})
	}
}

func TestRoleMatchingIsExact(t *testing.T) {
	needUser := RequireRoles(RoleUser)

	admin := Identity{Roles: []string{RoleAdmin}}
	if needUser.SatisfiedBy(admin) {
		t.Error("ADMIN must not imply USER")
	}

	lowercase := Identity{Roles: []string{"user"}}
	if needUser.SatisfiedBy(lowercase) {
		t.Error("role matching must be case-sensitive")
	}
}

func TestPolicyFirstMatchWins(t *testing.T) {
	p := NewPolicy(
		Rule{Methods: []string{http.MethodGet}, Pattern: "/a/special", Require: Public()},
		Rule{Pattern: "/a/:id", Require: RequireRoles(RoleAdmin)},
	)

	if !p.Requirement(http.MethodGet, "/a/special").IsPublic() {
		t.Error("earlier rule must govern when both match")
	}
	if p.Requirement(http.MethodPost, "/a/special").IsPublic() {
		t.Error("method filter must apply; POST falls to the wildcard rule")
	}
}

func TestMatchPattern(t *testing.T) {
	cases := []struct {
		pattern string
		path    string
		want    bool
	}{
		{"/api/users", "/api/users", true},
		{"/api/users", "/api/users/", true},
		{"/api/users", "/api/users/42", false},
		{"/api/users/:id", "/api/users/42", true},
		{"/api/users/:id", "/api/users/", false},
		{"/api/users/:id", "/api/users/42/extra", false},
		{"/swagger/*", "/swagger/index.html", true},
		{"/swagger/*", "/swagger/js/app.js", true},
		{"/swagger/*", "/swaggerx", false},
	}
	for _, tc := range cases {
		if got := matchPattern(tc.pattern, tc.path); got != tc.want {
			t.Errorf("matchPattern(%q, %q) = %v, want %v", tc.pattern, tc.path, got, tc.want)
		}
	}
}
