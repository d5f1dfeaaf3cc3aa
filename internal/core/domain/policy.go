package domain

import (
	"net/http"
	"strings"
)

// Requirement is what a route demands from the caller before the request
// may proceed: nothing (public), any authenticated identity, or an
// identity holding at least one of a set of role labels.
type Requirement struct {
	public bool
	roles  []string
}

func Public() Requirement { return Requirement{public: true} }

func Authenticated() Requirement { return Requirement{} }

func RequireRoles(roles ...string) Requirement { return Requirement{roles: roles} }

// IsPublic reports whether the requirement admits requests without any
// identity resolution at all.
func (r Requirement) IsPublic() bool { return r.public }

// SatisfiedBy reports whether the given identity meets the requirement.
// An authenticated-only requirement is met by any identity; a role
// requirement is met only when one of its labels is present verbatim in
// the identity's role set.
func (r Requirement) SatisfiedBy(id Identity) bool {
	if r.public || len(r.roles) == 0 {
		return true
	}
	return id.HasAnyRole(r.roles...)
}

// Rule pairs a route matcher with a requirement. An empty Methods slice
// matches every method. Patterns match path segments literally, with two
// wildcards: a ":" segment matches exactly one non-empty segment, and a
// trailing "/*" matches any remainder.
type Rule struct {
	Methods []string
	Pattern string
	Require Requirement
}

func (r Rule) matches(method, path string) bool {
	if len(r.Methods) > 0 {
		ok := false
		for _, m := range r.Methods {
			if m == method {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	return matchPattern(r.Pattern, path)
}

// Policy is an ordered rule table evaluated per request. The first rule
// matching the request's method and path governs; when nothing matches,
// the fallback requirement (any authenticated identity) applies.
//
// Keeping the table as plain data, rather than per-route middleware
// registration, lets the whole access policy be tested directly.
type Policy struct {
	rules    []Rule
	fallback Requirement
}

// NewPolicy builds a policy from an ordered rule list.
func NewPolicy(rules ...Rule) Policy {
	return Policy{rules: rules, fallback: Authenticated()}
}

// Requirement returns the requirement governing method+path.
func (p Policy) Requirement(method, path string) Requirement {
	for _, r := range p.rules {
		if r.matches(method, path) {
			return r.Require
		}
	}
	return p.fallback
}

// DefaultPolicy is the access policy of the user-management API, rooted at
// base (e.g. "/api/users"). Listed most specific first; declaration order
// is significant ("/page" must precede the ":id" matcher).
//
// Note the ":id" rule: any authenticated USER may view, update, or delete
// any record — there is no ownership check. This mirrors the behaviour of
// the service as deployed.
func DefaultPolicy(base string) Policy {
	base = strings.TrimSuffix(base, "/")
	return NewPolicy(
		Rule{Methods: []string{http.MethodPost}, Pattern: base + "/register", Require: Public()},
		Rule{Methods: []string{http.MethodGet}, Pattern: base + "/page", Require: Public()},
		Rule{Pattern: base, Require: RequireRoles(RoleAdmin)},
		Rule{Pattern: base + "/:id", Require: RequireRoles(RoleUser, RoleAdmin)},
		Rule{Pattern: "/health", Require: Public()},
		Rule{Pattern: "/health/ready", Require: Public()},
		Rule{Pattern: "/metrics", Require: Public()},
		Rule{Pattern: "/swagger/*", Require: Public()},
	)
}

func matchPattern(pattern, path string) bool {
	if strings.HasSuffix(pattern, "/*") {
		return strings.HasPrefix(path, strings.TrimSuffix(pattern, "*"))
	}
	ps := strings.Split(pattern, "/")
	hs := strings.Split(path, "/")
	if len(hs) == len(ps)+1 && hs[len(hs)-1] == "" {
		// tolerate a single trailing slash
		hs = hs[:len(hs)-1]
	}
	if len(ps) != len(hs) {
		return false
	}
	for i := range ps {
		if strings.HasPrefix(ps[i], ":") {
			if hs[i] == "" {
				return false
			}
			continue
		}
		if ps[i] != hs[i] {
			return false
		}
	}
	return true
}
