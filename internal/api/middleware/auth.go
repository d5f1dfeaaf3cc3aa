package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/usermgmt/user-management-api/internal/api/metrics"
	"github.com/usermgmt/user-management-api/internal/core/domain"
	"github.com/usermgmt/user-management-api/internal/core/ports"
)

// identityKey is the context key under which the authenticated identity is
// stored for downstream handlers.
const identityKey = "identity"

const basicChallenge = `Basic realm="users"`

// Security enforces the authorization policy on every request.
//
// The first rule matching the request's method and path governs. Public
// routes pass through with no identity resolution. Everything else needs
// Basic credentials: a missing or malformed header, or a failed
// verification, yields 401 (with a WWW-Authenticate challenge and no hint
// of which stage rejected); a verified identity lacking the required role
// yields 403. Admitted requests carry the identity in context.
func Security(policy domain.Policy, auth ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			requirement := policy.Requirement(req.Method, req.URL.Path)

			if requirement.IsPublic() {
				metrics.AuthDecisionsTotal.WithLabelValues("public").Inc()
				return next(c)
			}

			email, password, ok := req.BasicAuth()
			if !ok {
				return unauthenticated(c)
			}

			identity, err := auth.Authenticate(req.Context(), email, password)
			if err != nil {
				if errors.Is(err, domain.ErrInvalidCredentials) {
					return unauthenticated(c)
				}
				// store outage etc. — not an auth failure
				return err
			}

			if !requirement.SatisfiedBy(*identity) {
				metrics.AuthDecisionsTotal.WithLabelValues("forbidden").Inc()
				return echo.NewHTTPError(http.StatusForbidden, "access forbidden")
			}

			metrics.AuthDecisionsTotal.WithLabelValues("admitted").Inc()
			c.Set(identityKey, identity)
			return next(c)
		}
	}
}

func unauthenticated(c echo.Context) error {
	metrics.AuthDecisionsTotal.WithLabelValues("unauthenticated").Inc()
	c.Response().Header().Set(echo.HeaderWWWAuthenticate, basicChallenge)
	return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
}

// CurrentIdentity extracts the identity stored by Security. The second
// return is false on public routes, where no identity was resolved.
func CurrentIdentity(c echo.Context) (*domain.Identity, bool) {
	identity, ok := c.Get(identityKey).(*domain.Identity)
	return identity, ok
}
