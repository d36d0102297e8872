package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	tenantDomain "fleetcodes/internal/domain/tenant"
)

// HeaderTenantID carries the tenant's public id. An absent header means
// global scope (no specific tenant), which is a valid way to call the API.
const HeaderTenantID = "X-Tenant-ID"

type tenantKey struct{}

// TenantResolver maps the X-Tenant-ID header to the tenant's numeric id and
// stores it on the request context. Unknown or inactive tenants are rejected
// before any handler runs.
func TenantResolver(repo tenantDomain.Repository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			publicID := strings.TrimSpace(c.Request().Header.Get(HeaderTenantID))
			if publicID == "" {
				return next(c)
			}
			if !reHex32.MatchString(publicID) {
				return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid " + HeaderTenantID})
			}
			t, err := repo.GetByPublicID(c.Request().Context(), publicID)
			if err != nil {
				if errors.Is(err, tenantDomain.ErrNotFound) || isRecordNotFound(err) {
					return c.JSON(http.StatusNotFound, map[string]string{"error": "unknown tenant"})
				}
				return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "tenant lookup failed"})
			}
			if !t.Active {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "tenant is inactive"})
			}

			req := c.Request()
			c.SetRequest(req.WithContext(context.WithValue(req.Context(), tenantKey{}, t.ID)))
			return next(c)
		}
	}
}

// TenantFromContext returns the resolved numeric tenant id, or nil for the
// global scope.
func TenantFromContext(ctx context.Context) *uint64 {
	if v, ok := ctx.Value(tenantKey{}).(uint64); ok {
		return &v
	}
	return nil
}
