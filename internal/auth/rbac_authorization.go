package auth

import (
	"log/slog"
	"net/http"

	"github.com/registroos/registro-os/internal/user"
)

// RBACAuthorization builds route middleware over the role enum. The sector
// gate for shop-floor work lives in internal/access; these middlewares only
// decide by role.
type RBACAuthorization struct {
	logger *slog.Logger
}

func NewRBACAuthorization(logger *slog.Logger) *RBACAuthorization {
	return &RBACAuthorization{logger: logger}
}

func (ra *RBACAuthorization) requireRole(allowed func(user.Role) bool, label string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := user.FromContext(r.Context())
			if !ok || u == nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			if !allowed(u.Role) {
				ra.logger.WarnContext(r.Context(), "access denied: insufficient role",
					"user_id", u.ID,
					"role", u.Role,
					"required", label)
				http.Error(w, "Forbidden: insufficient permissions", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (ra *RBACAuthorization) RequireAdmin() func(http.Handler) http.Handler {
	return ra.requireRole(user.Role.IsAdmin, "admin")
}

// RequireSupervision admits SUPERVISOR, ADMIN and GESTAO.
func (ra *RBACAuthorization) RequireSupervision() func(http.Handler) http.Handler {
	return ra.requireRole(user.Role.IsSupervision, "supervision")
}

// RequirePlanning admits PCP plus the administrative roles, for scheduling
// endpoints like the order status refresh.
func (ra *RBACAuthorization) RequirePlanning() func(http.Handler) http.Handler {
	return ra.requireRole(func(r user.Role) bool {
		return r == user.RolePCP || r.IsSupervision()
	}, "planning")
}
