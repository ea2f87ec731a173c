package middleware

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"hrms/internal/domain/auth"
	"hrms/internal/transport/http/api"
)

// AdminOnly passes callers whose normalized role is admin or hr manager.
// The refusal names the offending role for operator diagnosis.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := GetUser(r.Context())
		if !ok {
			api.Error(w, http.StatusUnauthorized, "Authentication required")
			return
		}
		if !auth.IsAdminRole(user.Role) {
			api.Error(w, http.StatusForbidden, fmt.Sprintf("Access denied: Role %q is not authorized for this action", user.Role))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// AdminOrSelf passes admins, or callers whose identity equals the
// path-addressed resource owner. Ids are compared as strings to tolerate
// numeric/string mismatches.
func AdminOrSelf(param string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := GetUser(r.Context())
			if !ok {
				api.Error(w, http.StatusUnauthorized, "Authentication required")
				return
			}
			isSelf := strconv.Itoa(user.UserID) == chi.URLParam(r, param)
			if !auth.IsAdminRole(user.Role) && !isSelf {
				api.Error(w, http.StatusForbidden, "Access denied: You can only update your own record or require admin privileges")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
