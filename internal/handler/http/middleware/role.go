package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/staffhub-hr/leave-backend-go/internal/domain/auth"
	"github.com/staffhub-hr/leave-backend-go/internal/handler/http/response"
)

// RequireHR requires hr or admin role
func RequireHR(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, auth.ErrForbidden)
			return
		}

		roleStr, ok := claims["role"].(string)
		if !ok {
			response.HandleError(w, auth.ErrForbidden)
			return
		}

		role := auth.Role(roleStr)
		if role != auth.RoleHR && role != auth.RoleAdmin {
			response.HandleError(w, auth.ErrForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireAdmin requires admin role
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, auth.ErrForbidden)
			return
		}

		role, ok := claims["role"].(string)
		if !ok {
			response.HandleError(w, auth.ErrForbidden)
			return
		}

		if role != string(auth.RoleAdmin) {
			response.HandleError(w, auth.ErrForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// EmployeeID extracts the employee id claim from the verified token.
func EmployeeID(r *http.Request) (string, bool) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", false
	}
	id, ok := claims["employee_id"].(string)
	return id, ok && id != ""
}
