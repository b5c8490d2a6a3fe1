package middleware

import "net/http"

// Role names carried in token claims
const (
	RoleChair    = "chair"
	RoleReviewer = "reviewer"
	RoleAdmin    = "admin"
)

// RequireRole allows only authenticated users whose token carries one of the
// given roles. Admins pass every check.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := GetUserID(r); !ok {
				respondWithError(w, http.StatusUnauthorized, "User not authenticated")
				return
			}

			role, _ := GetUserRole(r)
			if role == RoleAdmin {
				next.ServeHTTP(w, r)
				return
			}
			for _, required := range roles {
				if role == required {
					next.ServeHTTP(w, r)
					return
				}
			}

			respondWithError(w, http.StatusForbidden, "Insufficient permissions")
		})
	}
}
