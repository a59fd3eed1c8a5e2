package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers"
	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

const (
	msgMissingToken = "требуется авторизация"
	msgInvalidToken = "недействительный токен"
	msgForbidden    = "доступ запрещен"
)

// Claims полезная нагрузка токена: id, email и роль пользователя.
// Старые токены несут роль в поле rol.
type Claims struct {
	ID      int64  `json:"id"`
	Email   string `json:"email"`
	Role    string `json:"role,omitempty"`
	RoleOld string `json:"rol,omitempty"`
	jwt.RegisteredClaims
}

// Principal строит пользователя из claims
func (c *Claims) Principal() (domain.Principal, error) {
	role := c.Role
	if role == "" {
		role = c.RoleOld
	}
	if c.ID <= 0 || c.Email == "" || role == "" {
		return domain.Principal{}, errors.New("token lacks id, email or role")
	}
	return domain.Principal{ID: c.ID, Email: c.Email, Role: domain.Role(role)}, nil
}

// Auth проверяет Bearer JWT (HMAC) и кладет пользователя в контекст
func Auth(secret string, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}
			tokenString := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))

			claims := &Claims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				logger.Warn("Auth: invalid token for %s %s: %v", r.Method, r.URL.Path, err)
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			principal, err := claims.Principal()
			if err != nil {
				logger.Warn("Auth: %v", err)
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), principal)))
		})
	}
}

// RequireRole пропускает только пользователей с одной из ролей; ставится после Auth
func RequireRole(roles ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := GetPrincipal(r.Context())
			if !ok {
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}
			for _, role := range roles {
				if principal.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			handlers.RespondForbidden(w, msgForbidden)
		})
	}
}
