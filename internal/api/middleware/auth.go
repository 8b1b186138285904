package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ovs-lab/OVS-VisitScheduler/internal/api/handlers"
)

const (
	msgMissingToken     = "missing bearer token"
	msgInvalidToken     = "invalid bearer token"
	msgInsufficientRole = "insufficient role"
)

// Claims полезная нагрузка bearer-токена сервиса
type Claims struct {
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

// HasRole возвращает true, если токен содержит указанную роль
func (c *Claims) HasRole(role string) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// Auth проверяет bearer-токены и требуемые роли
type Auth struct {
	secret []byte
	logger Logger
}

// NewAuth создает middleware проверки токенов
func NewAuth(jwtSecret string, logger Logger) *Auth {
	return &Auth{
		secret: []byte(jwtSecret),
		logger: logger,
	}
}

// RequireRole возвращает middleware, пропускающий только запросы
// с валидным токеном, содержащим указанную роль
func (a *Auth) RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := a.parseToken(r)
			if err != nil {
				a.logger.Warn("Auth: %s %s - %v", r.Method, r.URL.Path, err)
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			if !claims.HasRole(role) {
				a.logger.Warn("Auth: %s %s - missing role %s (subject=%s)",
					r.Method, r.URL.Path, role, claims.Subject)
				handlers.RespondForbidden(w, msgInsufficientRole)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// parseToken извлекает и валидирует bearer-токен из заголовка Authorization
func (a *Auth) parseToken(r *http.Request) (*Claims, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return nil, fmt.Errorf("missing Authorization header")
	}

	tokenStr, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return nil, fmt.Errorf("malformed Authorization header")
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("token is not valid")
	}

	return claims, nil
}
