package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Pesokrava/profile_reviews/internal/delivery/http/response"
	"github.com/Pesokrava/profile_reviews/internal/pkg/logger"
)

type contextKey string

const (
	userIDKey      contextKey = "user_id"
	accountTypeKey contextKey = "account_type"
)

// Claims are the bearer token claims this service relies on. The subject is the user ID.
type Claims struct {
	AccountType string `json:"account_type"`
	jwt.RegisteredClaims
}

// Authenticate returns middleware that verifies HS256 bearer tokens and stores
// the caller's user ID and account type in the request context
func Authenticate(secret, issuer string, log *logger.Logger) func(http.Handler) http.Handler {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	parser := jwt.NewParser(opts...)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				response.Error(w, http.StatusUnauthorized, "missing authorization header", "unauthorized")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				response.Error(w, http.StatusUnauthorized, "invalid authorization header format", "unauthorized")
				return
			}

			var claims Claims
			_, err := parser.ParseWithClaims(parts[1], &claims, func(*jwt.Token) (any, error) {
				return []byte(secret), nil
			})
			if err != nil {
				log.WithFields(map[string]interface{}{
					"path":  r.URL.Path,
					"error": err.Error(),
				}).Warn("Rejected bearer token")
				response.Error(w, http.StatusUnauthorized, "invalid or expired token", "unauthorized")
				return
			}

			userID, err := uuid.Parse(claims.Subject)
			if err != nil {
				response.Error(w, http.StatusUnauthorized, "invalid token subject", "unauthorized")
				return
			}

			recordUser(r.Context(), userID)
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), userID, claims.AccountType)))
		})
	}
}

// RequireAccountType rejects callers whose token does not carry accountType
func RequireAccountType(accountType string) func(http.Handler) http.Handler {
	want := strings.ToUpper(accountType)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if AccountTypeFromContext(r.Context()) != want {
				response.Error(w, http.StatusForbidden, "this action requires a "+strings.ToLower(want)+" account", "forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ErrNoUser is returned when the request context carries no authenticated user
var ErrNoUser = errors.New("no authenticated user in context")

// UserIDFromContext returns the authenticated user's ID
func UserIDFromContext(ctx context.Context) (uuid.UUID, error) {
	userID, ok := ctx.Value(userIDKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, ErrNoUser
	}
	return userID, nil
}

// AccountTypeFromContext returns the authenticated user's account type, or ""
func AccountTypeFromContext(ctx context.Context) string {
	accountType, _ := ctx.Value(accountTypeKey).(string)
	return accountType
}

// WithUser returns a copy of ctx carrying an authenticated user
func WithUser(ctx context.Context, userID uuid.UUID, accountType string) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, accountTypeKey, strings.ToUpper(accountType))
}
