/**
 * @description
 * This file contains the authentication middleware for the HTTP router. The
 * mobile client carries its bearer token in the custom `x-auth-token` header;
 * the middleware validates the signature and injects the account id into the
 * request context for handlers to consume.
 *
 * @dependencies
 * - context, net/http: Standard Go libraries.
 * - internal/app: Token verification.
 */

package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/Amanchoudhary192002/Business-Management-System/internal/app"
)

// AccountIDContextKey is a custom type for the context key to avoid collisions.
type AccountIDContextKey string

const accountIDKey AccountIDContextKey = "accountID"

// TokenHeader is the request header the client sends its signed token in.
const TokenHeader = "x-auth-token"

// AuthMiddleware creates a middleware that validates the signed token carried
// in the x-auth-token header and stores the account id in the request context.
func AuthMiddleware(auth *app.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := strings.TrimSpace(r.Header.Get(TokenHeader))
			if tokenString == "" {
				http.Error(w, "No token, authorization denied", http.StatusUnauthorized)
				return
			}

			accountID, err := auth.VerifyToken(tokenString)
			if err != nil {
				http.Error(w, "Token is not valid", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), accountIDKey, accountID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetAccountID retrieves the authenticated account's id from the request
// context. Handlers should use this function rather than reading headers.
func GetAccountID(ctx context.Context) (uuid.UUID, bool) {
	accountID, ok := ctx.Value(accountIDKey).(uuid.UUID)
	return accountID, ok
}
