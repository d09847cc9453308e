package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-users/internal/stores"
	"go-users/internal/token"
)

// AuthHeader carries the access token on requests and login responses.
const AuthHeader = "x-auth-token"

// Gin context keys set by JWTAuthMiddleware for the handlers behind it.
const (
	CtxUserID  = "user_id"
	CtxRole    = "role"
	CtxTokenID = "token_id"
)

// JWTAuthMiddleware rejects requests without a valid, unrevoked access token.
func JWTAuthMiddleware(tokens token.TokenService, revoked stores.RevokedTokenStore, log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(AuthHeader)
		if raw == "" {
			abortText(c, http.StatusUnauthorized, "Access denied. No token provided.")
			return
		}

		claims, err := tokens.ParseAccessToken(raw)
		if err != nil {
			abortText(c, http.StatusBadRequest, "Invalid token.")
			return
		}

		isRevoked, err := revoked.IsRevoked(c.Request.Context(), claims.ID)
		if err != nil {
			log.ErrorContext(c.Request.Context(), "revocation lookup failed", "jti", claims.ID, "err", err)
			_ = c.Error(err)
			c.Abort()
			return
		}
		if isRevoked {
			abortText(c, http.StatusUnauthorized, "Token has been revoked.")
			return
		}

		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxRole, claims.Role)
		c.Set(CtxTokenID, claims.ID)
		c.Next()
	}
}

func abortText(c *gin.Context, code int, msg string) {
	c.String(code, msg)
	c.Abort()
}
