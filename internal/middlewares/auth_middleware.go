package middlewares

import (
	"strings"

	"github.com/gin-gonic/gin"

	"h2grid/internal/models"
	"h2grid/internal/responses"
	"h2grid/internal/services"
)

const (
	TokenCookieName = "token"
	accountKey      = "account"
)

// TokenFromRequest reads the session token from the cookie, falling back to a
// bearer Authorization header.
func TokenFromRequest(c *gin.Context) string {
	if token, err := c.Cookie(TokenCookieName); err == nil && token != "" {
		return token
	}

	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// Session resolves the request's token to an account of the service's kind
// and stores it on the context.
func Session(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		account, err := auth.Authenticate(c.Request.Context(), TokenFromRequest(c))
		if err != nil {
			responses.Abort(c, err, "Failed to verify session")
			return
		}

		c.Set(accountKey, account)
		c.Next()
	}
}

func CurrentAccount(c *gin.Context) (models.Account, bool) {
	v, ok := c.Get(accountKey)
	if !ok {
		return nil, false
	}
	account, ok := v.(models.Account)
	return account, ok
}
