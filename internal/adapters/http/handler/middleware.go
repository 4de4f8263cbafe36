package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const contextUserIDKey = "userID"

// TokenVerifier はセッショントークンを検証し、ユーザー ID を返します。
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// RequireAuth は Cookie もしくは Authorization ヘッダーのトークンを検証します。
func RequireAuth(verifier TokenVerifier, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromRequest(c, cookieName)
		if token == "" {
			fail(c, http.StatusUnauthorized, "User not authenticated.")
			return
		}

		userID, err := verifier.Verify(token)
		if err != nil {
			fail(c, http.StatusUnauthorized, "Invalid token.")
			return
		}

		c.Set(contextUserIDKey, userID)
		c.Next()
	}
}

func tokenFromRequest(c *gin.Context, cookieName string) string {
	if cookie, err := c.Cookie(cookieName); err == nil && cookie != "" {
		return cookie
	}

	header := c.GetHeader("Authorization")
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func currentUserID(c *gin.Context) string {
	return c.GetString(contextUserIDKey)
}
