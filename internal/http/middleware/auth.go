package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nurpe/renttax/internal/model"
)

const principalKey = "principal"

type TokenParser interface {
	Enabled() bool
	Parse(token string) (model.Principal, error)
}

// Auth requires a bearer token when the parser has a secret. Without one
// every request runs as the anonymous principal.
func Auth(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !parser.Enabled() {
			c.Set(principalKey, model.Principal{})
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || strings.TrimSpace(token) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		principal, err := parser.Parse(strings.TrimSpace(token))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Set(principalKey, principal)
		c.Next()
	}
}

func MustPrincipal(c *gin.Context) (model.Principal, bool) {
	value, ok := c.Get(principalKey)
	if !ok {
		return model.Principal{}, false
	}
	principal, ok := value.(model.Principal)
	return principal, ok
}
