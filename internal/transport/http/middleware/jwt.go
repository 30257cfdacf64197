package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	ContextSubjectKey = "subject"

	UnauthorizedMessage = "Unauthorized :Please provide a valid token"
)

type TokenVerifier interface {
	Verify(token string) (string, error)
}

// AuthJWT guards every route except those in allowList, matched against the
// registered route pattern. There is no session store; each request carries
// its own bearer token.
func AuthJWT(verifier TokenVerifier, allowList ...string) gin.HandlerFunc {
	open := make(map[string]struct{}, len(allowList))
	for _, path := range allowList {
		open[path] = struct{}{}
	}

	return func(c *gin.Context) {
		if _, ok := open[c.FullPath()]; ok {
			c.Next()
			return
		}

		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			unauthorized(c)
			return
		}

		subject, err := verifier.Verify(token)
		if err != nil {
			unauthorized(c)
			return
		}

		c.Set(ContextSubjectKey, subject)
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	header = strings.TrimSpace(header)
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}

func unauthorized(c *gin.Context) {
	c.String(http.StatusUnauthorized, UnauthorizedMessage)
	c.Abort()
}

func Subject(c *gin.Context) string {
	return c.GetString(ContextSubjectKey)
}
