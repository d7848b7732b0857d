package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/spacecadet3008/Kristo-mfalme/internal/security"
)

// requireAPIKey checks X-API-Key against the configured hash. An empty
// configured hash disables the check for local development.
func (s *Server) requireAPIKey() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.apiKeyHash == "" {
			c.Next()
			return
		}

		key := c.GetHeader("X-API-Key")
		if key == "" || !security.VerifyKey(key, s.apiKeyHash) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid api key"})
			return
		}

		c.Next()
	}
}
