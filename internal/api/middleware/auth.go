package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// OwnerIDKey is the key used to store the authenticated owner ID in the context
const OwnerIDKey = "owner_id"

// TokenVerifier resolves a bearer token to the owner ID it was issued for
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// Auth middleware rejects requests without a valid bearer token and
// stores the resolved owner ID in the context. Every resource the API
// exposes is scoped to this owner.
func Auth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			abortUnauthorized(c, "Missing bearer token")
			return
		}

		ownerID, err := verifier.Verify(token)
		if err != nil {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		c.Set(OwnerIDKey, ownerID)
		c.Next()
	}
}

// GetOwnerID retrieves the authenticated owner ID from the gin context
// if present
func GetOwnerID(c *gin.Context) string {
	if id, exists := c.Get(OwnerIDKey); exists {
		if ownerID, ok := id.(string); ok {
			return ownerID
		}
	}
	return ""
}

func abortUnauthorized(c *gin.Context, message string) {
	response := gin.H{
		"error": gin.H{
			"code":    "UNAUTHORIZED",
			"message": message,
		},
	}
	if correlationID := GetCorrelationID(c); correlationID != "" {
		response["correlation_id"] = correlationID
	}
	c.AbortWithStatusJSON(http.StatusUnauthorized, response)
}
