package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/devconnect-io/devconnect/pkg/auth"
)

const GinContextKeyOwnerID = "ownerID"

// AuthMiddleware verifies the bearer credential carried in the configured
// header and attaches the resolved owner id to the request context. It is
// fully stateless: signature and expiry only, no store lookup.
func AuthMiddleware(jwtSvc *auth.JWTService, tokenHeader string) gin.HandlerFunc {
	return func(c *gin.Context) {

		token := c.GetHeader(tokenHeader)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "No token, authorization denied"})
			return
		}

		claims, err := jwtSvc.ValidateToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "Token is not valid"})
			return
		}

		c.Set(GinContextKeyOwnerID, claims.OwnerID)

		c.Next()
	}
}

func GetOwnerIDFromGinContext(c *gin.Context) (uuid.UUID, bool) {
	ownerID, ok := c.Get(GinContextKeyOwnerID)
	if !ok {
		return uuid.Nil, false
	}
	ownerIDUUID, ok := ownerID.(uuid.UUID)
	if !ok {
		return uuid.Nil, false
	}
	return ownerIDUUID, true
}
