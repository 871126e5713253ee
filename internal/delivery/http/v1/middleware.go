package v1

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const actorIDCtxKey = "actor_id"

// HandleActorMiddleware resolves the acting reviewer from a bearer token
// issued by the chat platform's gateway. The token is optional: anonymous
// reads are allowed and actions are simply recorded without an actor. A
// present but invalid token is rejected.
func (h *handlerImpl) HandleActorMiddleware(c *gin.Context) {
	const authHeader = "Authorization"
	header := c.GetHeader(authHeader)
	if header == "" {
		c.Next()
		return
	}

	const bearerPrefix = "Bearer"
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != bearerPrefix {
		h.logger.Error().Msg("invalid authorization header")
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	claims, err := h.parseJWTToken(parts[1])
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to parse token")
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	c.Set(actorIDCtxKey, claims.Subject)
	c.Next()
}

func (h *handlerImpl) parseJWTToken(tokenString string) (*jwt.RegisteredClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (any, error) {
		return h.jwtSigningKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return nil, fmt.Errorf("failed to parse token claims")
	}
	return claims, nil
}

func actorID(c *gin.Context) string {
	value, exists := c.Get(actorIDCtxKey)
	if !exists {
		return ""
	}
	id, _ := value.(string)
	return id
}
