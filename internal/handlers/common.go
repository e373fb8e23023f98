package handlers

import (
	"strconv"

	"healthcard-backend/internal/policy"

	"github.com/gin-gonic/gin"
)

// currentActor reads the identity AuthMiddleware stored on the context.
func currentActor(c *gin.Context) policy.Actor {
	var actor policy.Actor
	if v, ok := c.Get("userID"); ok {
		actor.ID = v.(uint64)
	}
	if v, ok := c.Get("role"); ok {
		actor.Role = v.(string)
	}
	return actor
}

// parseID parses a numeric path parameter. Returns 0 on garbage, which no
// row ever matches, so lookups fall through to a 404.
func parseID(c *gin.Context, param string) uint64 {
	id, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil {
		return 0
	}
	return id
}
