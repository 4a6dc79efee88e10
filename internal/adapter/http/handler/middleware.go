package handler

import (
	"context"
	"time"

	"github.com/mansiruhil/fail-u-forward-sub000/internal/domain/engagement"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// actorKey is the gin context key holding the verified actor id.
const actorKey = "actorID"

// Authorizer resolves the Authorization header to a verified actor.
type Authorizer interface {
	Authorize(ctx context.Context, header string) (engagement.ActorID, error)
}

/**
 * Rejects the request with 401 unless the bearer credential verifies.
 * The verified actor id is stored on the context for the handlers.
 */
func RequireActor(gate Authorizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, err := gate.Authorize(c.Request.Context(), c.GetHeader("Authorization"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.Set(actorKey, actor)
		c.Next()
	}
}

// actorFrom returns the actor set by RequireActor.
func actorFrom(c *gin.Context) engagement.ActorID {
	v, ok := c.Get(actorKey)
	if !ok {
		return ""
	}
	actor, _ := v.(engagement.ActorID)
	return actor
}

// RequestLogger logs one line per request.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		level := zerolog.InfoLevel
		switch {
		case status >= 500:
			level = zerolog.ErrorLevel
		case status >= 400:
			level = zerolog.WarnLevel
		}
		log.WithLevel(level).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("HTTP request")
	}
}
