package handler

import (
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RouterConfig carries the settings the router needs.
type RouterConfig struct {
	CORSOrigins []string
}

// NewRouter returns a gin.Engine with every route bound. Reads are public,
// mutations pass through RequireActor.
func NewRouter(cfg RouterConfig, gate Authorizer, engagementHandler *EngagementHandler, postHandler *PostHandler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger())
	router.Use(cors.New(corsConfig(cfg.CORSOrigins)))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	posts := router.Group("/posts")
	posts.GET("", postHandler.ListFeed)
	posts.GET("/:id", postHandler.GetPost)

	authed := posts.Group("", RequireActor(gate))
	authed.POST("", postHandler.CreatePost)
	authed.PATCH("/:id", postHandler.EditPost)
	authed.POST("/:id/comments", postHandler.AddComment)
	authed.POST("/:id/share", postHandler.SharePost)
	authed.POST("/:id/like", engagementHandler.Like)
	authed.POST("/:id/dislike", engagementHandler.Dislike)
	authed.POST("/:id/react", engagementHandler.React)

	return router
}

// corsConfig allows every origin when none or "*" is configured, without
// credentials in that case.
func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
