package handler

import (
	"context"
	"net/http"

	"github.com/mansiruhil/fail-u-forward-sub000/internal/adapter/http/api"
	"github.com/mansiruhil/fail-u-forward-sub000/internal/domain/engagement"
	"github.com/mansiruhil/fail-u-forward-sub000/internal/domain/post"
	engagementusecase "github.com/mansiruhil/fail-u-forward-sub000/internal/usecase/engagement"

	"github.com/gin-gonic/gin"
)

// ReactExecutor runs one engagement action.
type ReactExecutor interface {
	Execute(ctx context.Context, in *engagementusecase.ReactInput) (*engagementusecase.ReactOutput, error)
}

type EngagementHandler struct {
	usecase ReactExecutor
}

func NewEngagementHandler(usecase ReactExecutor) *EngagementHandler {
	return &EngagementHandler{usecase: usecase}
}

// POST /posts/:id/like
func (h *EngagementHandler) Like(c *gin.Context) {
	h.run(c, engagement.Like())
}

// POST /posts/:id/dislike
func (h *EngagementHandler) Dislike(c *gin.Context) {
	h.run(c, engagement.Dislike())
}

/**
 * POST /posts/:id/react with {"reactionKind": "..."}.
 * An unknown kind is answered with 400 before storage is touched.
 */
func (h *EngagementHandler) React(c *gin.Context) {
	var req api.ReactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	kind, err := engagement.ParseReactionKind(req.ReactionKind)
	if err != nil {
		writeError(c, err)
		return
	}
	h.run(c, engagement.React(kind))
}

func (h *EngagementHandler) run(c *gin.Context, action engagement.Action) {
	out, err := h.usecase.Execute(c.Request.Context(), &engagementusecase.ReactInput{
		PostID:  post.ID(c.Param("id")),
		ActorID: actorFrom(c),
		Action:  action,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.OK(api.NewEngagementState(out.State)))
}
