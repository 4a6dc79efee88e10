package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/mansiruhil/fail-u-forward-sub000/internal/adapter/http/api"
	postdomain "github.com/mansiruhil/fail-u-forward-sub000/internal/domain/post"
	postusecase "github.com/mansiruhil/fail-u-forward-sub000/internal/usecase/post"

	"github.com/gin-gonic/gin"
)

// Contracts of the post usecases.
type (
	CreatePostExecutor interface {
		Execute(ctx context.Context, in *postusecase.CreatePostInput) (*postusecase.CreatePostOutput, error)
	}
	GetPostExecutor interface {
		Execute(ctx context.Context, id postdomain.ID) (*postdomain.Snapshot, error)
	}
	ListFeedExecutor interface {
		Execute(ctx context.Context, limit int) ([]postdomain.Snapshot, error)
	}
	EditPostExecutor interface {
		Execute(ctx context.Context, in *postusecase.EditPostInput) (*postdomain.Snapshot, error)
	}
	AddCommentExecutor interface {
		Execute(ctx context.Context, in *postusecase.AddCommentInput) ([]postdomain.Comment, error)
	}
	SharePostExecutor interface {
		Execute(ctx context.Context, id postdomain.ID) (int, error)
	}
)

// PostUsecases groups what PostHandler delegates to.
type PostUsecases struct {
	Create  CreatePostExecutor
	Get     GetPostExecutor
	List    ListFeedExecutor
	Edit    EditPostExecutor
	Comment AddCommentExecutor
	Share   SharePostExecutor
}

type PostHandler struct {
	uc PostUsecases
}

func NewPostHandler(uc PostUsecases) *PostHandler {
	return &PostHandler{uc: uc}
}

/**
 * POST /posts creates a post authored by the verified actor.
 */
func (h *PostHandler) CreatePost(c *gin.Context) {
	var req api.ContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	out, err := h.uc.Create.Execute(c.Request.Context(), &postusecase.CreatePostInput{
		AuthorID: actorFrom(c),
		Content:  req.Content,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, api.OK(api.NewPost(out.Post)))
}

// GET /posts/:id
func (h *PostHandler) GetPost(c *gin.Context) {
	s, err := h.uc.Get.Execute(c.Request.Context(), postdomain.ID(c.Param("id")))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.OK(api.NewPost(*s)))
}

// GET /posts?limit=
func (h *PostHandler) ListFeed(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			badRequest(c)
			return
		}
		limit = n
	}

	snaps, err := h.uc.List.Execute(c.Request.Context(), limit)
	if err != nil {
		writeError(c, err)
		return
	}
	posts := make([]api.Post, 0, len(snaps))
	for _, s := range snaps {
		posts = append(posts, api.NewPost(s))
	}
	c.JSON(http.StatusOK, api.OK(posts))
}

// PATCH /posts/:id
func (h *PostHandler) EditPost(c *gin.Context) {
	var req api.ContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	s, err := h.uc.Edit.Execute(c.Request.Context(), &postusecase.EditPostInput{
		PostID:  postdomain.ID(c.Param("id")),
		ActorID: actorFrom(c),
		Content: req.Content,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.OK(api.NewPost(*s)))
}

// POST /posts/:id/comments
func (h *PostHandler) AddComment(c *gin.Context) {
	var req api.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	comments, err := h.uc.Comment.Execute(c.Request.Context(), &postusecase.AddCommentInput{
		PostID:  postdomain.ID(c.Param("id")),
		ActorID: actorFrom(c),
		Text:    req.Text,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, api.OK(api.NewComments(comments)))
}

// POST /posts/:id/share
func (h *PostHandler) SharePost(c *gin.Context) {
	shares, err := h.uc.Share.Execute(c.Request.Context(), postdomain.ID(c.Param("id")))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.OK(api.ShareResult{Shares: shares}))
}
