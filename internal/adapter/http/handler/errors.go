package handler

import (
	"errors"
	"net/http"

	"github.com/mansiruhil/fail-u-forward-sub000/internal/adapter/http/api"
	"github.com/mansiruhil/fail-u-forward-sub000/internal/domain/engagement"
	postdomain "github.com/mansiruhil/fail-u-forward-sub000/internal/domain/post"
	"github.com/mansiruhil/fail-u-forward-sub000/internal/port/auth"
	"github.com/mansiruhil/fail-u-forward-sub000/internal/port/repository"
	engagementusecase "github.com/mansiruhil/fail-u-forward-sub000/internal/usecase/engagement"
	postusecase "github.com/mansiruhil/fail-u-forward-sub000/internal/usecase/post"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const (
	messageUnauthorized       = "authentication required"
	messageInvalidRequest     = "invalid request"
	messageInvalidReaction    = api.MessageInvalidReactionKind
	messagePostNotFound       = "post not found"
	messagePostConflict       = "post already exists"
	messageNotAuthor          = "only the author can edit this post"
	messageEditWindowClosed   = "edit window has closed"
	messageStorageUnavailable = "storage unavailable, please retry"
	messageInternalError      = "internal server error"
)

/**
 * Maps an error from the usecases onto an HTTP status and an error envelope.
 * Unexpected errors are logged with their cause and answered with 500.
 */
func writeError(c *gin.Context, err error) {
	status, message := classify(err)
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", status).
			Msg("Request failed")
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, api.Fail(message))
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, auth.ErrUnauthorized), errors.Is(err, auth.ErrInvalidCredential):
		return http.StatusUnauthorized, messageUnauthorized
	case errors.Is(err, repository.ErrPostNotFound):
		return http.StatusNotFound, messagePostNotFound
	case errors.Is(err, engagement.ErrInvalidReactionKind):
		return http.StatusBadRequest, messageInvalidReaction
	case errors.Is(err, engagement.ErrInvalidAction),
		errors.Is(err, engagementusecase.ErrNilInput),
		errors.Is(err, postusecase.ErrNilInput),
		errors.Is(err, postdomain.ErrEmptyContent),
		errors.Is(err, postdomain.ErrContentTooLong),
		errors.Is(err, postdomain.ErrEmptyComment),
		errors.Is(err, postdomain.ErrCommentTooLong):
		return http.StatusBadRequest, messageInvalidRequest
	case errors.Is(err, postdomain.ErrNotAuthor):
		return http.StatusForbidden, messageNotAuthor
	case errors.Is(err, postdomain.ErrEditWindowClosed):
		return http.StatusConflict, messageEditWindowClosed
	case errors.Is(err, repository.ErrPostAlreadyExists):
		return http.StatusConflict, messagePostConflict
	case errors.Is(err, repository.ErrStorageUnavailable):
		return http.StatusServiceUnavailable, messageStorageUnavailable
	default:
		return http.StatusInternalServerError, messageInternalError
	}
}

// badRequest answers a body that could not be decoded.
func badRequest(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusBadRequest, api.Fail(messageInvalidRequest))
}
