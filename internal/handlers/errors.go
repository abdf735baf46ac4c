package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/study-planner-api/internal/constants"
	apierrors "github.com/yukikurage/study-planner-api/internal/errors"
	"github.com/yukikurage/study-planner-api/internal/services"
)

const statusSuccess = "success"

// respondServiceError maps service sentinels onto the API error shape.
// Unknown errors are attached to the context for the request logger.
func respondServiceError(c *gin.Context, err error) {
	var validationErr *services.ValidationError

	switch {
	case errors.As(err, &validationErr):
		apierrors.BadRequestWithDetails(c, validationErr.Message, gin.H{"field": validationErr.Field})
	case errors.Is(err, services.ErrEmptyConversation):
		apierrors.BadRequest(c, constants.ChatEmptyReply)
	case errors.Is(err, services.ErrDuplicateUsername):
		apierrors.Conflict(c, apierrors.ErrCodeDuplicateUsername, "Username already exists")
	case errors.Is(err, services.ErrDuplicateEmail):
		apierrors.Conflict(c, apierrors.ErrCodeDuplicateEmail, "Email already exists")
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.InvalidCredentials(c)
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, "User not found")
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, "Task not found or unauthorized")
	case errors.Is(err, services.ErrKeyPointNotFound):
		apierrors.NotFound(c, "Key point not found or unauthorized")
	default:
		_ = c.Error(err)
		apierrors.InternalError(c, "")
	}
}

// flashMessage is the text shown on the HTML pages after a failed form post.
func flashMessage(err error) string {
	var validationErr *services.ValidationError

	switch {
	case errors.As(err, &validationErr):
		return validationErr.Message
	case errors.Is(err, services.ErrDuplicateUsername):
		return "Username already exists"
	case errors.Is(err, services.ErrDuplicateEmail):
		return "Email already exists"
	case errors.Is(err, services.ErrInvalidCredentials):
		return "Invalid credentials"
	default:
		return "Something went wrong, please try again"
	}
}
