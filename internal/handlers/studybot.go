package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/study-planner-api/internal/constants"
	apierrors "github.com/yukikurage/study-planner-api/internal/errors"
	"github.com/yukikurage/study-planner-api/internal/middleware"
	"github.com/yukikurage/study-planner-api/internal/ratelimit"
	"github.com/yukikurage/study-planner-api/internal/services"
)

// StudyBotHandler relays chat conversations to the completion API
type StudyBotHandler struct {
	chatService *services.ChatService
	limiter     ratelimit.Limiter
	timeout     time.Duration
}

// NewStudyBotHandler creates a StudyBotHandler. A nil limiter disables rate limiting.
func NewStudyBotHandler(chatService *services.ChatService, limiter ratelimit.Limiter, timeout time.Duration) *StudyBotHandler {
	if limiter == nil {
		limiter = ratelimit.Unlimited{}
	}
	if timeout <= 0 {
		timeout = constants.DefaultChatTimeout
	}
	return &StudyBotHandler{
		chatService: chatService,
		limiter:     limiter,
		timeout:     timeout,
	}
}

type studyBotRequest struct {
	Messages []services.ChatMessage `json:"messages"`
}

// Chat answers with {reply}. Upstream failures still produce a 200 with the fallback text.
func (h *StudyBotHandler) Chat(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var req studyBotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}
	if len(req.Messages) == 0 {
		respondServiceError(c, services.ErrEmptyConversation)
		return
	}

	if !h.limiter.Allow(c.Request.Context(), fmt.Sprintf("user:%d", userID)) {
		apierrors.TooManyRequests(c, "Too many StudyBot requests, please wait a moment")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	reply, err := h.chatService.Relay(ctx, req.Messages)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reply": reply,
	})
}
