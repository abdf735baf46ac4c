package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/study-planner-api/internal/dto"
	"github.com/yukikurage/study-planner-api/internal/middleware"
	"github.com/yukikurage/study-planner-api/internal/services"
)

// DashboardHandler renders the signed-in home page
type DashboardHandler struct {
	authService     *services.AuthService
	taskService     *services.TaskService
	keyPointService *services.KeyPointService
}

func NewDashboardHandler(authService *services.AuthService, taskService *services.TaskService, keyPointService *services.KeyPointService) *DashboardHandler {
	return &DashboardHandler{
		authService:     authService,
		taskService:     taskService,
		keyPointService: keyPointService,
	}
}

func (h *DashboardHandler) Show(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	user, err := h.authService.GetUser(userID)
	if errors.Is(err, services.ErrUserNotFound) {
		// stale session for a user that no longer exists
		c.Redirect(http.StatusFound, "/logout")
		return
	}
	if err != nil {
		_ = c.Error(err)
		c.String(http.StatusInternalServerError, "Failed to load user")
		return
	}

	tasks, err := h.taskService.ListTasks(userID)
	if err != nil {
		_ = c.Error(err)
		c.String(http.StatusInternalServerError, "Failed to load tasks")
		return
	}
	keyPoints, err := h.keyPointService.ListKeyPoints(userID)
	if err != nil {
		_ = c.Error(err)
		c.String(http.StatusInternalServerError, "Failed to load key points")
		return
	}

	c.HTML(http.StatusOK, "dashboard.html", gin.H{
		"username":  user.Username,
		"tasks":     dto.ToTaskDTOs(tasks),
		"keypoints": dto.ToKeyPointDTOs(keyPoints),
		"flashes":   popFlashes(c),
	})
}
