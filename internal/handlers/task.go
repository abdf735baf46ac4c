package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/study-planner-api/internal/dto"
	apierrors "github.com/yukikurage/study-planner-api/internal/errors"
	"github.com/yukikurage/study-planner-api/internal/middleware"
	"github.com/yukikurage/study-planner-api/internal/services"
	"github.com/yukikurage/study-planner-api/internal/utils"
)

// TaskHandler handles task-related HTTP requests
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	utils.RegisterValidators()
	return &TaskHandler{
		taskService: taskService,
	}
}

type createTaskRequest struct {
	Name           string `json:"name" binding:"required,max=200"`
	Type           string `json:"type" binding:"required,max=50"`
	StartDate      string `json:"start_date" binding:"omitempty,isodate"`
	Deadline       string `json:"deadline" binding:"required,isodate"`
	EstimatedHours *int   `json:"estimated_hours" binding:"required"`
	Difficulty     *int   `json:"difficulty" binding:"required"`
}

// updateTaskRequest only carries the fields the client sent.
type updateTaskRequest struct {
	Name           *string `json:"name"`
	Type           *string `json:"type"`
	StartDate      *string `json:"start_date"`
	Deadline       *string `json:"deadline"`
	EstimatedHours *int    `json:"estimated_hours"`
	Difficulty     *int    `json:"difficulty"`
}

type deleteByIDRequest struct {
	ID uint64 `json:"id" binding:"required"`
}

// ListTasks returns the current user's tasks
func (h *TaskHandler) ListTasks(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	tasks, err := h.taskService.ListTasks(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

// GetTask returns a single task owned by the current user
func (h *TaskHandler) GetTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}
	taskID, ok := middleware.GetTaskID(c)
	if !ok {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	task, err := h.taskService.GetTask(userID, taskID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// CreateTask creates a new task for the current user
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, utils.ValidationMessage(err))
		return
	}

	task, err := h.taskService.CreateTask(userID, services.CreateTaskInput{
		Name:           req.Name,
		Type:           req.Type,
		StartDate:      req.StartDate,
		Deadline:       req.Deadline,
		EstimatedHours: *req.EstimatedHours,
		Difficulty:     *req.Difficulty,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status": statusSuccess,
		"id":     task.ID,
	})
}

// UpdateTask applies a partial update to one of the current user's tasks
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}
	taskID, ok := middleware.GetTaskID(c)
	if !ok {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.UpdateTask(userID, taskID, services.UpdateTaskInput{
		Name:           req.Name,
		Type:           req.Type,
		StartDate:      req.StartDate,
		Deadline:       req.Deadline,
		EstimatedHours: req.EstimatedHours,
		Difficulty:     req.Difficulty,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": statusSuccess,
		"task":   dto.ToTaskDTO(*task),
	})
}

// DeleteTask deletes the task whose id is in the request body
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var req deleteByIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, utils.ValidationMessage(err))
		return
	}

	if err := h.taskService.DeleteTask(userID, req.ID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": statusSuccess,
	})
}

// ToggleComplete flips the completed flag and reports the new value
func (h *TaskHandler) ToggleComplete(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}
	taskID, ok := middleware.GetTaskID(c)
	if !ok {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	completed, err := h.taskService.ToggleComplete(userID, taskID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    statusSuccess,
		"completed": completed,
	})
}
