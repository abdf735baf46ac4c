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

// KeyPointHandler handles key point HTTP requests
type KeyPointHandler struct {
	keyPointService *services.KeyPointService
}

func NewKeyPointHandler(keyPointService *services.KeyPointService) *KeyPointHandler {
	return &KeyPointHandler{
		keyPointService: keyPointService,
	}
}

type createKeyPointRequest struct {
	Content string `json:"content"`
}

func (h *KeyPointHandler) ListKeyPoints(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	keyPoints, err := h.keyPointService.ListKeyPoints(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToKeyPointDTOs(keyPoints))
}

func (h *KeyPointHandler) CreateKeyPoint(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var req createKeyPointRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	keyPoint, err := h.keyPointService.CreateKeyPoint(userID, req.Content)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status": statusSuccess,
		"id":     keyPoint.ID,
	})
}

func (h *KeyPointHandler) DeleteKeyPoint(c *gin.Context) {
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

	if err := h.keyPointService.DeleteKeyPoint(userID, req.ID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": statusSuccess,
	})
}
