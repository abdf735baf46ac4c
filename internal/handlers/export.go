package handlers

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/study-planner-api/internal/errors"
	"github.com/yukikurage/study-planner-api/internal/middleware"
	"github.com/yukikurage/study-planner-api/internal/services"
)

// ExportHandler serves downloadable task exports
type ExportHandler struct {
	exportService *services.ExportService
}

func NewExportHandler(exportService *services.ExportService) *ExportHandler {
	return &ExportHandler{
		exportService: exportService,
	}
}

// ExportCSV sends the current user's tasks as a CSV attachment.
// The document is buffered so a failure can still produce a JSON error.
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var buf bytes.Buffer
	if err := h.exportService.WriteTasksCSV(&buf, userID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=tasks.csv")
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}
