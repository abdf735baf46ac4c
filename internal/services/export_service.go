package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/yukikurage/study-planner-api/internal/models"
	"github.com/yukikurage/study-planner-api/internal/repository"
	"github.com/yukikurage/study-planner-api/internal/utils"
)

// TaskCSVHeader is the first row of every export.
var TaskCSVHeader = []string{"Name", "Type", "Start Date", "Deadline", "Estimated Hours", "Difficulty", "Completed"}

// ExportService serializes a user's tasks.
type ExportService struct {
	taskRepo repository.TaskRepository
}

func NewExportService(taskRepo repository.TaskRepository) *ExportService {
	return &ExportService{taskRepo: taskRepo}
}

// WriteTasksCSV writes the header and one row per task owned by ownerID.
func (s *ExportService) WriteTasksCSV(w io.Writer, ownerID uint64) error {
	tasks, err := s.taskRepo.ListByOwner(ownerID)
	if err != nil {
		return fmt.Errorf("failed to list tasks for export: %w", err)
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(TaskCSVHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, task := range tasks {
		if err := writer.Write(taskCSVRow(task)); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	writer.Flush()

	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}

func taskCSVRow(task models.Task) []string {
	completed := "No"
	if task.Completed {
		completed = "Yes"
	}
	return []string{
		task.Name,
		task.Type,
		utils.FormatOptionalDate(task.StartDate),
		utils.FormatDate(task.Deadline),
		strconv.Itoa(task.EstimatedHours),
		strconv.Itoa(task.Difficulty),
		completed,
	}
}
