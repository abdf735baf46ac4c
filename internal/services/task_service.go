package services

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/yukikurage/study-planner-api/internal/constants"
	"github.com/yukikurage/study-planner-api/internal/models"
	"github.com/yukikurage/study-planner-api/internal/repository"
	"github.com/yukikurage/study-planner-api/internal/utils"
)

// TaskService handles task business logic. Every method takes the owner
// explicitly and never touches another user's tasks.
type TaskService struct {
	taskRepo repository.TaskRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
	}
}

// CreateTaskInput represents input for creating a task.
// Dates are YYYY-MM-DD strings; an empty StartDate means none.
type CreateTaskInput struct {
	Name           string
	Type           string
	StartDate      string
	Deadline       string
	EstimatedHours int
	Difficulty     int
}

// UpdateTaskInput represents a partial update; nil fields are left unchanged.
// A non-nil empty StartDate clears the start date.
type UpdateTaskInput struct {
	Name           *string
	Type           *string
	StartDate      *string
	Deadline       *string
	EstimatedHours *int
	Difficulty     *int
}

// ListTasks returns the owner's tasks in storage order
func (s *TaskService) ListTasks(ownerID uint64) ([]models.Task, error) {
	tasks, err := s.taskRepo.ListByOwner(ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// GetTask returns one of the owner's tasks
func (s *TaskService) GetTask(ownerID, taskID uint64) (*models.Task, error) {
	return s.findOwned(ownerID, taskID)
}

// CreateTask validates input and stores a task stamped with the owner
func (s *TaskService) CreateTask(ownerID uint64, input CreateTaskInput) (*models.Task, error) {
	name, err := validateName(input.Name)
	if err != nil {
		return nil, err
	}
	taskType, err := validateType(input.Type)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Deadline) == "" {
		return nil, invalid("deadline", "deadline is required")
	}
	deadline, err := utils.ParseDate(input.Deadline)
	if err != nil {
		return nil, invalid("deadline", "deadline must be a date in YYYY-MM-DD format")
	}
	startDate, err := utils.ParseOptionalDate(input.StartDate)
	if err != nil {
		return nil, invalid("start_date", "start_date must be a date in YYYY-MM-DD format")
	}
	if err := validateEstimatedHours(input.EstimatedHours); err != nil {
		return nil, err
	}
	if err := validateDifficulty(input.Difficulty); err != nil {
		return nil, err
	}

	task := &models.Task{
		Name:           name,
		Type:           taskType,
		StartDate:      startDate,
		Deadline:       deadline,
		EstimatedHours: input.EstimatedHours,
		Difficulty:     input.Difficulty,
		UserID:         ownerID,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// UpdateTask applies the supplied fields after validating all of them
func (s *TaskService) UpdateTask(ownerID, taskID uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.findOwned(ownerID, taskID)
	if err != nil {
		return nil, err
	}

	updated := *task
	if input.Name != nil {
		if updated.Name, err = validateName(*input.Name); err != nil {
			return nil, err
		}
	}
	if input.Type != nil {
		if updated.Type, err = validateType(*input.Type); err != nil {
			return nil, err
		}
	}
	if input.StartDate != nil {
		if updated.StartDate, err = utils.ParseOptionalDate(*input.StartDate); err != nil {
			return nil, invalid("start_date", "start_date must be a date in YYYY-MM-DD format")
		}
	}
	if input.Deadline != nil {
		var deadline time.Time
		if deadline, err = utils.ParseDate(*input.Deadline); err != nil {
			return nil, invalid("deadline", "deadline must be a date in YYYY-MM-DD format")
		}
		updated.Deadline = deadline
	}
	if input.EstimatedHours != nil {
		if err := validateEstimatedHours(*input.EstimatedHours); err != nil {
			return nil, err
		}
		updated.EstimatedHours = *input.EstimatedHours
	}
	if input.Difficulty != nil {
		if err := validateDifficulty(*input.Difficulty); err != nil {
			return nil, err
		}
		updated.Difficulty = *input.Difficulty
	}

	if err := s.taskRepo.Update(&updated); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return &updated, nil
}

// DeleteTask deletes one of the owner's tasks
func (s *TaskService) DeleteTask(ownerID, taskID uint64) error {
	if err := s.taskRepo.Delete(taskID, ownerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// ToggleComplete flips the completed flag and returns the new state
func (s *TaskService) ToggleComplete(ownerID, taskID uint64) (bool, error) {
	task, err := s.findOwned(ownerID, taskID)
	if err != nil {
		return false, err
	}

	task.Completed = !task.Completed

	if err := s.taskRepo.Update(task); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, ErrTaskNotFound
		}
		return false, fmt.Errorf("failed to toggle task: %w", err)
	}

	return task.Completed, nil
}

func (s *TaskService) findOwned(ownerID, taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByIDForOwner(taskID, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", invalid("name", "name is required")
	}
	if utf8.RuneCountInString(name) > constants.MaxTaskNameLength {
		return "", invalid("name", "name must be at most %d characters", constants.MaxTaskNameLength)
	}
	return name, nil
}

func validateType(taskType string) (string, error) {
	taskType = strings.TrimSpace(taskType)
	if taskType == "" {
		return "", invalid("type", "type is required")
	}
	if utf8.RuneCountInString(taskType) > constants.MaxTaskTypeLength {
		return "", invalid("type", "type must be at most %d characters", constants.MaxTaskTypeLength)
	}
	return taskType, nil
}

func validateEstimatedHours(hours int) error {
	if hours < constants.MinEstimatedHours || hours > constants.MaxEstimatedHours {
		return invalid("estimated_hours", "estimated_hours must be between %d and %d",
			constants.MinEstimatedHours, constants.MaxEstimatedHours)
	}
	return nil
}

func validateDifficulty(difficulty int) error {
	if difficulty < constants.MinDifficulty || difficulty > constants.MaxDifficulty {
		return invalid("difficulty", "difficulty must be between %d and %d",
			constants.MinDifficulty, constants.MaxDifficulty)
	}
	return nil
}
