package dto

import (
	"time"

	"github.com/yukikurage/study-planner-api/internal/models"
	"github.com/yukikurage/study-planner-api/internal/utils"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// TaskDTO represents a task in API responses. Dates are YYYY-MM-DD strings,
// start_date is empty when unset.
type TaskDTO struct {
	ID             uint64 `json:"id"`
	Name           string `json:"name"`
	Type           string `json:"type"`
	StartDate      string `json:"start_date"`
	Deadline       string `json:"deadline"`
	EstimatedHours int    `json:"estimated_hours"`
	Difficulty     int    `json:"difficulty"`
	Completed      bool   `json:"completed"`
}

// KeyPointDTO represents a key point in API responses
type KeyPointDTO struct {
	ID        uint64    `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Conversion functions

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	}
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	return TaskDTO{
		ID:             task.ID,
		Name:           task.Name,
		Type:           task.Type,
		StartDate:      utils.FormatOptionalDate(task.StartDate),
		Deadline:       utils.FormatDate(task.Deadline),
		EstimatedHours: task.EstimatedHours,
		Difficulty:     task.Difficulty,
		Completed:      task.Completed,
	}
}

// ToTaskDTOs converts a slice of tasks, never returning nil
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	items := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskDTO(task)
	}
	return items
}

// ToKeyPointDTO converts a KeyPoint model to KeyPointDTO
func ToKeyPointDTO(keyPoint models.KeyPoint) KeyPointDTO {
	return KeyPointDTO{
		ID:        keyPoint.ID,
		Content:   keyPoint.Content,
		CreatedAt: keyPoint.CreatedAt,
	}
}

// ToKeyPointDTOs converts a slice of key points, never returning nil
func ToKeyPointDTOs(keyPoints []models.KeyPoint) []KeyPointDTO {
	items := make([]KeyPointDTO, len(keyPoints))
	for i, keyPoint := range keyPoints {
		items[i] = ToKeyPointDTO(keyPoint)
	}
	return items
}
