package repository

import (
	"github.com/yukikurage/study-planner-api/internal/database"
	"github.com/yukikurage/study-planner-api/internal/models"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return translateError(r.db.Create(task).Error)
}

// FindByIDForOwner finds a task by ID within the owner's tasks
func (r *GormTaskRepository) FindByIDForOwner(id, ownerID uint64) (*models.Task, error) {
	var task models.Task
	if err := r.db.Scopes(database.OwnedBy(ownerID)).First(&task, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &task, nil
}

// ListByOwner retrieves all tasks of a user
func (r *GormTaskRepository) ListByOwner(ownerID uint64) ([]models.Task, error) {
	tasks := []models.Task{}
	if err := r.db.Scopes(database.OwnedBy(ownerID)).Order("id ASC").Find(&tasks).Error; err != nil {
		return nil, translateError(err)
	}
	return tasks, nil
}

// Update writes every column of a task previously loaded for its owner.
// user_id is part of the WHERE clause so a foreign row is never touched.
// A row that disappeared since it was loaded reports ErrNotFound.
func (r *GormTaskRepository) Update(task *models.Task) error {
	result := r.db.Model(task).
		Scopes(database.OwnedBy(task.UserID)).
		Select("*").
		Omit("id", "user_id", "created_at").
		Updates(task)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete deletes a task owned by ownerID
func (r *GormTaskRepository) Delete(id, ownerID uint64) error {
	result := r.db.Scopes(database.OwnedBy(ownerID)).Delete(&models.Task{}, id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
