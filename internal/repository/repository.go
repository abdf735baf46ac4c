package repository

import (
	"errors"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/yukikurage/study-planner-api/internal/models"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when an id lookup, or an owner scoped write, matches no row.
	ErrNotFound = errors.New("repository: record not found")
	// ErrConstraintViolation is returned when an insert violates a unique constraint.
	ErrConstraintViolation = errors.New("repository: unique constraint violated")
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)
}

// TaskRepository defines the interface for task data access.
// Every lookup and write is scoped to the owning user.
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByIDForOwner finds a task by ID if it belongs to ownerID
	FindByIDForOwner(id, ownerID uint64) (*models.Task, error)

	// ListByOwner lists the owner's tasks in storage order
	ListByOwner(ownerID uint64) ([]models.Task, error)

	// Update saves all columns of a task previously loaded for its owner
	Update(task *models.Task) error

	// Delete deletes a task if it belongs to ownerID
	Delete(id, ownerID uint64) error
}

// KeyPointRepository defines the interface for key point data access
type KeyPointRepository interface {
	Create(keyPoint *models.KeyPoint) error
	FindByIDForOwner(id, ownerID uint64) (*models.KeyPoint, error)
	ListByOwner(ownerID uint64) ([]models.KeyPoint, error)
	Delete(id, ownerID uint64) error
}

// translateError maps driver and gorm errors to repository errors.
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case isUniqueViolation(err):
		return ErrConstraintViolation
	default:
		return err
	}
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}

	var myErr *mysqldriver.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == 1062
	}

	return false
}
