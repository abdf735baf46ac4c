package database

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/yukikurage/study-planner-api/internal/models"
	"gorm.io/gorm"
)

// AddIndexes adds the composite indexes used by owner listings and the dashboard
func AddIndexes(db *gorm.DB, log *logrus.Logger) error {
	indexes := []struct {
		model   interface{}
		table   string
		name    string
		columns string
	}{
		{&models.Task{}, "tasks", "idx_tasks_user_deadline", "user_id, deadline"},
		{&models.KeyPoint{}, "key_points", "idx_key_points_user_created", "user_id, created_at"},
	}

	for _, idx := range indexes {
		if db.Migrator().HasIndex(idx.model, idx.name) {
			log.WithField("index", idx.name).Debug("Index already exists, skipping")
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		log.WithField("index", idx.name).Infof("Created index on %s(%s)", idx.table, idx.columns)
	}

	return nil
}
