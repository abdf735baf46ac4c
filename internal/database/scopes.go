package database

import "gorm.io/gorm"

// OwnedBy restricts a query to rows whose user_id matches the owner
func OwnedBy(userID uint64) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ?", userID)
	}
}
