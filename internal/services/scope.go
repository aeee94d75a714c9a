package services

import (
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ownedBy is the row-level ownership predicate. Every query against an owned
// entity goes through this scope so cross-tenant rows are simply never seen;
// callers report the resulting empty result as not found.
func ownedBy(userID string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ?", userID)
	}
}

// quiet suppresses per-query logging for high-traffic read paths
func quiet(db *gorm.DB) *gorm.DB {
	return db.Session(&gorm.Session{Logger: db.Logger.LogMode(logger.Silent)})
}
