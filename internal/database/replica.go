package database

import "gorm.io/gorm"

// readReplica holds an optional read-only connection. Reads fall back to the
// primary when no replica is configured.
var readReplica *gorm.DB

// SetReadDB configures the read replica connection.
func SetReadDB(db *gorm.DB) {
	readReplica = db
}

// GetReadDB returns the read replica connection, or nil if none is configured.
func GetReadDB() *gorm.DB {
	return readReplica
}
