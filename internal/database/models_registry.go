package database

import "resumin/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Profile{},
		&models.Testimonial{},
		&models.AnalyticsEvent{},
	}
}
