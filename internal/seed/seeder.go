package seed

import (
	"fmt"
	"log"

	"resumin/internal/models"

	"gorm.io/gorm"
)

// Seeder orchestrates demo-data creation.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

// NewSeeder creates a Seeder with default options.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db, factory: NewFactory(db, SeedOptions{})}
}

// ClearAll removes all seeded rows. Hard-deletes, ignoring soft-delete
// markers, so repeated seeding starts from a clean slate.
func (s *Seeder) ClearAll() error {
	tables := []interface{}{
		&models.AnalyticsEvent{},
		&models.Testimonial{},
		&models.Profile{},
		&models.User{},
	}
	for _, table := range tables {
		if err := s.db.Unscoped().Where("1 = 1").Delete(table).Error; err != nil {
			return fmt.Errorf("clearing %T: %w", table, err)
		}
	}
	log.Println("database cleared")
	return nil
}

// SeedProfiles creates numUsers accounts, each with a fully populated
// resume profile, testimonials, and a plausible visit history.
func (s *Seeder) SeedProfiles(numUsers int) error {
	for i := 0; i < numUsers; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			return fmt.Errorf("creating user: %w", err)
		}
		profile, err := s.factory.CreateProfile(user)
		if err != nil {
			return fmt.Errorf("creating profile for %s: %w", user.Username, err)
		}
		if err := s.factory.CreateTestimonials(profile, 2+i%4); err != nil {
			return fmt.Errorf("creating testimonials for %s: %w", user.Username, err)
		}
		if err := s.factory.CreateEvents(profile, 30+i%50); err != nil {
			return fmt.Errorf("creating events for %s: %w", user.Username, err)
		}
	}
	log.Printf("seeded %d users with profiles, testimonials, and events", numUsers)
	return nil
}
