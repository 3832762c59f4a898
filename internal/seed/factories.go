// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"resumin/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedOptions tunes how demo data is generated.
type SeedOptions struct {
	// SkipBcrypt stores plaintext passwords for fast local iteration.
	SkipBcrypt bool
	// MaxDays spreads event timestamps over this many days back.
	MaxDays int
}

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db   *gorm.DB
	opts SeedOptions
	rnd  *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts SeedOptions) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	if opts.MaxDays <= 0 {
		opts.MaxDays = 90
	}
	return &Factory{
		db:   db,
		opts: opts,
		rnd:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateUser constructs and persists a sample user. All seeded users share
// the password "password123".
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		Username: strings.ToLower(gofakeit.Username()) + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		Email:    gofakeit.Email(),
	}

	if f.opts.SkipBcrypt {
		user.Password = "password123"
	} else {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		user.Password = string(hashedPassword)
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateProfile constructs and persists a complete resume profile for the
// given user, with every section populated.
func (f *Factory) CreateProfile(user *models.User, overrides ...func(*models.Profile)) (*models.Profile, error) {
	themes := []models.Theme{
		models.ThemeBlue, models.ThemeGreen, models.ThemePurple,
		models.ThemeOrange, models.ThemeTeal, models.ThemeIndigo,
	}
	availabilities := []models.Availability{
		models.Available, models.NotAvailable, models.OpenToOffers,
	}

	profile := &models.Profile{
		UserID:       user.ID,
		Username:     user.Username,
		Name:         gofakeit.Name(),
		Title:        gofakeit.JobTitle(),
		Bio:          gofakeit.Paragraph(1, 2, 12, " "),
		Email:        user.Email,
		ShowEmail:    f.rnd.Intn(2) == 0,
		Phone:        gofakeit.Phone(),
		Location:     fmt.Sprintf("%s, %s", gofakeit.City(), gofakeit.Country()),
		Availability: availabilities[f.rnd.Intn(len(availabilities))],
		IsPublic:     true,
		Theme:        themes[f.rnd.Intn(len(themes))],
		Layout:       randomLayout(f.rnd),
		Skills:       f.buildSkills(),
		Socials: map[string]string{
			"github":   "https://github.com/" + user.Username,
			"linkedin": "https://linkedin.com/in/" + user.Username,
			"website":  gofakeit.URL(),
		},
		Education:  f.buildEducation(),
		Experience: f.buildExperience(),
		Projects:   f.buildProjects(),
	}

	for _, override := range overrides {
		override(profile)
	}

	if err := f.db.Create(profile).Error; err != nil {
		return nil, err
	}
	return profile, nil
}

// CreateTestimonials persists n testimonials against the profile, roughly
// two thirds of them pre-approved.
func (f *Factory) CreateTestimonials(profile *models.Profile, n int) error {
	testimonials := make([]*models.Testimonial, 0, n)
	for i := 0; i < n; i++ {
		testimonials = append(testimonials, &models.Testimonial{
			ProfileID:   profile.ID,
			AuthorName:  gofakeit.Name(),
			AuthorTitle: gofakeit.JobTitle(),
			AuthorEmail: gofakeit.Email(),
			Content:     gofakeit.Paragraph(1, 2, 10, " "),
			Rating:      gofakeit.Number(3, 5),
			Approved:    f.rnd.Intn(3) != 0,
		})
	}
	if len(testimonials) == 0 {
		return nil
	}
	return f.db.Create(&testimonials).Error
}

// CreateEvents persists n analytics events for the profile, spread over the
// configured time window with realistic session reuse.
func (f *Factory) CreateEvents(profile *models.Profile, n int) error {
	types := []models.EventType{
		models.EventPageView, models.EventPageView, models.EventPageView,
		models.EventLinkClick, models.EventContactClick,
	}
	countries := []string{"United States", "Germany", "Brazil", "Japan", "France"}
	referrers := []string{"", "https://www.google.com/search", "https://www.linkedin.com/feed", "https://news.ycombinator.com/"}
	devices := []models.DeviceClass{models.DeviceDesktop, models.DeviceDesktop, models.DeviceMobile, models.DeviceTablet}

	// a handful of sessions so the unique-visitor count stays below the view count
	sessions := make([]string, 1+n/3)
	for i := range sessions {
		sessions[i] = gofakeit.UUID()
	}

	events := make([]*models.AnalyticsEvent, 0, n)
	for i := 0; i < n; i++ {
		back := time.Duration(f.rnd.Intn(f.opts.MaxDays*24*60)) * time.Minute
		eventType := types[f.rnd.Intn(len(types))]

		event := &models.AnalyticsEvent{
			ProfileID: profile.ID,
			Username:  profile.Username,
			EventType: eventType,
			SessionID: sessions[f.rnd.Intn(len(sessions))],
			Timestamp: time.Now().UTC().Add(-back),
			Metadata: models.EventMetadata{
				Country:  countries[f.rnd.Intn(len(countries))],
				Referrer: referrers[f.rnd.Intn(len(referrers))],
				Device:   devices[f.rnd.Intn(len(devices))],
			},
		}
		if eventType == models.EventLinkClick {
			event.Metadata.LinkURL = gofakeit.URL()
		}
		if eventType == models.EventContactClick {
			event.Metadata.ContactType = models.ContactEmail
		}
		events = append(events, event)
	}
	if len(events) == 0 {
		return nil
	}
	return f.db.Create(&events).Error
}

func (f *Factory) buildSkills() []models.Skill {
	levels := []models.SkillLevel{
		models.SkillBeginner, models.SkillIntermediate,
		models.SkillAdvanced, models.SkillExpert,
	}
	technical := []string{"Go", "PostgreSQL", "Redis", "Kubernetes", "React", "TypeScript"}
	soft := []string{"Communication", "Mentoring", "Public Speaking"}

	skills := make([]models.Skill, 0, 8)
	for _, name := range technical[:3+f.rnd.Intn(3)] {
		skills = append(skills, models.Skill{
			Name:     name,
			Level:    levels[f.rnd.Intn(len(levels))],
			Category: models.SkillTechnical,
		})
	}
	for _, name := range soft[:1+f.rnd.Intn(2)] {
		skills = append(skills, models.Skill{
			Name:     name,
			Level:    levels[f.rnd.Intn(len(levels))],
			Category: models.SkillSoft,
		})
	}
	return skills
}

func (f *Factory) buildEducation() []models.EducationEntry {
	return []models.EducationEntry{
		{
			Institution: gofakeit.Company() + " University",
			Degree:      "B.Sc. Computer Science",
			Year:        fmt.Sprintf("%d", gofakeit.Number(2008, 2020)),
		},
	}
}

func (f *Factory) buildExperience() []models.ExperienceEntry {
	entries := make([]models.ExperienceEntry, 0, 3)
	for i := 0; i < 2+f.rnd.Intn(2); i++ {
		bullets := []string{
			gofakeit.Sentence(8),
			gofakeit.Sentence(8),
			gofakeit.Sentence(8),
		}
		entries = append(entries, models.ExperienceEntry{
			Role:        gofakeit.JobTitle(),
			Company:     gofakeit.Company(),
			Duration:    fmt.Sprintf("%d - %d", gofakeit.Number(2015, 2020), gofakeit.Number(2021, 2025)),
			Description: strings.Join(bullets, "\n"),
			Location:    gofakeit.City(),
		})
	}
	return entries
}

func (f *Factory) buildProjects() []models.ProjectEntry {
	entries := make([]models.ProjectEntry, 0, 2)
	for i := 0; i < 1+f.rnd.Intn(2); i++ {
		entries = append(entries, models.ProjectEntry{
			Name:         gofakeit.AppName(),
			Description:  gofakeit.Sentence(12),
			Link:         gofakeit.URL(),
			Technologies: []string{"Go", "PostgreSQL", "Redis"}[:1+f.rnd.Intn(3)],
			Featured:     i == 0,
		})
	}
	return entries
}

func randomLayout(rnd *rand.Rand) models.Layout {
	presets := models.LayoutPresets()
	return presets[rnd.Intn(len(presets))]
}
