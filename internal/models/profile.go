package models

import (
	"time"

	"gorm.io/gorm"
)

// Availability describes whether the profile owner is open for work.
type Availability string

const (
	Available    Availability = "available"
	NotAvailable Availability = "not-available"
	OpenToOffers Availability = "open-to-offers"
)

// Theme selects one of the built-in header gradient palettes.
type Theme string

const (
	ThemeBlue    Theme = "blue"
	ThemeGreen   Theme = "green"
	ThemePurple  Theme = "purple"
	ThemeOrange  Theme = "orange"
	ThemePink    Theme = "pink"
	ThemeTeal    Theme = "teal"
	ThemeIndigo  Theme = "indigo"
	ThemeEmerald Theme = "emerald"
	ThemeRed     Theme = "red"
	ThemeAmber   Theme = "amber"
	ThemeViolet  Theme = "violet"
	ThemeCyan    Theme = "cyan"
)

// SkillLevel is the proficiency ladder used by the bars display.
type SkillLevel string

const (
	SkillBeginner     SkillLevel = "beginner"
	SkillIntermediate SkillLevel = "intermediate"
	SkillAdvanced     SkillLevel = "advanced"
	SkillExpert       SkillLevel = "expert"
)

// SkillCategory groups skills for the list display.
type SkillCategory string

const (
	SkillTechnical SkillCategory = "technical"
	SkillSoft      SkillCategory = "soft"
	SkillLanguage  SkillCategory = "language"
	SkillTool      SkillCategory = "tool"
)

// Skill is one entry in the profile's skill collection.
type Skill struct {
	Name     string        `json:"name"`
	Level    SkillLevel    `json:"level"`
	Category SkillCategory `json:"category"`
}

// EducationEntry is one row of the education section.
type EducationEntry struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Year        string `json:"year"`
	GPA         string `json:"gpa,omitempty"`
	Honors      string `json:"honors,omitempty"`
}

// ExperienceEntry is one row of the experience section. Description holds
// newline-separated bullet lines.
type ExperienceEntry struct {
	Role        string `json:"role"`
	Company     string `json:"company"`
	Duration    string `json:"duration"`
	Description string `json:"desc"`
	Location    string `json:"location,omitempty"`
	Type        string `json:"type,omitempty"`
}

// ProjectEntry is one row of the projects section.
type ProjectEntry struct {
	Name         string   `json:"name"`
	Description  string   `json:"desc"`
	Link         string   `json:"link,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
	Featured     bool     `json:"featured,omitempty"`
}

// CertificationEntry is one row of the certifications section.
type CertificationEntry struct {
	Name       string `json:"name"`
	Issuer     string `json:"issuer"`
	Date       string `json:"date"`
	Link       string `json:"link,omitempty"`
	ExpiryDate string `json:"expiryDate,omitempty"`
}

// AchievementEntry is one row of the achievements section.
type AchievementEntry struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Category    string `json:"category,omitempty"`
}

// LanguageEntry is one row of the spoken-languages section.
type LanguageEntry struct {
	Name        string `json:"name"`
	Proficiency string `json:"proficiency"`
}

// Profile is the complete resume document for one user. It is read on every
// public view and replaced wholesale on every save; there is no field-level
// merge or versioning.
type Profile struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"uniqueIndex;not null" json:"-"`

	Username string `gorm:"uniqueIndex;not null" json:"username"`
	Name     string `json:"name"`
	Title    string `json:"title"`
	Bio      string `json:"bio"`

	Email             string       `json:"email"`
	ShowEmail         bool         `json:"showEmail"`
	Phone             string       `json:"phone,omitempty"`
	Location          string       `json:"location,omitempty"`
	Availability      Availability `json:"availability,omitempty"`
	PreferredLocation string       `json:"preferredLocation,omitempty"`

	ProfilePicture string `json:"profilePicture,omitempty"`
	IsPublic       bool   `gorm:"default:true" json:"isPublic"`
	Theme          Theme  `json:"theme,omitempty"`

	Layout Layout `gorm:"serializer:json" json:"layout"`

	Skills         []Skill              `gorm:"serializer:json" json:"skills"`
	Socials        map[string]string    `gorm:"serializer:json" json:"socials"`
	Education      []EducationEntry     `gorm:"serializer:json" json:"education"`
	Experience     []ExperienceEntry    `gorm:"serializer:json" json:"experience"`
	Projects       []ProjectEntry       `gorm:"serializer:json" json:"projects"`
	Certifications []CertificationEntry `gorm:"serializer:json" json:"certifications,omitempty"`
	Achievements   []AchievementEntry   `gorm:"serializer:json" json:"achievements,omitempty"`
	Languages      []LanguageEntry      `gorm:"serializer:json" json:"languages,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// HasSocialLinks reports whether at least one social entry has a non-empty URL.
func (p *Profile) HasSocialLinks() bool {
	for _, url := range p.Socials {
		if url != "" {
			return true
		}
	}
	return false
}
