package models

// Structure selects how rendered sections are distributed across columns.
type Structure string

const (
	SingleColumn Structure = "single-column"
	TwoColumn    Structure = "two-column"
	ThreeColumn  Structure = "three-column"
	SidebarLeft  Structure = "sidebar-left"
	SidebarRight Structure = "sidebar-right"
)

// HeaderStyle selects the header presentation, independent of body structure.
type HeaderStyle string

const (
	HeaderFullWidth HeaderStyle = "full-width"
	HeaderCentered  HeaderStyle = "centered"
	HeaderMinimal   HeaderStyle = "minimal"
	HeaderSplit     HeaderStyle = "split"
)

// Spacing is the vertical rhythm applied between sections.
type Spacing string

const (
	SpacingCompact  Spacing = "compact"
	SpacingNormal   Spacing = "normal"
	SpacingSpacious Spacing = "spacious"
)

// SkillsDisplay selects how the skills section renders.
type SkillsDisplay string

const (
	SkillsBars SkillsDisplay = "bars"
	SkillsTags SkillsDisplay = "tags"
	SkillsList SkillsDisplay = "list"
	SkillsGrid SkillsDisplay = "grid"
)

// ProjectsDisplay selects how the projects section renders.
type ProjectsDisplay string

const (
	ProjectsCards    ProjectsDisplay = "cards"
	ProjectsList     ProjectsDisplay = "list"
	ProjectsTimeline ProjectsDisplay = "timeline"
)

// ExperienceDisplay selects how the experience section renders.
type ExperienceDisplay string

const (
	ExperienceTimeline ExperienceDisplay = "timeline"
	ExperienceCards    ExperienceDisplay = "cards"
	ExperienceList     ExperienceDisplay = "list"
)

// SectionKey names one renderable resume section.
type SectionKey string

const (
	SectionBio            SectionKey = "bio"
	SectionSocials        SectionKey = "socials"
	SectionSkills         SectionKey = "skills"
	SectionExperience     SectionKey = "experience"
	SectionEducation      SectionKey = "education"
	SectionProjects       SectionKey = "projects"
	SectionCertifications SectionKey = "certifications"
	SectionAchievements   SectionKey = "achievements"
	SectionLanguages      SectionKey = "languages"
)

// KnownSections lists every section key the engine understands, in the
// default preset order.
var KnownSections = []SectionKey{
	SectionSocials,
	SectionBio,
	SectionExperience,
	SectionEducation,
	SectionSkills,
	SectionProjects,
	SectionCertifications,
	SectionAchievements,
	SectionLanguages,
}

// Layout is the structural configuration governing how a profile renders,
// independent of its content. sectionOrder may omit keys; sectionVisibility
// entries missing for a referenced key are treated as hidden.
type Layout struct {
	ID                string              `json:"id"`
	Name              string              `json:"name"`
	Description       string              `json:"description,omitempty"`
	Structure         Structure           `json:"structure"`
	HeaderStyle       HeaderStyle         `json:"headerStyle"`
	SectionOrder      []SectionKey        `json:"sectionOrder"`
	SectionVisibility map[SectionKey]bool `json:"sectionVisibility"`
	Spacing           Spacing             `json:"spacing"`
	SkillsDisplay     SkillsDisplay       `json:"skillsDisplay"`
	ProjectsDisplay   ProjectsDisplay     `json:"projectsDisplay"`
	ExperienceDisplay ExperienceDisplay   `json:"experienceDisplay"`
}

// Validate checks that every enum field holds a known value and that
// sectionOrder does not repeat a key.
func (l *Layout) Validate() error {
	switch l.Structure {
	case SingleColumn, TwoColumn, ThreeColumn, SidebarLeft, SidebarRight:
	default:
		return NewValidationError("Unknown layout structure")
	}
	switch l.HeaderStyle {
	case HeaderFullWidth, HeaderCentered, HeaderMinimal, HeaderSplit:
	default:
		return NewValidationError("Unknown header style")
	}
	switch l.Spacing {
	case SpacingCompact, SpacingNormal, SpacingSpacious:
	default:
		return NewValidationError("Unknown spacing level")
	}
	switch l.SkillsDisplay {
	case SkillsBars, SkillsTags, SkillsList, SkillsGrid:
	default:
		return NewValidationError("Unknown skills display style")
	}
	switch l.ProjectsDisplay {
	case ProjectsCards, ProjectsList, ProjectsTimeline:
	default:
		return NewValidationError("Unknown projects display style")
	}
	switch l.ExperienceDisplay {
	case ExperienceTimeline, ExperienceCards, ExperienceList:
	default:
		return NewValidationError("Unknown experience display style")
	}

	seen := make(map[SectionKey]struct{}, len(l.SectionOrder))
	for _, key := range l.SectionOrder {
		if _, dup := seen[key]; dup {
			return NewValidationError("Duplicate section key in section order")
		}
		seen[key] = struct{}{}
	}
	return nil
}

func visibility(visible ...SectionKey) map[SectionKey]bool {
	m := make(map[SectionKey]bool, len(visible))
	for _, key := range visible {
		m[key] = true
	}
	return m
}

// DefaultLayout returns the layout applied to profiles that never customized
// their presentation.
func DefaultLayout() Layout {
	return Layout{
		ID:                "default",
		Name:              "Professional",
		Description:       "Clean two-column layout with sidebar",
		Structure:         TwoColumn,
		HeaderStyle:       HeaderFullWidth,
		SectionOrder:      append([]SectionKey(nil), KnownSections...),
		SectionVisibility: visibility(KnownSections...),
		Spacing:           SpacingNormal,
		SkillsDisplay:     SkillsBars,
		ProjectsDisplay:   ProjectsCards,
		ExperienceDisplay: ExperienceTimeline,
	}
}

// LayoutPresets returns the six built-in named layouts. Callers receive fresh
// copies; presets themselves are never mutated.
func LayoutPresets() []Layout {
	return []Layout{
		{
			ID:                "professional",
			Name:              "Professional",
			Description:       "Clean two-column layout perfect for corporate roles",
			Structure:         TwoColumn,
			HeaderStyle:       HeaderFullWidth,
			SectionOrder:      []SectionKey{SectionSocials, SectionBio, SectionExperience, SectionEducation, SectionSkills, SectionProjects, SectionCertifications, SectionAchievements, SectionLanguages},
			SectionVisibility: visibility(KnownSections...),
			Spacing:           SpacingNormal,
			SkillsDisplay:     SkillsBars,
			ProjectsDisplay:   ProjectsCards,
			ExperienceDisplay: ExperienceTimeline,
		},
		{
			ID:                "creative",
			Name:              "Creative",
			Description:       "Modern single-column layout for designers and creatives",
			Structure:         SingleColumn,
			HeaderStyle:       HeaderCentered,
			SectionOrder:      []SectionKey{SectionSocials, SectionBio, SectionProjects, SectionSkills, SectionExperience, SectionEducation, SectionAchievements, SectionCertifications, SectionLanguages},
			SectionVisibility: visibility(KnownSections...),
			Spacing:           SpacingSpacious,
			SkillsDisplay:     SkillsGrid,
			ProjectsDisplay:   ProjectsCards,
			ExperienceDisplay: ExperienceCards,
		},
		{
			ID:                "developer",
			Name:              "Developer",
			Description:       "Tech-focused layout highlighting projects and skills",
			Structure:         SidebarLeft,
			HeaderStyle:       HeaderSplit,
			SectionOrder:      []SectionKey{SectionSocials, SectionBio, SectionSkills, SectionProjects, SectionExperience, SectionEducation, SectionCertifications, SectionAchievements, SectionLanguages},
			SectionVisibility: visibility(KnownSections...),
			Spacing:           SpacingCompact,
			SkillsDisplay:     SkillsTags,
			ProjectsDisplay:   ProjectsList,
			ExperienceDisplay: ExperienceList,
		},
		{
			ID:                "minimal",
			Name:              "Minimal",
			Description:       "Clean and simple layout with all essential information",
			Structure:         SingleColumn,
			HeaderStyle:       HeaderMinimal,
			SectionOrder:      []SectionKey{SectionSocials, SectionBio, SectionExperience, SectionEducation, SectionSkills, SectionProjects, SectionCertifications, SectionAchievements, SectionLanguages},
			SectionVisibility: visibility(KnownSections...),
			Spacing:           SpacingNormal,
			SkillsDisplay:     SkillsList,
			ProjectsDisplay:   ProjectsList,
			ExperienceDisplay: ExperienceList,
		},
		{
			ID:                "executive",
			Name:              "Executive",
			Description:       "Sophisticated layout for senior professionals",
			Structure:         SidebarRight,
			HeaderStyle:       HeaderFullWidth,
			SectionOrder:      []SectionKey{SectionSocials, SectionBio, SectionExperience, SectionAchievements, SectionEducation, SectionSkills, SectionProjects, SectionCertifications, SectionLanguages},
			SectionVisibility: visibility(KnownSections...),
			Spacing:           SpacingSpacious,
			SkillsDisplay:     SkillsBars,
			ProjectsDisplay:   ProjectsCards,
			ExperienceDisplay: ExperienceTimeline,
		},
		{
			ID:                "modern",
			Name:              "Modern",
			Description:       "Contemporary three-column layout with balanced sections",
			Structure:         ThreeColumn,
			HeaderStyle:       HeaderCentered,
			SectionOrder:      []SectionKey{SectionSocials, SectionBio, SectionSkills, SectionExperience, SectionProjects, SectionEducation, SectionCertifications, SectionAchievements, SectionLanguages},
			SectionVisibility: visibility(KnownSections...),
			Spacing:           SpacingNormal,
			SkillsDisplay:     SkillsGrid,
			ProjectsDisplay:   ProjectsCards,
			ExperienceDisplay: ExperienceCards,
		},
	}
}
