package layout

import (
	"sort"
	"strings"

	"resumin/internal/models"
)

// Section is one rendered block. Exactly one payload field is populated,
// matching Key.
type Section struct {
	Key   models.SectionKey `json:"key"`
	Title string            `json:"title,omitempty"`

	Bio            string                      `json:"bio,omitempty"`
	Socials        []SocialLink                `json:"socials,omitempty"`
	Skills         *SkillsBlock                `json:"skills,omitempty"`
	Experience     *ExperienceBlock            `json:"experience,omitempty"`
	Education      []models.EducationEntry     `json:"education,omitempty"`
	Projects       *ProjectsBlock              `json:"projects,omitempty"`
	Certifications []models.CertificationEntry `json:"certifications,omitempty"`
	Achievements   []models.AchievementEntry   `json:"achievements,omitempty"`
	Languages      []models.LanguageEntry      `json:"languages,omitempty"`
}

// SocialLink is one rendered social entry.
type SocialLink struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

// SkillBar is one proficiency bar. Width comes from the fixed level table.
type SkillBar struct {
	Name         string            `json:"name"`
	Level        models.SkillLevel `json:"level"`
	WidthPercent int               `json:"widthPercent"`
	Color        string            `json:"color"`
}

// SkillTag is one colored skill pill.
type SkillTag struct {
	Name  string            `json:"name"`
	Level models.SkillLevel `json:"level"`
	Tone  string            `json:"tone"`
}

// SkillGroup is one category row of the grouped list display.
type SkillGroup struct {
	Category models.SkillCategory `json:"category"`
	Label    string               `json:"label"`
	Names    []string             `json:"names"`
}

// SkillCell is one cell of the grid display.
type SkillCell struct {
	Name  string            `json:"name"`
	Level models.SkillLevel `json:"level"`
}

// SkillsBlock renders the skills section under exactly one display style.
type SkillsBlock struct {
	Display models.SkillsDisplay `json:"display"`
	Bars    []SkillBar           `json:"bars,omitempty"`
	Tags    []SkillTag           `json:"tags,omitempty"`
	Groups  []SkillGroup         `json:"groups,omitempty"`
	Cells   []SkillCell          `json:"cells,omitempty"`
}

// ExperienceItem is one rendered experience entry; Bullets holds the
// description split into lines.
type ExperienceItem struct {
	Role     string   `json:"role"`
	Company  string   `json:"company"`
	Duration string   `json:"duration"`
	Location string   `json:"location,omitempty"`
	Type     string   `json:"type,omitempty"`
	Bullets  []string `json:"bullets,omitempty"`
}

// ExperienceBlock renders the experience section.
type ExperienceBlock struct {
	Display models.ExperienceDisplay `json:"display"`
	Items   []ExperienceItem         `json:"items"`
}

// ProjectsBlock renders the projects section.
type ProjectsBlock struct {
	Display models.ProjectsDisplay `json:"display"`
	Items   []models.ProjectEntry  `json:"items"`
}

// skillLevelWidths is the fixed level-to-width table used by the bars display.
var skillLevelWidths = map[models.SkillLevel]int{
	models.SkillBeginner:     25,
	models.SkillIntermediate: 50,
	models.SkillAdvanced:     75,
	models.SkillExpert:       100,
}

var skillLevelColors = map[models.SkillLevel]string{
	models.SkillBeginner:     "red",
	models.SkillIntermediate: "yellow",
	models.SkillAdvanced:     "blue",
	models.SkillExpert:       "green",
}

// SkillLevelWidth returns the bar width percentage for a level. Unknown
// levels render as beginner.
func SkillLevelWidth(level models.SkillLevel) int {
	if w, ok := skillLevelWidths[level]; ok {
		return w
	}
	return skillLevelWidths[models.SkillBeginner]
}

var skillCategoryLabels = map[models.SkillCategory]string{
	models.SkillTechnical: "Technical Skills",
	models.SkillSoft:      "Soft Skills",
	models.SkillTool:      "Tools & Technologies",
	models.SkillLanguage:  "Programming Languages",
}

// renderSection builds the block for one key, reporting false when the
// section has no backing data (or the key is unknown) and must be skipped.
func renderSection(profile *models.Profile, l models.Layout, key models.SectionKey) (Section, bool) {
	switch key {
	case models.SectionBio:
		if strings.TrimSpace(profile.Bio) == "" {
			return Section{}, false
		}
		return Section{Key: key, Bio: profile.Bio}, true

	case models.SectionSocials:
		links := renderSocials(profile.Socials)
		if len(links) == 0 {
			return Section{}, false
		}
		return Section{Key: key, Title: "Connect", Socials: links}, true

	case models.SectionSkills:
		if len(profile.Skills) == 0 {
			return Section{}, false
		}
		block := renderSkills(profile.Skills, l.SkillsDisplay)
		return Section{Key: key, Title: "Skills & Expertise", Skills: &block}, true

	case models.SectionExperience:
		if len(profile.Experience) == 0 {
			return Section{}, false
		}
		block := renderExperience(profile.Experience, l.ExperienceDisplay)
		return Section{Key: key, Title: "Experience", Experience: &block}, true

	case models.SectionEducation:
		if len(profile.Education) == 0 {
			return Section{}, false
		}
		return Section{Key: key, Title: "Education", Education: profile.Education}, true

	case models.SectionProjects:
		if len(profile.Projects) == 0 {
			return Section{}, false
		}
		block := ProjectsBlock{Display: l.ProjectsDisplay, Items: profile.Projects}
		return Section{Key: key, Title: "Projects", Projects: &block}, true

	case models.SectionCertifications:
		if len(profile.Certifications) == 0 {
			return Section{}, false
		}
		return Section{Key: key, Title: "Certifications", Certifications: profile.Certifications}, true

	case models.SectionAchievements:
		if len(profile.Achievements) == 0 {
			return Section{}, false
		}
		return Section{Key: key, Title: "Achievements", Achievements: profile.Achievements}, true

	case models.SectionLanguages:
		if len(profile.Languages) == 0 {
			return Section{}, false
		}
		return Section{Key: key, Title: "Languages", Languages: profile.Languages}, true
	}

	// Unknown keys render nothing and consume no column slot.
	return Section{}, false
}

func renderSocials(socials map[string]string) []SocialLink {
	links := make([]SocialLink, 0, len(socials))
	for platform, url := range socials {
		if url == "" {
			continue
		}
		links = append(links, SocialLink{Platform: platform, URL: url})
	}
	// Map iteration order is random; keep the output stable.
	sort.Slice(links, func(i, j int) bool { return links[i].Platform < links[j].Platform })
	return links
}

func renderSkills(skills []models.Skill, display models.SkillsDisplay) SkillsBlock {
	block := SkillsBlock{Display: display}

	switch display {
	case models.SkillsTags:
		block.Tags = make([]SkillTag, 0, len(skills))
		for _, s := range skills {
			block.Tags = append(block.Tags, SkillTag{
				Name:  s.Name,
				Level: s.Level,
				Tone:  skillLevelColors[normalizeLevel(s.Level)],
			})
		}

	case models.SkillsGrid:
		block.Cells = make([]SkillCell, 0, len(skills))
		for _, s := range skills {
			block.Cells = append(block.Cells, SkillCell{Name: s.Name, Level: s.Level})
		}

	case models.SkillsList:
		block.Groups = groupSkills(skills)

	default: // bars
		block.Bars = make([]SkillBar, 0, len(skills))
		for _, s := range skills {
			level := normalizeLevel(s.Level)
			block.Bars = append(block.Bars, SkillBar{
				Name:         s.Name,
				Level:        s.Level,
				WidthPercent: skillLevelWidths[level],
				Color:        skillLevelColors[level],
			})
		}
	}

	return block
}

func normalizeLevel(level models.SkillLevel) models.SkillLevel {
	if _, ok := skillLevelWidths[level]; ok {
		return level
	}
	return models.SkillBeginner
}

// groupSkills buckets skills by category, preserving first-seen category
// order and per-category insertion order.
func groupSkills(skills []models.Skill) []SkillGroup {
	index := make(map[models.SkillCategory]int)
	var groups []SkillGroup
	for _, s := range skills {
		i, ok := index[s.Category]
		if !ok {
			label := skillCategoryLabels[s.Category]
			if label == "" {
				label = string(s.Category)
			}
			i = len(groups)
			index[s.Category] = i
			groups = append(groups, SkillGroup{Category: s.Category, Label: label})
		}
		groups[i].Names = append(groups[i].Names, s.Name)
	}
	return groups
}

func renderExperience(entries []models.ExperienceEntry, display models.ExperienceDisplay) ExperienceBlock {
	items := make([]ExperienceItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, ExperienceItem{
			Role:     e.Role,
			Company:  e.Company,
			Duration: e.Duration,
			Location: e.Location,
			Type:     e.Type,
			Bullets:  splitBullets(e.Description),
		})
	}
	return ExperienceBlock{Display: display, Items: items}
}

// splitBullets breaks a free-text description into bullet lines, dropping
// blank lines.
func splitBullets(desc string) []string {
	if strings.TrimSpace(desc) == "" {
		return nil
	}
	var bullets []string
	for _, line := range strings.Split(desc, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			bullets = append(bullets, line)
		}
	}
	return bullets
}
