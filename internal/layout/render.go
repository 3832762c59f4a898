// Package layout turns a profile document and a layout configuration into a
// concrete render tree: an ordered set of section blocks distributed across
// visual columns. Rendering is a pure function of its inputs and never fails;
// absent or empty data silently suppresses the affected section.
package layout

import (
	"strings"

	"resumin/internal/models"
)

// ColumnRole hints how wide a column renders relative to its siblings.
type ColumnRole string

const (
	RoleColumn  ColumnRole = "column"
	RoleMain    ColumnRole = "main"
	RoleSidebar ColumnRole = "sidebar"
)

// Column is one vertical run of rendered sections.
type Column struct {
	Role     ColumnRole `json:"role"`
	Sections []Section  `json:"sections"`
}

// AvailabilityBadge is the rendered availability pill.
type AvailabilityBadge struct {
	Text string `json:"text"`
	Tone string `json:"tone"`
}

// Contact is the header contact block. Email is included only when the
// profile opts in via showEmail.
type Contact struct {
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
}

// Header is the rendered page header. Contact is nil for the minimal style,
// which suppresses the full contact block.
type Header struct {
	Style        models.HeaderStyle `json:"style"`
	Name         string             `json:"name"`
	Title        string             `json:"title"`
	Initials     string             `json:"initials"`
	PictureURL   string             `json:"pictureUrl,omitempty"`
	Gradient     string             `json:"gradient"`
	Availability *AvailabilityBadge `json:"availability,omitempty"`
	Contact      *Contact           `json:"contact,omitempty"`
}

// Resume is the complete rendered view of one profile under one layout.
// Concatenating the sections of all columns, in column order, yields the
// filtered section list exactly once each.
type Resume struct {
	Header    Header           `json:"header"`
	Structure models.Structure `json:"structure"`
	Spacing   models.Spacing   `json:"spacing"`
	Columns   []Column         `json:"columns"`
}

// Render produces the render tree for profile under l. Neither argument is
// mutated. Unknown keys in the section order render nothing and consume no
// column slot.
func Render(profile *models.Profile, l models.Layout) Resume {
	sections := make([]Section, 0, len(l.SectionOrder))
	for _, key := range l.SectionOrder {
		if !l.SectionVisibility[key] {
			continue
		}
		if sec, ok := renderSection(profile, l, key); ok {
			sections = append(sections, sec)
		}
	}

	return Resume{
		Header:    renderHeader(profile, l),
		Structure: l.Structure,
		Spacing:   l.Spacing,
		Columns:   distribute(sections, l.Structure),
	}
}

// distribute splits the filtered, ordered section list across columns by
// position. Splits use ceiling division so earlier columns never hold fewer
// sections than later ones.
func distribute(sections []Section, structure models.Structure) []Column {
	n := len(sections)
	switch structure {
	case models.TwoColumn:
		half := ceilDiv(n, 2)
		return []Column{
			{Role: RoleColumn, Sections: sections[:half]},
			{Role: RoleColumn, Sections: sections[half:]},
		}
	case models.ThreeColumn:
		third := ceilDiv(n, 3)
		second := min(third*2, n)
		return []Column{
			{Role: RoleColumn, Sections: sections[:min(third, n)]},
			{Role: RoleColumn, Sections: sections[min(third, n):second]},
			{Role: RoleColumn, Sections: sections[second:]},
		}
	case models.SidebarLeft:
		split := ceilMul(n, 0.3)
		return []Column{
			{Role: RoleSidebar, Sections: sections[:split]},
			{Role: RoleMain, Sections: sections[split:]},
		}
	case models.SidebarRight:
		split := ceilMul(n, 0.7)
		return []Column{
			{Role: RoleMain, Sections: sections[:split]},
			{Role: RoleSidebar, Sections: sections[split:]},
		}
	default: // single-column
		return []Column{{Role: RoleColumn, Sections: sections}}
	}
}

func ceilDiv(n, d int) int {
	return (n + d - 1) / d
}

// ceilMul returns ceil(n*f) clamped to [0, n].
func ceilMul(n int, f float64) int {
	v := int(float64(n) * f)
	if float64(v) < float64(n)*f {
		v++
	}
	if v > n {
		v = n
	}
	if v < 0 {
		v = 0
	}
	return v
}

func renderHeader(profile *models.Profile, l models.Layout) Header {
	h := Header{
		Style:      l.HeaderStyle,
		Name:       profile.Name,
		Title:      profile.Title,
		Initials:   initials(profile.Name),
		PictureURL: profile.ProfilePicture,
		Gradient:   ThemeGradient(profile.Theme),
	}

	if profile.Availability != "" {
		badge := availabilityBadge(profile.Availability)
		h.Availability = &badge
	}

	if l.HeaderStyle != models.HeaderMinimal {
		contact := Contact{
			Phone:    profile.Phone,
			Location: profile.Location,
		}
		if profile.ShowEmail {
			contact.Email = profile.Email
		}
		h.Contact = &contact
	}

	return h
}

// initials derives one uppercase initial per word of a display name,
// falling back to "U" for blank names.
func initials(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return "U"
	}
	var b strings.Builder
	for _, f := range fields {
		r := []rune(f)
		b.WriteString(strings.ToUpper(string(r[0])))
	}
	return b.String()
}

func availabilityBadge(a models.Availability) AvailabilityBadge {
	switch a {
	case models.NotAvailable:
		return AvailabilityBadge{Text: "Not Available", Tone: "red"}
	case models.OpenToOffers:
		return AvailabilityBadge{Text: "Open to Offers", Tone: "blue"}
	default:
		return AvailabilityBadge{Text: "Available for Work", Tone: "green"}
	}
}

var themeGradients = map[models.Theme]string{
	models.ThemeBlue:    "from-blue-400 via-blue-500 to-blue-600",
	models.ThemeGreen:   "from-green-400 via-green-500 to-green-600",
	models.ThemePurple:  "from-purple-400 via-purple-500 to-purple-600",
	models.ThemeOrange:  "from-orange-400 via-pink-400 to-purple-500",
	models.ThemePink:    "from-pink-400 via-rose-400 to-red-500",
	models.ThemeTeal:    "from-teal-400 via-cyan-500 to-blue-500",
	models.ThemeIndigo:  "from-indigo-400 via-purple-500 to-pink-500",
	models.ThemeEmerald: "from-emerald-400 via-green-500 to-teal-500",
	models.ThemeRed:     "from-red-400 via-pink-500 to-rose-500",
	models.ThemeAmber:   "from-amber-400 via-orange-500 to-red-500",
	models.ThemeViolet:  "from-violet-400 via-purple-500 to-indigo-500",
	models.ThemeCyan:    "from-cyan-400 via-blue-500 to-indigo-500",
}

// ThemeGradient maps a theme to its gradient stops. Unknown themes fall back
// to the orange default.
func ThemeGradient(t models.Theme) string {
	if g, ok := themeGradients[t]; ok {
		return g
	}
	return themeGradients[models.ThemeOrange]
}
