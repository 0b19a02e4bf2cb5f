package layout

import (
	"sort"
	"strings"
	"sync"
)

// DefaultTemplateID 是未知模板回退的目标。
const DefaultTemplateID = "modern-with-photo"

// Template 绑定一份样式策略与区块顺序。
type Template struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Policy      *StylePolicy  `json:"-"`
	Sections    []SectionKind `json:"sections"`
	AliasOf     string        `json:"aliasOf,omitempty"`
}

// HasPhoto reports whether the template reserves a photo slot.
func (t *Template) HasPhoto() bool {
	return t != nil && t.Policy != nil && t.Policy.Header.Photo.Enabled()
}

// Registry 按 id 查找模板。构建后只读，可并发使用。
type Registry struct {
	byID     map[string]*Template
	order    []string
	fallback string
}

// NewRegistry builds a registry; fallback must name one of the templates.
func NewRegistry(fallback string, templates ...*Template) *Registry {
	r := &Registry{byID: make(map[string]*Template, len(templates)), fallback: fallback}
	for _, t := range templates {
		id := normalizeID(t.ID)
		if _, dup := r.byID[id]; !dup {
			r.order = append(r.order, id)
		}
		r.byID[id] = t
	}
	return r
}

// Lookup 返回 id 对应的模板；未注册的 id 返回默认模板与 false。
func (r *Registry) Lookup(id string) (*Template, bool) {
	if t, ok := r.byID[normalizeID(id)]; ok {
		return t, true
	}
	return r.byID[r.fallback], false
}

// IDs lists registered ids in registration order, which is the gallery order.
func (r *Registry) IDs() []string {
	return append([]string(nil), r.order...)
}

// Templates lists registered templates sorted by id.
func (r *Registry) Templates() []*Template {
	out := make([]*Template, 0, len(r.byID))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func normalizeID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

// DefaultRegistry 返回内置的六个模板，首次调用时构建。
var DefaultRegistry = sync.OnceValue(func() *Registry {
	modern := modernPolicy()
	standard := []SectionKind{SectionHeader, SectionSummary, SectionExperience, SectionEducation, SectionSkills}
	technical := []SectionKind{SectionHeader, SectionSummary, SectionSkills, SectionExperience, SectionEducation}

	return NewRegistry(DefaultTemplateID,
		&Template{ID: "modern-with-photo", Name: "Modern", Description: "Sans serif with a round photo beside the name", Policy: modern, Sections: standard},
		&Template{ID: "classic-no-photo", Name: "Classic", Description: "Centered serif header, no photo", Policy: classicPolicy(), Sections: standard},
		&Template{ID: "minimal-with-photo", Name: "Minimal", Description: "Light header with a small photo on the right", Policy: minimalPolicy(), Sections: standard},
		&Template{ID: "executive-no-photo", Name: "Executive", Description: "Uppercase serif name with a heavy rule", Policy: executivePolicy(), Sections: standard},
		&Template{ID: "creative-portfolio", Name: "Creative Portfolio", Description: "Same layout as modern-with-photo", Policy: modern, Sections: standard, AliasOf: "modern-with-photo"},
		&Template{ID: "technical-resume", Name: "Technical", Description: "Monospace code-comment styling, skills first", Policy: technicalPolicy(), Sections: technical},
	)
})

var (
	ink    = Color{R: 33, G: 33, B: 33}
	muted  = Color{R: 96, G: 96, B: 96}
	accent = Color{R: 5, G: 150, B: 105}
	grey   = Color{R: 150, G: 150, B: 150}
)

func modernPolicy() *StylePolicy {
	title := TextStyle{Size: 14, Bold: true, Color: accent}
	return &StylePolicy{
		Family:         FamilySans,
		LineHeight:     defaultLineHeight,
		SectionReserve: 30,
		Header: HeaderStyle{
			Name:          TextStyle{Size: 24, Bold: true, Color: ink},
			NameGap:       2,
			Align:         AlignStart,
			Contact:       TextStyle{Size: 10, Color: muted},
			ContactLayout: ContactJoined,
			ContactLabels: ContactLabels{Email: "Email: ", Phone: "Phone: ", Location: "Location: "},
			Separator:     " | ",
			ContactGap:    3,
			Rule:          Rule{Thickness: 0.5, Color: accent},
			RuleGap:       10,
			Photo: PhotoSlot{
				Shape:     PhotoCircle,
				Placement: PlaceLeading,
				Size:      30,
				Gap:       10,
				Ring:      Rule{Thickness: 0.6, Color: accent},
			},
		},
		Summary: SectionStyle{
			Title: "Professional Summary", TitleStyle: title, TitleAlign: AlignStart, TitleGap: 2,
			Body: TextStyle{Size: 10, Color: ink}, After: 8,
		},
		Experience: ExperienceStyle{
			SectionStyle: SectionStyle{
				Title: "Work Experience", TitleStyle: title, TitleAlign: AlignStart, TitleGap: 2,
				Body: TextStyle{Size: 9, Color: ink}, After: 3,
			},
			Layout:     EntryStacked,
			EntryTitle: TextStyle{Size: 12, Bold: true, Color: ink},
			Meta:       TextStyle{Size: 10, Color: muted},
			Reserve:    25,
			EntryGap:   5,
		},
		Education: EducationStyle{
			SectionStyle: SectionStyle{
				Title: "Education", TitleStyle: title, TitleAlign: AlignStart, TitleGap: 2,
				Body: TextStyle{Size: 10, Color: ink}, After: 3,
			},
			Layout:   EntryStacked,
			Degree:   TextStyle{Size: 12, Bold: true, Color: ink},
			Meta:     TextStyle{Size: 10, Color: muted},
			Reserve:  20,
			EntryGap: 4,
		},
		Skills: SkillsStyle{
			SectionStyle: SectionStyle{
				Title: "Skills", TitleStyle: title, TitleAlign: AlignStart, TitleGap: 2,
				Body: TextStyle{Size: 10, Color: ink}, After: 3,
			},
			Layout:     SkillsJoined,
			Separator:  " • ",
			BreakEvery: 10,
			Reserve:    20,
		},
		ArtifactSuffix: "CV",
	}
}

func classicPolicy() *StylePolicy {
	p := *modernPolicy()
	p.Family = FamilySerif
	p.Header.Align = AlignCenter
	p.Header.Photo = PhotoSlot{}
	p.Header.Rule = Rule{Thickness: 0.5, Color: ink}
	for _, s := range []*SectionStyle{&p.Summary, &p.Experience.SectionStyle, &p.Education.SectionStyle, &p.Skills.SectionStyle} {
		s.TitleAlign = AlignCenter
		s.TitleStyle.Color = ink
	}
	return &p
}

func minimalPolicy() *StylePolicy {
	p := *modernPolicy()
	p.Header.Name = TextStyle{Size: 18, Color: ink}
	p.Header.Rule = Rule{Thickness: 0.3, Color: grey}
	p.Header.Photo = PhotoSlot{Shape: PhotoCircle, Placement: PlaceTrailing, Size: 20, Gap: 6}
	p.Summary.Title = "SUMMARY"
	p.Experience.Title = "EXPERIENCE"
	p.Education.Title = "EDUCATION"
	p.Skills.Title = "SKILLS"
	for _, s := range []*SectionStyle{&p.Summary, &p.Experience.SectionStyle, &p.Education.SectionStyle, &p.Skills.SectionStyle} {
		s.TitleStyle = TextStyle{Size: 11, Bold: true, Color: muted}
	}
	return &p
}

func executivePolicy() *StylePolicy {
	p := *classicPolicy()
	p.Header.Align = AlignStart
	p.Header.Name = TextStyle{Size: 20, Bold: true, Color: ink}
	p.Header.UppercaseName = true
	p.Header.Rule = Rule{Thickness: 2, Color: ink}
	p.Summary.Title = "EXECUTIVE SUMMARY"
	p.Experience.Title = "PROFESSIONAL EXPERIENCE"
	p.Education.Title = "EDUCATION"
	p.Skills.Title = "CORE COMPETENCIES"
	for _, s := range []*SectionStyle{&p.Summary, &p.Experience.SectionStyle, &p.Education.SectionStyle, &p.Skills.SectionStyle} {
		s.TitleAlign = AlignStart
	}
	return &p
}

func technicalPolicy() *StylePolicy {
	title := TextStyle{Size: 12, Bold: true, Color: ink}
	body := TextStyle{Size: 9, Color: ink}
	p := *modernPolicy()
	p.Family = FamilyMono
	p.Header = HeaderStyle{
		Preamble:      "// Technical Resume",
		PreambleStyle: TextStyle{Size: 10, Color: muted},
		Name:          TextStyle{Size: 20, Bold: true, Color: ink},
		UppercaseName: true,
		NameGap:       2,
		Align:         AlignStart,
		Contact:       TextStyle{Size: 9, Color: muted},
		ContactLayout: ContactStacked,
		ContactLabels: ContactLabels{Email: "email: ", Phone: "phone: ", Location: "location: "},
		ContactPrefix: "// ",
		ContactGap:    3,
		Rule:          Rule{Thickness: 0.5, Color: grey},
		RuleGap:       8,
	}
	p.Summary = SectionStyle{Title: "/* SUMMARY */", TitleStyle: title, TitleAlign: AlignStart, TitleGap: 2, Body: body, After: 8}
	p.Skills = SkillsStyle{
		SectionStyle: SectionStyle{Title: "/* TECHNICAL SKILLS */", TitleStyle: title, TitleAlign: AlignStart, TitleGap: 2, Body: body, After: 5},
		Layout:       SkillsBulleted,
		Bullet:       "  - ",
		BreakEvery:   10,
		Reserve:      20,
	}
	p.Experience = ExperienceStyle{
		SectionStyle: SectionStyle{Title: "/* EXPERIENCE */", TitleStyle: title, TitleAlign: AlignStart, TitleGap: 2, Body: body, After: 3},
		Layout:       EntryInline,
		EntryTitle:   TextStyle{Size: 10, Bold: true, Color: ink},
		Meta:         TextStyle{Size: 8, Color: muted},
		PeriodPrefix: "// ",
		Indent:       10,
		Reserve:      30,
		EntryGap:     5,
	}
	p.Education = EducationStyle{
		SectionStyle:  SectionStyle{Title: "/* EDUCATION */", TitleStyle: title, TitleAlign: AlignStart, TitleGap: 2, Body: body, After: 3},
		Layout:        EntryInline,
		Degree:        TextStyle{Size: 10, Bold: true, Color: ink},
		Meta:          TextStyle{Size: 9, Color: muted},
		YearSeparator: " // ",
		Reserve:       20,
		EntryGap:      4,
	}
	p.ArtifactSuffix = "Technical_Resume"
	return &p
}
