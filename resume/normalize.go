package resume

import (
	"strings"

	"github.com/google/uuid"
)

// Normalize returns a cleaned copy of r (see Clean) in which every entry
// without an id gets a fresh UUID. The input record is never modified.
func Normalize(r Record) Record {
	out := Clean(r)
	for i := range out.Experience {
		out.Experience[i].ID = ensureID(out.Experience[i].ID)
	}
	for i := range out.Education {
		out.Education[i].ID = ensureID(out.Education[i].ID)
	}
	return out
}

// Clean returns a copy of r with strings trimmed and empty or duplicate skills
// dropped (first occurrence wins). Ids are trimmed but never generated.
func Clean(r Record) Record {
	out := Record{
		Personal: Personal{
			FullName: strings.TrimSpace(r.Personal.FullName),
			Email:    strings.TrimSpace(r.Personal.Email),
			Phone:    strings.TrimSpace(r.Personal.Phone),
			Location: strings.TrimSpace(r.Personal.Location),
			Summary:  strings.TrimSpace(r.Personal.Summary),
		},
	}
	if len(r.Personal.Photo) > 0 {
		out.Personal.Photo = append(Photo(nil), r.Personal.Photo...)
	}

	if len(r.Experience) > 0 {
		out.Experience = make([]ExperienceEntry, len(r.Experience))
		for i, e := range r.Experience {
			out.Experience[i] = ExperienceEntry{
				ID:          strings.TrimSpace(e.ID),
				Company:     strings.TrimSpace(e.Company),
				Position:    strings.TrimSpace(e.Position),
				StartDate:   strings.TrimSpace(e.StartDate),
				EndDate:     strings.TrimSpace(e.EndDate),
				Description: strings.TrimSpace(e.Description),
			}
		}
	}

	if len(r.Education) > 0 {
		out.Education = make([]EducationEntry, len(r.Education))
		for i, e := range r.Education {
			out.Education[i] = EducationEntry{
				ID:             strings.TrimSpace(e.ID),
				Institution:    strings.TrimSpace(e.Institution),
				Degree:         strings.TrimSpace(e.Degree),
				Field:          strings.TrimSpace(e.Field),
				GraduationYear: strings.TrimSpace(e.GraduationYear),
			}
		}
	}

	out.Skills = UniqueSkills(r.Skills)
	return out
}

// UniqueSkills keeps insertion order and drops blanks and exact duplicates.
func UniqueSkills(skills []string) []string {
	if len(skills) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(skills))
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

func ensureID(id string) string {
	if id = strings.TrimSpace(id); id != "" {
		return id
	}
	return uuid.NewString()
}
