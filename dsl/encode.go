package dsl

import (
	"encoding/base64"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/Mo-Ibra/cv-builder/resume"
)

// Encode 把记录写成 .cv 文本。空字段省略；头像以 data URL 内联。
func Encode(w io.Writer, rec resume.Record, template string) error {
	var b strings.Builder
	b.WriteString("resume {\n")
	if template != "" {
		field(&b, 1, "template", template)
	}

	p := rec.Personal
	b.WriteString("  personal {\n")
	field(&b, 2, "name", p.FullName)
	field(&b, 2, "email", p.Email)
	field(&b, 2, "phone", p.Phone)
	field(&b, 2, "location", p.Location)
	field(&b, 2, "summary", p.Summary)
	if len(p.Photo) > 0 {
		mime := http.DetectContentType(p.Photo)
		field(&b, 2, "photo", "data:"+mime+";base64,"+base64.StdEncoding.EncodeToString(p.Photo))
	}
	b.WriteString("  }\n")

	for _, e := range rec.Experience {
		b.WriteString("  experience {\n")
		field(&b, 2, "id", e.ID)
		field(&b, 2, "position", e.Position)
		field(&b, 2, "company", e.Company)
		field(&b, 2, "start", e.StartDate)
		if strings.TrimSpace(e.EndDate) == "" {
			b.WriteString("    end: present\n")
		} else {
			field(&b, 2, "end", e.EndDate)
		}
		field(&b, 2, "description", e.Description)
		b.WriteString("  }\n")
	}

	for _, e := range rec.Education {
		b.WriteString("  education {\n")
		field(&b, 2, "id", e.ID)
		field(&b, 2, "degree", e.Degree)
		field(&b, 2, "field", e.Field)
		field(&b, 2, "institution", e.Institution)
		field(&b, 2, "year", e.GraduationYear)
		b.WriteString("  }\n")
	}

	if len(rec.Skills) > 0 {
		quoted := make([]string, len(rec.Skills))
		for i, s := range rec.Skills {
			quoted[i] = strconv.Quote(s)
		}
		b.WriteString("  skills: [" + strings.Join(quoted, ", ") + "]\n")
	}
	b.WriteString("}\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func field(b *strings.Builder, depth int, key, value string) {
	if value == "" {
		return
	}
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(key)
	b.WriteString(": ")
	b.WriteString(strconv.Quote(value))
	b.WriteByte('\n')
}
