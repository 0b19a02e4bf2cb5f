package dsl_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mo-Ibra/cv-builder/dsl"
	"github.com/Mo-Ibra/cv-builder/resume"
)

const sampleCV = `
// Jane's resume
resume {
  template: technical-resume

  personal {
    name: "Jane Doe"
    email: "jane@example.com"; phone: "+1 555 0100"
    location: "${city}"
    summary: ` + "`Builds document tooling.\nLikes fonts.`" + `
  }

  experience {
    position: "Staff Engineer"
    company: "Acme"
    start: "2020-01"
    end: present
    description: "Led the rendering team."
  }

  experience
  {
    position: "Engineer"
    company: "Initech"
    start: "2016-03"
    end: "2019-12"
  }

  /* schooling */
  education {
    degree: "MSc"
    field: "Computer Science"
    institution: "TU Berlin"
    year: 2015
  }

  skills: [
    "Go",
    "PDF"
    Typography,
  ]
}
`

func TestParseDocument(t *testing.T) {
	doc, err := dsl.ParseString(sampleCV)
	require.NoError(t, err)
	require.Len(t, doc.Entries, 6)

	assert.NotNil(t, doc.Entries[0].Assignment)
	assert.Equal(t, "template", doc.Entries[0].Assignment.Key)

	personal := doc.Entries[1].Block
	require.NotNil(t, personal)
	assert.Equal(t, "personal", personal.Name)
	assert.Len(t, personal.Fields, 5)

	skills := doc.Entries[5].Assignment
	require.NotNil(t, skills)
	require.NotNil(t, skills.Value.List)
	assert.Len(t, skills.Value.List.Values, 3)
}

func TestDecodeRecord(t *testing.T) {
	doc, err := dsl.ParseString(sampleCV)
	require.NoError(t, err)

	got, err := dsl.Decode(doc, dsl.DecodeOptions{Vars: map[string]any{"city": "Berlin"}})
	require.NoError(t, err)

	assert.Equal(t, "technical-resume", got.Template)
	rec := got.Record
	assert.Equal(t, "Jane Doe", rec.Personal.FullName)
	assert.Equal(t, "+1 555 0100", rec.Personal.Phone)
	assert.Equal(t, "Berlin", rec.Personal.Location)
	assert.Equal(t, "Builds document tooling.\nLikes fonts.", rec.Personal.Summary)

	require.Len(t, rec.Experience, 2)
	assert.Equal(t, "", rec.Experience[0].EndDate, "present 应解码为空结束日期")
	assert.Equal(t, "2019-12", rec.Experience[1].EndDate)

	require.Len(t, rec.Education, 1)
	assert.Equal(t, "2015", rec.Education[0].GraduationYear)
	assert.Equal(t, []string{"Go", "PDF", "Typography"}, rec.Skills)
}

func TestDecodeKeepsPlaceholdersWithoutVars(t *testing.T) {
	got, err := dsl.Decode(mustParse(t, sampleCV), dsl.DecodeOptions{})
	require.NoError(t, err)
	assert.Equal(t, "${city}", got.Record.Personal.Location)
}

func TestDecodeRejectsUnknownFields(t *testing.T) {
	cases := map[string]string{
		"unknown block":      `resume { hobbies { name: "chess" } }`,
		"unknown field":      `resume { personal { nickname: "JD" } }`,
		"unknown top":        `resume { color: "blue" }`,
		"list for a scalar":  `resume { personal { name: ["a", "b"] } }`,
		"nested skills list": `resume { skills: [["a"]] }`,
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			doc, err := dsl.ParseString(src)
			if err != nil {
				// 语法层面拒绝也可以接受
				return
			}
			_, err = dsl.Decode(doc, dsl.DecodeOptions{})
			assert.Error(t, err)
		})
	}
}

func TestDecodeErrorCarriesPosition(t *testing.T) {
	doc := mustParse(t, "resume {\n  personal {\n    nickname: \"JD\"\n  }\n}\n")
	_, err := dsl.Decode(doc, dsl.DecodeOptions{})
	require.Error(t, err)
	var de *dsl.Error
	require.ErrorAs(t, err, &de)
	assert.Equal(t, 3, de.Pos.Line)
}

func TestSyntaxErrors(t *testing.T) {
	for _, src := range []string{
		`resume {`,
		`cv { }`,
		`resume { personal { name "x" } }`,
	} {
		_, err := dsl.ParseString(src)
		assert.Error(t, err, src)
	}
}

func TestReadFileLoadsRelativePhoto(t *testing.T) {
	dir := t.TempDir()
	photo := []byte("\x89PNG\r\n\x1a\nfake")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "me.png"), photo, 0o644))
	src := `resume { personal { name: "Jane"; photo: "me.png" } }`
	path := filepath.Join(dir, "jane.cv")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	got, err := dsl.ReadFile(path, nil)
	require.NoError(t, err)
	assert.Equal(t, resume.Photo(photo), got.Record.Personal.Photo)

	_, err = dsl.ReadFile(filepath.Join(dir, "missing.cv"), nil)
	assert.Error(t, err)
}

func TestEncodeThenDecodeKeepsRecord(t *testing.T) {
	want := resume.Record{
		Personal: resume.Personal{
			FullName: "Jane \"JD\" Doe",
			Email:    "jane@example.com",
			Summary:  "Line one.\nLine two.",
			Photo:    resume.Photo("\x89PNG\r\n\x1a\nfake"),
		},
		Experience: []resume.ExperienceEntry{
			{ID: "e1", Position: "Engineer", Company: "Acme", StartDate: "2020-01"},
		},
		Education: []resume.EducationEntry{
			{ID: "d1", Degree: "BSc", Institution: "Uni", GraduationYear: "2012"},
		},
		Skills: []string{"Go", "C, C++"},
	}
	var buf bytes.Buffer
	require.NoError(t, dsl.Encode(&buf, want, "classic-no-photo"))
	assert.True(t, strings.HasPrefix(buf.String(), "resume {"))

	got, err := dsl.Decode(mustParse(t, buf.String()), dsl.DecodeOptions{})
	require.NoError(t, err)
	assert.Equal(t, "classic-no-photo", got.Template)
	assert.Equal(t, want, got.Record)
}

func mustParse(t *testing.T, src string) *dsl.Document {
	t.Helper()
	doc, err := dsl.ParseString(src)
	require.NoError(t, err)
	return doc
}
