package export

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mo-Ibra/cv-builder/layout"
	"github.com/Mo-Ibra/cv-builder/renderer"
	"github.com/Mo-Ibra/cv-builder/resume"
)

func record() resume.Record {
	return resume.Record{
		Personal: resume.Personal{FullName: "  Jane   van\tDoe ", Email: "jane@example.com"},
		Experience: []resume.ExperienceEntry{
			{Company: "Acme", Position: "Engineer", StartDate: "2021-04"},
		},
		Skills: []string{"Go"},
	}
}

func TestFileName(t *testing.T) {
	cases := []struct {
		name, suffix, ext, want string
	}{
		{"Jane Doe", "CV", "pdf", "Jane_Doe_CV.pdf"},
		{"  Jane   van\tDoe ", "CV", "pdf", "Jane_van_Doe_CV.pdf"},
		{"", "CV", "pdf", "CV.pdf"},
		{"   ", "Technical_Resume", "pdf", "Technical_Resume.pdf"},
		{"Jane Doe", "Technical_Resume", "png", "Jane_Doe_Technical_Resume.png"},
		{"AC/DC", "", "pdf", "AC-DC_CV.pdf"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, FileName(c.name, c.suffix, c.ext), "name=%q", c.name)
	}
}

func TestExportPDF(t *testing.T) {
	art, err := New(Options{}).Export(context.Background(), record(), "technical-resume")
	require.NoError(t, err)
	assert.Equal(t, "Jane_van_Doe_Technical_Resume.pdf", art.Name)
	assert.Equal(t, "technical-resume", art.Template)
	assert.Equal(t, 1, art.Pages)
	assert.True(t, bytes.HasPrefix(art.Data, []byte("%PDF-")))
	assert.Empty(t, art.Notices)
}

func TestExportUnknownTemplateUsesDefault(t *testing.T) {
	art, err := New(Options{}).Export(context.Background(), record(), "glitter")
	require.NoError(t, err)
	assert.Equal(t, layout.DefaultTemplateID, art.Template)
	assert.Equal(t, "Jane_van_Doe_CV.pdf", art.Name)
	require.Len(t, art.Notices, 1)
	assert.Equal(t, layout.KindUnknownTemplate, art.Notices[0].Kind)
}

func TestExportCancelledIsSerializationFailure(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(Options{}).Export(ctx, record(), "classic-no-photo")
	require.Error(t, err)
	assert.True(t, layout.IsKind(err, layout.KindSerialization))
}

func TestWriteFileWithPattern(t *testing.T) {
	dir := t.TempDir()
	e := New(Options{Format: renderer.FormatPNG, Resolution: 1})
	path, art, err := e.WriteFile(context.Background(), filepath.Join(dir, "out"), "${name}-${template}.${ext}", record(), "minimal-with-photo")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "out", "Jane_van_Doe-minimal-with-photo.png"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, art.Data, data)

	// 不应残留临时文件
	entries, err := os.ReadDir(filepath.Join(dir, "out"))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestWriteFileRejectsBadPatterns(t *testing.T) {
	e := New(Options{})
	for _, pattern := range []string{"${nope}.pdf", "../${file}.${ext}"} {
		_, _, err := e.WriteFile(context.Background(), t.TempDir(), pattern, record(), "classic-no-photo")
		assert.True(t, layout.IsKind(err, layout.KindSerialization), pattern)
	}
}

func TestExportAllWritesEveryTemplate(t *testing.T) {
	dir := t.TempDir()
	paths, err := New(Options{Concurrency: 2}).ExportAll(context.Background(), dir, "", record(), nil)
	require.NoError(t, err)
	require.Len(t, paths, len(layout.DefaultRegistry().IDs()))

	names := make([]string, len(paths))
	for i, p := range paths {
		names[i] = filepath.Base(p)
		info, err := os.Stat(p)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}
	sort.Strings(names)
	assert.Contains(t, names, "Jane_van_Doe_Technical_Resume_technical-resume.pdf")
	assert.Contains(t, names, "Jane_van_Doe_CV_creative-portfolio.pdf")
	assert.Contains(t, names, "Jane_van_Doe_CV_modern-with-photo.pdf")
}
