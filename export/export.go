// Package export turns a resume record into a named artifact: layout, render,
// file name, and an atomic write to disk.
package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/Mo-Ibra/cv-builder/binding"
	"github.com/Mo-Ibra/cv-builder/layout"
	"github.com/Mo-Ibra/cv-builder/renderer"
	canvasrenderer "github.com/Mo-Ibra/cv-builder/renderer/canvas"
	"github.com/Mo-Ibra/cv-builder/resume"
)

// AllPattern is the default output pattern for ExportAll; it keeps one file per template.
const AllPattern = "${file}_${template}.${ext}"

var (
	whitespace = regexp.MustCompile(`\s+`)
	unsafeName = strings.NewReplacer("/", "-", "\\", "-", ":", "-", "\x00", "")
)

// Artifact is one rendered document.
type Artifact struct {
	Name     string
	Template string
	Format   renderer.Format
	Suffix   string
	Pages    int
	Data     []byte
	Notices  []*layout.Error
	// Layout is the computed page layout the data was rendered from.
	Layout *layout.Result
}

// Options configures an Exporter. The zero value exports A4 PDFs with the
// built-in templates.
type Options struct {
	Format     renderer.Format
	Geometry   layout.Geometry
	Registry   *layout.Registry
	Resolution float64
	Page       int
	// Concurrency bounds ExportAll; <= 0 means one worker per template.
	Concurrency int
	Logger      *log.Logger
}

// Exporter renders records. It is safe for concurrent use.
type Exporter struct {
	opts     Options
	renderer *canvasrenderer.Renderer
}

// New creates an Exporter.
func New(opts Options) *Exporter {
	if opts.Format == "" {
		opts.Format = renderer.FormatPDF
	}
	if opts.Registry == nil {
		opts.Registry = layout.DefaultRegistry()
	}
	return &Exporter{
		opts: opts,
		renderer: canvasrenderer.NewRendererWithOptions(canvasrenderer.Options{
			Format:     opts.Format,
			Resolution: opts.Resolution,
			Page:       opts.Page,
			Logger:     opts.Logger,
		}),
	}
}

// Layout runs only the layout stage with the exporter's geometry and font metrics.
func (e *Exporter) Layout(rec resume.Record, templateID string) (*layout.Result, error) {
	return layout.Render(rec, templateID, layout.Options{
		Geometry: e.opts.Geometry,
		Measurer: e.renderer,
		Registry: e.opts.Registry,
		Logger:   e.opts.Logger,
	})
}

// Export lays out and renders rec. The only error kind returned is
// layout.KindSerialization; recoverable problems are listed in Artifact.Notices.
func (e *Exporter) Export(ctx context.Context, rec resume.Record, templateID string) (*Artifact, error) {
	res, err := e.Layout(rec, templateID)
	if err != nil {
		return nil, err
	}
	data, err := e.renderer.Render(ctx, res)
	if err != nil {
		return nil, err
	}
	suffix := "CV"
	if p := layout.PolicyFor(e.opts.Registry, res.Template); p != nil && p.ArtifactSuffix != "" {
		suffix = p.ArtifactSuffix
	}
	return &Artifact{
		Name:     FileName(rec.Personal.FullName, suffix, e.opts.Format.Ext()),
		Template: res.Template,
		Format:   e.opts.Format,
		Suffix:   suffix,
		Pages:    len(res.Pages),
		Data:     data,
		Notices:  res.Notices,
		Layout:   res,
	}, nil
}

// WriteFile exports rec into dir. pattern may use ${file}, ${name}, ${template},
// ${suffix} and ${ext}; an empty pattern uses the artifact's default name.
// 文件先写入同目录下的临时文件再重命名，失败时不会留下半个文件。
func (e *Exporter) WriteFile(ctx context.Context, dir, pattern string, rec resume.Record, templateID string) (string, *Artifact, error) {
	art, err := e.Export(ctx, rec, templateID)
	if err != nil {
		return "", nil, err
	}
	name := art.Name
	if pattern != "" {
		name, err = expandPattern(pattern, art, rec)
		if err != nil {
			return "", nil, err
		}
	}
	path := filepath.Join(dir, name)
	if err := writeAtomic(path, art.Data); err != nil {
		return "", nil, layout.AsSerialization(err, "写入 %s 失败", path)
	}
	return path, art, nil
}

// ExportAll writes one artifact per template id concurrently. An empty ids
// list exports every registered template.
func (e *Exporter) ExportAll(ctx context.Context, dir, pattern string, rec resume.Record, ids []string) ([]string, error) {
	if len(ids) == 0 {
		ids = e.opts.Registry.IDs()
	}
	if pattern == "" {
		pattern = AllPattern
	}
	paths := make([]string, len(ids))
	g, gCtx := errgroup.WithContext(ctx)
	if e.opts.Concurrency > 0 {
		g.SetLimit(e.opts.Concurrency)
	}
	for i, id := range ids {
		g.Go(func() error {
			path, _, err := e.WriteFile(gCtx, dir, pattern, rec, id)
			if err != nil {
				return fmt.Errorf("template %s: %w", id, err)
			}
			// 每个 goroutine 只写自己的下标
			paths[i] = path
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}

// FileName builds "<Name_With_Underscores>_<suffix>.<ext>", or "<suffix>.<ext>"
// when the name is blank. Path separators in the name are replaced.
func FileName(fullName, suffix, ext string) string {
	if suffix == "" {
		suffix = "CV"
	}
	stem := Stem(fullName, suffix)
	if ext == "" {
		return stem
	}
	return stem + "." + ext
}

// Stem is FileName without the extension.
func Stem(fullName, suffix string) string {
	name := safeName(fullName)
	if name == "" {
		return suffix
	}
	return name + "_" + suffix
}

func safeName(fullName string) string {
	name := whitespace.ReplaceAllString(strings.TrimSpace(fullName), "_")
	return unsafeName.Replace(name)
}

func expandPattern(pattern string, art *Artifact, rec resume.Record) (string, error) {
	vars := map[string]string{
		"file":     Stem(rec.Personal.FullName, art.Suffix),
		"name":     safeName(rec.Personal.FullName),
		"template": art.Template,
		"suffix":   art.Suffix,
		"ext":      art.Format.Ext(),
	}
	if missing := binding.Unresolved(pattern, vars); len(missing) > 0 {
		return "", layout.NewError(layout.KindSerialization, "输出文件名模式包含未知变量 %v", missing)
	}
	name := binding.Interpolate(pattern, vars)
	if strings.TrimSpace(name) == "" || strings.ContainsAny(name, `/\`) {
		return "", layout.NewError(layout.KindSerialization, "输出文件名 %q 无效", name)
	}
	return name, nil
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".cv-builder-*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
