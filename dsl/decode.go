package dsl

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/Mo-Ibra/cv-builder/binding"
	"github.com/Mo-Ibra/cv-builder/resume"
)

// Resume 是 .cv 文件解码后的结果。
type Resume struct {
	Record resume.Record
	// Template 是文件中建议的模板，未写时为空。
	Template string
}

// DecodeOptions 控制解码时的外部依赖。
type DecodeOptions struct {
	// BaseDir 用于解析相对路径的头像文件。
	BaseDir string
	// Vars 用于替换字符串中的 ${path} 占位符。
	Vars map[string]any
}

// Error 带有源码位置的解码错误。
type Error struct {
	Pos     lexer.Position
	Message string
}

func (e *Error) Error() string {
	if e.Pos.Line == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

func errorf(pos lexer.Position, format string, args ...any) error {
	return &Error{Pos: pos, Message: fmt.Sprintf(format, args...)}
}

// Decode 把语法树转换为简历记录。未知的块或字段会报错，避免拼写错误被悄悄忽略。
func Decode(doc *Document, opts DecodeOptions) (*Resume, error) {
	if doc == nil {
		return nil, fmt.Errorf("文档为空")
	}
	d := decoder{opts: opts}
	out := &Resume{}
	for _, entry := range doc.Entries {
		var err error
		switch {
		case entry.Assignment != nil:
			err = d.topLevel(out, entry.Assignment)
		case entry.Block != nil:
			err = d.block(&out.Record, entry.Block)
		}
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// ReadFile parses and decodes a .cv file; relative photo paths resolve against
// the file's directory.
func ReadFile(path string, vars map[string]any) (*Resume, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("无法打开简历文件 %s: %w", path, err)
	}
	defer f.Close()
	doc, err := ParseNamed(path, f)
	if err != nil {
		return nil, fmt.Errorf("解析 %s 失败: %w", path, err)
	}
	return Decode(doc, DecodeOptions{BaseDir: filepath.Dir(path), Vars: vars})
}

type decoder struct {
	opts DecodeOptions
}

func (d *decoder) topLevel(out *Resume, a *Assignment) error {
	switch a.Key {
	case "template":
		s, err := d.scalar(a)
		if err != nil {
			return err
		}
		out.Template = s
	case "skills":
		skills, err := d.list(a)
		if err != nil {
			return err
		}
		out.Record.Skills = append(out.Record.Skills, skills...)
	default:
		return errorf(a.Pos, "未知字段 %q", a.Key)
	}
	return nil
}

func (d *decoder) block(rec *resume.Record, b *NamedBlock) error {
	switch b.Name {
	case "personal":
		return d.personal(&rec.Personal, b)
	case "experience":
		var e resume.ExperienceEntry
		if err := d.fields(b, map[string]*string{
			"id":          &e.ID,
			"company":     &e.Company,
			"position":    &e.Position,
			"start":       &e.StartDate,
			"end":         &e.EndDate,
			"description": &e.Description,
		}); err != nil {
			return err
		}
		if strings.EqualFold(e.EndDate, "present") {
			e.EndDate = ""
		}
		rec.Experience = append(rec.Experience, e)
	case "education":
		var e resume.EducationEntry
		if err := d.fields(b, map[string]*string{
			"id":          &e.ID,
			"institution": &e.Institution,
			"degree":      &e.Degree,
			"field":       &e.Field,
			"year":        &e.GraduationYear,
		}); err != nil {
			return err
		}
		rec.Education = append(rec.Education, e)
	default:
		return errorf(b.Pos, "未知块 %q", b.Name)
	}
	return nil
}

func (d *decoder) personal(p *resume.Personal, b *NamedBlock) error {
	var photo string
	err := d.fields(b, map[string]*string{
		"name":     &p.FullName,
		"email":    &p.Email,
		"phone":    &p.Phone,
		"location": &p.Location,
		"summary":  &p.Summary,
		"photo":    &photo,
	})
	if err != nil || photo == "" {
		return err
	}
	data, err := d.loadPhoto(photo)
	if err != nil {
		return errorf(b.Pos, "读取头像失败: %v", err)
	}
	p.Photo = data
	return nil
}

// loadPhoto 接受 data URL 或相对 BaseDir 的文件路径。
func (d *decoder) loadPhoto(ref string) (resume.Photo, error) {
	if strings.HasPrefix(ref, "data:") {
		return resume.DecodePhoto(ref)
	}
	path := ref
	if !filepath.IsAbs(path) {
		path = filepath.Join(d.opts.BaseDir, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return resume.Photo(data), nil
}

func (d *decoder) fields(b *NamedBlock, targets map[string]*string) error {
	for _, f := range b.Fields {
		dst, ok := targets[f.Key]
		if !ok {
			return errorf(f.Pos, "%s 块中的未知字段 %q", b.Name, f.Key)
		}
		s, err := d.scalar(f)
		if err != nil {
			return err
		}
		*dst = s
	}
	return nil
}

func (d *decoder) scalar(a *Assignment) (string, error) {
	s, ok := a.Value.Text()
	if !ok {
		return "", errorf(a.Pos, "字段 %q 需要单个值", a.Key)
	}
	return d.interpolate(s), nil
}

func (d *decoder) list(a *Assignment) ([]string, error) {
	if a.Value.List == nil {
		// 单个值视为只有一项的列表
		s, err := d.scalar(a)
		if err != nil {
			return nil, err
		}
		return []string{s}, nil
	}
	out := make([]string, 0, len(a.Value.List.Values))
	for _, v := range a.Value.List.Values {
		s, ok := v.Text()
		if !ok {
			return nil, errorf(v.Pos, "字段 %q 不支持嵌套列表", a.Key)
		}
		out = append(out, d.interpolate(s))
	}
	return out, nil
}

func (d *decoder) interpolate(s string) string {
	if len(d.opts.Vars) == 0 {
		return s
	}
	return binding.Interpolate(s, d.opts.Vars)
}
