package layout

import (
	"fmt"
	"strings"

	"github.com/Mo-Ibra/cv-builder/resume"
)

// Creator 写入文档元信息的生成器名称。
const Creator = "cv-builder"

// Render 按模板把记录排版成页面序列。
//
// 输入缺失或格式不对都不会导致失败：空字段使用占位文本，无法解析的日期原样显示，
// 损坏的头像被跳过，未知模板回退到默认模板；这些情况记录在 Result.Notices 中。
// 只有内部异常会以 SerializationFailure 返回。
func Render(rec resume.Record, templateID string, opts Options) (res *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			res, err = nil, NewError(KindSerialization, "排版时发生异常: %v", r)
		}
	}()

	opts = opts.withDefaults()
	rec = resume.Clean(rec)

	tpl, known := opts.Registry.Lookup(templateID)
	if tpl == nil {
		return nil, NewError(KindSerialization, "模板注册表没有默认模板")
	}

	c := NewCursor(opts.Geometry, opts.Measurer)
	if !known {
		c.Notice(NewError(KindUnknownTemplate, "未知模板 %q，使用 %s", templateID, tpl.ID))
	}
	for _, kind := range tpl.Sections {
		if fn, ok := sectionRenderers[kind]; ok {
			fn(c, &rec, tpl.Policy)
		}
	}

	res = &Result{
		Template: tpl.ID,
		Pages:    c.Finish(),
		Meta:     documentMeta(&rec),
		Notices:  c.notices,
	}
	logNotices(opts, res)
	return res, nil
}

func documentMeta(rec *resume.Record) DocumentMeta {
	name := strings.TrimSpace(rec.Personal.FullName)
	title := "Curriculum Vitae"
	if name != "" {
		title = fmt.Sprintf("%s - %s", name, title)
	}
	return DocumentMeta{
		Title:    title,
		Author:   name,
		Subject:  "Resume",
		Creator:  Creator,
		Keywords: resume.UniqueSkills(rec.Skills),
	}
}

func logNotices(opts Options, res *Result) {
	if opts.Logger == nil {
		return
	}
	for _, n := range res.Notices {
		// 日期原样输出即可，只在调试时提示
		if n.Kind == KindMalformedDate {
			opts.Logger.Debug(n.Message, "kind", n.Kind, "template", res.Template)
			continue
		}
		opts.Logger.Warn(n.Message, "kind", n.Kind, "template", res.Template, "err", n.Cause)
	}
}

// PolicyFor returns the style policy a template id resolves to in reg.
func PolicyFor(reg *Registry, templateID string) *StylePolicy {
	if reg == nil {
		reg = DefaultRegistry()
	}
	tpl, _ := reg.Lookup(templateID)
	if tpl == nil {
		return nil
	}
	return tpl.Policy
}
