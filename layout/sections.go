package layout

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	_ "golang.org/x/image/webp"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Mo-Ibra/cv-builder/resume"
)

// 空字段的占位文本，保证文档中不出现空白的标题位。
const (
	PlaceholderName        = "Your Name"
	PlaceholderPosition    = "Position Title"
	PlaceholderCompany     = "Company Name"
	PlaceholderDegree      = "Degree"
	PlaceholderInstitution = "Institution Name"
)

// photoPad 头像下方到正文的最小留白（mm）。
const photoPad = 5.0

// SectionKind 标识一个区块渲染函数。
type SectionKind string

const (
	SectionHeader     SectionKind = "header"
	SectionSummary    SectionKind = "summary"
	SectionExperience SectionKind = "experience"
	SectionEducation  SectionKind = "education"
	SectionSkills     SectionKind = "skills"
)

// SectionRenderer 在 Cursor 上绘制记录的一个区块。记录只读。
type SectionRenderer func(c *Cursor, rec *resume.Record, p *StylePolicy)

var sectionRenderers = map[SectionKind]SectionRenderer{
	SectionHeader:     renderHeader,
	SectionSummary:    renderSummary,
	SectionExperience: renderExperience,
	SectionEducation:  renderEducation,
	SectionSkills:     renderSkills,
}

func renderHeader(c *Cursor, rec *resume.Record, p *StylePolicy) {
	h := &p.Header
	x, width := c.Left(), c.ContentWidth()
	photoBottom := c.Y()

	if box, ok := placePhoto(c, rec, p); ok {
		c.Image(box, h.Photo.Ring)
		photoBottom = c.Y() + box.Height + photoPad
		shift := box.Width + h.Photo.Gap
		width -= shift
		if h.Photo.Placement == PlaceLeading {
			x += shift
		}
	}

	if h.Preamble != "" {
		c.Text(x, width, h.Preamble, p.font(h.PreambleStyle), h.PreambleStyle, p.LineHeight, h.Align)
	}

	name, nameStyle := rec.Personal.FullName, h.Name
	switch {
	case strings.TrimSpace(name) == "":
		name, nameStyle.Italic = PlaceholderName, true
	case h.UppercaseName:
		name = cases.Upper(language.Und).String(name)
	}
	c.Text(x, width, name, p.font(nameStyle), nameStyle, p.LineHeight, h.Align)
	c.Skip(h.NameGap)

	contact := contactItems(&rec.Personal, h)
	if len(contact) > 0 {
		font := p.font(h.Contact)
		if h.ContactLayout == ContactStacked {
			for _, item := range contact {
				c.Text(x, width, h.ContactPrefix+item, font, h.Contact, p.LineHeight, h.Align)
			}
		} else {
			c.Paragraph(x, width, h.ContactPrefix+strings.Join(contact, h.Separator), font, h.Contact, p.LineHeight, h.Align)
		}
	}
	c.AdvanceTo(photoBottom)

	if strings.TrimSpace(rec.Personal.FullName) != "" || len(contact) > 0 {
		c.Skip(h.ContactGap)
		c.Rule(h.Rule)
		c.Skip(h.RuleGap)
	}
}

// placePhoto 只有在策略启用头像且记录提供了可解码的图片时才返回头像位。
// 图片整体解码，只有头部可读的截断文件同样视为失败：记录一条 ImageDecodeFailure，
// 并按无头像的几何继续排版。
func placePhoto(c *Cursor, rec *resume.Record, p *StylePolicy) (ImageBox, bool) {
	slot := p.Header.Photo
	if !slot.Enabled() || !rec.HasPhoto() {
		return ImageBox{}, false
	}
	img, format, err := image.Decode(bytes.NewReader(rec.Personal.Photo))
	if err != nil {
		c.Notice(WrapError(KindImageDecode, err, "头像无法解码，已跳过头像位"))
		return ImageBox{}, false
	}
	if b := img.Bounds(); b.Dx() <= 0 || b.Dy() <= 0 {
		c.Notice(NewError(KindImageDecode, "头像尺寸无效 %dx%d，已跳过头像位", b.Dx(), b.Dy()))
		return ImageBox{}, false
	}
	x := c.Left()
	if slot.Placement == PlaceTrailing {
		x = c.Left() + c.ContentWidth() - slot.Size
	}
	return ImageBox{
		X:      x,
		Width:  slot.Size,
		Height: slot.Size,
		Format: format,
		Shape:  slot.Shape,
		Data:   rec.Personal.Photo,
	}, true
}

func contactItems(pi *resume.Personal, h *HeaderStyle) []string {
	var out []string
	add := func(label, value string) {
		if v := strings.TrimSpace(value); v != "" {
			out = append(out, label+v)
		}
	}
	add(h.ContactLabels.Email, pi.Email)
	add(h.ContactLabels.Phone, pi.Phone)
	add(h.ContactLabels.Location, pi.Location)
	return out
}

func renderSummary(c *Cursor, rec *resume.Record, p *StylePolicy) {
	text := strings.TrimSpace(rec.Personal.Summary)
	if text == "" {
		return
	}
	s := &p.Summary
	sectionTitle(c, p, s, p.advance(s.Body))
	c.Paragraph(c.Left(), c.ContentWidth(), text, p.font(s.Body), s.Body, p.LineHeight, AlignStart)
	c.Skip(s.After)
}

// sectionTitle 预留标题与首个条目的高度，标题不会单独留在页底。
func sectionTitle(c *Cursor, p *StylePolicy, s *SectionStyle, first float64) {
	c.EnsureSpace(max(p.SectionReserve, p.advance(s.TitleStyle)+s.TitleGap+first))
	c.Text(c.Left(), c.ContentWidth(), s.Title, p.font(s.TitleStyle), s.TitleStyle, p.LineHeight, s.TitleAlign)
	c.Skip(s.TitleGap)
}

func renderExperience(c *Cursor, rec *resume.Record, p *StylePolicy) {
	if len(rec.Experience) == 0 {
		return
	}
	e := &p.Experience
	sectionTitle(c, p, &e.SectionStyle, e.Reserve)
	x, width := c.Left(), c.ContentWidth()

	for i := range rec.Experience {
		entry := &rec.Experience[i]
		// 标题前预留条目头部高度，避免标题孤立在页底。
		c.EnsureSpace(e.Reserve)
		period := entryPeriod(c, entry)
		position, posMissing := orPlaceholder(entry.Position, PlaceholderPosition)
		company, companyMissing := orPlaceholder(entry.Company, PlaceholderCompany)

		switch e.Layout {
		case EntryInline:
			st := italicIf(e.EntryTitle, posMissing && companyMissing)
			c.Text(x, width, position+" @ "+company, p.font(st), st, p.LineHeight, AlignStart)
			c.Text(x, width, e.PeriodPrefix+period, p.font(e.Meta), e.Meta, p.LineHeight, AlignStart)
		default:
			st := italicIf(e.EntryTitle, posMissing)
			c.Text(x, width, position, p.font(st), st, p.LineHeight, AlignStart)
			cs := italicIf(e.Meta, companyMissing)
			c.Row(x, width, company, p.font(cs), cs, e.PeriodPrefix+period, p.font(e.Meta), e.Meta, p.LineHeight)
		}

		if desc := strings.TrimSpace(entry.Description); desc != "" {
			c.Paragraph(x+e.Indent, width-e.Indent, desc, p.font(e.Body), e.Body, p.LineHeight, AlignStart)
		}
		c.Skip(e.EntryGap)
	}
	c.Skip(e.After)
}

// entryPeriod 格式化时间段；无法解析的日期原样显示并记录一条 MalformedDate。
func entryPeriod(c *Cursor, entry *resume.ExperienceEntry) string {
	for _, d := range []string{entry.StartDate, entry.EndDate} {
		if _, ok := FormatDate(d); !ok {
			c.Notice(NewError(KindMalformedDate, "经历 %q 的日期 %q 无法解析，按原文显示", entry.Position, d))
		}
	}
	return FormatPeriod(entry.StartDate, entry.EndDate)
}

func renderEducation(c *Cursor, rec *resume.Record, p *StylePolicy) {
	if len(rec.Education) == 0 {
		return
	}
	ed := &p.Education
	sectionTitle(c, p, &ed.SectionStyle, ed.Reserve)
	x, width := c.Left(), c.ContentWidth()

	for i := range rec.Education {
		entry := &rec.Education[i]
		c.EnsureSpace(ed.Reserve)

		degree, degreeMissing := orPlaceholder(entry.Degree, PlaceholderDegree)
		if field := strings.TrimSpace(entry.Field); field != "" {
			degree += " in " + field
		}
		ds := italicIf(ed.Degree, degreeMissing)
		c.Text(x, width, degree, p.font(ds), ds, p.LineHeight, AlignStart)

		institution, instMissing := orPlaceholder(entry.Institution, PlaceholderInstitution)
		ms := italicIf(ed.Meta, instMissing)
		year := strings.TrimSpace(entry.GraduationYear)
		if ed.Layout == EntryInline {
			if year != "" {
				institution += ed.YearSeparator + year
			}
			c.Text(x, width, institution, p.font(ms), ms, p.LineHeight, AlignStart)
		} else {
			c.Row(x, width, institution, p.font(ms), ms, year, p.font(ed.Meta), ed.Meta, p.LineHeight)
		}
		c.Skip(ed.EntryGap)
	}
	c.Skip(ed.After)
}

func renderSkills(c *Cursor, rec *resume.Record, p *StylePolicy) {
	skills := resume.UniqueSkills(rec.Skills)
	if len(skills) == 0 {
		return
	}
	s := &p.Skills
	sectionTitle(c, p, &s.SectionStyle, p.advance(s.Body))
	x, width := c.Left(), c.ContentWidth()
	font := p.font(s.Body)

	if s.Layout != SkillsBulleted {
		c.Paragraph(x, width, strings.Join(skills, s.Separator), font, s.Body, p.LineHeight, AlignStart)
		c.Skip(s.After)
		return
	}

	indent := c.measurer.TextWidth(s.Bullet, font, s.Body.Size)
	every := p.skillBreakEvery()
	for i, skill := range skills {
		for j, line := range MeasureWrap(c.measurer, skill, width-indent, font, s.Body.Size) {
			if j == 0 {
				c.Text(x, width, s.Bullet+line, font, s.Body, p.LineHeight, AlignStart)
				continue
			}
			c.Text(x+indent, width-indent, line, font, s.Body, p.LineHeight, AlignStart)
		}
		if (i+1)%every == 0 && i+1 < len(skills) {
			c.EnsureSpace(s.Reserve)
		}
	}
	c.Skip(s.After)
}

func orPlaceholder(value, placeholder string) (string, bool) {
	if v := strings.TrimSpace(value); v != "" {
		return v, false
	}
	return placeholder, true
}

func italicIf(st TextStyle, cond bool) TextStyle {
	if cond {
		st.Italic = true
	}
	return st
}
