package layout

import (
	"math"
	"strings"
)

// Cursor 跟踪单次渲染的纵向位置与页面列表。每次渲染新建一个，不在渲染之间共享。
//
// 不变式：页内 y 单调不减，且始终满足 Top() <= y <= Bottom()；
// EnsureSpace 是唯一决定换页的地方。
type Cursor struct {
	geo      Geometry
	measurer Measurer
	y        float64
	closed   []Page
	ops      []Op
	notices  []*Error
}

// NewCursor opens the first page of geo with y at the top margin.
func NewCursor(geo Geometry, m Measurer) *Cursor {
	if m == nil {
		m = EstimateMeasurer{}
	}
	return &Cursor{geo: geo, measurer: m, y: geo.Top()}
}

// Y returns the current vertical position.
func (c *Cursor) Y() float64 { return c.y }

// Left is the x coordinate of the left margin.
func (c *Cursor) Left() float64 { return c.geo.Margin }

// ContentWidth is the usable width between margins.
func (c *Cursor) ContentWidth() float64 { return c.geo.ContentWidth() }

// PageCount counts closed pages plus the open one.
func (c *Cursor) PageCount() int { return len(c.closed) + 1 }

// EnsureSpace 在剩余高度不足 required 时换页，并把 y 重置到上边距。
// 当前页尚未放置任何内容时不换页，避免产生空白页。
func (c *Cursor) EnsureSpace(required float64) {
	if c.y+required <= c.geo.Bottom() {
		return
	}
	if len(c.ops) == 0 {
		return
	}
	c.pageBreak()
}

func (c *Cursor) pageBreak() {
	c.closed = append(c.closed, c.page(c.ops))
	c.ops = nil
	c.y = c.geo.Top()
}

// Skip 向下留白，最多到页底；下一次绘制会据此换页。
func (c *Cursor) Skip(d float64) {
	if d <= 0 {
		return
	}
	c.y = math.Min(c.y+d, c.geo.Bottom())
}

// AdvanceTo moves forward to y; it never moves the cursor up.
func (c *Cursor) AdvanceTo(y float64) {
	if y > c.y {
		c.y = math.Min(y, c.geo.Bottom())
	}
}

// Text 放置一行不折行的文本，返回其行高。
func (c *Cursor) Text(x, width float64, content string, font Font, st TextStyle, lh LineHeightSpec, align Align) float64 {
	adv := lh.Advance(st.Size)
	c.EnsureSpace(adv)
	c.emitText(x, width, content, font, st, adv, align)
	c.y += adv
	return adv
}

// Row 在同一行放置左侧文本与右对齐文本，两者共享同一个 y。
func (c *Cursor) Row(x, width float64, left string, lf Font, ls TextStyle, right string, rf Font, rs TextStyle, lh LineHeightSpec) {
	adv := math.Max(lh.Advance(ls.Size), lh.Advance(rs.Size))
	c.EnsureSpace(adv)
	if left != "" {
		c.emitText(x, width, left, lf, ls, adv, AlignStart)
	}
	if right != "" {
		c.emitText(x, width, right, rf, rs, adv, AlignEnd)
	}
	c.y += adv
}

// Paragraph 折行后逐行放置。换页的最小单位是一行：段落可以跨页，单行不会。
// 显式换行分隔的段落分别折行。
func (c *Cursor) Paragraph(x, width float64, text string, font Font, st TextStyle, lh LineHeightSpec, align Align) int {
	n := 0
	for _, para := range strings.Split(text, "\n") {
		for _, line := range MeasureWrap(c.measurer, para, width, font, st.Size) {
			c.Text(x, width, line, font, st, lh, align)
			n++
		}
	}
	return n
}

// Rule 画一条横跨内容区的分隔线，y 不前进。
func (c *Cursor) Rule(r Rule) {
	if r.Thickness <= 0 {
		return
	}
	c.EnsureSpace(r.Thickness)
	x1, x2 := c.geo.Margin, c.geo.Size.Width-c.geo.Margin
	c.ops = append(c.ops, Op{Kind: OpLine, Y: c.y, Line: &Line{
		X1: x1, Y1: c.y, X2: x2, Y2: c.y, Color: r.Color, Width: r.Thickness,
	}})
}

// Image 在当前 y 放置一张图片，y 不前进；调用方负责随后推进。
func (c *Cursor) Image(box ImageBox, ring Rule) {
	c.EnsureSpace(box.Height)
	box.Y = c.y
	c.ops = append(c.ops, Op{Kind: OpImage, Y: c.y, Image: &box})
	if box.Shape == PhotoCircle && ring.Thickness > 0 {
		r := box.Width / 2
		c.ops = append(c.ops, Op{Kind: OpCircle, Y: c.y, Circle: &Circle{
			CX: box.X + r, CY: c.y + r, R: r, StrokeColor: ring.Color, StrokeWidth: ring.Thickness,
		}})
	}
}

// Notice records a locally recovered problem.
func (c *Cursor) Notice(err *Error) {
	c.notices = append(c.notices, err)
}

// Finish closes the open page and returns every page in order. A trailing page
// without content is dropped unless it is the only one.
func (c *Cursor) Finish() []Page {
	pages := append([]Page(nil), c.closed...)
	if len(c.ops) > 0 || len(pages) == 0 {
		pages = append(pages, c.page(c.ops))
	}
	c.closed, c.ops = nil, nil
	return pages
}

func (c *Cursor) emitText(x, width float64, content string, font Font, st TextStyle, height float64, align Align) {
	if align == "" {
		align = AlignStart
	}
	c.ops = append(c.ops, Op{Kind: OpText, Y: c.y, Text: &TextRun{
		Content:  content,
		X:        x,
		Y:        c.y,
		Width:    width,
		Height:   height,
		Font:     font,
		FontSize: st.Size,
		Color:    st.Color,
		Align:    align,
	}})
}

func (c *Cursor) page(ops []Op) Page {
	return Page{
		Width:  c.geo.Size.Width,
		Height: c.geo.Size.Height,
		Margin: c.geo.Margin,
		Ops:    ops,
	}
}
