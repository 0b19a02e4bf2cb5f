package layout

import (
	"strings"
	"testing"
)

func TestCursorBreaksWhenSpaceRunsOut(t *testing.T) {
	c := NewCursor(DefaultGeometry(), nil)
	st := TextStyle{Size: 10}
	lines := 0
	for c.PageCount() < 2 {
		c.Text(c.Left(), c.ContentWidth(), "line", Font{Family: FamilySans}, st, defaultLineHeight, AlignStart)
		lines++
		if lines > 1000 {
			t.Fatalf("始终没有换页")
		}
	}
	pages := c.Finish()
	if len(pages) != 2 {
		t.Fatalf("期望 2 页，实际 %d", len(pages))
	}
	adv := defaultLineHeight.Advance(10)
	want := int((DefaultGeometry().Bottom() - DefaultGeometry().Top()) / adv)
	if got := len(pages[0].Ops); got != want {
		t.Fatalf("第一页行数期望 %d，实际 %d", want, got)
	}
}

func TestCursorNeverBreaksEmptyPage(t *testing.T) {
	c := NewCursor(DefaultGeometry(), nil)
	c.EnsureSpace(1000)
	c.Skip(10)
	c.EnsureSpace(1000)
	if c.PageCount() != 1 {
		t.Fatalf("空页不应换页")
	}
	if pages := c.Finish(); len(pages) != 1 {
		t.Fatalf("期望 1 页，实际 %d", len(pages))
	}
}

func TestCursorSkipClampsToBottom(t *testing.T) {
	geo := DefaultGeometry()
	c := NewCursor(geo, nil)
	c.Skip(10_000)
	if c.Y() != geo.Bottom() {
		t.Fatalf("Skip 应停在页底，实际 y=%g", c.Y())
	}
	c.AdvanceTo(geo.Top())
	if c.Y() != geo.Bottom() {
		t.Fatalf("AdvanceTo 不应向上移动")
	}
}

func TestCursorFinishDropsTrailingEmptyPage(t *testing.T) {
	c := NewCursor(DefaultGeometry(), nil)
	c.Text(c.Left(), c.ContentWidth(), "a", Font{}, TextStyle{Size: 10}, defaultLineHeight, AlignStart)
	c.pageBreak()
	if pages := c.Finish(); len(pages) != 1 {
		t.Fatalf("末尾空页应被丢弃，实际 %d 页", len(pages))
	}
}

func TestParagraphSplitsExplicitLines(t *testing.T) {
	c := NewCursor(DefaultGeometry(), nil)
	n := c.Paragraph(c.Left(), c.ContentWidth(), "one\ntwo\n\nthree", Font{}, TextStyle{Size: 10}, defaultLineHeight, AlignStart)
	if n != 3 {
		t.Fatalf("期望 3 行，实际 %d", n)
	}
}

func TestRowSharesBaseline(t *testing.T) {
	c := NewCursor(DefaultGeometry(), nil)
	c.Row(c.Left(), c.ContentWidth(), "Acme", Font{}, TextStyle{Size: 10}, "2020", Font{}, TextStyle{Size: 12}, defaultLineHeight)
	ops := c.Finish()[0].Ops
	if len(ops) != 2 || ops[0].Y != ops[1].Y {
		t.Fatalf("Row 两侧文本应共享 y: %+v", ops)
	}
	if ops[1].Text.Align != AlignEnd {
		t.Fatalf("右侧文本应右对齐")
	}
	if h := defaultLineHeight.Advance(12); ops[0].Text.Height != h {
		t.Fatalf("Row 行高应取较大字号，期望 %g 实际 %g", h, ops[0].Text.Height)
	}
}

func TestWrapFixedPoint(t *testing.T) {
	m := EstimateMeasurer{}
	font := Font{Family: FamilySerif}
	text := strings.Repeat("The quick brown fox jumps over the lazy dog. ", 12) + "Supercalifragilisticexpialidocious" + strings.Repeat("x", 80)
	for _, width := range []float64{20, 50, 120, 170} {
		lines := MeasureWrap(m, text, width, font, 10)
		again := MeasureWrap(m, strings.Join(lines, " "), width, font, 10)
		if strings.Join(lines, "\n") != strings.Join(again, "\n") {
			t.Fatalf("宽度 %g 下折行不是不动点", width)
		}
		for _, l := range lines {
			if m.TextWidth(l, font, 10) > width && strings.Contains(l, " ") {
				t.Fatalf("宽度 %g 下多词行超宽: %q", width, l)
			}
		}
		if strings.Join(strings.Fields(text), " ") != strings.Join(lines, " ") {
			t.Fatalf("折行丢失或改变了文本")
		}
	}
}

func TestMeasureWrapEmpty(t *testing.T) {
	if got := MeasureWrap(nil, "   \t ", 100, Font{}, 10); got != nil {
		t.Fatalf("空白文本应返回 nil，实际 %q", got)
	}
}

func TestEstimateMeasurerMono(t *testing.T) {
	m := EstimateMeasurer{}
	mono := Font{Family: FamilyMono}
	if m.TextWidth("iiii", mono, 10) != m.TextWidth("MMMM", mono, 10) {
		t.Fatalf("等宽字体宽度应与字符无关")
	}
	if m.TextWidth("MMMM", Font{}, 10) <= m.TextWidth("iiii", Font{}, 10) {
		t.Fatalf("比例字体中 M 应宽于 i")
	}
}

func TestFormatPeriod(t *testing.T) {
	cases := map[[2]string]string{
		{"2020-01", ""}:        "Jan 2020 - Present",
		{"2016-03", "2019-12"}: "Mar 2016 - Dec 2019",
		{"2018", "2019"}:       "2018 - 2019",
		{"", ""}:               "Present - Present",
		{"soon", "2019-12"}:    "soon - Dec 2019",
	}
	for in, want := range cases {
		if got := FormatPeriod(in[0], in[1]); got != want {
			t.Fatalf("FormatPeriod(%q,%q) = %q，期望 %q", in[0], in[1], got, want)
		}
	}
	if _, ok := FormatDate("13/2020"); ok {
		t.Fatalf("13/2020 不应解析成功")
	}
}
