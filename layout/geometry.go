package layout

import "strings"

// PageSize 以毫米记录纸张尺寸（纵向）。
type PageSize struct {
	Name   string  `json:"name"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Standard page sizes.
var (
	A4     = PageSize{Name: "A4", Width: 210, Height: 297}
	Letter = PageSize{Name: "Letter", Width: 215.9, Height: 279.4}
)

// DefaultMargin 四边统一的页边距（mm）。
const DefaultMargin = 20.0

// PageSizeByName resolves "A4" or "Letter" case-insensitively.
func PageSizeByName(name string) (PageSize, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "a4":
		return A4, true
	case "letter", "us-letter":
		return Letter, true
	default:
		return PageSize{}, false
	}
}

// Geometry 固定页面尺寸与统一页边距。
type Geometry struct {
	Size   PageSize
	Margin float64
}

// DefaultGeometry is A4 with a 20mm margin on every side.
func DefaultGeometry() Geometry {
	return Geometry{Size: A4, Margin: DefaultMargin}
}

// ContentWidth is the printable width between the left and right margins.
func (g Geometry) ContentWidth() float64 { return g.Size.Width - 2*g.Margin }

// Top returns the first usable y coordinate.
func (g Geometry) Top() float64 { return g.Margin }

// Bottom returns the last usable y coordinate.
func (g Geometry) Bottom() float64 { return g.Size.Height - g.Margin }

func (g Geometry) valid() bool {
	return g.Size.Width > 0 && g.Size.Height > 0 && g.Margin >= 0 &&
		2*g.Margin < g.Size.Width && 2*g.Margin < g.Size.Height
}
