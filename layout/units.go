package layout

import (
	"strconv"
	"strings"
)

// 布局内部统一使用毫米；字号沿用排版习惯以 pt 表示，在这里集中换算。

// Unit represents the original unit of a length value as written in config.
type Unit int

const (
	UnitNone Unit = iota // unit-less numbers like factors
	UnitMM               // millimeters
	UnitCM               // centimeters
	UnitIN               // inches
	UnitPT               // points
)

// Conversion constants between pt and mm.
const (
	PtToMm = 0.352777
	MmToPt = 1.0 / PtToMm
)

// String returns the short suffix for a Unit value.
func (u Unit) String() string {
	switch u {
	case UnitMM:
		return "mm"
	case UnitCM:
		return "cm"
	case UnitIN:
		return "in"
	case UnitPT:
		return "pt"
	default:
		return ""
	}
}

// Length preserves a numeric value with its unit.
type Length struct {
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
}

// ToMM converts the length to millimeters. Unit-less values are taken as mm.
func (l Length) ToMM() float64 {
	switch l.Unit {
	case UnitCM:
		return l.Value * 10
	case UnitIN:
		return l.Value * 25.4
	case UnitPT:
		return l.Value * PtToMm
	default:
		return l.Value
	}
}

// ToPT converts the length to points.
func (l Length) ToPT() float64 { return l.ToMM() * MmToPt }

// ParseLength parses strings such as "20mm", "0.75in" or "12pt".
// A bare number keeps UnitNone; ok is false when the numeric part is invalid.
func ParseLength(value string) (Length, bool) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return Length{}, false
	}
	unit := UnitNone
	for _, suf := range []struct {
		s string
		u Unit
	}{{"mm", UnitMM}, {"cm", UnitCM}, {"in", UnitIN}, {"pt", UnitPT}} {
		if strings.HasSuffix(v, suf.s) {
			unit = suf.u
			v = strings.TrimSpace(strings.TrimSuffix(v, suf.s))
			break
		}
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return Length{}, false
	}
	return Length{Value: f, Unit: unit}, true
}

// LineHeightSpec 描述行高：倍数（相对字号）或绝对长度。
type LineHeightSpec struct {
	Factor float64 `json:"factor,omitempty"`
	Len    Length  `json:"len,omitempty"`
}

// defaultLineHeight 约等于 jsPDF 中 fontSize*0.4mm 的行距。
var defaultLineHeight = LineHeightSpec{Factor: 1.15}

// Advance returns the vertical advance in mm for one line set at sizePt.
func (s LineHeightSpec) Advance(sizePt float64) float64 {
	if !s.Len.IsZero() {
		return s.Len.ToMM()
	}
	factor := s.Factor
	if factor <= 0 {
		factor = defaultLineHeight.Factor
	}
	return sizePt * PtToMm * factor
}

// IsZero reports whether the length carries no value.
func (l Length) IsZero() bool { return l.Value == 0 }
