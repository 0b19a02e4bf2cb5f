package layout

import (
	"strings"
	"unicode"
)

// Measurer 返回文本在给定字体与字号（pt）下的宽度（mm）。
// 渲染器可基于真实字体度量实现它；未提供时使用 EstimateMeasurer。
type Measurer interface {
	TextWidth(text string, font Font, sizePt float64) float64
}

// EstimateMeasurer 按字符类别估算宽度，不依赖字体文件，结果完全确定。
type EstimateMeasurer struct{}

var _ Measurer = EstimateMeasurer{}

// TextWidth implements Measurer.
func (EstimateMeasurer) TextWidth(text string, font Font, sizePt float64) float64 {
	if sizePt <= 0 {
		sizePt = 10
	}
	em := 0.0
	for _, r := range text {
		em += runeEm(r, font.Family == FamilyMono)
	}
	if font.Bold {
		em *= 1.06
	}
	return em * sizePt * PtToMm
}

func runeEm(r rune, mono bool) float64 {
	if mono {
		return 0.6
	}
	switch {
	case strings.ContainsRune("iIjl.,;:'|!`", r):
		return 0.28
	case unicode.IsSpace(r):
		return 0.28
	case strings.ContainsRune("fIrt()[]-", r):
		return 0.36
	case strings.ContainsRune("mwMW@", r):
		return 0.86
	case unicode.IsUpper(r):
		return 0.67
	case unicode.IsDigit(r):
		return 0.55
	case unicode.IsLower(r):
		return 0.5
	default:
		return 0.6
	}
}

// MeasureWrap 贪心折行：按空白切词，尽量把词放进当前行；单个超宽的词独占一行，
// 不做拆分，因此不会丢失字符。任意空白都视为分词点，所以把结果用单个空格
// 重新拼接后再次折行会得到相同的行序列。
func MeasureWrap(m Measurer, text string, maxWidth float64, font Font, sizePt float64) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	if m == nil {
		m = EstimateMeasurer{}
	}
	lines := make([]string, 0, 1)
	line := words[0]
	for _, w := range words[1:] {
		candidate := line + " " + w
		if maxWidth > 0 && m.TextWidth(candidate, font, sizePt) > maxWidth {
			lines = append(lines, line)
			line = w
			continue
		}
		line = candidate
	}
	return append(lines, line)
}
