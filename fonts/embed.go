package fonts

import (
	"fmt"
	"strings"

	"github.com/go-fonts/latin-modern/lmroman10bold"
	"github.com/go-fonts/latin-modern/lmroman10bolditalic"
	"github.com/go-fonts/latin-modern/lmroman10italic"
	"github.com/go-fonts/latin-modern/lmroman10regular"
	"github.com/go-fonts/latin-modern/lmsans10bold"
	"github.com/go-fonts/latin-modern/lmsans10boldoblique"
	"github.com/go-fonts/latin-modern/lmsans10oblique"
	"github.com/go-fonts/latin-modern/lmsans10regular"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
)

// 内置字体：sans / serif 为 Latin Modern，mono 为 Go Mono，各含常规、粗体、斜体、粗斜体。
// 字体数据随二进制一起编译，渲染不依赖系统字体。
// Latin Modern Mono 只有 LT 粗体，其 CFF 轮廓无法被 PDF 子集化，因此等宽字体族整体使用 Go Mono。

// Variant 选择字体族内的字重与斜体。
type Variant struct {
	Bold   bool
	Italic bool
}

var families = map[string][4][]byte{
	// 顺序：regular, bold, italic, bold italic
	"sans":  {lmsans10regular.TTF, lmsans10bold.TTF, lmsans10oblique.TTF, lmsans10boldoblique.TTF},
	"serif": {lmroman10regular.TTF, lmroman10bold.TTF, lmroman10italic.TTF, lmroman10bolditalic.TTF},
	"mono":  {gomono.TTF, gomonobold.TTF, gomonoitalic.TTF, gomonobolditalic.TTF},
}

func (v Variant) index() int {
	i := 0
	if v.Bold {
		i |= 1
	}
	if v.Italic {
		i |= 2
	}
	return i
}

// Load 返回内置字体的字节数据。family 为 "sans"、"serif" 或 "mono"，空值按 "sans" 处理。
func Load(family string, v Variant) ([]byte, error) {
	name := strings.ToLower(strings.TrimSpace(family))
	if name == "" {
		name = "sans"
	}
	set, ok := families[name]
	if !ok {
		return nil, fmt.Errorf("没有内置字体族 %s", family)
	}
	data := set[v.index()]
	if len(data) == 0 {
		return nil, fmt.Errorf("内置字体 %s 缺少数据", family)
	}
	return data, nil
}

// Families lists the built-in family names.
func Families() []string {
	return []string{"sans", "serif", "mono"}
}
