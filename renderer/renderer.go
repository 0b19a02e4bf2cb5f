package renderer

import (
	"context"

	"github.com/Mo-Ibra/cv-builder/layout"
)

// Renderer 将布局结果输出为最终文件，例如 PDF 或图像。
// Render 返回生成的二进制数据（例如 PDF 字节切片）以及可能的错误；
// 失败时错误的种类为 layout.KindSerialization。
type Renderer interface {
	Render(ctx context.Context, result *layout.Result) ([]byte, error)
}

// Format 是导出产物的格式。
type Format string

const (
	FormatPDF Format = "pdf"
	FormatPNG Format = "png"
)

// Ext returns the file extension without a dot.
func (f Format) Ext() string {
	if f == "" {
		return string(FormatPDF)
	}
	return string(f)
}

// ParseFormat accepts "pdf" or "png" (case-sensitive, as written in config).
func ParseFormat(s string) (Format, bool) {
	switch Format(s) {
	case FormatPDF, "":
		return FormatPDF, true
	case FormatPNG:
		return FormatPNG, true
	default:
		return "", false
	}
}
