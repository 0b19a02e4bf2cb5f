package canvasrenderer

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"
	"github.com/tdewolff/canvas/renderers/rasterizer"
	_ "golang.org/x/image/webp"

	"github.com/Mo-Ibra/cv-builder/fonts"
	"github.com/Mo-Ibra/cv-builder/layout"
	"github.com/Mo-Ibra/cv-builder/renderer"
)

// defaultResolution PNG 预览的分辨率（点/毫米），约 150 DPI。
const defaultResolution = 6.0

// Renderer draws layout results via github.com/tdewolff/canvas.
// 一个 Renderer 可被多个 goroutine 同时使用；字体族在首次使用时加载并缓存。
type Renderer struct {
	format     renderer.Format
	resolution float64
	page       int
	logger     *log.Logger

	fontMu   sync.Mutex
	families map[layout.FontFamily]*canvas.FontFamily
}

var (
	_ renderer.Renderer = (*Renderer)(nil)
	_ layout.Measurer   = (*Renderer)(nil)
)

// Options configures the canvas renderer.
type Options struct {
	Format renderer.Format
	// Resolution 仅用于 PNG，单位为点/毫米。
	Resolution float64
	// Page 是 PNG 预览输出的页码（从 0 开始）；PDF 总是输出全部页面。
	Page   int
	Logger *log.Logger
}

// NewRenderer creates a PDF renderer.
func NewRenderer() *Renderer { return NewRendererWithOptions(Options{Format: renderer.FormatPDF}) }

// NewRendererWithOptions creates a renderer for the requested format.
func NewRendererWithOptions(opts Options) *Renderer {
	if opts.Format == "" {
		opts.Format = renderer.FormatPDF
	}
	if opts.Resolution <= 0 {
		opts.Resolution = defaultResolution
	}
	if opts.Page < 0 {
		opts.Page = 0
	}
	return &Renderer{
		format:     opts.Format,
		resolution: opts.Resolution,
		page:       opts.Page,
		logger:     opts.Logger,
		families:   map[layout.FontFamily]*canvas.FontFamily{},
	}
}

// Format reports the artifact format this renderer produces.
func (r *Renderer) Format() renderer.Format { return r.format }

// Render 将布局结果编码为 PDF 或 PNG。任何失败都以 SerializationFailure 返回，
// 不会产生部分输出。
func (r *Renderer) Render(ctx context.Context, result *layout.Result) (out []byte, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			out, err = nil, layout.NewError(layout.KindSerialization, "渲染时发生异常: %v", rec)
		}
	}()
	if result == nil {
		return nil, layout.NewError(layout.KindSerialization, "渲染结果为空")
	}
	if len(result.Pages) == 0 {
		return nil, layout.NewError(layout.KindSerialization, "缺少可渲染的页面")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	switch r.format {
	case renderer.FormatPNG:
		out, err = r.renderPNG(ctx, result)
	case renderer.FormatPDF:
		out, err = r.renderPDF(ctx, result)
	default:
		return nil, layout.NewError(layout.KindSerialization, "不支持的输出格式 %q", r.format)
	}
	if err != nil {
		return nil, layout.AsSerialization(err, "生成 %s 失败", r.format)
	}
	return out, nil
}

func (r *Renderer) renderPDF(ctx context.Context, result *layout.Result) ([]byte, error) {
	var buf bytes.Buffer
	writer := pdf.New(&buf, result.Pages[0].Width, result.Pages[0].Height, nil)
	r.applyMeta(writer, result.Meta)
	for i, page := range result.Pages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if i > 0 {
			writer.NewPage(page.Width, page.Height)
		}
		c := canvas.New(page.Width, page.Height)
		cctx := canvas.NewContext(c)
		cctx.SetCoordSystem(canvas.CartesianIV) // 使坐标与布局保持左上角为原点

		if err := r.drawPage(cctx, page); err != nil {
			return nil, fmt.Errorf("绘制第 %d 页失败: %w", i+1, err)
		}
		c.RenderTo(writer)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) renderPNG(ctx context.Context, result *layout.Result) ([]byte, error) {
	idx := r.page
	if idx >= len(result.Pages) {
		idx = len(result.Pages) - 1
	}
	page := result.Pages[idx]

	c := canvas.New(page.Width, page.Height)
	cctx := canvas.NewContext(c)
	cctx.SetCoordSystem(canvas.CartesianIV)
	cctx.SetFillColor(canvas.White)
	cctx.DrawPath(0, 0, canvas.Rectangle(page.Width, page.Height))
	if err := r.drawPage(cctx, page); err != nil {
		return nil, fmt.Errorf("绘制第 %d 页失败: %w", idx+1, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img := rasterizer.Draw(c, canvas.DPMM(r.resolution), canvas.DefaultColorSpace)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("编码 PNG 失败: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) applyMeta(writer *pdf.PDF, meta layout.DocumentMeta) {
	if writer == nil {
		return
	}
	keywords := strings.Join(meta.Keywords, ", ")
	writer.SetInfo(meta.Title, meta.Subject, keywords, meta.Author, meta.Creator)
}

// drawPage 按指令顺序绘制，保持布局给出的叠放次序。
func (r *Renderer) drawPage(ctx *canvas.Context, page layout.Page) error {
	for _, op := range page.Ops {
		var err error
		switch op.Kind {
		case layout.OpText:
			err = r.drawText(ctx, op.Text)
		case layout.OpLine:
			r.drawLine(ctx, op.Line)
		case layout.OpImage:
			r.drawImage(ctx, op.Image)
		case layout.OpCircle:
			r.drawCircle(ctx, op.Circle)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) drawText(ctx *canvas.Context, run *layout.TextRun) error {
	if run == nil || run.Content == "" {
		return nil
	}
	face, err := r.fontFace(run.Font, run.FontSize, run.Color)
	if err != nil {
		return err
	}

	// 处理水平对齐：start（默认）/center/end。
	var textAlign canvas.TextAlign
	var anchorX float64
	switch run.Align {
	case layout.AlignCenter:
		textAlign = canvas.Center
		anchorX = run.X + run.Width/2
	case layout.AlignEnd:
		textAlign = canvas.Right
		anchorX = run.X + run.Width
	default:
		textAlign = canvas.Left
		anchorX = run.X
	}

	// 基线位置：以行顶部加上字体上升部（Ascent，mm）
	baseline := run.Y + face.Metrics().Ascent
	ctx.DrawText(anchorX, baseline, canvas.NewTextLine(face, run.Content, textAlign))
	return nil
}

// drawLine 绘制直线（毫米单位）
func (r *Renderer) drawLine(ctx *canvas.Context, ln *layout.Line) {
	if ln == nil || ln.Width <= 0 {
		return
	}
	ctx.SetFillColor(color.RGBA{0, 0, 0, 0})
	ctx.SetStrokeColor(colorFromLayout(ln.Color))
	ctx.SetStrokeWidth(ln.Width)
	p := &canvas.Path{}
	p.MoveTo(0, 0)
	p.LineTo(ln.X2-ln.X1, ln.Y2-ln.Y1)
	ctx.DrawPath(ln.X1, ln.Y1, p)
}

// drawCircle 绘制圆环
func (r *Renderer) drawCircle(ctx *canvas.Context, c *layout.Circle) {
	if c == nil || c.StrokeWidth <= 0 {
		return
	}
	ctx.SetFillColor(color.RGBA{0, 0, 0, 0})
	ctx.SetStrokeColor(colorFromLayout(c.StrokeColor))
	ctx.SetStrokeWidth(c.StrokeWidth)
	ctx.DrawPath(c.CX, c.CY, canvas.Circle(c.R))
}

// drawImage 绘制头像。布局阶段只校验了图片头部；完整解码失败时跳过该图片。
func (r *Renderer) drawImage(ctx *canvas.Context, box *layout.ImageBox) {
	if box == nil || len(box.Data) == 0 || box.Width <= 0 {
		return
	}
	img, _, err := image.Decode(bytes.NewReader(box.Data))
	if err != nil {
		if r.logger != nil {
			r.logger.Warn("头像解码失败，已跳过", "kind", layout.KindImageDecode, "err", err)
		}
		return
	}
	img = cropSquare(img)
	if box.Shape == layout.PhotoCircle {
		img = clipCircle(img)
	}
	dpmm := float64(img.Bounds().Dx()) / box.Width
	if dpmm <= 0 {
		dpmm = 1
	}
	ctx.DrawImage(box.X, box.Y, img, canvas.DPMM(dpmm))
}

// cropSquare 取图片中央的正方形区域。
func cropSquare(img image.Image) image.Image {
	b := img.Bounds()
	side := min(b.Dx(), b.Dy())
	if b.Dx() == b.Dy() {
		return img
	}
	x0 := b.Min.X + (b.Dx()-side)/2
	y0 := b.Min.Y + (b.Dy()-side)/2
	dst := image.NewNRGBA(image.Rect(0, 0, side, side))
	draw.Draw(dst, dst.Bounds(), img, image.Pt(x0, y0), draw.Src)
	return dst
}

// clipCircle 把圆外的像素置为透明。
func clipCircle(img image.Image) image.Image {
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	mask := &circleMask{r: float64(b.Dx()) / 2, size: b.Dx()}
	draw.DrawMask(dst, dst.Bounds(), img, b.Min, mask, image.Point{}, draw.Over)
	return dst
}

type circleMask struct {
	r    float64
	size int
}

func (m *circleMask) ColorModel() color.Model { return color.AlphaModel }

func (m *circleMask) Bounds() image.Rectangle { return image.Rect(0, 0, m.size, m.size) }

func (m *circleMask) At(x, y int) color.Color {
	dx, dy := float64(x)+0.5-m.r, float64(y)+0.5-m.r
	if dx*dx+dy*dy <= m.r*m.r {
		return color.Alpha{A: 255}
	}
	return color.Alpha{}
}

// TextWidth 实现 layout.Measurer，使用真实字体度量（mm）。字体无法加载时退回估算。
func (r *Renderer) TextWidth(text string, font layout.Font, sizePt float64) float64 {
	face, err := r.fontFace(font, sizePt, layout.Color{})
	if err != nil {
		return layout.EstimateMeasurer{}.TextWidth(text, font, sizePt)
	}
	return face.TextWidth(text)
}

func (r *Renderer) fontFace(font layout.Font, sizePt float64, col layout.Color) (*canvas.FontFace, error) {
	family, err := r.ensureFontFamily(font.Family)
	if err != nil {
		return nil, err
	}
	if sizePt <= 0 {
		sizePt = 10
	}
	return family.Face(sizePt, colorFromLayout(col), fontStyle(font.Bold, font.Italic), canvas.FontNormal), nil
}

func (r *Renderer) ensureFontFamily(name layout.FontFamily) (*canvas.FontFamily, error) {
	if name == "" {
		name = layout.FamilySans
	}
	r.fontMu.Lock()
	defer r.fontMu.Unlock()

	if family, ok := r.families[name]; ok {
		return family, nil
	}
	family := canvas.NewFontFamily("cv-" + string(name))
	for _, v := range []fonts.Variant{{}, {Bold: true}, {Italic: true}, {Bold: true, Italic: true}} {
		data, err := fonts.Load(string(name), v)
		if err != nil {
			return nil, err
		}
		if err := family.LoadFont(data, 0, fontStyle(v.Bold, v.Italic)); err != nil {
			return nil, fmt.Errorf("加载字体 %s 失败: %w", name, err)
		}
	}
	r.families[name] = family
	return family, nil
}

func fontStyle(bold, italic bool) canvas.FontStyle {
	style := canvas.FontRegular
	if bold {
		style = canvas.FontBold
	}
	if italic {
		style |= canvas.FontItalic
	}
	return style
}

func colorFromLayout(c layout.Color) color.Color {
	return canvas.RGBA(float64(c.R)/255.0, float64(c.G)/255.0, float64(c.B)/255.0, 1.0)
}
