package layout

// 该文件定义布局结果，供渲染器、导出器与调试 JSON 共用。所有坐标单位为 mm，
// 原点位于页面左上角；字号单位为 pt。

// Result 保存一次渲染得到的页面序列。
type Result struct {
	Template string       `json:"template"`
	Pages    []Page       `json:"pages"`
	Meta     DocumentMeta `json:"meta"`
	// Notices 记录被就地恢复的问题（日期格式、头像解码、未知模板）。
	Notices []*Error `json:"notices,omitempty"`
}

// Page 是固定尺寸画布上的有序绘制指令，关闭后不再修改。
type Page struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Margin float64 `json:"margin"`
	Ops    []Op    `json:"ops"`
}

// OpKind 区分绘制指令类型。
type OpKind string

const (
	OpText   OpKind = "text"
	OpLine   OpKind = "line"
	OpImage  OpKind = "image"
	OpCircle OpKind = "circle"
)

// Op 是单条绘制指令，Y 为该指令占用区域的顶部，按页内顺序单调不减。
type Op struct {
	Kind   OpKind    `json:"kind"`
	Y      float64   `json:"y"`
	Text   *TextRun  `json:"text,omitempty"`
	Line   *Line     `json:"line,omitempty"`
	Image  *ImageBox `json:"image,omitempty"`
	Circle *Circle   `json:"circle,omitempty"`
}

// TextRun 表示一行已定位的文本。X/Width 描述所在的水平区域，对齐在区域内完成。
type TextRun struct {
	Content  string  `json:"content"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Font     Font    `json:"font"`
	FontSize float64 `json:"fontSize"`
	Color    Color   `json:"color"`
	Align    Align   `json:"align,omitempty"`
}

// Line 表示一条线段。
type Line struct {
	X1    float64 `json:"x1"`
	Y1    float64 `json:"y1"`
	X2    float64 `json:"x2"`
	Y2    float64 `json:"y2"`
	Color Color   `json:"color"`
	Width float64 `json:"width"`
}

// ImageBox 描述头像位置。Data 为调用方提供的原始字节，原样交给渲染器。
type ImageBox struct {
	X      float64    `json:"x"`
	Y      float64    `json:"y"`
	Width  float64    `json:"width"`
	Height float64    `json:"height"`
	Format string     `json:"format"`
	Shape  PhotoShape `json:"shape"`
	Data   []byte     `json:"-"`
}

// Circle 表示一个圆环，用于圆形头像的描边。
type Circle struct {
	CX          float64 `json:"cx"`
	CY          float64 `json:"cy"`
	R           float64 `json:"r"`
	StrokeColor Color   `json:"strokeColor"`
	StrokeWidth float64 `json:"strokeWidth"`
}

// Color 采用 0-255 的 RGB 数值。
type Color struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// DocumentMeta 保存 PDF 元信息。
type DocumentMeta struct {
	Title    string   `json:"title"`
	Author   string   `json:"author"`
	Subject  string   `json:"subject"`
	Creator  string   `json:"creator"`
	Keywords []string `json:"keywords"`
}
