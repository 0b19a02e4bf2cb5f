package layout

// 样式策略：每个模板一份只读数据，渲染函数只读取字段，不比较模板名称。

// Align 水平对齐方式。
type Align string

const (
	AlignStart  Align = "start"
	AlignCenter Align = "center"
	AlignEnd    Align = "end"
)

// FontFamily 选择字体族，由渲染器映射到实际字体文件。
type FontFamily string

const (
	FamilySans  FontFamily = "sans"
	FamilySerif FontFamily = "serif"
	FamilyMono  FontFamily = "mono"
)

// Font 是字体族加字重/斜体。
type Font struct {
	Family FontFamily `json:"family"`
	Bold   bool       `json:"bold,omitempty"`
	Italic bool       `json:"italic,omitempty"`
}

// PhotoShape 头像形状。
type PhotoShape string

const (
	PhotoNone   PhotoShape = ""
	PhotoCircle PhotoShape = "circle"
	PhotoSquare PhotoShape = "square"
)

// PhotoPlacement 头像相对姓名的位置。
type PhotoPlacement string

const (
	PlaceNone     PhotoPlacement = ""
	PlaceLeading  PhotoPlacement = "leading"
	PlaceTrailing PhotoPlacement = "trailing"
)

// ContactLayout 联系方式排成一行（以分隔符连接）或逐行排列。
type ContactLayout int

const (
	ContactJoined ContactLayout = iota
	ContactStacked
)

// EntryLayout 决定经历条目的标题行形式。
type EntryLayout int

const (
	// EntryStacked: 职位一行，公司与右对齐的时间段一行。
	EntryStacked EntryLayout = iota
	// EntryInline: "职位 @ 公司" 一行，时间段另起一行。
	EntryInline
)

// SkillsLayout 技能列表的排布。
type SkillsLayout int

const (
	SkillsJoined SkillsLayout = iota
	SkillsBulleted
)

// TextStyle 描述一类文本的字号（pt）、字重与颜色。字体族取自策略。
type TextStyle struct {
	Size   float64
	Bold   bool
	Italic bool
	Color  Color
}

// Rule 分隔线。Thickness <= 0 表示不画。
type Rule struct {
	Thickness float64
	Color     Color
}

// PhotoSlot 头像槽位。
type PhotoSlot struct {
	Shape     PhotoShape
	Placement PhotoPlacement
	Size      float64 // mm，正方形边长
	Gap       float64 // 头像与文字之间的水平间距
	Ring      Rule    // 圆形头像的描边
}

// Enabled reports whether this slot renders a photo at all.
func (s PhotoSlot) Enabled() bool {
	return s.Shape != PhotoNone && s.Placement != PlaceNone && s.Size > 0
}

// ContactLabels 各联系方式的前缀标签，例如 "Email: "。
type ContactLabels struct {
	Email    string
	Phone    string
	Location string
}

// HeaderStyle 控制页眉：头像、姓名、联系方式与分隔线。
type HeaderStyle struct {
	Preamble      string
	PreambleStyle TextStyle
	Name          TextStyle
	UppercaseName bool
	NameGap       float64
	Align         Align
	Contact       TextStyle
	ContactLayout ContactLayout
	ContactLabels ContactLabels
	ContactPrefix string
	Separator     string
	ContactGap    float64
	Rule          Rule
	RuleGap       float64
	Photo         PhotoSlot
}

// SectionStyle 是各正文区块共享的标题与正文设置。
type SectionStyle struct {
	Title      string
	TitleStyle TextStyle
	TitleAlign Align
	TitleGap   float64
	Body       TextStyle
	After      float64 // 区块结束后的留白
}

// ExperienceStyle 工作经历区块。
type ExperienceStyle struct {
	SectionStyle
	Layout       EntryLayout
	EntryTitle   TextStyle
	Meta         TextStyle
	PeriodPrefix string
	Indent       float64 // 描述文本的缩进
	Reserve      float64 // 每个条目标题前预留的高度
	EntryGap     float64
}

// EducationStyle 教育经历区块。
type EducationStyle struct {
	SectionStyle
	Layout        EntryLayout
	Degree        TextStyle
	Meta          TextStyle
	YearSeparator string
	Reserve       float64
	EntryGap      float64
}

// SkillsStyle 技能区块。
type SkillsStyle struct {
	SectionStyle
	Layout     SkillsLayout
	Separator  string
	Bullet     string
	BreakEvery int     // 每隔多少行检查一次分页，<=0 时取 10
	Reserve    float64 // 分页检查时预留的高度
}

// StylePolicy 是一个模板的全部视觉参数，构建后只读，可在并发渲染间共享。
type StylePolicy struct {
	Family         FontFamily
	LineHeight     LineHeightSpec
	SectionReserve float64 // 区块标题前预留的高度，避免标题落在页底
	Header         HeaderStyle
	Summary        SectionStyle
	Experience     ExperienceStyle
	Education      EducationStyle
	Skills         SkillsStyle
	// ArtifactSuffix 导出文件名后缀，例如 "CV" -> Jane_Doe_CV.pdf。
	ArtifactSuffix string
}

func (p *StylePolicy) font(st TextStyle) Font {
	return Font{Family: p.Family, Bold: st.Bold, Italic: st.Italic}
}

func (p *StylePolicy) advance(st TextStyle) float64 {
	return p.LineHeight.Advance(st.Size)
}

func (p *StylePolicy) skillBreakEvery() int {
	if p.Skills.BreakEvery <= 0 {
		return 10
	}
	return p.Skills.BreakEvery
}
