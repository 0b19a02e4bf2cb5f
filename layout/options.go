package layout

import (
	"github.com/charmbracelet/log"
)

// Options 配置一次排版所需的依赖。零值可用：A4、20mm 边距、估算度量、内置模板。
type Options struct {
	Geometry Geometry
	Measurer Measurer
	Registry *Registry
	// Logger 接收局部恢复的问题（无法解析的日期、损坏的头像）。为 nil 时不输出日志。
	Logger *log.Logger
}

func (o Options) withDefaults() Options {
	if !o.Geometry.valid() {
		o.Geometry = DefaultGeometry()
	}
	if o.Measurer == nil {
		o.Measurer = EstimateMeasurer{}
	}
	if o.Registry == nil {
		o.Registry = DefaultRegistry()
	}
	return o
}
