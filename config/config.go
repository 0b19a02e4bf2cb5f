// Package config loads cv-builder settings from a TOML file, a .env file and
// CVB_* environment variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/Mo-Ibra/cv-builder/layout"
	"github.com/Mo-Ibra/cv-builder/renderer"
)

// DefaultFile is looked up in the working directory when no path is given.
const DefaultFile = "cv-builder.toml"

// EnvPrefix prefixes every environment override.
const EnvPrefix = "CVB_"

// Config holds user-level defaults for the CLI.
type Config struct {
	Template    string            `toml:"template"`
	Format      string            `toml:"format" validate:"omitempty,oneof=pdf png"`
	OutDir      string            `toml:"out_dir"`
	Pattern     string            `toml:"pattern"`
	PageSize    string            `toml:"page_size" validate:"omitempty,pagesize"`
	Margin      string            `toml:"margin" validate:"omitempty,length"`
	Resolution  float64           `toml:"resolution" validate:"gte=0,lte=50"`
	Concurrency int               `toml:"concurrency" validate:"gte=0,lte=64"`
	LogLevel    string            `toml:"log_level" validate:"omitempty,oneof=debug info warn error"`
	Vars        map[string]string `toml:"vars"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Template:   layout.DefaultTemplateID,
		Format:     string(renderer.FormatPDF),
		OutDir:     ".",
		PageSize:   layout.A4.Name,
		Margin:     "20mm",
		Resolution: 6,
		LogLevel:   "info",
	}
}

// Lookup reads one environment variable.
type Lookup func(key string) (string, bool)

// Load 依次应用默认值、TOML 文件、.env 与环境变量，然后校验结果。
// path 为空时尝试读取当前目录下的 cv-builder.toml，文件不存在不算错误；
// 显式给出的 path 必须存在。
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("读取 .env 失败: %w", err)
	}
	return LoadWith(path, os.LookupEnv)
}

// LoadWith is Load with an explicit environment, for tests.
func LoadWith(path string, env Lookup) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("读取配置 %s 失败: %w", path, err)
		}
	}
	if keys := md.Undecoded(); len(keys) > 0 {
		return Config{}, fmt.Errorf("配置 %s 包含未知字段 %v", path, keys)
	}
	if err := cfg.applyEnv(env); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(env Lookup) error {
	if env == nil {
		return nil
	}
	str := map[string]*string{
		"TEMPLATE":  &c.Template,
		"FORMAT":    &c.Format,
		"OUT_DIR":   &c.OutDir,
		"PATTERN":   &c.Pattern,
		"PAGE_SIZE": &c.PageSize,
		"MARGIN":    &c.Margin,
		"LOG_LEVEL": &c.LogLevel,
	}
	for key, dst := range str {
		if v, ok := env(EnvPrefix + key); ok {
			*dst = strings.TrimSpace(v)
		}
	}
	if v, ok := env(EnvPrefix + "RESOLUTION"); ok {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fmt.Errorf("%sRESOLUTION 不是数字: %q", EnvPrefix, v)
		}
		c.Resolution = f
	}
	if v, ok := env(EnvPrefix + "CONCURRENCY"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%sCONCURRENCY 不是整数: %q", EnvPrefix, v)
		}
		c.Concurrency = n
	}
	return nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("pagesize", func(fl validator.FieldLevel) bool {
		_, ok := layout.PageSizeByName(fl.Field().String())
		return ok
	})
	_ = v.RegisterValidation("length", func(fl validator.FieldLevel) bool {
		l, ok := layout.ParseLength(fl.Field().String())
		return ok && l.Value >= 0
	})
	return v
}

// Validate checks field ranges and enumerations.
func (c Config) Validate() error {
	err := validate.Struct(c)
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s=%v 不满足 %s", fe.Field(), fe.Value(), fe.Tag()))
	}
	return fmt.Errorf("配置无效: %s", strings.Join(msgs, "; "))
}

// Geometry resolves page size and margin.
func (c Config) Geometry() (layout.Geometry, error) {
	geo := layout.DefaultGeometry()
	if c.PageSize != "" {
		size, ok := layout.PageSizeByName(c.PageSize)
		if !ok {
			return geo, fmt.Errorf("未知纸张尺寸 %q", c.PageSize)
		}
		geo.Size = size
	}
	if c.Margin != "" {
		l, ok := layout.ParseLength(c.Margin)
		if !ok {
			return geo, fmt.Errorf("无效页边距 %q", c.Margin)
		}
		geo.Margin = l.ToMM()
	}
	if 2*geo.Margin >= geo.Size.Width || 2*geo.Margin >= geo.Size.Height {
		return geo, fmt.Errorf("页边距 %gmm 超过纸张尺寸", geo.Margin)
	}
	return geo, nil
}

// OutputFormat returns the configured renderer format.
func (c Config) OutputFormat() renderer.Format {
	f, ok := renderer.ParseFormat(c.Format)
	if !ok {
		return renderer.FormatPDF
	}
	return f
}

// TemplateVars exposes Vars in the shape binding.Interpolate expects.
func (c Config) TemplateVars() map[string]any {
	out := make(map[string]any, len(c.Vars))
	for k, v := range c.Vars {
		out[k] = v
	}
	return out
}
