// Package cli implements the cv-builder command-line interface.
package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/Mo-Ibra/cv-builder/config"
	"github.com/Mo-Ibra/cv-builder/export"
	"github.com/Mo-Ibra/cv-builder/renderer"
)

// Version is overridden at build time with -ldflags.
var Version = "dev"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config config.Config

	configPath string
	verbose    bool
}

// New creates a CLI with a default logger writing to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "cv-builder",
		Short:         "cv-builder lays out resumes and exports them as PDF",
		Long:          `cv-builder turns a resume (editor JSON or .cv text) into a paginated PDF using one of six built-in templates.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig()
		},
	}

	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "config file (default ./"+config.DefaultFile+" if present)")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.renderAllCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.templatesCommand())
	root.AddCommand(c.checkCommand())
	root.AddCommand(c.convertCommand())

	return root
}

// loadConfig 读取配置并据此调整日志级别；--verbose 优先。
func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = LogInfo
	}
	if c.verbose {
		level = LogDebug
	}
	c.SetLogLevel(level)
	c.Logger.Debug("config loaded", "template", cfg.Template, "format", cfg.Format, "page", cfg.PageSize, "margin", cfg.Margin)
	return nil
}

// newExporter builds an Exporter from the loaded config. format may be empty.
func (c *CLI) newExporter(format string, page int) (*export.Exporter, error) {
	geo, err := c.Config.Geometry()
	if err != nil {
		return nil, err
	}
	f := c.Config.OutputFormat()
	if format != "" {
		var ok bool
		if f, ok = renderer.ParseFormat(format); !ok {
			return nil, fmt.Errorf("invalid format: %s (must be 'pdf' or 'png')", format)
		}
	}
	return export.New(export.Options{
		Format:      f,
		Geometry:    geo,
		Resolution:  c.Config.Resolution,
		Page:        page,
		Concurrency: c.Config.Concurrency,
		Logger:      c.Logger,
	}), nil
}

// firstNonEmpty returns the first argument that is not blank.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
