package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Mo-Ibra/cv-builder/export"
	"github.com/Mo-Ibra/cv-builder/layout"
	"github.com/Mo-Ibra/cv-builder/renderer"
)

// renderOpts holds the command-line flags shared by render, render-all and preview.
type renderOpts struct {
	template  string   // template id; falls back to the file's template, then config
	templates []string // render-all: template ids, empty means every template
	outDir    string   // output directory
	pattern   string   // output name pattern, e.g. "${name}_${template}.${ext}"
	format    string   // pdf or png
	page      int      // preview: 1-based page number
	vars      []string // --var key=value assignments for .cv files
	debugJSON string   // write the layout result as JSON
}

func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a resume (.json or .cv) with one template",
		Long: `Render lays out a resume and writes the artifact to the output directory.

The default file name is <Full_Name>_CV.pdf (technical-resume uses
<Full_Name>_Technical_Resume.pdf). Pass "-" to read editor JSON from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), cmd, args[0], opts)
		},
	}

	addOutputFlags(cmd, &opts)
	cmd.Flags().StringVarP(&opts.template, "template", "t", "", "template id (see `cv-builder templates`)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: pdf (default), png")
	cmd.Flags().StringVar(&opts.debugJSON, "debug-json", "", "write the computed layout as JSON to this path")

	return cmd
}

func (c *CLI) renderAllCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render-all [file]",
		Short: "Render a resume with every template concurrently",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRenderAll(cmd.Context(), cmd, args[0], opts)
		},
	}

	addOutputFlags(cmd, &opts)
	cmd.Flags().StringSliceVarP(&opts.templates, "templates", "t", nil, "template ids (comma-separated, default all)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: pdf (default), png")

	return cmd
}

func (c *CLI) previewCommand() *cobra.Command {
	opts := renderOpts{page: 1}

	cmd := &cobra.Command{
		Use:   "preview [file]",
		Short: "Render one page of a resume as PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.page < 1 {
				return fmt.Errorf("--page must be >= 1, got %d", opts.page)
			}
			opts.format = string(renderer.FormatPNG)
			return c.runRender(cmd.Context(), cmd, args[0], opts)
		},
	}

	addOutputFlags(cmd, &opts)
	cmd.Flags().StringVarP(&opts.template, "template", "t", "", "template id")
	cmd.Flags().IntVarP(&opts.page, "page", "p", opts.page, "page to preview (1-based)")

	return cmd
}

func addOutputFlags(cmd *cobra.Command, opts *renderOpts) {
	cmd.Flags().StringVarP(&opts.outDir, "out-dir", "o", "", "output directory (default from config)")
	cmd.Flags().StringVar(&opts.pattern, "pattern", "", "output file name pattern using ${file}, ${name}, ${template}, ${suffix}, ${ext}")
	cmd.Flags().StringArrayVar(&opts.vars, "var", nil, "variable for ${...} placeholders in .cv files (key=value, repeatable)")
}

func (c *CLI) runRender(ctx context.Context, cmd *cobra.Command, path string, opts renderOpts) error {
	vars, err := c.templateVars(opts.vars)
	if err != nil {
		return err
	}
	in, err := loadInput(path, cmd.InOrStdin(), vars)
	if err != nil {
		return err
	}
	page := opts.page - 1
	if page < 0 {
		page = 0
	}
	exp, err := c.newExporter(opts.format, page)
	if err != nil {
		return err
	}

	templateID := firstNonEmpty(opts.template, in.Template, c.Config.Template)
	outDir := firstNonEmpty(opts.outDir, c.Config.OutDir, ".")
	pattern := firstNonEmpty(opts.pattern, c.Config.Pattern)
	c.Logger.Debug("rendering", "input", path, "template", templateID, "dir", outDir)

	out, art, err := exp.WriteFile(ctx, outDir, pattern, in.Record, templateID)
	if err != nil {
		return err
	}
	if opts.debugJSON != "" {
		if err := writeDebug(art.Layout, opts.debugJSON); err != nil {
			return err
		}
		c.Logger.Debug("layout written", "file", opts.debugJSON)
	}

	printSuccess(cmd.OutOrStdout(), "%s %s", out, StyleDim.Render(fmt.Sprintf("(%s, %d %s)", art.Template, art.Pages, plural(art.Pages, "page"))))
	return nil
}

func (c *CLI) runRenderAll(ctx context.Context, cmd *cobra.Command, path string, opts renderOpts) error {
	vars, err := c.templateVars(opts.vars)
	if err != nil {
		return err
	}
	in, err := loadInput(path, cmd.InOrStdin(), vars)
	if err != nil {
		return err
	}
	exp, err := c.newExporter(opts.format, 0)
	if err != nil {
		return err
	}

	outDir := firstNonEmpty(opts.outDir, c.Config.OutDir, ".")
	pattern := firstNonEmpty(opts.pattern, export.AllPattern)
	paths, err := exp.ExportAll(ctx, outDir, pattern, in.Record, opts.templates)
	if err != nil {
		return err
	}
	for _, p := range paths {
		printSuccess(cmd.OutOrStdout(), "%s", p)
	}
	return nil
}

func writeDebug(res *layout.Result, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("创建调试目录失败: %w", err)
	}
	if err := layout.WriteDebugJSON(res, path); err != nil {
		return fmt.Errorf("输出调试 JSON 失败: %w", err)
	}
	return nil
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
