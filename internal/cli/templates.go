package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Mo-Ibra/cv-builder/layout"
)

func (c *CLI) templatesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List the built-in templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			listTemplates(cmd.OutOrStdout(), layout.DefaultRegistry(), c.Config.Template)
			return nil
		},
	}
}

// listTemplates 输出模板列表，标出默认模板与别名。
func listTemplates(w io.Writer, reg *layout.Registry, current string) {
	fmt.Fprintln(w, StyleTitle.Render("Templates"))
	for _, t := range reg.Templates() {
		marker := " "
		if t.ID == current {
			marker = "*"
		}
		photo := "no photo"
		if t.HasPhoto() {
			photo = "photo"
		}
		line := fmt.Sprintf("%s %s %s", marker, StyleHighlight.Render(fmt.Sprintf("%-20s", t.ID)), t.Name)
		extra := photo
		if t.AliasOf != "" {
			extra += ", alias of " + t.AliasOf
		}
		fmt.Fprintln(w, line, StyleDim.Render("("+extra+")"))
		if t.Description != "" {
			fmt.Fprintln(w, "   ", StyleDim.Render(t.Description))
		}
	}
}
