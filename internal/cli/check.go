package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Mo-Ibra/cv-builder/resume"
)

func (c *CLI) checkCommand() *cobra.Command {
	var (
		template string
		vars     []string
	)

	cmd := &cobra.Command{
		Use:   "check [file]",
		Short: "Validate a resume and report what rendering would recover from",
		Long: `Check loads the resume, runs the field checks (email, dates) and a dry-run
layout, then lists every warning. Warnings never stop a render; only a file
that cannot be loaded makes check fail.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			all, err := c.templateVars(vars)
			if err != nil {
				return err
			}
			in, err := loadInput(args[0], cmd.InOrStdin(), all)
			if err != nil {
				return err
			}
			exp, err := c.newExporter("", 0)
			if err != nil {
				return err
			}
			res, err := exp.Layout(in.Record, firstNonEmpty(template, in.Template, c.Config.Template))
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			warnings := resume.Check(in.Record)
			for _, warn := range warnings {
				printWarning(w, "%s", warn)
			}
			for _, n := range res.Notices {
				printWarning(w, "%s: %s", n.Kind, n.Message)
			}
			printSuccess(w, "%s %s", args[0], StyleDim.Render(fmt.Sprintf("(%s, %d %s, %d %s)",
				res.Template, len(res.Pages), plural(len(res.Pages), "page"),
				len(warnings)+len(res.Notices), plural(len(warnings)+len(res.Notices), "warning"))))
			return nil
		},
	}

	cmd.Flags().StringVarP(&template, "template", "t", "", "template id for the dry-run layout")
	cmd.Flags().StringArrayVar(&vars, "var", nil, "variable for ${...} placeholders in .cv files (key=value, repeatable)")

	return cmd
}
