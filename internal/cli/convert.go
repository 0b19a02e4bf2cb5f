package cli

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Mo-Ibra/cv-builder/dsl"
)

func (c *CLI) convertCommand() *cobra.Command {
	var (
		output   string
		template string
	)

	cmd := &cobra.Command{
		Use:   "convert [file]",
		Short: "Convert editor JSON into the .cv text format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := loadInput(args[0], cmd.InOrStdin(), nil)
			if err != nil {
				return err
			}
			var buf bytes.Buffer
			if err := dsl.Encode(&buf, in.Record, firstNonEmpty(template, in.Template)); err != nil {
				return err
			}
			if output == "" {
				_, err := cmd.OutOrStdout().Write(buf.Bytes())
				return err
			}
			if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("写入 %s 失败: %w", output, err)
			}
			c.Logger.Info("converted", "input", args[0], "output", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output .cv file (default stdout)")
	cmd.Flags().StringVarP(&template, "template", "t", "", "template id to record in the file")

	return cmd
}
