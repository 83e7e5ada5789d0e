package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/routine/internal/core"
)

func newTemplateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "template [OUT.xlsx]",
		Short: "Write the spreadsheet import template",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := core.TemplateFileName
			if len(args) == 1 {
				out = args[0]
			}

			data, err := core.TemplateWorkbook()
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("write template: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", out)
			return nil
		},
	}
}
