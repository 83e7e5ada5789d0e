package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/routine/internal/core"
)

func newParseCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "parse",
		Short: "Validate pipe-delimited tasks read from stdin",
		Long: "Reads one task per line from stdin and prints the tasks that would be imported.\n\n" +
			"  title | category | start | end\n" +
			"  title | description | category | start | end\n\n" +
			"Lines with fewer than four fields are skipped.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("read stdin: %w", err)
			}

			sess := core.NewImportSession(core.DefaultUserID)
			if err := sess.RunTextImport(cmd.Context(), string(text)); err != nil {
				return err
			}
			return printPreview(cmd.OutOrStdout(), sess.Snapshot(), asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the preview as JSON")
	return cmd
}
