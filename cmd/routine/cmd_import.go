package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/routine/internal/config"
	"github.com/JonMunkholm/routine/internal/core"
	"github.com/JonMunkholm/routine/internal/store"
)

type importOptions struct {
	user   string
	dryRun bool
	asJSON bool
}

func newImportCmd() *cobra.Command {
	var opts importOptions

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Import tasks from an .xlsx, .xls or .csv file",
		Long: "Reads FILE, validates every row and creates a custom task for each valid one\n" +
			"in the store selected by DB_DRIVER and DATABASE_URL. Invalid rows are skipped.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.user, "user", core.DefaultUserID, "User that owns the imported tasks")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Parse and validate only; do not touch the store")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "Print the preview as JSON")

	return cmd
}

func runImport(cmd *cobra.Command, path string, opts importOptions) error {
	ctx := cmd.Context()

	payload, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	name := filepath.Base(path)

	if opts.dryRun {
		kind, err := core.DetectKind(name)
		if err != nil {
			return err
		}
		sess := core.NewImportSession(opts.user)
		if err := sess.RunFileImport(ctx, payload, kind); err != nil {
			return err
		}
		return printPreview(cmd.OutOrStdout(), sess.Snapshot(), opts.asJSON)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	backend, err := store.Open(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("open task store: %w", err)
	}
	defer backend.Close()

	svc := core.NewService(backend, core.ServiceConfig{
		MaxFileSize:          cfg.Import.MaxFileSize,
		MaxConcurrentImports: 1,
		ImportTimeout:        cfg.Import.Timeout,
	})

	preview, err := svc.ImportFile(ctx, opts.user, name, payload)
	if err != nil {
		return err
	}
	if err := printPreview(cmd.OutOrStdout(), preview, opts.asJSON); err != nil {
		return err
	}

	result, err := svc.Commit(ctx, opts.user)
	if err != nil {
		slog.Error("commit stopped early", "committed", result.Committed, "remaining", result.Remaining)
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "created %d tasks for %s in %s\n", result.Committed, opts.user, result.Duration.Round(time.Millisecond))
	return nil
}
