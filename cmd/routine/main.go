// Command routine imports tasks from spreadsheets, CSV files and freeform
// text without going through the web server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/JonMunkholm/routine/internal/core"
	"github.com/JonMunkholm/routine/internal/logging"
)

type rootOptions struct {
	logLevel  string
	logFormat string
	lang      string
}

func newRootCmd() *cobra.Command {
	var opts rootOptions

	cmd := &cobra.Command{
		Use:           "routine",
		Short:         "Bulk task import for the routine tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Missing .env is fine; the environment may already be set.
			_ = godotenv.Load()
			slog.SetDefault(slog.New(logging.NewHandler(cmd.ErrOrStderr(), opts.logLevel, opts.logFormat)))
		},
	}

	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	cmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", "text", "Log format: text or json")
	cmd.PersistentFlags().StringVar(&opts.lang, "lang", localeFromEnv(), "Language for error messages (en, fr, ar)")

	cmd.AddCommand(
		newImportCmd(),
		newParseCmd(),
		newTemplateCmd(),
	)
	return cmd
}

// localeFromEnv returns the message locale in POSIX precedence order.
func localeFromEnv() string {
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return ""
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := newRootCmd()
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, userError(root, err))
		os.Exit(exitCode(err))
	}
}

// userError renders err the way the web layer does, in the --lang language.
func userError(root *cobra.Command, err error) string {
	if !core.IsUserFacing(err) {
		return "error: " + err.Error()
	}
	lang, _ := root.PersistentFlags().GetString("lang")
	lang = core.MatchLanguage(lang)
	if lang == "en" {
		return core.FormatUserError(err)
	}
	msg := core.LocalizedMessage(err, lang)
	out := fmt.Sprintf("%s (Code: %s)", msg.Message, msg.Code)
	if msg.Action != "" {
		out += ". " + msg.Action
	}
	return out
}

const (
	exitFailure = 1
	exitInput   = 2
)

func exitCode(err error) int {
	var verr core.ValidationError
	switch {
	case errors.Is(err, core.ErrUnsupportedFileType),
		errors.Is(err, core.ErrFileParse),
		errors.Is(err, core.ErrEmptyInput),
		errors.Is(err, core.ErrTextParse),
		errors.Is(err, core.ErrNoValidRows),
		errors.Is(err, core.ErrFileTooLarge),
		errors.As(err, &verr):
		return exitInput
	default:
		return exitFailure
	}
}
