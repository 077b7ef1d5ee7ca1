package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dimviana/Gestor-de-Boleto/internal/app"
	"github.com/dimviana/Gestor-de-Boleto/internal/common"
)

type rootOptions struct {
	fields    string
	logLevel  string
	logFormat string
	verbose   bool
}

// exitError ends the process with code after its output was already written.
type exitError struct{ code int }

func (e exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "boleto",
		Short:         "Extract payment fields from Brazilian boletos",
		Long:          "boleto reads the text layer of boleto PDFs (or plain text) and extracts\nrecipient, payer, dates, amounts, the digitable line and the PIX payload.",
		SilenceErrors: true,
		SilenceUsage:  true,
		Version:       version,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.fields, "fields", "", "YAML field specs overriding the built-in ones")
	pf.StringVar(&opts.logLevel, "log-level", envOr("LOG_LEVEL", "warn"), "log level: debug, info, warn, error")
	pf.StringVar(&opts.logFormat, "log-format", "json", "stderr log format: json or text")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "shorthand for --log-level=debug")

	root.AddCommand(
		newExtractCmd(opts),
		newTextCmd(opts),
		newBatchCmd(opts),
		newWatchCmd(opts),
		newServeCmd(opts),
	)
	return root
}

func (o *rootOptions) logger(w io.Writer) *slog.Logger {
	level := common.ParseLevel(o.logLevel)
	if o.verbose {
		level = slog.LevelDebug
	}
	return common.NewLogger(w, level, o.logFormat)
}

// newApp loads configuration from the environment and applies flag overrides.
func (o *rootOptions) newApp(cmd *cobra.Command) (*app.App, error) {
	cfg := common.LoadConfig()
	if o.fields != "" {
		cfg.Engine.FieldsFile = o.fields
	}
	return app.New(cfg, o.logger(cmd.ErrOrStderr()))
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func writeJSON(w io.Writer, v any, pretty bool) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
