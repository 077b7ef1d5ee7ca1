package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/dimviana/Gestor-de-Boleto/constants"
	"github.com/dimviana/Gestor-de-Boleto/internal/export"
)

func newBatchCmd(root *rootOptions) *cobra.Command {
	var (
		dir     string
		outPath string
		jsonl   bool
		workers int
	)
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Process every boleto in a folder into an XLSX report",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := root.newApp(cmd)
			if err != nil {
				return err
			}
			if outPath == "" {
				outPath = filepath.Join(dir, "boletos.xlsx")
			}

			outs, stats, err := a.Batch(cmd.Context(), dir, workers)
			if err != nil {
				return err
			}

			if jsonl {
				for _, o := range outs {
					if err := writeJSON(cmd.OutOrStdout(), o, false); err != nil {
						return err
					}
				}
			}

			report, err := export.NewService(a.Logger).WriteXLSX(outs)
			if err != nil {
				return err
			}
			if err := os.WriteFile(outPath, report, 0o644); err != nil {
				return fmt.Errorf("write report: %w", err)
			}

			counts := map[constants.OutcomeStatus]int{}
			for _, o := range outs {
				counts[o.Status]++
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "%d files (%d scanned): %d ok, %d review, %d failed, %d duplicate\nreport: %s\n",
				len(outs), stats.Scanned,
				counts[constants.OutcomeOK], counts[constants.OutcomeReview],
				counts[constants.OutcomeFailed], counts[constants.OutcomeDuplicate],
				outPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "folder to process (required)")
	cmd.Flags().StringVar(&outPath, "out", "", "report path (default <dir>/boletos.xlsx)")
	cmd.Flags().BoolVar(&jsonl, "jsonl", false, "also print one JSON outcome per line to stdout")
	cmd.Flags().IntVar(&workers, "workers", runtime.NumCPU(), "concurrent extractions")
	_ = cmd.MarkFlagRequired("dir")
	return cmd
}
