package main

import (
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dimviana/Gestor-de-Boleto/internal/common"
	"github.com/dimviana/Gestor-de-Boleto/internal/core"
)

func newExtractCmd(root *rootOptions) *cobra.Command {
	var validate, pretty bool
	cmd := &cobra.Command{
		Use:   "extract <file|->",
		Short: "Print the fields of one boleto as JSON",
		Long: `Extracts the fields of a .pdf or .txt boleto, or of text read from stdin
when the argument is "-". Failures print {"error": "..."} and exit with status 1.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := root.newApp(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fail := func(err error) error {
				if werr := writeJSON(out, common.NewErrorBody(err), pretty); werr != nil {
					return werr
				}
				return exitError{code: 1}
			}

			var outcome core.Outcome
			if args[0] == "-" {
				b, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fail(common.AcquisitionError("failed to read stdin", err))
				}
				if strings.TrimSpace(string(b)) == "" {
					return fail(common.AcquisitionError("empty text", nil))
				}
				outcome = a.Processor.ProcessText(cmd.Context(), "stdin", string(b))
			} else {
				outcome, err = a.Processor.ProcessFile(cmd.Context(), args[0])
				if err != nil {
					return fail(err)
				}
			}

			if validate {
				if err := a.Engine.Validate(*outcome.Result); err != nil {
					return fail(err)
				}
			}
			return writeJSON(out, outcome.Result, pretty)
		},
	}
	cmd.Flags().BoolVar(&validate, "validate", false, "check the record against its JSON schema")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "indent the JSON output")
	return cmd
}
