package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTextCmd(root *rootOptions) *cobra.Command {
	var meta bool
	cmd := &cobra.Command{
		Use:   "text <file>",
		Short: "Print the cleaned text layer of a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := root.newApp(cmd)
			if err != nil {
				return err
			}
			res, err := a.Text.Extract(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if meta {
				fmt.Fprintf(cmd.ErrOrStderr(), "method=%s pages=%d score=%.2f elapsed=%s\n",
					res.Method, res.Pages, res.Score, res.Duration)
				for _, w := range res.Warnings {
					fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", w)
				}
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), res.Text)
			return err
		},
	}
	cmd.Flags().BoolVar(&meta, "meta", false, "print acquisition details to stderr")
	return cmd
}
