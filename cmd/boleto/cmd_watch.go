package main

import (
	"github.com/spf13/cobra"
)

func newWatchCmd(root *rootOptions) *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Process documents dropped into a folder until interrupted",
		Long: `Watches a folder (WATCH_DIR by default) and extracts every .pdf or .txt that
appears in it. Handled files move to _processed or _failed next to a JSON
file holding their outcome.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := root.newApp(cmd)
			if err != nil {
				return err
			}
			if dir == "" {
				dir = a.Config.Watch.Dir
			}
			return a.Watch(cmd.Context(), dir)
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "folder to watch")
	return cmd
}
