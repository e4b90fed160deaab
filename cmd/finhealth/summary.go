package main

import (
	"fmt"

	"github.com/Dan9191/finhealth-service/internal/analysis"
	"github.com/spf13/cobra"
)

func newSummaryCmd() *cobra.Command {
	var lang string
	cmd := &cobra.Command{
		Use:   "summary FILE",
		Short: "Print the plain-text summary sent to the chat assistant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := loadSnapshot(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), analysis.Summary(snap, analysis.ParseLocale(lang)))
			return nil
		},
	}
	cmd.Flags().StringVar(&lang, "lang", string(analysis.DefaultLocale), "Language of the summary (zh, en)")
	return cmd
}
