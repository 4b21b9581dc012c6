package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"gifify/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent conversions",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cfg.History.Enabled {
				return fmt.Errorf("conversion history is disabled in the configuration")
			}

			store, err := history.Open(cfg.HistoryDBPath())
			if err != nil {
				return fmt.Errorf("open history store: %w", err)
			}
			defer store.Close()

			if limit <= 0 {
				limit = cfg.UI.HistoryLimit
			}
			conversions, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(conversions) == 0 {
				fmt.Fprintln(out, "No conversions recorded yet")
				return nil
			}

			rows := make([][]string, 0, len(conversions))
			for _, conv := range conversions {
				optimized := ""
				if conv.Optimized {
					optimized = "yes"
				}
				rows = append(rows, []string{
					fmt.Sprintf("%d", conv.ID),
					conv.CreatedAt.Local().Format("2006-01-02 15:04:05"),
					conv.Source,
					conv.OutputPath,
					formatBytes(conv.OutputBytes),
					conv.Elapsed.Round(10 * time.Millisecond).String(),
					optimized,
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"ID", "When", "Source", "Output", "Size", "Elapsed", "Optimized"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum entries to show (default: configured history limit)")
	return cmd
}
