package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vampirenirmal/redline/internal/series"
)

var (
	seriesBook string
	seriesJSON bool
)

var seriesCmd = &cobra.Command{
	Use:   "series",
	Short: "Show open promises and continuity risk per chapter",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		a, err := newApp()
		if err != nil {
			return err
		}

		acts, err := a.acts.LoadAll(ctx, seriesBook)
		if err != nil {
			return err
		}

		rollups := series.BuildSeriesState(acts)
		if seriesJSON {
			return printJSON(rollups)
		}

		if len(rollups) == 0 {
			fmt.Println("No acts found.")
			return nil
		}

		fmt.Printf("%-12s %6s %14s %20s %10s\n", "CHAPTER", "ACTS", "OPEN PROMISES", "UNRESOLVED WARNINGS", "TREND")
		for _, r := range rollups {
			fmt.Printf("%-12s %6d %14d %20d %10s\n",
				r.ChapterID, r.ActCount, r.OpenPromises, r.UnresolvedWarnings, r.EscalationTrend)
		}
		totals := series.Sum(rollups)
		fmt.Printf("total: %d chapters, %d acts, %d open promises, %d unresolved warnings\n",
			totals.Chapters, totals.Acts, totals.OpenPromises, totals.UnresolvedWarnings)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seriesCmd)
	seriesCmd.Flags().StringVar(&seriesBook, "book", "", "Limit the rollup to one book")
	seriesCmd.Flags().BoolVar(&seriesJSON, "json", false, "Output in JSON format")
}
