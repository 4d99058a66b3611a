package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vampirenirmal/redline/internal/schema"
)

var (
	sweepPersona string
	sweepBook    string
	sweepSave    bool
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Review every act in the corpus with one persona",
	Long: `Sweep runs a review pass over every act, optionally scoped to one book,
with bounded concurrency. Ctrl-C stops cleanly between acts; completed
passes are kept.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := newApp()
		if err != nil {
			return err
		}

		acts, err := a.acts.LoadAll(ctx, sweepBook)
		if err != nil {
			return err
		}
		if len(acts) == 0 {
			fmt.Println("No acts found.")
			return nil
		}

		orch, err := a.newOrchestrator(ctx)
		if err != nil {
			return err
		}

		raws := make([]map[string]any, len(acts))
		for i, act := range acts {
			raw, err := a.acts.LoadRaw(ctx, act.BookID, act.ChapterID, act.ID)
			if err != nil {
				return err
			}
			raws[i] = raw
		}

		results, sweepErr := orch.Sweep(ctx, raws, schema.ReviewPersona(sweepPersona), a.cfg.Limits.MaxConcurrentReviews)

		byID := make(map[string]*schema.Act, len(acts))
		for _, act := range acts {
			byID[act.ID] = act
		}

		for _, r := range results {
			fmt.Printf("== %s ==\n", r.ActID)
			for _, p := range r.Passes {
				printPass(p)
			}
			if act, ok := byID[r.ActID]; sweepSave && ok {
				act.Reviews = append(act.Reviews, r.Passes...)
				if err := a.acts.Save(ctx, act); err != nil {
					return err
				}
			}
		}

		if sweepErr != nil && !errors.Is(sweepErr, context.Canceled) {
			return sweepErr
		}
		if sweepErr != nil {
			fmt.Fprintf(os.Stderr, "sweep interrupted after %d of %d acts\n", len(results), len(acts))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sweepCmd)
	sweepCmd.Flags().StringVarP(&sweepPersona, "persona", "p", string(schema.PersonaDevelopmentalEditor),
		"Review persona to sweep with")
	sweepCmd.Flags().StringVar(&sweepBook, "book", "", "Limit the sweep to one book")
	sweepCmd.Flags().BoolVar(&sweepSave, "save", false, "Append passes to each act's review history")
}
