package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vampirenirmal/redline/internal/schema"
)

var (
	reviewPersona string
	reviewJSON    bool
	reviewSave    bool
)

var reviewCmd = &cobra.Command{
	Use:   "review <bookId> <chapterId> <actId>",
	Short: "Run an AI editorial review pass over one act",
	Long: `Review loads the act, gathers continuity and outline findings, and asks
the configured AI persona for an editorial pass. The pass is printed and,
with --save, appended to the act's review history.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		bookID, chapterID, actID := args[0], args[1], args[2]

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := newApp()
		if err != nil {
			return err
		}

		raw, err := a.acts.LoadRaw(ctx, bookID, chapterID, actID)
		if err != nil {
			return err
		}

		orch, err := a.newOrchestrator(ctx)
		if err != nil {
			return err
		}

		persona := schema.ReviewPersona(reviewPersona)
		passes := orch.ReviewAct(ctx, raw, persona)

		if reviewSave {
			act, err := a.acts.Load(ctx, bookID, chapterID, actID)
			if err != nil {
				return err
			}
			act.Reviews = append(act.Reviews, passes...)
			if err := a.acts.Save(ctx, act); err != nil {
				return err
			}
		}

		if reviewJSON {
			return printJSON(passes)
		}
		for _, p := range passes {
			printPass(p)
		}
		return nil
	},
}

func printPass(p schema.ReviewPass) {
	fmt.Printf("Review %s (%s / %s) on %s\n", p.ReviewID, p.Persona, p.Dimension, p.VersionID)
	if p.Notes != "" {
		fmt.Printf("  Notes: %s\n", p.Notes)
	}
	if p.Metrics != nil {
		fmt.Printf("  Metrics: stakes=%d intimacy=%d world=%d pace=%d\n",
			p.Metrics.StakesLevel, p.Metrics.IntimacyLevel, p.Metrics.WorldImpactLevel, p.Metrics.PaceLevel)
	}
	fmt.Printf("  Outline: %s\n", p.OutlineStatus)
	for _, f := range p.Findings {
		fmt.Printf("  - %s\n", f)
	}
	for _, s := range p.Suggestions {
		fmt.Printf("  suggestion %s: %s\n    - %q\n    + %q\n", s.ID, s.Reason, s.BeforeText, s.AfterText)
	}
	for _, w := range p.ContinuityWarnings {
		fmt.Printf("  warning [%s/%s] %s\n", w.Category, w.Severity, w.Message)
	}
	for _, c := range p.CharacterTraitClaims {
		fmt.Printf("  claim %s: %s (%s)\n", c.CharacterID, c.Trait, c.Evidence)
	}
}

func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func init() {
	rootCmd.AddCommand(reviewCmd)
	reviewCmd.Flags().StringVarP(&reviewPersona, "persona", "p", string(schema.PersonaDevelopmentalEditor),
		"Review persona: developmental_editor, line_editor, beta_reader, genre_expert, continuity_auditor")
	reviewCmd.Flags().BoolVar(&reviewJSON, "json", false, "Output in JSON format")
	reviewCmd.Flags().BoolVar(&reviewSave, "save", false, "Append the pass to the act's review history")
}
