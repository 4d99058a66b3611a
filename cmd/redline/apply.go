package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vampirenirmal/redline/internal/patch"
	"github.com/vampirenirmal/redline/internal/schema"
)

var (
	applyDryRun bool
	applyAsAI   bool
	applyJSON   bool
)

var applyCmd = &cobra.Command{
	Use:   "apply <bookId> <chapterId> <actId>",
	Short: "Apply accepted suggestions as a new version",
	Long: `Apply collects every accepted, not-yet-applied suggestion across the
act's review history and patches them onto the latest version. With
--dry-run the would-be result is shown without creating a version.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		bookID, chapterID, actID := args[0], args[1], args[2]
		ctx := context.Background()

		a, err := newApp()
		if err != nil {
			return err
		}

		act, err := a.acts.Load(ctx, bookID, chapterID, actID)
		if err != nil {
			return err
		}

		pending := patch.AcceptedSuggestions(act)
		if len(pending) == 0 {
			fmt.Println("No accepted suggestions to apply.")
			return nil
		}

		actor := schema.ActorUser
		if applyAsAI {
			actor = schema.ActorAI
		}

		outcome, err := patch.ApplyToAct(act, pending, actor, applyDryRun)
		if err != nil {
			return err
		}

		if !applyDryRun && outcome.VersionCreated {
			if err := a.acts.Save(ctx, act); err != nil {
				return err
			}
		}

		if applyJSON {
			return printJSON(outcome)
		}

		fmt.Printf("applied=%d skipped=%d notFound=%d notSelected=%d charDiff=%+d\n",
			outcome.Applied, outcome.Skipped, len(outcome.NotFound), len(outcome.NotSelected), outcome.CharDiff)
		for _, id := range outcome.NotFound {
			fmt.Printf("  stale (no match): %s\n", id)
		}
		if applyDryRun {
			fmt.Printf("dry run: %d -> %d words, no version created\n",
				outcome.OriginalWordCount, outcome.NewWordCount)
			return nil
		}
		if outcome.VersionCreated {
			fmt.Printf("created %s (based on %s): %d -> %d words\n",
				outcome.NewVersionID, outcome.BaseVersionID,
				outcome.OriginalWordCount, outcome.NewWordCount)
		} else {
			fmt.Println("no suggestions matched; no version created")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(applyCmd)
	applyCmd.Flags().BoolVar(&applyDryRun, "dry-run", false, "Preview without creating a version")
	applyCmd.Flags().BoolVar(&applyAsAI, "as-ai", false, "Record the new version as AI-created")
	applyCmd.Flags().BoolVar(&applyJSON, "json", false, "Output in JSON format")
}
