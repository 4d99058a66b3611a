package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vampirenirmal/redline/internal/schema"
)

var (
	suggestAccept  bool
	suggestReject  bool
	suggestComment string
)

var suggestCmd = &cobra.Command{
	Use:   "suggest <bookId> <chapterId> <actId> [suggestionId]",
	Short: "List suggestions or decide on one",
	Long: `Without a suggestion id, lists every suggestion on the act with its
status. With an id and --accept or --reject, records the decision.`,
	Args: cobra.RangeArgs(3, 4),
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

		if len(args) == 3 {
			for _, r := range act.Reviews {
				for _, s := range r.Suggestions {
					applied := ""
					if s.AppliedInVersionID != "" {
						applied = " applied=" + s.AppliedInVersionID
					}
					fmt.Printf("%s [%s]%s %s\n  - %q\n  + %q\n", s.ID, s.Status, applied, s.Reason, s.BeforeText, s.AfterText)
				}
			}
			return nil
		}

		if suggestAccept == suggestReject {
			return fmt.Errorf("pass exactly one of --accept or --reject")
		}

		suggestionID := args[3]
		status := schema.SuggestionAccepted
		if suggestReject {
			status = schema.SuggestionRejected
		}

		found := false
		for ri := range act.Reviews {
			for si := range act.Reviews[ri].Suggestions {
				s := &act.Reviews[ri].Suggestions[si]
				if s.ID != suggestionID {
					continue
				}
				if s.AppliedInVersionID != "" {
					return fmt.Errorf("suggestion %s was already applied in %s", s.ID, s.AppliedInVersionID)
				}
				s.Status = status
				if suggestComment != "" {
					s.UserComment = suggestComment
				}
				found = true
			}
		}
		if !found {
			return fmt.Errorf("suggestion %s not found on act %s", suggestionID, actID)
		}

		if err := a.acts.Save(ctx, act); err != nil {
			return err
		}
		fmt.Printf("%s -> %s\n", suggestionID, status)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(suggestCmd)
	suggestCmd.Flags().BoolVar(&suggestAccept, "accept", false, "Accept the suggestion")
	suggestCmd.Flags().BoolVar(&suggestReject, "reject", false, "Reject the suggestion")
	suggestCmd.Flags().StringVar(&suggestComment, "comment", "", "Attach a user comment")
}
