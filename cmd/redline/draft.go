package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vampirenirmal/redline/internal/storage"
)

var (
	draftSaveFrom string
	draftDiscard  bool
)

var draftCmd = &cobra.Command{
	Use:   "draft <actId>",
	Short: "Show, save or discard an act's scratch draft",
	Long: `Drafts are scratch space kept outside the immutable version history.
Without flags, prints the stored draft. With --save, replaces it from a
file ("-" reads stdin). With --discard, deletes it.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		actID := args[0]
		ctx := context.Background()

		a, err := newApp()
		if err != nil {
			return err
		}
		drafts := storage.NewFileDraftStore(a.store)

		if draftDiscard {
			if err := drafts.Discard(ctx, actID); err != nil {
				return err
			}
			fmt.Printf("discarded draft for %s\n", actID)
			return nil
		}

		if draftSaveFrom != "" {
			var data []byte
			if draftSaveFrom == "-" {
				data, err = io.ReadAll(os.Stdin)
			} else {
				data, err = os.ReadFile(draftSaveFrom)
			}
			if err != nil {
				return err
			}
			if err := drafts.Save(ctx, actID, string(data)); err != nil {
				return err
			}
			fmt.Printf("saved draft for %s (%d bytes)\n", actID, len(data))
			return nil
		}

		text, err := drafts.Load(ctx, actID)
		if err != nil {
			return err
		}
		if text == "" {
			fmt.Printf("no draft for %s\n", actID)
			return nil
		}
		fmt.Print(text)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(draftCmd)
	draftCmd.Flags().StringVar(&draftSaveFrom, "save", "", "Save the draft from a file (\"-\" for stdin)")
	draftCmd.Flags().BoolVar(&draftDiscard, "discard", false, "Delete the stored draft")
}
