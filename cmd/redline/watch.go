package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the outline directory and keep the cache fresh",
	Long: `Watch holds the outline registry open with file-change invalidation, so
a long-running review session always compares drafts against the latest
externally edited plans. Stops on Ctrl-C.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		if err := a.outlines.Watch(); err != nil {
			return err
		}
		defer a.outlines.Close()

		fmt.Printf("watching %s (Ctrl-C to stop)\n", a.cfg.Paths.OutlineDir)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		<-ctx.Done()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
