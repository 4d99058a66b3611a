package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vampirenirmal/redline/internal/schema"
)

var validateMigrate bool

var validateCmd = &cobra.Command{
	Use:   "validate <file.json>",
	Short: "Validate an act document against the schema",
	Long: `Validate checks a raw act file against every schema invariant and prints
a field-keyed error report. With --migrate the document is normalized
first, the way the review pipeline would see it.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		var raw map[string]any
		if err := json.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("invalid JSON: %w", err)
		}
		if validateMigrate {
			raw = schema.Migrate(raw)
		}

		act, err := schema.Decode(raw)
		if err != nil {
			return err
		}

		errs := schema.Validate(act)
		if len(errs) == 0 {
			fmt.Printf("%s: valid (%d versions, %d reviews)\n", args[0], len(act.Versions), len(act.Reviews))
			return nil
		}

		paths := make([]string, 0, len(errs))
		for p := range errs {
			paths = append(paths, p)
		}
		sort.Strings(paths)
		for _, p := range paths {
			fmt.Printf("%s: %s\n", p, errs[p])
		}
		return fmt.Errorf("%d validation error(s)", len(errs))
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().BoolVar(&validateMigrate, "migrate", false, "Normalize the document before validating")
}
