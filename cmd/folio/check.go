package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eringen/folio/content"
)

var checkCmd = &cobra.Command{
	Use:   "check <file-or-url>",
	Short: "Validate a content document against the bundled schema",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := content.NewLoader(args[0], 0).Raw(context.Background())
		if err != nil {
			return err
		}
		if _, err := content.Parse(raw); err != nil {
			return fmt.Errorf("%s: %w", args[0], err)
		}
		msgs, err := content.Check(raw)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, m := range msgs {
			fmt.Fprintf(out, "  - %s\n", m)
		}
		if len(msgs) > 0 {
			return fmt.Errorf("%s: %d schema violation(s)", args[0], len(msgs))
		}
		fmt.Fprintf(out, "%s: ok\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
