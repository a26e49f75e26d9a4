package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check every spreadsheet tab without touching the database",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		summaries, err := newService(cfg, nil).Validate(context.Background())
		if summaries == nil && err != nil {
			return userError(err)
		}

		out := cmd.OutOrStdout()
		for _, s := range summaries {
			status := "ok"
			if len(s.Problems) > 0 {
				status = "INVALID"
			}
			fmt.Fprintf(out, "%-24s %-7s %6d rows %3d fields %2d links\n", s.Name, status, s.Rows, s.Fields, s.Links)
			for _, p := range s.Problems {
				fmt.Fprintf(out, "    %s\n", p)
			}
		}
		if err != nil {
			return errors.New("validation failed")
		}
		return nil
	},
}
