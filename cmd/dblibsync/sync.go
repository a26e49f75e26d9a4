package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(syncCmd)
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Rebuild the library database and DbLib file once",
	Long: `Validates every tab, then drops all tables in the library database,
recreates one table per tab, inserts the component rows (writing new
component IDs back to the spreadsheet) and writes the DbLib file.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		st, err := openStore(ctx, cfg)
		if err != nil {
			return userError(err)
		}
		defer st.Close()

		res, err := newService(cfg, st).Sync(ctx)
		if err != nil {
			return userError(err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Synced %d categories, %d components (%d new IDs) in %dms\n",
			res.Categories, res.Components, res.NewIDs, res.DurationMS)
		for _, c := range res.PerCategory {
			fmt.Fprintf(out, "  %-24s %6d components %4d new IDs\n", c.Name, c.Components, c.NewIDs)
		}
		fmt.Fprintf(out, "Wrote %s (%d field maps)\n", res.DbLibPath, res.FieldMaps)
		return nil
	},
}
