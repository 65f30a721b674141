package cmd

import (
	"fmt"

	"mods-merger/core/config"
	"mods-merger/core/logger"

	"github.com/spf13/cobra"
)

// runsCmd represents the runs command
var runsCmd = &cobra.Command{
	Use:   "runs [run-id]",
	Short: "List recorded merge runs",
	Long:  `Lists the most recent merge runs from the audit database, or prints every decision of one run.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		limit, _ := cmd.Flags().GetInt("limit")

		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		defer logg.Sync()

		store := openStore(ctx, cfg, logg)
		if store == nil {
			return fmt.Errorf("audit database is not available")
		}

		if len(args) == 1 {
			run, err := store.GetRun(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Run %s [%s] %s\n", run.ID, run.Kind, run.RelativePath)
			fmt.Printf("Started: %s, Persisted: %v, Vanilla: %v\n", run.StartedAt.Format("2006-01-02 15:04:05"), run.Persisted, run.HasVanilla)
			for _, r := range run.Records {
				fmt.Printf("  %-20s %-10s %-18s %-24s %s\n", r.Collection, r.Key, r.Action, r.Reason, r.File)
			}
			if run.Failures != "" {
				fmt.Printf("Failures:\n%s\n", run.Failures)
			}
			return nil
		}

		runs, err := store.ListRuns(ctx, limit)
		if err != nil {
			return err
		}
		fmt.Println("\n=== Merge Runs ===")
		for _, r := range runs {
			fmt.Printf("%s  %s  %-11s %-40s replaced=%d added=%d persisted=%v\n",
				r.ID, r.StartedAt.Format("2006-01-02 15:04:05"), r.Kind, r.RelativePath, r.Replaced, r.Added, r.Persisted)
		}
		fmt.Printf("Total: %d\n", len(runs))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(runsCmd)
	runsCmd.Flags().Int("limit", 20, "Maximum number of runs to list")
}
