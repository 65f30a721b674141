package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"mods-merger/core/config"
	"mods-merger/core/logger"
	"mods-merger/core/vanilla"
	"mods-merger/feature/merging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// mergeCmd represents the merge command
var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Merge mod assets listed in a manifest",
	Long: `Merges every asset group of the manifest in priority order. The first file of a
group is the base, later files override earlier ones where they diverge from vanilla.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		startTime := time.Now()

		manifestPath, _ := cmd.Flags().GetString("manifest")
		outputDir, _ := cmd.Flags().GetString("output")
		vanillaDir, _ := cmd.Flags().GetString("vanilla-dir")
		jsonOutput, _ := cmd.Flags().GetBool("json")

		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if outputDir != "" {
			cfg.Merge.OutputDir = outputDir
		}
		if vanillaDir != "" {
			cfg.Vanilla.Source = vanilla.SourceDir
			cfg.Vanilla.Dir = vanillaDir
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		defer logg.Sync()

		manifest, err := merging.LoadManifest(manifestPath)
		if err != nil {
			return err
		}

		svc, err := newService(ctx, cfg, logg)
		if err != nil {
			return err
		}

		result, err := svc.Run(ctx, manifest)
		if err != nil {
			return err
		}

		if jsonOutput {
			filename := fmt.Sprintf("merge_report_%d.json", time.Now().Unix())
			data, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal JSON: %w", err)
			}
			if err := os.WriteFile(filename, data, 0644); err != nil {
				return fmt.Errorf("failed to save JSON file: %w", err)
			}
			logg.Info("Detailed JSON report saved", zap.String("file", filename), zap.Int("groups", len(result.Reports)))
		}

		fmt.Println("\n=== Merge Summary ===")
		for _, r := range result.Reports {
			status := "ok"
			switch {
			case r.Fatal():
				status = "FAILED"
			case !r.Persisted:
				status = "not written"
			case len(r.Failures) > 0:
				status = fmt.Sprintf("ok, %d warnings", len(r.Failures))
			}
			fmt.Printf("[%s] %s: %s\n", r.Kind, r.RelativePath, status)
			fmt.Printf("    replaced %d, added %d, skipped %d, structural %d, skipped files %d\n",
				r.Summary.Replaced, r.Summary.Added, r.Summary.Skipped,
				r.Summary.StructuralReplacements, r.Summary.SkippedFiles)
		}
		fmt.Printf("Groups: %d, Failed: %d\n", len(result.Reports), result.Failed)
		fmt.Printf("Execution Time: %s\n", time.Since(startTime).String())

		if result.Failed > 0 {
			return fmt.Errorf("%d of %d groups failed", result.Failed, len(manifest.Groups))
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(mergeCmd)

	mergeCmd.Flags().String("manifest", "", "Path to the merge manifest (YAML or JSON)")
	mergeCmd.Flags().String("output", "", "Merged output directory (overrides MERGE_OUTPUT_DIR)")
	mergeCmd.Flags().String("vanilla-dir", "", "Extracted vanilla game directory")
	mergeCmd.Flags().Bool("json", false, "Save the detailed JSON report")
	_ = mergeCmd.MarkFlagRequired("manifest")
}
