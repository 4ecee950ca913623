package main

import (
	"fmt"
	"os"
	"path/filepath"

	"ofertadiff/adapters/excel"
	"ofertadiff/adapters/pdf"
	"ofertadiff/app"
	"ofertadiff/domain/pricelist"
	"ofertadiff/internal"
	"ofertadiff/internal/config"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	// Load .env if present; environment variables win over defaults
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "ofertadiff",
		Short: "Consolidate PDF price lists into a spreadsheet and diff two offer tables",
	}

	rootCmd.AddCommand(newRunCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRunCmd() *cobra.Command {
	var inputDir string
	var outputFile string
	var anchor string
	var duplicatePolicy string

	cmd := &cobra.Command{
		Use:   "run [pdf-paths...]",
		Short: "Process price-list PDFs into a consolidated report",
		Long: `Process the given PDF price lists (or every PDF in the input directory)
into one spreadsheet with a sheet per document. When exactly two documents
survive extraction, a "Diferenças" sheet compares them row by row.

Example: ofertadiff run --input-dir ./ofertas --output Tabelas_Consolidadas.xlsx`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if inputDir != "" {
				cfg.Input.Dir = inputDir
			}
			if outputFile != "" {
				cfg.Output.File = outputFile
			}
			if anchor != "" {
				cfg.Parse.HeaderAnchor = anchor
			}
			if duplicatePolicy != "" {
				policy, ok := pricelist.ParseDuplicatePolicy(duplicatePolicy)
				if !ok {
					return fmt.Errorf("invalid duplicate policy %q (use keep-first, keep-last or reject)", duplicatePolicy)
				}
				cfg.Parse.Duplicates = policy
			}

			paths := args
			if len(paths) == 0 {
				paths, err = listPDFs(cfg.Input.Dir)
				if err != nil {
					return err
				}
			}
			if len(paths) == 0 {
				return fmt.Errorf("no PDF documents found in %s", cfg.Input.Dir)
			}

			return runPipeline(cmd, cfg, paths)
		},
	}

	cmd.Flags().StringVar(&inputDir, "input-dir", "", "Directory scanned for PDF price lists (default: INPUT_DIR or .)")
	cmd.Flags().StringVar(&outputFile, "output", "", "Report file path (default: Tabelas_Consolidadas.xlsx next to the first document)")
	cmd.Flags().StringVar(&anchor, "anchor", "", "Header anchor token (default: "+pricelist.DefaultHeaderAnchor+")")
	cmd.Flags().StringVar(&duplicatePolicy, "duplicate-policy", "", "Duplicate key policy: keep-first, keep-last or reject")

	return cmd
}

func runPipeline(cmd *cobra.Command, cfg *config.Config, paths []string) error {
	logger := internal.NewDefaultLogger()

	pipeline := app.NewPipeline(
		pdf.NewExtractor(logger),
		excel.NewWriter(logger),
		app.Options{
			HeaderAnchor: cfg.Parse.HeaderAnchor,
			Duplicates:   cfg.Parse.Duplicates,
			LabelFor:     pdf.DateLabel,
		},
		logger,
	)

	result, err := pipeline.Run(cmd.Context(), paths, cfg.DefaultOutputFile(paths[0]))
	if err != nil {
		return err
	}

	fmt.Printf("Processed %d document(s), skipped %d\n", len(result.Processed), len(result.Skipped))
	if result.Diff != nil && !result.Diff.Empty() {
		fmt.Printf("Differences found: %d entries (%s x %s)\n", len(result.Diff.Entries), result.Diff.LabelA, result.Diff.LabelB)
	}
	fmt.Printf("Report: %s\n", result.OutputPath)
	return nil
}

func listPDFs(dir string) ([]string, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.pdf"))
	if err != nil {
		return nil, err
	}
	return paths, nil
}
