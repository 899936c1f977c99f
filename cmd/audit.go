package cmd

import (
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/spf13/cobra"
	"github.com/wegman-software/osmclean/internal/audit"
	"github.com/wegman-software/osmclean/internal/config"
	"github.com/wegman-software/osmclean/internal/logger"
	"github.com/wegman-software/osmclean/internal/osmfile"
)

var auditCmd = &cobra.Command{
	Use:   "audit <input>",
	Short: "Report the values of street, city, state, county, postcode and other tags",
	Long: `Scan an OSM file once and report, as YAML:
  - street names with unexpected street types or abbreviated directions
  - counts of cities, states, countries and postal codes
  - distinct county names and numbers, max speeds, denominations and religions
  - optionally every tag key with its distinct values (--all-tags)

Example:
  osmclean audit sample.osm
  osmclean audit --all-tags -o report.yaml richmond.osm`,
	Args: cobra.ExactArgs(1),
	Run:  runAudit,
}

func init() {
	rootCmd.AddCommand(auditCmd)

	auditCmd.Flags().StringVarP(&cfg.OutputFile, "output", "o", "", "Write the report to this file instead of stdout")
	auditCmd.Flags().BoolVar(&cfg.AuditAllTags, "all-tags", false, "Include every tag key with its distinct values")
	auditCmd.Flags().StringVar(&cfg.RulesFile, "rules", "", "YAML file or URL overriding the lookup tables")
}

func runAudit(cmd *cobra.Command, args []string) {
	log := logger.Get()
	cfg.InputFile = args[0]

	ctx, cancel := signalContext()
	defer cancel()

	rules, err := config.LoadRules(ctx, cfg.RulesFile)
	if err != nil {
		exitWithError("Failed to load rules", err)
	}

	src, err := osmfile.Open(ctx, cfg.InputFile)
	if err != nil {
		exitWithError("Failed to open input", err)
	}
	defer src.Close()

	log.Info("Auditing", zap.String("input", cfg.InputFile))

	report, err := audit.Run(ctx, src, audit.New(rules.Tables, audit.Options{AllTags: cfg.AuditAllTags}))
	if err != nil {
		exitWithError("Audit failed", err)
	}

	var out io.Writer = os.Stdout
	if cfg.OutputFile != "" {
		f, err := os.Create(cfg.OutputFile)
		if err != nil {
			exitWithError("Failed to create report file", err)
		}
		defer f.Close()
		out = f
	}

	if err := report.WriteYAML(out); err != nil {
		exitWithError("Failed to write report", err)
	}

	log.Info("Audit complete", zap.Int64("elements", report.Elements))
}
