package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/fxcredit/check"
	"github.com/rustyeddy/fxcredit/display"
	"github.com/rustyeddy/fxcredit/internal/id"
	"github.com/rustyeddy/fxcredit/journal"
	"github.com/rustyeddy/fxcredit/logger"
	"github.com/rustyeddy/fxcredit/venue"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Load and validate the credit configuration",
	Long: `Load all four credit documents, resolve every cross-reference and
report findings.

Severities:
  error    broken references and central-broker conflicts
  warning  breaches, overcommitted lines, stale or missing credit data
  info     operational notes

The command exits non-zero when any finding is severity error.

Examples:
  fxcredit check
  fxcredit check --csv findings.csv
  fxcredit check --journal ./fxcredit.sqlite`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

var (
	checkCSVPath     string
	checkJournalPath string
	checkStaleAfter  time.Duration
)

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVar(&checkCSVPath, "csv", "", "also write findings to this CSV file")
	checkCmd.Flags().StringVar(&checkJournalPath, "journal", "", "record the run in this SQLite journal")
	checkCmd.Flags().DurationVar(&checkStaleAfter, "stale-after", 24*time.Hour, "flag credit data older than this (0 disables)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	reg, err := loadRegistry()
	if err != nil {
		return err
	}

	pol := check.DefaultPolicy()
	pol.StaleAfter = checkStaleAfter
	rep := check.Evaluate(pol, reg)

	out, err := display.RenderSummary(display.NewSummary(dataDir, reg, rep))
	if err != nil {
		return err
	}
	fmt.Print(out)

	if checkCSVPath != "" {
		if err := writeFindingsCSV(checkCSVPath, rep); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
		fmt.Printf("✓ Findings written to %s\n", checkCSVPath)
	}

	if checkJournalPath != "" {
		runID, err := recordRun(checkJournalPath, reg, rep)
		if err != nil {
			return fmt.Errorf("journal run: %w", err)
		}
		fmt.Printf("✓ Run %s recorded in %s\n", runID, checkJournalPath)
	}

	if rep.HasErrors() {
		errors, _, _ := rep.Counts()
		return fmt.Errorf("%d finding(s) at severity error", errors)
	}
	return nil
}

func writeFindingsCSV(path string, rep check.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return display.WriteFindingsCSV(f, rep.Findings)
}

func recordRun(dbPath string, reg *venue.Registry, rep check.Report) (string, error) {
	j, err := journal.NewSQLite(dbPath)
	if err != nil {
		return "", fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	runID := id.New()
	run := journal.NewRunRecord(runID, time.Now().UTC(), dataDir, reg.Counts(), rep)
	if err := j.RecordRun(run, journal.FindingRecords(runID, rep)); err != nil {
		return "", err
	}

	logger.Get().WithComponent("journal").WithFields(logger.Fields{
		"run_id": runID,
		"db":     dbPath,
	}).Debug("recorded validation run")

	return runID, nil
}
