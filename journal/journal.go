// Package journal persists validation runs so a desk can answer "what
// did the checker say yesterday" without re-running it against data that
// has since changed.
package journal

import (
	"time"

	"github.com/rustyeddy/fxcredit/check"
	"github.com/rustyeddy/fxcredit/venue"
)

// RunRecord is one validation run: when it ran, over which directory,
// what loaded and how the findings tallied.
type RunRecord struct {
	RunID         string
	RunTime       time.Time
	Dir           string
	Brokers       int
	Customers     int
	Sessions      int
	CreditEntries int
	CreditLines   int
	Errors        int
	Warnings      int
	Infos         int
}

// FindingRecord is one finding stored under its run, numbered in report
// order.
type FindingRecord struct {
	RunID    string
	Seq      int
	Severity string
	Code     string
	Source   string
	RefID    string
	TargetID string
	Msg      string
}

// Journal records validation runs.
type Journal interface {
	RecordRun(RunRecord, []FindingRecord) error
	Close() error
}

// NewRunRecord captures a run over a loaded registry.
func NewRunRecord(runID string, at time.Time, dir string, counts venue.Counts, rep check.Report) RunRecord {
	errors, warnings, infos := rep.Counts()
	return RunRecord{
		RunID:         runID,
		RunTime:       at,
		Dir:           dir,
		Brokers:       counts.Brokers,
		Customers:     counts.Customers,
		Sessions:      counts.Sessions,
		CreditEntries: counts.CreditEntries,
		CreditLines:   counts.CreditLines,
		Errors:        errors,
		Warnings:      warnings,
		Infos:         infos,
	}
}

// FindingRecords flattens a report for storage.
func FindingRecords(runID string, rep check.Report) []FindingRecord {
	out := make([]FindingRecord, len(rep.Findings))
	for i, f := range rep.Findings {
		out[i] = FindingRecord{
			RunID:    runID,
			Seq:      i + 1,
			Severity: string(f.Severity),
			Code:     f.Code,
			Source:   f.Source,
			RefID:    f.RefID,
			TargetID: f.TargetID,
			Msg:      f.Msg,
		}
	}
	return out
}
