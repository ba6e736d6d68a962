package journal

import (
	"fmt"
	"strings"
	"time"
)

// FormatRunOrg renders a run as an Org-mode block suitable for pasting
// into an ops journal. Structured facts live in a PROPERTIES drawer for
// easy search; findings follow as a plain list.
func FormatRunOrg(run RunRecord, findings []FindingRecord) string {
	heading := fmt.Sprintf("** Check: %s (%s)", run.Dir, shortID(run.RunID))
	when := run.RunTime.UTC().Format(time.RFC3339)

	var b strings.Builder
	b.WriteString(heading)
	b.WriteString("\n")
	b.WriteString(":PROPERTIES:\n")
	b.WriteString(fmt.Sprintf(":RUN_ID: %s\n", run.RunID))
	b.WriteString(fmt.Sprintf(":RUN_TIME: %s\n", when))
	b.WriteString(fmt.Sprintf(":DIR: %s\n", run.Dir))
	b.WriteString(fmt.Sprintf(":BROKERS: %d\n", run.Brokers))
	b.WriteString(fmt.Sprintf(":CUSTOMERS: %d\n", run.Customers))
	b.WriteString(fmt.Sprintf(":SESSIONS: %d\n", run.Sessions))
	b.WriteString(fmt.Sprintf(":CREDIT_ENTRIES: %d\n", run.CreditEntries))
	b.WriteString(fmt.Sprintf(":CREDIT_LINES: %d\n", run.CreditLines))
	b.WriteString(fmt.Sprintf(":ERRORS: %d\n", run.Errors))
	b.WriteString(fmt.Sprintf(":WARNINGS: %d\n", run.Warnings))
	b.WriteString(fmt.Sprintf(":INFOS: %d\n", run.Infos))
	b.WriteString(":END:\n")

	if len(findings) > 0 {
		b.WriteString("\n*** Findings\n")
		for _, f := range findings {
			b.WriteString(fmt.Sprintf("- %s [%s] %s\n", f.Severity, f.Code, f.Msg))
		}
	}

	return b.String()
}

// FormatRunsOrg renders multiple runs separated by blank lines.
func FormatRunsOrg(runs []RunRecord) string {
	var b strings.Builder
	for i, r := range runs {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(FormatRunOrg(r, nil))
	}
	return b.String()
}

func shortID(full string) string {
	if len(full) <= 8 {
		return full
	}
	return full[:8]
}
