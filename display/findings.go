package display

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/rustyeddy/fxcredit/check"
)

func glyph(sev check.Severity) string {
	switch sev {
	case check.SeverityError:
		return "✗"
	case check.SeverityWarning:
		return "!"
	default:
		return "·"
	}
}

// FormatFinding renders one finding as a single line.
func FormatFinding(f check.Finding) string {
	return fmt.Sprintf("%s [%s] %s", glyph(f.Severity), f.Code, f.Msg)
}

// FormatFindings renders a whole report, one finding per line, in report
// order.
func FormatFindings(rep check.Report) string {
	var b strings.Builder
	for _, f := range rep.Findings {
		b.WriteString(FormatFinding(f))
		b.WriteString("\n")
	}
	return b.String()
}

// WriteFindingsCSV writes findings as CSV with a header row.
func WriteFindingsCSV(w io.Writer, findings []check.Finding) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"severity", "code", "source", "ref_id", "target_id", "msg"}); err != nil {
		return err
	}
	for _, f := range findings {
		row := []string{string(f.Severity), f.Code, f.Source, f.RefID, f.TargetID, f.Msg}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
