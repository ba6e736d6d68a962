// Package check validates a loaded credit registry. It walks every
// cross-document reference and every credit relationship and reports all
// findings from a single pass rather than stopping at the first problem,
// so one run gives the full picture of a data set.
package check

import (
	"fmt"
	"strings"
	"time"

	"github.com/rustyeddy/fxcredit/venue"
)

// Severity grades a finding. Errors break referential integrity, warnings
// flag risk or data-quality conditions, info is operational notice.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Finding codes.
const (
	CodeDanglingRef     = "DANGLING_REF"
	CodeCentralConflict = "CENTRAL_PB_CONFLICT"
	CodeNoCentral       = "NO_CENTRAL_PB"
	CodeCreditBreach    = "CREDIT_BREACH"
	CodeOvercommitted   = "LINE_OVERCOMMITTED"
	CodeHighUtilization = "LINE_HIGH_UTILIZATION"
	CodeStaleCredit     = "STALE_CREDIT"
	CodeNoCreditEntry   = "NO_CREDIT_ENTRY"
	CodeMultiSession    = "MULTIPLE_SESSIONS"
)

// Finding is a single validation observation. For an unresolved reference
// Source names the referencing record kind, RefID the referencing record's
// id and TargetID the id that failed to resolve. Msg is always set and
// readable on its own.
type Finding struct {
	Severity Severity
	Code     string
	Source   string
	RefID    string
	TargetID string
	Msg      string
}

// Report collects every finding from one validation pass. Findings are
// data, not errors: the caller decides what, if anything, is fatal.
type Report struct {
	Findings []Finding
}

func (r *Report) add(f Finding) {
	r.Findings = append(r.Findings, f)
}

// Unresolved returns just the broken references.
func (r Report) Unresolved() []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if f.Code == CodeDanglingRef {
			out = append(out, f)
		}
	}
	return out
}

// BySeverity returns the findings carrying the given severity, in report
// order.
func (r Report) BySeverity(sev Severity) []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if f.Severity == sev {
			out = append(out, f)
		}
	}
	return out
}

// HasErrors reports whether any finding is severity error.
func (r Report) HasErrors() bool {
	for _, f := range r.Findings {
		if f.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Counts tallies findings per severity.
func (r Report) Counts() (errors, warnings, infos int) {
	for _, f := range r.Findings {
		switch f.Severity {
		case SeverityError:
			errors++
		case SeverityWarning:
			warnings++
		case SeverityInfo:
			infos++
		}
	}
	return errors, warnings, infos
}

// Policy tunes the soft checks. A zero Now means time.Now at evaluation,
// a zero StaleAfter disables the staleness check.
type Policy struct {
	StaleAfter      time.Duration
	HighUtilization float64
	Now             time.Time
}

// DefaultPolicy flags credit data older than a day and broker lines at or
// above 90% utilization.
func DefaultPolicy() Policy {
	return Policy{
		StaleAfter:      24 * time.Hour,
		HighUtilization: 0.90,
	}
}

// Evaluate runs every check against the registry and returns the full
// report. The registry is never mutated, and the walk order is fixed so
// identical inputs produce identical reports.
func Evaluate(pol Policy, reg *venue.Registry) Report {
	now := pol.Now
	if now.IsZero() {
		now = time.Now()
	}

	var rep Report

	// Unresolved references, one finding per broken link.
	for _, id := range reg.SessionIDs() {
		s := reg.Sessions[id]
		if _, ok := reg.Customers[s.CustomerID]; !ok {
			rep.add(Finding{
				Severity: SeverityError,
				Code:     CodeDanglingRef,
				Source:   "session",
				RefID:    s.ID,
				TargetID: s.CustomerID,
				Msg:      fmt.Sprintf("session %q references unknown customer %q", s.ID, s.CustomerID),
			})
		}
		if _, ok := reg.Brokers[s.BrokerID]; !ok {
			rep.add(Finding{
				Severity: SeverityError,
				Code:     CodeDanglingRef,
				Source:   "session",
				RefID:    s.ID,
				TargetID: s.BrokerID,
				Msg:      fmt.Sprintf("session %q references unknown broker %q", s.ID, s.BrokerID),
			})
		}
	}
	for _, id := range reg.CreditCustomerIDs() {
		if _, ok := reg.Customers[id]; !ok {
			rep.add(Finding{
				Severity: SeverityError,
				Code:     CodeDanglingRef,
				Source:   "credit_entry",
				RefID:    id,
				TargetID: id,
				Msg:      fmt.Sprintf("credit entry references unknown customer %q", id),
			})
		}
	}
	for _, id := range reg.LineBrokerIDs() {
		l := reg.Lines[id]
		if _, ok := reg.Brokers[l.BrokerID]; !ok {
			rep.add(Finding{
				Severity: SeverityError,
				Code:     CodeDanglingRef,
				Source:   "credit_line",
				RefID:    l.BrokerID,
				TargetID: l.BrokerID,
				Msg:      fmt.Sprintf("credit line references unknown broker %q", l.BrokerID),
			})
		}
		if _, ok := reg.Brokers[l.CentralBrokerID]; !ok {
			rep.add(Finding{
				Severity: SeverityError,
				Code:     CodeDanglingRef,
				Source:   "credit_line",
				RefID:    l.BrokerID,
				TargetID: l.CentralBrokerID,
				Msg:      fmt.Sprintf("credit line for %q references unknown central broker %q", l.BrokerID, l.CentralBrokerID),
			})
		}
	}

	// Central broker bookkeeping. The hierarchy supports exactly one hub.
	central := reg.CentralBrokers()
	switch {
	case len(central) > 1:
		ids := make([]string, len(central))
		for i, b := range central {
			ids[i] = b.ID
		}
		rep.add(Finding{
			Severity: SeverityError,
			Code:     CodeCentralConflict,
			Source:   "broker",
			Msg:      fmt.Sprintf("%d brokers marked central, want exactly one: %s", len(central), strings.Join(ids, ", ")),
		})
	case len(central) == 0 && len(reg.Brokers) > 0:
		rep.add(Finding{
			Severity: SeverityWarning,
			Code:     CodeNoCentral,
			Source:   "broker",
			Msg:      "no broker is marked central",
		})
	}

	// Customer credit conditions.
	for _, id := range reg.CreditCustomerIDs() {
		e := reg.Credit[id]
		if e.Exposure > e.Limit {
			rep.add(Finding{
				Severity: SeverityWarning,
				Code:     CodeCreditBreach,
				Source:   "credit_entry",
				RefID:    id,
				Msg: fmt.Sprintf("customer %q exposure %s exceeds limit %s by %s %s",
					id, venue.Money(e.Exposure), venue.Money(e.Limit), venue.Money(e.Exposure-e.Limit), e.Currency),
			})
		}
		if pol.StaleAfter > 0 && now.Sub(e.LastUpdated) > pol.StaleAfter {
			rep.add(Finding{
				Severity: SeverityWarning,
				Code:     CodeStaleCredit,
				Source:   "credit_entry",
				RefID:    id,
				Msg:      fmt.Sprintf("credit entry for %q last updated %s, older than %s", id, e.LastUpdated.Format(time.RFC3339), pol.StaleAfter),
			})
		}
	}
	for _, id := range reg.LineBrokerIDs() {
		l := reg.Lines[id]
		if pol.StaleAfter > 0 && now.Sub(l.LastUpdated) > pol.StaleAfter {
			rep.add(Finding{
				Severity: SeverityWarning,
				Code:     CodeStaleCredit,
				Source:   "credit_line",
				RefID:    id,
				Msg:      fmt.Sprintf("credit line for %q last updated %s, older than %s", id, l.LastUpdated.Format(time.RFC3339), pol.StaleAfter),
			})
		}
	}

	// Session coverage per customer.
	for _, cid := range reg.CustomerIDs() {
		sessions := reg.SessionsForCustomer(cid)
		if len(sessions) == 0 {
			continue
		}
		if _, ok := reg.Credit[cid]; !ok {
			rep.add(Finding{
				Severity: SeverityWarning,
				Code:     CodeNoCreditEntry,
				Source:   "customer",
				RefID:    cid,
				Msg:      fmt.Sprintf("customer %q has %d active session(s) but no credit entry", cid, len(sessions)),
			})
		}
		if len(sessions) > 1 {
			rep.add(Finding{
				Severity: SeverityInfo,
				Code:     CodeMultiSession,
				Source:   "customer",
				RefID:    cid,
				Msg:      fmt.Sprintf("customer %q holds %d sessions", cid, len(sessions)),
			})
		}
	}

	// Broker line utilization: credit issued to session customers against
	// the line granted by the central broker.
	for _, bid := range reg.LineBrokerIDs() {
		line := reg.Lines[bid]
		issued, _ := reg.IssuedCredit(bid)
		switch {
		case issued > line.Limit:
			rep.add(Finding{
				Severity: SeverityWarning,
				Code:     CodeOvercommitted,
				Source:   "credit_line",
				RefID:    bid,
				Msg: fmt.Sprintf("broker %q has issued %s against a line of %s %s",
					bid, venue.Money(issued), venue.Money(line.Limit), line.Currency),
			})
		case line.Limit > 0 && pol.HighUtilization > 0 && issued/line.Limit >= pol.HighUtilization:
			rep.add(Finding{
				Severity: SeverityWarning,
				Code:     CodeHighUtilization,
				Source:   "credit_line",
				RefID:    bid,
				Msg: fmt.Sprintf("broker %q line is %.1f%% utilized (%s of %s %s)",
					bid, 100*issued/line.Limit, venue.Money(issued), venue.Money(line.Limit), line.Currency),
			})
		}
	}

	return rep
}
