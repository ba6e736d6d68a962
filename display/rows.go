// Package display renders resolver results and validation reports as
// plain text for a terminal. Output is deterministic so it can be
// printed, logged, or diffed.
package display

import (
	"fmt"
	"strings"
	"time"

	"github.com/rustyeddy/fxcredit/resolve"
	"github.com/rustyeddy/fxcredit/venue"
)

// Row is one formatted line of output: a label, its value, and an
// optional status marker.
type Row struct {
	Label  string
	Value  string
	Status string
}

// Table renders rows as aligned label/value lines. A row's status, when
// set, trails the value in brackets.
func Table(rows []Row) string {
	width := 0
	for _, r := range rows {
		if len(r.Label) > width {
			width = len(r.Label)
		}
	}

	var b strings.Builder
	for _, r := range rows {
		fmt.Fprintf(&b, "  %-*s  %s", width, r.Label, r.Value)
		if r.Status != "" {
			fmt.Fprintf(&b, "  [%s]", r.Status)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// SessionRows lays out a resolved session.
func SessionRows(d resolve.SessionDetail) []Row {
	rows := []Row{
		{Label: "Session", Value: d.Session.ID},
	}
	if d.Session.Protocol != "" {
		rows = append(rows, Row{Label: "Protocol", Value: d.Session.Protocol})
	}
	role := "prime broker"
	if d.Broker.IsCentral {
		role = "central prime broker"
	}
	return append(rows,
		Row{Label: "Customer", Value: fmt.Sprintf("%s (%s)", d.Customer.Name, d.Customer.ID)},
		Row{Label: "Broker", Value: fmt.Sprintf("%s (%s)", d.Broker.Name, d.Broker.ID)},
		Row{Label: "Role", Value: role},
	)
}

// CreditRows lays out a raw credit entry.
func CreditRows(e venue.CreditEntry) []Row {
	return []Row{
		{Label: "Customer", Value: e.CustomerID},
		{Label: "Credit limit", Value: money(e.Limit, e.Currency)},
		{Label: "Exposure", Value: money(e.Exposure, e.Currency)},
		{Label: "Last updated", Value: e.LastUpdated.UTC().Format(time.RFC3339)},
	}
}

// ExposureRows lays out a customer exposure check. The headroom row
// carries the status marker.
func ExposureRows(res resolve.ExposureResult) []Row {
	return []Row{
		{Label: "Customer", Value: res.CustomerID},
		{Label: "Credit limit", Value: money(res.Limit, res.Currency)},
		{Label: "Exposure", Value: money(res.Exposure, res.Currency)},
		{Label: "Headroom", Value: money(res.Headroom, res.Currency), Status: string(res.Status)},
	}
}

// BrokerRows lays out a broker line check. The available row carries the
// status marker.
func BrokerRows(res resolve.BrokerExposureResult) []Row {
	return []Row{
		{Label: "Broker", Value: res.BrokerID},
		{Label: "Central broker", Value: res.CentralBrokerID},
		{Label: "Line", Value: money(res.Line, res.Currency)},
		{Label: "Issued", Value: fmt.Sprintf("%s across %s", money(res.Issued, res.Currency), plural(res.Customers, "customer"))},
		{Label: "Utilization", Value: Percent(res.Utilization)},
		{Label: "Available", Value: money(res.Available, res.Currency), Status: string(res.Status)},
	}
}

// DiffRows lays out a what-if comparison. Unchanged quantities render
// once, changed ones as "before -> after". The headroom row carries the
// simulated status.
func DiffRows(before, after resolve.ExposureResult) []Row {
	return []Row{
		{Label: "Customer", Value: before.CustomerID},
		{Label: "Credit limit", Value: shifted(money(before.Limit, before.Currency), money(after.Limit, after.Currency))},
		{Label: "Exposure", Value: shifted(money(before.Exposure, before.Currency), money(after.Exposure, after.Currency))},
		{Label: "Headroom", Value: shifted(money(before.Headroom, before.Currency), money(after.Headroom, after.Currency)), Status: string(after.Status)},
	}
}

// ErrorRow maps a resolver failure into a display row. Missing records
// carry status not_found, anything else plain error.
func ErrorRow(err error) Row {
	status := "error"
	if resolve.IsNotFound(err) {
		status = "not_found"
	}
	return Row{Label: "Error", Value: err.Error(), Status: status}
}

// CountRows lists per-document record counts.
func CountRows(c venue.Counts) []Row {
	return []Row{
		{Label: "prime brokers", Value: fmt.Sprintf("%d", c.Brokers)},
		{Label: "customers", Value: fmt.Sprintf("%d", c.Customers)},
		{Label: "sessions", Value: fmt.Sprintf("%d", c.Sessions)},
		{Label: "credit entries", Value: fmt.Sprintf("%d", c.CreditEntries)},
		{Label: "broker lines", Value: fmt.Sprintf("%d", c.CreditLines)},
	}
}

// Percent renders a ratio as a percentage with one decimal.
func Percent(v float64) string {
	return fmt.Sprintf("%.1f%%", 100*v)
}

func money(v float64, currency string) string {
	if currency == "" {
		return venue.Money(v)
	}
	return venue.Money(v) + " " + currency
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

func shifted(from, to string) string {
	if from == to {
		return to
	}
	return from + " -> " + to
}
