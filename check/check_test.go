package check

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/fxcredit/config"
	"github.com/rustyeddy/fxcredit/venue"
)

var updated = time.Date(2025, 8, 1, 9, 0, 0, 0, time.UTC)

// freshPolicy pins Now just after the fixture timestamps so staleness
// never fires unless a test wants it to.
func freshPolicy() Policy {
	pol := DefaultPolicy()
	pol.Now = updated.Add(time.Hour)
	return pol
}

func consistentRegistry() *venue.Registry {
	reg := venue.NewRegistry()
	reg.Brokers["CPB_1"] = venue.PrimeBroker{ID: "CPB_1", Name: "Central One", IsCentral: true}
	reg.Brokers["PB_A"] = venue.PrimeBroker{ID: "PB_A", Name: "Alpha"}
	reg.Customers["Cust_1"] = venue.Customer{ID: "Cust_1", Name: "Hedge Fund Gamma"}
	reg.Sessions["S_1"] = venue.Session{ID: "S_1", CustomerID: "Cust_1", BrokerID: "PB_A", Protocol: "FIX 4.2"}
	reg.Credit["Cust_1"] = venue.CreditEntry{CustomerID: "Cust_1", Limit: 1_000_000, Exposure: 250_000, Currency: "USD", LastUpdated: updated}
	reg.Lines["PB_A"] = venue.CreditLine{BrokerID: "PB_A", CentralBrokerID: "CPB_1", Limit: 5_000_000, Currency: "USD", LastUpdated: updated}
	return reg
}

func byCode(rep Report, code string) []Finding {
	var out []Finding
	for _, f := range rep.Findings {
		if f.Code == code {
			out = append(out, f)
		}
	}
	return out
}

func TestEvaluateConsistent(t *testing.T) {
	t.Parallel()

	rep := Evaluate(freshPolicy(), consistentRegistry())
	assert.Empty(t, rep.Findings)
	assert.False(t, rep.HasErrors())
	assert.Empty(t, rep.Unresolved())
}

func TestEvaluateDanglingRefs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(reg *venue.Registry)
		source string
		refID  string
		target string
	}{
		{
			name: "session to missing customer",
			mutate: func(reg *venue.Registry) {
				s := reg.Sessions["S_1"]
				s.CustomerID = "Cust_missing"
				reg.Sessions["S_1"] = s
			},
			source: "session", refID: "S_1", target: "Cust_missing",
		},
		{
			name: "session to missing broker",
			mutate: func(reg *venue.Registry) {
				s := reg.Sessions["S_1"]
				s.BrokerID = "PB_missing"
				reg.Sessions["S_1"] = s
			},
			source: "session", refID: "S_1", target: "PB_missing",
		},
		{
			name: "credit entry to missing customer",
			mutate: func(reg *venue.Registry) {
				reg.Credit["Cust_ghost"] = venue.CreditEntry{CustomerID: "Cust_ghost", Limit: 100, Currency: "USD", LastUpdated: updated}
			},
			source: "credit_entry", refID: "Cust_ghost", target: "Cust_ghost",
		},
		{
			name: "credit line to missing broker",
			mutate: func(reg *venue.Registry) {
				delete(reg.Lines, "PB_A")
				reg.Lines["PB_ghost"] = venue.CreditLine{BrokerID: "PB_ghost", CentralBrokerID: "CPB_1", Limit: 100, Currency: "USD", LastUpdated: updated}
			},
			source: "credit_line", refID: "PB_ghost", target: "PB_ghost",
		},
		{
			name: "credit line to missing central broker",
			mutate: func(reg *venue.Registry) {
				l := reg.Lines["PB_A"]
				l.CentralBrokerID = "CPB_missing"
				reg.Lines["PB_A"] = l
			},
			source: "credit_line", refID: "PB_A", target: "CPB_missing",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			reg := consistentRegistry()
			tt.mutate(reg)
			rep := Evaluate(freshPolicy(), reg)

			require.Len(t, rep.Unresolved(), 1)
			f := rep.Unresolved()[0]
			assert.Equal(t, SeverityError, f.Severity)
			assert.Equal(t, tt.source, f.Source)
			assert.Equal(t, tt.refID, f.RefID)
			assert.Equal(t, tt.target, f.TargetID)
			assert.Contains(t, f.Msg, tt.target)
			assert.True(t, rep.HasErrors())
		})
	}
}

func TestEvaluateCentralConflict(t *testing.T) {
	t.Parallel()

	reg := consistentRegistry()
	reg.Brokers["PB_A"] = venue.PrimeBroker{ID: "PB_A", Name: "Alpha", IsCentral: true}
	rep := Evaluate(freshPolicy(), reg)

	require.True(t, rep.HasErrors())
	found := byCode(rep, CodeCentralConflict)
	require.Len(t, found, 1)
	assert.Contains(t, found[0].Msg, "CPB_1")
	assert.Contains(t, found[0].Msg, "PB_A")
}

func TestEvaluateNoCentral(t *testing.T) {
	t.Parallel()

	reg := consistentRegistry()
	reg.Brokers["CPB_1"] = venue.PrimeBroker{ID: "CPB_1", Name: "Central One"}
	rep := Evaluate(freshPolicy(), reg)

	require.Len(t, rep.Findings, 1)
	assert.Equal(t, SeverityWarning, rep.Findings[0].Severity)
	assert.Equal(t, CodeNoCentral, rep.Findings[0].Code)
	assert.False(t, rep.HasErrors())
}

func TestEvaluateCreditBreach(t *testing.T) {
	t.Parallel()

	reg := consistentRegistry()
	e := reg.Credit["Cust_1"]
	e.Exposure = 1_200_000
	reg.Credit["Cust_1"] = e
	rep := Evaluate(freshPolicy(), reg)

	found := byCode(rep, CodeCreditBreach)
	require.Len(t, found, 1)
	assert.Equal(t, SeverityWarning, found[0].Severity)
	assert.Equal(t, "Cust_1", found[0].RefID)
	assert.Contains(t, found[0].Msg, "200,000")
}

func TestEvaluateExposureAtLimit(t *testing.T) {
	t.Parallel()

	// Exactly at the limit is not a breach.
	reg := consistentRegistry()
	e := reg.Credit["Cust_1"]
	e.Exposure = e.Limit
	reg.Credit["Cust_1"] = e
	rep := Evaluate(freshPolicy(), reg)

	assert.Empty(t, byCode(rep, CodeCreditBreach))
}

func TestEvaluateStaleCredit(t *testing.T) {
	t.Parallel()

	pol := DefaultPolicy()
	pol.Now = updated.Add(25 * time.Hour)
	rep := Evaluate(pol, consistentRegistry())

	found := byCode(rep, CodeStaleCredit)
	require.Len(t, found, 2)
	assert.Equal(t, "credit_entry", found[0].Source)
	assert.Equal(t, "Cust_1", found[0].RefID)
	assert.Equal(t, "credit_line", found[1].Source)
	assert.Equal(t, "PB_A", found[1].RefID)

	pol.StaleAfter = 0
	rep = Evaluate(pol, consistentRegistry())
	assert.Empty(t, byCode(rep, CodeStaleCredit))
}

func TestEvaluateNoCreditEntry(t *testing.T) {
	t.Parallel()

	reg := consistentRegistry()
	delete(reg.Credit, "Cust_1")
	rep := Evaluate(freshPolicy(), reg)

	require.Len(t, rep.Findings, 1)
	f := rep.Findings[0]
	assert.Equal(t, SeverityWarning, f.Severity)
	assert.Equal(t, CodeNoCreditEntry, f.Code)
	assert.Equal(t, "Cust_1", f.RefID)
}

func TestEvaluateMultipleSessions(t *testing.T) {
	t.Parallel()

	reg := consistentRegistry()
	reg.Sessions["S_2"] = venue.Session{ID: "S_2", CustomerID: "Cust_1", BrokerID: "PB_A", Protocol: "FIX 4.4"}
	rep := Evaluate(freshPolicy(), reg)

	require.Len(t, rep.Findings, 1)
	f := rep.Findings[0]
	assert.Equal(t, SeverityInfo, f.Severity)
	assert.Equal(t, CodeMultiSession, f.Code)
	assert.Equal(t, "Cust_1", f.RefID)

	errors, warnings, infos := rep.Counts()
	assert.Zero(t, errors)
	assert.Zero(t, warnings)
	assert.Equal(t, 1, infos)
}

func TestEvaluateLineOvercommitted(t *testing.T) {
	t.Parallel()

	reg := consistentRegistry()
	l := reg.Lines["PB_A"]
	l.Limit = 900_000
	reg.Lines["PB_A"] = l
	rep := Evaluate(freshPolicy(), reg)

	found := byCode(rep, CodeOvercommitted)
	require.Len(t, found, 1)
	assert.Equal(t, "PB_A", found[0].RefID)
	assert.Empty(t, byCode(rep, CodeHighUtilization))
}

func TestEvaluateLineHighUtilization(t *testing.T) {
	t.Parallel()

	reg := consistentRegistry()
	l := reg.Lines["PB_A"]
	l.Limit = 1_000_000
	reg.Lines["PB_A"] = l
	rep := Evaluate(freshPolicy(), reg)

	found := byCode(rep, CodeHighUtilization)
	require.Len(t, found, 1)
	assert.Contains(t, found[0].Msg, "100.0%")
	assert.Empty(t, byCode(rep, CodeOvercommitted))
}

func TestEvaluateExampleDataSet(t *testing.T) {
	t.Parallel()

	reg := config.Default()
	pol := DefaultPolicy()
	pol.Now = reg.Credit["Cust_1"].LastUpdated.Add(time.Hour)
	rep := Evaluate(pol, reg)

	assert.False(t, rep.HasErrors())
	assert.Empty(t, rep.Unresolved())

	breaches := byCode(rep, CodeCreditBreach)
	require.Len(t, breaches, 1)
	assert.Equal(t, "Cust_2", breaches[0].RefID)

	multi := byCode(rep, CodeMultiSession)
	require.Len(t, multi, 1)
	assert.Equal(t, "Cust_1", multi[0].RefID)

	errors, warnings, infos := rep.Counts()
	assert.Zero(t, errors)
	assert.Equal(t, 1, warnings)
	assert.Equal(t, 1, infos)
}

func TestDefaultPolicy(t *testing.T) {
	t.Parallel()

	pol := DefaultPolicy()
	assert.Equal(t, 24*time.Hour, pol.StaleAfter)
	assert.Equal(t, 0.90, pol.HighUtilization)
	assert.True(t, pol.Now.IsZero())
}

func TestReportBySeverity(t *testing.T) {
	t.Parallel()

	rep := Report{Findings: []Finding{
		{Severity: SeverityError, Code: CodeDanglingRef},
		{Severity: SeverityWarning, Code: CodeStaleCredit},
		{Severity: SeverityWarning, Code: CodeCreditBreach},
		{Severity: SeverityInfo, Code: CodeMultiSession},
	}}

	assert.Len(t, rep.BySeverity(SeverityError), 1)
	assert.Len(t, rep.BySeverity(SeverityWarning), 2)
	assert.Len(t, rep.BySeverity(SeverityInfo), 1)

	errors, warnings, infos := rep.Counts()
	assert.Equal(t, 1, errors)
	assert.Equal(t, 2, warnings)
	assert.Equal(t, 1, infos)
}
