package journal

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/fxcredit/check"
	"github.com/rustyeddy/fxcredit/venue"
)

func newTestSQLite(t *testing.T) (*SQLite, string) {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")

	j, err := NewSQLite(path)
	require.NoError(t, err)

	return j, path
}

func testRun(id string, at time.Time) RunRecord {
	return RunRecord{
		RunID:         id,
		RunTime:       at,
		Dir:           "./data",
		Brokers:       3,
		Customers:     2,
		Sessions:      3,
		CreditEntries: 2,
		CreditLines:   2,
		Warnings:      1,
		Infos:         1,
	}
}

func TestSQLiteSchemaCreated(t *testing.T) {
	t.Parallel()

	j, path := newTestSQLite(t)
	assert.NoError(t, j.Close())

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	rows, err := db.Query(`SELECT name FROM sqlite_master WHERE type='table' AND name IN ('runs','findings')`)
	require.NoError(t, err)
	defer rows.Close()

	found := map[string]bool{}
	for rows.Next() {
		var name string
		assert.NoError(t, rows.Scan(&name))
		found[name] = true
	}
	assert.NoError(t, rows.Err())

	assert.True(t, found["runs"])
	assert.True(t, found["findings"])
}

func TestSQLiteRecordRun(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	t.Cleanup(func() { _ = j.Close() })

	at := time.Date(2025, 8, 1, 9, 30, 0, 0, time.UTC)
	run := testRun("R1", at)
	findings := []FindingRecord{
		{RunID: "R1", Seq: 1, Severity: "warning", Code: "CREDIT_BREACH", Source: "credit_entry", RefID: "Cust_2", Msg: "over"},
		{RunID: "R1", Seq: 2, Severity: "info", Code: "MULTIPLE_SESSIONS", Source: "customer", RefID: "Cust_1", Msg: "two"},
	}

	require.NoError(t, j.RecordRun(run, findings))

	got, err := j.GetRun("R1")
	require.NoError(t, err)
	assert.True(t, got.RunTime.Equal(at))
	got.RunTime = run.RunTime
	assert.Equal(t, run, got)

	stored, err := j.ListFindings("R1")
	require.NoError(t, err)
	assert.Equal(t, findings, stored)
}

func TestSQLiteRecordRunDuplicate(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	t.Cleanup(func() { _ = j.Close() })

	at := time.Date(2025, 8, 1, 9, 30, 0, 0, time.UTC)
	require.NoError(t, j.RecordRun(testRun("R1", at), nil))
	assert.Error(t, j.RecordRun(testRun("R1", at.Add(time.Minute)), nil))
}

func TestSQLiteGetRunNotFound(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	t.Cleanup(func() { _ = j.Close() })

	_, err := j.GetRun("missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestSQLiteListRunsBetween(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	t.Cleanup(func() { _ = j.Close() })

	base := time.Date(2025, 8, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, j.RecordRun(testRun("R1", base), nil))
	require.NoError(t, j.RecordRun(testRun("R2", base.Add(time.Hour)), nil))
	require.NoError(t, j.RecordRun(testRun("R3", base.Add(2*time.Hour)), nil))

	runs, err := j.ListRunsBetween(base.Add(30*time.Minute), base.Add(90*time.Minute))
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "R2", runs[0].RunID)

	runs, err = j.ListRunsBetween(base, base.Add(24*time.Hour))
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, "R1", runs[0].RunID)
	assert.Equal(t, "R3", runs[2].RunID)

	runs, err = j.ListRunsBetween(base.Add(-2*time.Hour), base.Add(-time.Hour))
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestNewRunRecord(t *testing.T) {
	t.Parallel()

	rep := check.Report{Findings: []check.Finding{
		{Severity: check.SeverityWarning, Code: check.CodeCreditBreach, Source: "credit_entry", RefID: "Cust_2", Msg: "over"},
		{Severity: check.SeverityInfo, Code: check.CodeMultiSession, Source: "customer", RefID: "Cust_1", Msg: "two"},
	}}
	counts := venue.Counts{Brokers: 3, Customers: 2, Sessions: 3, CreditEntries: 2, CreditLines: 2}
	at := time.Date(2025, 8, 1, 9, 30, 0, 0, time.UTC)

	run := NewRunRecord("R9", at, "./data", counts, rep)
	assert.Equal(t, testRun("R9", at), run)

	recs := FindingRecords("R9", rep)
	require.Len(t, recs, 2)
	assert.Equal(t, 1, recs[0].Seq)
	assert.Equal(t, "warning", recs[0].Severity)
	assert.Equal(t, "R9", recs[1].RunID)
	assert.Equal(t, 2, recs[1].Seq)

	assert.Empty(t, FindingRecords("R9", check.Report{}))
}
