package journal

import (
	"database/sql"
	"fmt"
	"time"
)

// GetRun returns a single run by ID.
func (j *SQLite) GetRun(runID string) (RunRecord, error) {
	var rec RunRecord

	row := j.db.QueryRow(`
		SELECT run_id, run_time, dir, brokers, customers, sessions, credit_entries, credit_lines, errors, warnings, infos
		FROM runs
		WHERE run_id = ?`, runID)

	err := row.Scan(
		&rec.RunID,
		&rec.RunTime,
		&rec.Dir,
		&rec.Brokers,
		&rec.Customers,
		&rec.Sessions,
		&rec.CreditEntries,
		&rec.CreditLines,
		&rec.Errors,
		&rec.Warnings,
		&rec.Infos,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return RunRecord{}, fmt.Errorf("run %q not found", runID)
		}
		return RunRecord{}, err
	}
	return rec, nil
}

// ListRunsBetween returns runs whose run_time is within [start, end).
func (j *SQLite) ListRunsBetween(start, end time.Time) ([]RunRecord, error) {
	rows, err := j.db.Query(`
		SELECT run_id, run_time, dir, brokers, customers, sessions, credit_entries, credit_lines, errors, warnings, infos
		FROM runs
		WHERE run_time >= ? AND run_time < ?
		ORDER BY run_time ASC`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunRecord
	for rows.Next() {
		var rec RunRecord
		if err := rows.Scan(
			&rec.RunID,
			&rec.RunTime,
			&rec.Dir,
			&rec.Brokers,
			&rec.Customers,
			&rec.Sessions,
			&rec.CreditEntries,
			&rec.CreditLines,
			&rec.Errors,
			&rec.Warnings,
			&rec.Infos,
		); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListFindings returns a run's findings in stored order.
func (j *SQLite) ListFindings(runID string) ([]FindingRecord, error) {
	rows, err := j.db.Query(`
		SELECT run_id, seq, severity, code, source, ref_id, target_id, msg
		FROM findings
		WHERE run_id = ?
		ORDER BY seq ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []FindingRecord
	for rows.Next() {
		var rec FindingRecord
		if err := rows.Scan(
			&rec.RunID,
			&rec.Seq,
			&rec.Severity,
			&rec.Code,
			&rec.Source,
			&rec.RefID,
			&rec.TargetID,
			&rec.Msg,
		); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
