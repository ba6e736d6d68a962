package journal

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

// SQLite stores runs in a single database file.
type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		return nil, err
	}

	return &SQLite{db: db}, nil
}

// RecordRun inserts the run and its findings in one transaction.
func (j *SQLite) RecordRun(run RunRecord, findings []FindingRecord) error {
	tx, err := j.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`
		INSERT INTO runs
		(run_id, run_time, dir, brokers, customers, sessions, credit_entries, credit_lines, errors, warnings, infos)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.RunID, run.RunTime, run.Dir, run.Brokers, run.Customers,
		run.Sessions, run.CreditEntries, run.CreditLines,
		run.Errors, run.Warnings, run.Infos,
	); err != nil {
		return err
	}

	for _, f := range findings {
		if _, err := tx.Exec(`
			INSERT INTO findings
			(run_id, seq, severity, code, source, ref_id, target_id, msg)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			f.RunID, f.Seq, f.Severity, f.Code, f.Source, f.RefID, f.TargetID, f.Msg,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
