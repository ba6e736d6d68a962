package journal

const Schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id TEXT PRIMARY KEY,
	run_time DATETIME NOT NULL,
	dir TEXT NOT NULL,
	brokers INTEGER NOT NULL,
	customers INTEGER NOT NULL,
	sessions INTEGER NOT NULL,
	credit_entries INTEGER NOT NULL,
	credit_lines INTEGER NOT NULL,
	errors INTEGER NOT NULL,
	warnings INTEGER NOT NULL,
	infos INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS findings (
	run_id TEXT NOT NULL,
	seq INTEGER NOT NULL,
	severity TEXT NOT NULL,
	code TEXT NOT NULL,
	source TEXT NOT NULL,
	ref_id TEXT NOT NULL,
	target_id TEXT NOT NULL,
	msg TEXT NOT NULL,
	PRIMARY KEY (run_id, seq)
);

CREATE INDEX IF NOT EXISTS idx_runs_time ON runs(run_time);
`
