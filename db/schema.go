package db

import (
	"database/sql"
	"fmt"
)

const Schema = `
CREATE TABLE IF NOT EXISTS employees (
    id SERIAL PRIMARY KEY,
    full_name VARCHAR(255) NOT NULL UNIQUE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

-- One record per employee per day. The unique key is what makes check-in
-- safe against double submits and concurrent devices.
CREATE TABLE IF NOT EXISTS attendance_records (
    id UUID PRIMARY KEY,
    employee_id INTEGER NOT NULL,
    work_date DATE NOT NULL,
    check_in_time TIME(0),
    check_out_time TIME(0),
    total_hours NUMERIC(5,2),
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    UNIQUE(employee_id, work_date),
    CHECK (check_out_time IS NULL OR (check_in_time IS NOT NULL AND check_out_time > check_in_time))
);

CREATE INDEX IF NOT EXISTS attendance_records_work_date_idx ON attendance_records (work_date);

-- A NULL employee_id is a broadcast entry for everyone on that date.
CREATE TABLE IF NOT EXISTS roster_entries (
    id SERIAL PRIMARY KEY,
    employee_id INTEGER,
    shift_date DATE NOT NULL,
    shift_start TIMESTAMPTZ NOT NULL,
    shift_end TIMESTAMPTZ NOT NULL,
    task_notes TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    CHECK (shift_end > shift_start)
);

CREATE INDEX IF NOT EXISTS roster_entries_shift_date_idx ON roster_entries (shift_date);
`

// InitSchema initializes the database schema
func InitSchema(db *sql.DB) error {
	_, err := db.Exec(Schema)
	if err != nil {
		return fmt.Errorf("error initializing database schema: %w", err)
	}
	return nil
}
