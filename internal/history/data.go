package history

import (
	"database/sql"
	"time"
)

type Repository struct {
	db *sql.DB
}

// NewRepository creates a new history repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// EnableWAL enables Write-Ahead Logging so reads don't wait on the writer
func (r *Repository) EnableWAL() error {
	_, err := r.db.Exec("PRAGMA journal_mode=WAL")
	return err
}

// InsertBatch writes entries in one transaction
func (r *Repository) InsertBatch(entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	// Defer a rollback in case anything fails.
	defer func() {
		_ = tx.Rollback()
	}()

	stmt, err := tx.Prepare(`
		INSERT INTO selections (school_name, school_code, office_code, source, selected_at)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, e := range entries {
		if _, err := stmt.Exec(e.Identity.Name, e.Identity.SchoolCode, e.Identity.OfficeCode, e.Source, e.SelectedAt.UnixMilli()); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Recent returns the most recently selected schools since the cutoff, newest first
func (r *Repository) Recent(since time.Time, limit int) ([]RecentSchool, error) {
	rows, err := r.db.Query(`
		SELECT school_name, school_code, office_code, COUNT(*), MAX(selected_at)
		FROM selections
		WHERE selected_at > ?
		GROUP BY office_code, school_code
		ORDER BY MAX(selected_at) DESC
		LIMIT ?`, since.UnixMilli(), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	// Avoid nil slices in JSON response
	schools := []RecentSchool{}
	for rows.Next() {
		var s RecentSchool
		var last int64
		if err := rows.Scan(&s.Name, &s.SchoolCode, &s.OfficeCode, &s.Selections, &last); err != nil {
			return nil, err
		}
		s.LastSelectedAt = time.UnixMilli(last).UTC()
		schools = append(schools, s)
	}
	return schools, rows.Err()
}

// DeleteBefore removes selections older than the cutoff
func (r *Repository) DeleteBefore(cutoff time.Time) error {
	_, err := r.db.Exec("DELETE FROM selections WHERE selected_at <= ?", cutoff.UnixMilli())
	return err
}
