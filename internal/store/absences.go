package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sadopc/absentee/internal/absence"
)

const absenceColumns = `id, employee_name, plant_id, date, type, labor_type, shift, reason, duration, duration_hours, notes, created_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanAbsence(row scanner) (absence.Record, error) {
	var r absence.Record
	var createdAt, updatedAt string
	err := row.Scan(&r.ID, &r.EmployeeName, &r.PlantID, &r.Date, &r.Type, &r.LaborType, &r.Shift,
		&r.Reason, &r.Duration, &r.DurationHours, &r.Notes, &createdAt, &updatedAt)
	if err != nil {
		return r, err
	}
	r.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	r.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return r, nil
}

// AddAbsence validates rec, assigns an id and timestamps and stores it.
func (s *Store) AddAbsence(rec absence.Record) (*absence.Record, error) {
	rec, err := absence.Normalize(rec)
	if err != nil {
		return nil, err
	}
	rec.ID = uuid.NewString()
	if err := s.insert(s.db, rec, time.Now().UTC()); err != nil {
		return nil, err
	}
	s.notify(Change{Op: OpAdd, ID: rec.ID})
	return s.GetAbsence(rec.ID)
}

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func (s *Store) insert(db execer, rec absence.Record, now time.Time) error {
	created := rec.CreatedAt
	if created.IsZero() {
		created = now
	}
	updated := rec.UpdatedAt
	if updated.IsZero() {
		updated = created
	}
	_, err := db.Exec(
		`INSERT INTO absences (`+absenceColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.EmployeeName, rec.PlantID, rec.Date, rec.Type, rec.LaborType, rec.Shift,
		rec.Reason, rec.Duration, rec.DurationHours, rec.Notes,
		created.UTC().Format(time.RFC3339), updated.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("insert absence: %w", err)
	}
	return nil
}

func (s *Store) GetAbsence(id string) (*absence.Record, error) {
	r, err := scanAbsence(s.db.QueryRow(`SELECT `+absenceColumns+` FROM absences WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get absence %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get absence %s: %w", id, err)
	}
	return &r, nil
}

// UpdateAbsence replaces every editable field of the record with id. The
// record keeps its position in insertion order and its creation time.
func (s *Store) UpdateAbsence(id string, rec absence.Record) (*absence.Record, error) {
	rec, err := absence.Normalize(rec)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.Exec(
		`UPDATE absences SET employee_name = ?, plant_id = ?, date = ?, type = ?, labor_type = ?, shift = ?,
		 reason = ?, duration = ?, duration_hours = ?, notes = ?, updated_at = ? WHERE id = ?`,
		rec.EmployeeName, rec.PlantID, rec.Date, rec.Type, rec.LaborType, rec.Shift,
		rec.Reason, rec.Duration, rec.DurationHours, rec.Notes, now, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update absence: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, fmt.Errorf("update absence %s: %w", id, ErrNotFound)
	}
	s.notify(Change{Op: OpUpdate, ID: id})
	return s.GetAbsence(id)
}

func (s *Store) DeleteAbsence(id string) error {
	res, err := s.db.Exec(`DELETE FROM absences WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete absence: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("delete absence %s: %w", id, ErrNotFound)
	}
	s.notify(Change{Op: OpDelete, ID: id})
	return nil
}

// QueryRecords returns the records matching f in insertion order. It
// applies the same rules as absence.Filter.Match.
func (s *Store) QueryRecords(f absence.Filter) ([]absence.Record, error) {
	query := `SELECT ` + absenceColumns + ` FROM absences WHERE 1=1`
	var args []any

	if f.RestrictsPlant() {
		query += ` AND plant_id = ?`
		args = append(args, f.PlantID)
	}
	if f.DateFrom != "" {
		query += ` AND date >= ?`
		args = append(args, f.DateFrom)
	}
	if f.DateTo != "" {
		query += ` AND date <= ?`
		args = append(args, f.DateTo)
	}
	if f.Date != "" {
		query += ` AND date = ?`
		args = append(args, f.Date)
	}
	if f.Type != "" {
		query += ` AND type = ?`
		args = append(args, f.Type)
	}
	query += ` ORDER BY seq`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query absences: %w", err)
	}
	defer rows.Close()

	var records []absence.Record
	for rows.Next() {
		r, err := scanAbsence(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func (s *Store) CountAbsences() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM absences`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count absences: %w", err)
	}
	return n, nil
}

func (s *Store) ClearAbsences() error {
	if _, err := s.db.Exec(`DELETE FROM absences`); err != nil {
		return fmt.Errorf("clear absences: %w", err)
	}
	s.notify(Change{Op: OpClear})
	return nil
}

// SeedAbsences replaces all records with recs in one transaction. Records
// without an id get a fresh one.
func (s *Store) SeedAbsences(recs []absence.Record) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM absences`); err != nil {
		return fmt.Errorf("seed clear: %w", err)
	}
	now := time.Now().UTC()
	for _, rec := range recs {
		rec, err := absence.Normalize(rec)
		if err != nil {
			return fmt.Errorf("seed record %q: %w", rec.EmployeeName, err)
		}
		if rec.ID == "" {
			rec.ID = uuid.NewString()
		}
		if err := s.insert(tx, rec, now); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed: %w", err)
	}
	s.notify(Change{Op: OpSeed})
	return nil
}
