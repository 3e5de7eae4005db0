package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sadopc/absentee/internal/absence"
)

// UnknownPlant is the display name for plant ids with no row.
const UnknownPlant = "Unknown"

func (s *Store) CreatePlant(name string) (*absence.Plant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &absence.ValidationError{Field: "name", Reason: "is required"}
	}
	id := "plant-" + uuid.NewString()
	if _, err := s.db.Exec(`INSERT INTO plants (id, name) VALUES (?, ?)`, id, name); err != nil {
		return nil, fmt.Errorf("insert plant: %w", err)
	}
	s.notify(Change{Op: OpPlantAdd, ID: id})
	return s.GetPlant(id)
}

func (s *Store) GetPlant(id string) (*absence.Plant, error) {
	p := &absence.Plant{}
	err := s.db.QueryRow(`SELECT id, name FROM plants WHERE id = ?`, id).Scan(&p.ID, &p.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get plant %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get plant %s: %w", id, err)
	}
	return p, nil
}

// ListPlants returns plants in creation order.
func (s *Store) ListPlants() ([]absence.Plant, error) {
	rows, err := s.db.Query(`SELECT id, name FROM plants ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("list plants: %w", err)
	}
	defer rows.Close()

	var plants []absence.Plant
	for rows.Next() {
		var p absence.Plant
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, err
		}
		plants = append(plants, p)
	}
	return plants, rows.Err()
}

// PlantName never fails; unresolved ids map to UnknownPlant.
func (s *Store) PlantName(id string) string {
	p, err := s.GetPlant(id)
	if err != nil {
		return UnknownPlant
	}
	return p.Name
}

// RemovePlant deletes the plant row. Absences keep their plant id and
// resolve to UnknownPlant afterwards.
func (s *Store) RemovePlant(id string) error {
	res, err := s.db.Exec(`DELETE FROM plants WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("remove plant: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("remove plant %s: %w", id, ErrNotFound)
	}
	s.notify(Change{Op: OpPlantRemove, ID: id})
	return nil
}
