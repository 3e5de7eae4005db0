package store

import (
	"fmt"

	"github.com/sadopc/absentee/internal/absence"
)

const SettingPlantFilter = "plant_filter"

func (s *Store) GetSetting(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err != nil {
		return "", fmt.Errorf("get setting %q: %w", key, err)
	}
	return value, nil
}

func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}

// PlantFilter returns the saved global plant filter, "all" when unset.
func (s *Store) PlantFilter() string {
	v, err := s.GetSetting(SettingPlantFilter)
	if err != nil || v == "" {
		return absence.AllPlants
	}
	return v
}
