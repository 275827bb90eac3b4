package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// FarmaciaMap is a jsonb column mapping farmacia id → display name.
type FarmaciaMap map[string]string

func (m FarmaciaMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	return string(b), err
}

func (m *FarmaciaMap) Scan(src interface{}) error {
	return scanJSON(src, m)
}

// PermisoList is a jsonb column holding named capabilities.
type PermisoList []string

func (l PermisoList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	return string(b), err
}

func (l *PermisoList) Scan(src interface{}) error {
	return scanJSON(src, l)
}

// Contiene reports whether the list grants permiso p.
func (l PermisoList) Contiene(p string) bool {
	for _, v := range l {
		if v == p {
			return true
		}
	}
	return false
}

func scanJSON(src, dst interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	case nil:
		return nil
	default:
		return errors.New("jsonb: unsupported source type")
	}
}
