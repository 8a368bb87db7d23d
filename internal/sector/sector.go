package sector

import (
	"time"

	sectorDatamodel "github.com/registroos/registro-os/internal/core/datamodel/sector"
	"github.com/registroos/registro-os/internal/core/normalize"
)

type Sector struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Department string    `json:"department"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Matches reports whether name refers to this sector under the canonical
// normalization.
func (s *Sector) Matches(name string) bool {
	return normalize.SectorEquals(s.Name, name)
}

func (s *Sector) Deactivate() {
	s.IsActive = false
	s.UpdatedAt = time.Now()
}

func NewSector(name, department string) *Sector {
	now := time.Now()
	return &Sector{
		Name:       name,
		Department: department,
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func ToDataModel(s *Sector) *sectorDatamodel.Sector {
	return &sectorDatamodel.Sector{
		ID:         s.ID,
		Name:       s.Name,
		Department: s.Department,
		IsActive:   s.IsActive,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}

func FromDataModel(m *sectorDatamodel.Sector) *Sector {
	return &Sector{
		ID:         m.ID,
		Name:       m.Name,
		Department: m.Department,
		IsActive:   m.IsActive,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}
