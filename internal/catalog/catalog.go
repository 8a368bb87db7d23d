package catalog

import (
	"strings"
	"time"

	catalogDatamodel "github.com/registroos/registro-os/internal/core/datamodel/catalog"
)

// Kind discriminates the reference catalogs administrators maintain.
type Kind string

const (
	KindMachineType  Kind = "machine_types"
	KindActivityType Kind = "activity_types"
	KindFailureCause Kind = "failure_causes"
	KindTestType     Kind = "test_types"
	KindUnknown      Kind = "unknown"
)

func ParseKind(s string) Kind {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case KindMachineType:
		return KindMachineType
	case KindActivityType:
		return KindActivityType
	case KindFailureCause:
		return KindFailureCause
	case KindTestType:
		return KindTestType
	default:
		return KindUnknown
	}
}

type Item struct {
	ID          int64     `json:"id"`
	Kind        Kind      `json:"kind"`
	Code        string    `json:"code"`
	Description string    `json:"description"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (i *Item) Deactivate() {
	i.IsActive = false
	i.UpdatedAt = time.Now()
}

func NewItem(kind Kind, code, description string) *Item {
	now := time.Now()
	return &Item{
		Kind:        kind,
		Code:        code,
		Description: description,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func ToDataModel(i *Item) *catalogDatamodel.Item {
	return &catalogDatamodel.Item{
		ID:          i.ID,
		Kind:        string(i.Kind),
		Code:        i.Code,
		Description: i.Description,
		IsActive:    i.IsActive,
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
	}
}

func FromDataModel(m *catalogDatamodel.Item) *Item {
	return &Item{
		ID:          m.ID,
		Kind:        ParseKind(m.Kind),
		Code:        m.Code,
		Description: m.Description,
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
