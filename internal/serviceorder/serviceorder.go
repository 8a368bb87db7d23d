package serviceorder

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	orderDatamodel "github.com/registroos/registro-os/internal/core/datamodel/serviceorder"
)

// Source of an order record: pulled from the client portal or typed in.
const (
	SourcePortal = "portal"
	SourceManual = "manual"
)

type ServiceOrder struct {
	ID            int64              `json:"id"`
	Number        string             `json:"number"`
	Status        Status             `json:"status"`
	Client        string             `json:"client"`
	Equipment     string             `json:"equipment"`
	BudgetedHours map[string]float64 `json:"budgeted_hours,omitempty"`
	Source        string             `json:"source"`
	RefreshedAt   *time.Time         `json:"refreshed_at,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// NormalizeNumber zero-pads order numbers to the five digits the portal uses,
// so "1234" and "01234" refer to the same order.
func NormalizeNumber(number string) string {
	number = strings.TrimSpace(number)
	if number == "" {
		return ""
	}
	if len(number) < 5 && strings.Trim(number, "0123456789") == "" {
		return fmt.Sprintf("%05s", number)
	}
	return number
}

// ApplyStatus records a status reported by the portal. Returns true when the
// status actually changed.
func (o *ServiceOrder) ApplyStatus(status Status) bool {
	if o.Status == status {
		return false
	}
	o.Status = status
	now := time.Now()
	o.RefreshedAt = &now
	o.UpdatedAt = now
	return true
}

func NewServiceOrder(number, client, equipment string, budgetedHours map[string]float64) *ServiceOrder {
	now := time.Now()
	return &ServiceOrder{
		Number:        NormalizeNumber(number),
		Status:        StatusEmOrcamento,
		Client:        client,
		Equipment:     equipment,
		BudgetedHours: budgetedHours,
		Source:        SourceManual,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func ToDataModel(o *ServiceOrder) *orderDatamodel.ServiceOrder {
	var hours string
	if len(o.BudgetedHours) > 0 {
		if raw, err := json.Marshal(o.BudgetedHours); err == nil {
			hours = string(raw)
		}
	}

	return &orderDatamodel.ServiceOrder{
		ID:            o.ID,
		Number:        o.Number,
		Status:        string(o.Status),
		Client:        o.Client,
		Equipment:     o.Equipment,
		BudgetedHours: hours,
		Source:        o.Source,
		RefreshedAt:   o.RefreshedAt,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}

func FromDataModel(m *orderDatamodel.ServiceOrder) *ServiceOrder {
	var hours map[string]float64
	if m.BudgetedHours != "" {
		// a malformed column value degrades to no budget rather than failing reads
		_ = json.Unmarshal([]byte(m.BudgetedHours), &hours)
	}

	return &ServiceOrder{
		ID:            m.ID,
		Number:        m.Number,
		Status:        Status(m.Status),
		Client:        m.Client,
		Equipment:     m.Equipment,
		BudgetedHours: hours,
		Source:        m.Source,
		RefreshedAt:   m.RefreshedAt,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func FromDataModelSlice(models []*orderDatamodel.ServiceOrder) []*ServiceOrder {
	result := make([]*ServiceOrder, len(models))
	for i, m := range models {
		result[i] = FromDataModel(m)
	}
	return result
}
