package serviceorder

import "errors"

type CreateOrderDTO struct {
	Number        string             `json:"number"`
	Client        string             `json:"client"`
	Equipment     string             `json:"equipment"`
	BudgetedHours map[string]float64 `json:"budgeted_hours,omitempty"`
}

func (dto CreateOrderDTO) Validate() error {
	if NormalizeNumber(dto.Number) == "" {
		return errors.New("order number is required")
	}
	if dto.Client == "" {
		return errors.New("client is required")
	}
	for category, hours := range dto.BudgetedHours {
		if category == "" {
			return errors.New("budget category name cannot be empty")
		}
		if hours < 0 {
			return errors.New("budgeted hours cannot be negative")
		}
	}
	return nil
}

// OrderSnapshot is what the portal client reports for one order.
type OrderSnapshot struct {
	Number    string `json:"number"`
	Status    string `json:"status"`
	Client    string `json:"client"`
	Equipment string `json:"equipment"`
}
