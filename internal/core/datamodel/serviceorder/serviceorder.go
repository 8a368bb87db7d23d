package serviceorder

import "time"

// ServiceOrder is the persistence model for the ordens_servico table.
// BudgetedHours is a JSON object mapping budget category to hours.
type ServiceOrder struct {
	ID            int64      `gorm:"primaryKey"`
	Number        string     `gorm:"column:number;uniqueIndex;not null"`
	Status        string     `gorm:"column:status;not null"`
	Client        string     `gorm:"column:client"`
	Equipment     string     `gorm:"column:equipment"`
	BudgetedHours string     `gorm:"column:budgeted_hours"`
	Source        string     `gorm:"column:source;default:manual"`
	RefreshedAt   *time.Time `gorm:"column:refreshed_at"`
	CreatedAt     time.Time  `gorm:"column:created_at"`
	UpdatedAt     time.Time  `gorm:"column:updated_at"`
}

func (ServiceOrder) TableName() string {
	return "ordens_servico"
}
