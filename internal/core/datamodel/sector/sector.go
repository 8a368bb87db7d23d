package sector

import "time"

type Sector struct {
	ID         int64     `gorm:"primaryKey"`
	Name       string    `gorm:"column:name;uniqueIndex;not null"`
	Department string    `gorm:"column:department;not null"`
	IsActive   bool      `gorm:"column:is_active;default:true"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (Sector) TableName() string {
	return "setores"
}
