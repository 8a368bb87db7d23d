package catalog

import "time"

// Item is the persistence model shared by every reference catalog: machine
// types, activity types, failure causes and test types, discriminated by Kind.
type Item struct {
	ID          int64     `gorm:"primaryKey"`
	Kind        string    `gorm:"column:kind;not null;index:idx_catalog_kind_code,unique"`
	Code        string    `gorm:"column:code;not null;index:idx_catalog_kind_code,unique"`
	Description string    `gorm:"column:description"`
	IsActive    bool      `gorm:"column:is_active;default:true"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (Item) TableName() string {
	return "catalogos"
}
