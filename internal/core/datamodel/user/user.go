package user

import "time"

// User is the persistence model for the usuarios table.
type User struct {
	ID                int64      `gorm:"primaryKey"`
	Email             string     `gorm:"column:email;uniqueIndex;not null"`
	Name              string     `gorm:"column:name;not null"`
	PasswordHash      string     `gorm:"column:password_hash;not null"`
	Role              string     `gorm:"column:role;not null;default:USER"`
	Sector            string     `gorm:"column:sector"`
	Department        string     `gorm:"column:department"`
	WorksInProduction bool       `gorm:"column:works_in_production;default:false"`
	IsApproved        bool       `gorm:"column:is_approved;default:false"`
	IsActive          bool       `gorm:"column:is_active;default:true"`
	ApprovedBy        *int64     `gorm:"column:approved_by"`
	ApprovedAt        *time.Time `gorm:"column:approved_at"`
	CreatedAt         time.Time  `gorm:"column:created_at"`
	UpdatedAt         time.Time  `gorm:"column:updated_at"`
}

func (User) TableName() string {
	return "usuarios"
}
