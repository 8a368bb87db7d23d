package apontamento

import "time"

type Apontamento struct {
	ID                 int64      `gorm:"primaryKey"`
	OrderID            int64      `gorm:"column:order_id;not null;index"`
	UserID             int64      `gorm:"column:user_id;not null;index"`
	Sector             string     `gorm:"column:sector;not null"`
	Status             string     `gorm:"column:status;not null;default:CONCLUIDO"`
	StartedAt          time.Time  `gorm:"column:started_at;not null"`
	FinishedAt         time.Time  `gorm:"column:finished_at;not null"`
	IsRework           bool       `gorm:"column:is_rework;default:false"`
	ReworkCauseCode    *string    `gorm:"column:rework_cause_code"`
	SupervisorApproved bool       `gorm:"column:supervisor_approved;default:false"`
	ApprovedBy         *int64     `gorm:"column:approved_by"`
	ApprovedAt         *time.Time `gorm:"column:approved_at"`
	RejectionReason    *string    `gorm:"column:rejection_reason"`
	GlobalResult       *string    `gorm:"column:global_result"`
	Observations       string     `gorm:"column:observations"`
	CreatedAt          time.Time  `gorm:"column:created_at"`
	UpdatedAt          time.Time  `gorm:"column:updated_at"`
}

func (Apontamento) TableName() string {
	return "apontamentos"
}
