package apontamento

import (
	"time"

	apontamentoDatamodel "github.com/registroos/registro-os/internal/core/datamodel/apontamento"
)

// Entry status. Approval is tracked separately in SupervisorApproved; the
// two fields are deliberately independent (see DESIGN.md).
const (
	StatusConcluido = "CONCLUIDO"
	StatusRejeitado = "REJEITADO"
)

// Global test result, set by supervision after bench testing.
const (
	GlobalResultAprovado  = "APROVADO"
	GlobalResultReprovado = "REPROVADO"
)

type Apontamento struct {
	ID                 int64      `json:"id"`
	OrderID            int64      `json:"order_id"`
	UserID             int64      `json:"user_id"`
	Sector             string     `json:"sector"`
	Status             string     `json:"status"`
	StartedAt          time.Time  `json:"started_at"`
	FinishedAt         time.Time  `json:"finished_at"`
	IsRework           bool       `json:"is_rework"`
	ReworkCauseCode    *string    `json:"rework_cause_code,omitempty"`
	SupervisorApproved bool       `json:"supervisor_approved"`
	ApprovedBy         *int64     `json:"approved_by,omitempty"`
	ApprovedAt         *time.Time `json:"approved_at,omitempty"`
	RejectionReason    *string    `json:"rejection_reason,omitempty"`
	GlobalResult       *string    `json:"global_result,omitempty"`
	Observations       string     `json:"observations"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// Locked reports whether the entry may still be edited. Approval freezes the
// entry.
func (a *Apontamento) Locked() bool {
	return a.SupervisorApproved
}

// Approve marks the entry approved by a supervisor. Status stays as logged;
// approval is a flag, not a status transition. Idempotent.
func (a *Apontamento) Approve(supervisorID int64) {
	if a.SupervisorApproved {
		return
	}
	now := time.Now()
	a.SupervisorApproved = true
	a.ApprovedBy = &supervisorID
	a.ApprovedAt = &now
	a.UpdatedAt = now
}

// Reject records the supervisor's rejection with a reason.
func (a *Apontamento) Reject(supervisorID int64, reason string) {
	now := time.Now()
	a.Status = StatusRejeitado
	a.SupervisorApproved = false
	a.ApprovedBy = &supervisorID
	a.RejectionReason = &reason
	a.UpdatedAt = now
}

func (a *Apontamento) SetGlobalResult(result string) {
	a.GlobalResult = &result
	a.UpdatedAt = time.Now()
}

func ToDataModel(a *Apontamento) *apontamentoDatamodel.Apontamento {
	return &apontamentoDatamodel.Apontamento{
		ID:                 a.ID,
		OrderID:            a.OrderID,
		UserID:             a.UserID,
		Sector:             a.Sector,
		Status:             a.Status,
		StartedAt:          a.StartedAt,
		FinishedAt:         a.FinishedAt,
		IsRework:           a.IsRework,
		ReworkCauseCode:    a.ReworkCauseCode,
		SupervisorApproved: a.SupervisorApproved,
		ApprovedBy:         a.ApprovedBy,
		ApprovedAt:         a.ApprovedAt,
		RejectionReason:    a.RejectionReason,
		GlobalResult:       a.GlobalResult,
		Observations:       a.Observations,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}
}

func FromDataModel(m *apontamentoDatamodel.Apontamento) *Apontamento {
	return &Apontamento{
		ID:                 m.ID,
		OrderID:            m.OrderID,
		UserID:             m.UserID,
		Sector:             m.Sector,
		Status:             m.Status,
		StartedAt:          m.StartedAt,
		FinishedAt:         m.FinishedAt,
		IsRework:           m.IsRework,
		ReworkCauseCode:    m.ReworkCauseCode,
		SupervisorApproved: m.SupervisorApproved,
		ApprovedBy:         m.ApprovedBy,
		ApprovedAt:         m.ApprovedAt,
		RejectionReason:    m.RejectionReason,
		GlobalResult:       m.GlobalResult,
		Observations:       m.Observations,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

func FromDataModelSlice(models []*apontamentoDatamodel.Apontamento) []*Apontamento {
	result := make([]*Apontamento, len(models))
	for i, m := range models {
		result[i] = FromDataModel(m)
	}
	return result
}
