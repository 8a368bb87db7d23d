package apontamento

import (
	"errors"
	"time"
)

type CreateApontamentoDTO struct {
	OrderID         int64     `json:"order_id"`
	Sector          string    `json:"sector"`
	StartedAt       time.Time `json:"started_at"`
	FinishedAt      time.Time `json:"finished_at"`
	IsRework        bool      `json:"is_rework"`
	ReworkCauseCode *string   `json:"rework_cause_code,omitempty"`
	Observations    string    `json:"observations"`
}

// Validate covers the field-shape rules. The rework cause and order/access
// gates are service-level preconditions with their own error kinds.
func (dto CreateApontamentoDTO) Validate() error {
	if dto.OrderID <= 0 {
		return errors.New("order_id is required")
	}
	if dto.Sector == "" {
		return errors.New("sector is required")
	}
	if dto.StartedAt.IsZero() || dto.FinishedAt.IsZero() {
		return errors.New("started_at and finished_at are required")
	}
	if !dto.FinishedAt.After(dto.StartedAt) {
		return errors.New("finished_at must be after started_at")
	}
	return nil
}

// UpdateApontamentoDTO carries the fields a technician may correct before
// supervisor approval locks the entry.
type UpdateApontamentoDTO struct {
	StartedAt    *time.Time `json:"started_at,omitempty"`
	FinishedAt   *time.Time `json:"finished_at,omitempty"`
	Observations *string    `json:"observations,omitempty"`
}

type RejectApontamentoDTO struct {
	Reason string `json:"reason"`
}

func (dto RejectApontamentoDTO) Validate() error {
	if dto.Reason == "" {
		return errors.New("reason is required when rejecting an apontamento")
	}
	return nil
}

type GlobalResultDTO struct {
	Result string `json:"result"`
}

func (dto GlobalResultDTO) Validate() error {
	if dto.Result != GlobalResultAprovado && dto.Result != GlobalResultReprovado {
		return errors.New("result must be APROVADO or REPROVADO")
	}
	return nil
}
