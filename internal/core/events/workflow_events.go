package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventOrderStatusChanged  = "os.status_changed"
	EventApontamentoCreated  = "apontamento.created"
	EventApontamentoApproved = "apontamento.approved"
	EventApontamentoRejected = "apontamento.rejected"
)

func NewOrderStatusChangedEvent(orderID int64, orderNumber, oldStatus, newStatus string) BaseEvent {
	return BaseEvent{
		ID:        uuid.NewString(),
		Type:      EventOrderStatusChanged,
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"order_id":     orderID,
			"order_number": orderNumber,
			"old_status":   oldStatus,
			"new_status":   newStatus,
		},
	}
}

func NewApontamentoCreatedEvent(apontamentoID, orderID, userID int64, sector string, isRework bool) BaseEvent {
	return BaseEvent{
		ID:        uuid.NewString(),
		Type:      EventApontamentoCreated,
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"apontamento_id": apontamentoID,
			"order_id":       orderID,
			"user_id":        userID,
			"sector":         sector,
			"is_rework":      isRework,
		},
	}
}

func NewApontamentoApprovedEvent(apontamentoID, supervisorID int64) BaseEvent {
	return BaseEvent{
		ID:        uuid.NewString(),
		Type:      EventApontamentoApproved,
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"apontamento_id": apontamentoID,
			"supervisor_id":  supervisorID,
		},
	}
}

func NewApontamentoRejectedEvent(apontamentoID, supervisorID int64, reason string) BaseEvent {
	return BaseEvent{
		ID:        uuid.NewString(),
		Type:      EventApontamentoRejected,
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"apontamento_id": apontamentoID,
			"supervisor_id":  supervisorID,
			"reason":         reason,
		},
	}
}
