package apontamento

import (
	"context"
	"log/slog"
	"time"

	"github.com/registroos/registro-os/internal"
	apontamentoDatamodel "github.com/registroos/registro-os/internal/core/datamodel/apontamento"
	"github.com/registroos/registro-os/internal/core/events"
	"github.com/registroos/registro-os/internal/core/normalize"
	"github.com/registroos/registro-os/internal/serviceorder"
	"github.com/registroos/registro-os/internal/user"
)

type RepositoryAPI interface {
	// CreateForOrder persists the entry after re-reading the order status
	// inside the same transaction, so a refresh racing the create cannot
	// slip an apontamento onto a freshly blocked order.
	CreateForOrder(a *apontamentoDatamodel.Apontamento) error
	GetByID(id int64) (*apontamentoDatamodel.Apontamento, error)
	GetByUserID(userID int64, limit, offset int) ([]*apontamentoDatamodel.Apontamento, error)
	GetBySector(sector string, limit, offset int) ([]*apontamentoDatamodel.Apontamento, error)
	Update(a *apontamentoDatamodel.Apontamento) error
}

type OrderGetter interface {
	GetByID(id int64) (*serviceorder.ServiceOrder, error)
}

type AccessEvaluator interface {
	CanAccessDevelopment(u *user.User, requestedSector string) bool
}

type CauseValidator interface {
	IsValidFailureCause(code string) bool
}

type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type Service struct {
	repo   RepositoryAPI
	orders OrderGetter
	access AccessEvaluator
	causes CauseValidator
	bus    EventPublisher
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, orders OrderGetter, access AccessEvaluator, causes CauseValidator, bus EventPublisher, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		orders: orders,
		access: access,
		causes: causes,
		bus:    bus,
		logger: logger,
	}
}

// Create validates the workflow gates in order: sector access, order status,
// rework cause. Each failure carries its own error kind so the HTTP layer can
// answer with the exact violated precondition.
func (s *Service) Create(ctx context.Context, u *user.User, dto CreateApontamentoDTO) (*Apontamento, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	if !s.access.CanAccessDevelopment(u, dto.Sector) {
		s.logger.Warn("apontamento denied: no development access",
			"user_id", u.ID, "role", u.Role, "sector", dto.Sector)
		return nil, internal.ErrAccessDenied
	}

	order, err := s.orders.GetByID(dto.OrderID)
	if err != nil {
		return nil, internal.ErrOrderNotFound
	}

	if order.Status.BlocksApontamento() {
		s.logger.Warn("apontamento denied: order blocked",
			"user_id", u.ID, "order_id", order.ID, "status", order.Status)
		return nil, internal.ErrOrderBlocked
	}

	if dto.IsRework {
		if dto.ReworkCauseCode == nil || *dto.ReworkCauseCode == "" {
			return nil, internal.ErrMissingReworkCause
		}
		if !s.causes.IsValidFailureCause(*dto.ReworkCauseCode) {
			return nil, internal.ErrUnknownReworkCause
		}
	} else {
		// cause codes only make sense on rework entries
		dto.ReworkCauseCode = nil
	}

	now := time.Now()
	entry := &Apontamento{
		OrderID:         order.ID,
		UserID:          u.ID,
		Sector:          dto.Sector,
		Status:          StatusConcluido,
		StartedAt:       dto.StartedAt,
		FinishedAt:      dto.FinishedAt,
		IsRework:        dto.IsRework,
		ReworkCauseCode: dto.ReworkCauseCode,
		Observations:    dto.Observations,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	model := ToDataModel(entry)
	if err := s.repo.CreateForOrder(model); err != nil {
		s.logger.Error("failed to create apontamento", "error", err, "user_id", u.ID, "order_id", order.ID)
		return nil, err
	}
	entry.ID = model.ID

	s.logger.Info("apontamento created",
		"apontamento_id", entry.ID,
		"user_id", u.ID,
		"order_id", order.ID,
		"sector", dto.Sector,
		"is_rework", dto.IsRework)

	if s.bus != nil {
		_ = s.bus.Publish(ctx, events.NewApontamentoCreatedEvent(
			entry.ID, order.ID, u.ID, dto.Sector, dto.IsRework))
	}

	return entry, nil
}

// GetByID returns the entry if the requester owns it or supervises its sector.
func (s *Service) GetByID(id int64, requester *user.User) (*Apontamento, error) {
	m, err := s.repo.GetByID(id)
	if err != nil || m == nil {
		return nil, internal.ErrApontamentoNotFound
	}

	entry := FromDataModel(m)
	if entry.UserID != requester.ID && !s.canSupervise(requester, entry) {
		s.logger.Warn("apontamento access denied",
			"apontamento_id", id, "requester_id", requester.ID, "owner_id", entry.UserID)
		return nil, internal.ErrAccessDenied
	}

	return entry, nil
}

// List returns the requester's own entries, or the whole sector for
// supervision roles.
func (s *Service) List(requester *user.User, limit, offset int) ([]*Apontamento, error) {
	var (
		models []*apontamentoDatamodel.Apontamento
		err    error
	)

	if requester.Role.IsSupervision() {
		models, err = s.repo.GetBySector(requester.Sector, limit, offset)
	} else {
		models, err = s.repo.GetByUserID(requester.ID, limit, offset)
	}
	if err != nil {
		s.logger.Error("failed to list apontamentos", "error", err, "requester_id", requester.ID)
		return nil, err
	}

	return FromDataModelSlice(models), nil
}

// Update lets the owner correct timestamps and observations while the entry
// is still unapproved. Approval locks the entry.
func (s *Service) Update(id int64, requester *user.User, dto UpdateApontamentoDTO) (*Apontamento, error) {
	m, err := s.repo.GetByID(id)
	if err != nil || m == nil {
		return nil, internal.ErrApontamentoNotFound
	}

	entry := FromDataModel(m)
	if entry.UserID != requester.ID && !s.canSupervise(requester, entry) {
		return nil, internal.ErrAccessDenied
	}
	if entry.Locked() {
		return nil, internal.ErrApontamentoLocked
	}

	if dto.StartedAt != nil {
		entry.StartedAt = *dto.StartedAt
	}
	if dto.FinishedAt != nil {
		entry.FinishedAt = *dto.FinishedAt
	}
	if !entry.FinishedAt.After(entry.StartedAt) {
		return nil, internal.NewValidationError("finished_at must be after started_at", internal.ErrCodeInvalidPeriod)
	}
	if dto.Observations != nil {
		entry.Observations = *dto.Observations
	}
	entry.UpdatedAt = time.Now()

	if err := s.repo.Update(ToDataModel(entry)); err != nil {
		s.logger.Error("failed to update apontamento", "error", err, "apontamento_id", id)
		return nil, err
	}

	return entry, nil
}

// Approve sets supervisor_approved. It does not touch the entry status; the
// flag and the status are independent fields. Approving an already approved
// entry is a no-op, not an error.
func (s *Service) Approve(ctx context.Context, id int64, supervisor *user.User) (*Apontamento, error) {
	m, err := s.repo.GetByID(id)
	if err != nil || m == nil {
		return nil, internal.ErrApontamentoNotFound
	}

	entry := FromDataModel(m)
	if !s.canSupervise(supervisor, entry) {
		s.logger.Warn("approve denied",
			"apontamento_id", id, "supervisor_id", supervisor.ID, "role", supervisor.Role)
		return nil, internal.ErrAccessDenied
	}

	if entry.SupervisorApproved {
		return entry, nil
	}

	entry.Approve(supervisor.ID)
	if err := s.repo.Update(ToDataModel(entry)); err != nil {
		s.logger.Error("failed to approve apontamento", "error", err, "apontamento_id", id)
		return nil, err
	}

	s.logger.Info("apontamento approved", "apontamento_id", id, "supervisor_id", supervisor.ID)

	if s.bus != nil {
		_ = s.bus.Publish(ctx, events.NewApontamentoApprovedEvent(entry.ID, supervisor.ID))
	}

	return entry, nil
}

func (s *Service) Reject(ctx context.Context, id int64, supervisor *user.User, reason string) (*Apontamento, error) {
	if reason == "" {
		return nil, internal.NewValidationError("reason is required when rejecting an apontamento", internal.ErrCodeValidationFailed)
	}

	m, err := s.repo.GetByID(id)
	if err != nil || m == nil {
		return nil, internal.ErrApontamentoNotFound
	}

	entry := FromDataModel(m)
	if !s.canSupervise(supervisor, entry) {
		s.logger.Warn("reject denied",
			"apontamento_id", id, "supervisor_id", supervisor.ID, "role", supervisor.Role)
		return nil, internal.ErrAccessDenied
	}
	if entry.SupervisorApproved {
		return nil, internal.ErrApontamentoLocked
	}

	entry.Reject(supervisor.ID, reason)
	if err := s.repo.Update(ToDataModel(entry)); err != nil {
		s.logger.Error("failed to reject apontamento", "error", err, "apontamento_id", id)
		return nil, err
	}

	s.logger.Info("apontamento rejected", "apontamento_id", id, "supervisor_id", supervisor.ID, "reason", reason)

	if s.bus != nil {
		_ = s.bus.Publish(ctx, events.NewApontamentoRejectedEvent(entry.ID, supervisor.ID, reason))
	}

	return entry, nil
}

// SetGlobalResult records the bench test outcome for the entry.
func (s *Service) SetGlobalResult(id int64, supervisor *user.User, dto GlobalResultDTO) (*Apontamento, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	m, err := s.repo.GetByID(id)
	if err != nil || m == nil {
		return nil, internal.ErrApontamentoNotFound
	}

	entry := FromDataModel(m)
	if !s.canSupervise(supervisor, entry) {
		return nil, internal.ErrAccessDenied
	}

	entry.SetGlobalResult(dto.Result)
	if err := s.repo.Update(ToDataModel(entry)); err != nil {
		s.logger.Error("failed to set global result", "error", err, "apontamento_id", id)
		return nil, err
	}

	return entry, nil
}

// canSupervise: supervisors act within their own sector; ADMIN and GESTAO
// override the sector match.
func (s *Service) canSupervise(u *user.User, entry *Apontamento) bool {
	switch u.Role {
	case user.RoleAdmin, user.RoleGestao:
		return true
	case user.RoleSupervisor:
		return normalize.SectorEquals(u.Sector, entry.Sector)
	default:
		return false
	}
}
