package serviceorder

import (
	"context"
	"log/slog"

	"github.com/registroos/registro-os/internal"
	orderDatamodel "github.com/registroos/registro-os/internal/core/datamodel/serviceorder"
	"github.com/registroos/registro-os/internal/core/events"
)

type RepositoryAPI interface {
	Create(o *orderDatamodel.ServiceOrder) error
	GetByID(id int64) (*orderDatamodel.ServiceOrder, error)
	GetByNumber(number string) (*orderDatamodel.ServiceOrder, error)
	GetAll(limit, offset int) ([]*orderDatamodel.ServiceOrder, error)
	Update(o *orderDatamodel.ServiceOrder) error
}

type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type Service struct {
	repo   RepositoryAPI
	bus    EventPublisher
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, bus EventPublisher, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		bus:    bus,
		logger: logger,
	}
}

func (s *Service) Create(dto CreateOrderDTO) (*ServiceOrder, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	number := NormalizeNumber(dto.Number)
	if existing, err := s.repo.GetByNumber(number); err == nil && existing != nil {
		return nil, internal.ErrDuplicateOrder
	}

	order := NewServiceOrder(number, dto.Client, dto.Equipment, dto.BudgetedHours)
	model := ToDataModel(order)
	if err := s.repo.Create(model); err != nil {
		s.logger.Error("failed to create order", "error", err, "number", number)
		return nil, err
	}
	order.ID = model.ID

	s.logger.Info("service order created", "order_id", order.ID, "number", number, "client", dto.Client)
	return order, nil
}

func (s *Service) GetByID(id int64) (*ServiceOrder, error) {
	m, err := s.repo.GetByID(id)
	if err != nil || m == nil {
		return nil, internal.ErrOrderNotFound
	}
	return FromDataModel(m), nil
}

func (s *Service) GetByNumber(number string) (*ServiceOrder, error) {
	m, err := s.repo.GetByNumber(NormalizeNumber(number))
	if err != nil || m == nil {
		return nil, internal.ErrOrderNotFound
	}
	return FromDataModel(m), nil
}

func (s *Service) GetAll(limit, offset int) ([]*ServiceOrder, error) {
	models, err := s.repo.GetAll(limit, offset)
	if err != nil {
		s.logger.Error("failed to list orders", "error", err)
		return nil, err
	}
	return FromDataModelSlice(models), nil
}

// ApplySnapshot records the portal's view of an order: status moves and field
// updates. Orders the portal knows but we do not are created with source
// "portal". Status changes are published on the bus.
func (s *Service) ApplySnapshot(ctx context.Context, snap OrderSnapshot) (*ServiceOrder, error) {
	number := NormalizeNumber(snap.Number)
	if number == "" {
		return nil, internal.NewValidationError("snapshot sem número de OS", internal.ErrCodeValidationFailed)
	}

	m, err := s.repo.GetByNumber(number)
	if err != nil {
		return nil, err
	}

	if m == nil {
		order := NewServiceOrder(number, snap.Client, snap.Equipment, nil)
		order.Source = SourcePortal
		order.ApplyStatus(Status(snap.Status))
		model := ToDataModel(order)
		if err := s.repo.Create(model); err != nil {
			s.logger.Error("failed to create order from snapshot", "error", err, "number", number)
			return nil, err
		}
		order.ID = model.ID
		s.logger.Info("order imported from portal", "order_id", order.ID, "number", number, "status", order.Status)
		return order, nil
	}

	order := FromDataModel(m)
	oldStatus := order.Status
	if snap.Client != "" {
		order.Client = snap.Client
	}
	if snap.Equipment != "" {
		order.Equipment = snap.Equipment
	}
	changed := order.ApplyStatus(Status(snap.Status))

	if err := s.repo.Update(ToDataModel(order)); err != nil {
		s.logger.Error("failed to apply order snapshot", "error", err, "number", number)
		return nil, err
	}

	if changed {
		s.logger.Info("order status changed",
			"order_id", order.ID,
			"number", number,
			"old_status", oldStatus,
			"new_status", order.Status,
			"now_blocking", order.Status.BlocksApontamento())

		if s.bus != nil {
			_ = s.bus.Publish(ctx, events.NewOrderStatusChangedEvent(
				order.ID, order.Number, string(oldStatus), string(order.Status)))
		}
	}

	return order, nil
}
