package catalog

import (
	"log/slog"
	"strings"

	"github.com/registroos/registro-os/internal"
	catalogDatamodel "github.com/registroos/registro-os/internal/core/datamodel/catalog"
)

type RepositoryAPI interface {
	GetByKind(kind string) ([]*catalogDatamodel.Item, error)
	GetByID(id int64) (*catalogDatamodel.Item, error)
	GetByKindAndCode(kind, code string) (*catalogDatamodel.Item, error)
	Create(item *catalogDatamodel.Item) error
	Update(item *catalogDatamodel.Item) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) ListByKind(kind Kind) ([]*Item, error) {
	if kind == KindUnknown {
		return nil, internal.NewValidationError("catálogo desconhecido", internal.ErrCodeValidationFailed)
	}

	models, err := s.repo.GetByKind(string(kind))
	if err != nil {
		s.logger.Error("failed to list catalog", "error", err, "kind", kind)
		return nil, err
	}

	items := make([]*Item, 0, len(models))
	for _, m := range models {
		item := FromDataModel(m)
		if item.IsActive {
			items = append(items, item)
		}
	}
	return items, nil
}

func (s *Service) Create(kind Kind, code, description string) (*Item, error) {
	if kind == KindUnknown {
		return nil, internal.NewValidationError("catálogo desconhecido", internal.ErrCodeValidationFailed)
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, internal.NewValidationError("código é obrigatório", internal.ErrCodeValidationFailed)
	}

	if existing, err := s.repo.GetByKindAndCode(string(kind), code); err == nil && existing != nil {
		return nil, internal.NewConflictError("Código já cadastrado neste catálogo", internal.ErrCodeValidationFailed)
	}

	item := NewItem(kind, code, description)
	model := ToDataModel(item)
	if err := s.repo.Create(model); err != nil {
		s.logger.Error("failed to create catalog item", "error", err, "kind", kind, "code", code)
		return nil, err
	}
	item.ID = model.ID

	s.logger.Info("catalog item created", "kind", kind, "code", code, "item_id", item.ID)
	return item, nil
}

func (s *Service) Update(id int64, description string) (*Item, error) {
	m, err := s.repo.GetByID(id)
	if err != nil || m == nil {
		return nil, internal.ErrCatalogItemNotFound
	}

	item := FromDataModel(m)
	item.Description = description
	if err := s.repo.Update(ToDataModel(item)); err != nil {
		s.logger.Error("failed to update catalog item", "error", err, "item_id", id)
		return nil, err
	}
	return item, nil
}

func (s *Service) Deactivate(id int64) error {
	m, err := s.repo.GetByID(id)
	if err != nil || m == nil {
		return internal.ErrCatalogItemNotFound
	}

	item := FromDataModel(m)
	item.Deactivate()
	if err := s.repo.Update(ToDataModel(item)); err != nil {
		s.logger.Error("failed to deactivate catalog item", "error", err, "item_id", id)
		return err
	}

	s.logger.Info("catalog item deactivated", "item_id", id, "kind", item.Kind, "code", item.Code)
	return nil
}

// IsValidFailureCause reports whether code names an active failure cause.
// Apontamento creation uses this to validate rework cause codes.
func (s *Service) IsValidFailureCause(code string) bool {
	code = strings.TrimSpace(code)
	if code == "" {
		return false
	}

	m, err := s.repo.GetByKindAndCode(string(KindFailureCause), code)
	if err != nil {
		s.logger.Warn("failure cause lookup failed", "error", err, "code", code)
		return false
	}
	return m != nil && m.IsActive
}
