package sector

import (
	"log/slog"

	"github.com/registroos/registro-os/internal"
	sectorDatamodel "github.com/registroos/registro-os/internal/core/datamodel/sector"
	"github.com/registroos/registro-os/internal/core/normalize"
)

type RepositoryAPI interface {
	GetAll() ([]*sectorDatamodel.Sector, error)
	GetByID(id int64) (*sectorDatamodel.Sector, error)
	Create(s *sectorDatamodel.Sector) error
	Update(s *sectorDatamodel.Sector) error
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

func (s *Service) GetAll() ([]*Sector, error) {
	models, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to list sectors", "error", err)
		return nil, err
	}

	sectors := make([]*Sector, 0, len(models))
	for _, m := range models {
		sectors = append(sectors, FromDataModel(m))
	}
	return sectors, nil
}

func (s *Service) GetByID(id int64) (*Sector, error) {
	m, err := s.repo.GetByID(id)
	if err != nil || m == nil {
		return nil, internal.ErrSectorNotFound
	}
	return FromDataModel(m), nil
}

// FindByName resolves a sector through the canonical normalization so that
// accent or spacing variants coming from the UI still match.
func (s *Service) FindByName(name string) (*Sector, error) {
	models, err := s.repo.GetAll()
	if err != nil {
		return nil, err
	}

	want := normalize.Sector(name)
	for _, m := range models {
		if normalize.Sector(m.Name) == want {
			return FromDataModel(m), nil
		}
	}
	return nil, internal.ErrSectorNotFound
}

func (s *Service) Create(name, department string) (*Sector, error) {
	if name == "" || department == "" {
		return nil, internal.NewValidationError("nome e departamento são obrigatórios", internal.ErrCodeValidationFailed)
	}

	if existing, err := s.FindByName(name); err == nil && existing != nil {
		return nil, internal.NewConflictError("Setor já cadastrado", internal.ErrCodeValidationFailed)
	}

	sec := NewSector(name, department)
	model := ToDataModel(sec)
	if err := s.repo.Create(model); err != nil {
		s.logger.Error("failed to create sector", "error", err, "name", name)
		return nil, err
	}
	sec.ID = model.ID

	s.logger.Info("sector created", "sector_id", sec.ID, "name", name, "department", department)
	return sec, nil
}

func (s *Service) Deactivate(id int64) (*Sector, error) {
	m, err := s.repo.GetByID(id)
	if err != nil || m == nil {
		return nil, internal.ErrSectorNotFound
	}

	sec := FromDataModel(m)
	sec.Deactivate()
	if err := s.repo.Update(ToDataModel(sec)); err != nil {
		s.logger.Error("failed to deactivate sector", "error", err, "sector_id", id)
		return nil, err
	}
	return sec, nil
}
