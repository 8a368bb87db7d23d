package user

import (
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/registroos/registro-os/internal"
	userDatamodel "github.com/registroos/registro-os/internal/core/datamodel/user"
)

type RepositoryAPI interface {
	Create(u *userDatamodel.User) error
	GetByID(id int64) (*userDatamodel.User, error)
	GetByEmail(email string) (*userDatamodel.User, error)
	GetAll(limit, offset int) ([]*userDatamodel.User, error)
	Update(u *userDatamodel.User) error
}

type Service struct {
	repo       RepositoryAPI
	bcryptCost int
	logger     *slog.Logger
}

func NewService(repo RepositoryAPI, bcryptCost int, logger *slog.Logger) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		repo:       repo,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

func (s *Service) Register(dto RegisterDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	if existing, err := s.repo.GetByEmail(dto.Email); err == nil && existing != nil {
		s.logger.Warn("registration rejected: email already in use", "email", dto.Email)
		return nil, internal.NewConflictError("Email já cadastrado", internal.ErrCodeValidationFailed)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), s.bcryptCost)
	if err != nil {
		return nil, internal.NewInternalError("failed to hash password", err)
	}

	model := &userDatamodel.User{
		Email:             dto.Email,
		Name:              dto.Name,
		PasswordHash:      string(hash),
		Role:              string(RoleUser),
		Sector:            dto.Sector,
		Department:        dto.Department,
		WorksInProduction: dto.WorksInProduction,
		IsApproved:        false,
		IsActive:          true,
	}

	if err := s.repo.Create(model); err != nil {
		s.logger.Error("failed to create user", "error", err, "email", dto.Email)
		return nil, err
	}

	s.logger.Info("user registered, pending approval", "user_id", model.ID, "email", dto.Email, "sector", dto.Sector)
	return FromDataModel(model), nil
}

func (s *Service) GetByID(id int64) (*User, error) {
	model, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrUserNotFound
	}
	return FromDataModel(model), nil
}

func (s *Service) GetAll(limit, offset int) ([]*User, error) {
	models, err := s.repo.GetAll(limit, offset)
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, err
	}
	return FromDataModelSlice(models), nil
}

// ApproveUser flips is_approved; only the HTTP layer's admin gate reaches
// here. Approving twice is a no-op.
func (s *Service) ApproveUser(id, adminID int64) (*User, error) {
	model, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrUserNotFound
	}

	u := FromDataModel(model)
	if u.IsApproved {
		return u, nil
	}

	u.Approve(adminID)
	if err := s.repo.Update(ToDataModel(u)); err != nil {
		s.logger.Error("failed to approve user", "error", err, "user_id", id)
		return nil, err
	}

	s.logger.Info("user approved", "user_id", id, "admin_id", adminID)
	return u, nil
}

func (s *Service) UpdateUser(id int64, dto UpdateUserDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	model, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrUserNotFound
	}

	u := FromDataModel(model)
	if dto.Role != nil {
		u.Role = ParseRole(*dto.Role)
	}
	if dto.Sector != nil {
		u.Sector = *dto.Sector
	}
	if dto.Department != nil {
		u.Department = *dto.Department
	}
	if dto.WorksInProduction != nil {
		u.WorksInProduction = *dto.WorksInProduction
	}

	if err := s.repo.Update(ToDataModel(u)); err != nil {
		s.logger.Error("failed to update user", "error", err, "user_id", id)
		return nil, err
	}

	s.logger.Info("user updated", "user_id", id)
	return u, nil
}

func (s *Service) DeactivateUser(id int64) error {
	model, err := s.repo.GetByID(id)
	if err != nil {
		return internal.ErrUserNotFound
	}

	u := FromDataModel(model)
	u.Deactivate()
	if err := s.repo.Update(ToDataModel(u)); err != nil {
		s.logger.Error("failed to deactivate user", "error", err, "user_id", id)
		return err
	}

	s.logger.Info("user deactivated", "user_id", id)
	return nil
}
