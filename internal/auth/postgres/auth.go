package postgres

import (
	"gorm.io/gorm"

	"github.com/registroos/registro-os/internal/auth"
	userDatamodel "github.com/registroos/registro-os/internal/core/datamodel/user"
	"github.com/registroos/registro-os/internal/user"
)

type AuthRepository struct {
	db *gorm.DB
}

func NewAuthRepository(db *gorm.DB) auth.UserRepository {
	return &AuthRepository{db: db}
}

func (r *AuthRepository) GetByEmail(email string) (string, *user.User, error) {
	var m userDatamodel.User
	err := r.db.Where("email = ?", email).First(&m).Error
	if err != nil {
		return "", nil, err
	}
	return m.PasswordHash, user.FromDataModel(&m), nil
}

func (r *AuthRepository) GetByID(id int64) (*user.User, error) {
	var m userDatamodel.User
	err := r.db.Where("id = ?", id).First(&m).Error
	if err != nil {
		return nil, err
	}
	return user.FromDataModel(&m), nil
}
