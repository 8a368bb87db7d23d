package auth

import (
	"strconv"

	"golang.org/x/crypto/bcrypt"

	"github.com/registroos/registro-os/internal"
	"github.com/registroos/registro-os/internal/user"
)

type UserRepository interface {
	GetByEmail(email string) (passwordHash string, u *user.User, err error)
	GetByID(id int64) (*user.User, error)
}

// Service is the main auth service with dependencies
type Service struct {
	userRepo       UserRepository
	tokenGenerator *JWTTokenGenerator
}

// NewService creates a new auth service
func NewService(userRepo UserRepository, tokenGen *JWTTokenGenerator) *Service {
	return &Service{
		userRepo:       userRepo,
		tokenGenerator: tokenGen,
	}
}

// Authenticate validates credentials and returns tokens. Unapproved and
// deactivated accounts are rejected even with a correct password.
func (s *Service) Authenticate(dto LoginDTO) (AuthTokens, error) {
	if err := dto.Validate(); err != nil {
		return AuthTokens{}, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	storedHash, u, err := s.userRepo.GetByEmail(dto.Email)
	if err != nil || u == nil {
		return AuthTokens{}, internal.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(dto.Password)); err != nil {
		return AuthTokens{}, internal.ErrInvalidCredentials
	}

	if !u.IsActive {
		return AuthTokens{}, internal.ErrUserInactive
	}
	if !u.IsApproved {
		return AuthTokens{}, internal.ErrUserNotApproved
	}

	return s.issueTokens(u)
}

// RefreshTokens validates a refresh token and returns a new pair.
func (s *Service) RefreshTokens(refreshToken string) (AuthTokens, error) {
	claims, err := s.tokenGenerator.ValidateRefreshToken(refreshToken)
	if err != nil {
		return AuthTokens{}, err
	}

	id, err := strconv.ParseInt(claims.UserID, 10, 64)
	if err != nil {
		return AuthTokens{}, internal.ErrInvalidToken
	}

	u, err := s.userRepo.GetByID(id)
	if err != nil || u == nil {
		return AuthTokens{}, internal.ErrInvalidToken
	}
	if !u.IsActive {
		return AuthTokens{}, internal.ErrUserInactive
	}

	return s.issueTokens(u)
}

// ValidateAccessToken resolves the user behind an access token.
func (s *Service) ValidateAccessToken(tokenString string) (*user.User, error) {
	claims, err := s.tokenGenerator.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	id, err := strconv.ParseInt(claims.UserID, 10, 64)
	if err != nil {
		return nil, internal.ErrInvalidToken
	}

	u, err := s.userRepo.GetByID(id)
	if err != nil || u == nil {
		return nil, internal.ErrInvalidToken
	}
	if !u.IsActive {
		return nil, internal.ErrUserInactive
	}

	return u, nil
}

func (s *Service) issueTokens(u *user.User) (AuthTokens, error) {
	id := strconv.FormatInt(u.ID, 10)

	accessToken, err := s.tokenGenerator.GenerateAccessToken(id, u.Email)
	if err != nil {
		return AuthTokens{}, internal.NewInternalError("failed to sign access token", err)
	}

	refreshToken, err := s.tokenGenerator.GenerateRefreshToken(id, u.Email)
	if err != nil {
		return AuthTokens{}, internal.NewInternalError("failed to sign refresh token", err)
	}

	return AuthTokens{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
