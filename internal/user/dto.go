package user

import "errors"

// RegisterDTO is the self-registration payload. Accounts start unapproved and
// with role USER; an admin promotes roles afterwards.
type RegisterDTO struct {
	Email             string `json:"email"`
	Name              string `json:"name"`
	Password          string `json:"password"`
	Sector            string `json:"sector"`
	Department        string `json:"department"`
	WorksInProduction bool   `json:"works_in_production"`
}

func (dto RegisterDTO) Validate() error {
	if dto.Email == "" {
		return errors.New("email is required")
	}
	if dto.Name == "" {
		return errors.New("name is required")
	}
	if len(dto.Password) < 8 {
		return errors.New("password must be at least 8 characters")
	}
	if dto.Sector == "" {
		return errors.New("sector is required")
	}
	return nil
}

// UpdateUserDTO carries admin corrections: role changes, sector moves,
// production flag fixes.
type UpdateUserDTO struct {
	Role              *string `json:"role,omitempty"`
	Sector            *string `json:"sector,omitempty"`
	Department        *string `json:"department,omitempty"`
	WorksInProduction *bool   `json:"works_in_production,omitempty"`
}

func (dto UpdateUserDTO) Validate() error {
	if dto.Role != nil && ParseRole(*dto.Role) == RoleUnknown {
		return errors.New("unknown role")
	}
	return nil
}

type UserResponse struct {
	ID                int64  `json:"id"`
	Email             string `json:"email"`
	Name              string `json:"name"`
	Role              string `json:"role"`
	Sector            string `json:"sector"`
	Department        string `json:"department"`
	WorksInProduction bool   `json:"works_in_production"`
	IsApproved        bool   `json:"is_approved"`
}

func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:                u.ID,
		Email:             u.Email,
		Name:              u.Name,
		Role:              string(u.Role),
		Sector:            u.Sector,
		Department:        u.Department,
		WorksInProduction: u.WorksInProduction,
		IsApproved:        u.IsApproved,
	}
}
