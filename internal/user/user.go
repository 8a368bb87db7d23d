package user

import (
	"strings"
	"time"

	userDatamodel "github.com/registroos/registro-os/internal/core/datamodel/user"
)

// Role is the closed set of roles the workflow understands. Anything the
// database hands back outside this set parses to RoleUnknown, which fails
// every gate.
type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleSupervisor Role = "SUPERVISOR"
	RoleGestao     Role = "GESTAO"
	RoleUser       Role = "USER"
	RolePCP        Role = "PCP"
	RoleUnknown    Role = "UNKNOWN"
)

func ParseRole(s string) Role {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin
	case RoleSupervisor:
		return RoleSupervisor
	case RoleGestao:
		return RoleGestao
	case RoleUser:
		return RoleUser
	case RolePCP:
		return RolePCP
	default:
		return RoleUnknown
	}
}

func (r Role) String() string {
	return string(r)
}

// IsSupervision reports whether the role carries supervisor-level authority
// over apontamentos (approve, reject, view sector-wide).
func (r Role) IsSupervision() bool {
	return r == RoleSupervisor || r == RoleAdmin || r == RoleGestao
}

func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

type User struct {
	ID                int64      `json:"id"`
	Email             string     `json:"email"`
	Name              string     `json:"name"`
	Role              Role       `json:"role"`
	Sector            string     `json:"sector"`
	Department        string     `json:"department"`
	WorksInProduction bool       `json:"works_in_production"`
	IsApproved        bool       `json:"is_approved"`
	IsActive          bool       `json:"is_active"`
	ApprovedBy        *int64     `json:"approved_by,omitempty"`
	ApprovedAt        *time.Time `json:"approved_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// Approve marks the account usable. Registration leaves accounts unapproved
// until an admin acts; login rejects unapproved accounts.
func (u *User) Approve(adminID int64) {
	now := time.Now()
	u.IsApproved = true
	u.ApprovedBy = &adminID
	u.ApprovedAt = &now
	u.UpdatedAt = now
}

func (u *User) Deactivate() {
	u.IsActive = false
	u.UpdatedAt = time.Now()
}

func ToDataModel(u *User) *userDatamodel.User {
	return &userDatamodel.User{
		ID:                u.ID,
		Email:             u.Email,
		Name:              u.Name,
		Role:              string(u.Role),
		Sector:            u.Sector,
		Department:        u.Department,
		WorksInProduction: u.WorksInProduction,
		IsApproved:        u.IsApproved,
		IsActive:          u.IsActive,
		ApprovedBy:        u.ApprovedBy,
		ApprovedAt:        u.ApprovedAt,
		CreatedAt:         u.CreatedAt,
		UpdatedAt:         u.UpdatedAt,
	}
}

func FromDataModel(m *userDatamodel.User) *User {
	return &User{
		ID:                m.ID,
		Email:             m.Email,
		Name:              m.Name,
		Role:              ParseRole(m.Role),
		Sector:            m.Sector,
		Department:        m.Department,
		WorksInProduction: m.WorksInProduction,
		IsApproved:        m.IsApproved,
		IsActive:          m.IsActive,
		ApprovedBy:        m.ApprovedBy,
		ApprovedAt:        m.ApprovedAt,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

func FromDataModelSlice(models []*userDatamodel.User) []*User {
	result := make([]*User, len(models))
	for i, m := range models {
		result[i] = FromDataModel(m)
	}
	return result
}
