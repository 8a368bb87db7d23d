// Package access decides whether a user may enter the shop-floor development
// workflow of a sector. It is pure rule evaluation over the user's role,
// production flag and sector; persistence and session handling live elsewhere.
package access

import (
	"log/slog"

	"github.com/registroos/registro-os/internal/core/normalize"
	"github.com/registroos/registro-os/internal/user"
)

// Evaluator holds the normalized production-sector allow-list. The list is
// injected from configuration; see internal.WorkflowConfig.
type Evaluator struct {
	productionSectors map[string]struct{}
	logger            *slog.Logger
}

func NewEvaluator(productionSectors []string, logger *slog.Logger) *Evaluator {
	set := make(map[string]struct{}, len(productionSectors))
	for _, s := range productionSectors {
		set[normalize.Sector(s)] = struct{}{}
	}
	return &Evaluator{
		productionSectors: set,
		logger:            logger,
	}
}

// CanAccessDevelopment reports whether u may act in the development workflow
// for requestedSector.
//
// ADMIN, SUPERVISOR and GESTAO pass unconditionally. USER passes only when
// flagged as working in production, assigned to a sector on the allow-list,
// and requesting their own sector; a technician cannot log work under another
// sector's name. PCP and unknown roles never pass. A malformed user fails
// closed.
func (e *Evaluator) CanAccessDevelopment(u *user.User, requestedSector string) bool {
	if u == nil || u.Role == "" || u.Role == user.RoleUnknown {
		e.logger.Warn("development access denied: malformed user", "sector", requestedSector)
		return false
	}

	switch u.Role {
	case user.RoleAdmin, user.RoleSupervisor, user.RoleGestao:
		e.logger.Debug("development access granted: administrative role",
			"user_id", u.ID, "role", u.Role, "sector", requestedSector)
		return true
	case user.RoleUser:
		// fall through to the production gate below
	default:
		e.logger.Debug("development access denied: role outside production",
			"user_id", u.ID, "role", u.Role, "sector", requestedSector)
		return false
	}

	if !u.WorksInProduction {
		e.logger.Debug("development access denied: user not in production",
			"user_id", u.ID, "sector", requestedSector)
		return false
	}

	if u.Sector == "" {
		e.logger.Warn("development access denied: user without sector", "user_id", u.ID)
		return false
	}

	if !normalize.SectorEquals(u.Sector, requestedSector) {
		e.logger.Warn("development access denied: sector mismatch",
			"user_id", u.ID, "user_sector", u.Sector, "requested_sector", requestedSector)
		return false
	}

	_, allowed := e.productionSectors[normalize.Sector(u.Sector)]
	e.logger.Debug("development access evaluated",
		"user_id", u.ID,
		"user_sector", u.Sector,
		"requested_sector", requestedSector,
		"granted", allowed)
	return allowed
}
