// validation/roles.go

package validation

import (
	"context"
	"strings"

	"go.uber.org/zap"

	logger "github.com/talentedge/console-api/logging"
	"github.com/talentedge/console-api/model"
)

// RoleDirectory resolves a user's role from the role table.
type RoleDirectory interface {
	RoleOf(ctx context.Context, userID string) (model.Role, bool, error)
}

// RelationStore resolves delegation relations between a requester and a
// candidate.
type RelationStore interface {
	HasTeamLeadership(ctx context.Context, leaderID, candidateID string) (bool, error)
	HasConsultantAssignment(ctx context.Context, consultantID, candidateID string) (bool, error)
}

// Legacy ID-prefix conventions. These predate the role table and survive only
// as a compatibility shim for IDs minted before it existed; they are not a
// security boundary.
const (
	legacyAdminPrefix   = "ADM_"
	legacySupportPrefix = "SUP_"
)

// classifyRole resolves the requester's role: role table first, prefix shim
// second, candidate otherwise.
func (e *Engine) classifyRole(ctx context.Context, userID string) model.Role {
	if e.roles != nil {
		role, found, err := e.roles.RoleOf(ctx, userID)
		if err != nil {
			logger.Warn("Role lookup failed, falling back to ID prefix",
				zap.String("userID", userID), zap.Error(err))
		} else if found {
			return role
		}
	}
	switch {
	case strings.HasPrefix(userID, legacyAdminPrefix):
		return model.RoleAdmin
	case strings.HasPrefix(userID, legacySupportPrefix):
		return model.RoleSupport
	default:
		return model.RoleCandidate
	}
}
