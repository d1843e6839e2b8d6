// validation/permission.go

// Package validation is the permission and business-rule layer: role
// classification, ownership and delegation checks, per-type rate limiting,
// and the domain eligibility rules for withdrawals and interview slots.
package validation

import (
	"context"
	"strings"

	"go.uber.org/zap"

	logger "github.com/talentedge/console-api/logging"
	"github.com/talentedge/console-api/model"
)

// Restriction tags accumulated on permission decisions.
const (
	RestrictionBusinessHours    = "Business hours only"
	RestrictionAuditLogged      = "Audit logged"
	RestrictionRateLimited      = "Rate limited"
	RestrictionLimitedRetention = "Sensitive data - limited retention"
	RestrictionViewOnly         = "View only"
)

var financialTypes = []string{"payment", "withdrawal", "banking", "salary"}

// supportAllowedTypes is the allow-list for support staff. Financial types
// are never on it.
var supportAllowedTypes = map[string]bool{
	model.DataTypeAccount:   true,
	model.DataTypeJobs:      true,
	model.DataTypeInterview: true,
}

// rateLimitedSelfTypes are the data types a candidate's own access is
// explicitly tagged as rate limited for.
var rateLimitedSelfTypes = map[string]bool{
	model.DataTypePayment:    true,
	model.DataTypeWithdrawal: true,
}

// IsFinancial reports whether a data type carries financial data.
func IsFinancial(dataType string) bool {
	for _, t := range financialTypes {
		if strings.Contains(dataType, t) {
			return true
		}
	}
	return false
}

// IsSensitive reports whether a data type is classified sensitive
// (financial, identity or banking data).
func IsSensitive(dataType string) bool {
	if IsFinancial(dataType) {
		return true
	}
	return strings.Contains(dataType, "account") || strings.Contains(dataType, "verification") || strings.Contains(dataType, "identity")
}

// Engine performs permission checks and the domain-rule validations.
type Engine struct {
	roles     RoleDirectory
	relations RelationStore
	limiter   *RateLimiter
}

func NewEngine(roles RoleDirectory, relations RelationStore, limiter *RateLimiter) *Engine {
	return &Engine{roles: roles, relations: relations, limiter: limiter}
}

// Classify resolves the requester's role.
func (e *Engine) Classify(ctx context.Context, userID string) model.Role {
	return e.classifyRole(ctx, userID)
}

// CheckPermission decides whether userID may read dataType for subjectID.
// Priority order: admin, self, support, delegated, deny. Restrictions
// accumulate; sensitive types always carry the limited-retention tag.
func (e *Engine) CheckPermission(ctx context.Context, userID, subjectID, dataType string) model.PermissionDecision {
	role := e.classifyRole(ctx, userID)

	var decision model.PermissionDecision
	switch {
	case role == model.RoleAdmin:
		decision = model.PermissionDecision{
			Allowed:       true,
			Reason:        "Administrator access",
			AuditRequired: true,
		}

	case userID == subjectID:
		decision = model.PermissionDecision{
			Allowed:       true,
			Reason:        "Self access",
			AuditRequired: IsSensitive(dataType),
		}
		if rateLimitedSelfTypes[dataType] {
			decision.Restrictions = append(decision.Restrictions, RestrictionRateLimited)
		}

	case role == model.RoleSupport:
		if IsFinancial(dataType) || !supportAllowedTypes[dataType] {
			decision = model.PermissionDecision{
				Allowed: false,
				Reason:  "Support staff cannot access this data type",
			}
			break
		}
		decision = model.PermissionDecision{
			Allowed:       true,
			Reason:        "Support staff access",
			Restrictions:  []string{RestrictionBusinessHours, RestrictionAuditLogged},
			AuditRequired: true,
		}

	default:
		decision = e.checkDelegated(ctx, userID, subjectID, dataType)
	}

	if decision.Allowed && IsSensitive(dataType) && !contains(decision.Restrictions, RestrictionLimitedRetention) {
		decision.Restrictions = append(decision.Restrictions, RestrictionLimitedRetention)
	}

	if !decision.Allowed {
		logger.Debug("Permission denied",
			zap.String("userID", userID),
			zap.String("subjectID", subjectID),
			zap.String("dataType", dataType),
			zap.String("reason", decision.Reason))
	}
	return decision
}

// checkDelegated resolves team-leadership and consultant relations. A
// consultant assignment clears the financial restriction; team leadership
// does not.
func (e *Engine) checkDelegated(ctx context.Context, userID, subjectID, dataType string) model.PermissionDecision {
	if e.relations == nil {
		return model.PermissionDecision{Allowed: false, Reason: "No access relationship found"}
	}

	consultant, err := e.relations.HasConsultantAssignment(ctx, userID, subjectID)
	if err != nil {
		logger.Warn("Consultant assignment lookup failed", zap.Error(err), zap.String("userID", userID))
	}
	if consultant {
		return model.PermissionDecision{
			Allowed:       true,
			Reason:        "Assigned consultant access",
			Restrictions:  []string{RestrictionAuditLogged},
			AuditRequired: true,
		}
	}

	lead, err := e.relations.HasTeamLeadership(ctx, userID, subjectID)
	if err != nil {
		logger.Warn("Team leadership lookup failed", zap.Error(err), zap.String("userID", userID))
	}
	if lead {
		if IsFinancial(dataType) {
			return model.PermissionDecision{
				Allowed: false,
				Reason:  "Team leadership does not extend to financial data",
			}
		}
		return model.PermissionDecision{
			Allowed:       true,
			Reason:        "Team leader access",
			Restrictions:  []string{RestrictionViewOnly, RestrictionAuditLogged},
			AuditRequired: true,
		}
	}

	return model.PermissionDecision{Allowed: false, Reason: "No access relationship found"}
}

// CheckRateLimit applies the per-(user, data type) quota. Internal errors
// fail open.
func (e *Engine) CheckRateLimit(ctx context.Context, userID, dataType string) model.RateLimitDecision {
	if e.limiter == nil {
		return model.RateLimitDecision{Allowed: true}
	}
	return e.limiter.Check(ctx, userID, dataType)
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
