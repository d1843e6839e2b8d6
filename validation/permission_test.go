// validation/permission_test.go
package validation_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	tmock "github.com/stretchr/testify/mock"

	logger "github.com/talentedge/console-api/logging"
	"github.com/talentedge/console-api/model"
	"github.com/talentedge/console-api/test/mock"
	"github.com/talentedge/console-api/validation"
)

// noRoles answers every role lookup with "not in the table" so the prefix
// shim and relation checks drive the outcome.
func noRoles() *mock.MockRoleDirectory {
	roles := new(mock.MockRoleDirectory)
	roles.On("RoleOf", tmock.Anything, tmock.Anything).Return(model.Role(""), false, nil)
	return roles
}

func noRelations() *mock.MockRelationStore {
	relations := new(mock.MockRelationStore)
	relations.On("HasConsultantAssignment", tmock.Anything, tmock.Anything, tmock.Anything).Return(false, nil)
	relations.On("HasTeamLeadership", tmock.Anything, tmock.Anything, tmock.Anything).Return(false, nil)
	return relations
}

func TestCheckPermission(t *testing.T) {
	logger.InitTestLogger()
	ctx := context.Background()

	t.Run("AdminByRoleTable", func(t *testing.T) {
		roles := new(mock.MockRoleDirectory)
		roles.On("RoleOf", tmock.Anything, "USR_100").Return(model.RoleAdmin, true, nil)
		engine := validation.NewEngine(roles, noRelations(), nil)

		decision := engine.CheckPermission(ctx, "USR_100", "CAND_001", model.DataTypePayment)
		assert.True(t, decision.Allowed)
		assert.Equal(t, "Administrator access", decision.Reason)
		assert.True(t, decision.AuditRequired)
	})

	t.Run("AdminByLegacyPrefix", func(t *testing.T) {
		engine := validation.NewEngine(noRoles(), noRelations(), nil)

		decision := engine.CheckPermission(ctx, "ADM_100", "CAND_001", model.DataTypeWithdrawal)
		assert.True(t, decision.Allowed)
		assert.Equal(t, "Administrator access", decision.Reason)
	})

	t.Run("SelfAccessFinancialIsRateLimited", func(t *testing.T) {
		engine := validation.NewEngine(noRoles(), noRelations(), nil)

		decision := engine.CheckPermission(ctx, "CAND_001", "CAND_001", model.DataTypeWithdrawal)
		assert.True(t, decision.Allowed)
		assert.Equal(t, "Self access", decision.Reason)
		assert.Contains(t, decision.Restrictions, validation.RestrictionRateLimited)
		assert.Contains(t, decision.Restrictions, validation.RestrictionLimitedRetention)
		assert.True(t, decision.AuditRequired)
	})

	t.Run("SelfAccessNonSensitiveIsUnrestricted", func(t *testing.T) {
		engine := validation.NewEngine(noRoles(), noRelations(), nil)

		decision := engine.CheckPermission(ctx, "CAND_001", "CAND_001", model.DataTypeJobs)
		assert.True(t, decision.Allowed)
		assert.Empty(t, decision.Restrictions)
		assert.False(t, decision.AuditRequired)
	})

	t.Run("SupportDeniedFinancial", func(t *testing.T) {
		engine := validation.NewEngine(noRoles(), noRelations(), nil)

		decision := engine.CheckPermission(ctx, "SUP_200", "CAND_001", model.DataTypePayment)
		assert.False(t, decision.Allowed)
		assert.Equal(t, "Support staff cannot access this data type", decision.Reason)
	})

	t.Run("SupportAllowedOperational", func(t *testing.T) {
		engine := validation.NewEngine(noRoles(), noRelations(), nil)

		decision := engine.CheckPermission(ctx, "SUP_200", "CAND_001", model.DataTypeJobs)
		assert.True(t, decision.Allowed)
		assert.Equal(t, []string{
			validation.RestrictionBusinessHours,
			validation.RestrictionAuditLogged,
		}, decision.Restrictions)
		assert.True(t, decision.AuditRequired)
	})

	t.Run("SupportDeniedProfile", func(t *testing.T) {
		engine := validation.NewEngine(noRoles(), noRelations(), nil)

		decision := engine.CheckPermission(ctx, "SUP_200", "CAND_001", model.DataTypeProfile)
		assert.False(t, decision.Allowed)
	})

	t.Run("ConsultantMayReadFinancial", func(t *testing.T) {
		relations := new(mock.MockRelationStore)
		relations.On("HasConsultantAssignment", tmock.Anything, "USR_300", "CAND_001").Return(true, nil)
		engine := validation.NewEngine(noRoles(), relations, nil)

		decision := engine.CheckPermission(ctx, "USR_300", "CAND_001", model.DataTypeWithdrawal)
		assert.True(t, decision.Allowed)
		assert.Equal(t, "Assigned consultant access", decision.Reason)
		assert.Contains(t, decision.Restrictions, validation.RestrictionAuditLogged)
		assert.Contains(t, decision.Restrictions, validation.RestrictionLimitedRetention)
	})

	t.Run("TeamLeadDeniedFinancial", func(t *testing.T) {
		relations := new(mock.MockRelationStore)
		relations.On("HasConsultantAssignment", tmock.Anything, "USR_400", "CAND_001").Return(false, nil)
		relations.On("HasTeamLeadership", tmock.Anything, "USR_400", "CAND_001").Return(true, nil)
		engine := validation.NewEngine(noRoles(), relations, nil)

		decision := engine.CheckPermission(ctx, "USR_400", "CAND_001", model.DataTypePayment)
		assert.False(t, decision.Allowed)
		assert.Equal(t, "Team leadership does not extend to financial data", decision.Reason)
	})

	t.Run("TeamLeadViewOnlyOperational", func(t *testing.T) {
		relations := new(mock.MockRelationStore)
		relations.On("HasConsultantAssignment", tmock.Anything, "USR_400", "CAND_001").Return(false, nil)
		relations.On("HasTeamLeadership", tmock.Anything, "USR_400", "CAND_001").Return(true, nil)
		engine := validation.NewEngine(noRoles(), relations, nil)

		decision := engine.CheckPermission(ctx, "USR_400", "CAND_001", model.DataTypeJobs)
		assert.True(t, decision.Allowed)
		assert.Equal(t, "Team leader access", decision.Reason)
		assert.Contains(t, decision.Restrictions, validation.RestrictionViewOnly)
	})

	t.Run("NoRelationshipDenied", func(t *testing.T) {
		engine := validation.NewEngine(noRoles(), noRelations(), nil)

		decision := engine.CheckPermission(ctx, "USR_500", "CAND_001", model.DataTypeAccount)
		assert.False(t, decision.Allowed)
		assert.Equal(t, "No access relationship found", decision.Reason)
	})

	t.Run("RoleLookupErrorFallsBackToPrefix", func(t *testing.T) {
		roles := new(mock.MockRoleDirectory)
		roles.On("RoleOf", tmock.Anything, "ADM_900").Return(model.Role(""), false, errors.New("db down"))
		engine := validation.NewEngine(roles, noRelations(), nil)

		decision := engine.CheckPermission(ctx, "ADM_900", "CAND_001", model.DataTypeAccount)
		assert.True(t, decision.Allowed)
		assert.Equal(t, "Administrator access", decision.Reason)
	})
}

func TestClassification(t *testing.T) {
	logger.InitTestLogger()

	assert.True(t, validation.IsFinancial("payment"))
	assert.True(t, validation.IsFinancial("payment_status"))
	assert.True(t, validation.IsFinancial("banking"))
	assert.False(t, validation.IsFinancial("jobs"))

	assert.True(t, validation.IsSensitive("account"))
	assert.True(t, validation.IsSensitive("withdrawal"))
	assert.True(t, validation.IsSensitive("verification"))
	assert.False(t, validation.IsSensitive("jobs"))
	assert.False(t, validation.IsSensitive("interview"))
}
