// test/mock/validation.go
package mock

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/talentedge/console-api/model"
)

// MockRoleDirectory is a mock implementation of validation.RoleDirectory
type MockRoleDirectory struct {
	mock.Mock
}

func (m *MockRoleDirectory) RoleOf(ctx context.Context, userID string) (model.Role, bool, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(model.Role), args.Bool(1), args.Error(2)
}

// MockRelationStore is a mock implementation of validation.RelationStore
type MockRelationStore struct {
	mock.Mock
}

func (m *MockRelationStore) HasTeamLeadership(ctx context.Context, leaderID, candidateID string) (bool, error) {
	args := m.Called(ctx, leaderID, candidateID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRelationStore) HasConsultantAssignment(ctx context.Context, consultantID, candidateID string) (bool, error) {
	args := m.Called(ctx, consultantID, candidateID)
	return args.Bool(0), args.Error(1)
}

// MockAttemptStore is a mock implementation of validation.AttemptStore
type MockAttemptStore struct {
	mock.Mock
}

func (m *MockAttemptStore) RecordAndCount(ctx context.Context, key string, window time.Duration) (int64, error) {
	args := m.Called(ctx, key, window)
	return args.Get(0).(int64), args.Error(1)
}
