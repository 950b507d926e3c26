package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/formdesk/formdesk-server/internal/model"
)

// SubmissionStore is a mock of model.SubmissionStore.
type SubmissionStore struct {
	mock.Mock
}

func NewSubmissionStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *SubmissionStore {
	m := &SubmissionStore{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *SubmissionStore) Create(ctx context.Context, submission model.Submission) (model.Submission, error) {
	args := m.Called(ctx, submission)
	return args.Get(0).(model.Submission), args.Error(1)
}

func (m *SubmissionStore) GetByID(ctx context.Context, id uuid.UUID) (model.Submission, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Submission), args.Error(1)
}

func (m *SubmissionStore) Latest(ctx context.Context, limit int) ([]model.Submission, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Submission), args.Error(1)
}
