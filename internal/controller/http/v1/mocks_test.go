package v1_test

import (
	"context"
	"testing"

	"github.com/hackatronbits/Team-Encryptors/internal/domain"
	"github.com/stretchr/testify/mock"
)

type mockJobsRepository struct {
	mock.Mock
}

func newMockJobsRepository(t *testing.T) *mockJobsRepository {
	m := &mockJobsRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *mockJobsRepository) Jobs(ctx context.Context) ([]*domain.Job, error) {
	args := m.Called(ctx)
	jobs, _ := args.Get(0).([]*domain.Job)
	return jobs, args.Error(1)
}

type mockRedactionsRepository struct {
	mock.Mock
}

func newMockRedactionsRepository(t *testing.T) *mockRedactionsRepository {
	m := &mockRedactionsRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *mockRedactionsRepository) Redactions(ctx context.Context, filename string, limit, offset uint64) ([]*domain.Redaction, int, error) {
	args := m.Called(ctx, filename, limit, offset)
	redactions, _ := args.Get(0).([]*domain.Redaction)
	return redactions, args.Int(1), args.Error(2)
}

func (m *mockRedactionsRepository) AllRedactions(ctx context.Context) ([]*domain.Redaction, error) {
	args := m.Called(ctx)
	redactions, _ := args.Get(0).([]*domain.Redaction)
	return redactions, args.Error(1)
}
