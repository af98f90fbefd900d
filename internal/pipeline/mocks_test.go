package pipeline_test

import (
	"context"
	"testing"

	"github.com/hackatronbits/Team-Encryptors/internal/domain"
	"github.com/hackatronbits/Team-Encryptors/internal/redactor"
	"github.com/stretchr/testify/mock"
)

type mockJobsProvider struct {
	mock.Mock
}

func newMockJobsProvider(t *testing.T) *mockJobsProvider {
	m := &mockJobsProvider{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *mockJobsProvider) Jobs(ctx context.Context) ([]*domain.Job, error) {
	args := m.Called(ctx)

	jobs, _ := args.Get(0).([]*domain.Job)

	return jobs, args.Error(1)
}

type mockJobUpdater struct {
	mock.Mock
}

func newMockJobUpdater(t *testing.T) *mockJobUpdater {
	m := &mockJobUpdater{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *mockJobUpdater) UpdateOrCreateJob(ctx context.Context, job *domain.Job) error {
	args := m.Called(ctx, job)

	return args.Error(0)
}

type mockRedactionSaver struct {
	mock.Mock
}

func newMockRedactionSaver(t *testing.T) *mockRedactionSaver {
	m := &mockRedactionSaver{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *mockRedactionSaver) SaveRedaction(ctx context.Context, redaction *domain.Redaction) error {
	args := m.Called(ctx, redaction)

	return args.Error(0)
}

type mockTransactor struct {
	mock.Mock
}

func newMockTransactor(t *testing.T) *mockTransactor {
	m := &mockTransactor{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *mockTransactor) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, fn)

	return args.Error(0)
}

type mockSubmitter struct {
	mock.Mock
}

func newMockSubmitter(t *testing.T) *mockSubmitter {
	m := &mockSubmitter{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *mockSubmitter) RedactFile(ctx context.Context, path string, opts redactor.Options) (*redactor.Result, error) {
	args := m.Called(ctx, path, opts)

	result, _ := args.Get(0).(*redactor.Result)

	return result, args.Error(1)
}

type mockDownloader struct {
	mock.Mock
}

func newMockDownloader(t *testing.T) *mockDownloader {
	m := &mockDownloader{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *mockDownloader) Download(ctx context.Context, filename, destDir string) (string, error) {
	args := m.Called(ctx, filename, destDir)

	return args.String(0), args.Error(1)
}
