// Package aitest provides a testify mock of ai.Backend.
package aitest

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/shenyaoyiivy/Glimmer-Mood/internal/ai"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/models"
)

// MockBackend is a mock type for the ai.Backend interface
type MockBackend struct {
	mock.Mock
}

var _ ai.Backend = (*MockBackend)(nil)

func (m *MockBackend) EnrichText(ctx context.Context, text string) (models.Enrichment, error) {
	args := m.Called(ctx, text)
	return args.Get(0).(models.Enrichment), args.Error(1)
}

func (m *MockBackend) SynthesizeImage(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

func (m *MockBackend) SynthesizeReport(ctx context.Context, req ai.ReportRequest) (models.ReportNarrative, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(models.ReportNarrative), args.Error(1)
}
