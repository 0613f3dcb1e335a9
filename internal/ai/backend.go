// Package ai talks to the generative backend that enriches journal text,
// illustrates it and writes phase reports.
package ai

import (
	"context"
	"errors"

	"github.com/shenyaoyiivy/Glimmer-Mood/internal/models"
)

var (
	// ErrMalformedResponse is returned when a structured reply cannot be parsed
	ErrMalformedResponse = errors.New("malformed AI response")
	// ErrNoImage is returned when image synthesis yields no image part
	ErrNoImage = errors.New("no image generated")
	// ErrMissingAPIKey is returned when no API key is configured
	ErrMissingAPIKey = errors.New("no Gemini API key configured")
)

// DayText is one day's text as sent to report synthesis
type DayText struct {
	Day  string
	Text string
}

// ReportRequest is the input to report synthesis. Entries are ordered by day.
type ReportRequest struct {
	Entries     []DayText
	Start       string
	End         string
	Instruction string
}

// Backend is the remote generative service. Every call may fail with a
// transport, timeout or parse error; callers treat them all alike.
type Backend interface {
	EnrichText(ctx context.Context, text string) (models.Enrichment, error)
	SynthesizeImage(ctx context.Context, prompt string) (string, error)
	SynthesizeReport(ctx context.Context, req ReportRequest) (models.ReportNarrative, error)
}
