package report_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/shenyaoyiivy/Glimmer-Mood/internal/ai"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/ai/aitest"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/constants"
	apperrors "github.com/shenyaoyiivy/Glimmer-Mood/internal/errors"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/models"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/report"
)

var testLoc = time.FixedZone("UTC+8", 8*60*60)

func day(d int) time.Time {
	return time.Date(2024, 3, d, 12, 0, 0, 0, testLoc)
}

func entries() []models.JournalEntry {
	return []models.JournalEntry{
		{ID: "5", OccursOn: day(5), RawText: "fifth", Highlights: []string{"a", "b"}},
		{ID: "3", OccursOn: day(3), RawText: "third", Highlights: []string{"c"}},
		{ID: "1", OccursOn: day(1), RawText: "first", Highlights: []string{}},
		{ID: "bad", RawText: "no date", Highlights: []string{"x"}},
	}
}

func narrative() models.ReportNarrative {
	return models.ReportNarrative{
		Title:              "微光时节",
		Summary:            "一段温柔的时光",
		MoodVibe:           "松弛",
		TopKeywords:        []models.KeywordCount{{Text: "咖啡", Count: 3}},
		PersonalNarratives: []string{"你提到咖啡3次"},
		VisualTheme:        "Forest Mist",
	}
}

func TestBuildEmptyRangeMakesNoCall(t *testing.T) {
	backend := new(aitest.MockBackend)
	r := report.New(backend, report.WithLocation(testLoc))

	_, err := r.Build(context.Background(), entries(), day(10), day(20), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, report.ErrNothingToSummarize)
	assert.Equal(t, constants.Msg(constants.LocaleZH, constants.MsgNothingToSummarize), apperrors.Friendly(err))
	backend.AssertNotCalled(t, "SynthesizeReport", mock.Anything, mock.Anything)
}

func TestBuildFiltersAndAttachesStats(t *testing.T) {
	ctx := context.Background()
	backend := new(aitest.MockBackend)
	want := ai.ReportRequest{
		Entries: []ai.DayText{
			{Day: "2024-03-03", Text: "third"},
			{Day: "2024-03-05", Text: "fifth"},
		},
		Start:       "2024-03-02",
		End:         "2024-03-06",
		Instruction: constants.DefaultInstruction,
	}
	backend.On("SynthesizeReport", ctx, want).Return(narrative(), nil).Once()

	r := report.New(backend, report.WithLocation(testLoc))
	// Swapped on purpose: the range is order-insensitive.
	got, err := r.Build(ctx, entries(), day(6), day(2), "   ")
	require.NoError(t, err)

	assert.Equal(t, "微光时节", got.Title)
	assert.Equal(t, 2, got.Stats.RecordedDays)
	assert.Equal(t, 3, got.Stats.HighlightCount)
	backend.AssertExpectations(t)
}

// TotalDays counts entries rather than calendar days in the span; this pins
// that behavior so a change to it is deliberate.
func TestStatsTotalDaysEqualsRecordedDays(t *testing.T) {
	stats := report.Stats(report.InRange(entries(), day(1), day(31), testLoc))
	assert.Equal(t, 3, stats.RecordedDays)
	assert.Equal(t, stats.RecordedDays, stats.TotalDays, "TotalDays is not the 31-day span length")
}

func TestBuildPassesInstruction(t *testing.T) {
	ctx := context.Background()
	backend := new(aitest.MockBackend)
	backend.On("SynthesizeReport", ctx, mock.MatchedBy(func(req ai.ReportRequest) bool {
		return req.Instruction == "funny and short"
	})).Return(narrative(), nil).Once()

	_, err := report.New(backend, report.WithLocation(testLoc)).Build(ctx, entries(), day(1), day(5), "funny and short")
	require.NoError(t, err)
	backend.AssertExpectations(t)
}

func TestBuildBackendFailure(t *testing.T) {
	ctx := context.Background()
	backend := new(aitest.MockBackend)
	cause := errors.New("deadline exceeded")
	backend.On("SynthesizeReport", ctx, mock.Anything).Return(models.ReportNarrative{}, cause).Once()

	r := report.New(backend, report.WithLocation(testLoc), report.WithLocale(constants.LocaleEN))
	_, err := r.Build(ctx, entries(), day(1), day(5), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, report.ErrReportFailed)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, constants.Msg(constants.LocaleEN, constants.MsgReportFailed), apperrors.Friendly(err))
}

func TestBuildDoesNotMutateEntries(t *testing.T) {
	ctx := context.Background()
	backend := new(aitest.MockBackend)
	backend.On("SynthesizeReport", ctx, mock.Anything).Return(narrative(), nil)

	in := entries()
	_, err := report.New(backend, report.WithLocation(testLoc)).Build(ctx, in, day(1), day(5), "")
	require.NoError(t, err)
	assert.Equal(t, entries(), in)
}

func TestRenderPoster(t *testing.T) {
	r := models.PhaseReport{ReportNarrative: narrative(), Stats: models.ReportStats{TotalDays: 2, RecordedDays: 2, HighlightCount: 3}}
	out := report.RenderPoster(r, day(6), day(2), day(7), testLoc, constants.LocaleZH)

	for _, want := range []string{"微光时节", "松弛", "#咖啡", "有光天数", "2024-03-02 → 2024-03-06", "2024-03-07"} {
		assert.True(t, strings.Contains(out, want), "poster missing %q:\n%s", want, out)
	}
}

func TestThemeColor(t *testing.T) {
	assert.Equal(t, report.ThemeColor("Sunset Amber"), report.ThemeColor("amber glow"))
	assert.NotEqual(t, report.ThemeColor("Ocean Breeze"), report.ThemeColor("Forest Mist"))
	assert.Equal(t, report.ThemeColor("unknown"), report.ThemeColor(""))
}
