package entries

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/shenyaoyiivy/Glimmer-Mood/internal/ai"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/ai/aitest"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/cli"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/constants"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/journal"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/models"
)

var testNow = time.Date(2024, 5, 20, 21, 0, 0, 0, time.UTC)

func setupTestContext(t *testing.T, input string) (*cli.Context, *aitest.MockBackend, *bytes.Buffer) {
	t.Helper()
	backend := new(aitest.MockBackend)
	out := &bytes.Buffer{}
	ctx := &cli.Context{
		Journal: journal.New(nil, journal.WithLocation(time.UTC)),
		NewBackend: func(context.Context) (ai.Backend, error) {
			return backend, nil
		},
		Out: out,
		In:  strings.NewReader(input),
		Now: func() time.Time { return testNow },
	}
	return ctx, backend, out
}

func expectCompose(backend *aitest.MockBackend, text, prompt string) {
	backend.On("EnrichText", mock.Anything, text).Return(models.Enrichment{
		ImagePrompt:   prompt,
		Caption:       "晚风",
		Keywords:      []string{"walk"},
		Highlights:    []string{"sunset"},
		HasHighlights: true,
	}, nil).Once()
	backend.On("SynthesizeImage", mock.Anything, prompt).Return("data:image/png;base64,AA==", nil).Once()
}

func seed(t *testing.T, ctx *cli.Context, day, text string) models.JournalEntry {
	t.Helper()
	occurs, err := time.Parse(constants.DateFormat, day)
	require.NoError(t, err)
	e := models.JournalEntry{
		ID:       "id-" + day,
		OccursOn: occurs.Add(12 * time.Hour),
		RawText:  text,
		Caption:  "微光",
	}
	ctx.Journal.UpsertByDay(context.Background(), e)
	return e
}

func TestWriteCmdCreatesEntryForToday(t *testing.T) {
	ctx, backend, out := setupTestContext(t, "")
	expectCompose(backend, "walked home", "dusk street")

	cmd := &WriteCmd{Text: "walked home"}
	require.NoError(t, cmd.Run(ctx))

	e, ok := ctx.Journal.FindByDay("2024-05-20")
	require.True(t, ok)
	assert.Equal(t, "walked home", e.RawText)
	assert.Equal(t, "晚风", e.Caption)
	assert.Contains(t, out.String(), "晚风")
	assert.Contains(t, out.String(), "♥ sunset")
	backend.AssertExpectations(t)
}

func TestWriteCmdAppendsToExistingDay(t *testing.T) {
	ctx, backend, _ := setupTestContext(t, "")
	existing := seed(t, ctx, "2024-05-19", "morning")
	expectCompose(backend, "morning\nevening", "two moods")

	cmd := &WriteCmd{Day: "yesterday", Text: "evening"}
	require.NoError(t, cmd.Run(ctx))

	e, ok := ctx.Journal.FindByDay("2024-05-19")
	require.True(t, ok)
	assert.Equal(t, existing.ID, e.ID)
	assert.Equal(t, "morning\nevening", e.RawText)
	assert.Equal(t, 1, ctx.Journal.Len())
}

func TestWriteCmdFailureShowsFriendlyMessage(t *testing.T) {
	ctx, backend, _ := setupTestContext(t, "")
	backend.On("EnrichText", mock.Anything, "hello").Return(models.Enrichment{}, errors.New("503")).Once()

	err := (&WriteCmd{Text: "hello"}).Run(ctx)
	require.Error(t, err)
	assert.Equal(t, constants.Msg(constants.LocaleZH, constants.MsgComposeFailed), err.Error())
	assert.Equal(t, 0, ctx.Journal.Len())
}

func TestWriteCmdInvalidDay(t *testing.T) {
	ctx, backend, _ := setupTestContext(t, "")
	err := (&WriteCmd{Day: "20-05-2024", Text: "hello"}).Run(ctx)
	require.Error(t, err)
	backend.AssertNotCalled(t, "EnrichText", mock.Anything, mock.Anything)
}

func TestEditCmdReplacesText(t *testing.T) {
	ctx, backend, _ := setupTestContext(t, "")
	existing := seed(t, ctx, "2024-05-18", "draft")
	expectCompose(backend, "final", "clean page")

	require.NoError(t, (&EditCmd{Day: "2024-05-18", Text: "final"}).Run(ctx))

	e, ok := ctx.Journal.FindByDay("2024-05-18")
	require.True(t, ok)
	assert.Equal(t, existing.ID, e.ID)
	assert.Equal(t, "final", e.RawText)
}

func TestEditCmdFailureUsesEditMessage(t *testing.T) {
	ctx, backend, _ := setupTestContext(t, "")
	seed(t, ctx, "2024-05-18", "draft")
	backend.On("EnrichText", mock.Anything, "final").Return(models.Enrichment{}, errors.New("timeout")).Once()

	err := (&EditCmd{Day: "2024-05-18", Text: "final"}).Run(ctx)
	require.Error(t, err)
	assert.Equal(t, constants.Msg(constants.LocaleZH, constants.MsgEditFailed), err.Error())

	e, _ := ctx.Journal.FindByDay("2024-05-18")
	assert.Equal(t, "draft", e.RawText)
}

func TestEditCmdUnchangedTextSkipsBackend(t *testing.T) {
	ctx, backend, out := setupTestContext(t, "")
	ctx.NewBackend = func(context.Context) (ai.Backend, error) {
		return nil, errors.New("no backend needed")
	}
	existing := seed(t, ctx, "2024-05-18", "draft")

	require.NoError(t, (&EditCmd{Day: "2024-05-18", Text: "draft"}).Run(ctx))

	e, _ := ctx.Journal.FindByDay("2024-05-18")
	assert.Equal(t, existing.ID, e.ID)
	assert.Equal(t, "微光", e.Caption)
	assert.Contains(t, out.String(), constants.Msg(constants.LocaleZH, constants.MsgUnchanged))
	backend.AssertNotCalled(t, "EnrichText", mock.Anything, mock.Anything)
}

func TestEditCmdMissingDay(t *testing.T) {
	ctx, _, _ := setupTestContext(t, "")
	assert.Error(t, (&EditCmd{Day: "2024-05-18", Text: "x"}).Run(ctx))
}

func TestDeleteCmd(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		yes     bool
		removed bool
	}{
		{"confirmed", "y\n", false, true},
		{"confirmed with yes", "YES\n", false, true},
		{"declined", "n\n", false, false},
		{"no answer", "", false, false},
		{"skip prompt", "", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, _, out := setupTestContext(t, tt.input)
			seed(t, ctx, "2024-05-17", "gone soon")

			require.NoError(t, (&DeleteCmd{Day: "2024-05-17", Yes: tt.yes}).Run(ctx))

			_, ok := ctx.Journal.FindByDay("2024-05-17")
			assert.Equal(t, !tt.removed, ok)
			if !tt.yes {
				assert.Contains(t, out.String(), constants.Msg(constants.LocaleZH, constants.MsgConfirmDelete))
			}
		})
	}
}

func TestDeleteCmdMissingDay(t *testing.T) {
	ctx, _, _ := setupTestContext(t, "y\n")
	assert.Error(t, (&DeleteCmd{Day: "2024-05-17"}).Run(ctx))
}

func TestShowCmd(t *testing.T) {
	ctx, _, out := setupTestContext(t, "")
	seed(t, ctx, "2024-05-20", "today's words")

	require.NoError(t, (&ShowCmd{}).Run(ctx))
	assert.Contains(t, out.String(), "today's words")

	out.Reset()
	require.NoError(t, (&ShowCmd{Day: "2024-05-20", JSON: true}).Run(ctx))
	assert.Contains(t, out.String(), `"poeticQuote": "微光"`)
}

func TestExportImportRoundTrip(t *testing.T) {
	src, _, _ := setupTestContext(t, "")
	seed(t, src, "2024-05-01", "one")
	seed(t, src, "2024-05-02", "two")

	path := filepath.Join(t.TempDir(), "export.json")
	require.NoError(t, (&ExportCmd{Output: path}).Run(src))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "["))

	dst, _, out := setupTestContext(t, "")
	seed(t, dst, "2024-05-02", "old two")
	require.NoError(t, (&ImportCmd{File: path}).Run(dst))

	assert.Equal(t, 2, dst.Journal.Len())
	e, ok := dst.Journal.FindByDay("2024-05-02")
	require.True(t, ok)
	assert.Equal(t, "two", e.RawText)
	assert.Contains(t, out.String(), "Imported 2 entries")
}

func TestImportCmdRejectsGarbage(t *testing.T) {
	ctx, _, _ := setupTestContext(t, "")
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	assert.Error(t, (&ImportCmd{File: path}).Run(ctx))
	assert.Equal(t, 0, ctx.Journal.Len())
}
