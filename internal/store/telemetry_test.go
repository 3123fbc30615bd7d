package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"cognicare-go/internal/models"
	"cognicare-go/internal/report"
)

func testClock() time.Time {
	return time.Date(2025, 11, 3, 10, 0, 0, 0, time.UTC)
}

func newTelemetry() (*TelemetryStore, *MemoryStore) {
	mem := NewMemoryStore()
	return NewTelemetryStore(mem, zap.NewNop()).WithClock(testClock), mem
}

func record(domain models.Domain, level, attempt, points int, completed bool) *models.LevelRecord {
	return &models.LevelRecord{
		Domain:          domain,
		Level:           level,
		Difficulty:      models.Mild,
		Attempts:        attempt,
		TimeTaken:       20,
		SecondaryMetric: 4,
		Points:          points,
		Completed:       completed,
		Timestamp:       testClock(),
	}
}

func TestMergeRequiresUser(t *testing.T) {
	ts, _ := newTelemetry()
	err := ts.Merge(context.Background(), "", record(models.PuzzleSolving, 1, 1, 10, true))
	assert.Error(t, err)
}

func TestMergePuzzleSolvingRoundTrip(t *testing.T) {
	ts, mem := newTelemetry()
	ctx := context.Background()

	require.NoError(t, ts.Merge(ctx, "u1", record(models.PuzzleSolving, 1, 1, 10, true)))
	require.NoError(t, ts.Merge(ctx, "u1", record(models.PuzzleSolving, 2, 1, 8, true)))

	doc, err := mem.Get(ctx, models.PuzzleSolving.Collection(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 18, doc["totalPoints"])
	assert.Equal(t, 2, doc["completedLevels"])
	assert.Equal(t, "mild", doc["stage"])

	records := report.Normalize(models.PuzzleSolving, doc)
	require.Len(t, records, 2)
	assert.Equal(t, 10, records[0].Points)
	assert.Equal(t, 8, records[1].Points)
	assert.Equal(t, testClock(), records[0].Timestamp)
}

func TestMergePuzzleFinalLevelFlagsReport(t *testing.T) {
	ts, mem := newTelemetry()
	ctx := context.Background()

	require.NoError(t, ts.Merge(ctx, "u1", record(models.PuzzleSolving, 10, 1, 10, true)))

	doc, err := mem.Get(ctx, models.PuzzleSolving.Collection(), "u1")
	require.NoError(t, err)
	assert.Equal(t, true, doc["finalReport"])
	assert.NotEmpty(t, doc["completedAt"])
}

func TestMergeWritesCachedReport(t *testing.T) {
	ts, mem := newTelemetry()
	ctx := context.Background()

	require.NoError(t, ts.Merge(ctx, "u1", record(models.SequenceRecall, 1, 1, 9, true)))

	doc, err := mem.Get(ctx, models.SequenceRecall.Collection(), "u1")
	require.NoError(t, err)
	cached, ok := doc["report"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 9, cached["score"])
	assert.Equal(t, "Severe", cached["severity"])
	assert.Contains(t, cached, "averageDeselects")
}

func TestMergeStoryTellingNestedShape(t *testing.T) {
	ts, mem := newTelemetry()
	ctx := context.Background()

	require.NoError(t, ts.Merge(ctx, "u1", record(models.StoryTelling, 1, 2, 0, true)))

	doc, err := mem.Get(ctx, models.StoryTelling.Collection(), "u1")
	require.NoError(t, err)
	nested := doc["levels"].(map[string]any)
	level1 := nested["level1"].(map[string]any)
	assert.Equal(t, 0, level1["points"])
	assert.Equal(t, 4, level1["movementCount"])
	assert.Equal(t, 2, level1["attemptNumber"])

	records := report.Normalize(models.StoryTelling, doc)
	require.Len(t, records, 1)
	assert.Equal(t, 2, records[0].Attempts)
}

func TestMergeMemoryMatchKeepsEveryAttempt(t *testing.T) {
	ts, mem := newTelemetry()
	ctx := context.Background()

	require.NoError(t, ts.Merge(ctx, "u1", record(models.MemoryMatch, 1, 1, 0, false)))
	require.NoError(t, ts.Merge(ctx, "u1", record(models.MemoryMatch, 1, 2, 0, true)))
	require.NoError(t, ts.Merge(ctx, "u1", record(models.MemoryMatch, 2, 1, 7, true)))

	doc, err := mem.Get(ctx, models.MemoryMatch.Collection(), "u1")
	require.NoError(t, err)
	assert.Contains(t, doc, "level_1_attempt_1")
	assert.Contains(t, doc, "level_1_attempt_2")
	assert.Contains(t, doc, "level_2_attempt_1")

	// The report layer resolves multiple attempts to one record per level.
	records := report.Normalize(models.MemoryMatch, doc)
	require.Len(t, records, 2)
	assert.Equal(t, 1, records[0].Level)
	assert.Equal(t, 7, records[1].Points)
}

func TestMergeObjectIdentificationAppendsAndTotals(t *testing.T) {
	ts, mem := newTelemetry()
	ctx := context.Background()

	require.NoError(t, ts.Merge(ctx, "u1", record(models.ObjectIdentification, 1, 1, 9, true)))
	require.NoError(t, ts.Merge(ctx, "u1", record(models.ObjectIdentification, 2, 1, 7, true)))

	doc, err := mem.Get(ctx, models.ObjectIdentification.Collection(), "u1")
	require.NoError(t, err)
	arr, ok := doc["levels"].([]any)
	require.True(t, ok)
	require.Len(t, arr, 2)

	first := arr[0].(map[string]any)
	assert.Equal(t, 9, first["pointsEarned"])
	assert.Equal(t, 4, first["hintsUsed"])
	assert.Equal(t, false, first["retryUsed"])

	assert.Equal(t, 16, doc["totalPoints"])
	assert.Equal(t, 2, doc["totalLevelsCompleted"])

	records := report.Normalize(models.ObjectIdentification, doc)
	require.Len(t, records, 2)
	assert.Equal(t, 9, records[0].Points)
}

func TestResetClearsAggregates(t *testing.T) {
	ts, mem := newTelemetry()
	ctx := context.Background()

	require.NoError(t, ts.Merge(ctx, "u1", record(models.PuzzleSolving, 10, 1, 10, true)))
	require.NoError(t, ts.Reset(ctx, "u1", models.PuzzleSolving, models.Severe))

	doc, err := mem.Get(ctx, models.PuzzleSolving.Collection(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 0, doc["totalPoints"])
	assert.Equal(t, 0, doc["completedLevels"])
	assert.Equal(t, false, doc["finalReport"])
	assert.Nil(t, doc["report"])
	assert.Equal(t, "severe", doc["stage"])
}
