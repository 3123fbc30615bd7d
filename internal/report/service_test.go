package report

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"cognicare-go/internal/models"
)

// fakeSource serves canned documents keyed by collection name.
type fakeSource struct {
	docs    map[string]map[string]any
	failing map[string]bool
}

func (f *fakeSource) Get(_ context.Context, collection, _ string) (map[string]any, error) {
	if f.failing[collection] {
		return nil, errors.New("read failed")
	}
	return f.docs[collection], nil
}

func TestServiceAggregatesAllDomains(t *testing.T) {
	src := &fakeSource{docs: map[string]map[string]any{
		models.PuzzleSolving.Collection(): {
			"level1": map[string]any{"points": 10, "completed": true},
			"level2": map[string]any{"points": 9, "completed": true},
		},
		models.MemoryMatch.Collection(): {
			"level_1_attempt_1": map[string]any{"points": 8, "completed": true},
		},
	}}
	svc := NewService(src, zap.NewNop())

	overall, reports := svc.OverallAssessment(context.Background(), "u1")
	require.NotNil(t, overall)
	assert.Len(t, reports, 2)
	assert.Equal(t, 19, reports[models.PuzzleSolving].TotalPoints)
	assert.Equal(t, 8, reports[models.MemoryMatch].TotalPoints)
	assert.Equal(t, 2, overall.CompletedDomainCount)
	assert.Equal(t, models.PuzzleSolving, overall.StrongestDomain)
	assert.Equal(t, models.MemoryMatch, overall.WeakestDomain)
}

func TestServiceSkipsUnreadableDomains(t *testing.T) {
	src := &fakeSource{
		docs: map[string]map[string]any{
			models.StoryTelling.Collection(): {
				"levels": map[string]any{"level1": map[string]any{"points": 6, "completed": true}},
			},
		},
		failing: map[string]bool{models.PuzzleSolving.Collection(): true},
	}
	svc := NewService(src, zap.NewNop())

	overall, reports := svc.OverallAssessment(context.Background(), "u1")
	require.NotNil(t, overall, "a failed domain read never fails the report")
	assert.Len(t, reports, 1)
	assert.Equal(t, 6, reports[models.StoryTelling].TotalPoints)
}

func TestServiceNoData(t *testing.T) {
	svc := NewService(&fakeSource{}, zap.NewNop())
	overall, reports := svc.OverallAssessment(context.Background(), "u1")
	assert.Nil(t, overall)
	assert.Empty(t, reports)
}
