package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPointsBuckets(t *testing.T) {
	cases := []struct {
		name    string
		elapsed int
		want    int
	}{
		{"instant", 1, 10},
		{"edge of top bucket", 10, 10},
		{"just past top bucket", 11, 9},
		{"fifteen seconds", 15, 9},
		{"twenty seconds", 20, 8},
		{"thirty seconds", 30, 6},
		{"fifty five seconds", 55, 1},
		{"past last bucket", 56, 0},
		{"full minute", 60, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Points(tc.elapsed, 1))
		})
	}
}

func TestPointsRetriesScoreZero(t *testing.T) {
	for attempt := 2; attempt <= 5; attempt++ {
		assert.Zero(t, Points(1, attempt), "attempt %d", attempt)
		assert.Zero(t, Points(30, attempt), "attempt %d", attempt)
	}
}

func TestPointsNonIncreasingOverTime(t *testing.T) {
	prev := Points(1, 1)
	for elapsed := 2; elapsed <= 60; elapsed++ {
		p := Points(elapsed, 1)
		assert.LessOrEqual(t, p, prev, "points rose at %ds", elapsed)
		prev = p
	}
}

func TestBanding(t *testing.T) {
	assert.Equal(t, "master", Banding(100))
	assert.Equal(t, "master", Banding(90))
	assert.Equal(t, "great", Banding(89))
	assert.Equal(t, "great", Banding(70))
	assert.Equal(t, "good", Banding(69))
	assert.Equal(t, "good", Banding(50))
	assert.Equal(t, "keep practicing", Banding(49))
	assert.Equal(t, "keep practicing", Banding(0))
}
