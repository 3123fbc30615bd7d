package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifySeverityBoundaries(t *testing.T) {
	cases := []struct {
		score float64
		want  Severity
	}{
		{100, SeverityNormal},
		{80, SeverityNormal},
		{79.9, SeverityMild},
		{60, SeverityMild},
		{59.9, SeverityModerate},
		{40, SeverityModerate},
		{39.9, SeveritySevere},
		{0, SeveritySevere},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ClassifySeverity(tc.score), "score %.1f", tc.score)
	}
}
