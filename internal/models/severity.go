package models

// Severity is the four-band clinical-style classification derived from a
// 0-100 point total. Both per-domain and overall severities use the same
// thresholds, inclusive at the lower edge.
type Severity string

const (
	SeverityNormal   Severity = "Normal"
	SeverityMild     Severity = "Mild"
	SeverityModerate Severity = "Moderate"
	SeveritySevere   Severity = "Severe"
)

const (
	normalThreshold   = 80
	mildThreshold     = 60
	moderateThreshold = 40
)

// ClassifySeverity maps a 0-100 score onto a severity band. Domains award
// at most 10 points per level across 10 levels, so domain totals are
// already on the 0-100 scale.
func ClassifySeverity(score float64) Severity {
	switch {
	case score >= normalThreshold:
		return SeverityNormal
	case score >= mildThreshold:
		return SeverityMild
	case score >= moderateThreshold:
		return SeverityModerate
	default:
		return SeveritySevere
	}
}
