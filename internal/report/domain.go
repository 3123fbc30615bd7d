package report

import "cognicare-go/internal/models"

// BuildDomainReport folds a canonical level list into the per-domain
// projection. The input already holds at most one record per level (the
// normalizer selects the best attempt where multiple are stored), so the
// total is never a sum across attempts.
func BuildDomainReport(domain models.Domain, records []models.LevelRecord) models.DomainReport {
	rep := models.DomainReport{Domain: domain}

	var totalTime, totalSecondary int
	for _, rec := range records {
		rep.TotalPoints += rec.Points
		rep.LevelsCompleted++
		totalTime += rec.TimeTaken
		totalSecondary += rec.SecondaryMetric
	}

	if rep.LevelsCompleted > 0 {
		rep.AverageTime = float64(totalTime) / float64(rep.LevelsCompleted)
		rep.AverageSecondaryMetric = float64(totalSecondary) / float64(rep.LevelsCompleted)
	}

	// Domain totals are on a 0-100 scale (10 levels x 10 points), so the
	// severity thresholds apply directly.
	rep.Severity = models.ClassifySeverity(float64(rep.TotalPoints))
	return rep
}
