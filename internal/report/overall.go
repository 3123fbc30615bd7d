package report

import "cognicare-go/internal/models"

// BuildOverallAssessment folds the per-domain reports into the overall
// assessment. Only domains with a positive point total are included;
// when none qualify it returns nil and the caller shows "no report data
// yet".
//
// Strongest/weakest selection iterates domains in their fixed
// enumeration order with strict comparisons, so a tie keeps the
// first-seen domain. This mirrors the established report behavior and is
// relied on by downstream consumers.
func BuildOverallAssessment(reports map[models.Domain]models.DomainReport) *models.OverallAssessment {
	scores := make(map[models.Domain]int)
	total := 0
	for _, d := range models.AllDomains {
		rep, ok := reports[d]
		if !ok || rep.TotalPoints <= 0 {
			continue
		}
		scores[d] = rep.TotalPoints
		total += rep.TotalPoints
	}
	if len(scores) == 0 {
		return nil
	}

	avg := float64(total) / float64(len(scores))

	// The sentinels mean a perfect 100 can never be selected as weakest;
	// the report has always worked this way, so it stays.
	var strongest, weakest models.Domain
	strongestScore, weakestScore := 0, 100
	for _, d := range models.AllDomains {
		score, ok := scores[d]
		if !ok {
			continue
		}
		if score > strongestScore {
			strongestScore = score
			strongest = d
		}
		if score < weakestScore {
			weakestScore = score
			weakest = d
		}
	}

	severity := models.ClassifySeverity(avg)

	narratives := make(map[models.Domain]string, len(scores))
	for d, score := range scores {
		narratives[d] = DomainNarrative(d, score)
	}

	return &models.OverallAssessment{
		AverageScore:         avg,
		Severity:             severity,
		DomainScores:         scores,
		StrongestDomain:      strongest,
		WeakestDomain:        weakest,
		CompletedDomainCount: len(scores),
		Description:          SeverityDescription(severity),
		DomainNarratives:     narratives,
		Recommendations:      Recommendations(severity),
	}
}
