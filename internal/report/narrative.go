package report

import (
	"fmt"

	"cognicare-go/internal/models"
)

// SeverityDescription is the clinical-style summary line shown with the
// overall assessment.
func SeverityDescription(s models.Severity) string {
	switch s {
	case models.SeverityNormal:
		return "Cognitive performance is within normal expected ranges. No significant impairments detected."
	case models.SeverityMild:
		return "Mild cognitive difficulties detected. May indicate early cognitive changes or normal variation. Clinical correlation recommended."
	case models.SeverityModerate:
		return "Moderate cognitive impairment detected. Suggests possible cognitive decline. Further clinical evaluation is advised."
	case models.SeveritySevere:
		return "Severe cognitive impairment detected. Indicates significant cognitive dysfunction. Urgent clinical evaluation recommended."
	}
	return "Assessment data is incomplete. Please complete more levels for a comprehensive evaluation."
}

// DomainNarrative renders the per-domain sentence for a 0-100 score.
func DomainNarrative(domain models.Domain, score int) string {
	if score == 0 {
		return "No data available for this domain. Please complete levels to get an assessment."
	}
	severity := models.ClassifySeverity(float64(score))
	return fmt.Sprintf("%s: %s impairment (%d/100). %s",
		domainFunction(domain), severity, score, domainDetail(domain, severity))
}

func domainFunction(domain models.Domain) string {
	switch domain {
	case models.StoryTelling:
		return "Story Sequencing"
	case models.PuzzleSolving:
		return "Visual-Spatial Reasoning"
	case models.MemoryMatch:
		return "Memory Recall"
	case models.ObjectIdentification:
		return "Object Recognition"
	case models.SequenceRecall:
		return "Working Memory"
	}
	return domain.Label()
}

func domainDetail(domain models.Domain, severity models.Severity) string {
	details := map[models.Domain]map[models.Severity]string{
		models.StoryTelling: {
			models.SeverityNormal:   "Narrative skills and logical sequencing are intact.",
			models.SeverityMild:     "Mild difficulties with story organization and temporal sequencing.",
			models.SeverityModerate: "Moderate difficulties with narrative structure and logical flow.",
			models.SeveritySevere:   "Severe impairment in organizing and recalling story elements.",
		},
		models.PuzzleSolving: {
			models.SeverityNormal:   "Spatial reasoning and problem-solving skills are intact.",
			models.SeverityMild:     "Mild difficulties with pattern recognition and spatial manipulation.",
			models.SeverityModerate: "Moderate difficulties with visual-spatial tasks and problem-solving.",
			models.SeveritySevere:   "Severe impairment in visual-spatial reasoning and puzzle-solving.",
		},
		models.MemoryMatch: {
			models.SeverityNormal:   "Short-term memory and recall abilities are intact.",
			models.SeverityMild:     "Mild difficulties with memory retention and retrieval.",
			models.SeverityModerate: "Moderate memory impairment affecting recall accuracy.",
			models.SeveritySevere:   "Severe memory impairment with significant retrieval difficulties.",
		},
		models.ObjectIdentification: {
			models.SeverityNormal:   "Semantic knowledge and object identification are intact.",
			models.SeverityMild:     "Mild difficulties with semantic access and object categorization.",
			models.SeverityModerate: "Moderate impairment in object recognition and naming.",
			models.SeveritySevere:   "Severe semantic impairment affecting object identification.",
		},
		models.SequenceRecall: {
			models.SeverityNormal:   "Working memory and sequencing abilities are intact.",
			models.SeverityMild:     "Mild difficulties with maintaining and manipulating information.",
			models.SeverityModerate: "Moderate working memory impairment affecting sequencing.",
			models.SeveritySevere:   "Severe working memory deficits impacting sequential tasks.",
		},
	}
	return details[domain][severity]
}

// Recommendations returns the guidance list for a severity band, the
// base items first.
func Recommendations(s models.Severity) []string {
	base := []string{
		"Regular cognitive exercises targeting multiple domains",
		"Maintain a healthy lifestyle with proper nutrition and exercise",
		"Engage in social activities and mental stimulation",
	}
	var specific []string
	switch s {
	case models.SeverityNormal:
		specific = []string{
			"Continue cognitive activities to maintain skills",
			"Challenge yourself with new learning opportunities",
			"Monitor cognitive health annually",
		}
	case models.SeverityMild:
		specific = []string{
			"Begin targeted cognitive training program",
			"Consider baseline neuropsychological evaluation",
			"Monitor for changes over 3-6 months",
		}
	case models.SeverityModerate:
		specific = []string{
			"Seek comprehensive neuropsychological assessment",
			"Consider cognitive rehabilitation therapy",
			"Medical evaluation to rule out reversible causes",
		}
	case models.SeveritySevere:
		specific = []string{
			"Urgent medical and neurological evaluation",
			"Comprehensive dementia workup recommended",
			"Consider caregiver support and safety planning",
		}
	}
	return append(base, specific...)
}
