package models

import "time"

// LevelRecord is the persisted outcome of one level attempt. Records are
// written once and never mutated by normal play; a later attempt for the
// same level produces a new write that replaces the previous field value
// in the per-domain document (last write wins).
type LevelRecord struct {
	Domain          Domain     `json:"domain" bson:"domain"`
	Level           int        `json:"level" bson:"level"`
	Difficulty      Difficulty `json:"difficulty" bson:"difficulty"`
	Attempts        int        `json:"attempts" bson:"attempts"`
	TimeTaken       int        `json:"timeTaken" bson:"timeTaken"`
	SecondaryMetric int        `json:"secondaryMetric" bson:"secondaryMetric"`
	Points          int        `json:"points" bson:"points"`
	Completed       bool       `json:"completed" bson:"completed"`
	Timestamp       time.Time  `json:"timestamp" bson:"timestamp"`
}

// DomainReport is a read-time projection over the canonical level list
// for one domain. It is recomputed on every report view and holds no
// independent identity.
type DomainReport struct {
	Domain                 Domain   `json:"domain"`
	TotalPoints            int      `json:"totalPoints"`
	LevelsCompleted        int      `json:"levelsCompleted"`
	AverageTime            float64  `json:"averageTime"`
	AverageSecondaryMetric float64  `json:"averageSecondaryMetric"`
	Severity               Severity `json:"severity"`
}

// OverallAssessment aggregates all domains that have scored records.
type OverallAssessment struct {
	AverageScore         float64            `json:"averageScore"`
	Severity             Severity           `json:"severity"`
	DomainScores         map[Domain]int     `json:"domainScores"`
	StrongestDomain      Domain             `json:"strongestDomain"`
	WeakestDomain        Domain             `json:"weakestDomain"`
	CompletedDomainCount int                `json:"completedDomainCount"`
	Description          string             `json:"description"`
	DomainNarratives     map[Domain]string  `json:"domainNarratives"`
	Recommendations      []string           `json:"recommendations"`
}
