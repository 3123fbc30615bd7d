package models

import "fmt"

// Domain identifies one of the five cognitive mini-games. The order of
// AllDomains is fixed and used for deterministic tie-breaking when the
// overall assessment picks strongest/weakest domains.
type Domain string

const (
	StoryTelling         Domain = "storytelling"
	PuzzleSolving        Domain = "puzzle_solving"
	MemoryMatch          Domain = "memory_match"
	ObjectIdentification Domain = "object_identification"
	SequenceRecall       Domain = "sequence_recall"
)

var AllDomains = []Domain{
	StoryTelling,
	PuzzleSolving,
	MemoryMatch,
	ObjectIdentification,
	SequenceRecall,
}

// Collection returns the per-domain document collection name. The names
// are uneven because each game historically wrote to its own collection.
func (d Domain) Collection() string {
	switch d {
	case StoryTelling:
		return "userStorytellingData"
	case PuzzleSolving:
		return "puzzleReports"
	case MemoryMatch:
		return "memorymatchreport"
	case ObjectIdentification:
		return "objectidentificationreport"
	case SequenceRecall:
		return "sequenceRecallReports"
	}
	return ""
}

// Label is the human-readable domain name used in reports.
func (d Domain) Label() string {
	switch d {
	case StoryTelling:
		return "Storytelling"
	case PuzzleSolving:
		return "Puzzle Solving"
	case MemoryMatch:
		return "Memory"
	case ObjectIdentification:
		return "Object Identification"
	case SequenceRecall:
		return "Sequence Recall"
	}
	return string(d)
}

// SecondaryMetricName names the per-domain effort counter stored
// alongside time and points.
func (d Domain) SecondaryMetricName() string {
	switch d {
	case StoryTelling, PuzzleSolving:
		return "moves"
	case MemoryMatch:
		return "flips"
	case ObjectIdentification:
		return "hintsUsed"
	case SequenceRecall:
		return "deselects"
	}
	return "moves"
}

// ParseDomain maps a route/query value onto a Domain.
func ParseDomain(s string) (Domain, error) {
	for _, d := range AllDomains {
		if string(d) == s {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown domain %q", s)
}

// Difficulty is chosen once at session start and is immutable for the
// session's lifetime. Changing difficulty starts a new session.
type Difficulty string

const (
	Mild     Difficulty = "mild"
	Moderate Difficulty = "moderate"
	Severe   Difficulty = "severe"
)

func ParseDifficulty(s string) (Difficulty, error) {
	switch Difficulty(s) {
	case Mild, Moderate, Severe:
		return Difficulty(s), nil
	}
	return "", fmt.Errorf("unknown difficulty %q", s)
}
