package engine

import (
	"strings"

	"cognicare-go/internal/content"
	"cognicare-go/internal/models"
)

// Submission carries the player's answer for a win check. Ordering games
// fill Order with the item identifiers in their current arrangement;
// MemoryMatch fills Order with the matched card values; the riddle game
// fills Answer.
type Submission struct {
	Order  []string `json:"order,omitempty"`
	Answer string   `json:"answer,omitempty"`
}

// WinCheck decides whether a submission satisfies the level's win
// condition given its content.
type WinCheck func(lc *content.LevelContent, sub Submission) bool

// Rules parametrizes a LevelSession for one domain: level count, timer
// budget, the win check, how a failed submission is treated, and which
// secondary metric the domain counts.
type Rules struct {
	Domain         models.Domain
	MaxLevel       int
	CheckWin       WinCheck
	MismatchOnFail bool // answer games resolve a wrong submission; board games keep playing
	HintBudget     int  // per-level hint allowance, 0 when the domain has no hints
	timerCap       func(models.Difficulty) int
}

// TimerCap returns the per-level time budget in seconds. All domains use
// a flat 60s cap except ObjectIdentification, whose budget shrinks on
// harder difficulties.
func (r Rules) TimerCap(d models.Difficulty) int {
	if r.timerCap != nil {
		return r.timerCap(d)
	}
	return 60
}

// RulesFor returns the rules for a domain.
func RulesFor(domain models.Domain) Rules {
	switch domain {
	case ObjectIdentificationRules.Domain:
		return ObjectIdentificationRules
	case SequenceRecallRules.Domain:
		return SequenceRecallRules
	case MemoryMatchRules.Domain:
		return MemoryMatchRules
	case StoryTellingRules.Domain:
		return StoryTellingRules
	default:
		return PuzzleSolvingRules
	}
}

var PuzzleSolvingRules = Rules{
	Domain:   models.PuzzleSolving,
	MaxLevel: 10,
	CheckWin: orderedWin,
}

var StoryTellingRules = Rules{
	Domain:   models.StoryTelling,
	MaxLevel: 10,
	CheckWin: orderedWin,
}

var SequenceRecallRules = Rules{
	Domain:         models.SequenceRecall,
	MaxLevel:       10,
	CheckWin:       orderedWin,
	MismatchOnFail: true,
}

var MemoryMatchRules = Rules{
	Domain:   models.MemoryMatch,
	MaxLevel: 10,
	CheckWin: allPairsMatched,
}

var ObjectIdentificationRules = Rules{
	Domain:         models.ObjectIdentification,
	MaxLevel:       10,
	CheckWin:       riddleAnswered,
	MismatchOnFail: true,
	HintBudget:     3,
	timerCap: func(d models.Difficulty) int {
		switch d {
		case models.Moderate:
			return 50
		case models.Severe:
			return 40
		default:
			return 60
		}
	},
}

func orderedWin(lc *content.LevelContent, sub Submission) bool {
	if len(sub.Order) != len(lc.CorrectOrder) {
		return false
	}
	for i := range sub.Order {
		if sub.Order[i] != lc.CorrectOrder[i] {
			return false
		}
	}
	return true
}

// allPairsMatched checks that every card value in the level has been
// matched. The submission lists the matched card values, one per pair.
func allPairsMatched(lc *content.LevelContent, sub Submission) bool {
	want := make(map[string]int, len(lc.Cards))
	for _, c := range lc.Cards {
		want[c]++
	}
	matched := make(map[string]int, len(sub.Order))
	for _, c := range sub.Order {
		matched[c]++
	}
	for value, n := range want {
		// Each value appears twice in the deck and once per matched pair.
		if matched[value] != n/2 {
			return false
		}
	}
	return len(sub.Order) > 0
}

func riddleAnswered(lc *content.LevelContent, sub Submission) bool {
	if lc.Riddle == nil {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(sub.Answer), strings.TrimSpace(lc.Riddle.Answer))
}
