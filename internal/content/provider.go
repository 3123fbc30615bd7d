package content

import (
	"fmt"
	"math/rand"

	"cognicare-go/internal/models"
)

// LevelContent is the material for one level of one domain. Only the
// fields relevant to the domain are populated.
type LevelContent struct {
	Domain     models.Domain
	Difficulty models.Difficulty
	Level      int

	// Riddle material (ObjectIdentification).
	Riddle *models.Riddle

	// Canonical ordering (StoryTelling, PuzzleSolving, SequenceRecall).
	CorrectOrder []string

	// Card values, each appearing twice (MemoryMatch).
	Cards []string
}

// Provider supplies per-level puzzle material and the canonical answer
// used for win checks. The engine never generates content itself.
type Provider interface {
	LevelContent(domain models.Domain, difficulty models.Difficulty, level int) (*LevelContent, error)
}

// LibraryProvider serves content from a loaded ContentLibrary. Sequence
// and card material is generated deterministically from the library pool
// so the same (difficulty, level) always names the same item set.
type LibraryProvider struct {
	lib *models.ContentLibrary
	rng *rand.Rand
}

func NewLibraryProvider(lib *models.ContentLibrary, rng *rand.Rand) *LibraryProvider {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &LibraryProvider{lib: lib, rng: rng}
}

func (p *LibraryProvider) LevelContent(domain models.Domain, difficulty models.Difficulty, level int) (*LevelContent, error) {
	if level < 1 || level > 10 {
		return nil, fmt.Errorf("level %d out of range: %w", level, ErrContentUnavailable)
	}

	lc := &LevelContent{Domain: domain, Difficulty: difficulty, Level: level}

	switch domain {
	case models.ObjectIdentification:
		riddles := p.lib.Riddles[difficulty]
		if level > len(riddles) {
			return nil, fmt.Errorf("no riddle for %s level %d: %w", difficulty, level, ErrContentUnavailable)
		}
		r := riddles[level-1]
		if r.Question == "" || r.Answer == "" {
			return nil, fmt.Errorf("malformed riddle for %s level %d: %w", difficulty, level, ErrContentUnavailable)
		}
		lc.Riddle = &r

	case models.StoryTelling:
		sets := p.lib.Stories[difficulty]
		if level > len(sets) || len(sets[level-1].Items) == 0 {
			return nil, fmt.Errorf("no story set for %s level %d: %w", difficulty, level, ErrContentUnavailable)
		}
		lc.CorrectOrder = sets[level-1].Items

	case models.PuzzleSolving:
		sets := p.lib.Puzzles[difficulty]
		if level > len(sets) || len(sets[level-1].Items) == 0 {
			return nil, fmt.Errorf("no puzzle set for %s level %d: %w", difficulty, level, ErrContentUnavailable)
		}
		lc.CorrectOrder = sets[level-1].Items

	case models.MemoryMatch:
		count := CardCountForLevel(level, difficulty)
		cards, err := p.emojiSet(count, level)
		if err != nil {
			return nil, err
		}
		lc.Cards = cards

	case models.SequenceRecall:
		count := ShapeCountForLevel(level, difficulty)
		lc.CorrectOrder = sequenceShapes(count, level)

	default:
		return nil, fmt.Errorf("domain %q: %w", domain, ErrContentUnavailable)
	}

	return lc, nil
}

// CardCountForLevel returns the MemoryMatch card count for a level. The
// counts step up mid-run so later levels are harder within a difficulty.
func CardCountForLevel(level int, difficulty models.Difficulty) int {
	switch difficulty {
	case models.Mild:
		if level <= 5 {
			return 4
		}
		return 6
	case models.Moderate:
		if level <= 5 {
			return 6
		}
		return 8
	case models.Severe:
		if level <= 3 {
			return 8
		}
		if level <= 6 {
			return 10
		}
		return 12
	}
	return 4
}

// ShapeCountForLevel returns the SequenceRecall sequence length.
func ShapeCountForLevel(level int, difficulty models.Difficulty) int {
	switch difficulty {
	case models.Mild:
		if level <= 5 {
			return 3
		}
		return 4
	case models.Moderate:
		if level <= 5 {
			return 4
		}
		return 5
	case models.Severe:
		if level <= 3 {
			return 5
		}
		if level <= 6 {
			return 6
		}
		return 7
	}
	return 3
}

var shapePalette = []string{"circle", "square", "triangle", "star", "hexagon", "diamond", "pentagon"}

// sequenceShapes picks a deterministic run of shapes for a level so that
// retries of the same level replay the same sequence length.
func sequenceShapes(count, level int) []string {
	out := make([]string, count)
	for i := 0; i < count; i++ {
		out[i] = shapePalette[(level+i)%len(shapePalette)]
	}
	return out
}

// emojiSet selects count cards (count/2 pairs) from the pool, offset by
// level so consecutive levels use different emoji.
func (p *LibraryProvider) emojiSet(count, level int) ([]string, error) {
	pool := p.lib.EmojiPool
	if len(pool) < count/2 {
		return nil, fmt.Errorf("emoji pool too small for %d cards: %w", count, ErrContentUnavailable)
	}
	offset := (level * count) % (len(pool) - count/2 + 1)
	selected := pool[offset : offset+count/2]
	cards := make([]string, 0, count)
	cards = append(cards, selected...)
	cards = append(cards, selected...)
	p.rng.Shuffle(len(cards), func(i, j int) { cards[i], cards[j] = cards[j], cards[i] })
	return cards, nil
}
