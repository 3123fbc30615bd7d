package models

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Riddle is one ObjectIdentification level: a question with a canonical
// answer and up to three hints.
type Riddle struct {
	Question string   `yaml:"question" json:"question"`
	Answer   string   `yaml:"answer" json:"answer"`
	Hints    []string `yaml:"hints" json:"hints"`
}

// OrderedSet is one StoryTelling or PuzzleSolving level: a list of item
// identifiers in their canonical order. The game presents them shuffled
// and the win condition is restoring this order.
type OrderedSet struct {
	Items []string `yaml:"items" json:"items"`
}

// ContentLibrary holds all level material, keyed by difficulty then
// indexed by level (position 0 is level 1).
type ContentLibrary struct {
	Riddles   map[Difficulty][]Riddle     `yaml:"riddles"`
	Stories   map[Difficulty][]OrderedSet `yaml:"stories"`
	Puzzles   map[Difficulty][]OrderedSet `yaml:"puzzles"`
	EmojiPool []string                    `yaml:"emoji_pool"`
}

// LoadContentLibrary reads and parses the level-content YAML file.
func LoadContentLibrary(path string) (*ContentLibrary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read content file: %w", err)
	}

	var lib ContentLibrary
	if err := yaml.Unmarshal(data, &lib); err != nil {
		return nil, fmt.Errorf("failed to unmarshal content YAML: %w", err)
	}

	return &lib, nil
}
