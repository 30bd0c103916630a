package entities

import "strings"

// Difficulty is a skill tier that gates which question pool is visible.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "Beginner"
	DifficultyIntermediate Difficulty = "Intermediate"
	DifficultyAdvanced     Difficulty = "Advanced"
)

// Difficulties returns all difficulty tiers ordered from easiest to hardest.
func Difficulties() []Difficulty {
	return []Difficulty{DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced}
}

// ParseDifficulty matches s against the known tiers ignoring case and surrounding spaces.
func ParseDifficulty(s string) (Difficulty, bool) {
	s = strings.TrimSpace(s)
	for _, d := range Difficulties() {
		if strings.EqualFold(string(d), s) {
			return d, true
		}
	}
	return "", false
}

func (d Difficulty) String() string {
	return string(d)
}
