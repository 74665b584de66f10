package entity

import (
	"fmt"

	"github.com/rocketscienceinc/flowlink-backend/internal/apperror"
)

const (
	MinLevel     = 1
	MaxLevel     = 5
	DefaultLevel = 3

	LangZH = "zh"
	LangEN = "en"
)

var (
	boardSizes = [MaxLevel]int{5, 6, 7, 8, 9}

	difficultyLabels = map[string][MaxLevel]string{
		LangZH: {"超易", "较易", "中等", "较难", "超难"},
		LangEN: {"very easy", "easy", "medium", "hard", "very hard"},
	}
)

// Difficulty describes one difficulty level.
type Difficulty struct {
	Level     int    `json:"level"`
	BoardSize int    `json:"board_size"`
	PairCount int    `json:"pair_count"`
	Label     string `json:"label"`
}

// BoardSizeForLevel maps a difficulty level in 1..5 onto a board size.
func BoardSizeForLevel(level int) (int, error) {
	if level < MinLevel || level > MaxLevel {
		return 0, fmt.Errorf("%w: %d", apperror.ErrInvalidLevel, level)
	}

	return boardSizes[level-1], nil
}

// PairCountForSize returns how many pairs a board of the given size carries.
// One pair per row keeps the average path length equal to the board size.
func PairCountForSize(size int) int {
	return size
}

// DifficultyLabel returns the localized label of a level, falling back to Chinese.
func DifficultyLabel(level int, lang string) string {
	labels, ok := difficultyLabels[lang]
	if !ok {
		labels = difficultyLabels[LangZH]
	}

	if level < MinLevel || level > MaxLevel {
		return ""
	}

	return labels[level-1]
}

// Difficulties lists every level with its geometry and localized label.
func Difficulties(lang string) []Difficulty {
	difficulties := make([]Difficulty, 0, MaxLevel)
	for level := MinLevel; level <= MaxLevel; level++ {
		size := boardSizes[level-1]
		difficulties = append(difficulties, Difficulty{
			Level:     level,
			BoardSize: size,
			PairCount: PairCountForSize(size),
			Label:     DifficultyLabel(level, lang),
		})
	}

	return difficulties
}
