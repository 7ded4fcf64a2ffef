package domain

import "time"

// ProgressStatus tracks how far a learner got with a material.
type ProgressStatus string

const (
	ProgressNotStarted ProgressStatus = "not-started"
	ProgressInProgress ProgressStatus = "in-progress"
	ProgressCompleted  ProgressStatus = "completed"
)

// ProgressDifficulty is the learner's own difficulty rating.
type ProgressDifficulty string

const (
	DifficultyEasy   ProgressDifficulty = "easy"
	DifficultyMedium ProgressDifficulty = "medium"
	DifficultyHard   ProgressDifficulty = "hard"
)

// Progress is the per-(user, material) study record. One row per pair.
type Progress struct {
	ID            string
	UserID        string
	MaterialID    string
	Status        ProgressStatus
	Difficulty    ProgressDifficulty
	LastVisitedAt time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ValidProgressStatus reports whether s belongs to the closed status set.
func ValidProgressStatus(s ProgressStatus) bool {
	switch s {
	case ProgressNotStarted, ProgressInProgress, ProgressCompleted:
		return true
	}
	return false
}

// ValidProgressDifficulty reports whether d belongs to the closed difficulty set.
func ValidProgressDifficulty(d ProgressDifficulty) bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}
