package problem

import (
	"time"

	"github.com/trezcool/zoezi/core"
)

// Difficulties
const (
	DifficultyEasy   = "Easy"
	DifficultyMedium = "Medium"
	DifficultyHard   = "Hard"
)

var Difficulties = []string{DifficultyEasy, DifficultyMedium, DifficultyHard}

// Problem is a coding quest in the catalog.
type Problem struct {
	ID          int    `json:"id"`
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Difficulty  string `json:"difficulty"`
	XPReward    int    `json:"xpReward"`
	StarterCode string `json:"starterCode"`
	// SortOrder drives the "next problem" suggestion within a category.
	SortOrder int  `json:"sortOrder"`
	IsDaily   bool `json:"isDaily"`
	// BonusXP is only awarded for the daily problem.
	BonusXP int `json:"bonusXp,omitempty"`
	// IsSolved is only populated for authenticated callers.
	IsSolved  *bool     `json:"isSolved,omitempty"`
	CreatedAt time.Time `json:"createdAt"` // UTC
	UpdatedAt time.Time `json:"updatedAt"` // UTC
}

// NewProblem contains information needed to add a Problem to the catalog.
type NewProblem struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Category    string `json:"category" validate:"required"`
	Difficulty  string `json:"difficulty" validate:"required,oneof=Easy Medium Hard"`
	XPReward    int    `json:"xpReward" validate:"required,min=1"`
	StarterCode string `json:"starterCode"`
	SortOrder   int    `json:"sortOrder"`
	IsDaily     bool   `json:"isDaily"`
	BonusXP     int    `json:"bonusXp" validate:"min=0"`
}

func (np *NewProblem) Validate() error {
	np.Title = core.CleanString(np.Title)
	np.Category = core.CleanString(np.Category)
	return core.Validate.Struct(np)
}

// NewSubmission is one attempt at solving a Problem.
type NewSubmission struct {
	Code     string `json:"code" validate:"required"`
	Language string `json:"language" validate:"required"`
}

func (ns *NewSubmission) Validate() error {
	ns.Language = core.CleanString(ns.Language, true /* lower */)
	return core.Validate.Struct(ns)
}

// Solution records a graded submission.
type Solution struct {
	ID          string    `json:"id"` // uuid
	UserID      int       `json:"userId"`
	ProblemID   int       `json:"problemId"`
	Code        string    `json:"code"`
	Language    string    `json:"language"`
	Passed      bool      `json:"passed"`
	Output      string    `json:"output"`
	XPEarned    int       `json:"xpEarned"`
	SubmittedAt time.Time `json:"submittedAt"` // UTC
}

// SubmitResult is the outcome of grading a submission.
type SubmitResult struct {
	Success         bool   `json:"success"`
	Output          string `json:"output"`
	Passed          bool   `json:"passed"`
	XPEarned        int    `json:"xpEarned,omitempty"`
	NextProblemSlug string `json:"nextProblemSlug,omitempty"`
}

type QueryFilter struct {
	Category   string `query:"category"`
	Difficulty string `query:"difficulty"`
	Search     string `query:"search"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Category == "" && qf.Difficulty == "" && qf.Search == ""
}

func (qf *QueryFilter) Clean() {
	qf.Category = core.CleanString(qf.Category)
	qf.Difficulty = core.CleanString(qf.Difficulty)
	qf.Search = core.CleanString(qf.Search)
}
