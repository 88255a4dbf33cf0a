package tutorial

import (
	"time"

	"github.com/trezcool/zoezi/core"
)

// Tutorial is an ordered track of lessons.
type Tutorial struct {
	ID          int       `json:"id"`
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	LessonCount int       `json:"lessonCount"`
	CreatedAt   time.Time `json:"createdAt"` // UTC
	UpdatedAt   time.Time `json:"updatedAt"` // UTC

	// Lessons is only populated on detail reads.
	Lessons []Lesson `json:"lessons,omitempty"`
}

type Lesson struct {
	ID         int    `json:"id"`
	TutorialID int    `json:"tutorialId"`
	Title      string `json:"title"`
	Content    string `json:"content"`
	XPReward   int    `json:"xpReward"`
	SortOrder  int    `json:"sortOrder"`
}

// NewTutorial contains information needed to publish a Tutorial.
type NewTutorial struct {
	Title       string      `json:"title" validate:"required"`
	Description string      `json:"description" validate:"required"`
	Category    string      `json:"category" validate:"required"`
	Lessons     []NewLesson `json:"lessons" validate:"required,min=1,dive"`
}

type NewLesson struct {
	Title    string `json:"title" validate:"required"`
	Content  string `json:"content" validate:"required"`
	XPReward int    `json:"xpReward" validate:"required,min=1"`
}

func (nt *NewTutorial) Validate() error {
	nt.Title = core.CleanString(nt.Title)
	nt.Category = core.CleanString(nt.Category)
	return core.Validate.Struct(nt)
}

// CompletionResult is the outcome of completing a lesson.
type CompletionResult struct {
	Success  bool `json:"success"`
	XPEarned int  `json:"xpEarned"`
}
