package badge

import "time"

// Criterion kinds
const (
	CriterionSolvedCount = "solved_count"
	CriterionStreak      = "streak"
	CriterionXP          = "xp"
)

// Badge is an achievement in the catalog. A badge is earned when the user's
// figure for the criterion kind reaches the threshold.
type Badge struct {
	ID          int    `json:"id"`
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Criterion   string `json:"criterion"`
	Threshold   int    `json:"threshold"`
}

// UserBadge is an earned badge.
type UserBadge struct {
	Badge
	EarnedAt time.Time `json:"earnedAt"` // UTC
}
