package hackathon

import "time"

// Statuses, derived from the event window.
const (
	StatusUpcoming = "upcoming"
	StatusRunning  = "running"
	StatusEnded    = "ended"
)

// Hackathon is a time-boxed community event.
type Hackathon struct {
	ID       int       `json:"id"`
	Slug     string    `json:"slug"`
	Name     string    `json:"name"`
	Theme    string    `json:"theme"`
	Prize    string    `json:"prize"`
	StartsAt time.Time `json:"startsAt"` // UTC
	EndsAt   time.Time `json:"endsAt"`   // UTC
	Status   string    `json:"status"`
}

// StatusAt derives the lifecycle status at the given instant.
func (h Hackathon) StatusAt(now time.Time) string {
	switch {
	case now.Before(h.StartsAt):
		return StatusUpcoming
	case now.Before(h.EndsAt):
		return StatusRunning
	default:
		return StatusEnded
	}
}
