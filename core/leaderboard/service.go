package leaderboard

import "github.com/pkg/errors"

// Row is one leaderboard line.
type Row struct {
	Rank        int    `json:"rank"`
	UserID      int    `json:"userId"`
	Username    string `json:"username"`
	XP          int    `json:"xp"`
	Level       int    `json:"level"`
	SolvedCount int    `json:"solvedCount"`
	BadgeCount  int    `json:"badgeCount"`
}

type (
	Repository interface {
		// QueryTopUsers returns unranked rows ordered by XP desc, user ID asc.
		QueryTopUsers(limit int) ([]Row, error)
	}

	Service interface {
		Top(limit int) ([]Row, error)
	}

	service struct {
		repo Repository
	}
)

var _ Service = (*service)(nil)

const DefaultLimit = 50

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (svc *service) Top(limit int) ([]Row, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	rows, err := svc.repo.QueryTopUsers(limit)
	if err != nil {
		return nil, errors.Wrap(err, "querying leaderboard")
	}
	for i := range rows {
		rows[i].Rank = i + 1
	}
	return rows, nil
}
