package sqlxrepos

import (
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/zoezi/core/leaderboard"
)

type leaderboardRow struct {
	UserID      int    `db:"user_id"`
	Username    string `db:"username"`
	XP          int    `db:"xp"`
	Level       int    `db:"level"`
	SolvedCount int    `db:"solved_count"`
	BadgeCount  int    `db:"badge_count"`
}

type leaderboardRepository struct {
	db *sqlx.DB
}

var _ leaderboard.Repository = (*leaderboardRepository)(nil) // interface compliance check

func NewLeaderboardRepository(db *sqlx.DB) *leaderboardRepository {
	return &leaderboardRepository{db: db}
}

func (repo leaderboardRepository) QueryTopUsers(limit int) ([]leaderboard.Row, error) {
	q := `
	SELECT u.id AS user_id, u.username, u.xp, u.level,
	       (SELECT COUNT(DISTINCT s.problem_id) FROM solutions s WHERE s.user_id = u.id AND s.passed) AS solved_count,
	       (SELECT COUNT(*) FROM user_badges ub WHERE ub.user_id = u.id) AS badge_count
	FROM users u
	WHERE u.is_active
	ORDER BY u.xp DESC, u.id
	LIMIT $1`
	var rows []leaderboardRow
	if err := repo.db.Select(&rows, q, limit); err != nil {
		return nil, errors.Wrap(err, "querying top users")
	}
	top := make([]leaderboard.Row, 0, len(rows))
	for _, r := range rows {
		top = append(top, leaderboard.Row{
			UserID:      r.UserID,
			Username:    r.Username,
			XP:          r.XP,
			Level:       r.Level,
			SolvedCount: r.SolvedCount,
			BadgeCount:  r.BadgeCount,
		})
	}
	return top, nil
}
