package sqlxrepos

import (
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/zoezi/core/badge"
)

type badgeRow struct {
	ID          int    `db:"id"`
	Slug        string `db:"slug"`
	Name        string `db:"name"`
	Description string `db:"description"`
	Icon        string `db:"icon"`
	Criterion   string `db:"criterion"`
	Threshold   int    `db:"threshold"`
}

func (r badgeRow) toBadge() badge.Badge {
	return badge.Badge(r)
}

type userBadgeRow struct {
	badgeRow
	EarnedAt time.Time `db:"earned_at"`
}

type badgeRepository struct {
	db *sqlx.DB
}

var _ badge.Repository = (*badgeRepository)(nil) // interface compliance check

func NewBadgeRepository(db *sqlx.DB) *badgeRepository {
	return &badgeRepository{db: db}
}

func (repo badgeRepository) QueryAllBadges() ([]badge.Badge, error) {
	var rows []badgeRow
	if err := repo.db.Select(&rows, `SELECT * FROM badges ORDER BY criterion, threshold`); err != nil {
		return nil, errors.Wrap(err, "querying badges")
	}
	badges := make([]badge.Badge, 0, len(rows))
	for _, r := range rows {
		badges = append(badges, r.toBadge())
	}
	return badges, nil
}

func (repo badgeRepository) QueryUserBadges(userID int) ([]badge.UserBadge, error) {
	q := `
	SELECT b.*, ub.earned_at
	FROM user_badges ub
	JOIN badges b ON b.id = ub.badge_id
	WHERE ub.user_id = $1
	ORDER BY ub.earned_at`
	var rows []userBadgeRow
	if err := repo.db.Select(&rows, q, userID); err != nil {
		return nil, errors.Wrap(err, "querying user badges")
	}
	badges := make([]badge.UserBadge, 0, len(rows))
	for _, r := range rows {
		badges = append(badges, badge.UserBadge{Badge: r.toBadge(), EarnedAt: r.EarnedAt})
	}
	return badges, nil
}

func (repo badgeRepository) AwardBadge(userID, badgeID int, at time.Time) (bool, error) {
	q := `
	INSERT INTO user_badges (user_id, badge_id, earned_at)
	VALUES ($1, $2, $3)
	ON CONFLICT (user_id, badge_id) DO NOTHING`
	res, err := repo.db.Exec(q, userID, badgeID, at.UTC())
	if err != nil {
		return false, errors.Wrap(err, "awarding badge")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, errors.Wrap(err, "awarding badge")
	}
	return n > 0, nil
}
