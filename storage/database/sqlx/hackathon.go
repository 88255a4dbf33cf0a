package sqlxrepos

import (
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/zoezi/core/hackathon"
)

type hackathonRow struct {
	ID       int       `db:"id"`
	Slug     string    `db:"slug"`
	Name     string    `db:"name"`
	Theme    string    `db:"theme"`
	Prize    string    `db:"prize"`
	StartsAt time.Time `db:"starts_at"`
	EndsAt   time.Time `db:"ends_at"`
}

type hackathonRepository struct {
	db *sqlx.DB
}

var _ hackathon.Repository = (*hackathonRepository)(nil) // interface compliance check

func NewHackathonRepository(db *sqlx.DB) *hackathonRepository {
	return &hackathonRepository{db: db}
}

func (repo hackathonRepository) QueryAllHackathons() ([]hackathon.Hackathon, error) {
	var rows []hackathonRow
	if err := repo.db.Select(&rows, `SELECT * FROM hackathons ORDER BY starts_at, id`); err != nil {
		return nil, errors.Wrap(err, "querying hackathons")
	}
	events := make([]hackathon.Hackathon, 0, len(rows))
	for _, r := range rows {
		events = append(events, hackathon.Hackathon{
			ID:       r.ID,
			Slug:     r.Slug,
			Name:     r.Name,
			Theme:    r.Theme,
			Prize:    r.Prize,
			StartsAt: r.StartsAt,
			EndsAt:   r.EndsAt,
		})
	}
	return events, nil
}
