package sqlxrepos

import (
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/trezcool/zoezi/core/problem"
)

const pqUniqueViolation = "23505"

type problemRow struct {
	ID          int       `db:"id"`
	Slug        string    `db:"slug"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	Category    string    `db:"category"`
	Difficulty  string    `db:"difficulty"`
	XPReward    int       `db:"xp_reward"`
	StarterCode string    `db:"starter_code"`
	SortOrder   int       `db:"sort_order"`
	IsDaily     bool      `db:"is_daily"`
	BonusXP     int       `db:"bonus_xp"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (r problemRow) toProblem() problem.Problem {
	return problem.Problem{
		ID:          r.ID,
		Slug:        r.Slug,
		Title:       r.Title,
		Description: r.Description,
		Category:    r.Category,
		Difficulty:  r.Difficulty,
		XPReward:    r.XPReward,
		StarterCode: r.StarterCode,
		SortOrder:   r.SortOrder,
		IsDaily:     r.IsDaily,
		BonusXP:     r.BonusXP,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

type problemRepository struct {
	db *sqlx.DB
}

var _ problem.Repository = (*problemRepository)(nil) // interface compliance check

func NewProblemRepository(db *sqlx.DB) *problemRepository {
	return &problemRepository{db: db}
}

func (repo problemRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return problem.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo problemRepository) CreateProblem(prob problem.Problem) (problem.Problem, error) {
	q := `
	INSERT INTO problems (slug, title, description, category, difficulty, xp_reward, starter_code, sort_order, is_daily, bonus_xp, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	RETURNING id`
	err := repo.db.Get(
		&prob.ID, q,
		prob.Slug, prob.Title, prob.Description, prob.Category, prob.Difficulty,
		prob.XPReward, prob.StarterCode, prob.SortOrder, prob.IsDaily, prob.BonusXP,
		prob.CreatedAt.UTC(), prob.UpdatedAt.UTC(),
	)
	if err != nil {
		if pqErr, ok := errors.Cause(err).(*pq.Error); ok && pqErr.Code == pqUniqueViolation {
			return problem.Problem{}, problem.ErrSlugTaken
		}
		return problem.Problem{}, errors.Wrap(err, "inserting problem")
	}
	return prob, nil
}

func (repo problemRepository) QueryProblems(filter problem.QueryFilter) ([]problem.Problem, error) {
	q := `
	SELECT * FROM problems
	WHERE ($1 = '' OR category = $1)
	  AND ($2 = '' OR difficulty = $2)
	  AND ($3 = '' OR title ILIKE '%' || $3 || '%' OR description ILIKE '%' || $3 || '%')
	ORDER BY category, sort_order, id`
	var rows []problemRow
	if err := repo.db.Select(&rows, q, filter.Category, filter.Difficulty, filter.Search); err != nil {
		return nil, errors.Wrap(err, "querying problems")
	}
	probs := make([]problem.Problem, 0, len(rows))
	for _, r := range rows {
		probs = append(probs, r.toProblem())
	}
	return probs, nil
}

func (repo problemRepository) GetProblemByID(id int) (problem.Problem, error) {
	var row problemRow
	if err := repo.db.Get(&row, `SELECT * FROM problems WHERE id = $1`, id); err != nil {
		return problem.Problem{}, repo.trapNoRowsErr(err, "getting problem by id")
	}
	return row.toProblem(), nil
}

func (repo problemRepository) GetProblemBySlug(slug string) (problem.Problem, error) {
	var row problemRow
	if err := repo.db.Get(&row, `SELECT * FROM problems WHERE slug = $1`, slug); err != nil {
		return problem.Problem{}, repo.trapNoRowsErr(err, "getting problem by slug")
	}
	return row.toProblem(), nil
}

func (repo problemRepository) GetDailyProblem() (problem.Problem, error) {
	q := `SELECT * FROM problems WHERE is_daily ORDER BY updated_at DESC LIMIT 1`
	var row problemRow
	if err := repo.db.Get(&row, q); err != nil {
		if err == sql.ErrNoRows {
			return problem.Problem{}, problem.ErrNoDaily
		}
		return problem.Problem{}, errors.Wrap(err, "getting daily problem")
	}
	return row.toProblem(), nil
}

func (repo problemRepository) NextProblemSlug(category string, afterSortOrder int) (string, error) {
	q := `
	SELECT slug FROM problems
	WHERE category = $1 AND sort_order > $2
	ORDER BY sort_order LIMIT 1`
	var slug string
	if err := repo.db.Get(&slug, q, category, afterSortOrder); err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		return "", errors.Wrap(err, "getting next problem slug")
	}
	return slug, nil
}

func (repo problemRepository) CreateSolution(sol problem.Solution) (problem.Solution, error) {
	q := `
	INSERT INTO solutions (id, user_id, problem_id, code, language, passed, output, xp_earned, submitted_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := repo.db.Exec(
		q,
		sol.ID, sol.UserID, sol.ProblemID, sol.Code, sol.Language,
		sol.Passed, sol.Output, sol.XPEarned, sol.SubmittedAt.UTC(),
	)
	if err != nil {
		return problem.Solution{}, errors.Wrap(err, "inserting solution")
	}
	return sol, nil
}

func (repo problemRepository) HasPassedSolution(userID, problemID int) (bool, error) {
	q := `SELECT EXISTS(SELECT 1 FROM solutions WHERE user_id = $1 AND problem_id = $2 AND passed)`
	var passed bool
	if err := repo.db.Get(&passed, q, userID, problemID); err != nil {
		return false, errors.Wrap(err, "checking passed solution")
	}
	return passed, nil
}

func (repo problemRepository) SolvedProblemIDs(userID int) ([]int, error) {
	q := `SELECT DISTINCT problem_id FROM solutions WHERE user_id = $1 AND passed`
	var ids []int
	if err := repo.db.Select(&ids, q, userID); err != nil {
		return nil, errors.Wrap(err, "querying solved problem ids")
	}
	return ids, nil
}

func (repo problemRepository) CountSolved(userID int) (int, error) {
	q := `SELECT COUNT(DISTINCT problem_id) FROM solutions WHERE user_id = $1 AND passed`
	var count int
	if err := repo.db.Get(&count, q, userID); err != nil {
		return 0, errors.Wrap(err, "counting solved problems")
	}
	return count, nil
}
