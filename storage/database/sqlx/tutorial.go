package sqlxrepos

import (
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/zoezi/core/tutorial"
)

type tutorialRow struct {
	ID          int       `db:"id"`
	Slug        string    `db:"slug"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	Category    string    `db:"category"`
	LessonCount int       `db:"lesson_count"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (r tutorialRow) toTutorial() tutorial.Tutorial {
	return tutorial.Tutorial{
		ID:          r.ID,
		Slug:        r.Slug,
		Title:       r.Title,
		Description: r.Description,
		Category:    r.Category,
		LessonCount: r.LessonCount,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

type lessonRow struct {
	ID         int    `db:"id"`
	TutorialID int    `db:"tutorial_id"`
	Title      string `db:"title"`
	Content    string `db:"content"`
	XPReward   int    `db:"xp_reward"`
	SortOrder  int    `db:"sort_order"`
}

func (r lessonRow) toLesson() tutorial.Lesson {
	return tutorial.Lesson(r)
}

type tutorialRepository struct {
	db *sqlx.DB
}

var _ tutorial.Repository = (*tutorialRepository)(nil) // interface compliance check

func NewTutorialRepository(db *sqlx.DB) *tutorialRepository {
	return &tutorialRepository{db: db}
}

func (repo tutorialRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return tutorial.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo tutorialRepository) CreateTutorial(tut tutorial.Tutorial) (tutorial.Tutorial, error) {
	tx, err := repo.db.Beginx()
	if err != nil {
		return tutorial.Tutorial{}, errors.Wrap(err, "beginning tx")
	}
	defer func() { _ = tx.Rollback() }()

	q := `
	INSERT INTO tutorials (slug, title, description, category, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING id`
	err = tx.Get(&tut.ID, q, tut.Slug, tut.Title, tut.Description, tut.Category, tut.CreatedAt.UTC(), tut.UpdatedAt.UTC())
	if err != nil {
		return tutorial.Tutorial{}, errors.Wrap(err, "inserting tutorial")
	}

	lq := `
	INSERT INTO lessons (tutorial_id, title, content, xp_reward, sort_order)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING id`
	for i := range tut.Lessons {
		l := &tut.Lessons[i]
		l.TutorialID = tut.ID
		if err = tx.Get(&l.ID, lq, l.TutorialID, l.Title, l.Content, l.XPReward, l.SortOrder); err != nil {
			return tutorial.Tutorial{}, errors.Wrap(err, "inserting lesson")
		}
	}

	if err = tx.Commit(); err != nil {
		return tutorial.Tutorial{}, errors.Wrap(err, "committing tx")
	}
	return tut, nil
}

func (repo tutorialRepository) QueryAllTutorials() ([]tutorial.Tutorial, error) {
	q := `
	SELECT t.*, COUNT(l.id) AS lesson_count
	FROM tutorials t
	LEFT JOIN lessons l ON l.tutorial_id = t.id
	GROUP BY t.id
	ORDER BY t.category, t.id`
	var rows []tutorialRow
	if err := repo.db.Select(&rows, q); err != nil {
		return nil, errors.Wrap(err, "querying tutorials")
	}
	tuts := make([]tutorial.Tutorial, 0, len(rows))
	for _, r := range rows {
		tuts = append(tuts, r.toTutorial())
	}
	return tuts, nil
}

func (repo tutorialRepository) GetTutorialBySlug(slug string) (tutorial.Tutorial, error) {
	q := `
	SELECT t.*, COUNT(l.id) AS lesson_count
	FROM tutorials t
	LEFT JOIN lessons l ON l.tutorial_id = t.id
	WHERE t.slug = $1
	GROUP BY t.id`
	var row tutorialRow
	if err := repo.db.Get(&row, q, slug); err != nil {
		return tutorial.Tutorial{}, repo.trapNoRowsErr(err, "getting tutorial by slug")
	}
	tut := row.toTutorial()

	var lrows []lessonRow
	lq := `SELECT * FROM lessons WHERE tutorial_id = $1 ORDER BY sort_order`
	if err := repo.db.Select(&lrows, lq, tut.ID); err != nil {
		return tutorial.Tutorial{}, errors.Wrap(err, "querying lessons")
	}
	for _, lr := range lrows {
		tut.Lessons = append(tut.Lessons, lr.toLesson())
	}
	return tut, nil
}

func (repo tutorialRepository) GetLessonByID(id int) (tutorial.Lesson, error) {
	var row lessonRow
	if err := repo.db.Get(&row, `SELECT * FROM lessons WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return tutorial.Lesson{}, tutorial.ErrLessonNotFound
		}
		return tutorial.Lesson{}, errors.Wrap(err, "getting lesson by id")
	}
	return row.toLesson(), nil
}

func (repo tutorialRepository) MarkLessonCompleted(userID, lessonID int, at time.Time) (bool, error) {
	q := `
	INSERT INTO lesson_completions (user_id, lesson_id, completed_at)
	VALUES ($1, $2, $3)
	ON CONFLICT (user_id, lesson_id) DO NOTHING`
	res, err := repo.db.Exec(q, userID, lessonID, at.UTC())
	if err != nil {
		return false, errors.Wrap(err, "marking lesson completed")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, errors.Wrap(err, "marking lesson completed")
	}
	return n > 0, nil
}
