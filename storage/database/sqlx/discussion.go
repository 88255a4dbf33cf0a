package sqlxrepos

import (
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/trezcool/zoezi/core/discussion"
)

type discussionRow struct {
	ID         int            `db:"id"`
	AuthorID   int            `db:"author_id"`
	AuthorName string         `db:"author_name"`
	Title      string         `db:"title"`
	Content    string         `db:"content"`
	Tags       pq.StringArray `db:"tags"`
	Votes      int            `db:"votes"`
	CreatedAt  time.Time      `db:"created_at"`
	UpdatedAt  time.Time      `db:"updated_at"`
}

func (r discussionRow) toDiscussion() discussion.Discussion {
	return discussion.Discussion{
		ID:         r.ID,
		AuthorID:   r.AuthorID,
		AuthorName: r.AuthorName,
		Title:      r.Title,
		Content:    r.Content,
		Tags:       r.Tags,
		Votes:      r.Votes,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

type answerRow struct {
	ID           int       `db:"id"`
	DiscussionID int       `db:"discussion_id"`
	AuthorID     int       `db:"author_id"`
	AuthorName   string    `db:"author_name"`
	Content      string    `db:"content"`
	CreatedAt    time.Time `db:"created_at"`
}

type discussionRepository struct {
	db *sqlx.DB
}

var _ discussion.Repository = (*discussionRepository)(nil) // interface compliance check

func NewDiscussionRepository(db *sqlx.DB) *discussionRepository {
	return &discussionRepository{db: db}
}

func (repo discussionRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return discussion.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

// selectQ resolves author names and vote tallies at read time.
const selectQ = `
	SELECT d.id, d.author_id, u.username AS author_name, d.title, d.content, d.tags,
	       COALESCE((SELECT SUM(v.value) FROM votes v WHERE v.discussion_id = d.id), 0) AS votes,
	       d.created_at, d.updated_at
	FROM discussions d
	JOIN users u ON u.id = d.author_id`

func (repo discussionRepository) CreateDiscussion(d discussion.Discussion) (discussion.Discussion, error) {
	q := `
	INSERT INTO discussions (author_id, title, content, tags, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING id`
	err := repo.db.Get(&d.ID, q, d.AuthorID, d.Title, d.Content, pq.StringArray(d.Tags), d.CreatedAt.UTC(), d.UpdatedAt.UTC())
	if err != nil {
		return discussion.Discussion{}, errors.Wrap(err, "inserting discussion")
	}
	return d, nil
}

func (repo discussionRepository) QueryAllDiscussions() ([]discussion.Discussion, error) {
	var rows []discussionRow
	if err := repo.db.Select(&rows, selectQ+` ORDER BY d.created_at DESC, d.id DESC`); err != nil {
		return nil, errors.Wrap(err, "querying discussions")
	}
	ds := make([]discussion.Discussion, 0, len(rows))
	for _, r := range rows {
		ds = append(ds, r.toDiscussion())
	}
	return ds, nil
}

func (repo discussionRepository) GetDiscussionByID(id int) (discussion.Discussion, error) {
	var row discussionRow
	if err := repo.db.Get(&row, selectQ+` WHERE d.id = $1`, id); err != nil {
		return discussion.Discussion{}, repo.trapNoRowsErr(err, "getting discussion by id")
	}
	d := row.toDiscussion()

	aq := `
	SELECT a.id, a.discussion_id, a.author_id, u.username AS author_name, a.content, a.created_at
	FROM answers a
	JOIN users u ON u.id = a.author_id
	WHERE a.discussion_id = $1
	ORDER BY a.created_at, a.id`
	var arows []answerRow
	if err := repo.db.Select(&arows, aq, id); err != nil {
		return discussion.Discussion{}, errors.Wrap(err, "querying answers")
	}
	for _, ar := range arows {
		d.Answers = append(d.Answers, discussion.Answer(ar))
	}
	return d, nil
}

func (repo discussionRepository) CreateAnswer(a discussion.Answer) (discussion.Answer, error) {
	q := `
	INSERT INTO answers (discussion_id, author_id, content, created_at)
	VALUES ($1, $2, $3, $4)
	RETURNING id`
	err := repo.db.Get(&a.ID, q, a.DiscussionID, a.AuthorID, a.Content, a.CreatedAt.UTC())
	if err != nil {
		return discussion.Answer{}, errors.Wrap(err, "inserting answer")
	}
	return a, nil
}

func (repo discussionRepository) SetVote(discussionID, userID, value int) (int, error) {
	q := `
	INSERT INTO votes (discussion_id, user_id, value)
	VALUES ($1, $2, $3)
	ON CONFLICT (discussion_id, user_id) DO UPDATE SET value = EXCLUDED.value`
	if _, err := repo.db.Exec(q, discussionID, userID, value); err != nil {
		return 0, errors.Wrap(err, "upserting vote")
	}

	var tally int
	tq := `SELECT COALESCE(SUM(value), 0) FROM votes WHERE discussion_id = $1`
	if err := repo.db.Get(&tally, tq, discussionID); err != nil {
		return 0, errors.Wrap(err, "tallying votes")
	}
	return tally, nil
}
