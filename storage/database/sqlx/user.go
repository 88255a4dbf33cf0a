package sqlxrepos

import (
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/zoezi/core/user"
)

type userRow struct {
	ID           int            `db:"id"`
	Name         string         `db:"name"`
	Username     string         `db:"username"`
	Email        string         `db:"email"`
	IsActive     bool           `db:"is_active"`
	Roles        pq.StringArray `db:"roles"`
	XP           int            `db:"xp"`
	Level        int            `db:"level"`
	Streak       int            `db:"streak"`
	LastSolvedAt null.Time      `db:"last_solved_at"`
	PasswordHash null.Bytes     `db:"password_hash"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
	LastLogin    null.Time      `db:"last_login"`
}

func (r userRow) toUser() user.User {
	return user.User{
		ID:           r.ID,
		Name:         r.Name,
		Username:     r.Username,
		Email:        r.Email,
		IsActive:     r.IsActive,
		Roles:        r.Roles,
		XP:           r.XP,
		Level:        r.Level,
		Streak:       r.Streak,
		LastSolvedAt: r.LastSolvedAt.Time,
		PasswordHash: r.PasswordHash.Bytes,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
		LastLogin:    r.LastLogin.Time,
	}
}

type userRepository struct {
	db *sqlx.DB
}

var _ user.Repository = (*userRepository)(nil) // interface compliance check

func NewUserRepository(db *sqlx.DB) *userRepository {
	return &userRepository{db: db}
}

// trapNoRowsErr maps psql "no rows" err to user.ErrNotFound
func (repo userRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return user.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo userRepository) CheckUsernameUniqueness(username, email string, excludedUsers ...user.User) error {
	excluded := make(pq.Int64Array, 0, len(excludedUsers))
	for _, u := range excludedUsers {
		excluded = append(excluded, int64(u.ID))
	}

	var taken struct {
		Username bool `db:"username_taken"`
		Email    bool `db:"email_taken"`
	}
	q := `
	SELECT EXISTS(SELECT 1 FROM users WHERE username = $1 AND id != ALL ($3)) AS username_taken,
	       EXISTS(SELECT 1 FROM users WHERE email = $2 AND id != ALL ($3)) AS email_taken`
	if err := repo.db.Get(&taken, q, username, email, excluded); err != nil {
		return errors.Wrap(err, "checking user uniqueness")
	}
	if taken.Username {
		return user.ErrUsernameExists
	}
	if taken.Email {
		return user.ErrEmailExists
	}
	return nil
}

func (repo userRepository) CreateUser(usr user.User) (user.User, error) {
	q := `
	INSERT INTO users (name, username, email, is_active, roles, xp, level, streak, password_hash, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	RETURNING id`
	err := repo.db.Get(
		&usr.ID, q,
		usr.Name, usr.Username, usr.Email, usr.IsActive, pq.StringArray(usr.Roles),
		usr.XP, usr.Level, usr.Streak, usr.PasswordHash, usr.CreatedAt.UTC(), usr.UpdatedAt.UTC(),
	)
	if err != nil {
		return user.User{}, errors.Wrap(err, "inserting user")
	}
	return usr, nil
}

func (repo userRepository) GetUserByID(id int) (user.User, error) {
	var row userRow
	if err := repo.db.Get(&row, `SELECT * FROM users WHERE id = $1`, id); err != nil {
		return user.User{}, repo.trapNoRowsErr(err, "getting user by id")
	}
	return row.toUser(), nil
}

func (repo userRepository) GetUserByUsernameOrEmail(username string) (user.User, error) {
	q := `SELECT * FROM users WHERE username = LOWER($1) OR email = LOWER($1)`
	var row userRow
	if err := repo.db.Get(&row, q, username); err != nil {
		return user.User{}, repo.trapNoRowsErr(err, "getting user by username or email")
	}
	return row.toUser(), nil
}

func (repo userRepository) UpdateUser(usr user.User) (user.User, error) {
	q := `
	UPDATE users
	SET name = $2, username = $3, email = $4, is_active = $5, roles = $6,
	    xp = $7, level = $8, streak = $9, last_solved_at = $10,
	    password_hash = $11, updated_at = $12, last_login = $13
	WHERE id = $1`
	res, err := repo.db.Exec(
		q, usr.ID,
		usr.Name, usr.Username, usr.Email, usr.IsActive, pq.StringArray(usr.Roles),
		usr.XP, usr.Level, usr.Streak, null.NewTime(usr.LastSolvedAt.UTC(), !usr.LastSolvedAt.IsZero()),
		usr.PasswordHash, usr.UpdatedAt.UTC(), null.NewTime(usr.LastLogin.UTC(), !usr.LastLogin.IsZero()),
	)
	if err != nil {
		return user.User{}, errors.Wrap(err, "updating user")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return user.User{}, user.ErrNotFound
	}
	return usr, nil
}
