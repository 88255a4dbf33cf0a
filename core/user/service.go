package user

import (
	"fmt"
	"net/mail"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/zoezi/core"
)

var (
	// errors
	ErrNotFound       = errors.New("user not found")
	ErrEmailExists    = errors.New("a user with this email already exists")
	ErrUsernameExists = errors.New("a user with this username already exists")
)

type (
	Repository interface {
		CheckUsernameUniqueness(username, email string, excludedUsers ...User) error
		CreateUser(user User) (User, error)
		GetUserByID(id int) (User, error)
		GetUserByUsernameOrEmail(username string) (User, error)
		UpdateUser(user User) (User, error)
	}

	Service interface {
		CheckUniqueness(uname, email string, exclUsers ...User) error
		Create(nu NewUser) (User, error)
		GetByID(id int) (User, error)
		GetByUsernameOrEmail(uname string) (User, error)
		SetLastLogin(usr User) (User, error)
		// RecordSolve credits XP for a solved problem and extends the daily streak.
		RecordSolve(userID, points int, now time.Time) (User, error)
		// AwardXP credits XP without touching the streak (lesson completions).
		AwardXP(userID, points int) (User, error)
		Stats(usr User, solvedCount int) Stats
	}

	service struct {
		repo    Repository
		mailSvc core.EmailService
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository, mailSvc core.EmailService) Service {
	return &service{
		repo:    repo,
		mailSvc: mailSvc,
	}
}

func (svc *service) CheckUniqueness(uname, email string, exclUsers ...User) error {
	if err := svc.repo.CheckUsernameUniqueness(uname, email, exclUsers...); err != nil {
		var field string
		switch errors.Cause(err) {
		case ErrUsernameExists:
			field = "username"
		case ErrEmailExists:
			field = "email"
		default:
			return err
		}
		return core.NewValidationError(err, core.FieldError{Field: field, Error: err.Error()})
	}
	return nil
}

func (svc *service) Create(nu NewUser) (User, error) {
	now := time.Now().UTC()
	usr := User{
		Name:      nu.Name,
		Username:  nu.Username,
		Email:     nu.Email,
		IsActive:  true,
		Roles:     nu.Roles,
		Level:     LevelForXP(0),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if len(usr.Roles) == 0 {
		usr.Roles = []string{RoleLearner}
	}
	if err := usr.SetPassword(nu.Password); err != nil {
		return User{}, err
	}
	usr, err := svc.repo.CreateUser(usr)
	if err != nil {
		return User{}, err
	}
	svc.sendWelcomeMail(usr)
	return usr, nil
}

func (svc *service) GetByID(id int) (User, error) {
	return svc.repo.GetUserByID(id)
}

func (svc *service) GetByUsernameOrEmail(uname string) (User, error) {
	return svc.repo.GetUserByUsernameOrEmail(core.CleanString(uname, true /* lower */))
}

func (svc *service) SetLastLogin(usr User) (User, error) {
	usr.LastLogin = time.Now().UTC()
	return svc.repo.UpdateUser(usr)
}

func (svc *service) RecordSolve(userID, points int, now time.Time) (User, error) {
	usr, err := svc.repo.GetUserByID(userID)
	if err != nil {
		return User{}, errors.Wrap(err, "finding user")
	}
	usr.AddXP(points)
	usr.TouchStreak(now)
	usr.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateUser(usr)
}

func (svc *service) AwardXP(userID, points int) (User, error) {
	usr, err := svc.repo.GetUserByID(userID)
	if err != nil {
		return User{}, errors.Wrap(err, "finding user")
	}
	usr.AddXP(points)
	usr.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateUser(usr)
}

func (svc *service) Stats(usr User, solvedCount int) Stats {
	return Stats{
		UserID:      usr.ID,
		Username:    usr.Username,
		XP:          usr.XP,
		Level:       usr.Level,
		Streak:      usr.Streak,
		SolvedCount: solvedCount,
		NextLevelXP: XPToNextLevel(usr.XP),
	}
}

func (svc *service) sendWelcomeMail(usr User) {
	body := fmt.Sprintf(
		"Hi %s,\n\nWelcome to %s! Your first quest is waiting for you.\n\nHappy coding!",
		usr.Name, core.Conf.AppName,
	)
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:          []mail.Address{{Name: usr.Name, Address: usr.Email}},
		Subject:     "Welcome aboard",
		TextContent: body,
	})
}
