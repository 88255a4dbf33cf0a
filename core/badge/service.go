package badge

import (
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/zoezi/core/user"
)

var (
	// errors
	ErrNotFound = errors.New("badge not found")
)

type (
	Repository interface {
		QueryAllBadges() ([]Badge, error)
		QueryUserBadges(userID int) ([]UserBadge, error)
		// AwardBadge is idempotent; awarding an already-earned badge is a no-op
		// and reports false.
		AwardBadge(userID, badgeID int, at time.Time) (bool, error)
	}

	Service interface {
		QueryAll() ([]Badge, error)
		QueryForUser(userID int) ([]UserBadge, error)
		// Evaluate awards every catalog badge whose criterion the user now meets.
		Evaluate(usr user.User, solvedCount int) error
	}

	service struct {
		repo Repository
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (svc *service) QueryAll() ([]Badge, error) {
	return svc.repo.QueryAllBadges()
}

func (svc *service) QueryForUser(userID int) ([]UserBadge, error) {
	return svc.repo.QueryUserBadges(userID)
}

func (svc *service) Evaluate(usr user.User, solvedCount int) error {
	badges, err := svc.repo.QueryAllBadges()
	if err != nil {
		return errors.Wrap(err, "querying badge catalog")
	}

	now := time.Now().UTC()
	for _, b := range badges {
		if !meets(b, usr, solvedCount) {
			continue
		}
		if _, err = svc.repo.AwardBadge(usr.ID, b.ID, now); err != nil {
			return errors.Wrapf(err, "awarding badge %q", b.Slug)
		}
	}
	return nil
}

func meets(b Badge, usr user.User, solvedCount int) bool {
	switch b.Criterion {
	case CriterionSolvedCount:
		return solvedCount >= b.Threshold
	case CriterionStreak:
		return usr.Streak >= b.Threshold
	case CriterionXP:
		return usr.XP >= b.Threshold
	}
	return false
}
