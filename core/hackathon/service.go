package hackathon

import (
	"time"

	"github.com/pkg/errors"
)

var (
	// errors
	ErrNotFound = errors.New("hackathon not found")
)

type (
	Repository interface {
		// QueryAllHackathons returns events, soonest start first.
		QueryAllHackathons() ([]Hackathon, error)
	}

	Service interface {
		QueryAll() ([]Hackathon, error)
	}

	service struct {
		repo    Repository
		nowFunc func() time.Time // mockable
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository) Service {
	return &service{
		repo:    repo,
		nowFunc: time.Now,
	}
}

func (svc *service) QueryAll() ([]Hackathon, error) {
	events, err := svc.repo.QueryAllHackathons()
	if err != nil {
		return nil, err
	}
	now := svc.nowFunc().UTC()
	for i := range events {
		events[i].Status = events[i].StatusAt(now)
	}
	return events, nil
}
