package inmemdb

import (
	"sort"

	"github.com/trezcool/zoezi/core/hackathon"
)

type hackathonRepository struct {
	db *DB
}

var _ hackathon.Repository = (*hackathonRepository)(nil) // interface compliance check

func NewHackathonRepository(db *DB) *hackathonRepository {
	return &hackathonRepository{db: db}
}

// LoadEvents replaces the event list; intended for test setup.
func (repo *hackathonRepository) LoadEvents(events []hackathon.Hackathon) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	for i := range events {
		h := events[i]
		if h.ID == 0 {
			h.ID = repo.db.nextPK()
		}
		repo.db.hackathons[h.ID] = &h
	}
}

func (repo *hackathonRepository) QueryAllHackathons() ([]hackathon.Hackathon, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	events := make([]hackathon.Hackathon, 0, len(repo.db.hackathons))
	for _, h := range repo.db.hackathons {
		events = append(events, *h)
	}
	sort.Slice(events, func(i, j int) bool {
		if !events[i].StartsAt.Equal(events[j].StartsAt) {
			return events[i].StartsAt.Before(events[j].StartsAt)
		}
		return events[i].ID < events[j].ID
	})
	return events, nil
}
