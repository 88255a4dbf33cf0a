package inmemdb

import (
	"sort"
	"time"

	"github.com/trezcool/zoezi/core/badge"
)

type badgeRepository struct {
	db *DB
}

var _ badge.Repository = (*badgeRepository)(nil) // interface compliance check

func NewBadgeRepository(db *DB) *badgeRepository {
	return &badgeRepository{db: db}
}

// LoadCatalog replaces the badge catalog; intended for test setup.
func (repo *badgeRepository) LoadCatalog(badges []badge.Badge) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	for i := range badges {
		b := badges[i]
		if b.ID == 0 {
			b.ID = repo.db.nextPK()
		}
		repo.db.badges[b.ID] = &b
	}
}

func (repo *badgeRepository) QueryAllBadges() ([]badge.Badge, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	badges := make([]badge.Badge, 0, len(repo.db.badges))
	for _, b := range repo.db.badges {
		badges = append(badges, *b)
	}
	sort.Slice(badges, func(i, j int) bool { return badges[i].ID < badges[j].ID })
	return badges, nil
}

func (repo *badgeRepository) QueryUserBadges(userID int) ([]badge.UserBadge, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	var earned []badge.UserBadge
	for key, at := range repo.db.userBadges {
		if key.userID != userID {
			continue
		}
		if b, ok := repo.db.badges[key.itemID]; ok {
			earned = append(earned, badge.UserBadge{Badge: *b, EarnedAt: at})
		}
	}
	sort.Slice(earned, func(i, j int) bool { return earned[i].EarnedAt.Before(earned[j].EarnedAt) })
	return earned, nil
}

func (repo *badgeRepository) AwardBadge(userID, badgeID int, at time.Time) (bool, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	key := userItemKey{userID: userID, itemID: badgeID}
	if _, ok := repo.db.userBadges[key]; ok {
		return false, nil
	}
	repo.db.userBadges[key] = at.UTC()
	return true, nil
}
