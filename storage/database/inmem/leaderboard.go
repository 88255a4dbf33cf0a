package inmemdb

import (
	"sort"

	"github.com/trezcool/zoezi/core/leaderboard"
)

type leaderboardRepository struct {
	db *DB
}

var _ leaderboard.Repository = (*leaderboardRepository)(nil) // interface compliance check

func NewLeaderboardRepository(db *DB) *leaderboardRepository {
	return &leaderboardRepository{db: db}
}

func (repo *leaderboardRepository) QueryTopUsers(limit int) ([]leaderboard.Row, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	solved := make(map[int]map[int]bool)
	for _, s := range repo.db.solutions {
		if !s.Passed {
			continue
		}
		if solved[s.UserID] == nil {
			solved[s.UserID] = make(map[int]bool)
		}
		solved[s.UserID][s.ProblemID] = true
	}
	badges := make(map[int]int)
	for key := range repo.db.userBadges {
		badges[key.userID]++
	}

	rows := make([]leaderboard.Row, 0, len(repo.db.users))
	for _, u := range repo.db.users {
		if !u.IsActive {
			continue
		}
		rows = append(rows, leaderboard.Row{
			UserID:      u.ID,
			Username:    u.Username,
			XP:          u.XP,
			Level:       u.Level,
			SolvedCount: len(solved[u.ID]),
			BadgeCount:  badges[u.ID],
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].XP != rows[j].XP {
			return rows[i].XP > rows[j].XP
		}
		return rows[i].UserID < rows[j].UserID
	})
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}
