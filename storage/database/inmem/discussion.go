package inmemdb

import (
	"sort"

	"github.com/trezcool/zoezi/core/discussion"
)

type discussionRepository struct {
	db *DB
}

var _ discussion.Repository = (*discussionRepository)(nil) // interface compliance check

func NewDiscussionRepository(db *DB) *discussionRepository {
	return &discussionRepository{db: db}
}

func (repo *discussionRepository) tally(discussionID int) int {
	var total int
	for key, value := range repo.db.votes {
		if key.discussionID == discussionID {
			total += value
		}
	}
	return total
}

func (repo *discussionRepository) CreateDiscussion(d discussion.Discussion) (discussion.Discussion, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	d.ID = repo.db.nextPK()
	repo.db.discussions[d.ID] = &d
	return d, nil
}

func (repo *discussionRepository) QueryAllDiscussions() ([]discussion.Discussion, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	ds := make([]discussion.Discussion, 0, len(repo.db.discussions))
	for _, d := range repo.db.discussions {
		dd := *d
		dd.Votes = repo.tally(dd.ID)
		ds = append(ds, dd)
	}
	sort.Slice(ds, func(i, j int) bool {
		if !ds[i].CreatedAt.Equal(ds[j].CreatedAt) {
			return ds[i].CreatedAt.After(ds[j].CreatedAt)
		}
		return ds[i].ID > ds[j].ID
	})
	return ds, nil
}

func (repo *discussionRepository) GetDiscussionByID(id int) (discussion.Discussion, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	d, ok := repo.db.discussions[id]
	if !ok {
		return discussion.Discussion{}, discussion.ErrNotFound
	}
	dd := *d
	dd.Votes = repo.tally(dd.ID)
	for _, a := range repo.db.answers {
		if a.DiscussionID == dd.ID {
			dd.Answers = append(dd.Answers, *a)
		}
	}
	sort.Slice(dd.Answers, func(i, j int) bool { return dd.Answers[i].ID < dd.Answers[j].ID })
	return dd, nil
}

func (repo *discussionRepository) CreateAnswer(a discussion.Answer) (discussion.Answer, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.discussions[a.DiscussionID]; !ok {
		return discussion.Answer{}, discussion.ErrNotFound
	}
	a.ID = repo.db.nextPK()
	repo.db.answers[a.ID] = &a
	return a, nil
}

func (repo *discussionRepository) SetVote(discussionID, userID, value int) (int, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.discussions[discussionID]; !ok {
		return 0, discussion.ErrNotFound
	}
	repo.db.votes[voteKey{discussionID: discussionID, userID: userID}] = value
	return repo.tally(discussionID), nil
}
