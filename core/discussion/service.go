package discussion

import (
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/zoezi/core/user"
)

var (
	// errors
	ErrNotFound = errors.New("discussion not found")
)

type (
	Repository interface {
		CreateDiscussion(d Discussion) (Discussion, error)
		// QueryAllDiscussions returns threads (without answers) most recent first.
		QueryAllDiscussions() ([]Discussion, error)
		// GetDiscussionByID returns the thread with its answers ordered oldest first.
		GetDiscussionByID(id int) (Discussion, error)
		CreateAnswer(a Answer) (Answer, error)
		// SetVote upserts the user's vote and returns the new tally.
		SetVote(discussionID, userID, value int) (int, error)
	}

	Service interface {
		Create(authorID int, nd NewDiscussion) (Discussion, error)
		QueryAll() ([]Discussion, error)
		GetByID(id int) (Discussion, error)
		Answer(discussionID, authorID int, na NewAnswer) (AnswerResult, error)
		Vote(discussionID, userID int, v Vote) (VoteResult, error)
	}

	service struct {
		repo   Repository
		usrSvc user.Service
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository, usrSvc user.Service) Service {
	return &service{
		repo:   repo,
		usrSvc: usrSvc,
	}
}

func (svc *service) Create(authorID int, nd NewDiscussion) (Discussion, error) {
	author, err := svc.usrSvc.GetByID(authorID)
	if err != nil {
		return Discussion{}, errors.Wrap(err, "finding author")
	}

	now := time.Now().UTC()
	return svc.repo.CreateDiscussion(Discussion{
		AuthorID:   author.ID,
		AuthorName: author.Username,
		Title:      nd.Title,
		Content:    nd.Content,
		Tags:       nd.Tags,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
}

func (svc *service) QueryAll() ([]Discussion, error) {
	return svc.repo.QueryAllDiscussions()
}

func (svc *service) GetByID(id int) (Discussion, error) {
	return svc.repo.GetDiscussionByID(id)
}

func (svc *service) Answer(discussionID, authorID int, na NewAnswer) (AnswerResult, error) {
	d, err := svc.repo.GetDiscussionByID(discussionID)
	if err != nil {
		return AnswerResult{}, err
	}
	author, err := svc.usrSvc.GetByID(authorID)
	if err != nil {
		return AnswerResult{}, errors.Wrap(err, "finding author")
	}

	_, err = svc.repo.CreateAnswer(Answer{
		DiscussionID: d.ID,
		AuthorID:     author.ID,
		AuthorName:   author.Username,
		Content:      na.Content,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return AnswerResult{}, errors.Wrap(err, "creating answer")
	}
	return AnswerResult{Success: true}, nil
}

func (svc *service) Vote(discussionID, userID int, v Vote) (VoteResult, error) {
	d, err := svc.repo.GetDiscussionByID(discussionID)
	if err != nil {
		return VoteResult{}, err
	}
	count, err := svc.repo.SetVote(d.ID, userID, v.Value)
	if err != nil {
		return VoteResult{}, errors.Wrap(err, "recording vote")
	}
	return VoteResult{Success: true, NewCount: count}, nil
}
