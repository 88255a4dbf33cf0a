package client

import (
	"context"

	"github.com/trezcool/zoezi/core/discussion"
)

// DiscussionsClient is the typed surface of the forums.
type DiscussionsClient struct {
	c *Client
}

func (d DiscussionsClient) List(ctx context.Context) ([]discussion.Discussion, error) {
	var threads []discussion.Discussion
	if _, err := d.c.get(ctx, opDiscussionsList.Name, nil, nil, &threads); err != nil {
		return nil, err
	}
	return threads, nil
}

// Get returns the thread with its answers; nil (no error) when the id is
// unknown.
func (d DiscussionsClient) Get(ctx context.Context, id int) (*discussion.Discussion, error) {
	var thread discussion.Discussion
	found, err := d.c.get(ctx, opDiscussionsGet.Name, Params{"id": id}, nil, &thread)
	if err != nil || !found {
		return nil, err
	}
	return &thread, nil
}

func (d DiscussionsClient) Create(ctx context.Context, nd discussion.NewDiscussion) (discussion.Discussion, error) {
	var thread discussion.Discussion
	if err := d.c.do(ctx, opDiscussionsCreate.Name, nil, nd, &thread); err != nil {
		return discussion.Discussion{}, err
	}
	return thread, nil
}

func (d DiscussionsClient) Answer(ctx context.Context, discussionID int, na discussion.NewAnswer) (discussion.AnswerResult, error) {
	var res discussion.AnswerResult
	if err := d.c.do(ctx, opDiscussionsAnswer.Name, Params{"id": discussionID}, na, &res); err != nil {
		return discussion.AnswerResult{}, err
	}
	return res, nil
}

func (d DiscussionsClient) Vote(ctx context.Context, discussionID int, v discussion.Vote) (discussion.VoteResult, error) {
	var res discussion.VoteResult
	if err := d.c.do(ctx, opDiscussionsVote.Name, Params{"id": discussionID}, v, &res); err != nil {
		return discussion.VoteResult{}, err
	}
	return res, nil
}
