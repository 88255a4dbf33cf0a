package discussion

import (
	"time"

	"github.com/trezcool/zoezi/core"
)

// Discussion is a forum thread.
type Discussion struct {
	ID         int       `json:"id"`
	AuthorID   int       `json:"authorId"`
	AuthorName string    `json:"authorName"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Tags       []string  `json:"tags"`
	Votes      int       `json:"votes"`
	CreatedAt  time.Time `json:"createdAt"` // UTC
	UpdatedAt  time.Time `json:"updatedAt"` // UTC

	// Answers is only populated on detail reads.
	Answers []Answer `json:"answers,omitempty"`
}

type Answer struct {
	ID           int       `json:"id"`
	DiscussionID int       `json:"discussionId"`
	AuthorID     int       `json:"authorId"`
	AuthorName   string    `json:"authorName"`
	Content      string    `json:"content"`
	CreatedAt    time.Time `json:"createdAt"` // UTC
}

// NewDiscussion contains information needed to open a thread.
type NewDiscussion struct {
	Title   string   `json:"title" validate:"required,min=8"`
	Content string   `json:"content" validate:"required"`
	Tags    []string `json:"tags" validate:"omitempty,max=5,dive,required"`
}

func (nd *NewDiscussion) Validate() error {
	nd.Title = core.CleanString(nd.Title)
	nd.Content = core.CleanString(nd.Content)
	for i, tag := range nd.Tags {
		nd.Tags[i] = core.CleanString(tag, true /* lower */)
	}
	return core.Validate.Struct(nd)
}

// NewAnswer contains information needed to answer a thread.
type NewAnswer struct {
	Content string `json:"content" validate:"required"`
}

func (na *NewAnswer) Validate() error {
	na.Content = core.CleanString(na.Content)
	return core.Validate.Struct(na)
}

// Vote is one up/down vote on a thread. Value is restricted to -1 and 1;
// a user re-voting replaces their previous vote.
type Vote struct {
	Value int `json:"value" validate:"required,oneof=-1 1"`
}

func (v *Vote) Validate() error { return core.Validate.Struct(v) }

// VoteResult is the outcome of a vote.
type VoteResult struct {
	Success  bool `json:"success"`
	NewCount int  `json:"newCount"`
}

// AnswerResult is the outcome of posting an answer.
type AnswerResult struct {
	Success bool `json:"success"`
}
