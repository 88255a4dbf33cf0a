package client

import (
	"context"
	"net/url"

	"github.com/trezcool/zoezi/core/problem"
)

// ProblemsClient is the typed surface of the problem catalog.
type ProblemsClient struct {
	c *Client
}

// ProblemFilter narrows List results; zero fields are omitted from the query.
type ProblemFilter struct {
	Category   string
	Difficulty string
	Search     string
}

func (f ProblemFilter) query() url.Values {
	q := make(url.Values)
	if f.Category != "" {
		q.Set("category", f.Category)
	}
	if f.Difficulty != "" {
		q.Set("difficulty", f.Difficulty)
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	return q
}

func (p ProblemsClient) List(ctx context.Context, filter ProblemFilter) ([]problem.Problem, error) {
	var probs []problem.Problem
	if _, err := p.c.get(ctx, opProblemsList.Name, nil, filter.query(), &probs); err != nil {
		return nil, err
	}
	return probs, nil
}

// Get returns nil (no error) when no problem has the given slug.
func (p ProblemsClient) Get(ctx context.Context, slug string) (*problem.Problem, error) {
	var prob problem.Problem
	found, err := p.c.get(ctx, opProblemsGet.Name, Params{"slug": slug}, nil, &prob)
	if err != nil || !found {
		return nil, err
	}
	return &prob, nil
}

// Daily returns nil (no error) when no daily problem is currently set.
func (p ProblemsClient) Daily(ctx context.Context) (*problem.Problem, error) {
	var prob problem.Problem
	found, err := p.c.get(ctx, opProblemsDaily.Name, nil, nil, &prob)
	if err != nil || !found {
		return nil, err
	}
	return &prob, nil
}

// Submit grades a solution attempt. A nonexistent problem id surfaces as
// *NotFoundError.
func (p ProblemsClient) Submit(ctx context.Context, problemID int, sub problem.NewSubmission) (problem.SubmitResult, error) {
	var res problem.SubmitResult
	if err := p.c.do(ctx, opProblemsSubmit.Name, Params{"id": problemID}, sub, &res); err != nil {
		return problem.SubmitResult{}, err
	}
	return res, nil
}
