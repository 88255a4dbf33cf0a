package client

import (
	"context"

	"github.com/trezcool/zoezi/core/tutorial"
)

// TutorialsClient is the typed surface of the tutorial tracks.
type TutorialsClient struct {
	c *Client
}

func (t TutorialsClient) List(ctx context.Context) ([]tutorial.Tutorial, error) {
	var tuts []tutorial.Tutorial
	if _, err := t.c.get(ctx, opTutorialsList.Name, nil, nil, &tuts); err != nil {
		return nil, err
	}
	return tuts, nil
}

// Get returns the tutorial with its lessons; nil (no error) when the slug is
// unknown.
func (t TutorialsClient) Get(ctx context.Context, slug string) (*tutorial.Tutorial, error) {
	var tut tutorial.Tutorial
	found, err := t.c.get(ctx, opTutorialsGet.Name, Params{"slug": slug}, nil, &tut)
	if err != nil || !found {
		return nil, err
	}
	return &tut, nil
}

func (t TutorialsClient) CompleteLesson(ctx context.Context, lessonID int) (tutorial.CompletionResult, error) {
	var res tutorial.CompletionResult
	if err := t.c.do(ctx, opLessonsComplete.Name, Params{"id": lessonID}, nil, &res); err != nil {
		return tutorial.CompletionResult{}, err
	}
	return res, nil
}
