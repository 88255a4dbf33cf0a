package problem

import (
	"context"
	"strings"
)

// GradeReport is the outcome of running a submission against a problem's
// test cases.
type GradeReport struct {
	Passed bool
	Output string
}

// Grader runs a submission and reports pass/fail. The real execution sandbox
// is an external collaborator; this layer only depends on the contract.
type Grader interface {
	Grade(ctx context.Context, prob Problem, code, language string) (GradeReport, error)
}

// stubGrader is a canned grader used until the execution service is wired in.
// It passes any non-empty submission.
type stubGrader struct{}

func NewStubGrader() Grader {
	return stubGrader{}
}

func (stubGrader) Grade(_ context.Context, prob Problem, code, _ string) (GradeReport, error) {
	if strings.TrimSpace(code) == "" {
		return GradeReport{
			Passed: false,
			Output: "no code submitted",
		}, nil
	}
	return GradeReport{
		Passed: true,
		Output: "All test cases passed for " + prob.Slug,
	}, nil
}
