package problem

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/zoezi/core"
	"github.com/trezcool/zoezi/core/user"
)

var (
	// errors
	ErrNotFound  = errors.New("problem not found")
	ErrNoDaily   = errors.New("no daily problem set")
	ErrSlugTaken = errors.New("a problem with this slug already exists")
)

type (
	Repository interface {
		CreateProblem(prob Problem) (Problem, error)
		// QueryProblems applies AND on available QueryFilter fields.
		// QueryFilter.Search does a case-insensitive match on Title or Description.
		QueryProblems(filter QueryFilter) ([]Problem, error)
		GetProblemByID(id int) (Problem, error)
		GetProblemBySlug(slug string) (Problem, error)
		GetDailyProblem() (Problem, error)
		// NextProblemSlug returns the slug of the next problem in the same
		// category by sort order; "" when the category is exhausted.
		NextProblemSlug(category string, afterSortOrder int) (string, error)
		CreateSolution(sol Solution) (Solution, error)
		HasPassedSolution(userID, problemID int) (bool, error)
		SolvedProblemIDs(userID int) ([]int, error)
		CountSolved(userID int) (int, error)
	}

	// BadgeAwarder re-evaluates milestone badges after a successful solve.
	BadgeAwarder interface {
		Evaluate(usr user.User, solvedCount int) error
	}

	Service interface {
		Create(np NewProblem) (Problem, error)
		// Query lists problems; userID > 0 populates the IsSolved flags.
		Query(filter QueryFilter, userID int) ([]Problem, error)
		GetBySlug(slug string, userID int) (Problem, error)
		Daily(userID int) (Problem, error)
		Submit(ctx context.Context, userID, problemID int, ns NewSubmission) (SubmitResult, error)
		SolvedCount(userID int) (int, error)
	}

	service struct {
		repo    Repository
		usrSvc  user.Service
		grader  Grader
		awarder BadgeAwarder
		logger  core.Logger
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository, usrSvc user.Service, grader Grader, awarder BadgeAwarder, logger core.Logger) Service {
	return &service{
		repo:    repo,
		usrSvc:  usrSvc,
		grader:  grader,
		awarder: awarder,
		logger:  logger,
	}
}

func (svc *service) Create(np NewProblem) (Problem, error) {
	now := time.Now().UTC()
	prob := Problem{
		Slug:        core.Slugify(np.Title),
		Title:       np.Title,
		Description: np.Description,
		Category:    np.Category,
		Difficulty:  np.Difficulty,
		XPReward:    np.XPReward,
		StarterCode: np.StarterCode,
		SortOrder:   np.SortOrder,
		IsDaily:     np.IsDaily,
		BonusXP:     np.BonusXP,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	prob, err := svc.repo.CreateProblem(prob)
	if err != nil {
		if errors.Cause(err) == ErrSlugTaken {
			return Problem{}, core.NewValidationError(err, core.FieldError{Field: "title", Error: err.Error()})
		}
		return Problem{}, err
	}
	return prob, nil
}

func (svc *service) Query(filter QueryFilter, userID int) ([]Problem, error) {
	filter.Clean()
	probs, err := svc.repo.QueryProblems(filter)
	if err != nil {
		return nil, errors.Wrap(err, "querying problems")
	}
	if userID > 0 {
		if err = svc.flagSolved(probs, userID); err != nil {
			return nil, err
		}
	}
	return probs, nil
}

func (svc *service) GetBySlug(slug string, userID int) (Problem, error) {
	prob, err := svc.repo.GetProblemBySlug(core.CleanString(slug, true /* lower */))
	if err != nil {
		return Problem{}, err
	}
	if userID > 0 {
		solved, err := svc.repo.HasPassedSolution(userID, prob.ID)
		if err != nil {
			return Problem{}, errors.Wrap(err, "checking solved state")
		}
		prob.IsSolved = &solved
	}
	return prob, nil
}

func (svc *service) Daily(userID int) (Problem, error) {
	prob, err := svc.repo.GetDailyProblem()
	if err != nil {
		return Problem{}, err
	}
	if userID > 0 {
		solved, err := svc.repo.HasPassedSolution(userID, prob.ID)
		if err != nil {
			return Problem{}, errors.Wrap(err, "checking solved state")
		}
		prob.IsSolved = &solved
	}
	return prob, nil
}

func (svc *service) Submit(ctx context.Context, userID, problemID int, ns NewSubmission) (SubmitResult, error) {
	prob, err := svc.repo.GetProblemByID(problemID)
	if err != nil {
		return SubmitResult{}, err
	}

	report, err := svc.grader.Grade(ctx, prob, ns.Code, ns.Language)
	if err != nil {
		return SubmitResult{}, errors.Wrap(err, "grading submission")
	}

	alreadySolved, err := svc.repo.HasPassedSolution(userID, prob.ID)
	if err != nil {
		return SubmitResult{}, errors.Wrap(err, "checking solved state")
	}

	var xpEarned int
	if report.Passed && !alreadySolved {
		xpEarned = prob.XPReward
		if prob.IsDaily {
			xpEarned += prob.BonusXP
		}
	}

	sol := Solution{
		ID:          uuid.New().String(),
		UserID:      userID,
		ProblemID:   prob.ID,
		Code:        ns.Code,
		Language:    ns.Language,
		Passed:      report.Passed,
		Output:      report.Output,
		XPEarned:    xpEarned,
		SubmittedAt: time.Now().UTC(),
	}
	if _, err = svc.repo.CreateSolution(sol); err != nil {
		return SubmitResult{}, errors.Wrap(err, "recording solution")
	}

	res := SubmitResult{
		Success: true,
		Output:  report.Output,
		Passed:  report.Passed,
	}
	if xpEarned == 0 {
		return res, nil
	}
	res.XPEarned = xpEarned

	usr, err := svc.usrSvc.RecordSolve(userID, xpEarned, sol.SubmittedAt)
	if err != nil {
		return SubmitResult{}, errors.Wrap(err, "crediting solve")
	}

	solvedCount, err := svc.repo.CountSolved(userID)
	if err != nil {
		return SubmitResult{}, errors.Wrap(err, "counting solved problems")
	}
	if err = svc.awarder.Evaluate(usr, solvedCount); err != nil {
		// badge bookkeeping must not fail the submission
		svc.logger.Error("evaluating badges", err, usr)
	}

	next, err := svc.repo.NextProblemSlug(prob.Category, prob.SortOrder)
	if err != nil {
		return SubmitResult{}, errors.Wrap(err, "finding next problem")
	}
	res.NextProblemSlug = next
	return res, nil
}

func (svc *service) SolvedCount(userID int) (int, error) {
	return svc.repo.CountSolved(userID)
}

func (svc *service) flagSolved(probs []Problem, userID int) error {
	ids, err := svc.repo.SolvedProblemIDs(userID)
	if err != nil {
		return errors.Wrap(err, "listing solved problems")
	}
	solved := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		solved[id] = struct{}{}
	}
	for i := range probs {
		_, ok := solved[probs[i].ID]
		isSolved := ok
		probs[i].IsSolved = &isSolved
	}
	return nil
}
