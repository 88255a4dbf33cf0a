package inmemdb

import (
	"sort"
	"strings"

	"github.com/trezcool/zoezi/core/problem"
)

type problemRepository struct {
	db *DB
}

var _ problem.Repository = (*problemRepository)(nil) // interface compliance check

func NewProblemRepository(db *DB) *problemRepository {
	return &problemRepository{db: db}
}

func (repo *problemRepository) query() []problem.Problem {
	probs := make([]problem.Problem, 0, len(repo.db.problems))
	for _, p := range repo.db.problems {
		probs = append(probs, *p)
	}
	sort.Slice(probs, func(i, j int) bool {
		pi, pj := probs[i], probs[j]
		if pi.Category != pj.Category {
			return pi.Category < pj.Category
		}
		if pi.SortOrder != pj.SortOrder {
			return pi.SortOrder < pj.SortOrder
		}
		return pi.ID < pj.ID
	})
	return probs
}

func (repo *problemRepository) CreateProblem(prob problem.Problem) (problem.Problem, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	for _, p := range repo.db.problems {
		if p.Slug == prob.Slug {
			return problem.Problem{}, problem.ErrSlugTaken
		}
	}
	prob.ID = repo.db.nextPK()
	repo.db.problems[prob.ID] = &prob
	return prob, nil
}

func (repo *problemRepository) QueryProblems(filter problem.QueryFilter) ([]problem.Problem, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	search := strings.ToLower(filter.Search)
	var probs []problem.Problem
	for _, p := range repo.query() {
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if filter.Difficulty != "" && p.Difficulty != filter.Difficulty {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Title), search) &&
			!strings.Contains(strings.ToLower(p.Description), search) {
			continue
		}
		probs = append(probs, p)
	}
	return probs, nil
}

func (repo *problemRepository) GetProblemByID(id int) (problem.Problem, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if p, ok := repo.db.problems[id]; ok {
		return *p, nil
	}
	return problem.Problem{}, problem.ErrNotFound
}

func (repo *problemRepository) GetProblemBySlug(slug string) (problem.Problem, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	for _, p := range repo.db.problems {
		if p.Slug == slug {
			return *p, nil
		}
	}
	return problem.Problem{}, problem.ErrNotFound
}

func (repo *problemRepository) GetDailyProblem() (problem.Problem, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	var daily *problem.Problem
	for _, p := range repo.db.problems {
		if !p.IsDaily {
			continue
		}
		if daily == nil || p.UpdatedAt.After(daily.UpdatedAt) {
			daily = p
		}
	}
	if daily == nil {
		return problem.Problem{}, problem.ErrNoDaily
	}
	return *daily, nil
}

func (repo *problemRepository) NextProblemSlug(category string, afterSortOrder int) (string, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	for _, p := range repo.query() {
		if p.Category == category && p.SortOrder > afterSortOrder {
			return p.Slug, nil
		}
	}
	return "", nil
}

func (repo *problemRepository) CreateSolution(sol problem.Solution) (problem.Solution, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.solutions[sol.ID] = &sol
	return sol, nil
}

func (repo *problemRepository) HasPassedSolution(userID, problemID int) (bool, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	for _, s := range repo.db.solutions {
		if s.UserID == userID && s.ProblemID == problemID && s.Passed {
			return true, nil
		}
	}
	return false, nil
}

func (repo *problemRepository) SolvedProblemIDs(userID int) ([]int, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	seen := make(map[int]bool)
	var ids []int
	for _, s := range repo.db.solutions {
		if s.UserID == userID && s.Passed && !seen[s.ProblemID] {
			seen[s.ProblemID] = true
			ids = append(ids, s.ProblemID)
		}
	}
	sort.Ints(ids)
	return ids, nil
}

func (repo *problemRepository) CountSolved(userID int) (int, error) {
	ids, err := repo.SolvedProblemIDs(userID)
	if err != nil {
		return 0, err
	}
	return len(ids), nil
}
