package echoapi

import (
	"context"
	"net/http"
	"testing"

	"github.com/trezcool/zoezi/core/badge"
	"github.com/trezcool/zoezi/core/problem"
)

func Test_badgeApi_query(t *testing.T) {
	env := setupEnv(t)
	catalog := []badge.Badge{
		{ID: 1, Slug: "first-blood", Name: "First Blood", Criterion: badge.CriterionSolvedCount, Threshold: 1},
		{ID: 2, Slug: "on-a-roll", Name: "On a Roll", Criterion: badge.CriterionStreak, Threshold: 3},
	}
	env.badgeRepo.LoadCatalog(catalog)

	tt := httpTest{wantCode: http.StatusOK, wantData: marchallObj(t, catalog)}
	rec := env.serve(newRequest(http.MethodGet, "/api/badges"))
	checkCodeAndData(t, tt, rec)
}

func Test_badgeApi_queryMine(t *testing.T) {
	env := setupEnv(t)
	env.badgeRepo.LoadCatalog([]badge.Badge{
		{ID: 1, Slug: "first-blood", Name: "First Blood", Criterion: badge.CriterionSolvedCount, Threshold: 1},
		{ID: 2, Slug: "problem-solver", Name: "Problem Solver", Criterion: badge.CriterionSolvedCount, Threshold: 10},
	})
	usr := createUser(t, env.usrRepo, "Jane", "jane", "pwd", nil, true)
	token := getToken(t, usr)

	t.Run("auth required", func(t *testing.T) {
		tt := httpTest{wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)}
		rec := env.serve(newRequest(http.MethodGet, "/api/user/badges"))
		checkCodeAndData(t, tt, rec)
	})

	t.Run("nothing earned", func(t *testing.T) {
		tt := httpTest{wantCode: http.StatusOK, wantData: marchallObj(t, []badge.UserBadge{})}
		rec := env.serve(newAuthRequest(http.MethodGet, "/api/user/badges", token))
		checkCodeAndData(t, tt, rec)
	})

	t.Run("after the first solve", func(t *testing.T) {
		prob := createProblem(t, env.probRepo, problem.Problem{
			Slug: "two-sum", Title: "Two Sum", Description: "d",
			Category: "Arrays", Difficulty: problem.DifficultyEasy, XPReward: 100, SortOrder: 1,
		})
		if _, err := env.probSvc.Submit(context.Background(), usr.ID, prob.ID, problem.NewSubmission{Code: "ok", Language: "python"}); err != nil {
			t.Fatalf("submitting: %v", err)
		}
		earned, err := env.badgeRepo.QueryUserBadges(usr.ID)
		if err != nil {
			t.Fatalf("QueryUserBadges() failed: %v", err)
		}

		tt := httpTest{wantCode: http.StatusOK, wantData: marchallObj(t, earned)}
		rec := env.serve(newAuthRequest(http.MethodGet, "/api/user/badges", token))
		checkCodeAndData(t, tt, rec)

		if len(earned) != 1 || earned[0].Slug != "first-blood" {
			t.Errorf("earned = %+v; want just first-blood", earned)
		}
	})
}
