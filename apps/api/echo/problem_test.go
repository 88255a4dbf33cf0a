package echoapi

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/trezcool/zoezi/core/problem"
	"github.com/trezcool/zoezi/core/user"
)

func seedProblems(t *testing.T, env *testEnv) (twoSum, threeSum, reverse problem.Problem) {
	t.Helper()

	twoSum = createProblem(t, env.probRepo, problem.Problem{
		Slug: "two-sum", Title: "Two Sum", Description: "Find two numbers that add up to a target.",
		Category: "Arrays", Difficulty: problem.DifficultyEasy, XPReward: 100, SortOrder: 1,
	})
	threeSum = createProblem(t, env.probRepo, problem.Problem{
		Slug: "three-sum", Title: "Three Sum", Description: "Find three numbers that add up to a target.",
		Category: "Arrays", Difficulty: problem.DifficultyMedium, XPReward: 150, SortOrder: 2,
	})
	reverse = createProblem(t, env.probRepo, problem.Problem{
		Slug: "reverse-string", Title: "Reverse String", Description: "Reverse a string in place.",
		Category: "Strings", Difficulty: problem.DifficultyEasy, XPReward: 80, SortOrder: 1,
	})
	return twoSum, threeSum, reverse
}

func withSolved(prob problem.Problem, solved bool) problem.Problem {
	prob.IsSolved = boolPtr(solved)
	return prob
}

func Test_problemApi_query(t *testing.T) {
	env := setupEnv(t)
	twoSum, threeSum, reverse := seedProblems(t, env)

	usr := createUser(t, env.usrRepo, "Jane", "jane", "pwd", nil, true)
	if _, err := env.probSvc.Submit(context.Background(), usr.ID, twoSum.ID, problem.NewSubmission{Code: "ok", Language: "python"}); err != nil {
		t.Fatalf("submitting: %v", err)
	}
	token := getToken(t, usr)

	tests := []httpTest{
		{name: "all (anonymous)", path: "/api/problems",
			wantData: marchallObj(t, []problem.Problem{twoSum, threeSum, reverse})},
		{name: "category filter", path: "/api/problems?category=Strings",
			wantData: marchallObj(t, []problem.Problem{reverse})},
		{name: "difficulty filter", path: "/api/problems?difficulty=Medium",
			wantData: marchallObj(t, []problem.Problem{threeSum})},
		{name: "search", path: "/api/problems?search=reverse",
			wantData: marchallObj(t, []problem.Problem{reverse})},
		{name: "no match", path: "/api/problems?category=Graphs",
			wantData: marchallObj(t, []problem.Problem{})},
		{name: "authenticated gets solved flags", path: "/api/problems", token: token,
			wantData: marchallObj(t, []problem.Problem{withSolved(twoSum, true), withSolved(threeSum, false), withSolved(reverse, false)})},
	}
	for _, tt := range tests {
		tt.method = http.MethodGet
		tt.wantCode = http.StatusOK

		t.Run(tt.name, func(t *testing.T) {
			rec := env.serve(newAuthRequest(tt.method, tt.path, tt.token))
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_problemApi_retrieve(t *testing.T) {
	env := setupEnv(t)
	twoSum, _, _ := seedProblems(t, env)

	usr := createUser(t, env.usrRepo, "Jane", "jane", "pwd", nil, true)
	token := getToken(t, usr)

	tests := []httpTest{
		{name: "found", path: "/api/problems/two-sum", wantCode: http.StatusOK,
			wantData: marchallObj(t, twoSum)},
		{name: "unknown slug", path: "/api/problems/no-such-slug", wantCode: http.StatusNotFound,
			wantData: marchallObj(t, errNotFound)},
		{name: "authenticated gets solved flag", path: "/api/problems/two-sum", token: token, wantCode: http.StatusOK,
			wantData: marchallObj(t, withSolved(twoSum, false))},
	}
	for _, tt := range tests {
		tt.method = http.MethodGet

		t.Run(tt.name, func(t *testing.T) {
			rec := env.serve(newAuthRequest(tt.method, tt.path, tt.token))
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_problemApi_daily(t *testing.T) {
	env := setupEnv(t)

	t.Run("none set", func(t *testing.T) {
		tt := httpTest{wantCode: http.StatusNotFound, wantData: marchallObj(t, errNotFound)}
		rec := env.serve(newRequest(http.MethodGet, "/api/problems/daily"))
		checkCodeAndData(t, tt, rec)
	})

	daily := createProblem(t, env.probRepo, problem.Problem{
		Slug: "valid-parentheses", Title: "Valid Parentheses", Description: "Check bracket balance.",
		Category: "Stacks", Difficulty: problem.DifficultyMedium, XPReward: 150, IsDaily: true, BonusXP: 25,
	})

	t.Run("set", func(t *testing.T) {
		tt := httpTest{wantCode: http.StatusOK, wantData: marchallObj(t, daily)}
		rec := env.serve(newRequest(http.MethodGet, "/api/problems/daily"))
		checkCodeAndData(t, tt, rec)
	})
}

func Test_problemApi_submit(t *testing.T) {
	env := setupEnv(t)
	twoSum, threeSum, _ := seedProblems(t, env)

	usr := createUser(t, env.usrRepo, "Jane", "jane", "pwd", nil, true)
	token := getToken(t, usr)
	body := marchallObj(t, problem.NewSubmission{Code: "return sorted(nums)", Language: "python"})

	t.Run("auth required", func(t *testing.T) {
		tt := httpTest{wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)}
		rec := env.serve(newRequest(http.MethodPost, "/api/problems/1/submit", body))
		checkCodeAndData(t, tt, rec)
	})

	t.Run("unknown problem", func(t *testing.T) {
		tt := httpTest{wantCode: http.StatusNotFound, wantData: marchallObj(t, errNotFound)}
		rec := env.serve(newAuthRequest(http.MethodPost, "/api/problems/999/submit", token, body))
		checkCodeAndData(t, tt, rec)
	})

	t.Run("missing code is rejected", func(t *testing.T) {
		rec := env.serve(newAuthRequest(http.MethodPost, "/api/problems/1/submit", token,
			marchallObj(t, problem.NewSubmission{Language: "python"})))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("code = %v; wantCode %v", rec.Code, http.StatusBadRequest)
		}
		var fldErrs map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &fldErrs); err != nil {
			t.Fatalf("decoding body: %v", err)
		}
		if _, ok := fldErrs["code"]; !ok {
			t.Errorf("expected a field error on code; got %v", fldErrs)
		}
	})

	t.Run("passing submission", func(t *testing.T) {
		rec := env.serve(newAuthRequest(http.MethodPost, "/api/problems/1/submit", token, body))
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v; wantCode %v; body %s", rec.Code, http.StatusOK, rec.Body.String())
		}
		var res problem.SubmitResult
		if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
			t.Fatalf("decoding body: %v", err)
		}
		if !res.Success || !res.Passed {
			t.Errorf("res = %+v; want a passing result", res)
		}
		if res.XPEarned != twoSum.XPReward {
			t.Errorf("XPEarned = %d; want %d", res.XPEarned, twoSum.XPReward)
		}
		if res.NextProblemSlug != threeSum.Slug {
			t.Errorf("NextProblemSlug = %q; want %q", res.NextProblemSlug, threeSum.Slug)
		}
	})

	t.Run("repeat earns nothing", func(t *testing.T) {
		rec := env.serve(newAuthRequest(http.MethodPost, "/api/problems/1/submit", token, body))
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v; wantCode %v", rec.Code, http.StatusOK)
		}
		var res problem.SubmitResult
		if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
			t.Fatalf("decoding body: %v", err)
		}
		if res.XPEarned != 0 {
			t.Errorf("XPEarned = %d; want 0", res.XPEarned)
		}
	})
}

func Test_problemApi_create(t *testing.T) {
	env := setupEnv(t)

	learner := createUser(t, env.usrRepo, "Jane", "jane", "pwd", nil, true)
	admin := createUser(t, env.usrRepo, "Root", "root", "pwd", user.AllRoles, true)
	learnerToken := getToken(t, learner)
	adminToken := getToken(t, admin)

	body := marchallObj(t, problem.NewProblem{
		Title: "Graph Paths", Description: "Count the paths between two nodes.",
		Category: "Graphs", Difficulty: problem.DifficultyHard, XPReward: 200, SortOrder: 1,
	})

	t.Run("auth required", func(t *testing.T) {
		tt := httpTest{wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)}
		rec := env.serve(newRequest(http.MethodPost, "/api/problems", body))
		checkCodeAndData(t, tt, rec)
	})

	t.Run("learner is forbidden", func(t *testing.T) {
		tt := httpTest{wantCode: http.StatusForbidden, wantData: marchallObj(t, httpErr{Error: "Forbidden"})}
		rec := env.serve(newAuthRequest(http.MethodPost, "/api/problems", learnerToken, body))
		checkCodeAndData(t, tt, rec)
	})

	t.Run("admin creates", func(t *testing.T) {
		rec := env.serve(newAuthRequest(http.MethodPost, "/api/problems", adminToken, body))
		if rec.Code != http.StatusCreated {
			t.Fatalf("code = %v; wantCode %v; body %s", rec.Code, http.StatusCreated, rec.Body.String())
		}
		var prob problem.Problem
		if err := json.Unmarshal(rec.Body.Bytes(), &prob); err != nil {
			t.Fatalf("decoding body: %v", err)
		}
		if prob.Slug != "graph-paths" {
			t.Errorf("Slug = %q; want %q", prob.Slug, "graph-paths")
		}
		if prob.XPReward != 200 {
			t.Errorf("XPReward = %d; want 200", prob.XPReward)
		}
	})

	t.Run("duplicate title is rejected", func(t *testing.T) {
		rec := env.serve(newAuthRequest(http.MethodPost, "/api/problems", adminToken, body))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("code = %v; wantCode %v", rec.Code, http.StatusBadRequest)
		}
		var fldErrs map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &fldErrs); err != nil {
			t.Fatalf("decoding body: %v", err)
		}
		if _, ok := fldErrs["title"]; !ok {
			t.Errorf("expected a field error on title; got %v", fldErrs)
		}
	})

	t.Run("missing fields are rejected", func(t *testing.T) {
		rec := env.serve(newAuthRequest(http.MethodPost, "/api/problems", adminToken,
			marchallObj(t, problem.NewProblem{Title: "Lone Title"})))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("code = %v; wantCode %v", rec.Code, http.StatusBadRequest)
		}
		var fldErrs map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &fldErrs); err != nil {
			t.Fatalf("decoding body: %v", err)
		}
		for _, fld := range []string{"description", "category", "difficulty", "xpReward"} {
			if _, ok := fldErrs[fld]; !ok {
				t.Errorf("expected a field error on %s; got %v", fld, fldErrs)
			}
		}
	})
}
