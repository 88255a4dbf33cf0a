package echoapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"testing"

	"github.com/trezcool/zoezi/core/discussion"
)

func Test_discussionApi_queryAndRetrieve(t *testing.T) {
	env := setupEnv(t)
	author := createUser(t, env.usrRepo, "Jane", "jane", "pwd", nil, true)

	first, err := env.discSvc.Create(author.ID, discussion.NewDiscussion{Title: "How do I reverse a list?", Content: "Is there a builtin?", Tags: []string{"python"}})
	if err != nil {
		t.Fatalf("creating discussion: %v", err)
	}
	second, err := env.discSvc.Create(author.ID, discussion.NewDiscussion{Title: "What is a closure?", Content: "Saw it in the tutorial."})
	if err != nil {
		t.Fatalf("creating discussion: %v", err)
	}

	t.Run("list is recent first", func(t *testing.T) {
		rec := env.serve(newRequest(http.MethodGet, "/api/discussions"))
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v; wantCode %v", rec.Code, http.StatusOK)
		}
		var ds []discussion.Discussion
		if err := json.Unmarshal(rec.Body.Bytes(), &ds); err != nil {
			t.Fatalf("decoding body: %v", err)
		}
		if len(ds) != 2 || ds[0].ID != second.ID || ds[1].ID != first.ID {
			t.Errorf("list = %+v; want [%d %d]", ds, second.ID, first.ID)
		}
	})

	t.Run("retrieve", func(t *testing.T) {
		got, err := env.discSvc.GetByID(first.ID)
		if err != nil {
			t.Fatalf("GetByID() failed: %v", err)
		}
		got.Answers = []discussion.Answer{} // the detail view always carries the list
		tt := httpTest{wantCode: http.StatusOK, wantData: marchallObj(t, got)}
		rec := env.serve(newRequest(http.MethodGet, "/api/discussions/"+strconv.Itoa(first.ID)))
		checkCodeAndData(t, tt, rec)
	})

	t.Run("unknown id", func(t *testing.T) {
		tt := httpTest{wantCode: http.StatusNotFound, wantData: marchallObj(t, errNotFound)}
		rec := env.serve(newRequest(http.MethodGet, "/api/discussions/999"))
		checkCodeAndData(t, tt, rec)
	})
}

func Test_discussionApi_create(t *testing.T) {
	env := setupEnv(t)
	author := createUser(t, env.usrRepo, "Jane", "jane", "pwd", nil, true)
	token := getToken(t, author)
	body := marchallObj(t, discussion.NewDiscussion{Title: "How do I reverse a list?", Content: "Is there a builtin?"})

	t.Run("auth required", func(t *testing.T) {
		tt := httpTest{wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)}
		rec := env.serve(newRequest(http.MethodPost, "/api/discussions", body))
		checkCodeAndData(t, tt, rec)
	})

	t.Run("missing fields", func(t *testing.T) {
		rec := env.serve(newAuthRequest(http.MethodPost, "/api/discussions", token, marchallObj(t, discussion.NewDiscussion{})))
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

	t.Run("ok", func(t *testing.T) {
		rec := env.serve(newAuthRequest(http.MethodPost, "/api/discussions", token, body))
		if rec.Code != http.StatusCreated {
			t.Fatalf("code = %v; wantCode %v; body %s", rec.Code, http.StatusCreated, rec.Body.String())
		}
		var d discussion.Discussion
		if err := json.Unmarshal(rec.Body.Bytes(), &d); err != nil {
			t.Fatalf("decoding body: %v", err)
		}
		if d.AuthorID != author.ID || d.AuthorName != "jane" {
			t.Errorf("author = %d %q; want %d jane", d.AuthorID, d.AuthorName, author.ID)
		}
	})
}

func Test_discussionApi_answer(t *testing.T) {
	env := setupEnv(t)
	author := createUser(t, env.usrRepo, "Jane", "jane", "pwd", nil, true)
	helper := createUser(t, env.usrRepo, "Joe", "joe", "pwd", nil, true)
	token := getToken(t, helper)

	d, err := env.discSvc.Create(author.ID, discussion.NewDiscussion{Title: "How do I reverse a list?", Content: "c"})
	if err != nil {
		t.Fatalf("creating discussion: %v", err)
	}
	body := marchallObj(t, discussion.NewAnswer{Content: "Use reversed()."})
	path := "/api/discussions/" + strconv.Itoa(d.ID) + "/answers"

	t.Run("auth required", func(t *testing.T) {
		tt := httpTest{wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)}
		rec := env.serve(newRequest(http.MethodPost, path, body))
		checkCodeAndData(t, tt, rec)
	})

	t.Run("unknown discussion", func(t *testing.T) {
		tt := httpTest{wantCode: http.StatusNotFound, wantData: marchallObj(t, errNotFound)}
		rec := env.serve(newAuthRequest(http.MethodPost, "/api/discussions/999/answers", token, body))
		checkCodeAndData(t, tt, rec)
	})

	t.Run("ok", func(t *testing.T) {
		tt := httpTest{wantCode: http.StatusOK, wantData: marchallObj(t, discussion.AnswerResult{Success: true})}
		rec := env.serve(newAuthRequest(http.MethodPost, path, token, body))
		checkCodeAndData(t, tt, rec)

		got, err := env.discSvc.GetByID(d.ID)
		if err != nil {
			t.Fatalf("GetByID() failed: %v", err)
		}
		if len(got.Answers) != 1 || got.Answers[0].AuthorName != "joe" {
			t.Errorf("answers = %+v; want one by joe", got.Answers)
		}
	})
}

func Test_discussionApi_vote(t *testing.T) {
	env := setupEnv(t)
	author := createUser(t, env.usrRepo, "Jane", "jane", "pwd", nil, true)
	voter := createUser(t, env.usrRepo, "Joe", "joe", "pwd", nil, true)
	token := getToken(t, voter)

	d, err := env.discSvc.Create(author.ID, discussion.NewDiscussion{Title: "How do I reverse a list?", Content: "c"})
	if err != nil {
		t.Fatalf("creating discussion: %v", err)
	}
	path := "/api/discussions/" + strconv.Itoa(d.ID) + "/vote"

	t.Run("auth required", func(t *testing.T) {
		tt := httpTest{wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)}
		rec := env.serve(newRequest(http.MethodPost, path, marchallObj(t, discussion.Vote{Value: 1})))
		checkCodeAndData(t, tt, rec)
	})

	t.Run("invalid value", func(t *testing.T) {
		rec := env.serve(newAuthRequest(http.MethodPost, path, token, marchallObj(t, discussion.Vote{Value: 5})))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("code = %v; wantCode %v", rec.Code, http.StatusBadRequest)
		}
	})

	t.Run("upvote then switch", func(t *testing.T) {
		tt := httpTest{wantCode: http.StatusOK, wantData: marchallObj(t, discussion.VoteResult{Success: true, NewCount: 1})}
		rec := env.serve(newAuthRequest(http.MethodPost, path, token, marchallObj(t, discussion.Vote{Value: 1})))
		checkCodeAndData(t, tt, rec)

		// same voter flips the vote; it does not stack
		tt = httpTest{wantCode: http.StatusOK, wantData: marchallObj(t, discussion.VoteResult{Success: true, NewCount: -1})}
		rec = env.serve(newAuthRequest(http.MethodPost, path, token, marchallObj(t, discussion.Vote{Value: -1})))
		checkCodeAndData(t, tt, rec)
	})
}
