package echoapi

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/trezcool/zoezi/core/leaderboard"
	"github.com/trezcool/zoezi/core/user"
)

func Test_leaderboardApi_top(t *testing.T) {
	env := setupEnv(t)

	addRanked := func(uname string, xp int) user.User {
		usr := createUser(t, env.usrRepo, uname, uname, "", nil, true)
		usr.XP = xp
		usr.Level = user.LevelForXP(xp)
		usr, err := env.usrRepo.UpdateUser(usr)
		if err != nil {
			t.Fatalf("updating user: %v", err)
		}
		return usr
	}
	ada := addRanked("ada", 900)
	joe := addRanked("joe", 400)
	jil := addRanked("jil", 150)
	createUser(t, env.usrRepo, "Ghost", "ghost", "", nil, false) // inactive, never listed

	t.Run("ranked by XP", func(t *testing.T) {
		rec := env.serve(newRequest(http.MethodGet, "/api/leaderboard"))
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v; wantCode %v", rec.Code, http.StatusOK)
		}
		var rows []leaderboard.Row
		if err := json.Unmarshal(rec.Body.Bytes(), &rows); err != nil {
			t.Fatalf("decoding body: %v", err)
		}
		if len(rows) != 3 {
			t.Fatalf("len = %d; want 3", len(rows))
		}
		wantOrder := []int{ada.ID, joe.ID, jil.ID}
		for i, row := range rows {
			if row.Rank != i+1 {
				t.Errorf("rows[%d].Rank = %d; want %d", i, row.Rank, i+1)
			}
			if row.UserID != wantOrder[i] {
				t.Errorf("rows[%d].UserID = %d; want %d", i, row.UserID, wantOrder[i])
			}
		}
	})

	t.Run("limit param", func(t *testing.T) {
		rec := env.serve(newRequest(http.MethodGet, "/api/leaderboard?limit=1"))
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v; wantCode %v", rec.Code, http.StatusOK)
		}
		var rows []leaderboard.Row
		if err := json.Unmarshal(rec.Body.Bytes(), &rows); err != nil {
			t.Fatalf("decoding body: %v", err)
		}
		if len(rows) != 1 || rows[0].Username != "ada" {
			t.Errorf("rows = %+v; want just ada", rows)
		}
	})
}
