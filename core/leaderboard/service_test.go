package leaderboard

import (
	"testing"

	"github.com/pkg/errors"
)

type fakeRepo struct {
	rows []Row
	err  error

	gotLimit int
}

func (r *fakeRepo) QueryTopUsers(limit int) ([]Row, error) {
	r.gotLimit = limit
	if r.err != nil {
		return nil, r.err
	}
	if limit < len(r.rows) {
		return append([]Row(nil), r.rows[:limit]...), nil
	}
	return append([]Row(nil), r.rows...), nil
}

func TestService_Top(t *testing.T) {
	repo := &fakeRepo{rows: []Row{
		{UserID: 3, Username: "ada", XP: 900, Level: 4},
		{UserID: 1, Username: "joe", XP: 400, Level: 3},
		{UserID: 2, Username: "jil", XP: 400, Level: 3},
	}}
	svc := NewService(repo)

	rows, err := svc.Top(10)
	if err != nil {
		t.Fatalf("Top() error = %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("len = %d, want 3", len(rows))
	}
	for i, row := range rows {
		if row.Rank != i+1 {
			t.Errorf("rows[%d].Rank = %d, want %d", i, row.Rank, i+1)
		}
	}
	if rows[0].Username != "ada" {
		t.Errorf("rows[0].Username = %q, want ada", rows[0].Username)
	}
}

func TestService_Top_defaultLimit(t *testing.T) {
	repo := new(fakeRepo)
	svc := NewService(repo)

	if _, err := svc.Top(0); err != nil {
		t.Fatalf("Top() error = %v", err)
	}
	if repo.gotLimit != DefaultLimit {
		t.Errorf("limit = %d, want %d", repo.gotLimit, DefaultLimit)
	}

	if _, err := svc.Top(-5); err != nil {
		t.Fatalf("Top() error = %v", err)
	}
	if repo.gotLimit != DefaultLimit {
		t.Errorf("limit = %d, want %d", repo.gotLimit, DefaultLimit)
	}
}

func TestService_Top_repoError(t *testing.T) {
	repo := &fakeRepo{err: errors.New("boom")}
	svc := NewService(repo)

	if _, err := svc.Top(10); err == nil {
		t.Error("Top() expected error")
	}
}
