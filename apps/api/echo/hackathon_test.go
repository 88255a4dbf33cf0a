package echoapi

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/trezcool/zoezi/core/hackathon"
)

func Test_hackathonApi_query(t *testing.T) {
	env := setupEnv(t)
	now := time.Now().UTC()
	env.hackRepo.LoadEvents([]hackathon.Hackathon{
		{Slug: "summer-jam", Name: "Summer Jam", Theme: "Games", Prize: "Swag",
			StartsAt: now.AddDate(0, 1, 0), EndsAt: now.AddDate(0, 1, 2)},
		{Slug: "spring-sprint", Name: "Spring Sprint", Theme: "CLI tools", Prize: "Swag",
			StartsAt: now.Add(-time.Hour), EndsAt: now.Add(time.Hour)},
		{Slug: "winter-hack", Name: "Winter Hack", Theme: "Bots", Prize: "Swag",
			StartsAt: now.AddDate(0, -2, 0), EndsAt: now.AddDate(0, -2, 2)},
	})

	rec := env.serve(newRequest(http.MethodGet, "/api/hackathons"))
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %v; wantCode %v", rec.Code, http.StatusOK)
	}
	var events []hackathon.Hackathon
	if err := json.Unmarshal(rec.Body.Bytes(), &events); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("len = %d; want 3", len(events))
	}

	// soonest start first, status derived from the event window
	wantSlugs := []string{"winter-hack", "spring-sprint", "summer-jam"}
	wantStatus := []string{hackathon.StatusEnded, hackathon.StatusRunning, hackathon.StatusUpcoming}
	for i, e := range events {
		if e.Slug != wantSlugs[i] {
			t.Errorf("events[%d].Slug = %q; want %q", i, e.Slug, wantSlugs[i])
		}
		if e.Status != wantStatus[i] {
			t.Errorf("events[%d].Status = %q; want %q", i, e.Status, wantStatus[i])
		}
	}
}
