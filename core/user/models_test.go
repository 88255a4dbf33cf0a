package user

import (
	"testing"
	"time"
)

func TestLevelForXP(t *testing.T) {
	tests := []struct {
		xp   int
		want int
	}{
		{xp: 0, want: 1},
		{xp: 99, want: 1},
		{xp: 100, want: 2},
		{xp: 299, want: 2},
		{xp: 300, want: 3},
		{xp: 599, want: 3},
		{xp: 600, want: 4},
		{xp: 999, want: 4},
		{xp: 1000, want: 5},
		{xp: 1499, want: 5},
		{xp: 1500, want: 6},
	}
	for _, tt := range tests {
		if got := LevelForXP(tt.xp); got != tt.want {
			t.Errorf("LevelForXP(%d) = %d, want %d", tt.xp, got, tt.want)
		}
	}
}

func TestXPToNextLevel(t *testing.T) {
	tests := []struct {
		xp   int
		want int
	}{
		{xp: 0, want: 100},
		{xp: 99, want: 1},
		{xp: 100, want: 200},
		{xp: 350, want: 250},
	}
	for _, tt := range tests {
		if got := XPToNextLevel(tt.xp); got != tt.want {
			t.Errorf("XPToNextLevel(%d) = %d, want %d", tt.xp, got, tt.want)
		}
	}
}

func TestUser_AddXP(t *testing.T) {
	usr := User{XP: 90, Level: 1}
	usr.AddXP(60)
	if usr.XP != 150 {
		t.Errorf("XP = %d, want 150", usr.XP)
	}
	if usr.Level != 2 {
		t.Errorf("Level = %d, want 2", usr.Level)
	}
}

func TestUser_TouchStreak(t *testing.T) {
	day := func(d int, h int) time.Time {
		return time.Date(2021, time.March, d, h, 0, 0, 0, time.UTC)
	}

	tests := []struct {
		name         string
		lastSolvedAt time.Time
		streak       int
		now          time.Time
		wantStreak   int
	}{
		{name: "first solve", now: day(10, 12), wantStreak: 1},
		{name: "same day again", lastSolvedAt: day(10, 9), streak: 3, now: day(10, 20), wantStreak: 3},
		{name: "next day extends", lastSolvedAt: day(10, 23), streak: 3, now: day(11, 1), wantStreak: 4},
		{name: "gap resets", lastSolvedAt: day(10, 12), streak: 5, now: day(13, 12), wantStreak: 1},
		{name: "month boundary", lastSolvedAt: time.Date(2021, time.February, 28, 22, 0, 0, 0, time.UTC), streak: 2, now: day(1, 2), wantStreak: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			usr := User{LastSolvedAt: tt.lastSolvedAt, Streak: tt.streak}
			usr.TouchStreak(tt.now)
			if usr.Streak != tt.wantStreak {
				t.Errorf("Streak = %d, want %d", usr.Streak, tt.wantStreak)
			}
			if !usr.LastSolvedAt.Equal(tt.now) {
				t.Errorf("LastSolvedAt = %v, want %v", usr.LastSolvedAt, tt.now)
			}
		})
	}
}

func TestUser_roles(t *testing.T) {
	admin := User{Roles: []string{RoleAdminOwner}}
	mod := User{Roles: []string{RoleModerator, RoleLearner}}
	learner := User{Roles: []string{RoleLearner}}

	if !admin.IsAdmin() {
		t.Error("admin.IsAdmin() = false, want true")
	}
	if mod.IsAdmin() {
		t.Error("mod.IsAdmin() = true, want false")
	}
	if !mod.IsModerator() {
		t.Error("mod.IsModerator() = false, want true")
	}
	if learner.IsAdmin() || learner.IsModerator() {
		t.Error("learner should have no elevated role")
	}
	if got := MaxRolePriority(mod.Roles); got != RolePriority(RoleModerator) {
		t.Errorf("MaxRolePriority = %d, want %d", got, RolePriority(RoleModerator))
	}
}

func TestUser_password(t *testing.T) {
	var usr User
	if err := usr.SetPassword("s3cr3t"); err != nil {
		t.Fatalf("SetPassword() error = %v", err)
	}
	if err := usr.CheckPassword("s3cr3t"); err != nil {
		t.Errorf("CheckPassword() error = %v", err)
	}
	if err := usr.CheckPassword("nope"); err == nil {
		t.Error("CheckPassword() with wrong password: expected error")
	}
}
