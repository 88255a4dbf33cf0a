package user

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/trezcool/zoezi/core"
)

// Roles
const (
	// Admin
	RoleAdmin      = "admin:"
	RoleAdminOwner = "admin:owner"

	// Moderator (forums)
	RoleModerator = "moderator:"

	// Learner
	RoleLearner = "learner:"
)

var (
	AdminRoles     = []string{RoleAdmin, RoleAdminOwner}
	ModeratorRoles = []string{RoleModerator}
	LearnerRoles   = []string{RoleLearner}
	AllRoles       = getAllRoles()

	rolePriorities = map[string]int{
		// Admins: 30 - 21
		RoleAdminOwner: 30,
		RoleAdmin:      21,

		// Moderators: 20 - 11
		RoleModerator: 11,

		// Learners: 10 - 1
		RoleLearner: 1,
	}

	Roles = []Role{
		{Name: "Learner", Value: RoleLearner},
		{Name: "Moderator", Value: RoleModerator},
		{Name: "Admin", Value: RoleAdmin},
		{Name: "Admin Owner", Value: RoleAdminOwner},
	}
)

func getAllRoles() []string {
	all := make([]string, 0, 4)
	all = append(all, AdminRoles...)
	all = append(all, ModeratorRoles...)
	all = append(all, LearnerRoles...)
	return all
}

func RolePriority(role string) int {
	return rolePriorities[role]
}

func MaxRolePriority(roles []string) int {
	var max int
	for _, role := range roles {
		if RolePriority(role) > max {
			max = RolePriority(role)
		}
	}
	return max
}

type Role struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// xpPerLevelStep is the XP cost of the first level-up; each subsequent
// level-up costs one more step. Cumulative XP needed to reach level n is
// (n-1)n/2 * step.
const xpPerLevelStep = 100

// LevelForXP returns the level a user with the given cumulative XP has reached.
// Levels start at 1.
func LevelForXP(xp int) int {
	lvl := 1
	for (lvl*(lvl+1)/2)*xpPerLevelStep <= xp {
		lvl++
	}
	return lvl
}

// XPToNextLevel returns the XP still missing to reach the next level.
func XPToNextLevel(xp int) int {
	lvl := LevelForXP(xp)
	return (lvl*(lvl+1)/2)*xpPerLevelStep - xp
}

type User struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	IsActive     bool      `json:"is_active"`
	Roles        []string  `json:"roles"`
	XP           int       `json:"xp"`
	Level        int       `json:"level"`
	Streak       int       `json:"streak"`
	LastSolvedAt time.Time `json:"last_solved_at"` // UTC; zero when nothing solved yet
	PasswordHash []byte    `json:"-"`
	CreatedAt    time.Time `json:"created_at"` // UTC
	UpdatedAt    time.Time `json:"updated_at"` // UTC
	LastLogin    time.Time `json:"last_login"` // UTC
}

func (u *User) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

func (u *User) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(pwd))
}

// AddXP credits points and recomputes the level.
func (u *User) AddXP(points int) {
	u.XP += points
	u.Level = LevelForXP(u.XP)
}

// TouchStreak updates the daily solving streak for a solve happening at `now`:
// first ever solve or a gap of more than one UTC day resets the streak to 1,
// a solve on the day following the last one extends it, a second solve on the
// same day leaves it untouched.
func (u *User) TouchStreak(now time.Time) {
	now = now.UTC()
	switch {
	case u.LastSolvedAt.IsZero():
		u.Streak = 1
	case sameDay(u.LastSolvedAt, now):
		// already counted today
	case sameDay(u.LastSolvedAt.AddDate(0, 0, 1), now):
		u.Streak++
	default:
		u.Streak = 1
	}
	u.LastSolvedAt = now
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

func (u *User) RoleStartsWith(prefix string) bool {
	for _, role := range u.Roles {
		if strings.HasPrefix(role, prefix) {
			return true
		}
	}
	return false
}

func (u *User) IsAdmin() bool {
	return u.RoleStartsWith(RoleAdmin)
}

func (u *User) IsModerator() bool {
	return u.RoleStartsWith(RoleModerator)
}

// NewUser contains information needed to create a new User.
type NewUser struct {
	Name            string   `json:"name" validate:"required"`
	Username        string   `json:"username" validate:"required,min=3,alphanum_"`
	Email           string   `json:"email" validate:"required,email"`
	Password        string   `json:"password" validate:"required"`
	PasswordConfirm string   `json:"password_confirm" validate:"required,eqfield=Password"`
	Roles           []string `json:"roles"`
}

func (nu *NewUser) Validate(svc Service) error {
	nu.Name = core.CleanString(nu.Name)
	nu.Username = core.CleanString(nu.Username, true /* lower */)
	nu.Email = core.CleanString(nu.Email, true /* lower */)

	if err := core.Validate.Struct(nu); err != nil {
		return err
	}
	return svc.CheckUniqueness(nu.Username, nu.Email)
}

// Stats is the authenticated user's progress summary.
type Stats struct {
	UserID      int    `json:"userId"`
	Username    string `json:"username"`
	XP          int    `json:"xp"`
	Level       int    `json:"level"`
	Streak      int    `json:"streak"`
	SolvedCount int    `json:"solvedCount"`
	NextLevelXP int    `json:"nextLevelXp"`
}

// Profile is the public view of a user.
type Profile struct {
	UserID      int         `json:"userId"`
	Username    string      `json:"username"`
	XP          int         `json:"xp"`
	Level       int         `json:"level"`
	SolvedCount int         `json:"solvedCount"`
	Streak      int         `json:"streak"`
	Badges      []EarnedRef `json:"badges"`
	JoinedAt    time.Time   `json:"joinedAt"`
}

// EarnedRef is a badge reference embedded in a Profile.
type EarnedRef struct {
	Slug     string    `json:"slug"`
	Name     string    `json:"name"`
	EarnedAt time.Time `json:"earnedAt"`
}
