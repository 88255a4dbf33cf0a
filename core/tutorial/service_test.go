package tutorial_test

import (
	"testing"

	"github.com/pkg/errors"

	"github.com/trezcool/zoezi/core/tutorial"
	"github.com/trezcool/zoezi/core/user"
	emailsvc "github.com/trezcool/zoezi/services/email"
	inmemdb "github.com/trezcool/zoezi/storage/database/inmem"
)

func newTestSvc(t *testing.T) (tutorial.Service, user.Service) {
	t.Helper()
	db := inmemdb.NewDB()
	usrSvc := user.NewService(inmemdb.NewUserRepository(db), emailsvc.NewConsoleServiceMock())
	return tutorial.NewService(inmemdb.NewTutorialRepository(db), usrSvc), usrSvc
}

func addUser(t *testing.T, usrSvc user.Service) user.User {
	t.Helper()
	usr, err := usrSvc.Create(user.NewUser{
		Name:            "Jane",
		Username:        "jane",
		Email:           "jane@test.test",
		Password:        "pwd",
		PasswordConfirm: "pwd",
	})
	if err != nil {
		t.Fatalf("creating user: %v", err)
	}
	return usr
}

func TestService_Create(t *testing.T) {
	svc, _ := newTestSvc(t)

	tut, err := svc.Create(tutorial.NewTutorial{
		Title:       "Python Basics",
		Description: "Start here.",
		Category:    "Python",
		Lessons: []tutorial.NewLesson{
			{Title: "Variables", Content: "x = 1", XPReward: 10},
			{Title: "Loops", Content: "for x in xs:", XPReward: 15},
		},
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if tut.Slug != "python-basics" {
		t.Errorf("Slug = %q, want python-basics", tut.Slug)
	}
	if tut.LessonCount != 2 {
		t.Errorf("LessonCount = %d, want 2", tut.LessonCount)
	}

	got, err := svc.GetBySlug("Python-Basics")
	if err != nil {
		t.Fatalf("GetBySlug() error = %v", err)
	}
	if len(got.Lessons) != 2 {
		t.Fatalf("len(Lessons) = %d, want 2", len(got.Lessons))
	}
	if got.Lessons[0].Title != "Variables" || got.Lessons[0].SortOrder != 1 {
		t.Errorf("Lessons[0] = %+v, want Variables first", got.Lessons[0])
	}
	if got.Lessons[1].SortOrder != 2 {
		t.Errorf("Lessons[1].SortOrder = %d, want 2", got.Lessons[1].SortOrder)
	}
}

func TestService_GetBySlug_notFound(t *testing.T) {
	svc, _ := newTestSvc(t)
	if _, err := svc.GetBySlug("nope"); errors.Cause(err) != tutorial.ErrNotFound {
		t.Errorf("GetBySlug() error = %v, want %v", err, tutorial.ErrNotFound)
	}
}

func TestService_CompleteLesson(t *testing.T) {
	svc, usrSvc := newTestSvc(t)
	usr := addUser(t, usrSvc)

	tut, err := svc.Create(tutorial.NewTutorial{
		Title:       "Python Basics",
		Description: "Start here.",
		Category:    "Python",
		Lessons: []tutorial.NewLesson{
			{Title: "Variables", Content: "x = 1", XPReward: 10},
		},
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	tut, err = svc.GetBySlug(tut.Slug)
	if err != nil {
		t.Fatalf("GetBySlug() error = %v", err)
	}
	lesson := tut.Lessons[0]

	t.Run("unknown lesson", func(t *testing.T) {
		if _, err := svc.CompleteLesson(usr.ID, 999); errors.Cause(err) != tutorial.ErrLessonNotFound {
			t.Errorf("CompleteLesson() error = %v, want %v", err, tutorial.ErrLessonNotFound)
		}
	})

	t.Run("first completion awards XP", func(t *testing.T) {
		res, err := svc.CompleteLesson(usr.ID, lesson.ID)
		if err != nil {
			t.Fatalf("CompleteLesson() error = %v", err)
		}
		if !res.Success || res.XPEarned != 10 {
			t.Errorf("CompleteLesson() = %+v, want success with 10 XP", res)
		}

		got, _ := usrSvc.GetByID(usr.ID)
		if got.XP != 10 {
			t.Errorf("XP = %d, want 10", got.XP)
		}
		if got.Streak != 0 {
			t.Errorf("Streak = %d, want 0; lessons do not extend streaks", got.Streak)
		}
	})

	t.Run("repeat completion is a no-op", func(t *testing.T) {
		res, err := svc.CompleteLesson(usr.ID, lesson.ID)
		if err != nil {
			t.Fatalf("CompleteLesson() error = %v", err)
		}
		if !res.Success || res.XPEarned != 0 {
			t.Errorf("CompleteLesson() = %+v, want success with 0 XP", res)
		}

		got, _ := usrSvc.GetByID(usr.ID)
		if got.XP != 10 {
			t.Errorf("XP = %d, want 10", got.XP)
		}
	})
}
