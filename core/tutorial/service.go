package tutorial

import (
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/zoezi/core"
	"github.com/trezcool/zoezi/core/user"
)

var (
	// errors
	ErrNotFound       = errors.New("tutorial not found")
	ErrLessonNotFound = errors.New("lesson not found")
)

type (
	Repository interface {
		CreateTutorial(tut Tutorial) (Tutorial, error)
		QueryAllTutorials() ([]Tutorial, error)
		// GetTutorialBySlug returns the tutorial with its lessons ordered by sort order.
		GetTutorialBySlug(slug string) (Tutorial, error)
		GetLessonByID(id int) (Lesson, error)
		// MarkLessonCompleted records a completion; it reports false when the
		// user had already completed the lesson.
		MarkLessonCompleted(userID, lessonID int, at time.Time) (bool, error)
	}

	Service interface {
		Create(nt NewTutorial) (Tutorial, error)
		QueryAll() ([]Tutorial, error)
		GetBySlug(slug string) (Tutorial, error)
		// CompleteLesson is idempotent per user+lesson; only the first
		// completion awards XP.
		CompleteLesson(userID, lessonID int) (CompletionResult, error)
	}

	service struct {
		repo   Repository
		usrSvc user.Service
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository, usrSvc user.Service) Service {
	return &service{
		repo:   repo,
		usrSvc: usrSvc,
	}
}

func (svc *service) Create(nt NewTutorial) (Tutorial, error) {
	now := time.Now().UTC()
	tut := Tutorial{
		Slug:        core.Slugify(nt.Title),
		Title:       nt.Title,
		Description: nt.Description,
		Category:    nt.Category,
		LessonCount: len(nt.Lessons),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for i, nl := range nt.Lessons {
		tut.Lessons = append(tut.Lessons, Lesson{
			Title:     nl.Title,
			Content:   nl.Content,
			XPReward:  nl.XPReward,
			SortOrder: i + 1,
		})
	}
	return svc.repo.CreateTutorial(tut)
}

func (svc *service) QueryAll() ([]Tutorial, error) {
	return svc.repo.QueryAllTutorials()
}

func (svc *service) GetBySlug(slug string) (Tutorial, error) {
	return svc.repo.GetTutorialBySlug(core.CleanString(slug, true /* lower */))
}

func (svc *service) CompleteLesson(userID, lessonID int) (CompletionResult, error) {
	lesson, err := svc.repo.GetLessonByID(lessonID)
	if err != nil {
		return CompletionResult{}, err
	}

	first, err := svc.repo.MarkLessonCompleted(userID, lesson.ID, time.Now().UTC())
	if err != nil {
		return CompletionResult{}, errors.Wrap(err, "recording lesson completion")
	}
	if !first {
		return CompletionResult{Success: true, XPEarned: 0}, nil
	}

	if _, err = svc.usrSvc.AwardXP(userID, lesson.XPReward); err != nil {
		return CompletionResult{}, errors.Wrap(err, "crediting lesson XP")
	}
	return CompletionResult{Success: true, XPEarned: lesson.XPReward}, nil
}
