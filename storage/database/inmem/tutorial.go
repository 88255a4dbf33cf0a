package inmemdb

import (
	"sort"
	"time"

	"github.com/trezcool/zoezi/core/tutorial"
)

type tutorialRepository struct {
	db *DB
}

var _ tutorial.Repository = (*tutorialRepository)(nil) // interface compliance check

func NewTutorialRepository(db *DB) *tutorialRepository {
	return &tutorialRepository{db: db}
}

func (repo *tutorialRepository) lessonsFor(tutorialID int) []tutorial.Lesson {
	var lessons []tutorial.Lesson
	for _, l := range repo.db.lessons {
		if l.TutorialID == tutorialID {
			lessons = append(lessons, *l)
		}
	}
	sort.Slice(lessons, func(i, j int) bool { return lessons[i].SortOrder < lessons[j].SortOrder })
	return lessons
}

func (repo *tutorialRepository) CreateTutorial(tut tutorial.Tutorial) (tutorial.Tutorial, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	tut.ID = repo.db.nextPK()
	for i := range tut.Lessons {
		l := &tut.Lessons[i]
		l.ID = repo.db.nextPK()
		l.TutorialID = tut.ID
		lesson := *l
		repo.db.lessons[lesson.ID] = &lesson
	}

	stored := tut
	stored.Lessons = nil
	repo.db.tutorials[tut.ID] = &stored
	return tut, nil
}

func (repo *tutorialRepository) QueryAllTutorials() ([]tutorial.Tutorial, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	tuts := make([]tutorial.Tutorial, 0, len(repo.db.tutorials))
	for _, t := range repo.db.tutorials {
		tut := *t
		tut.LessonCount = len(repo.lessonsFor(tut.ID))
		tuts = append(tuts, tut)
	}
	sort.Slice(tuts, func(i, j int) bool {
		if tuts[i].Category != tuts[j].Category {
			return tuts[i].Category < tuts[j].Category
		}
		return tuts[i].ID < tuts[j].ID
	})
	return tuts, nil
}

func (repo *tutorialRepository) GetTutorialBySlug(slug string) (tutorial.Tutorial, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	for _, t := range repo.db.tutorials {
		if t.Slug == slug {
			tut := *t
			tut.Lessons = repo.lessonsFor(tut.ID)
			tut.LessonCount = len(tut.Lessons)
			return tut, nil
		}
	}
	return tutorial.Tutorial{}, tutorial.ErrNotFound
}

func (repo *tutorialRepository) GetLessonByID(id int) (tutorial.Lesson, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if l, ok := repo.db.lessons[id]; ok {
		return *l, nil
	}
	return tutorial.Lesson{}, tutorial.ErrLessonNotFound
}

func (repo *tutorialRepository) MarkLessonCompleted(userID, lessonID int, at time.Time) (bool, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	key := userItemKey{userID: userID, itemID: lessonID}
	if _, done := repo.db.lessonCompletions[key]; done {
		return false, nil
	}
	repo.db.lessonCompletions[key] = at.UTC()
	return true, nil
}
