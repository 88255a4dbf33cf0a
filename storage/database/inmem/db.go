// Package inmemdb provides map-backed repositories for tests and local tooling.
package inmemdb

import (
	"sync"
	"time"

	"github.com/trezcool/zoezi/core/badge"
	"github.com/trezcool/zoezi/core/discussion"
	"github.com/trezcool/zoezi/core/hackathon"
	"github.com/trezcool/zoezi/core/problem"
	"github.com/trezcool/zoezi/core/tutorial"
	"github.com/trezcool/zoezi/core/user"
)

type voteKey struct {
	discussionID int
	userID       int
}

// userItemKey pairs a user with a lesson or badge.
type userItemKey struct {
	userID int
	itemID int
}

type DB struct {
	mutex sync.RWMutex
	seq   int

	users             map[int]*user.User
	problems          map[int]*problem.Problem
	solutions         map[string]*problem.Solution
	tutorials         map[int]*tutorial.Tutorial
	lessons           map[int]*tutorial.Lesson
	lessonCompletions map[userItemKey]time.Time
	discussions       map[int]*discussion.Discussion
	answers           map[int]*discussion.Answer
	votes             map[voteKey]int
	badges            map[int]*badge.Badge
	userBadges        map[userItemKey]time.Time
	hackathons        map[int]*hackathon.Hackathon
}

func NewDB() *DB {
	return &DB{
		users:             make(map[int]*user.User),
		problems:          make(map[int]*problem.Problem),
		solutions:         make(map[string]*problem.Solution),
		tutorials:         make(map[int]*tutorial.Tutorial),
		lessons:           make(map[int]*tutorial.Lesson),
		lessonCompletions: make(map[userItemKey]time.Time),
		discussions:       make(map[int]*discussion.Discussion),
		answers:           make(map[int]*discussion.Answer),
		votes:             make(map[voteKey]int),
		badges:            make(map[int]*badge.Badge),
		userBadges:        make(map[userItemKey]time.Time),
		hackathons:        make(map[int]*hackathon.Hackathon),
	}
}

// nextPK must be called with the write lock held.
func (db *DB) nextPK() int {
	db.seq++
	return db.seq
}
