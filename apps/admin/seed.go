package main

import (
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/zoezi/core/problem"
	"github.com/trezcool/zoezi/core/tutorial"
)

var seedProblems = []problem.NewProblem{
	{
		Title:       "Two Sum",
		Description: "Given a list of integers and a target, return the indices of the two numbers that add up to the target.",
		Category:    "arrays",
		Difficulty:  problem.DifficultyEasy,
		XPReward:    50,
		StarterCode: "def two_sum(nums, target):\n    pass\n",
		SortOrder:   1,
	},
	{
		Title:       "Reverse Linked List",
		Description: "Reverse a singly linked list and return the new head.",
		Category:    "linked-lists",
		Difficulty:  problem.DifficultyMedium,
		XPReward:    100,
		StarterCode: "def reverse_list(head):\n    pass\n",
		SortOrder:   1,
	},
	{
		Title:       "Valid Parentheses",
		Description: "Determine whether the input string of brackets is balanced.",
		Category:    "arrays",
		Difficulty:  problem.DifficultyEasy,
		XPReward:    50,
		StarterCode: "def is_valid(s):\n    pass\n",
		SortOrder:   2,
		IsDaily:     true,
		BonusXP:     25,
	},
	{
		Title:       "Word Ladder",
		Description: "Find the length of the shortest transformation sequence between two words.",
		Category:    "graphs",
		Difficulty:  problem.DifficultyHard,
		XPReward:    200,
		StarterCode: "def ladder_length(begin, end, words):\n    pass\n",
		SortOrder:   1,
	},
}

var seedTutorials = []tutorial.NewTutorial{
	{
		Title:       "Getting Started with Python",
		Description: "Variables, control flow and functions from scratch.",
		Category:    "python",
		Lessons: []tutorial.NewLesson{
			{Title: "Variables and Types", Content: "Numbers, strings and how to name things.", XPReward: 10},
			{Title: "Control Flow", Content: "if, for and while.", XPReward: 15},
			{Title: "Functions", Content: "def, arguments and return values.", XPReward: 20},
		},
	},
	{
		Title:       "Data Structures Primer",
		Description: "Arrays, maps and when to reach for each.",
		Category:    "algorithms",
		Lessons: []tutorial.NewLesson{
			{Title: "Arrays and Slices", Content: "Contiguous storage and indexing.", XPReward: 15},
			{Title: "Hash Maps", Content: "Key lookups in constant time.", XPReward: 20},
		},
	},
}

func (cli *commandLine) seed() error {
	for i := range seedProblems {
		np := seedProblems[i]
		if _, err := cli.probSvc.Create(np); err != nil {
			if errors.Cause(err) == problem.ErrSlugTaken {
				continue // already seeded
			}
			return errors.Wrapf(err, "seeding problem %q", np.Title)
		}
	}

	for i := range seedTutorials {
		nt := seedTutorials[i]
		if _, err := cli.tutSvc.Create(nt); err != nil {
			return errors.Wrapf(err, "seeding tutorial %q", nt.Title)
		}
	}

	now := time.Now().UTC()
	q := `
	INSERT INTO hackathons (slug, name, theme, prize, starts_at, ends_at)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (slug) DO NOTHING`
	if _, err := cli.db.Exec(q,
		"summer-code-jam", "Summer Code Jam", "Build a game in 48 hours", "Mechanical keyboard",
		now.AddDate(0, 0, 7), now.AddDate(0, 0, 9),
	); err != nil {
		return errors.Wrap(err, "seeding hackathon")
	}
	return nil
}
