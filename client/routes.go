package client

import "net/http"

// The route descriptor table: the single source of truth for every
// client-server operation. Response contracts are explicit and closed:
// required fields and primitive types are asserted for every operation,
// with no accept-anything shapes.

// Shared schema fragments.
const (
	problemProps = `{
		"id": {"type": "integer"},
		"slug": {"type": "string"},
		"title": {"type": "string"},
		"description": {"type": "string"},
		"category": {"type": "string"},
		"difficulty": {"type": "string", "enum": ["Easy", "Medium", "Hard"]},
		"xpReward": {"type": "integer"},
		"starterCode": {"type": "string"},
		"sortOrder": {"type": "integer"},
		"isDaily": {"type": "boolean"},
		"bonusXp": {"type": "integer"},
		"isSolved": {"type": "boolean"},
		"createdAt": {"type": "string"},
		"updatedAt": {"type": "string"}
	}`

	problemRequired = `["id", "slug", "title", "description", "category", "difficulty", "xpReward"]`
)

var (
	problemSchema = mustSchema(`{
		"type": "object",
		"properties": ` + problemProps + `,
		"required": ` + problemRequired + `
	}`)

	problemListSchema = mustSchema(`{
		"type": "array",
		"items": {
			"type": "object",
			"properties": ` + problemProps + `,
			"required": ` + problemRequired + `
		}
	}`)

	dailyProblemSchema = mustSchema(`{
		"type": "object",
		"properties": ` + problemProps + `,
		"required": ["id", "slug", "title", "description", "category", "difficulty", "xpReward", "bonusXp"]
	}`)

	submitInputSchema = mustSchema(`{
		"type": "object",
		"properties": {
			"code": {"type": "string", "minLength": 1},
			"language": {"type": "string", "minLength": 1}
		},
		"required": ["code", "language"]
	}`)

	submitResultSchema = mustSchema(`{
		"type": "object",
		"properties": {
			"success": {"type": "boolean"},
			"output": {"type": "string"},
			"passed": {"type": "boolean"},
			"xpEarned": {"type": "integer"},
			"nextProblemSlug": {"type": "string"}
		},
		"required": ["success", "output", "passed"]
	}`)

	tutorialListSchema = mustSchema(`{
		"type": "array",
		"items": {
			"type": "object",
			"properties": {
				"id": {"type": "integer"},
				"slug": {"type": "string"},
				"title": {"type": "string"},
				"description": {"type": "string"},
				"category": {"type": "string"},
				"lessonCount": {"type": "integer"}
			},
			"required": ["id", "slug", "title", "category"]
		}
	}`)

	tutorialSchema = mustSchema(`{
		"type": "object",
		"properties": {
			"id": {"type": "integer"},
			"slug": {"type": "string"},
			"title": {"type": "string"},
			"description": {"type": "string"},
			"category": {"type": "string"},
			"lessonCount": {"type": "integer"},
			"lessons": {
				"type": "array",
				"items": {
					"type": "object",
					"properties": {
						"id": {"type": "integer"},
						"tutorialId": {"type": "integer"},
						"title": {"type": "string"},
						"content": {"type": "string"},
						"xpReward": {"type": "integer"},
						"sortOrder": {"type": "integer"}
					},
					"required": ["id", "title", "content", "xpReward"]
				}
			}
		},
		"required": ["id", "slug", "title", "category", "lessons"]
	}`)

	lessonCompleteSchema = mustSchema(`{
		"type": "object",
		"properties": {
			"success": {"type": "boolean"},
			"xpEarned": {"type": "integer"}
		},
		"required": ["success", "xpEarned"]
	}`)

	discussionProps = `{
		"id": {"type": "integer"},
		"authorId": {"type": "integer"},
		"authorName": {"type": "string"},
		"title": {"type": "string"},
		"content": {"type": "string"},
		"tags": {"type": "array", "items": {"type": "string"}},
		"votes": {"type": "integer"},
		"createdAt": {"type": "string"},
		"updatedAt": {"type": "string"},
		"answers": {
			"type": "array",
			"items": {
				"type": "object",
				"properties": {
					"id": {"type": "integer"},
					"discussionId": {"type": "integer"},
					"authorId": {"type": "integer"},
					"authorName": {"type": "string"},
					"content": {"type": "string"},
					"createdAt": {"type": "string"}
				},
				"required": ["id", "authorName", "content"]
			}
		}
	}`

	discussionListSchema = mustSchema(`{
		"type": "array",
		"items": {
			"type": "object",
			"properties": ` + discussionProps + `,
			"required": ["id", "title", "content", "authorName", "votes"]
		}
	}`)

	discussionSchema = mustSchema(`{
		"type": "object",
		"properties": ` + discussionProps + `,
		"required": ["id", "title", "content", "authorName", "votes", "answers"]
	}`)

	newDiscussionInputSchema = mustSchema(`{
		"type": "object",
		"properties": {
			"title": {"type": "string", "minLength": 8},
			"content": {"type": "string", "minLength": 1},
			"tags": {"type": "array", "items": {"type": "string"}, "maxItems": 5}
		},
		"required": ["title", "content"]
	}`)

	newAnswerInputSchema = mustSchema(`{
		"type": "object",
		"properties": {
			"content": {"type": "string", "minLength": 1}
		},
		"required": ["content"]
	}`)

	answerResultSchema = mustSchema(`{
		"type": "object",
		"properties": {"success": {"type": "boolean"}},
		"required": ["success"]
	}`)

	voteInputSchema = mustSchema(`{
		"type": "object",
		"properties": {
			"value": {"type": "integer", "enum": [-1, 1]}
		},
		"required": ["value"]
	}`)

	voteResultSchema = mustSchema(`{
		"type": "object",
		"properties": {
			"success": {"type": "boolean"},
			"newCount": {"type": "integer"}
		},
		"required": ["success", "newCount"]
	}`)

	leaderboardSchema = mustSchema(`{
		"type": "array",
		"items": {
			"type": "object",
			"properties": {
				"rank": {"type": "integer"},
				"userId": {"type": "integer"},
				"username": {"type": "string"},
				"xp": {"type": "integer"},
				"level": {"type": "integer"},
				"solvedCount": {"type": "integer"},
				"badgeCount": {"type": "integer"}
			},
			"required": ["rank", "userId", "username", "xp", "level", "solvedCount", "badgeCount"]
		}
	}`)

	badgeProps = `{
		"id": {"type": "integer"},
		"slug": {"type": "string"},
		"name": {"type": "string"},
		"description": {"type": "string"},
		"icon": {"type": "string"},
		"criterion": {"type": "string"},
		"threshold": {"type": "integer"},
		"earnedAt": {"type": "string"}
	}`

	badgeListSchema = mustSchema(`{
		"type": "array",
		"items": {
			"type": "object",
			"properties": ` + badgeProps + `,
			"required": ["id", "slug", "name", "criterion", "threshold"]
		}
	}`)

	userBadgeListSchema = mustSchema(`{
		"type": "array",
		"items": {
			"type": "object",
			"properties": ` + badgeProps + `,
			"required": ["id", "slug", "name", "earnedAt"]
		}
	}`)

	hackathonListSchema = mustSchema(`{
		"type": "array",
		"items": {
			"type": "object",
			"properties": {
				"id": {"type": "integer"},
				"slug": {"type": "string"},
				"name": {"type": "string"},
				"theme": {"type": "string"},
				"prize": {"type": "string"},
				"startsAt": {"type": "string"},
				"endsAt": {"type": "string"},
				"status": {"type": "string", "enum": ["upcoming", "running", "ended"]}
			},
			"required": ["id", "slug", "name", "startsAt", "endsAt", "status"]
		}
	}`)

	userStatsSchema = mustSchema(`{
		"type": "object",
		"properties": {
			"userId": {"type": "integer"},
			"username": {"type": "string"},
			"xp": {"type": "integer"},
			"level": {"type": "integer"},
			"streak": {"type": "integer"},
			"solvedCount": {"type": "integer"},
			"nextLevelXp": {"type": "integer"}
		},
		"required": ["userId", "username", "xp", "level", "streak", "solvedCount"]
	}`)

	userProfileSchema = mustSchema(`{
		"type": "object",
		"properties": {
			"userId": {"type": "integer"},
			"username": {"type": "string"},
			"xp": {"type": "integer"},
			"level": {"type": "integer"},
			"solvedCount": {"type": "integer"},
			"streak": {"type": "integer"},
			"badges": {
				"type": "array",
				"items": {
					"type": "object",
					"properties": {
						"slug": {"type": "string"},
						"name": {"type": "string"},
						"earnedAt": {"type": "string"}
					},
					"required": ["slug", "name", "earnedAt"]
				}
			},
			"joinedAt": {"type": "string"}
		},
		"required": ["userId", "username", "xp", "level", "solvedCount", "streak", "badges"]
	}`)

	loginInputSchema = mustSchema(`{
		"type": "object",
		"properties": {
			"username": {"type": "string", "minLength": 1},
			"password": {"type": "string", "minLength": 1}
		},
		"required": ["username", "password"]
	}`)

	loginResultSchema = mustSchema(`{
		"type": "object",
		"properties": {"token": {"type": "string"}},
		"required": ["token"]
	}`)
)

// Operation descriptors.
var (
	opProblemsList = register(Descriptor{
		Name:      "problems.list",
		Method:    http.MethodGet,
		Path:      "/api/problems",
		Responses: map[int]*jsonSchema{http.StatusOK: problemListSchema},
	})

	opProblemsGet = register(Descriptor{
		Name:          "problems.get",
		Method:        http.MethodGet,
		Path:          "/api/problems/:slug",
		Responses:     map[int]*jsonSchema{http.StatusOK: problemSchema},
		NilOnNotFound: true,
	})

	opProblemsDaily = register(Descriptor{
		Name:          "problems.daily",
		Method:        http.MethodGet,
		Path:          "/api/problems/daily",
		Responses:     map[int]*jsonSchema{http.StatusOK: dailyProblemSchema},
		NilOnNotFound: true,
	})

	opProblemsSubmit = register(Descriptor{
		Name:      "problems.submit",
		Method:    http.MethodPost,
		Path:      "/api/problems/:id/submit",
		Input:     submitInputSchema,
		Responses: map[int]*jsonSchema{http.StatusOK: submitResultSchema},
		// a correct submission changes XP/streak (user stats), solved flags
		// (problem reads) and possibly badges and ranking
		Invalidates: []string{
			"/api/user/stats",
			"/api/problems",
			"/api/problems/:slug",
			"/api/problems/daily",
			"/api/user/badges",
			"/api/leaderboard",
		},
	})

	opTutorialsList = register(Descriptor{
		Name:      "tutorials.list",
		Method:    http.MethodGet,
		Path:      "/api/tutorials",
		Responses: map[int]*jsonSchema{http.StatusOK: tutorialListSchema},
	})

	opTutorialsGet = register(Descriptor{
		Name:          "tutorials.get",
		Method:        http.MethodGet,
		Path:          "/api/tutorials/:slug",
		Responses:     map[int]*jsonSchema{http.StatusOK: tutorialSchema},
		NilOnNotFound: true,
	})

	opLessonsComplete = register(Descriptor{
		Name:        "lessons.complete",
		Method:      http.MethodPost,
		Path:        "/api/lessons/:id/complete",
		Responses:   map[int]*jsonSchema{http.StatusOK: lessonCompleteSchema},
		Invalidates: []string{"/api/user/stats"},
	})

	opDiscussionsList = register(Descriptor{
		Name:      "discussions.list",
		Method:    http.MethodGet,
		Path:      "/api/discussions",
		Responses: map[int]*jsonSchema{http.StatusOK: discussionListSchema},
	})

	opDiscussionsGet = register(Descriptor{
		Name:          "discussions.get",
		Method:        http.MethodGet,
		Path:          "/api/discussions/:id",
		Responses:     map[int]*jsonSchema{http.StatusOK: discussionSchema},
		NilOnNotFound: true,
	})

	opDiscussionsCreate = register(Descriptor{
		Name:        "discussions.create",
		Method:      http.MethodPost,
		Path:        "/api/discussions",
		Input:       newDiscussionInputSchema,
		Responses:   map[int]*jsonSchema{http.StatusCreated: discussionSchema, http.StatusOK: discussionSchema},
		Invalidates: []string{"/api/discussions"},
	})

	opDiscussionsAnswer = register(Descriptor{
		Name:        "discussions.answer",
		Method:      http.MethodPost,
		Path:        "/api/discussions/:id/answers",
		Input:       newAnswerInputSchema,
		Responses:   map[int]*jsonSchema{http.StatusOK: answerResultSchema},
		Invalidates: []string{"/api/discussions", "/api/discussions/:id"},
	})

	opDiscussionsVote = register(Descriptor{
		Name:        "discussions.vote",
		Method:      http.MethodPost,
		Path:        "/api/discussions/:id/vote",
		Input:       voteInputSchema,
		Responses:   map[int]*jsonSchema{http.StatusOK: voteResultSchema},
		Invalidates: []string{"/api/discussions", "/api/discussions/:id"},
	})

	opLeaderboard = register(Descriptor{
		Name:      "leaderboard",
		Method:    http.MethodGet,
		Path:      "/api/leaderboard",
		Responses: map[int]*jsonSchema{http.StatusOK: leaderboardSchema},
	})

	opBadgesList = register(Descriptor{
		Name:      "badges.list",
		Method:    http.MethodGet,
		Path:      "/api/badges",
		Responses: map[int]*jsonSchema{http.StatusOK: badgeListSchema},
	})

	opUserBadges = register(Descriptor{
		Name:      "user.badges",
		Method:    http.MethodGet,
		Path:      "/api/user/badges",
		Responses: map[int]*jsonSchema{http.StatusOK: userBadgeListSchema},
		SoftAuth:  true,
	})

	opHackathonsList = register(Descriptor{
		Name:      "hackathons.list",
		Method:    http.MethodGet,
		Path:      "/api/hackathons",
		Responses: map[int]*jsonSchema{http.StatusOK: hackathonListSchema},
	})

	opUserStats = register(Descriptor{
		Name:      "user.stats",
		Method:    http.MethodGet,
		Path:      "/api/user/stats",
		Responses: map[int]*jsonSchema{http.StatusOK: userStatsSchema},
		SoftAuth:  true,
	})

	opUserProfile = register(Descriptor{
		Name:          "user.profile",
		Method:        http.MethodGet,
		Path:          "/api/user/profile/:userId",
		Responses:     map[int]*jsonSchema{http.StatusOK: userProfileSchema},
		NilOnNotFound: true,
	})

	opAuthLogin = register(Descriptor{
		Name:      "auth.login",
		Method:    http.MethodPost,
		Path:      "/api/auth/login",
		Input:     loginInputSchema,
		Responses: map[int]*jsonSchema{http.StatusOK: loginResultSchema},
	})
)
