package echoapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/zoezi/core/badge"
	"github.com/trezcool/zoezi/core/discussion"
	"github.com/trezcool/zoezi/core/hackathon"
	"github.com/trezcool/zoezi/core/leaderboard"
	"github.com/trezcool/zoezi/core/problem"
	"github.com/trezcool/zoezi/core/tutorial"
	"github.com/trezcool/zoezi/core/user"
	emailsvc "github.com/trezcool/zoezi/services/email"
	inmemdb "github.com/trezcool/zoezi/storage/database/inmem"
)

var (
	errMissingToken = httpErr{Error: "missing or malformed jwt"}
	errNotFound     = httpErr{Error: "not found"}
)

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
}

type nopLogger struct{}

func (nopLogger) Debug(msg string, args ...interface{}) {}
func (nopLogger) Info(msg string, args ...interface{})  {}
func (nopLogger) Warn(msg string, args ...interface{})  {}
func (nopLogger) Error(msg string, args ...interface{}) {}
func (nopLogger) Fatal(msg string, args ...interface{}) {}

// catalogLoader exposes the in-memory badge repository's test seeding hook.
type catalogLoader interface {
	badge.Repository
	LoadCatalog([]badge.Badge)
}

// eventLoader exposes the in-memory hackathon repository's test seeding hook.
type eventLoader interface {
	hackathon.Repository
	LoadEvents([]hackathon.Hackathon)
}

type testEnv struct {
	server Server

	usrRepo   user.Repository
	probRepo  problem.Repository
	badgeRepo catalogLoader
	hackRepo  eventLoader

	usrSvc  user.Service
	probSvc problem.Service
	tutSvc  tutorial.Service
	discSvc discussion.Service
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()

	db := inmemdb.NewDB()
	usrRepo := inmemdb.NewUserRepository(db)
	probRepo := inmemdb.NewProblemRepository(db)
	badgeRepo := inmemdb.NewBadgeRepository(db)
	hackRepo := inmemdb.NewHackathonRepository(db)

	logger := nopLogger{}
	usrSvc := user.NewService(usrRepo, emailsvc.NewConsoleServiceMock())
	badgeSvc := badge.NewService(badgeRepo)
	probSvc := problem.NewService(probRepo, usrSvc, problem.NewStubGrader(), badgeSvc, logger)
	tutSvc := tutorial.NewService(inmemdb.NewTutorialRepository(db), usrSvc)
	discSvc := discussion.NewService(inmemdb.NewDiscussionRepository(db), usrSvc)
	hackSvc := hackathon.NewService(hackRepo)
	lbSvc := leaderboard.NewService(inmemdb.NewLeaderboardRepository(db))

	srv := NewServer(&Options{
		DisableReqLogs: true,
		Logger:         logger,
		UserSvc:        usrSvc,
		ProblemSvc:     probSvc,
		TutorialSvc:    tutSvc,
		DiscussionSvc:  discSvc,
		BadgeSvc:       badgeSvc,
		HackathonSvc:   hackSvc,
		LeaderboardSvc: lbSvc,
	})

	return &testEnv{
		server:    srv,
		usrRepo:   usrRepo,
		probRepo:  probRepo,
		badgeRepo: badgeRepo,
		hackRepo:  hackRepo,
		usrSvc:    usrSvc,
		probSvc:   probSvc,
		tutSvc:    tutSvc,
		discSvc:   discSvc,
	}
}

func (env *testEnv) serve(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	env.server.ServeHTTP(rec, req)
	return rec
}

func newAuthRequest(method, path, token string, data ...[]byte) *http.Request {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func newRequest(method, path string, data ...[]byte) *http.Request {
	return newAuthRequest(method, path, "", data...)
}

func createUser(t *testing.T, repo user.Repository, name, uname, pwd string, roles []string, isActive bool) user.User {
	t.Helper()

	now := time.Now().UTC()
	usr := user.User{
		Name:      name,
		Username:  uname,
		Email:     uname + "@test.test",
		Roles:     roles,
		IsActive:  isActive,
		Level:     user.LevelForXP(0),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if pwd != "" {
		if err := usr.SetPassword(pwd); err != nil {
			t.Fatalf("createUser() failed: %v", err)
		}
	}
	usr, err := repo.CreateUser(usr)
	if err != nil {
		t.Fatalf("createUser() failed: %v", err)
	}
	return usr
}

func createProblem(t *testing.T, repo problem.Repository, prob problem.Problem) problem.Problem {
	t.Helper()

	now := time.Now().UTC()
	prob.CreatedAt = now
	prob.UpdatedAt = now
	prob, err := repo.CreateProblem(prob)
	if err != nil {
		t.Fatalf("createProblem() failed: %v", err)
	}
	return prob
}

func getToken(t *testing.T, usr user.User) string {
	t.Helper()

	token, err := GenerateToken(GetUserClaims(usr))
	if err != nil {
		t.Fatalf("getToken() failed: %v", err)
	}
	return token
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	return assert.ObjectsAreEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()

	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

func boolPtr(b bool) *bool { return &b }
