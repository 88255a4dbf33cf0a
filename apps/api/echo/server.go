package echoapi

import (
	"context"
	"net/http"
	"os"
	"syscall"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/trezcool/zoezi/core"
	"github.com/trezcool/zoezi/core/badge"
	"github.com/trezcool/zoezi/core/discussion"
	"github.com/trezcool/zoezi/core/hackathon"
	"github.com/trezcool/zoezi/core/leaderboard"
	"github.com/trezcool/zoezi/core/problem"
	"github.com/trezcool/zoezi/core/tutorial"
	"github.com/trezcool/zoezi/core/user"
)

type (
	Options struct {
		Address        string
		DisableReqLogs bool

		Logger         core.Logger
		UserSvc        user.Service
		ProblemSvc     problem.Service
		TutorialSvc    tutorial.Service
		DiscussionSvc  discussion.Service
		BadgeSvc       badge.Service
		HackathonSvc   hackathon.Service
		LeaderboardSvc leaderboard.Service
	}

	Server interface {
		http.Handler
		Start() error
		Stop(context.Context) error
		// ShutdownSignal receives a signal whenever an unrecoverable error
		// asks for a graceful shutdown.
		ShutdownSignal() <-chan os.Signal
	}

	server struct {
		opts     *Options
		app      *echo.Echo
		shutdown chan os.Signal
	}
)

var _ Server = (*server)(nil)

func NewServer(opts *Options) Server {
	s := &server{
		opts:     opts,
		app:      echo.New(),
		shutdown: make(chan os.Signal, 1),
	}
	s.setup()
	return s
}

func (s *server) setup() {
	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(core.Conf.Debug || core.Conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.Logger, s.signalShutdown)
	s.app.Debug = core.Conf.Debug
	s.app.HideBanner = true

	s.app.GET("/", home)

	api := s.app.Group("/api")
	jwt := middleware.JWTWithConfig(appJWTConfig)
	softJwt := softJWTMiddleware()

	registerAuthAPI(api, jwt, s.opts.UserSvc)
	registerProblemAPI(api, jwt, softJwt, s.opts.ProblemSvc)
	registerTutorialAPI(api, jwt, s.opts.TutorialSvc)
	registerDiscussionAPI(api, jwt, s.opts.DiscussionSvc)
	registerLeaderboardAPI(api, s.opts.LeaderboardSvc)
	registerBadgeAPI(api, jwt, s.opts.BadgeSvc)
	registerHackathonAPI(api, s.opts.HackathonSvc)
	registerUserAPI(api, jwt, s.opts.UserSvc, s.opts.ProblemSvc, s.opts.BadgeSvc)
}

func (s *server) signalShutdown() {
	s.shutdown <- syscall.SIGTERM
}

func (s *server) ShutdownSignal() <-chan os.Signal {
	return s.shutdown
}

func (s *server) Start() error {
	return s.app.Start(s.opts.Address)
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to Zoezi API!")
}
