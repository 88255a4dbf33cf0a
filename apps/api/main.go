package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"

	echoapi "github.com/trezcool/zoezi/apps/api/echo"
	"github.com/trezcool/zoezi/core"
	"github.com/trezcool/zoezi/core/badge"
	"github.com/trezcool/zoezi/core/discussion"
	"github.com/trezcool/zoezi/core/hackathon"
	"github.com/trezcool/zoezi/core/leaderboard"
	"github.com/trezcool/zoezi/core/problem"
	"github.com/trezcool/zoezi/core/tutorial"
	"github.com/trezcool/zoezi/core/user"
	emailsvc "github.com/trezcool/zoezi/services/email"
	sendgridmail "github.com/trezcool/zoezi/services/email/sendgrid"
	logsvc "github.com/trezcool/zoezi/services/logger"
	"github.com/trezcool/zoezi/storage/database"
	sqlxrepos "github.com/trezcool/zoezi/storage/database/sqlx"
)

func main() {
	std := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lshortfile)
	logger := logsvc.NewRollbarLogger(std, core.Conf)
	logger.Enable(!core.Conf.Debug)

	if err := run(logger); err != nil {
		logger.Fatal("running server", err)
	}
}

func run(logger core.Logger) error {
	// set up DB
	db, err := database.Open(core.Conf)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	sdb := sqlx.NewDb(db, core.Conf.Database.Engine)

	// set up services
	var mailSvc core.EmailService
	if core.Conf.Debug {
		mailSvc = emailsvc.NewConsoleService()
	} else {
		mailSvc = sendgridmail.NewService(logger)
	}

	usrSvc := user.NewService(sqlxrepos.NewUserRepository(sdb), mailSvc)
	badgeSvc := badge.NewService(sqlxrepos.NewBadgeRepository(sdb))
	probSvc := problem.NewService(
		sqlxrepos.NewProblemRepository(sdb),
		usrSvc,
		problem.NewStubGrader(),
		badgeSvc,
		logger,
	)
	tutSvc := tutorial.NewService(sqlxrepos.NewTutorialRepository(sdb), usrSvc)
	discSvc := discussion.NewService(sqlxrepos.NewDiscussionRepository(sdb), usrSvc)
	hackSvc := hackathon.NewService(sqlxrepos.NewHackathonRepository(sdb))
	lbSvc := leaderboard.NewService(sqlxrepos.NewLeaderboardRepository(sdb))

	// start API server
	app := echoapi.NewServer(&echoapi.Options{
		Address:        core.Conf.Server.Address(),
		Logger:         logger,
		UserSvc:        usrSvc,
		ProblemSvc:     probSvc,
		TutorialSvc:    tutSvc,
		DiscussionSvc:  discSvc,
		BadgeSvc:       badgeSvc,
		HackathonSvc:   hackSvc,
		LeaderboardSvc: lbSvc,
	})

	serverErrs := make(chan error, 1)
	go func() { serverErrs <- app.Start() }()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err = <-serverErrs:
		return err
	case <-quit:
	case <-app.ShutdownSignal():
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return app.Stop(ctx)
}
