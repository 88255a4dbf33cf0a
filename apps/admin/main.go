package main

import (
	"log"
	"os"

	"github.com/jmoiron/sqlx"

	"github.com/trezcool/zoezi/core"
	"github.com/trezcool/zoezi/core/badge"
	"github.com/trezcool/zoezi/core/problem"
	"github.com/trezcool/zoezi/core/tutorial"
	"github.com/trezcool/zoezi/core/user"
	emailsvc "github.com/trezcool/zoezi/services/email"
	logsvc "github.com/trezcool/zoezi/services/logger"
	"github.com/trezcool/zoezi/storage/database"
	sqlxrepos "github.com/trezcool/zoezi/storage/database/sqlx"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	// set up DB
	errAndDie(database.CreateIfNotExist(core.Conf))
	db, err := database.Open(core.Conf)
	errAndDie(err)
	defer func() { _ = db.Close() }()
	errAndDie(db.Ping())
	sdb := sqlx.NewDb(db, core.Conf.Database.Engine)

	appLogger := logsvc.NewRollbarLogger(logger, core.Conf)
	appLogger.Enable(false)

	usrRepo := sqlxrepos.NewUserRepository(sdb)
	usrSvc := user.NewService(usrRepo, emailsvc.NewConsoleServiceMock())
	badgeSvc := badge.NewService(sqlxrepos.NewBadgeRepository(sdb))
	probSvc := problem.NewService(
		sqlxrepos.NewProblemRepository(sdb),
		usrSvc,
		problem.NewStubGrader(),
		badgeSvc,
		appLogger,
	)
	tutSvc := tutorial.NewService(sqlxrepos.NewTutorialRepository(sdb), usrSvc)

	// start CLI
	cli := commandLine{
		db:      db,
		usrRepo: usrRepo,
		probSvc: probSvc,
		tutSvc:  tutSvc,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
