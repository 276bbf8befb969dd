package main

import (
	"log"
	"os"

	"github.com/jmoiron/sqlx"

	"github.com/tsegazeab/timhirt/core"
	"github.com/tsegazeab/timhirt/core/attendance"
	"github.com/tsegazeab/timhirt/core/certificate"
	"github.com/tsegazeab/timhirt/core/grading"
	"github.com/tsegazeab/timhirt/core/user"
	emailsvc "github.com/tsegazeab/timhirt/services/email"
	logsvc "github.com/tsegazeab/timhirt/services/logger"
	"github.com/tsegazeab/timhirt/storage/database"
	sqlxrepos "github.com/tsegazeab/timhirt/storage/database/sqlx"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf := core.NewConfig()

	rbLogger := logsvc.NewRollbarLogger(logger, conf)
	rbLogger.Enable(!conf.Debug)

	// set up DB
	db, err := database.Open(conf)
	errAndDie(err)
	defer db.Close()
	errAndDie(db.Ping())
	sdb := sqlx.NewDb(db, conf.Database.Engine)

	// set up services
	mailSvc := emailsvc.NewConsoleService(conf)
	usrRepo := sqlxrepos.NewUserRepository(sdb)
	usrSvc := user.NewService(usrRepo, mailSvc, conf)
	attSvc := attendance.NewService(sqlxrepos.NewAttendanceRepository(sdb))
	gradingSvc := grading.NewService(sqlxrepos.NewGradingRepository(sdb))
	certSvc := certificate.NewService(
		sqlxrepos.NewCertificateRepository(sdb),
		gradingSvc,
		attSvc,
		usrSvc,
		mailSvc,
		rbLogger,
	)

	// start CLI
	cli := commandLine{
		db:      db,
		conf:    conf,
		usrRepo: usrRepo,
		certSvc: certSvc,
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
