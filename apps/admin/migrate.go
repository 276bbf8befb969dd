package main

import (
	"github.com/pressly/goose"

	"github.com/tsegazeab/timhirt/storage/database"
)

var gooseRunFunc = goose.Run // mockable

func (cli *commandLine) migrate(args []string) error {
	if err := goose.SetDialect(cli.conf.Database.Engine); err != nil {
		return err
	}

	arguments := make([]string, 0)
	if len(args) > 1 {
		arguments = append(arguments, args[1:]...)
	}
	return gooseRunFunc(args[0], cli.db, database.MigrationsDir(cli.conf), arguments...)
}
