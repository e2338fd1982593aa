package main

import (
	"errors"
	"log"
	"os"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v4/stdlib"
	"go.uber.org/zap"

	dbconsole "github.com/app-sre/dbconsole/pkg"
	"github.com/app-sre/dbconsole/pkg/cmd"
)

func main() {
	newLogger := zap.NewDevelopment
	if dbconsole.Production() {
		newLogger = zap.NewProduction
	}

	l, err := newLogger()
	if err != nil {
		log.Fatalf("Unable to initialize Zap logger: %s", err)
	}
	defer func() { _ = l.Sync() }()

	logger := l.Sugar()
	if err := cmd.Execute(logger); err != nil {
		if errors.Is(err, cmd.ErrFailed) {
			_ = l.Sync()
			os.Exit(1)
		}
		logger.Fatalf("Unable to run dbconsole: %s", err)
	}
}
