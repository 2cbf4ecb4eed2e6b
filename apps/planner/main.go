package main

import (
	"context"
	"fmt"
	"os"

	"github.com/trezcool/studyplanner/apps/shared"
	"github.com/trezcool/studyplanner/core"
	"github.com/trezcool/studyplanner/core/notification"
	"github.com/trezcool/studyplanner/core/stats"
	emailsvc "github.com/trezcool/studyplanner/services/email"
	logsvc "github.com/trezcool/studyplanner/services/logger"
)

func main() {
	os.Exit(run())
}

func run() int {
	conf, err := core.NewConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	if conf.LogLevel == "" {
		conf.LogLevel = "warn"
	}

	logger, syncLogger, err := logsvc.New(conf)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	defer syncLogger()

	ctx := context.Background()
	storage, err := shared.OpenStorage(ctx, conf, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	defer func() { _ = storage.Close() }()

	schedule := storage.NewSchedule(ctx, conf, logger)
	validate, translator := core.NewValidator()

	// start CLI
	cli := commandLine{
		conf:       conf,
		logger:     logger,
		storage:    storage,
		schedule:   schedule,
		alerts:     notification.NewEngine(schedule),
		stats:      stats.NewEngine(schedule),
		email:      emailsvc.New(conf, logger),
		validate:   validate,
		translator: translator,
		in:         os.Stdin,
		out:        os.Stdout,
	}
	if err := cli.run(ctx, os.Args); err != nil {
		if err != errHelp {
			fmt.Fprintf(os.Stderr, "\nerror: %s\n", cli.describe(err))
		}
		return 1
	}
	return 0
}
