package main

import (
	"context"
	"fmt"
	"os"

	"github.com/pkg/errors"

	echoapi "github.com/trezcool/studyplanner/apps/api/echo"
	"github.com/trezcool/studyplanner/apps/shared"
	"github.com/trezcool/studyplanner/core"
	"github.com/trezcool/studyplanner/core/notification"
	"github.com/trezcool/studyplanner/core/stats"
	emailsvc "github.com/trezcool/studyplanner/services/email"
	logsvc "github.com/trezcool/studyplanner/services/logger"
	"github.com/trezcool/studyplanner/services/reminder"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// =========================================================================
	// Set up Dependencies

	conf, err := core.NewConfig()
	if err != nil {
		return err
	}

	logger, syncLogger, err := logsvc.New(conf)
	if err != nil {
		return err
	}
	defer syncLogger()

	ctx := context.Background()
	storage, err := shared.OpenStorage(ctx, conf, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := storage.Close(); err != nil {
			logger.Error("closing storage", "error", err)
		}
	}()

	schedule := storage.NewSchedule(ctx, conf, logger)
	alerts := notification.NewEngine(schedule)
	validate, translator := core.NewValidator()

	// =========================================================================
	// Initialize App

	logger.Info("application initializing", "version", conf.Build, "env", conf.Env, "storage", conf.StorageEngine)
	defer logger.Info("application stopped")

	if conf.Reminder.To != "" {
		rem, err := reminder.New(conf, alerts, emailsvc.New(conf, logger), logger)
		if err != nil {
			return err
		}
		if err = rem.Start(conf.Reminder.Schedule); err != nil {
			return err
		}
		defer rem.Stop()
	}

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(&echoapi.Deps{
		Conf:       conf,
		Logger:     logger,
		Schedule:   schedule,
		Alerts:     alerts,
		Stats:      stats.NewEngine(schedule),
		Validate:   validate,
		Translator: translator,
	})

	go server.Start()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		return errors.Wrap(err, "server error")

	case sig := <-server.ShutdownSignal():
		logger.Info("start shutdown", "signal", sig)

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(ctx, conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err = server.Shutdown(ctx); err != nil {
			logger.Error("could not stop server gracefully", "error", err)
			if err = server.Close(); err != nil {
				return errors.Wrap(err, "could not force stop server")
			}
		}
	}
	return nil
}
