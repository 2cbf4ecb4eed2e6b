package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/trezcool/goose"

	"github.com/trezcool/studyplanner/apps"
	"github.com/trezcool/studyplanner/core"
	"github.com/trezcool/studyplanner/fs"
	"github.com/trezcool/studyplanner/storage/export"
	"github.com/trezcool/studyplanner/storage/textfile"
)

// mockable
var gooseRunFunc = func(command string, db *sql.DB, args ...string) error {
	return goose.RunFS(command, db, appfs.FS, "migrations", args...)
}

func (cli *commandLine) export(args []string) error {
	fs := cli.newFlagSet("export")
	format := fs.String("format", string(export.FormatCSV), "csv, xlsx or ics.")
	out := fs.String("o", "", "The output file (default schedule.<format>).")
	if err := parse(fs, args); err != nil {
		return err
	}

	f, err := export.ParseFormat(*format)
	if err != nil {
		return apps.NewArgumentError("%v", err)
	}
	path := *out
	if path == "" {
		path = f.Filename("schedule")
	}

	file, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "creating export file")
	}
	acts := cli.schedule.All()
	if err = export.Write(file, f, acts); err != nil {
		_ = file.Close()
		return err
	}
	if err = file.Close(); err != nil {
		return errors.Wrap(err, "closing export file")
	}
	fmt.Fprintf(cli.out, "exported %d activities to %s\n", len(acts), path)
	return nil
}

// backup copies the data file byte for byte. Postgres schedules are written in the text format.
func (cli *commandLine) backup(ctx context.Context, args []string) error {
	fs := cli.newFlagSet("backup")
	out := fs.String("o", "", "The backup file (default backup_<timestamp>.txt).")
	if err := parse(fs, args); err != nil {
		return err
	}
	path := *out
	if path == "" {
		path = "backup_" + core.NowFunc().Format("20060102_150405") + ".txt"
	}

	if cli.storage.Text != nil {
		if err := cli.storage.Text.Backup(path); err != nil {
			return err
		}
	} else if err := textfile.NewStore(path, cli.logger).Save(ctx, cli.schedule.All()); err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "backup written to %s\n", path)
	return nil
}

func (cli *commandLine) migrate(args []string) error {
	if cli.storage.DB == nil {
		return apps.NewArgumentError("migrate needs storage.engine = postgres")
	}
	if len(args) == 0 {
		cli.printUsage()
		return errHelp
	}
	return gooseRunFunc(args[0], cli.storage.DB.DB, args[1:]...)
}
