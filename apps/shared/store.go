// Package shared holds the wiring common to the planner CLI and the API server.
package shared

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/studyplanner/core"
	"github.com/trezcool/studyplanner/core/activity"
	"github.com/trezcool/studyplanner/storage/database"
	"github.com/trezcool/studyplanner/storage/textfile"
)

// Storage is the configured persistence backend. DB is nil for the text file store.
type Storage struct {
	Store activity.Store
	Text  *textfile.Store
	DB    *sqlx.DB
}

// OpenStorage opens the backend selected by `storage.engine`. Postgres databases are created
// (when an admin role is configured) and migrated before use.
func OpenStorage(ctx context.Context, conf *core.Config, logger core.Logger) (*Storage, error) {
	if !conf.UsePostgres() {
		text := textfile.NewStore(conf.DataFile, logger)
		return &Storage{Store: text, Text: text}, nil
	}

	if conf.Database.AdminUser != "" {
		if err := database.CreateIfNotExist(ctx, conf); err != nil {
			return nil, errors.Wrap(err, "creating database")
		}
	}
	db, err := database.Open(ctx, conf)
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}
	if err = database.Migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Storage{Store: database.NewActivityStore(db, logger), DB: db}, nil
}

func (s *Storage) Close() error {
	if s.DB == nil {
		return nil
	}
	return s.DB.Close()
}

// NewSchedule loads the schedule from the storage and applies the auto-save setting.
func (s *Storage) NewSchedule(ctx context.Context, conf *core.Config, logger core.Logger) *activity.Schedule {
	sched := activity.NewSchedule(ctx, s.Store, logger)
	sched.SetAutoSave(conf.AutoSave)
	return sched
}
