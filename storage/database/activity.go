package database

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/studyplanner/core"
	"github.com/trezcool/studyplanner/core/activity"
)

const (
	selectActivities = `
SELECT id, kind, title,
       to_char(date, 'YYYY-MM-DD') AS date,
       to_char(start_time, 'HH24:MI:SS') AS start_time,
       to_char(end_time, 'HH24:MI:SS') AS end_time,
       status, subject, topic,
       COALESCE(to_char(deadline, 'YYYY-MM-DD'), '') AS deadline,
       priority, progress, room, exam_kind, syllabus
FROM activity
ORDER BY position`

	insertActivity = `
INSERT INTO activity (id, position, kind, title, date, start_time, end_time, status, subject, topic,
                      deadline, priority, progress, room, exam_kind, syllabus)
VALUES (:id, :position, :kind, :title, CAST(:date AS DATE), CAST(:start_time AS TIME), CAST(:end_time AS TIME),
        :status, :subject, :topic, CAST(NULLIF(:deadline, '') AS DATE), :priority, :progress, :room,
        :exam_kind, :syllabus)`
)

type activityRow struct {
	ID       int    `db:"id"`
	Position int    `db:"position"`
	Kind     string `db:"kind"`
	Title    string `db:"title"`
	Date     string `db:"date"`
	Start    string `db:"start_time"`
	End      string `db:"end_time"`
	Status   string `db:"status"`
	Subject  string `db:"subject"`
	Topic    string `db:"topic"`
	Deadline string `db:"deadline"`
	Priority string `db:"priority"`
	Progress int    `db:"progress"`
	Room     string `db:"room"`
	ExamKind string `db:"exam_kind"`
	Syllabus string `db:"syllabus"`
}

func toRow(position int, a activity.Activity) activityRow {
	r := activityRow{
		ID:       a.ID,
		Position: position,
		Kind:     string(a.Kind()),
		Title:    a.Title,
		Date:     a.Date.String(),
		Start:    a.Start.String(),
		End:      a.End.String(),
		Status:   string(a.Status),
		Subject:  a.Subject(),
	}
	switch d := a.Details.(type) {
	case activity.StudySession:
		r.Topic = d.Topic
	case activity.Assignment:
		r.Deadline = d.Deadline.String()
		r.Priority = string(d.Priority)
		r.Progress = d.Progress
	case activity.Exam:
		r.Room = d.Room
		r.ExamKind = d.ExamKind
		r.Syllabus = d.Syllabus
	}
	return r
}

func (r activityRow) toActivity() (activity.Activity, error) {
	kind, ok := activity.ParseKind(r.Kind)
	if !ok {
		return activity.Activity{}, errors.Errorf("unknown kind %q", r.Kind)
	}
	date, err := activity.ParseDate(r.Date)
	if err != nil {
		return activity.Activity{}, err
	}
	start, err := activity.ParseClock(r.Start)
	if err != nil {
		return activity.Activity{}, err
	}
	end, err := activity.ParseClock(r.End)
	if err != nil {
		return activity.Activity{}, err
	}

	var a activity.Activity
	switch kind {
	case activity.KindStudySession:
		a = activity.NewStudySession(r.Title, date, start, end, r.Subject, r.Topic)
	case activity.KindAssignment:
		deadline, err := activity.ParseDate(r.Deadline)
		if err != nil {
			return activity.Activity{}, err
		}
		a = activity.NewAssignment(r.Title, date, start, end, r.Subject, deadline, activity.Priority(r.Priority))
		a.UpdateProgress(r.Progress)
	case activity.KindExam:
		a = activity.NewExam(r.Title, date, start, end, r.Subject, r.Room, r.ExamKind, r.Syllabus)
	}
	a.ID = r.ID
	a.SetStatus(activity.Status(r.Status))
	return a, nil
}

// ActivityStore keeps the schedule in the activity table, in list order.
type ActivityStore struct {
	db     core.DB
	logger core.Logger
}

var _ activity.Store = (*ActivityStore)(nil)

func NewActivityStore(db core.DB, logger core.Logger) *ActivityStore {
	return &ActivityStore{db: db, logger: logger}
}

// Load skips rows it cannot map back to an activity.
func (s *ActivityStore) Load(ctx context.Context) ([]activity.Activity, error) {
	var rows []activityRow
	if err := s.db.SelectContext(ctx, &rows, selectActivities); err != nil {
		return nil, errors.Wrap(err, "selecting activities")
	}

	acts := make([]activity.Activity, 0, len(rows))
	for _, r := range rows {
		a, err := r.toActivity()
		if err != nil {
			s.logger.Warn("skipping malformed row", "id", r.ID, "error", err)
			continue
		}
		acts = append(acts, a)
	}
	return acts, nil
}

// Save replaces the content of the table in one transaction.
func (s *ActivityStore) Save(ctx context.Context, activities []activity.Activity) (err error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "starting transaction")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, "DELETE FROM activity"); err != nil {
		return errors.Wrap(err, "clearing activities")
	}
	for i, a := range activities {
		if _, err = tx.NamedExecContext(ctx, insertActivity, toRow(i, a)); err != nil {
			return errors.Wrapf(err, "inserting activity %d", a.ID)
		}
	}
	if err = tx.Commit(); err != nil {
		return errors.Wrap(err, "committing activities")
	}
	s.logger.Debug("schedule saved", "table", "activity", "count", len(activities))
	return nil
}
