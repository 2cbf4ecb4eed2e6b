package textfile

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/trezcool/studyplanner/core/activity"
)

const (
	separator    = "|"
	commonFields = 7
)

// tail length per variant
var tailFields = map[activity.Kind]int{
	activity.KindStudySession: 2,
	activity.KindAssignment:   4,
	activity.KindExam:         4,
}

// MarshalLine encodes an activity as
// `id|variant|title|date|startTime|endTime|status|<variant fields>`.
func MarshalLine(a activity.Activity) string {
	fields := []string{
		strconv.Itoa(a.ID),
		string(a.Kind()),
		a.Title,
		a.Date.String(),
		activity.FormatClock(a.Start),
		activity.FormatClock(a.End),
		string(a.Status),
	}
	switch d := a.Details.(type) {
	case activity.StudySession:
		fields = append(fields, d.SubjectName, d.Topic)
	case activity.Assignment:
		fields = append(fields, d.SubjectName, d.Deadline.String(), string(d.Priority), strconv.Itoa(d.Progress))
	case activity.Exam:
		fields = append(fields, d.SubjectName, d.Room, d.ExamKind, d.Syllabus)
	}
	return strings.Join(fields, separator)
}

// UnmarshalLine decodes a line written by MarshalLine. It also reads the variant tags and
// statuses of the legacy data files.
func UnmarshalLine(line string) (activity.Activity, error) {
	parts := strings.Split(line, separator)
	if len(parts) < commonFields {
		return activity.Activity{}, errors.Errorf("expected at least %d fields, got %d", commonFields, len(parts))
	}

	id, err := strconv.Atoi(parts[0])
	if err != nil {
		return activity.Activity{}, errors.Errorf("invalid id %q", parts[0])
	}
	kind, ok := activity.ParseKind(parts[1])
	if !ok {
		return activity.Activity{}, errors.Errorf("unknown variant %q", parts[1])
	}
	if want := commonFields + tailFields[kind]; len(parts) < want {
		return activity.Activity{}, errors.Errorf("%s expects %d fields, got %d", kind, want, len(parts))
	}

	title := parts[2]
	date, err := activity.ParseDate(parts[3])
	if err != nil {
		return activity.Activity{}, err
	}
	start, err := activity.ParseClock(parts[4])
	if err != nil {
		return activity.Activity{}, err
	}
	end, err := activity.ParseClock(parts[5])
	if err != nil {
		return activity.Activity{}, err
	}

	tail := parts[commonFields:]
	var a activity.Activity
	switch kind {
	case activity.KindStudySession:
		a = activity.NewStudySession(title, date, start, end, tail[0], tail[1])
	case activity.KindAssignment:
		deadline, err := activity.ParseDate(tail[1])
		if err != nil {
			return activity.Activity{}, err
		}
		priority, ok := activity.ParsePriority(tail[2])
		if !ok {
			priority = activity.Priority(tail[2])
		}
		progress, err := strconv.Atoi(tail[3])
		if err != nil {
			return activity.Activity{}, errors.Errorf("invalid progress %q", tail[3])
		}
		a = activity.NewAssignment(title, date, start, end, tail[0], deadline, priority)
		a.UpdateProgress(progress)
	case activity.KindExam:
		a = activity.NewExam(title, date, start, end, tail[0], tail[1], tail[2], tail[3])
	}

	a.ID = id
	if st, ok := activity.ParseStatus(parts[6]); ok {
		a.SetStatus(st)
	}
	return a, nil
}
