// Package export writes the schedule as CSV, XLSX or iCalendar.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"

	"github.com/trezcool/studyplanner/core/activity"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatICS  Format = "ics"
)

var ErrUnknownFormat = errors.New("unknown export format")

var Formats = []Format{FormatCSV, FormatXLSX, FormatICS}

func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")))
	switch f {
	case FormatCSV, FormatXLSX, FormatICS:
		return f, nil
	}
	return "", errors.Wrapf(ErrUnknownFormat, "%q", s)
}

func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatICS:
		return "text/calendar; charset=utf-8"
	}
	return "application/octet-stream"
}

func (f Format) Filename(base string) string {
	return base + "." + string(f)
}

// Write encodes activities in the given format.
func Write(w io.Writer, f Format, activities []activity.Activity) error {
	switch f {
	case FormatCSV:
		return WriteCSV(w, activities)
	case FormatXLSX:
		return WriteXLSX(w, activities)
	case FormatICS:
		return WriteICS(w, activities)
	}
	return errors.Wrapf(ErrUnknownFormat, "%q", f)
}

var columns = []string{"ID", "Type", "Title", "Date", "StartTime", "EndTime", "Status", "Subject", "Detail"}

// detail is the variant specific column.
func detail(a activity.Activity) string {
	switch d := a.Details.(type) {
	case activity.StudySession:
		return d.Topic
	case activity.Assignment:
		return fmt.Sprintf("Deadline: %s | Progress: %d%%", d.Deadline, d.Progress)
	case activity.Exam:
		return d.Room + " | " + d.ExamKind
	}
	return ""
}

func row(a activity.Activity) []string {
	return []string{
		fmt.Sprint(a.ID),
		string(a.Kind()),
		a.Title,
		a.Date.String(),
		activity.FormatClock(a.Start),
		activity.FormatClock(a.End),
		string(a.Status),
		a.Subject(),
		detail(a),
	}
}
