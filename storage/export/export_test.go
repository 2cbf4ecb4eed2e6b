package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	ics "github.com/arran4/golang-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/trezcool/studyplanner/core"
	"github.com/trezcool/studyplanner/core/activity"
)

func fixtures() []activity.Activity {
	day := civil.Date{Year: 2026, Month: 10, Day: 17}

	study := activity.NewStudySession(`Read "Clean Code"`, day, civil.Time{Hour: 9}, civil.Time{Hour: 10}, "Software, Eng", "Naming")
	study.ID = 1

	asg := activity.NewAssignment("Essay", day, civil.Time{Hour: 13}, civil.Time{Hour: 15}, "History", day.AddDays(3), activity.PriorityHigh)
	asg.ID = 2
	asg.UpdateProgress(40)

	done := activity.NewAssignment("Lab report", day, civil.Time{Hour: 16}, civil.Time{Hour: 17}, "Physics", day, activity.PriorityLow)
	done.ID = 3
	done.UpdateProgress(100)

	exam := activity.NewExam("Midterm", day.AddDays(7), civil.Time{Hour: 8}, civil.Time{Hour: 10}, "Math", "R-101", "Midterm", "Chapters 1-4")
	exam.ID = 4
	return []activity.Activity{study, asg, done, exam}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "csv", want: FormatCSV},
		{in: ".XLSX", want: FormatXLSX},
		{in: " ics ", want: FormatICS},
		{in: "pdf", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, fixtures()))

	want := strings.Join([]string{
		"ID,Type,Title,Date,StartTime,EndTime,Status,Subject,Detail",
		`1,StudySession,"Read ""Clean Code""",2026-10-17,09:00,10:00,NotStarted,"Software, Eng","Naming"`,
		`2,Assignment,"Essay",2026-10-17,13:00,15:00,InProgress,"History","Deadline: 2026-10-20 | Progress: 40%"`,
		`3,Assignment,"Lab report",2026-10-17,16:00,17:00,Done,"Physics","Deadline: 2026-10-17 | Progress: 100%"`,
		`4,Exam,"Midterm",2026-10-24,08:00,10:00,NotStarted,"Math","R-101 | Midterm"`,
	}, "\n") + "\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteCSV_empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))
	assert.Equal(t, "ID,Type,Title,Date,StartTime,EndTime,Status,Subject,Detail\n", buf.String())
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatXLSX, fixtures()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetName}, f.GetSheetList())
	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, columns, rows[0])
	assert.Equal(t, []string{"2", "Assignment", "Essay", "2026-10-17", "13:00", "15:00", "InProgress", "History", "Deadline: 2026-10-20 | Progress: 40%"}, rows[2])
	assert.Equal(t, "R-101 | Midterm", rows[4][8])
}

func TestWriteICS(t *testing.T) {
	core.NowFunc = func() time.Time { return time.Date(2026, 10, 17, 10, 0, 0, 0, time.UTC) }
	t.Cleanup(func() { core.NowFunc = time.Now })

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatICS, fixtures()))

	cal, err := ics.ParseCalendar(strings.NewReader(buf.String()))
	require.NoError(t, err)

	summaries := make([]string, 0)
	uids := make(map[string]bool)
	for _, ev := range cal.Events() {
		summaries = append(summaries, ev.GetProperty(ics.ComponentPropertySummary).Value)
		uids[ev.Id()] = true
	}
	// the finished lab report gets no deadline event
	assert.Equal(t, []string{
		`[StudySession] Read "Clean Code"`,
		"[Assignment] Essay",
		"Deadline: Essay",
		"[Assignment] Lab report",
		"[Exam] Midterm",
	}, summaries)
	assert.Len(t, uids, 5)

	var again bytes.Buffer
	require.NoError(t, WriteICS(&again, fixtures()))
	assert.Equal(t, buf.String(), again.String(), "uids and stamps should be stable")
}
