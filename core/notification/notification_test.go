package notification_test

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/studyplanner/core"
	"github.com/trezcool/studyplanner/core/activity"
	"github.com/trezcool/studyplanner/core/notification"
	"github.com/trezcool/studyplanner/tests"
)

type list []activity.Activity

func (l list) All() []activity.Activity { return l }

func withIDs(acts ...activity.Activity) list {
	for i := range acts {
		acts[i].ID = i + 1
	}
	return acts
}

func types(alerts []notification.Alert) []notification.Type {
	r := make([]notification.Type, 0, len(alerts))
	for _, a := range alerts {
		r = append(r, a.Type)
	}
	return r
}

func TestEngine_CheckOn_assignments(t *testing.T) {
	today := testutil.Date(t, "2026-10-17")
	tests := []struct {
		name     string
		deadline civil.Date
		progress int
		want     []notification.Type
		days     int
	}{
		{name: "overdue", deadline: today.AddDays(-1), progress: 50, want: []notification.Type{notification.TypeOverdue}, days: -1},
		{name: "overdue but finished", deadline: today.AddDays(-1), progress: 100, want: []notification.Type{}},
		{name: "due today", deadline: today, progress: 0, want: []notification.Type{notification.TypeDueToday}},
		{name: "due tomorrow", deadline: today.AddDays(1), progress: 10, want: []notification.Type{notification.TypeDueTomorrow}, days: 1},
		{name: "due in 2 days", deadline: today.AddDays(2), progress: 10, want: []notification.Type{notification.TypeDueSoon}, days: 2},
		{name: "due in 3 days", deadline: today.AddDays(3), progress: 99, want: []notification.Type{notification.TypeDueSoon}, days: 3},
		{name: "due in 4 days", deadline: today.AddDays(4), progress: 0, want: []notification.Type{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := withIDs(testutil.Assignment(t, "Essay", tt.deadline, tt.progress, "History"))
			alerts := notification.NewEngine(src).CheckOn(today)

			assert.Equal(t, tt.want, types(alerts))
			if len(alerts) == 1 {
				assert.Equal(t, 1, alerts[0].ActivityID)
				assert.Equal(t, tt.days, alerts[0].Days)
				assert.Equal(t, "History", alerts[0].Subject)
			}
		})
	}
}

func TestEngine_CheckOn_exams(t *testing.T) {
	today := testutil.Date(t, "2026-10-17")
	tests := []struct {
		offset int
		want   []notification.Type
	}{
		{offset: -1, want: []notification.Type{}},
		{offset: 0, want: []notification.Type{notification.TypeExamToday}},
		{offset: 1, want: []notification.Type{notification.TypeExamTomorrow}},
		{offset: 2, want: []notification.Type{notification.TypeExamSoon}},
		{offset: 7, want: []notification.Type{notification.TypeExamSoon}},
		{offset: 8, want: []notification.Type{}},
	}
	for _, tt := range tests {
		exam := testutil.Exam(t, "Midterm", today.AddDays(tt.offset), "Math")
		alerts := notification.NewEngine(withIDs(exam)).CheckOn(today)
		assert.Equal(t, tt.want, types(alerts), "offset %d", tt.offset)
	}
}

func TestEngine_CheckOn_studyReminders(t *testing.T) {
	today := testutil.Date(t, "2026-10-17")
	src := withIDs(
		testutil.Study(t, "Read", today, 60, "Math", activity.StatusNotStarted),
		testutil.Study(t, "Review", today, 60, "Math", activity.StatusInProgress),
		testutil.Study(t, "Tomorrow", today.AddDays(1), 60, "Math", activity.StatusNotStarted),
	)
	alerts := notification.NewEngine(src).CheckOn(today)

	require.Len(t, alerts, 1)
	assert.Equal(t, notification.TypeStudyReminder, alerts[0].Type)
	assert.Equal(t, 1, alerts[0].ActivityID)
	assert.Contains(t, alerts[0].Message, "09:00")
}

func TestEngine_CheckOn_order(t *testing.T) {
	today := testutil.Date(t, "2026-10-17")
	src := withIDs(
		testutil.Study(t, "Read", today, 60, "Math", activity.StatusNotStarted),
		testutil.Exam(t, "Quiz", today.AddDays(1), "Physics"),
		testutil.Assignment(t, "Lab", today.AddDays(2), 0, "Physics"),
		testutil.Exam(t, "Final", today, "Math"),
		testutil.Assignment(t, "Essay", today.AddDays(-2), 30, "History"),
	)
	alerts := notification.NewEngine(src).CheckOn(today)

	got := make([]int, 0, len(alerts))
	for _, a := range alerts {
		got = append(got, a.ActivityID)
	}
	assert.Equal(t, []int{3, 5, 2, 4, 1}, got)
}

func TestEngine_queries(t *testing.T) {
	core.NowFunc = func() time.Time { return time.Date(2026, 10, 17, 10, 0, 0, 0, time.Local) }
	t.Cleanup(func() { core.NowFunc = time.Now })
	today := core.Today()

	empty := notification.NewEngine(list{})
	assert.Equal(t, 0, empty.Count())
	assert.False(t, empty.HasImportant())
	assert.Equal(t, "No notifications", empty.Summary())

	eng := notification.NewEngine(withIDs(
		testutil.Assignment(t, "Essay", today.AddDays(-1), 50, "History"),
		testutil.Assignment(t, "Lab", today, 0, "Physics"),
		testutil.Assignment(t, "Report", today.AddDays(3), 20, "Physics"),
		testutil.Exam(t, "Final", today.AddDays(5), "Math"),
		testutil.Study(t, "Read", today, 60, "Math", activity.StatusNotStarted),
	))
	assert.Equal(t, 5, eng.Count())
	assert.True(t, eng.HasImportant())
	assert.Equal(t, []notification.Type{notification.TypeOverdue, notification.TypeDueToday}, types(eng.Important()))
	assert.Equal(t, "1 overdue | 2 pending assignment(s) | 1 upcoming exam(s)", eng.Summary())
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name   string
		alerts []notification.Alert
		want   string
	}{
		{name: "empty", alerts: nil, want: "No notifications"},
		{name: "exams only", alerts: []notification.Alert{{Type: notification.TypeExamSoon}, {Type: notification.TypeExamToday}}, want: "2 upcoming exam(s)"},
		{name: "overdue only", alerts: []notification.Alert{{Type: notification.TypeOverdue}}, want: "1 overdue"},
		{name: "study only", alerts: []notification.Alert{{Type: notification.TypeStudyReminder}}, want: "1 study reminder(s)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, notification.Summarize(tt.alerts))
		})
	}
}
