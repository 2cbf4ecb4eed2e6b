package stats_test

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/studyplanner/core"
	"github.com/trezcool/studyplanner/core/activity"
	"github.com/trezcool/studyplanner/core/stats"
	"github.com/trezcool/studyplanner/tests"
)

type list []activity.Activity

func (l list) All() []activity.Activity { return l }

// today is Saturday 2026-10-17; its week runs from Monday 10-12 to Sunday 10-18.
func fixNow(t *testing.T) {
	t.Helper()
	core.NowFunc = func() time.Time { return time.Date(2026, 10, 17, 10, 0, 0, 0, time.Local) }
	t.Cleanup(func() { core.NowFunc = time.Now })
}

func TestEngine_studyHours(t *testing.T) {
	fixNow(t)
	d := func(s string) civil.Date { return testutil.Date(t, s) }
	eng := stats.NewEngine(list{
		testutil.Study(t, "Belajar OOP", d("2026-10-12"), 120, "PBO", activity.StatusDone),
		testutil.Study(t, "Study limits", d("2026-10-12"), 60, "Math", activity.StatusNotStarted),
		testutil.Study(t, "Study series", d("2026-10-18"), 90, "Math", activity.StatusDone),
		testutil.Study(t, "Last week", d("2026-10-11"), 30, "Math", activity.StatusDone),
		testutil.Study(t, "Last month", d("2026-09-30"), 60, "PBO", activity.StatusDone),
		testutil.Exam(t, "Final", d("2026-10-13"), "Math"),
	})

	assert.InDelta(t, 5.0, eng.TotalStudyHours(), 1e-9)
	assert.InDelta(t, 3.5, eng.StudyHoursThisWeek(), 1e-9)
	assert.InDelta(t, 4.0, eng.StudyHoursThisMonth(), 1e-9)

	days := eng.StudyHoursPerDay()
	require.Len(t, days, 7)
	assert.Equal(t, time.Monday, days[0].Day)
	assert.Equal(t, d("2026-10-12"), days[0].Date)
	assert.InDelta(t, 2.0, days[0].Hours, 1e-9)
	assert.Equal(t, time.Sunday, days[6].Day)
	assert.InDelta(t, 1.5, days[6].Hours, 1e-9)
	for _, day := range days[1:6] {
		assert.Zero(t, day.Hours, day.Name)
	}

	assert.Equal(t, []stats.SubjectHours{{Subject: "PBO", Hours: 3}, {Subject: "Math", Hours: 2}}, eng.StudyHoursBySubject())
	assert.Equal(t, []stats.SubjectCount{{Subject: "Math", Count: 3}, {Subject: "PBO", Count: 2}}, eng.SubjectFrequency())
}

func TestEngine_doneStudyHours(t *testing.T) {
	fixNow(t)
	today := core.Today()
	eng := stats.NewEngine(list{
		testutil.Study(t, "Belajar", today, 120, "PBO", activity.StatusDone),
		testutil.Study(t, "Study", today, 60, "PBO", activity.StatusNotStarted),
	})
	assert.Equal(t, 2.0, eng.TotalStudyHours())
}

func TestEngine_AssignmentStatus(t *testing.T) {
	fixNow(t)
	today := core.Today()
	tests := []struct {
		name string
		acts list
		want stats.StatusHistogram
	}{
		{name: "empty", acts: list{}, want: stats.StatusHistogram{}},
		{
			name: "every bucket",
			acts: list{
				testutil.Assignment(t, "done late", today.AddDays(-3), 100, "A"),
				testutil.Assignment(t, "overdue started", today.AddDays(-1), 40, "A"),
				testutil.Assignment(t, "overdue", today.AddDays(-1), 0, "A"),
				testutil.Assignment(t, "started", today, 10, "A"),
				testutil.Assignment(t, "not started", today.AddDays(5), 0, "A"),
				testutil.Exam(t, "not an assignment", today, "A"),
			},
			want: stats.StatusHistogram{Done: 1, InProgress: 1, NotStarted: 1, Overdue: 2},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := stats.NewEngine(tt.acts).AssignmentStatus()
			assert.Equal(t, tt.want, got)

			n := 0
			for _, a := range tt.acts {
				if a.Kind() == activity.KindAssignment {
					n++
				}
			}
			assert.Equal(t, n, got.Total())
		})
	}
}

func TestEngine_assignments(t *testing.T) {
	fixNow(t)
	today := core.Today()

	empty := stats.NewEngine(list{})
	assert.Zero(t, empty.CompletionRate())
	assert.Zero(t, empty.AverageProgress())
	assert.Zero(t, empty.OverdueCount())

	eng := stats.NewEngine(list{
		testutil.Assignment(t, "a", today.AddDays(-1), 100, "A"),
		testutil.Assignment(t, "b", today.AddDays(-1), 50, "A"),
		testutil.Assignment(t, "c", today, 0, "A"),
		testutil.Assignment(t, "d", today.AddDays(2), 30, "A"),
	})
	assert.Equal(t, 25.0, eng.CompletionRate())
	assert.Equal(t, 45.0, eng.AverageProgress())
	assert.Equal(t, 1, eng.OverdueCount())
}

func TestScore(t *testing.T) {
	tests := []struct {
		weekHours float64
		rate      float64
		overdue   int
		want      int
	}{
		{weekHours: 10, rate: 50, overdue: 1, want: 55},
		{weekHours: 0, rate: 0, overdue: 0, want: 20},
		{weekHours: 30, rate: 100, overdue: 0, want: 100},
		{weekHours: 0, rate: 0, overdue: 10, want: 0},
		{weekHours: 1.3, rate: 33.3, overdue: 0, want: 35},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, stats.Score(tt.weekHours, tt.rate, tt.overdue), "%+v", tt)
	}
}

func TestLabel(t *testing.T) {
	tests := map[int]string{
		100: "Excellent",
		90:  "Excellent",
		89:  "Good",
		75:  "Good",
		60:  "Fair",
		59:  "Needs improvement",
		40:  "Needs improvement",
		39:  "Low",
		0:   "Low",
	}
	for score, want := range tests {
		assert.Equal(t, want, stats.Label(score), "score %d", score)
	}
}

func TestEngine_Report(t *testing.T) {
	fixNow(t)
	d := func(s string) civil.Date { return testutil.Date(t, s) }
	acts := list{
		testutil.Assignment(t, "done", d("2026-10-15"), 100, "A"),
		testutil.Assignment(t, "late", d("2026-10-16"), 0, "A"),
	}
	for _, day := range []string{"2026-10-12", "2026-10-13", "2026-10-14", "2026-10-15", "2026-10-16"} {
		acts = append(acts, testutil.Study(t, "Study", d(day), 120, "Math", activity.StatusDone))
	}
	eng := stats.NewEngine(acts)

	assert.Equal(t, 55, eng.ProductivityScore())
	assert.Equal(t, "Needs improvement", eng.ProductivityLabel())

	r := eng.Report()
	assert.Equal(t, d("2026-10-17"), r.Date)
	assert.Equal(t, 10.0, r.WeekStudyHours)
	assert.Equal(t, 50.0, r.CompletionRate)
	assert.Equal(t, 1, r.OverdueCount)
	assert.Equal(t, 55, r.ProductivityScore)
	assert.Equal(t, 2, r.AssignmentStatus.Total())

	summary := eng.Summary()
	assert.Contains(t, summary, "Study hours this week: 10.0 h")
	assert.Contains(t, summary, "Assignment completion: 50.0%")
	assert.Contains(t, summary, "Productivity: 55% - Needs improvement")
	assert.Contains(t, summary, "Overdue assignments: 1")
}
