// Package stats aggregates study time and assignment progress over the schedule.
package stats

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"cloud.google.com/go/civil"

	"github.com/trezcool/studyplanner/core"
	"github.com/trezcool/studyplanner/core/activity"
)

const (
	maxHoursPoints      = 40.0
	pointsPerHour       = 2.0
	maxCompletionPoints = 40.0
	baselinePoints      = 20.0
	overduePenalty      = 5.0
)

type (
	// Source is the read side of activity.Schedule.
	Source interface {
		All() []activity.Activity
	}

	SubjectHours struct {
		Subject string  `json:"subject"`
		Hours   float64 `json:"hours"`
	}

	SubjectCount struct {
		Subject string `json:"subject"`
		Count   int    `json:"count"`
	}

	DayHours struct {
		Day   time.Weekday `json:"-"`
		Name  string       `json:"day"`
		Date  civil.Date   `json:"date"`
		Hours float64      `json:"hours"`
	}

	// StatusHistogram buckets every assignment exactly once.
	StatusHistogram struct {
		Done       int `json:"done"`
		InProgress int `json:"in_progress"`
		NotStarted int `json:"not_started"`
		Overdue    int `json:"overdue"`
	}

	Report struct {
		Date              civil.Date      `json:"date"`
		TotalStudyHours   float64         `json:"total_study_hours"`
		WeekStudyHours    float64         `json:"week_study_hours"`
		MonthStudyHours   float64         `json:"month_study_hours"`
		HoursPerDay       []DayHours      `json:"hours_per_day"`
		HoursBySubject    []SubjectHours  `json:"hours_by_subject"`
		SubjectFrequency  []SubjectCount  `json:"subject_frequency"`
		CompletionRate    float64         `json:"completion_rate"`
		AssignmentStatus  StatusHistogram `json:"assignment_status"`
		AverageProgress   float64         `json:"average_progress"`
		OverdueCount      int             `json:"overdue_count"`
		ProductivityScore int             `json:"productivity_score"`
		ProductivityLabel string          `json:"productivity_label"`
	}

	// Engine recomputes every figure from the source on each call.
	Engine struct {
		source Source
	}
)

func (h StatusHistogram) Total() int {
	return h.Done + h.InProgress + h.NotStarted + h.Overdue
}

func NewEngine(source Source) *Engine {
	return &Engine{source: source}
}

// doneStudy returns the finished study sessions accepted by keep.
func (e *Engine) doneStudy(keep func(activity.Activity) bool) []activity.Activity {
	r := make([]activity.Activity, 0)
	for _, a := range e.source.All() {
		if a.Kind() == activity.KindStudySession && a.Status == activity.StatusDone && keep(a) {
			r = append(r, a)
		}
	}
	return r
}

func (e *Engine) assignments() []activity.Assignment {
	r := make([]activity.Assignment, 0)
	for _, a := range e.source.All() {
		if asg, ok := a.AsAssignment(); ok {
			r = append(r, asg)
		}
	}
	return r
}

func sumHours(acts []activity.Activity) float64 {
	var minutes int
	for _, a := range acts {
		minutes += a.DurationMinutes()
	}
	return float64(minutes) / 60.0
}

// Study time

// TotalStudyHours sums the duration of every finished study session.
func (e *Engine) TotalStudyHours() float64 {
	return sumHours(e.doneStudy(func(activity.Activity) bool { return true }))
}

func (e *Engine) StudyHoursThisWeek() float64 {
	return e.weekHours(core.Today())
}

func (e *Engine) weekHours(today civil.Date) float64 {
	monday, sunday := activity.WeekOf(today)
	return sumHours(e.doneStudy(func(a activity.Activity) bool {
		return !a.Date.Before(monday) && !a.Date.After(sunday)
	}))
}

func (e *Engine) StudyHoursThisMonth() float64 {
	return e.monthHours(core.Today())
}

func (e *Engine) monthHours(today civil.Date) float64 {
	return sumHours(e.doneStudy(func(a activity.Activity) bool {
		return a.Date.Year == today.Year && a.Date.Month == today.Month
	}))
}

// StudyHoursPerDay returns the seven days of the current week, Monday first.
func (e *Engine) StudyHoursPerDay() []DayHours {
	return e.hoursPerDay(core.Today())
}

func (e *Engine) hoursPerDay(today civil.Date) []DayHours {
	monday, _ := activity.WeekOf(today)
	days := make([]DayHours, 0, 7)
	for i := 0; i < 7; i++ {
		day := monday.AddDays(i)
		wd := day.In(time.UTC).Weekday()
		days = append(days, DayHours{
			Day:   wd,
			Name:  wd.String(),
			Date:  day,
			Hours: sumHours(e.doneStudy(func(a activity.Activity) bool { return a.Date == day })),
		})
	}
	return days
}

// StudyHoursBySubject ranks subjects by finished study time, ties by name.
func (e *Engine) StudyHoursBySubject() []SubjectHours {
	minutes := make(map[string]int)
	for _, a := range e.doneStudy(func(activity.Activity) bool { return true }) {
		minutes[a.Subject()] += a.DurationMinutes()
	}

	r := make([]SubjectHours, 0, len(minutes))
	for subject, m := range minutes {
		r = append(r, SubjectHours{Subject: subject, Hours: float64(m) / 60.0})
	}
	sort.Slice(r, func(i, j int) bool {
		if r[i].Hours != r[j].Hours {
			return r[i].Hours > r[j].Hours
		}
		return r[i].Subject < r[j].Subject
	})
	return r
}

// SubjectFrequency ranks subjects by their number of study sessions, whatever their status.
func (e *Engine) SubjectFrequency() []SubjectCount {
	counts := make(map[string]int)
	for _, a := range e.source.All() {
		if a.Kind() == activity.KindStudySession {
			counts[a.Subject()]++
		}
	}

	r := make([]SubjectCount, 0, len(counts))
	for subject, n := range counts {
		r = append(r, SubjectCount{Subject: subject, Count: n})
	}
	sort.Slice(r, func(i, j int) bool {
		if r[i].Count != r[j].Count {
			return r[i].Count > r[j].Count
		}
		return r[i].Subject < r[j].Subject
	})
	return r
}

// Assignments

// CompletionRate is the percentage of assignments at 100% progress; 0 without assignments.
func (e *Engine) CompletionRate() float64 {
	asgs := e.assignments()
	if len(asgs) == 0 {
		return 0
	}
	done := 0
	for _, asg := range asgs {
		if asg.IsDone() {
			done++
		}
	}
	return float64(done) * 100.0 / float64(len(asgs))
}

func (e *Engine) AssignmentStatus() StatusHistogram {
	return e.assignmentStatus(core.Today())
}

func (e *Engine) assignmentStatus(today civil.Date) StatusHistogram {
	var h StatusHistogram
	for _, asg := range e.assignments() {
		switch {
		case asg.IsDone():
			h.Done++
		case asg.IsOverdue(today):
			h.Overdue++
		case asg.Progress > 0:
			h.InProgress++
		default:
			h.NotStarted++
		}
	}
	return h
}

func (e *Engine) AverageProgress() float64 {
	asgs := e.assignments()
	if len(asgs) == 0 {
		return 0
	}
	total := 0
	for _, asg := range asgs {
		total += asg.Progress
	}
	return float64(total) / float64(len(asgs))
}

func (e *Engine) OverdueCount() int {
	return e.overdueCount(core.Today())
}

func (e *Engine) overdueCount(today civil.Date) int {
	n := 0
	for _, asg := range e.assignments() {
		if asg.IsOverdue(today) {
			n++
		}
	}
	return n
}

// Productivity

// Score combines weekly study hours (2 points an hour, at most 40), the completion rate
// (at most 40) and a 20 point baseline, minus 5 points per overdue assignment.
// The result is truncated and kept within [0, 100].
func Score(weekHours, completionRate float64, overdue int) int {
	score := math.Min(weekHours*pointsPerHour, maxHoursPoints) +
		completionRate/100.0*maxCompletionPoints +
		baselinePoints -
		float64(overdue)*overduePenalty
	return int(math.Max(0, math.Min(100, score)))
}

func Label(score int) string {
	switch {
	case score >= 90:
		return "Excellent"
	case score >= 75:
		return "Good"
	case score >= 60:
		return "Fair"
	case score >= 40:
		return "Needs improvement"
	default:
		return "Low"
	}
}

func (e *Engine) ProductivityScore() int {
	return e.productivityScore(core.Today())
}

func (e *Engine) productivityScore(today civil.Date) int {
	return Score(e.weekHours(today), e.CompletionRate(), e.overdueCount(today))
}

func (e *Engine) ProductivityLabel() string {
	return Label(e.ProductivityScore())
}

// Report takes a snapshot of every figure against a single "today".
func (e *Engine) Report() Report {
	return e.ReportOn(core.Today())
}

func (e *Engine) ReportOn(today civil.Date) Report {
	score := e.productivityScore(today)
	return Report{
		Date:              today,
		TotalStudyHours:   e.TotalStudyHours(),
		WeekStudyHours:    e.weekHours(today),
		MonthStudyHours:   e.monthHours(today),
		HoursPerDay:       e.hoursPerDay(today),
		HoursBySubject:    e.StudyHoursBySubject(),
		SubjectFrequency:  e.SubjectFrequency(),
		CompletionRate:    e.CompletionRate(),
		AssignmentStatus:  e.assignmentStatus(today),
		AverageProgress:   e.AverageProgress(),
		OverdueCount:      e.overdueCount(today),
		ProductivityScore: score,
		ProductivityLabel: Label(score),
	}
}

// Summary renders the headline figures of Report.
func (e *Engine) Summary() string {
	return e.Report().Summary()
}

func (r Report) Summary() string {
	var b strings.Builder
	b.WriteString("=== STATISTICS SUMMARY ===\n\n")
	fmt.Fprintf(&b, "Study hours this week: %.1f h\n", r.WeekStudyHours)
	fmt.Fprintf(&b, "Assignment completion: %.1f%%\n", r.CompletionRate)
	fmt.Fprintf(&b, "Productivity: %d%% - %s\n", r.ProductivityScore, r.ProductivityLabel)
	fmt.Fprintf(&b, "Overdue assignments: %d\n", r.OverdueCount)
	return b.String()
}
