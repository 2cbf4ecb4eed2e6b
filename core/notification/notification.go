// Package notification derives deadline and exam alerts from the schedule.
// Nothing is stored: every call rescans the activities against today.
package notification

import (
	"fmt"
	"strings"

	"cloud.google.com/go/civil"

	"github.com/trezcool/studyplanner/core"
	"github.com/trezcool/studyplanner/core/activity"
)

type Type string

const (
	TypeOverdue       Type = "overdue"
	TypeDueToday      Type = "due_today"
	TypeDueTomorrow   Type = "due_tomorrow"
	TypeDueSoon       Type = "due_soon"
	TypeExamToday     Type = "exam_today"
	TypeExamTomorrow  Type = "exam_tomorrow"
	TypeExamSoon      Type = "exam_soon"
	TypeStudyReminder Type = "study_today"
)

const (
	assignmentHorizon = 3
	examHorizon       = 7
)

type Alert struct {
	Type       Type   `json:"type"`
	ActivityID int    `json:"activity_id"`
	Title      string `json:"title"`
	Subject    string `json:"subject"`
	Days       int    `json:"days"`
	Message    string `json:"message"`
}

// IsImportant is true for overdue work and anything happening today.
func (a Alert) IsImportant() bool {
	switch a.Type {
	case TypeOverdue, TypeDueToday, TypeExamToday:
		return true
	}
	return false
}

func (a Alert) isAssignment() bool {
	switch a.Type {
	case TypeOverdue, TypeDueToday, TypeDueTomorrow, TypeDueSoon:
		return true
	}
	return false
}

func (a Alert) isExam() bool {
	switch a.Type {
	case TypeExamToday, TypeExamTomorrow, TypeExamSoon:
		return true
	}
	return false
}

func (a Alert) String() string { return a.Message }

// Source is the read side of activity.Schedule.
type Source interface {
	All() []activity.Activity
}

type Engine struct {
	source Source
}

func NewEngine(source Source) *Engine {
	return &Engine{source: source}
}

// Check evaluates the schedule against core.Today().
func (e *Engine) Check() []Alert {
	return e.CheckOn(core.Today())
}

// CheckOn returns assignment alerts, then exam alerts, then study reminders,
// each group in schedule order.
func (e *Engine) CheckOn(today civil.Date) []Alert {
	acts := e.source.All()
	alerts := make([]Alert, 0)

	for _, a := range acts {
		if asg, ok := a.AsAssignment(); ok {
			if alert, ok := assignmentAlert(a, asg, today); ok {
				alerts = append(alerts, alert)
			}
		}
	}
	for _, a := range acts {
		if exam, ok := a.AsExam(); ok {
			if alert, ok := examAlert(a, exam, today); ok {
				alerts = append(alerts, alert)
			}
		}
	}
	for _, a := range acts {
		if study, ok := a.AsStudySession(); ok && a.Date == today && a.Status == activity.StatusNotStarted {
			alerts = append(alerts, Alert{
				Type:       TypeStudyReminder,
				ActivityID: a.ID,
				Title:      a.Title,
				Subject:    study.SubjectName,
				Message:    fmt.Sprintf("STUDY SESSION: %s - %s (%s)", study.SubjectName, study.Topic, activity.FormatClock(a.Start)),
			})
		}
	}
	return alerts
}

func assignmentAlert(a activity.Activity, asg activity.Assignment, today civil.Date) (Alert, bool) {
	if asg.IsDone() {
		return Alert{}, false
	}
	days := asg.DaysRemaining(today)
	alert := Alert{ActivityID: a.ID, Title: a.Title, Subject: asg.SubjectName, Days: days}
	switch {
	case days < 0:
		alert.Type = TypeOverdue
		alert.Message = fmt.Sprintf("OVERDUE: assignment '%s' - deadline %s", a.Title, asg.Deadline)
	case days == 0:
		alert.Type = TypeDueToday
		alert.Message = fmt.Sprintf("DUE TODAY: assignment '%s' - %s", a.Title, asg.SubjectName)
	case days == 1:
		alert.Type = TypeDueTomorrow
		alert.Message = fmt.Sprintf("DUE TOMORROW: assignment '%s' - %s", a.Title, asg.SubjectName)
	case days <= assignmentHorizon:
		alert.Type = TypeDueSoon
		alert.Message = fmt.Sprintf("DUE IN %d DAYS: assignment '%s' - %s", days, a.Title, asg.SubjectName)
	default:
		return Alert{}, false
	}
	return alert, true
}

func examAlert(a activity.Activity, exam activity.Exam, today civil.Date) (Alert, bool) {
	days := a.Date.DaysSince(today)
	alert := Alert{ActivityID: a.ID, Title: a.Title, Subject: exam.SubjectName, Days: days}
	switch {
	case days < 0:
		return Alert{}, false
	case days == 0:
		alert.Type = TypeExamToday
		alert.Message = fmt.Sprintf("EXAM TODAY: %s - %s (%s)", exam.ExamKind, exam.SubjectName, activity.FormatClock(a.Start))
	case days == 1:
		alert.Type = TypeExamTomorrow
		alert.Message = fmt.Sprintf("EXAM TOMORROW: %s - %s", exam.ExamKind, exam.SubjectName)
	case days <= examHorizon:
		alert.Type = TypeExamSoon
		alert.Message = fmt.Sprintf("EXAM IN %d DAYS: %s - %s", days, exam.ExamKind, exam.SubjectName)
	default:
		return Alert{}, false
	}
	return alert, true
}

// Important returns the overdue and due/occurring today alerts.
func (e *Engine) Important() []Alert {
	return FilterImportant(e.Check())
}

func (e *Engine) HasImportant() bool {
	return len(e.Important()) > 0
}

func (e *Engine) Count() int {
	return len(e.Check())
}

func (e *Engine) Summary() string {
	return Summarize(e.Check())
}

func FilterImportant(alerts []Alert) []Alert {
	r := make([]Alert, 0)
	for _, a := range alerts {
		if a.IsImportant() {
			r = append(r, a)
		}
	}
	return r
}

// Summarize counts overdue assignments, pending (not yet overdue) assignments and upcoming
// exams on one line, leaving out the empty categories.
func Summarize(alerts []Alert) string {
	if len(alerts) == 0 {
		return "No notifications"
	}

	var overdue, pending, exams int
	for _, a := range alerts {
		switch {
		case a.Type == TypeOverdue:
			overdue++
		case a.isAssignment():
			pending++
		case a.isExam():
			exams++
		}
	}

	parts := make([]string, 0, 3)
	if overdue > 0 {
		parts = append(parts, fmt.Sprintf("%d overdue", overdue))
	}
	if pending > 0 {
		parts = append(parts, fmt.Sprintf("%d pending assignment(s)", pending))
	}
	if exams > 0 {
		parts = append(parts, fmt.Sprintf("%d upcoming exam(s)", exams))
	}
	if len(parts) == 0 {
		return fmt.Sprintf("%d study reminder(s)", len(alerts))
	}
	return strings.Join(parts, " | ")
}
