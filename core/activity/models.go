package activity

import (
	"encoding/json"
	"fmt"
	"strings"

	"cloud.google.com/go/civil"
)

type Kind string

const (
	KindStudySession Kind = "StudySession"
	KindAssignment   Kind = "Assignment"
	KindExam         Kind = "Exam"
)

var Kinds = []Kind{KindStudySession, KindAssignment, KindExam}

// legacy tags written by the first version of the planner
var kindAliases = map[string]Kind{
	"studysession":    KindStudySession,
	"study":           KindStudySession,
	"kegiatanbelajar": KindStudySession,
	"assignment":      KindAssignment,
	"kegiatantugas":   KindAssignment,
	"exam":            KindExam,
	"kegiatanujian":   KindExam,
}

func ParseKind(s string) (Kind, bool) {
	k, ok := kindAliases[strings.ToLower(strings.TrimSpace(s))]
	return k, ok
}

func (k Kind) IsValid() bool {
	switch k {
	case KindStudySession, KindAssignment, KindExam:
		return true
	}
	return false
}

type Status string

const (
	StatusNotStarted Status = "NotStarted"
	StatusInProgress Status = "InProgress"
	StatusDone       Status = "Done"
)

var Statuses = []Status{StatusNotStarted, StatusInProgress, StatusDone}

var statusAliases = map[string]Status{
	"notstarted":        StatusNotStarted,
	"not started":       StatusNotStarted,
	"belum mulai":       StatusNotStarted,
	"inprogress":        StatusInProgress,
	"in progress":       StatusInProgress,
	"sedang berjalan":   StatusInProgress,
	"sedang dikerjakan": StatusInProgress,
	"done":              StatusDone,
	"selesai":           StatusDone,
}

func ParseStatus(s string) (Status, bool) {
	st, ok := statusAliases[strings.ToLower(strings.TrimSpace(s))]
	return st, ok
}

func (s Status) IsValid() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusDone:
		return true
	}
	return false
}

type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

var priorityAliases = map[string]Priority{
	"high":   PriorityHigh,
	"tinggi": PriorityHigh,
	"medium": PriorityMedium,
	"sedang": PriorityMedium,
	"low":    PriorityLow,
	"rendah": PriorityLow,
}

func ParsePriority(s string) (Priority, bool) {
	p, ok := priorityAliases[strings.ToLower(strings.TrimSpace(s))]
	return p, ok
}

// Details is the variant part of an Activity. The set of implementations is closed:
// StudySession, Assignment and Exam.
type Details interface {
	Kind() Kind
	Subject() string
	details()
}

type StudySession struct {
	SubjectName string `json:"subject"`
	Topic       string `json:"topic"`
}

func (StudySession) Kind() Kind        { return KindStudySession }
func (s StudySession) Subject() string { return s.SubjectName }
func (StudySession) details()          {}

type Assignment struct {
	SubjectName string     `json:"subject"`
	Deadline    civil.Date `json:"deadline"`
	Priority    Priority   `json:"priority"`
	Progress    int        `json:"progress"`
}

func (Assignment) Kind() Kind        { return KindAssignment }
func (a Assignment) Subject() string { return a.SubjectName }
func (Assignment) details()          {}

// DaysRemaining is the number of days from today until the deadline; negative once it passed.
func (a Assignment) DaysRemaining(today civil.Date) int {
	return a.Deadline.DaysSince(today)
}

func (a Assignment) IsDone() bool { return a.Progress == 100 }

func (a Assignment) IsOverdue(today civil.Date) bool {
	return today.After(a.Deadline) && a.Progress < 100
}

type Exam struct {
	SubjectName string `json:"subject"`
	Room        string `json:"room"`
	ExamKind    string `json:"exam_kind"`
	Syllabus    string `json:"syllabus"`
}

func (Exam) Kind() Kind        { return KindExam }
func (e Exam) Subject() string { return e.SubjectName }
func (Exam) details()          {}

type Activity struct {
	ID      int        `json:"id"`
	Title   string     `json:"title"`
	Date    civil.Date `json:"date"`
	Start   civil.Time `json:"start"`
	End     civil.Time `json:"end"`
	Status  Status     `json:"status"`
	Details Details    `json:"details"`
}

func newActivity(title string, date civil.Date, start, end civil.Time, d Details) Activity {
	return Activity{
		Title:   title,
		Date:    date,
		Start:   start,
		End:     end,
		Status:  StatusNotStarted,
		Details: d,
	}
}

func NewStudySession(title string, date civil.Date, start, end civil.Time, subject, topic string) Activity {
	return newActivity(title, date, start, end, StudySession{SubjectName: subject, Topic: topic})
}

// NewAssignment returns an Assignment with no progress yet.
func NewAssignment(title string, date civil.Date, start, end civil.Time, subject string, deadline civil.Date, priority Priority) Activity {
	return newActivity(title, date, start, end, Assignment{SubjectName: subject, Deadline: deadline, Priority: priority})
}

func NewExam(title string, date civil.Date, start, end civil.Time, subject, room, examKind, syllabus string) Activity {
	return newActivity(title, date, start, end, Exam{SubjectName: subject, Room: room, ExamKind: examKind, Syllabus: syllabus})
}

func (a Activity) Kind() Kind {
	if a.Details == nil {
		return ""
	}
	return a.Details.Kind()
}

func (a Activity) Subject() string {
	if a.Details == nil {
		return ""
	}
	return a.Details.Subject()
}

// SetStatus ignores invalid statuses.
func (a *Activity) SetStatus(st Status) {
	if st.IsValid() {
		a.Status = st
	}
}

// IsToday reports whether the activity (the exam sitting, for exams) takes place on today.
func (a Activity) IsToday(today civil.Date) bool { return a.Date == today }

// DurationMinutes is End - Start, in whole minutes.
func (a Activity) DurationMinutes() int {
	return (secondsOfDay(a.End) - secondsOfDay(a.Start)) / 60
}

func (a Activity) DurationHours() float64 {
	return float64(a.DurationMinutes()) / 60.0
}

func (a Activity) AsStudySession() (StudySession, bool) {
	s, ok := a.Details.(StudySession)
	return s, ok
}

func (a Activity) AsAssignment() (Assignment, bool) {
	asg, ok := a.Details.(Assignment)
	return asg, ok
}

func (a Activity) AsExam() (Exam, bool) {
	e, ok := a.Details.(Exam)
	return e, ok
}

// UpdateProgress sets an assignment's progress and derives its status from it.
// It reports false, leaving the activity untouched, for non-assignments and values outside [0, 100].
func (a *Activity) UpdateProgress(progress int) bool {
	asg, ok := a.AsAssignment()
	if !ok || progress < 0 || progress > 100 {
		return false
	}
	asg.Progress = progress
	a.Details = asg

	switch progress {
	case 0:
		a.Status = StatusNotStarted
	case 100:
		a.Status = StatusDone
	default:
		a.Status = StatusInProgress
	}
	return true
}

// Detail renders a multi-line description of the activity.
func (a Activity) Detail(today civil.Date) string {
	var b strings.Builder
	switch d := a.Details.(type) {
	case StudySession:
		fmt.Fprintln(&b, "=== STUDY SESSION ===")
		fmt.Fprintf(&b, "Title: %s\n", a.Title)
		fmt.Fprintf(&b, "Subject: %s\n", d.SubjectName)
		fmt.Fprintf(&b, "Topic: %s\n", d.Topic)
		fmt.Fprintf(&b, "Date: %s\n", a.Date)
		fmt.Fprintf(&b, "Time: %s - %s (%d minutes)\n", FormatClock(a.Start), FormatClock(a.End), a.DurationMinutes())
	case Assignment:
		left := "OVERDUE!"
		if days := d.DaysRemaining(today); days > 0 {
			left = fmt.Sprintf("%d days left", days)
		} else if days == 0 {
			left = "due today"
		}
		fmt.Fprintln(&b, "=== ASSIGNMENT ===")
		fmt.Fprintf(&b, "Title: %s\n", a.Title)
		fmt.Fprintf(&b, "Subject: %s\n", d.SubjectName)
		fmt.Fprintf(&b, "Deadline: %s (%s)\n", d.Deadline, left)
		fmt.Fprintf(&b, "Priority: %s\n", d.Priority)
		fmt.Fprintf(&b, "Progress: %d%%\n", d.Progress)
		fmt.Fprintf(&b, "Work time: %s - %s\n", FormatClock(a.Start), FormatClock(a.End))
	case Exam:
		fmt.Fprintln(&b, "=== EXAM ===")
		fmt.Fprintf(&b, "Title: %s\n", a.Title)
		fmt.Fprintf(&b, "Subject: %s\n", d.SubjectName)
		fmt.Fprintf(&b, "Kind: %s\n", d.ExamKind)
		fmt.Fprintf(&b, "Date: %s\n", a.Date)
		fmt.Fprintf(&b, "Time: %s - %s\n", FormatClock(a.Start), FormatClock(a.End))
		fmt.Fprintf(&b, "Room: %s\n", d.Room)
		fmt.Fprintf(&b, "Syllabus: %s\n", d.Syllabus)
	}
	fmt.Fprintf(&b, "Status: %s", a.Status)
	return b.String()
}

// MarshalJSON flattens the variant details next to the common fields.
func (a Activity) MarshalJSON() ([]byte, error) {
	type common struct {
		ID       int        `json:"id"`
		Kind     Kind       `json:"kind"`
		Title    string     `json:"title"`
		Date     civil.Date `json:"date"`
		Start    string     `json:"start"`
		End      string     `json:"end"`
		Status   Status     `json:"status"`
		Duration int        `json:"duration_minutes"`
		Details  Details    `json:"details"`
	}
	return json.Marshal(common{
		ID:       a.ID,
		Kind:     a.Kind(),
		Title:    a.Title,
		Date:     a.Date,
		Start:    FormatClock(a.Start),
		End:      FormatClock(a.End),
		Status:   a.Status,
		Duration: a.DurationMinutes(),
		Details:  a.Details,
	})
}

func (a Activity) String() string {
	return fmt.Sprintf("[%s] %s - %s (%s)", a.Date, FormatClock(a.Start), FormatClock(a.End), a.Title)
}
