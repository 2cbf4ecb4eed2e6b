package activity

import (
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/studyplanner/core"
)

// NewActivity contains the information needed to create or replace an Activity.
// The status of an assignment follows its progress when Progress is set.
type NewActivity struct {
	Kind     string `json:"kind" validate:"required,oneof=StudySession Assignment Exam"`
	Title    string `json:"title" validate:"required,nopipe"`
	Date     string `json:"date" validate:"required"`
	Start    string `json:"start" validate:"required"`
	End      string `json:"end" validate:"required"`
	Status   string `json:"status" validate:"omitempty,nopipe"`
	Subject  string `json:"subject" validate:"required,nopipe"`
	Topic    string `json:"topic" validate:"nopipe"`
	Deadline string `json:"deadline" validate:"required_if=Kind Assignment"`
	Priority string `json:"priority" validate:"omitempty,oneof=High Medium Low"`
	Progress *int   `json:"progress" validate:"omitempty,min=0,max=100"`
	Room     string `json:"room" validate:"nopipe"`
	ExamKind string `json:"exam_kind" validate:"nopipe"`
	Syllabus string `json:"syllabus" validate:"nopipe"`
}

func (na *NewActivity) clean() {
	if k, ok := ParseKind(na.Kind); ok {
		na.Kind = string(k)
	}
	if p, ok := ParsePriority(na.Priority); ok {
		na.Priority = string(p)
	}
	na.Title = core.CleanString(na.Title)
	na.Subject = core.CleanString(na.Subject)
	na.Topic = core.CleanString(na.Topic)
	na.Room = core.CleanString(na.Room)
	na.ExamKind = core.CleanString(na.ExamKind)
	na.Syllabus = core.CleanString(na.Syllabus)
}

// Validate cleans the input then checks it. Dates, times and statuses are checked by Build.
func (na *NewActivity) Validate(validate *validator.Validate) error {
	na.clean()
	if err := validate.Struct(na); err != nil {
		return err
	}
	_, err := na.Build()
	return err
}

// Build converts a validated NewActivity into an Activity without id.
func (na NewActivity) Build() (Activity, error) {
	var flds []core.FieldError
	fieldErr := func(field string, err error) {
		flds = append(flds, core.FieldError{Field: field, Error: err.Error()})
	}

	date, err := ParseDate(na.Date)
	if err != nil {
		fieldErr("date", err)
	}
	start, err := ParseClock(na.Start)
	if err != nil {
		fieldErr("start", err)
	}
	end, err := ParseClock(na.End)
	if err != nil {
		fieldErr("end", err)
	}

	var status Status
	if na.Status != "" {
		st, ok := ParseStatus(na.Status)
		if !ok {
			fieldErr("status", errors.Errorf("invalid status %q", na.Status))
		}
		status = st
	}

	kind, ok := ParseKind(na.Kind)
	if !ok {
		fieldErr("kind", errors.Errorf("invalid kind %q", na.Kind))
	}

	var a Activity
	switch kind {
	case KindStudySession:
		if secondsOfDay(end) < secondsOfDay(start) {
			fieldErr("end", errors.New("end must not be before start"))
		}
		a = NewStudySession(na.Title, date, start, end, na.Subject, na.Topic)
	case KindAssignment:
		deadline, err := ParseDate(na.Deadline)
		if err != nil {
			fieldErr("deadline", err)
		}
		priority := PriorityMedium
		if p, ok := ParsePriority(na.Priority); ok {
			priority = p
		}
		a = NewAssignment(na.Title, date, start, end, na.Subject, deadline, priority)
		if na.Progress != nil {
			a.UpdateProgress(*na.Progress)
		}
	case KindExam:
		a = NewExam(na.Title, date, start, end, na.Subject, na.Room, na.ExamKind, na.Syllabus)
	}

	if len(flds) > 0 {
		return Activity{}, core.NewValidationError(nil, flds...)
	}
	if status != "" && (kind != KindAssignment || na.Progress == nil) {
		a.SetStatus(status)
	}
	return a, nil
}

// InputOf returns the input that rebuilds a. The CLI overlays edited fields on it.
// Assignments carry their progress and no status.
func InputOf(a Activity) NewActivity {
	na := NewActivity{
		Kind:    string(a.Kind()),
		Title:   a.Title,
		Date:    a.Date.String(),
		Start:   FormatClock(a.Start),
		End:     FormatClock(a.End),
		Status:  string(a.Status),
		Subject: a.Subject(),
	}
	switch d := a.Details.(type) {
	case StudySession:
		na.Topic = d.Topic
	case Assignment:
		na.Status = ""
		progress := d.Progress
		na.Deadline = d.Deadline.String()
		na.Priority = string(d.Priority)
		na.Progress = &progress
	case Exam:
		na.Room = d.Room
		na.ExamKind = d.ExamKind
		na.Syllabus = d.Syllabus
	}
	return na
}
