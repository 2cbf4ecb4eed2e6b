package activity_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/studyplanner/core"
	"github.com/trezcool/studyplanner/core/activity"
	"github.com/trezcool/studyplanner/tests"
)

func intPtr(i int) *int { return &i }

func TestNewActivity_Validate(t *testing.T) {
	validate, translator := core.NewValidator()

	study := func() activity.NewActivity {
		return activity.NewActivity{
			Kind: "study", Title: " Read ", Date: "2026-10-17", Start: "09:00", End: "10:30", Subject: "PBO", Topic: "Interfaces",
		}
	}

	tests := []struct {
		name       string
		input      func() activity.NewActivity
		wantFields map[string]string // translated validator errors
		wantField  string            // core.ValidationError field
	}{
		{name: "valid", input: study},
		{
			name:       "missing title",
			input:      func() activity.NewActivity { na := study(); na.Title = "  "; return na },
			wantFields: map[string]string{"title": "this field is required"},
		},
		{
			name:       "pipe in subject",
			input:      func() activity.NewActivity { na := study(); na.Subject = "A|B"; return na },
			wantFields: map[string]string{"subject": "subject must not contain '|' or line breaks"},
		},
		{
			name:       "line break in topic",
			input:      func() activity.NewActivity { na := study(); na.Topic = "a\nb"; return na },
			wantFields: map[string]string{"topic": "topic must not contain '|' or line breaks"},
		},
		{
			name:       "unknown kind",
			input:      func() activity.NewActivity { na := study(); na.Kind = "Lecture"; return na },
			wantFields: map[string]string{"kind": ""},
		},
		{
			name: "assignment without deadline",
			input: func() activity.NewActivity {
				na := study()
				na.Kind = "Assignment"
				return na
			},
			wantFields: map[string]string{"deadline": ""},
		},
		{
			name: "progress out of range",
			input: func() activity.NewActivity {
				na := study()
				na.Kind, na.Deadline, na.Progress = "Assignment", "2026-10-20", intPtr(120)
				return na
			},
			wantFields: map[string]string{"progress": ""},
		},
		{
			name:      "bad date",
			input:     func() activity.NewActivity { na := study(); na.Date = "17/10/2026"; return na },
			wantField: "date",
		},
		{
			name:      "bad start",
			input:     func() activity.NewActivity { na := study(); na.Start = "9h"; return na },
			wantField: "start",
		},
		{
			name:      "end before start",
			input:     func() activity.NewActivity { na := study(); na.End = "08:00"; return na },
			wantField: "end",
		},
		{
			name:      "unknown status",
			input:     func() activity.NewActivity { na := study(); na.Status = "Later"; return na },
			wantField: "status",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			na := tt.input()
			err := na.Validate(validate)

			switch {
			case tt.wantFields != nil:
				var vErrs validator.ValidationErrors
				if !errors.As(err, &vErrs) {
					t.Fatalf("Validate() error = %v, want validator.ValidationErrors", err)
				}
				got := core.TranslateErrors(vErrs, translator)
				for field, msg := range tt.wantFields {
					gotMsg, ok := got[field]
					if !ok {
						t.Errorf("Validate() errors = %v, missing field %q", got, field)
					} else if msg != "" && gotMsg != msg {
						t.Errorf("Validate() %s = %q, want %q", field, gotMsg, msg)
					}
				}
			case tt.wantField != "":
				var vErr *core.ValidationError
				if !errors.As(err, &vErr) {
					t.Fatalf("Validate() error = %v, want *core.ValidationError", err)
				}
				if vErr.Fields[0].Field != tt.wantField {
					t.Errorf("Validate() field = %s, want %s", vErr.Fields[0].Field, tt.wantField)
				}
			default:
				if err != nil {
					t.Fatalf("Validate() unexpected error = %v", err)
				}
				if na.Title != "Read" || na.Kind != string(activity.KindStudySession) {
					t.Errorf("Validate() did not clean the input: %+v", na)
				}
			}
		})
	}
}

func TestNewActivity_Build(t *testing.T) {
	na := activity.NewActivity{
		Kind: "Assignment", Title: "Essay", Date: "2026-10-17", Start: "13:00", End: "15:00",
		Subject: "History", Deadline: "2026-10-20", Priority: "tinggi", Progress: intPtr(40),
	}
	validate, _ := core.NewValidator()
	if err := na.Validate(validate); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	a, err := na.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	asg, ok := a.AsAssignment()
	if !ok {
		t.Fatalf("Build() kind = %s, want Assignment", a.Kind())
	}
	if asg.Priority != activity.PriorityHigh || asg.Progress != 40 || a.Status != activity.StatusInProgress {
		t.Errorf("Build() = %+v", a)
	}
	if asg.Deadline != testutil.Date(t, "2026-10-20") {
		t.Errorf("Build() deadline = %s", asg.Deadline)
	}
}

func TestNewActivity_Build_statusFollowsProgress(t *testing.T) {
	base := activity.NewActivity{
		Kind: "Assignment", Title: "Essay", Date: "2026-10-17", Start: "13:00", End: "15:00",
		Subject: "History", Deadline: "2026-10-20",
	}
	tests := []struct {
		name     string
		status   string
		progress *int
		want     activity.Status
	}{
		{name: "stale status", status: "InProgress", progress: intPtr(100), want: activity.StatusDone},
		{name: "no progress", status: "Done", want: activity.StatusDone},
		{name: "progress only", progress: intPtr(0), want: activity.StatusNotStarted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			na := base
			na.Status, na.Progress = tt.status, tt.progress
			a, err := na.Build()
			if err != nil {
				t.Fatalf("Build() error = %v", err)
			}
			if a.Status != tt.want {
				t.Errorf("Build() status = %s, want %s", a.Status, tt.want)
			}
		})
	}

	study := activity.NewActivity{Kind: "StudySession", Title: "Read", Date: "2026-10-17", Start: "09:00", End: "10:00", Subject: "PBO", Status: "Done"}
	if a, _ := study.Build(); a.Status != activity.StatusDone {
		t.Errorf("Build() of a study session status = %s, want Done", a.Status)
	}
}

func TestInputOf(t *testing.T) {
	today := testutil.Date(t, "2026-10-17")
	tests := []struct {
		name string
		act  activity.Activity
	}{
		{name: "study session", act: testutil.Study(t, "Belajar OOP", today, 90, "PBO", activity.StatusDone)},
		{name: "assignment", act: testutil.Assignment(t, "Essay", today.AddDays(3), 50, "History")},
		{name: "exam", act: testutil.Exam(t, "Final", today, "Math")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := activity.InputOf(tt.act).Build()
			if err != nil {
				t.Fatalf("Build() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.act) {
				t.Errorf("InputOf().Build() = %+v, want %+v", got, tt.act)
			}
		})
	}
}
