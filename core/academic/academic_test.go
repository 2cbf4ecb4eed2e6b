package academic

import (
	"testing"

	"github.com/go-playground/validator/v10"
)

func TestCourse_SetCredits(t *testing.T) {
	tests := []struct {
		name    string
		credits int
		want    int
	}{
		{name: "zero", credits: 0, want: 3},
		{name: "min", credits: 1, want: 1},
		{name: "max", credits: 6, want: 6},
		{name: "too many", credits: 7, want: 3},
		{name: "negative", credits: -2, want: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCourse("IF101", "Algorithms", 3, "", "")
			c.SetCredits(tt.credits)
			if c.Credits != tt.want {
				t.Errorf("SetCredits(%d) => %d, want %d", tt.credits, c.Credits, tt.want)
			}
		})
	}
}

func TestStudent_SetSemester(t *testing.T) {
	tests := []struct {
		name     string
		semester int
		want     int
	}{
		{name: "zero", semester: 0, want: 5},
		{name: "first", semester: 1, want: 1},
		{name: "last", semester: 14, want: 14},
		{name: "too late", semester: 15, want: 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStudent("123", "Ana", 5, "Informatics")
			s.SetSemester(tt.semester)
			if s.Semester != tt.want {
				t.Errorf("SetSemester(%d) => %d, want %d", tt.semester, s.Semester, tt.want)
			}
		})
	}
}

func TestNew_outOfRange(t *testing.T) {
	validate := validator.New()

	if c := NewCourse("IF101", "Algorithms", 9, "", ""); c.Validate(validate) == nil {
		t.Error("Course.Validate() expected an error for 0 credits")
	}
	if c := NewCourse("IF101", "Algorithms", 4, "", ""); c.Validate(validate) != nil {
		t.Error("Course.Validate() unexpected error")
	}
	if s := NewStudent("1", "Ana", 20, ""); s.Semester != 0 || s.Validate(validate) == nil {
		t.Errorf("NewStudent() semester = %d; expected validation error", s.Semester)
	}
}
