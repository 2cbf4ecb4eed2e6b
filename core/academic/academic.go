// Package academic holds the student profile and the course catalogue. Both are plain values:
// setters drop out-of-range input and keep the previous value.
package academic

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

const (
	MinCredits  = 1
	MaxCredits  = 6
	MinSemester = 1
	MaxSemester = 14
)

type Course struct {
	Code     string `json:"code" mapstructure:"code" validate:"required"`
	Name     string `json:"name" mapstructure:"name" validate:"required"`
	Credits  int    `json:"credits" mapstructure:"credits" validate:"min=1,max=6"`
	Lecturer string `json:"lecturer" mapstructure:"lecturer"`
	Room     string `json:"room" mapstructure:"room"`
}

// NewCourse builds a Course. An out-of-range credits value leaves Credits at zero.
func NewCourse(code, name string, credits int, lecturer, room string) Course {
	c := Course{Code: code, Name: name, Lecturer: lecturer, Room: room}
	c.SetCredits(credits)
	return c
}

func (c *Course) SetCredits(credits int) {
	if credits >= MinCredits && credits <= MaxCredits {
		c.Credits = credits
	}
}

func (c Course) Validate(validate *validator.Validate) error { return validate.Struct(c) }

func (c Course) String() string {
	return fmt.Sprintf("%s - %s (%d credits)", c.Code, c.Name, c.Credits)
}

type Student struct {
	StudentID string `json:"student_id" mapstructure:"studentID"`
	Name      string `json:"name" mapstructure:"name"`
	Semester  int    `json:"semester" mapstructure:"semester" validate:"min=1,max=14"`
	Program   string `json:"program" mapstructure:"program"`
}

// NewStudent builds a Student. An out-of-range semester leaves Semester at zero.
func NewStudent(id, name string, semester int, program string) Student {
	s := Student{StudentID: id, Name: name, Program: program}
	s.SetSemester(semester)
	return s
}

func (s *Student) SetSemester(semester int) {
	if semester >= MinSemester && semester <= MaxSemester {
		s.Semester = semester
	}
}

func (s Student) IsEmpty() bool { return s.StudentID == "" && s.Name == "" }

func (s Student) Validate(validate *validator.Validate) error { return validate.Struct(s) }

func (s Student) String() string {
	return fmt.Sprintf("%s - %s (semester %d)", s.StudentID, s.Name, s.Semester)
}
