// Package apps holds what the planner binaries share.
package apps

import "fmt"

// ArgumentError is invalid command-line input. The CLI prints it without the usage text.
type ArgumentError struct {
	Msg string
}

func NewArgumentError(format string, args ...interface{}) *ArgumentError {
	return &ArgumentError{Msg: fmt.Sprintf(format, args...)}
}

func (err *ArgumentError) Error() string {
	return err.Msg
}
