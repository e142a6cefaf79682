package rerror

import "fmt"

// Error is an error raised by the simulation core itself, as opposed to one
// caused by anything external. It always indicates a broken invariant.
type Error struct {
	msg string
}

// New returns a new Error with a formatted message.
func New(format string, args ...interface{}) *Error {
	return &Error{msg: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	return e.msg
}
