package data

import "fmt"

// ErrorKind partitions failures the way the api reports them: bad
// input, unknown id, a write blocked by referential integrity, and
// everything else
type ErrorKind int

const (
	ErrorKindInternal ErrorKind = iota
	ErrorKindValidation
	ErrorKindNotFound
	ErrorKindConflict
)

type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func NewError(kind ErrorKind, format string, v ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, v...)}
}

func NewNotFoundError(entity string, id int64) *Error {
	return NewError(ErrorKindNotFound, "%s %d not found", entity, id)
}

func KindOf(err error) ErrorKind {
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e.Kind
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	return ErrorKindInternal
}
