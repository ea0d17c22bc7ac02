package errors

import (
	"errors"
	"strings"
)

var (
	_ error = (*wrappedError)(nil)
	_ error = (*fieldError)(nil)
	_ error = (*List)(nil)
)

func New(text string) error {
	return errors.New(text)
}

func Is(err, target error) bool {
	return errors.Is(err, target)
}

func As(err error, target any) bool {
	return errors.As(err, target)
}

func Wrap(err error, text string) error {
	if err == nil {
		return nil
	}

	if len(text) == 0 {
		return err
	}

	return &wrappedError{
		err: err,
		msg: text,
	}
}

type wrappedError struct {
	err error
	msg string
}

const sep = ", err: "

func (err wrappedError) Error() string {
	if err.err == nil {
		return err.msg
	}

	return err.msg + sep + err.err.Error()
}

func (err wrappedError) Unwrap() error {
	if err.err == nil {
		return errors.New(err.msg)
	}

	return err.err
}

// Field creates an error tagged with a dotted configuration path.
func Field(path, text string) error {
	return &fieldError{
		path: path,
		msg:  text,
	}
}

type fieldError struct {
	path string
	msg  string
}

func (err fieldError) Error() string {
	if err.path == "" {
		return err.msg
	}

	return err.path + ": " + err.msg
}

// Path returns the dotted configuration path of a field error,
// or an empty string for other error kinds.
func Path(err error) string {
	var fe *fieldError
	if errors.As(err, &fe) {
		return fe.path
	}

	return ""
}

// List is an ordered collection of errors. An empty list is not a
// failure; callers return Err() rather than the list itself so a clean
// pass yields a nil error.
type List struct {
	errs []error
}

// Append adds non-nil errors to the list, flattening nested lists.
func (l *List) Append(errs ...error) {
	for _, err := range errs {
		if err == nil {
			continue
		}

		var nested *List
		if errors.As(err, &nested) {
			l.errs = append(l.errs, nested.errs...)
			continue
		}

		l.errs = append(l.errs, err)
	}
}

// Len returns the number of collected errors.
func (l *List) Len() int {
	if l == nil {
		return 0
	}

	return len(l.errs)
}

// All returns the collected errors in insertion order.
func (l *List) All() []error {
	if l == nil {
		return nil
	}

	return l.errs
}

// Err returns the list as an error, or nil when nothing was collected.
func (l *List) Err() error {
	if l.Len() == 0 {
		return nil
	}

	return l
}

func (l *List) Error() string {
	switch l.Len() {
	case 0:
		return ""
	case 1:
		return l.errs[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(l.errs[0].Error())
	for _, err := range l.errs[1:] {
		sb.WriteString("; ")
		sb.WriteString(err.Error())
	}

	return sb.String()
}

func (l *List) Unwrap() []error {
	return l.All()
}
