// Package errors is the single error toolkit of the service: stdlib matching
// plus pkg/errors annotations so that unexpected failures keep the stack of
// the place they were first wrapped.
package errors

import (
	stderrors "errors"
	"fmt"
	"runtime"
	"strings"

	pkgerrors "github.com/pkg/errors"
)

// New returns a plain sentinel error without a stack trace.
func New(text string) error {
	return stderrors.New(text)
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// IsAny reports whether err matches one of targets.
func IsAny(err error, targets ...error) bool {
	for _, target := range targets {
		if stderrors.Is(err, target) {
			return true
		}
	}

	return false
}

// AsType finds the first error in err's tree of type T.
func AsType[T error](err error) (T, bool) {
	var target T
	ok := stderrors.As(err, &target)

	return target, ok
}

// Join returns an error that wraps the given errors.
func Join(errs ...error) error {
	return stderrors.Join(errs...)
}

// Wrap annotates err with message and a stack trace. Wrap(nil) is nil.
func Wrap(err error, message string) error {
	return pkgerrors.Wrap(err, message)
}

// Wrapf is Wrap with a format specifier.
func Wrapf(err error, format string, args ...any) error {
	return pkgerrors.Wrapf(err, format, args...)
}

// WithStack annotates err with a stack trace at the point WithStack was called.
func WithStack(err error) error {
	return pkgerrors.WithStack(err)
}

// WithMessage annotates err with a message but no additional stack.
func WithMessage(err error, message string) error {
	return pkgerrors.WithMessage(err, message)
}

// Errorf formats a new error carrying a stack trace.
func Errorf(format string, args ...any) error {
	return pkgerrors.Errorf(format, args...)
}

// helperFile is this file. Stacks recorded by the wrappers above start inside it.
//
//nolint:gochecknoglobals
var helperFile = func() string {
	_, file, _, _ := runtime.Caller(0)

	return file
}()

type stackTracer interface {
	StackTrace() pkgerrors.StackTrace
}

// StackTrace returns the innermost recorded stack of err as "function file:line"
// lines starting at the caller of the wrapper, or nil when nothing in the chain
// carries one.
func StackTrace(err error) []string {
	var deepest pkgerrors.StackTrace
	for cur := err; cur != nil; cur = stderrors.Unwrap(cur) {
		if tracer, ok := cur.(stackTracer); ok {
			deepest = tracer.StackTrace()
		}
	}
	for len(deepest) > 0 && frameFile(deepest[0]) == helperFile {
		deepest = deepest[1:]
	}
	if len(deepest) == 0 {
		return nil
	}

	frames := make([]string, 0, len(deepest))
	for _, frame := range deepest {
		frames = append(frames, strings.TrimSpace(fmt.Sprintf("%n %s:%d", frame, frame, frame)))
	}

	return frames
}

func frameFile(frame pkgerrors.Frame) string {
	pc := uintptr(frame) - 1
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return ""
	}
	file, _ := fn.FileLine(pc)

	return file
}
