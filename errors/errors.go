package errors

import (
	"fmt"
	"reflect"

	"github.com/pkg/errors"
)

var (
	// ErrUnauthorized signals that the caller lacks the permission
	// needed for the requested action.
	ErrUnauthorized = Register(2, "unauthorized")

	// ErrNotFound signals that a referenced entity does not exist.
	ErrNotFound = Register(3, "not found")

	// ErrMsg signals a malformed message that cannot be processed.
	ErrMsg = Register(4, "invalid message")

	// ErrModel signals a model that fails validation and cannot be
	// persisted.
	ErrModel = Register(5, "invalid model")

	// ErrDuplicate signals a write that collides with an existing
	// record under the same unique key.
	ErrDuplicate = Register(6, "duplicate")

	// ErrHuman signals a code path that correct usage of the framework
	// can never reach.
	ErrHuman = Register(7, "coding error")

	// ErrEmpty signals a required value that was left empty.
	ErrEmpty = Register(9, "value is empty")

	// ErrState signals an operation that is not legal in the entity's
	// current state.
	ErrState = Register(10, "invalid state")

	// ErrType signals a value of an unexpected type.
	ErrType = Register(11, "invalid type")

	// ErrAmount signals an amount outside the accepted range.
	ErrAmount = Register(13, "invalid amount")

	// ErrInput signals malformed input that no more specific error
	// covers.
	ErrInput = Register(14, "invalid input")

	// ErrOverflow signals arithmetic whose result does not fit the
	// type.
	ErrOverflow = Register(16, "an operation cannot be completed due to value overflow")

	// ErrDatabase signals a failure of the underlying storage engine.
	ErrDatabase = Register(17, "database error")

	// ErrIteratorDone marks the end of an iterator's range. Control
	// flow, not a failure.
	ErrIteratorDone = Register(18, "iterator done")

	// ErrPanic wraps recovered panics, so the raw panic value can be
	// redacted before leaving the process.
	ErrPanic = Register(111222, "panic")
)

// Register creates a root error with a unique code. The common roots
// live in this package, extensions register their own above code 999.
// Claiming a code twice panics, so call this only from package
// initialization.
func Register(code uint32, description string) *Error {
	if e, ok := usedCodes[code]; ok {
		panic(fmt.Sprintf("error with code %d is already registered: %q", code, e.desc))
	}
	err := &Error{
		code: code,
		desc: description,
	}
	usedCodes[err.code] = err
	return err
}

// usedCodes guards code uniqueness across all packages.
var usedCodes = map[uint32]*Error{
	1: nil, // code 1 is reserved for unregistered errors
}

// Error is a root error. Every error created at runtime should wrap
// one of the registered roots, which keeps errors testable with Is
// and safe to expose to clients through their code.
type Error struct {
	code uint32
	desc string
}

func (e Error) Error() string {
	return e.desc
}

func (e Error) ABCICode() uint32 {
	return e.code
}

// New returns an error whose cause is this root error. Shorthand
// for Wrap(e, description).
func (e *Error) New(description string) error {
	return Wrap(e, description)
}

// Newf is New with a format string.
func (e *Error) Newf(description string, args ...interface{}) error {
	return e.New(fmt.Sprintf(description, args...))
}

// Is reports whether err has this root error as its cause, walking
// the Cause chain as far as it goes.
func (kind *Error) Is(err error) bool {
	// reflect handles typed nil error implementations
	if kind == nil {
		if err == nil {
			return true
		}
		return reflect.ValueOf(err).IsNil()
	}

	for {
		if err == kind {
			return true
		}

		if c, ok := err.(causer); ok {
			err = c.Cause()
		} else {
			return false
		}
	}
}

// Wrap annotates err with a description, keeping its root cause and
// code. Wrapping an error without an ABCICode classifies it as
// internal. Wrap(nil, ...) is nil, so tail calls need no nil check.
func Wrap(err error, description string) error {
	if err == nil {
		return nil
	}

	// attach a stack trace once, at the innermost wrap
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}

	return &wrappedError{
		parent: err,
		msg:    description,
	}
}

// Wrapf is Wrap with a format string.
func Wrapf(err error, format string, args ...interface{}) error {
	desc := fmt.Sprintf(format, args...)
	return Wrap(err, desc)
}

type wrappedError struct {
	msg    string
	parent error
}

func (e *wrappedError) Error() string {
	return fmt.Sprintf("%s: %s", e.msg, e.parent.Error())
}

func (e *wrappedError) Cause() error {
	return e.parent
}

func (e *wrappedError) ABCICode() uint32 {
	return abciCode(e.parent)
}

// Recover swallows a panic and stores it as an ErrPanic in the given
// error. Must be called via defer.
func Recover(err *error) {
	if r := recover(); r != nil {
		*err = Wrapf(ErrPanic, "%v", r)
	}
}

// WithType annotates the error with the type of the given object.
func WithType(err error, obj interface{}) error {
	return Wrap(err, fmt.Sprintf("%T", obj))
}

// causer exposes one level of unwrapping, pkg/errors style.
type causer interface {
	Cause() error
}

// stackTracer matches errors carrying a pkg/errors stack trace.
type stackTracer interface {
	StackTrace() errors.StackTrace
}

// stackTrace digs out the deepest stack trace in the cause chain,
// nil when none was attached.
func stackTrace(err error) errors.StackTrace {
	var deepest errors.StackTrace
	for {
		if st, ok := err.(stackTracer); ok {
			deepest = st.StackTrace()
		}
		c, ok := err.(causer)
		if !ok {
			break
		}
		err = c.Cause()
	}
	return deepest
}
