package typemodel

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

var (
	// ErrNilArgument reports a nil handle, type, method or loader passed to
	// an entry point. It is never wrapped in a *TypeError.
	ErrNilArgument = errors.New("nil argument")

	// ErrWrongKind reports a handle or name whose classification does not
	// match the requested variant.
	ErrWrongKind = errors.New("wrong kind")

	// ErrCycle reports an inheritance graph that leads back to a type
	// already on the walk.
	ErrCycle = errors.New("inheritance cycle")
)

// TypeError is the single failure type of the model. Err is one of
// ErrWrongKind, ErrCycle, a wrapped classpath.ErrClassNotFound, or a
// decoder, descriptor or signature failure.
type TypeError struct {
	Op   string
	Name string
	Err  error
}

func (e *TypeError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Name, e.Err)
}

func (e *TypeError) Unwrap() error { return e.Err }

func typeError(op, name string, err error) error {
	return &TypeError{Op: op, Name: name, Err: err}
}

func wrongKind(op, name string, got Kind) error {
	return typeError(op, name, errors.Wrapf(ErrWrongKind, "classified as %s", got))
}

func nilArgument(op, what string) error {
	return errors.Wrapf(ErrNilArgument, "%s: %s", op, what)
}
