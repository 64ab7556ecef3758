package objectid

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// ErrContractViolation is wrapped by every error caused by misuse of the
// registration API. These are programming errors; test for them with
// errors.Is.
var ErrContractViolation = errors.New("contract violation")

var (
	ErrNilObject      = fmt.Errorf("%w: cannot register a nil object", ErrContractViolation)
	ErrNoID           = fmt.Errorf("%w: cannot register an object that has no ID", ErrContractViolation)
	ErrInvalidID      = fmt.Errorf("%w: ID must not contain %q", ErrContractViolation, PathSeparator)
	ErrIDInUse        = fmt.Errorf("%w: ID is already in use", ErrContractViolation)
	ErrCycle          = fmt.Errorf("%w: object would own itself", ErrContractViolation)
	ErrOwnedIDChange  = fmt.Errorf("%w: use the owner to change the ID of an owned object", ErrContractViolation)
	ErrNothingOwned   = fmt.Errorf("%w: no objects are owned by this object", ErrContractViolation)
	ErrNotOwned       = fmt.Errorf("%w: object is not owned by this object", ErrContractViolation)
	ErrPathNotAllowed = fmt.Errorf("%w: cannot discard owned objects based on a path", ErrContractViolation)
)

var (
	// ErrNotFound is the panic value of MustResolve. It is not a contract
	// violation.
	ErrNotFound = errors.New("object not found")

	// ErrSkipChildren may be returned by a WalkFunc to skip the objects owned
	// by the current one.
	ErrSkipChildren = errors.New("skip children")
)

// Error describes a failed registry operation.
type Error struct {
	// Op is the operation that failed (e.g., "objectid.RegisterAs").
	Op string
	// Object describes the object the operation was applied to.
	Object string
	// Owner describes the owner involved, if any.
	Owner string
	// Err is the underlying error.
	Err error
}

func (e *Error) Error() string {
	switch {
	case e.Object != "" && e.Owner != "":
		return fmt.Sprintf("%s: %v, this=%s, obj=%s", e.Op, e.Err, e.Owner, e.Object)
	case e.Object != "":
		return fmt.Sprintf("%s: %v, obj=%s", e.Op, e.Err, e.Object)
	case e.Owner != "":
		return fmt.Sprintf("%s: %v, this=%s", e.Op, e.Err, e.Owner)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(op string, obj, owner *Node, err error) *Error {
	e := &Error{Op: op, Err: err}
	if obj != nil {
		e.Object = obj.String()
	}
	if owner != nil {
		e.Owner = owner.String()
	}
	logger.Debug("contract violation", zap.String("op", op), zap.Error(e))
	return e
}
