// Package ferr defines the structured error type shared by every package in
// this module. It lives in its own internal package so that the leaf
// packages (subtle, ifx) and the root package can all construct and inspect
// the same error kinds without an import cycle: the root package re-exports
// the type and its sentinels for callers.
package ferr

import (
	"errors"
	"fmt"
)

// Kind categorizes an FPE failure. The set is closed: every Error carries
// exactly one of these kinds.
type Kind int

const (
	// KindNullArgument indicates a required input was absent (nil).
	KindNullArgument Kind = iota + 1
	// KindInvalidArgument indicates a length, range, or constraint violation.
	KindInvalidArgument
	// KindInvalidKey indicates a key of the wrong length or format.
	KindInvalidKey
	// KindArithmeticError indicates a nonpositive modulus or an overflow in
	// the factor search.
	KindArithmeticError
	// KindFatal indicates the block cipher primitive itself reported a
	// failure, which can only mean the adapter was misused.
	KindFatal
)

// Sentinel errors, one per Kind, for use with errors.Is. Each carries only a
// generic message naming its kind; concrete errors match them by kind.
var (
	ErrNullArgument    = &Error{kind: KindNullArgument, msg: "null argument"}
	ErrInvalidArgument = &Error{kind: KindInvalidArgument, msg: "invalid argument"}
	ErrInvalidKey      = &Error{kind: KindInvalidKey, msg: "invalid key"}
	ErrArithmetic      = &Error{kind: KindArithmeticError, msg: "arithmetic error"}
	ErrFatal           = &Error{kind: KindFatal, msg: "fatal cipher error"}
)

// Error is the concrete error type carried by every failure of the cipher
// and alphabet packages in this module.
type Error struct {
	kind Kind
	msg  string
}

// Error implements the error interface.
func (e *Error) Error() string { return e.msg }

// Kind returns the error's category.
func (e *Error) Kind() Kind { return e.kind }

// Is reports whether target is the sentinel for this error's kind, so that
// errors.Is(err, ferr.ErrInvalidArgument) matches any invalid-argument
// failure regardless of its message.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.kind == t.kind
}

// NullArgumentf constructs a null-argument error.
func NullArgumentf(format string, args ...any) *Error {
	return &Error{kind: KindNullArgument, msg: fmt.Sprintf(format, args...)}
}

// InvalidArgumentf constructs an invalid-argument error.
func InvalidArgumentf(format string, args ...any) *Error {
	return &Error{kind: KindInvalidArgument, msg: fmt.Sprintf(format, args...)}
}

// InvalidKeyf constructs an invalid-key error.
func InvalidKeyf(format string, args ...any) *Error {
	return &Error{kind: KindInvalidKey, msg: fmt.Sprintf(format, args...)}
}

// Arithmeticf constructs an arithmetic error.
func Arithmeticf(format string, args ...any) *Error {
	return &Error{kind: KindArithmeticError, msg: fmt.Sprintf(format, args...)}
}

// Fatalf constructs a fatal cipher error.
func Fatalf(format string, args ...any) *Error {
	return &Error{kind: KindFatal, msg: fmt.Sprintf(format, args...)}
}
