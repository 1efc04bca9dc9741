package fpe4j

import "github.com/zone1511/fpe4j/internal/ferr"

// FpeError is the structured error produced by every operation of the
// cipher and alphabet packages in this module; the Tink keyset functions of
// tinkfpe (New, NewKeysetHandleFromKey, KeyManager) return plain errors
// instead. Use errors.As to obtain one from a returned error, or errors.Is
// against the Err* sentinels to match by category.
type FpeError = ferr.Error

// Kind categorizes an FpeError.
type Kind = ferr.Kind

// The closed set of error kinds.
const (
	KindNullArgument    = ferr.KindNullArgument
	KindInvalidArgument = ferr.KindInvalidArgument
	KindInvalidKey      = ferr.KindInvalidKey
	KindArithmeticError = ferr.KindArithmeticError
	KindFatal           = ferr.KindFatal
)

// Sentinel errors for use with errors.Is. Every FpeError matches exactly
// one of them.
var (
	// ErrNullArgument matches failures caused by an absent required input.
	ErrNullArgument error = ferr.ErrNullArgument
	// ErrInvalidArgument matches length, range, and constraint violations.
	ErrInvalidArgument error = ferr.ErrInvalidArgument
	// ErrInvalidKey matches key length and format mismatches.
	ErrInvalidKey error = ferr.ErrInvalidKey
	// ErrArithmetic matches nonpositive-modulus and overflow failures.
	ErrArithmetic error = ferr.ErrArithmetic
	// ErrFatal matches block cipher primitive failures, which indicate a
	// programming defect rather than bad input.
	ErrFatal error = ferr.ErrFatal
)
