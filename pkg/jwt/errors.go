package jwt

import (
	"errors"
	"fmt"
)

// Kinds of validation failure. Every error returned by Validate,
// KeyID and VerifySignature matches exactly one of these with
// errors.Is.
var (
	ErrMalformedJWT     = errors.New("malformed JWT")
	ErrInvalidJWK       = errors.New("invalid JWK")
	ErrInvalidSignature = errors.New("invalid signature")
	ErrCryptoOperation  = errors.New("cryptographic operation failed")
	ErrJSONDecode       = errors.New("JSON decode failed")
	ErrInvalidClaims    = errors.New("invalid claims")
)

// ValidationError pairs the kind of failure with the error that caused
// it. Inner never holds key or signature bytes.
type ValidationError struct {
	Kind  error
	Inner error
}

func (e *ValidationError) Error() string {
	if e.Inner == nil {
		return fmt.Sprintf("jwt: %v", e.Kind)
	}
	return fmt.Sprintf("jwt: %v: %v", e.Kind, e.Inner)
}

func (e *ValidationError) Unwrap() error {
	return e.Inner
}

func (e *ValidationError) Is(target error) bool {
	return target == e.Kind
}

func newError(kind, inner error) *ValidationError {
	return &ValidationError{Kind: kind, Inner: inner}
}

func newErrorf(kind error, format string, args ...any) *ValidationError {
	return &ValidationError{Kind: kind, Inner: fmt.Errorf(format, args...)}
}

// Kind returns the failure kind of err, or nil when err did not come
// from this package.
func Kind(err error) error {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Kind
	}
	return nil
}
