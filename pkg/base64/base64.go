package base64

import (
	"encoding/base64"
	"errors"
	"fmt"
)

// ErrEmptyInput is returned by Decode when given an empty string.
var ErrEmptyInput = errors.New("base64: input cannot be empty")

// Decode returns the base64url decoded bytes from the given input.
// This function implements base64url decoding as defined in RFC 4648 Section 5,
// which is used by JWS and JWT (RFC 7515, RFC 7519).
//
// Padding characters are not permitted; "=" anywhere in the input is
// rejected like any other character outside the URL-safe alphabet.
func Decode(input string) ([]byte, error) {
	// In cryptographic contexts an empty value is never meaningful.
	if len(input) == 0 {
		return nil, ErrEmptyInput
	}

	result, err := base64.RawURLEncoding.DecodeString(input)
	if err != nil {
		return nil, fmt.Errorf("base64: invalid base64url input: %w", err)
	}
	return result, nil
}

// Encode returns the base64url encoded string from the given input,
// without padding characters as required by RFC 7515.
func Encode(input []byte) string {
	return base64.RawURLEncoding.EncodeToString(input)
}
