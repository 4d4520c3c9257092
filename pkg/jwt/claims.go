package jwt

import (
	"errors"
	"fmt"

	"golang.org/x/exp/slices"
)

// There are three classes of JWT Claim Names:
// 1. Registered Claim Names
// 2. Public Claim Names
// 3. Private Claim Names
type (
	ClaimName = string

	Registered = ClaimName
	Public     = ClaimName
	Private    = ClaimName
)

// Registered Claim Names
//
// https://datatracker.ietf.org/doc/html/rfc7519#section-4.1
const (
	Issuer         Registered = "iss"
	Subject        Registered = "sub"
	Audience       Registered = "aud"
	ExpirationTime Registered = "exp"
	NotBefore      Registered = "nbf"
	IssuedAt       Registered = "iat"
	JWTID          Registered = "jti"
)

// ClaimsSet is a JSON object that contains the claims conveyed by the JWT.
//
// A claim is a piece of information asserted about a subject, represented
// as a name/value pair consisting of a Claim Name and a Claim Value.
// Values keep the types encoding/json gives them, so numbers are float64.
type ClaimsSet map[ClaimName]any

func (claims ClaimsSet) Get(name ClaimName) (any, error) {
	value, ok := claims[name]
	if !ok {
		return nil, fmt.Errorf("claim %q not found in claims set", name)
	}
	return value, nil
}

// Validation is a single check applied to the claims of a token whose
// signature has already been verified.
type Validation func(claims ClaimsSet) error

// RequireIssuer checks that "iss" is a string equal to expected.
func RequireIssuer(expected string) Validation {
	return func(claims ClaimsSet) error {
		value, ok := claims[Issuer]
		if !ok {
			return fmt.Errorf("missing %q claim", Issuer)
		}
		if iss, ok := value.(string); !ok || iss != expected {
			return fmt.Errorf("%q claim %v does not match %q", Issuer, value, expected)
		}
		return nil
	}
}

// RequireAudience checks that "aud" is a string equal to expected or,
// as RFC 7519 also allows, an array of strings containing it.
//
// https://datatracker.ietf.org/doc/html/rfc7519#section-4.1.3
func RequireAudience(expected string) Validation {
	return func(claims ClaimsSet) error {
		value, ok := claims[Audience]
		if !ok {
			return fmt.Errorf("missing %q claim", Audience)
		}

		switch aud := value.(type) {
		case string:
			if aud == expected {
				return nil
			}
		case []any:
			if slices.ContainsFunc(aud, func(v any) bool {
				s, ok := v.(string)
				return ok && s == expected
			}) {
				return nil
			}
		}

		return fmt.Errorf("%q claim %v does not contain %q", Audience, value, expected)
	}
}

// RequireSubject checks that "sub" is present and not null. Its value
// is not inspected.
func RequireSubject() Validation {
	return func(claims ClaimsSet) error {
		if value, ok := claims[Subject]; !ok || value == nil {
			return fmt.Errorf("missing %q claim", Subject)
		}
		return nil
	}
}

// Validate runs every validation and reports all of the failures
// together as a single ErrInvalidClaims error.
func (claims ClaimsSet) Validate(validations ...Validation) error {
	var errs []error
	for _, validation := range validations {
		if validation == nil {
			continue
		}
		if err := validation(claims); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return newError(ErrInvalidClaims, errors.Join(errs...))
}
