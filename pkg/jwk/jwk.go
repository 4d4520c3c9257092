package jwk

import (
	"crypto/rsa"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"

	"github.com/go-playground/validator/v10"
	"golang.org/x/exp/slices"

	"github.com/mvandergrift/alcoholic-jwt/pkg/base64"
	"github.com/mvandergrift/alcoholic-jwt/pkg/jwa"
)

// https://datatracker.ietf.org/doc/html/rfc7517#section-4
type ParameterName = string

const (
	KeyType      ParameterName = "kty" // https://datatracker.ietf.org/doc/html/rfc7517#section-4.1
	PublicKeyUse ParameterName = "use" // https://datatracker.ietf.org/doc/html/rfc7517#section-4.2
	Algorithm    ParameterName = "alg" // https://datatracker.ietf.org/doc/html/rfc7517#section-4.4
	KeyID        ParameterName = "kid" // https://datatracker.ietf.org/doc/html/rfc7517#section-4.5

	N ParameterName = "n" // N is the RSA public modulus value.
	E ParameterName = "e" // E is the RSA public exponent value.
)

const (
	// KeyTypeRSA is the only accepted "kty" value.
	KeyTypeRSA = "RSA"

	// UseSignature is the "use" value for keys that verify signatures.
	UseSignature = "sig"
)

// ErrInvalidKey is wrapped by every error caused by an unusable JWK,
// whether it was rejected while decoding or while rebuilding the
// RSA public key from its components.
var ErrInvalidKey = errors.New("invalid JWK")

// validate is safe for concurrent use and caches struct metadata.
var validate = validator.New(validator.WithRequiredStructEnabled())

// Key is a single RSA JSON Web Key.
//
// Values are immutable once decoded; copies are cheap and share
// nothing mutable.
//
// https://datatracker.ietf.org/doc/html/rfc7517#section-4
type Key struct {
	// KeyType is always "RSA".
	KeyType string `json:"kty" validate:"required,eq=RSA"`

	// Algorithm is optional, but when present must be "RS256".
	Algorithm jwa.Algorithm `json:"alg,omitempty" validate:"omitempty,eq=RS256"`

	// KeyID is optional. Keys without one can never be found by Set.Find.
	KeyID string `json:"kid,omitempty"`

	// Use is informational only.
	Use string `json:"use,omitempty"`

	// N is the base64url encoded big-endian modulus.
	N string `json:"n" validate:"required"`

	// E is the base64url encoded big-endian public exponent.
	E string `json:"e" validate:"required"`
}

// UnmarshalJSON decodes a JWK and rejects anything that is not an RSA
// key usable with RS256, instead of silently zeroing unknown values.
func (k *Key) UnmarshalJSON(b []byte) error {
	type plain Key

	// The outer "alg" field shadows the embedded one so that an
	// explicitly empty algorithm can be told apart from a missing one.
	var raw struct {
		plain
		Algorithm *string `json:"alg"`
	}

	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	if raw.Algorithm != nil {
		if !jwa.Supported(*raw.Algorithm) {
			return fmt.Errorf("%w: unsupported %q value %q", ErrInvalidKey, Algorithm, *raw.Algorithm)
		}
		raw.plain.Algorithm = *raw.Algorithm
	}

	key := Key(raw.plain)
	if err := validate.Struct(&key); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidKey, err)
	}

	*k = key
	return nil
}

// PublicKey is an RSA public key rebuilt from a JWK.
//
// The exponent is kept as an arbitrary precision integer: JWK sets in
// the wild occasionally publish exponents far larger than the 32 bits
// crypto/rsa accepts, and those keys must still verify.
type PublicKey struct {
	N *big.Int
	E *big.Int
}

// maxStandardExponent is the largest exponent crypto/rsa accepts.
const maxStandardExponent = 1<<31 - 1

// RSA returns the equivalent crypto/rsa key, or false when the
// exponent is outside the range crypto/rsa supports.
func (p *PublicKey) RSA() (*rsa.PublicKey, bool) {
	if p == nil || p.N == nil || p.E == nil {
		return nil, false
	}
	if !p.E.IsInt64() || p.E.Int64() > maxStandardExponent {
		return nil, false
	}
	return &rsa.PublicKey{N: p.N, E: int(p.E.Int64())}, true
}

// Size returns the modulus size in bytes.
func (p *PublicKey) Size() int {
	if p == nil || p.N == nil {
		return 0
	}
	return (p.N.BitLen() + 7) / 8
}

// PublicKey decodes the modulus and exponent of the key. Every
// returned error wraps ErrInvalidKey.
func (k Key) PublicKey() (*PublicKey, error) {
	if k.KeyType != KeyTypeRSA {
		return nil, fmt.Errorf("%w: unsupported key type %q", ErrInvalidKey, k.KeyType)
	}

	n, err := decodeUnsigned(N, k.N)
	if err != nil {
		return nil, err
	}
	if n.Sign() == 0 {
		return nil, fmt.Errorf("%w: modulus is zero", ErrInvalidKey)
	}

	e, err := decodeUnsigned(E, k.E)
	if err != nil {
		return nil, err
	}
	if e.Cmp(big.NewInt(2)) < 0 {
		return nil, fmt.Errorf("%w: public exponent %v is too small", ErrInvalidKey, e)
	}

	return &PublicKey{N: n, E: e}, nil
}

func decodeUnsigned(name ParameterName, value string) (*big.Int, error) {
	b, err := base64.Decode(value)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode %q: %w", ErrInvalidKey, name, err)
	}
	return new(big.Int).SetBytes(b), nil
}

// FromPublicKey returns an RS256 signing JWK for the given public key.
func FromPublicKey(pub *rsa.PublicKey, kid string) Key {
	return Key{
		KeyType:   KeyTypeRSA,
		Algorithm: jwa.RS256,
		KeyID:     kid,
		Use:       UseSignature,
		N:         base64.Encode(pub.N.Bytes()),
		E:         base64.Encode(big.NewInt(int64(pub.E)).Bytes()),
	}
}

// Set is a JWK set as defined in RFC 7517.
//
// https://datatracker.ietf.org/doc/html/rfc7517#section-5
type Set struct {
	// Keys is the ordered list of keys. Key IDs are not required to
	// be unique.
	//
	// https://datatracker.ietf.org/doc/html/rfc7517#section-5.1
	Keys []Key `json:"keys" validate:"required,dive"`
}

// UnmarshalJSON decodes a JWK set, requiring the "keys" member.
func (s *Set) UnmarshalJSON(b []byte) error {
	type plain Set

	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	if p.Keys == nil {
		return fmt.Errorf("%w: JWK set is missing %q", ErrInvalidKey, "keys")
	}

	*s = Set(p)
	return nil
}

// ParseSet decodes a JSON encoded JWK set.
func ParseSet(data []byte) (*Set, error) {
	var set Set
	if err := json.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("failed to decode JWK set: %w", err)
	}
	return &set, nil
}

// Validate checks a set that was built in code rather than decoded.
func (s *Set) Validate() error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidKey, err)
	}
	return nil
}

// Find returns a copy of the first key whose "kid" equals kid. Keys
// without a "kid" never match.
func (s *Set) Find(kid string) (Key, bool) {
	if s == nil {
		return Key{}, false
	}

	i := slices.IndexFunc(s.Keys, func(key Key) bool {
		return key.KeyID != "" && key.KeyID == kid
	})
	if i < 0 {
		return Key{}, false
	}

	return s.Keys[i], true
}
