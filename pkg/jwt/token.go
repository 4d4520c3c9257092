package jwt

import (
	"encoding/json"
	"strings"

	"github.com/mvandergrift/alcoholic-jwt/pkg/base64"
	"github.com/mvandergrift/alcoholic-jwt/pkg/header"
)

// Segments are the three base64url encoded parts of a compact JWS
// token, still encoded.
//
// https://datatracker.ietf.org/doc/html/rfc7515#section-7.1
type Segments struct {
	Header    string
	Payload   string
	Signature string
}

// SigningInput returns the bytes covered by the signature, which is
// the encoded header and payload joined by a period.
func (s Segments) SigningInput() []byte {
	b := make([]byte, 0, len(s.Header)+1+len(s.Payload))
	b = append(b, s.Header...)
	b = append(b, '.')
	b = append(b, s.Payload...)
	return b
}

// String returns the compact serialization of the segments.
func (s Segments) String() string {
	return s.Header + "." + s.Payload + "." + s.Signature
}

// Split splits a compact token into its segments. A token must have
// exactly two period separators. The segments themselves are not
// decoded or inspected.
func Split(token string) (Segments, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return Segments{}, newErrorf(ErrMalformedJWT, "incorrect number of JWT parts: %d", len(parts))
	}

	return Segments{
		Header:    parts[0],
		Payload:   parts[1],
		Signature: parts[2],
	}, nil
}

// HeaderSegment returns the encoded header of a token that has the
// full three segment shape.
func HeaderSegment(token string) (string, error) {
	segments, err := Split(token)
	if err != nil {
		return "", err
	}
	return segments.Header, nil
}

// KeyID returns the "kid" header parameter of a token without
// verifying it. The boolean is false when the header has no key ID.
//
// # Warning
//
// The returned value is attacker controlled. Use it only to select a
// key, then call Validate.
func KeyID(token string) (string, bool, error) {
	segment, err := HeaderSegment(token)
	if err != nil {
		return "", false, err
	}

	params, err := decodeHeader(segment)
	if err != nil {
		return "", false, err
	}

	kid, ok, err := params.KeyID()
	if err != nil {
		return "", false, newError(ErrJSONDecode, err)
	}
	return kid, ok, nil
}

func decodeHeader(segment string) (header.Parameters, error) {
	object, _, err := decodeObject(segment, "header")
	if err != nil {
		return nil, err
	}
	return header.Parameters(object), nil
}

// decodeObject decodes a base64url segment holding a JSON object,
// returning the object and the raw JSON bytes.
func decodeObject(segment, name string) (map[string]any, []byte, error) {
	b, err := base64.Decode(segment)
	if err != nil {
		return nil, nil, newErrorf(ErrMalformedJWT, "failed to decode %s: %w", name, err)
	}

	var object map[string]any
	if err := json.Unmarshal(b, &object); err != nil {
		return nil, nil, newErrorf(ErrMalformedJWT, "failed to parse %s JSON: %w", name, err)
	}

	// "null" decodes into a nil map without error.
	if object == nil {
		return nil, nil, newErrorf(ErrMalformedJWT, "%s is not a JSON object", name)
	}

	return object, b, nil
}
