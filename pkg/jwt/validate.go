package jwt

import (
	"encoding/json"

	"github.com/mvandergrift/alcoholic-jwt/pkg/header"
	"github.com/mvandergrift/alcoholic-jwt/pkg/jwk"
)

// ValidatedToken is a token whose signature has been verified and
// whose claims passed every requested validation.
type ValidatedToken struct {
	// Header is the decoded JOSE header.
	Header header.Parameters

	// Claims is the decoded claims set, sometimes referred to as the
	// "payload".
	Claims ClaimsSet

	payload []byte
}

// DecodeClaims decodes the verified claims into v, which may be any
// value accepted by json.Unmarshal.
func (t *ValidatedToken) DecodeClaims(v any) error {
	if err := json.Unmarshal(t.payload, v); err != nil {
		return newError(ErrJSONDecode, err)
	}
	return nil
}

// Validate verifies the RS256 signature of token with key and then
// applies the given claim validations.
//
// The header and claims are only decoded after the signature is known
// to be good. Any failure is returned as a *ValidationError.
func Validate(token string, key jwk.Key, validations ...Validation) (*ValidatedToken, error) {
	segments, err := Split(token)
	if err != nil {
		return nil, err
	}

	publicKey, err := key.PublicKey()
	if err != nil {
		return nil, newError(ErrInvalidJWK, err)
	}

	if err := verifySegments(segments, publicKey); err != nil {
		return nil, err
	}

	params, err := decodeHeader(segments.Header)
	if err != nil {
		return nil, err
	}

	claims, payload, err := decodeObject(segments.Payload, "claims")
	if err != nil {
		return nil, err
	}

	if err := ClaimsSet(claims).Validate(validations...); err != nil {
		return nil, err
	}

	return &ValidatedToken{
		Header:  params,
		Claims:  claims,
		payload: payload,
	}, nil
}
