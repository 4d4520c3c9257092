package header

import (
	"fmt"

	"github.com/mvandergrift/alcoholic-jwt/pkg/jwa"
)

// There are three classes of Header Parameter names: Registered Header
// Parameter names, Public Header Parameter names, and Private Header
// Parameter names.
//
// https://datatracker.ietf.org/doc/html/rfc7515#section-4
type (
	ParameterName = string

	Registered = ParameterName
	Public     = ParameterName
	Private    = ParameterName
)

// Registered Header Parameter Names
//
// https://datatracker.ietf.org/doc/html/rfc7515#section-4.1
const (
	Type        Registered = "typ"
	Algorithm   Registered = "alg"
	JWKSetURL   Registered = "jku"
	JSONWebKey  Registered = "jwk"
	KeyID       Registered = "kid"
	ContentType Registered = "cty"
	Critical    Registered = "crit"
)

// TypeJWT is the "typ" value recommended for JSON Web Tokens.
const TypeJWT = "JWT"

// Parameters is a JSON object containing the parameters describing
// the cryptographic operations and parameters employed.
//
// The JOSE (JSON Object Signing and Encryption) Header is comprised
// of a set of Header Parameters.
type Parameters map[ParameterName]any

func (h Parameters) Type() (string, error) {
	return h.stringParameter(Type)
}

func (h Parameters) Algorithm() (jwa.Algorithm, error) {
	return h.stringParameter(Algorithm)
}

// KeyID returns the "kid" parameter. The boolean is false when the
// parameter is absent or null, which is not an error.
func (h Parameters) KeyID() (string, bool, error) {
	value, ok := h[KeyID]
	if !ok || value == nil {
		return "", false, nil
	}
	kid, ok := value.(string)
	if !ok {
		return "", false, fmt.Errorf("header parameter %q is not a string, is %T", KeyID, value)
	}
	return kid, true, nil
}

func (h Parameters) Get(param ParameterName) (any, error) {
	value, ok := h[param]
	if !ok {
		return nil, fmt.Errorf("header does not contain a %q parameter", param)
	}
	return value, nil
}

func (h Parameters) stringParameter(param ParameterName) (string, error) {
	value, ok := h[param]
	if !ok {
		return "", fmt.Errorf("header does not contain a %q parameter", param)
	}
	strValue, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("header parameter %q is not a string, is %T", param, value)
	}
	return strValue, nil
}
