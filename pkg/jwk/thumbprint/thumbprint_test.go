package thumbprint

import (
	"crypto"
	"testing"

	"github.com/mvandergrift/alcoholic-jwt/pkg/jwk"
	"github.com/stretchr/testify/require"
)

// https://www.rfc-editor.org/rfc/rfc7638#section-3.1
var rfc7638Key = jwk.Key{
	KeyType:   "RSA",
	N:         "0vx7agoebGcQSuuPiLJXZptN9nndrQmbXEps2aiAFbWhM78LhWx4cbbfAAtVT86zwu1RK7aPFFxuhDR1L6tSoc_BJECPebWKRXjBZCiFV4n3oknjhMstn64tZ_2W-5JsGY4Hc5n9yBXArwl93lqt7_RN5w6Cf0h4QyQ5v-65YGjQR0_FDW2QvzqY368QQMicAtaSqzs8KJZgnYb9c7d0zgdAZHzu6qMQvRL5hajrn1n91CbOpbISD08qNLyrdkt-bFTWhAI4vMQFh6WeZu0fM4lFd2NcRwr3XPksINHaQ-G_xBniIqbw0Ls1jF44-csFCur-kEgU8awapJzKnqDKgw",
	E:         "AQAB",
	Algorithm: "RS256",
	KeyID:     "2011-04-29",
}

func TestGenerate_RSA(t *testing.T) {
	// {"e":"AQAB","kty":"RSA","n":"0vx7agoebGcQSuuPiLJXZptN9nndrQmbXEps2aiAFbWhM78LhWx4cbbfAAtVT86zwu1RK7aPFFxuhDR1L6tSoc_BJECPebWKRXjBZCiFV4n3oknjhMstn64tZ_2W-5JsGY4Hc5n9yBXArwl93lqt7_RN5w6Cf0h4QyQ5v-65YGjQR0_FDW2QvzqY368QQMicAtaSqzs8KJZgnYb9c7d0zgdAZHzu6qMQvRL5hajrn1n91CbOpbISD08qNLyrdkt-bFTWhAI4vMQFh6WeZu0fM4lFd2NcRwr3XPksINHaQ-G_xBniIqbw0Ls1jF44-csFCur-kEgU8awapJzKnqDKgw"}

	thumbprint, err := GenerateString(rfc7638Key, crypto.SHA256)
	require.NoError(t, err)
	require.Equal(t, "NzbLsXh8uDCcd-6MNwXF4W_7noWXFZAfHkxZsRGC9Xs", thumbprint)
}

func TestGenerate_DefaultHash(t *testing.T) {
	explicit, err := Generate(rfc7638Key, crypto.SHA256)
	require.NoError(t, err)

	implicit, err := Generate(rfc7638Key, 0)
	require.NoError(t, err)

	require.Equal(t, explicit, implicit)
}

func TestGenerate_IgnoresOptionalMembers(t *testing.T) {
	bare := jwk.Key{KeyType: rfc7638Key.KeyType, N: rfc7638Key.N, E: rfc7638Key.E}

	a, err := GenerateString(rfc7638Key, 0)
	require.NoError(t, err)

	b, err := GenerateString(bare, 0)
	require.NoError(t, err)

	require.Equal(t, a, b)
}

func TestGenerate_InvalidKey(t *testing.T) {
	for name, key := range map[string]jwk.Key{
		"EC key":     {KeyType: "EC", N: "AQAB", E: "AQAB"},
		"missing n":  {KeyType: "RSA", E: "AQAB"},
		"missing e":  {KeyType: "RSA", N: "AQAB"},
		"zero value": {},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Generate(key, crypto.SHA256)
			require.ErrorIs(t, err, ErrInvalidKey)
		})
	}
}
