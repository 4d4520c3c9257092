package thumbprint

import (
	"crypto"
	"encoding/json"
	"errors"

	// Register SHA-256, the default thumbprint hash.
	_ "crypto/sha256"

	"github.com/mvandergrift/alcoholic-jwt/pkg/base64"
	"github.com/mvandergrift/alcoholic-jwt/pkg/jwk"
)

var (
	ErrInvalidKey = errors.New("thumbprint: invalid key")
	ErrHash       = errors.New("thumbprint: hash function unavailable")
)

// requiredMembers holds the required members of an RSA JWK. Field
// order matters: it is the lexicographic order RFC 7638 demands, and
// encoding/json preserves struct field order.
type requiredMembers struct {
	E   string `json:"e"`
	Kty string `json:"kty"`
	N   string `json:"n"`
}

// Generate returns the JWK Thumbprint for the given RSA JWK following
// the steps defined in RFC 7638. A zero hash means SHA-256.
func Generate(key jwk.Key, h crypto.Hash) ([]byte, error) {
	// 1. Construct a JSON object [RFC7159] containing only the required
	// members of a JWK representing the key and with no whitespace or
	// line breaks before or after any syntactic elements and with the
	// required members ordered lexicographically by the Unicode
	// [UNICODE] code points of the member names.
	if key.KeyType != jwk.KeyTypeRSA || key.N == "" || key.E == "" {
		return nil, ErrInvalidKey
	}

	b, err := json.Marshal(requiredMembers{
		E:   key.E,
		Kty: key.KeyType,
		N:   key.N,
	})
	if err != nil {
		return nil, err
	}

	// 2. Hash the octets of the UTF-8 representation of this JSON object
	// with a cryptographic hash function H.
	if h == 0 {
		h = crypto.SHA256
	}
	if !h.Available() {
		return nil, ErrHash
	}

	hash := h.New()
	if _, err := hash.Write(b); err != nil {
		return nil, err
	}

	return hash.Sum(nil), nil
}

// GenerateString returns the base64url encoded JWK Thumbprint.
func GenerateString(key jwk.Key, h crypto.Hash) (string, error) {
	thumbprint, err := Generate(key, h)
	if err != nil {
		return "", err
	}

	return base64.Encode(thumbprint), nil
}
