package jwt

import (
	"bytes"
	"crypto"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"math/big"

	"github.com/mvandergrift/alcoholic-jwt/pkg/base64"
	"github.com/mvandergrift/alcoholic-jwt/pkg/jwk"
)

// ASN.1 DER prefix of a SHA-256 DigestInfo.
//
// https://datatracker.ietf.org/doc/html/rfc8017#section-9.2
var sha256DigestInfoPrefix = []byte{
	0x30, 0x31, 0x30, 0x0d, 0x06, 0x09, 0x60, 0x86, 0x48, 0x01,
	0x65, 0x03, 0x04, 0x02, 0x01, 0x05, 0x00, 0x04, 0x20,
}

// minModulusSize is the smallest modulus, in bytes, that can carry an
// EMSA-PKCS1-v1_5 encoded SHA-256 digest.
var minModulusSize = len(sha256DigestInfoPrefix) + sha256.Size + 11

// VerifySignature checks an RS256 (RSASSA-PKCS1-v1_5 using SHA-256)
// signature over signingInput, which must be the encoded header and
// payload exactly as they appear in the token.
//
// A signature that does not match returns ErrInvalidSignature. A key
// that cannot be used at all returns ErrCryptoOperation.
func VerifySignature(signingInput, signature []byte, key *jwk.PublicKey) error {
	if key == nil || key.N == nil || key.E == nil {
		return newErrorf(ErrCryptoOperation, "no RSA public key")
	}

	k := key.Size()
	if k < minModulusSize {
		return newErrorf(ErrCryptoOperation, "%d-bit RSA modulus is too small for RS256", key.N.BitLen())
	}

	if len(signature) == 0 {
		return newErrorf(ErrInvalidSignature, "empty signature")
	}
	if len(signature) != k {
		return newErrorf(ErrInvalidSignature, "signature is %d bytes, expected %d", len(signature), k)
	}

	digest := sha256.Sum256(signingInput)

	publicKey, ok := key.RSA()
	if !ok {
		return verifyPKCS1v15(key, digest[:], signature)
	}

	err := rsa.VerifyPKCS1v15(publicKey, crypto.SHA256, digest[:], signature)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, rsa.ErrVerification):
		return newError(ErrInvalidSignature, err)
	default:
		return newError(ErrCryptoOperation, err)
	}
}

// verifyPKCS1v15 is RSASSA-PKCS1-v1_5 verification with arbitrary
// precision arithmetic, for public exponents crypto/rsa cannot hold.
// The caller has already checked the signature length.
//
// https://datatracker.ietf.org/doc/html/rfc8017#section-8.2.2
func verifyPKCS1v15(key *jwk.PublicKey, digest, signature []byte) error {
	k := key.Size()

	s := new(big.Int).SetBytes(signature)
	if s.Cmp(key.N) >= 0 {
		return newErrorf(ErrInvalidSignature, "signature representative out of range")
	}

	m := new(big.Int).Exp(s, key.E, key.N)
	if m.BitLen() > k*8 {
		return newErrorf(ErrCryptoOperation, "message representative out of range")
	}

	em := m.FillBytes(make([]byte, k))

	if subtle.ConstantTimeCompare(em, encodePKCS1v15(k, digest)) != 1 {
		return newError(ErrInvalidSignature, rsa.ErrVerification)
	}
	return nil
}

// encodePKCS1v15 returns 0x00 || 0x01 || PS || 0x00 || DigestInfo,
// where PS is padding of 0xff bytes filling k bytes in total.
func encodePKCS1v15(k int, digest []byte) []byte {
	t := append(bytes.Clone(sha256DigestInfoPrefix), digest...)

	em := make([]byte, k)
	em[1] = 0x01
	for i := 2; i < k-len(t)-1; i++ {
		em[i] = 0xff
	}
	copy(em[k-len(t):], t)

	return em
}

// verifySegments decodes the signature segment and checks it against
// the encoded header and payload. An empty signature segment is a
// signature mismatch, not a decoding failure.
func verifySegments(segments Segments, key *jwk.PublicKey) error {
	var signature []byte
	if segments.Signature != "" {
		var err error
		signature, err = base64.Decode(segments.Signature)
		if err != nil {
			return newErrorf(ErrMalformedJWT, "failed to decode signature: %w", err)
		}
	}

	return VerifySignature(segments.SigningInput(), signature, key)
}
