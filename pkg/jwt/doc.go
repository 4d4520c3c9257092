// Package jwt validates RS256 signed JSON Web Tokens against keys
// taken from a JSON Web Key Set.
//
// Validation always happens in the same order: the compact token is
// split into its three segments, the RSA public key is rebuilt from
// the JWK, the signature is checked over the encoded header and
// payload, and only then are the header and claims decoded and the
// requested claim checks applied. Nothing read from an unverified
// token is returned to the caller, with the single exception of
// KeyID, which exists to pick the key before verification.
//
// All functions are stateless and safe for concurrent use.
package jwt
