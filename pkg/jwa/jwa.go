package jwa

import "golang.org/x/exp/slices"

// https://datatracker.ietf.org/doc/html/rfc7518#section-3.1
type Algorithm = string

// RSASSA-PKCS1-v1_5 using SHA-256
//
// This algorithm is used to digitally sign a JWS and produce a
// JWS Signature using PKCS #1 v1.5 methods.
//
// # RSA Key Size
//
// A key of size 2048 bits or larger MUST be used with this algorithm.
//
// https://datatracker.ietf.org/doc/html/rfc7518#section-3.3
const RS256 Algorithm = "RS256"

var supported = []Algorithm{RS256}

// Supported reports whether the given algorithm can be verified.
func Supported(alg Algorithm) bool {
	return slices.Contains(supported, alg)
}

// SupportedAlgorithms returns a copy of the algorithms that can be verified.
func SupportedAlgorithms() []Algorithm {
	return slices.Clone(supported)
}
