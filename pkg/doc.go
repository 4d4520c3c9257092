// Package jose collects the packages used to validate RS256 signed JSON
// Web Tokens against a JSON Web Key Set.
//
//   - base64: unpadded base64url encoding
//   - jwa: the supported signature algorithms
//   - header: JOSE header parameters
//   - jwk: RSA JSON Web Keys and key sets
//   - jwk/thumbprint: RFC 7638 key thumbprints
//   - jwt: token splitting, signature verification and claim checks
//   - bearer: HTTP bearer token authentication
//   - keyutil: PEM encoded RSA keys
//
// Related RFCs:
//   - RFC7515 https://datatracker.ietf.org/doc/html/rfc7515 JWS, JSON Web Signature
//   - RFC7517 https://datatracker.ietf.org/doc/html/rfc7517 JWK, JSON Web Key
//   - RFC7518 https://datatracker.ietf.org/doc/html/rfc7518 JWA, JSON Web Algorithms
//   - RFC7519 https://datatracker.ietf.org/doc/html/rfc7519 JWT, JSON Web Token
//   - RFC7638 https://datatracker.ietf.org/doc/html/rfc7638 JWK Thumbprint
//
// Related Information:
//   - https://datatracker.ietf.org/wg/jose/charter/
package jose
