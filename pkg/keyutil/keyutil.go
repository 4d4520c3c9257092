package keyutil

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"io"
)

// DefaultRSAKeySize is the RSA modulus size, in bits, used by NewRSAKeyPair.
const DefaultRSAKeySize = 2048

// ParseRSAPublicKey parses the PEM encoded RSA public key from the given
// reader. PKIX ("PUBLIC KEY"), PKCS #1 ("RSA PUBLIC KEY") and X.509
// certificate blocks are accepted.
func ParseRSAPublicKey(r io.Reader) (*rsa.PublicKey, error) {
	keyBytes, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read RSA public key from reader: %w", err)
	}

	block, _ := pem.Decode(keyBytes)
	if block == nil {
		return nil, fmt.Errorf("failed to decode RSA public key PEM block")
	}

	var parsedKey any

	parsedKey, err = x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		if pkcs1, pkcs1Err := x509.ParsePKCS1PublicKey(block.Bytes); pkcs1Err == nil {
			parsedKey = pkcs1
		} else if cert, certErr := x509.ParseCertificate(block.Bytes); certErr == nil {
			parsedKey = cert.PublicKey
		} else {
			return nil, fmt.Errorf("failed to decode RSA public key: %w", err)
		}
	}

	publicKey, ok := parsedKey.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("invalid type %T for parse RSA public key", parsedKey)
	}

	return publicKey, nil
}

// ParseRSAPrivateKey parses the PEM encoded RSA private key from the given reader.
func ParseRSAPrivateKey(r io.Reader) (*rsa.PrivateKey, error) {
	keyBytes, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read RSA private key from reader: %w", err)
	}

	block, _ := pem.Decode(keyBytes)
	if block == nil {
		return nil, fmt.Errorf("failed to decode RSA private key PEM block")
	}

	var parsedKey any

	parsedKey, err = x509.ParsePKCS1PrivateKey(block.Bytes)
	if err != nil {
		p8, p8Err := x509.ParsePKCS8PrivateKey(block.Bytes)
		if p8Err == nil {
			parsedKey = p8
		} else {
			return nil, fmt.Errorf("failed to decode RSA private key: %w", err)
		}
	}

	privateKey, ok := parsedKey.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("invalid type %T for parse RSA private key", parsedKey)
	}

	return privateKey, nil
}

// NewRSAKeyPair returns a new RSA key pair, or an error if one occurs.
func NewRSAKeyPair() (*rsa.PublicKey, *rsa.PrivateKey, error) {
	privateKey, err := rsa.GenerateKey(rand.Reader, DefaultRSAKeySize)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate new RSA key pair: %w", err)
	}

	return &privateKey.PublicKey, privateKey, nil
}
