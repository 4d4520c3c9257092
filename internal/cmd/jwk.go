package cmd

import (
	"bytes"
	"crypto"
	"crypto/rsa"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mvandergrift/alcoholic-jwt/internal/logger"
	"github.com/mvandergrift/alcoholic-jwt/pkg/jwk"
	"github.com/mvandergrift/alcoholic-jwt/pkg/jwk/thumbprint"
	"github.com/mvandergrift/alcoholic-jwt/pkg/keyutil"
)

func (a *app) newJWKCommand() *cobra.Command {
	var kid string

	jwkCmd := &cobra.Command{
		Use:   "jwk [pem-file]",
		Short: "Convert a PEM encoded RSA key to a JSON Web Key Set",
		Long: `Convert a PEM encoded RSA public key, certificate or private key, read
from the file argument or stdin, to a JWKS holding its public key.

The key ID defaults to the RFC 7638 SHA-256 thumbprint of the key.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readPEM(cmd, args)
			if err != nil {
				return err
			}

			pub, err := parsePublicKey(data)
			if err != nil {
				return err
			}

			key := jwk.FromPublicKey(pub, kid)
			if key.KeyID == "" {
				key.KeyID, err = thumbprint.GenerateString(key, crypto.SHA256)
				if err != nil {
					return err
				}
			}
			logger.Debug("Converted RSA key", "kid", key.KeyID, "bits", pub.N.BitLen())

			b, err := json.MarshalIndent(jwk.Set{Keys: []jwk.Key{key}}, "", "  ")
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(b))
			return err
		},
	}

	jwkCmd.Flags().StringVar(&kid, "kid", "", "key ID (default is the key thumbprint)")

	return jwkCmd
}

func readPEM(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) > 0 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return nil, fmt.Errorf("failed to read key file: %w", err)
		}
		return data, nil
	}

	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return nil, fmt.Errorf("failed to read stdin: %w", err)
	}
	return data, nil
}

// parsePublicKey accepts public keys and certificates, then falls back
// to private keys.
func parsePublicKey(data []byte) (*rsa.PublicKey, error) {
	pub, err := keyutil.ParseRSAPublicKey(bytes.NewReader(data))
	if err == nil {
		return pub, nil
	}

	priv, privErr := keyutil.ParseRSAPrivateKey(bytes.NewReader(data))
	if privErr != nil {
		return nil, fmt.Errorf("failed to parse RSA key: %w", err)
	}
	return &priv.PublicKey, nil
}
