package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mvandergrift/alcoholic-jwt/internal/logger"
	"github.com/mvandergrift/alcoholic-jwt/pkg/bearer"
	"github.com/mvandergrift/alcoholic-jwt/pkg/header"
	"github.com/mvandergrift/alcoholic-jwt/pkg/jwk"
	"github.com/mvandergrift/alcoholic-jwt/pkg/jwt"
)

// verifyOutput is printed for a valid token.
type verifyOutput struct {
	Header header.Parameters `json:"header"`
	Claims jwt.ClaimsSet     `json:"claims"`
}

func (a *app) newVerifyCommand() *cobra.Command {
	verifyCmd := &cobra.Command{
		Use:   "verify [token]",
		Short: "Validate a token and print its header and claims",
		Long: `Validate an RS256 token read from the argument or stdin.

The key is chosen from the JWKS file by the token's "kid" header. A token
without a "kid" is accepted only when the set holds a single key.`,
		Args: cobra.MaximumNArgs(1),
		RunE: a.runVerify,
	}

	verifyCmd.Flags().String("jwks", "", "path of the JSON Web Key Set file")
	verifyCmd.Flags().String("issuer", "", "require this \"iss\" claim")
	verifyCmd.Flags().String("audience", "", "require this \"aud\" claim")
	verifyCmd.Flags().Bool("require-subject", false, "require a \"sub\" claim")

	_ = a.v.BindPFlag("jwks_file", verifyCmd.Flags().Lookup("jwks"))
	_ = a.v.BindPFlag("issuer", verifyCmd.Flags().Lookup("issuer"))
	_ = a.v.BindPFlag("audience", verifyCmd.Flags().Lookup("audience"))
	_ = a.v.BindPFlag("require_subject", verifyCmd.Flags().Lookup("require-subject"))

	return verifyCmd
}

func (a *app) runVerify(cmd *cobra.Command, args []string) error {
	if a.cfg.JWKSFile == "" {
		return fmt.Errorf("no JWKS file given, use --jwks or JWKVERIFY_JWKS_FILE")
	}

	data, err := os.ReadFile(a.cfg.JWKSFile)
	if err != nil {
		return fmt.Errorf("failed to read JWKS file: %w", err)
	}

	set, err := jwk.ParseSet(data)
	if err != nil {
		return err
	}

	token, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	auth, err := bearer.New(set,
		bearer.WithValidations(a.cfg.Validations()...),
		bearer.WithLogger(logger.Logger()),
	)
	if err != nil {
		return err
	}

	validated, err := auth.Validate(token)
	if err != nil {
		logger.Debug("Token rejected", "result", bearer.Result(err))
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(verifyOutput{Header: validated.Header, Claims: validated.Claims})
}
