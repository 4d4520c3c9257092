package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mvandergrift/alcoholic-jwt/pkg/jwt"
)

var errNoKeyID = errors.New("token has no key ID")

func (a *app) newKIDCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "kid [token]",
		Short: "Print the key ID of a token without validating it",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			kid, ok, err := jwt.KeyID(token)
			if err != nil {
				return err
			}
			if !ok {
				return errNoKeyID
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), kid)
			return err
		},
	}
}
