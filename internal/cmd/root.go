package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mvandergrift/alcoholic-jwt/internal/config"
	"github.com/mvandergrift/alcoholic-jwt/internal/logger"
)

// app is the state shared by the commands of one invocation.
type app struct {
	cfgFile string
	v       *viper.Viper
	cfg     *config.Config
}

// NewRootCommand returns the jwkverify command tree.
func NewRootCommand() *cobra.Command {
	a := &app{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:   "jwkverify",
		Short: "Validate RS256 JSON Web Tokens against a JSON Web Key Set",
		Long: `jwkverify validates RS256 signed JSON Web Tokens against keys from a
JSON Web Key Set, and converts PEM encoded RSA public keys to JWKs.

Settings are read from flags, JWKVERIFY_* environment variables and an
optional jwkverify.yaml file, in that order.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.load,
	}

	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is ./jwkverify.yaml)")
	rootCmd.PersistentFlags().String("log-level", "INFO", "log level: DEBUG, INFO, WARN or ERROR")
	_ = a.v.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.AddCommand(
		a.newVerifyCommand(),
		a.newKIDCommand(),
		a.newJWKCommand(),
	)

	return rootCmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func (a *app) load(cmd *cobra.Command, _ []string) error {
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	}

	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg

	logger.InitWriter(cmd.ErrOrStderr(), cfg.LogLevel)
	logger.Debug("Loaded config", "config", cfg.String())

	return nil
}

// readInput returns the single positional argument, or the whole of
// stdin when there is none, with surrounding whitespace removed.
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return strings.TrimSpace(args[0]), nil
	}

	b, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}

	input := string(bytes.TrimSpace(b))
	if input == "" {
		return "", fmt.Errorf("no input given")
	}
	return input, nil
}
