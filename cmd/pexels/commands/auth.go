package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/fivetwenty-io/pexels-client/pkg/pexels"
)

// NewAuthCommand creates the auth command group.
func NewAuthCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage API authentication",
		Long:  "Store, inspect, and clear the Pexels API key",
	}

	cmd.AddCommand(newAuthLoginCommand())
	cmd.AddCommand(newAuthStatusCommand())
	cmd.AddCommand(newAuthTokenSourceCommand())
	cmd.AddCommand(newAuthLogoutCommand())

	return cmd
}

func newAuthLoginCommand() *cobra.Command {
	var skipVerify bool

	cmd := &cobra.Command{
		Use:   "login [TOKEN]",
		Short: "Store an API key",
		Long: `Store a Pexels API key in the config file.

The key is taken from the argument, the PEXELS_TOKEN or PEXELS_API_KEY
environment variable, or an interactive prompt, in that order.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := resolveLoginToken(args)
			if err != nil {
				return err
			}

			if !skipVerify {
				if err := verifyToken(cmd.Context(), token); err != nil {
					return fmt.Errorf("verifying API key: %w", err)
				}
			}

			config, err := loadConfigFile()
			if err != nil {
				return err
			}

			config.Token = token
			if err := saveConfigFile(config); err != nil {
				return err
			}

			_, _ = os.Stdout.WriteString("API key saved\n")

			return nil
		},
	}

	cmd.Flags().BoolVar(&skipVerify, "skip-verify", false, "save the key without probing the API")

	return cmd
}

func newAuthStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show authentication status",
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := tokenSource(cmd)
			if err != nil {
				return err
			}

			return outputDocument(pexels.Document{
				"authenticated": source != "none",
				"source":        source,
			}, []string{"@all"})
		},
	}
}

func newAuthTokenSourceCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "token-source",
		Short: "Show where the API key comes from",
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := tokenSource(cmd)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintln(os.Stdout, source)

			return nil
		},
	}
}

func newAuthLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored API key",
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfigFile()
			if err != nil {
				return err
			}

			if config.Token == "" {
				_, _ = os.Stdout.WriteString("No API key stored\n")

				return nil
			}

			config.Token = ""
			if err := saveConfigFile(config); err != nil {
				return err
			}

			_, _ = os.Stdout.WriteString("API key removed\n")

			return nil
		},
	}
}

// resolveLoginToken picks the key to store: argument, environment, then an
// interactive no-echo prompt.
func resolveLoginToken(args []string) (string, error) {
	if len(args) == 1 && args[0] != "" {
		return args[0], nil
	}

	for _, name := range []string{"PEXELS_TOKEN", "PEXELS_API_KEY"} {
		if token := os.Getenv(name); token != "" {
			return token, nil
		}
	}

	_, _ = os.Stdout.WriteString("API key: ")

	raw, err := term.ReadPassword(int(os.Stdin.Fd()))

	_, _ = os.Stdout.WriteString("\n")

	if err != nil {
		return "", fmt.Errorf("reading API key: %w", err)
	}

	token := strings.TrimSpace(string(raw))
	if token == "" {
		return "", pexels.ErrTokenRequired
	}

	return token, nil
}

// verifyToken probes the API with the candidate key before saving it.
func verifyToken(ctx context.Context, token string) error {
	probe, err := newClientWithToken(token)
	if err != nil {
		return err
	}

	return probe.Ping(ctx)
}

// tokenSource reports where the effective API key comes from: the --token
// flag, the environment, the config file, or nowhere.
func tokenSource(cmd *cobra.Command) (string, error) {
	if cmd.Root().PersistentFlags().Changed("token") {
		return "cli", nil
	}

	if os.Getenv("PEXELS_TOKEN") != "" || os.Getenv("PEXELS_API_KEY") != "" {
		return "env", nil
	}

	config, err := loadConfigFile()
	if err != nil {
		return "", err
	}

	if config.Token != "" {
		return "config", nil
	}

	return "none", nil
}
