package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/pexels-client/internal/constants"
	"github.com/fivetwenty-io/pexels-client/pkg/pexels"
)

// ErrUnknownConfigKey is returned for config keys the CLI does not manage.
var ErrUnknownConfigKey = errors.New("unknown configuration key")

// Config represents the persisted CLI configuration.
type Config struct {
	Token   string `json:"token,omitempty"  yaml:"token,omitempty"`
	Host    string `json:"host,omitempty"   yaml:"host,omitempty"`
	Locale  string `json:"locale,omitempty" yaml:"locale,omitempty"`
	Output  string `json:"output,omitempty" yaml:"output,omitempty"`
	NoColor bool   `json:"no_color"         yaml:"no_color"`
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Manage pexels CLI configuration stored in the config file",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigGetCommand())
	cmd.AddCommand(newConfigPathCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the persisted configuration, with the token redacted",
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfigFile()
			if err != nil {
				return err
			}

			display := *config
			if display.Token != "" {
				display.Token = constants.MaskedSecret
			}

			return outputDocument(pexels.Document{
				"token":    display.Token,
				"host":     display.Host,
				"locale":   display.Locale,
				"output":   display.Output,
				"no_color": display.NoColor,
			}, []string{"@all"})
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(constants.MinimumArgumentCount),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]

			config, err := loadConfigFile()
			if err != nil {
				return err
			}

			switch key {
			case "token":
				config.Token = value
			case "host":
				config.Host = value
			case "locale":
				config.Locale = value
			case "output":
				config.Output = value
			case "no_color":
				config.NoColor = value == "true" || value == "1"
			default:
				return fmt.Errorf("%w: %s", ErrUnknownConfigKey, key)
			}

			if err := saveConfigFile(config); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(os.Stdout, "Set %s\n", key)

			return nil
		},
	}
}

func newConfigGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get KEY",
		Short: "Get a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfigFile()
			if err != nil {
				return err
			}

			var value string

			switch args[0] {
			case "token":
				if config.Token != "" {
					value = constants.MaskedSecret
				}
			case "host":
				value = config.Host
			case "locale":
				value = config.Locale
			case "output":
				value = config.Output
			case "no_color":
				value = fmt.Sprintf("%t", config.NoColor)
			default:
				return fmt.Errorf("%w: %s", ErrUnknownConfigKey, args[0])
			}

			_, _ = fmt.Fprintln(os.Stdout, value)

			return nil
		},
	}
}

func newConfigPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configFilePath()
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintln(os.Stdout, path)

			return nil
		},
	}
}

// configFilePath resolves the config file location, honoring --config.
func configFilePath() (string, error) {
	if cfgFile := viper.GetString("config"); cfgFile != "" {
		return cfgFile, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}

	return filepath.Join(home, ".pexels", "config.yml"), nil
}

// loadConfigFile reads the persisted configuration. A missing file yields an
// empty config.
func loadConfigFile() (*Config, error) {
	path, err := configFilePath()
	if err != nil {
		return nil, err
	}

	config := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}

		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return config, nil
}

// saveConfigFile persists the configuration. The file carries the API token,
// so it is written owner-only.
func saveConfigFile(config *Config) error {
	path, err := configFilePath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), constants.ConfigDirPerm); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, constants.ConfigFilePerm); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
