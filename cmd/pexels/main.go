package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fivetwenty-io/pexels-client/cmd/pexels/commands"
	"github.com/fivetwenty-io/pexels-client/internal/constants"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "pexels",
	Short: "Pexels API CLI",
	Long: `A command-line interface for the Pexels photo and video API.

Search and browse photos, videos, and collections, with transparent
pagination, field projection, and filtering of results.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	commands.CLIVersion = version

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.pexels/config.yml)")
	rootCmd.PersistentFlags().StringP("token", "t", "", "Pexels API key")
	rootCmd.PersistentFlags().String("host", "", "API host URL")
	rootCmd.PersistentFlags().String("locale", "", "result locale (e.g. en-US, es-ES)")
	rootCmd.PersistentFlags().StringP("output", "o", "table", "output format (table, json, yaml, raw)")
	rootCmd.PersistentFlags().StringSliceP("fields", "f", nil, "fields to project (dot paths, [*] wildcards, @-groups)")
	rootCmd.PersistentFlags().String("filter", "", "boolean expression applied per result item")
	rootCmd.PersistentFlags().Int("page", 0, "page number")
	rootCmd.PersistentFlags().Int("per-page", 0, "results per page")
	rootCmd.PersistentFlags().Bool("all", false, "fetch all pages")
	rootCmd.PersistentFlags().Int("limit", -1, "maximum number of items to fetch across pages")
	rootCmd.PersistentFlags().Int("max-pages", 0, "maximum number of pages to fetch")
	rootCmd.PersistentFlags().Duration("timeout", constants.DefaultHTTPTimeout, "per-request timeout")
	rootCmd.PersistentFlags().Int("max-retries", constants.DefaultRetryMax, "retries for transient failures")
	rootCmd.PersistentFlags().Duration("retry-after", 0, "fixed wait between retries, overriding the server hint")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().Bool("debug", false, "log requests and responses")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored output")

	// Bind flags to viper
	_ = viper.BindPFlag("token", rootCmd.PersistentFlags().Lookup("token"))
	_ = viper.BindPFlag("host", rootCmd.PersistentFlags().Lookup("host"))
	_ = viper.BindPFlag("locale", rootCmd.PersistentFlags().Lookup("locale"))
	_ = viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	_ = viper.BindPFlag("fields", rootCmd.PersistentFlags().Lookup("fields"))
	_ = viper.BindPFlag("filter", rootCmd.PersistentFlags().Lookup("filter"))
	_ = viper.BindPFlag("page", rootCmd.PersistentFlags().Lookup("page"))
	_ = viper.BindPFlag("per_page", rootCmd.PersistentFlags().Lookup("per-page"))
	_ = viper.BindPFlag("all", rootCmd.PersistentFlags().Lookup("all"))
	_ = viper.BindPFlag("limit", rootCmd.PersistentFlags().Lookup("limit"))
	_ = viper.BindPFlag("max_pages", rootCmd.PersistentFlags().Lookup("max-pages"))
	_ = viper.BindPFlag("timeout", rootCmd.PersistentFlags().Lookup("timeout"))
	_ = viper.BindPFlag("max_retries", rootCmd.PersistentFlags().Lookup("max-retries"))
	_ = viper.BindPFlag("retry_after", rootCmd.PersistentFlags().Lookup("retry-after"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("no_color", rootCmd.PersistentFlags().Lookup("no-color"))

	// Add commands
	rootCmd.AddCommand(commands.NewVersionCommand(version, commit, date))
	rootCmd.AddCommand(commands.NewAuthCommand())
	rootCmd.AddCommand(commands.NewConfigCommand())
	rootCmd.AddCommand(commands.NewPhotosCommand())
	rootCmd.AddCommand(commands.NewVideosCommand())
	rootCmd.AddCommand(commands.NewCollectionsCommand())
	rootCmd.AddCommand(commands.NewQuotaCommand())
	rootCmd.AddCommand(commands.NewUtilCommand())
}

func initConfig() {
	cfgFile := viper.GetString("config")

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		// Search config in ~/.pexels/config.yml
		viper.AddConfigPath(filepath.Join(home, ".pexels"))
		viper.SetConfigType("yml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match
	viper.SetEnvPrefix("PEXELS")
	viper.AutomaticEnv()

	// PEXELS_API_KEY is the name the upstream documentation uses
	_ = viper.BindEnv("token", "PEXELS_TOKEN", "PEXELS_API_KEY")

	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		commands.PrintError(err)
		os.Exit(1)
	}
}
