package commands

import (
	"os"

	"github.com/spf13/cobra"
)

// NewUtilCommand creates the util command group.
func NewUtilCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "util",
		Short: "Utility commands",
		Long:  "Diagnostics and raw API access",
	}

	cmd.AddCommand(newUtilInspectCommand())
	cmd.AddCommand(newUtilPingCommand())

	return cmd
}

func newUtilInspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect PATH",
		Short: "Fetch a raw API document",
		Long: `Fetch an API path or absolute URL and print the response document
without the usual default projection, useful for discovering fields.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			apiClient, err := newClient()
			if err != nil {
				return err
			}

			doc, err := apiClient.Raw(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return outputDocument(doc, []string{"@all"})
		},
	}
}

func newUtilPingCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check API reachability",
		Long:  "Probe the API with the configured key and report the result",
		RunE: func(cmd *cobra.Command, args []string) error {
			apiClient, err := newClient()
			if err != nil {
				return err
			}

			if err := apiClient.Ping(cmd.Context()); err != nil {
				return err
			}

			_, _ = os.Stdout.WriteString("OK\n")

			return nil
		},
	}
}
