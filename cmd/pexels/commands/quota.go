package commands

import (
	"github.com/spf13/cobra"
)

// NewQuotaCommand creates the quota command group.
func NewQuotaCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quota",
		Short: "Inspect API quota",
		Long:  "Inspect the monthly request quota of the configured API key",
	}

	cmd.AddCommand(newQuotaViewCommand())

	return cmd
}

func newQuotaViewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "view",
		Short: "Show remaining quota",
		Long:  "Probe the API and report the rate-limit accounting headers",
		RunE: func(cmd *cobra.Command, args []string) error {
			apiClient, err := newClient()
			if err != nil {
				return err
			}

			quota, err := apiClient.Quota(cmd.Context())
			if err != nil {
				return err
			}

			return outputDocument(quota, []string{"@all"})
		},
	}
}
