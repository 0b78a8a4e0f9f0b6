package commands

import (
	"github.com/spf13/cobra"
)

// NewVideosCommand creates the videos command group.
func NewVideosCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "videos",
		Short: "Search and fetch videos",
		Long:  "Search videos, browse the popular feed, and fetch single videos",
	}

	cmd.AddCommand(newVideosSearchCommand())
	cmd.AddCommand(newVideosPopularCommand())
	cmd.AddCommand(newVideosGetCommand())

	return cmd
}

func newVideosSearchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "search QUERY",
		Short: "Search videos",
		Long:  "Search videos matching a query",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			apiClient, err := newClient()
			if err != nil {
				return err
			}

			ctx := cmd.Context()

			var doc interface{}
			if wantsAggregation(cmd) {
				doc, err = apiClient.SearchVideosAll(ctx, args[0], listOptions(), aggregateOptions())
			} else {
				doc, err = apiClient.SearchVideos(ctx, args[0], listOptions())
			}

			if err != nil {
				return err
			}

			return outputDocument(doc, defaultVideoFields)
		},
	}
}

func newVideosPopularCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "popular",
		Short: "Browse popular videos",
		Long:  "List videos from the popular feed",
		RunE: func(cmd *cobra.Command, args []string) error {
			apiClient, err := newClient()
			if err != nil {
				return err
			}

			ctx := cmd.Context()

			var doc interface{}
			if wantsAggregation(cmd) {
				doc, err = apiClient.PopularVideosAll(ctx, listOptions(), aggregateOptions())
			} else {
				doc, err = apiClient.PopularVideos(ctx, listOptions())
			}

			if err != nil {
				return err
			}

			return outputDocument(doc, defaultVideoFields)
		},
	}
}

func newVideosGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Get a video",
		Long:  "Fetch a single video by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			apiClient, err := newClient()
			if err != nil {
				return err
			}

			doc, err := apiClient.GetVideo(cmd.Context(), id)
			if err != nil {
				return err
			}

			return outputDocument(doc, defaultVideoFields)
		},
	}
}
