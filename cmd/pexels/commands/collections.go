package commands

import (
	"github.com/spf13/cobra"
)

// NewCollectionsCommand creates the collections command group.
func NewCollectionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "collections",
		Short: "Browse collections",
		Long:  "List featured and personal collections and their media",
	}

	cmd.AddCommand(newCollectionsListCommand())
	cmd.AddCommand(newCollectionsFeaturedCommand())
	cmd.AddCommand(newCollectionsGetCommand())
	cmd.AddCommand(newCollectionsItemsCommand())

	return cmd
}

func newCollectionsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your collections",
		Long:  "List the collections of the authenticated account",
		RunE: func(cmd *cobra.Command, args []string) error {
			apiClient, err := newClient()
			if err != nil {
				return err
			}

			ctx := cmd.Context()

			var doc interface{}
			if wantsAggregation(cmd) {
				doc, err = apiClient.MyCollectionsAll(ctx, listOptions(), aggregateOptions())
			} else {
				doc, err = apiClient.MyCollections(ctx, listOptions())
			}

			if err != nil {
				return err
			}

			return outputDocument(doc, defaultCollectionFields)
		},
	}
}

func newCollectionsFeaturedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "featured",
		Short: "List featured collections",
		RunE: func(cmd *cobra.Command, args []string) error {
			apiClient, err := newClient()
			if err != nil {
				return err
			}

			ctx := cmd.Context()

			var doc interface{}
			if wantsAggregation(cmd) {
				doc, err = apiClient.FeaturedCollectionsAll(ctx, listOptions(), aggregateOptions())
			} else {
				doc, err = apiClient.FeaturedCollections(ctx, listOptions())
			}

			if err != nil {
				return err
			}

			return outputDocument(doc, defaultCollectionFields)
		},
	}
}

func newCollectionsGetCommand() *cobra.Command {
	return newCollectionMediaCommand(
		"get ID",
		"Get a collection",
		"Fetch a collection's media by collection ID",
	)
}

func newCollectionsItemsCommand() *cobra.Command {
	return newCollectionMediaCommand(
		"items ID",
		"List collection media",
		"List the media items of a collection",
	)
}

// newCollectionMediaCommand builds the shared collection media listing; the
// API exposes a collection only through its media endpoint.
func newCollectionMediaCommand(use, short, long string) *cobra.Command {
	var mediaType string

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Long:  long,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			apiClient, err := newClient()
			if err != nil {
				return err
			}

			ctx := cmd.Context()

			var doc interface{}
			if wantsAggregation(cmd) {
				doc, err = apiClient.CollectionMediaAll(ctx, args[0], mediaType, listOptions(), aggregateOptions())
			} else {
				doc, err = apiClient.CollectionMedia(ctx, args[0], mediaType, listOptions())
			}

			if err != nil {
				return err
			}

			return outputDocument(doc, nil)
		},
	}

	cmd.Flags().StringVar(&mediaType, "type", "", "restrict media to photos or videos")

	return cmd
}
