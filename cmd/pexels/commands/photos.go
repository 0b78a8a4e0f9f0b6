package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/pexels-client/internal/constants"
	"github.com/fivetwenty-io/pexels-client/pkg/pexels"
)

// Static errors for the photos commands.
var (
	ErrQueryRequired = errors.New("search query is required")
	ErrInvalidID     = errors.New("ID must be a positive integer")
	ErrSizeNotFound  = errors.New("size not available for this photo")
	ErrNoSourceBlock = errors.New("photo has no src block")
)

// NewPhotosCommand creates the photos command group.
func NewPhotosCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "photos",
		Short: "Search and fetch photos",
		Long:  "Search photos, browse the curated feed, and download photo files",
	}

	cmd.AddCommand(newPhotosSearchCommand())
	cmd.AddCommand(newPhotosCuratedCommand())
	cmd.AddCommand(newPhotosGetCommand())
	cmd.AddCommand(newPhotosURLCommand())
	cmd.AddCommand(newPhotosDownloadCommand())

	return cmd
}

func newPhotosSearchCommand() *cobra.Command {
	var query string

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search photos",
		Long:  "Search photos matching a query",
		RunE: func(cmd *cobra.Command, args []string) error {
			if query == "" {
				return ErrQueryRequired
			}

			apiClient, err := newClient()
			if err != nil {
				return err
			}

			ctx := cmd.Context()

			var doc interface{}
			if wantsAggregation(cmd) {
				doc, err = apiClient.SearchPhotosAll(ctx, query, listOptions(), aggregateOptions())
			} else {
				doc, err = apiClient.SearchPhotos(ctx, query, listOptions())
			}

			if err != nil {
				return err
			}

			return outputDocument(doc, defaultPhotoFields)
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "search query (required)")
	_ = cmd.MarkFlagRequired("query")

	return cmd
}

func newPhotosCuratedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "curated",
		Short: "Browse the curated feed",
		Long:  "List photos from the curated feed",
		RunE: func(cmd *cobra.Command, args []string) error {
			apiClient, err := newClient()
			if err != nil {
				return err
			}

			ctx := cmd.Context()

			var doc interface{}
			if wantsAggregation(cmd) {
				doc, err = apiClient.CuratedPhotosAll(ctx, listOptions(), aggregateOptions())
			} else {
				doc, err = apiClient.CuratedPhotos(ctx, listOptions())
			}

			if err != nil {
				return err
			}

			return outputDocument(doc, defaultPhotoFields)
		},
	}
}

func newPhotosGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Get a photo",
		Long:  "Fetch a single photo by ID",
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

			doc, err := apiClient.GetPhoto(cmd.Context(), id)
			if err != nil {
				return err
			}

			return outputDocument(doc, defaultPhotoFields)
		},
	}
}

func newPhotosURLCommand() *cobra.Command {
	var size string

	cmd := &cobra.Command{
		Use:   "url ID",
		Short: "Print a photo file URL",
		Long:  "Print the file URL of a photo at the requested size",
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

			doc, err := apiClient.GetPhoto(cmd.Context(), id)
			if err != nil {
				return err
			}

			url, err := photoSourceURL(doc, size)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintln(os.Stdout, url)

			return nil
		},
	}

	cmd.Flags().StringVar(&size, "size", "original", "source size (original, large2x, large, medium, small, portrait, landscape, tiny)")

	return cmd
}

func newPhotosDownloadCommand() *cobra.Command {
	var size string

	cmd := &cobra.Command{
		Use:   "download ID PATH",
		Short: "Download a photo file",
		Long:  "Download a photo at the requested size to a local file",
		Args:  cobra.ExactArgs(constants.MinimumArgumentCount),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			destination := args[1]

			apiClient, err := newClient()
			if err != nil {
				return err
			}

			ctx := cmd.Context()

			doc, err := apiClient.GetPhoto(ctx, id)
			if err != nil {
				return err
			}

			url, err := photoSourceURL(doc, size)
			if err != nil {
				return err
			}

			body, err := apiClient.Download(ctx, url)
			if err != nil {
				return err
			}

			if err := writeDownload(destination, body); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(os.Stdout, "Saved %s (%d bytes)\n", destination, len(body))

			return nil
		},
	}

	cmd.Flags().StringVar(&size, "size", "original", "source size (original, large2x, large, medium, small, portrait, landscape, tiny)")

	return cmd
}

// photoSourceURL extracts the file URL for a size from a photo's src block.
func photoSourceURL(value interface{}, size string) (string, error) {
	doc, ok := value.(pexels.Document)
	if !ok {
		return "", ErrNoSourceBlock
	}

	src, ok := doc["src"].(pexels.Document)
	if !ok {
		return "", ErrNoSourceBlock
	}

	url, ok := src[size].(string)
	if !ok || url == "" {
		return "", fmt.Errorf("%w: %s", ErrSizeNotFound, size)
	}

	return url, nil
}

// writeDownload stores a fetched asset, creating parent directories. The
// file is written owner-only like the config file.
func writeDownload(destination string, body []byte) error {
	if dir := filepath.Dir(destination); dir != "." {
		if err := os.MkdirAll(dir, constants.ConfigDirPerm); err != nil {
			return fmt.Errorf("creating destination directory: %w", err)
		}
	}

	if err := os.WriteFile(destination, body, constants.DownloadFilePerm); err != nil {
		return fmt.Errorf("writing file: %w", err)
	}

	return nil
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s", ErrInvalidID, raw)
	}

	return id, nil
}
