// Package commands implements the pexels CLI commands.
package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/pexels-client/internal/client"
	"github.com/fivetwenty-io/pexels-client/internal/constants"
	"github.com/fivetwenty-io/pexels-client/internal/filter"
	"github.com/fivetwenty-io/pexels-client/pkg/pexels"
)

// Default projections applied when --fields is not given.
var (
	defaultPhotoFields      = []string{"id", "photographer", "alt", "width", "height", "avg_color"}
	defaultVideoFields      = []string{"id", "duration", "width", "height"}
	defaultCollectionFields = []string{"id", "title", "description", "media_count"}
)

// CLIVersion is stamped by main for the User-Agent header.
var CLIVersion = "dev"

// newClient builds an API client from the effective configuration.
func newClient() (*client.Client, error) {
	token := viper.GetString("token")
	if token == "" {
		return nil, fmt.Errorf("%w: set PEXELS_TOKEN or run 'pexels auth login'", pexels.ErrTokenRequired)
	}

	return newClientWithToken(token)
}

// newClientWithToken builds an API client for an explicit key, used when
// verifying a key before it is stored.
func newClientWithToken(token string) (*client.Client, error) {
	if token == "" {
		return nil, pexels.ErrTokenRequired
	}

	return client.New(client.Config{
		Host:       viper.GetString("host"),
		Token:      token,
		Locale:     viper.GetString("locale"),
		UserAgent:  fmt.Sprintf("pexels-client/%s", CLIVersion),
		Timeout:    viper.GetDuration("timeout"),
		MaxRetries: viper.GetInt("max_retries"),
		RetryAfter: viper.GetDuration("retry_after"),
		Debug:      viper.GetBool("debug"),
		Logger:     newLogger(),
	}), nil
}

// newLogger builds the CLI logger. Warnings (retry notices) always show;
// --verbose lowers the threshold to info and --debug to debug.
func newLogger() zerolog.Logger {
	level := zerolog.WarnLevel
	if viper.GetBool("verbose") {
		level = zerolog.InfoLevel
	}

	if viper.GetBool("debug") {
		level = zerolog.DebugLevel
	}

	writer := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.Kitchen,
		NoColor:    viper.GetBool("no_color"),
	}

	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}

// listOptions reads the single-page pagination flags.
func listOptions() pexels.ListOptions {
	return pexels.ListOptions{
		Page:    viper.GetInt("page"),
		PerPage: viper.GetInt("per_page"),
	}
}

// aggregateOptions reads the multi-page flags.
func aggregateOptions() pexels.AggregateOptions {
	return pexels.AggregateOptions{
		Limit:    viper.GetInt("limit"),
		MaxPages: viper.GetInt("max_pages"),
	}
}

// wantsAggregation reports whether the pagination flags ask for more than a
// single page.
func wantsAggregation(cmd *cobra.Command) bool {
	flags := cmd.Root().PersistentFlags()

	return viper.GetBool("all") || flags.Changed("limit") || flags.Changed("max-pages")
}

// outputDocument runs a raw API response through the presentation pipeline:
// shape into the {data, meta} envelope, filter items, project fields, render.
// Raw output short-circuits the pipeline and emits the response as fetched.
func outputDocument(value interface{}, defaultFields []string) error {
	if viper.GetString("output") == constants.FormatRaw {
		return renderRaw(value)
	}

	envelope := pexels.Shape(value)

	fields := selectedFields(defaultFields)

	switch data := envelope.Data.(type) {
	case []interface{}:
		items, err := applyFilter(data)
		if err != nil {
			return err
		}

		envelope.Data = pexels.ProjectItems(items, fields)
	case pexels.Document:
		envelope.Data = pexels.ProjectItem(data, fields)
	}

	return renderEnvelope(envelope)
}

// selectedFields resolves the effective projection: explicit --fields, else
// the per-resource defaults.
func selectedFields(defaults []string) []string {
	if fields := pexels.ParseFields(viper.GetStringSlice("fields")); len(fields) > 0 {
		return fields
	}

	return defaults
}

// applyFilter narrows items by the --filter expression, if any.
func applyFilter(items []interface{}) ([]interface{}, error) {
	source := viper.GetString("filter")
	if source == "" {
		return items, nil
	}

	f, err := filter.Compile(source)
	if err != nil {
		return nil, err
	}

	return f.Apply(items), nil
}

// renderEnvelope writes the envelope in the requested output format.
func renderEnvelope(envelope pexels.Envelope) error {
	switch viper.GetString("output") {
	case constants.FormatJSON:
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", strings.Repeat(" ", constants.JSONIndentSize))

		if err := encoder.Encode(envelope); err != nil {
			return fmt.Errorf("encoding envelope to JSON: %w", err)
		}

		return nil
	case constants.FormatYAML:
		encoder := yaml.NewEncoder(os.Stdout)

		if err := encoder.Encode(envelope); err != nil {
			return fmt.Errorf("encoding envelope to YAML: %w", err)
		}

		return nil
	case constants.FormatTable, "":
		return renderTable(envelope)
	default:
		return fmt.Errorf("%w: %s", pexels.ErrUnsupportedFormat, viper.GetString("output"))
	}
}

// renderRaw prints a value without reshaping: strings verbatim, everything
// else as compact JSON.
func renderRaw(data interface{}) error {
	if s, ok := data.(string); ok {
		fmt.Fprintln(os.Stdout, s)

		return nil
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encoding data to JSON: %w", err)
	}

	fmt.Fprintln(os.Stdout, string(raw))

	return nil
}

// renderTable writes item lists as one row per item and single resources as
// a property table, followed by the pagination summary.
func renderTable(envelope pexels.Envelope) error {
	switch data := envelope.Data.(type) {
	case []interface{}:
		if err := renderItemsTable(data); err != nil {
			return err
		}
	case pexels.Document:
		if err := renderPropertyTable(data); err != nil {
			return err
		}
	default:
		return renderRaw(data)
	}

	renderMetaSummary(envelope.Meta)

	return nil
}

func renderItemsTable(items []interface{}) error {
	if len(items) == 0 {
		_, _ = os.Stdout.WriteString("No results\n")

		return nil
	}

	columns := tableColumns(items)

	header := make([]any, 0, len(columns))
	for _, column := range columns {
		header = append(header, column)
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header(header...)

	for _, item := range items {
		doc, ok := item.(pexels.Document)
		if !ok {
			continue
		}

		row := make([]any, 0, len(columns))
		for _, column := range columns {
			row = append(row, formatCellValue(doc[column]))
		}

		_ = table.Append(row...)
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func renderPropertyTable(doc pexels.Document) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Property", "Value")

	keys := make([]string, 0, len(doc))
	for key := range doc {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	for _, key := range keys {
		_ = table.Append(key, formatCellValue(doc[key]))
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

// tableColumns collects the union of item keys, sorted for stable output.
func tableColumns(items []interface{}) []string {
	seen := map[string]bool{}

	for _, item := range items {
		doc, ok := item.(pexels.Document)
		if !ok {
			continue
		}

		for key := range doc {
			seen[key] = true
		}
	}

	columns := make([]string, 0, len(seen))
	for key := range seen {
		columns = append(columns, key)
	}

	sort.Strings(columns)

	return columns
}

func renderMetaSummary(meta pexels.Meta) {
	if meta.TotalResults != nil {
		_, _ = fmt.Fprintf(os.Stdout, "Total results: %d\n", *meta.TotalResults)
	}

	if meta.NextPage != nil {
		_, _ = fmt.Fprintf(os.Stdout, "Next page: %d\n", *meta.NextPage)
	}
}

// formatCellValue renders a projected value for table display: scalars
// as-is, nested structures as compact JSON, long values truncated.
func formatCellValue(value interface{}) string {
	if value == nil {
		return constants.NotAvailable
	}

	var text string

	switch v := value.(type) {
	case string:
		text = v
	case float64:
		if v == float64(int64(v)) {
			text = fmt.Sprintf("%d", int64(v))
		} else {
			text = fmt.Sprintf("%g", v)
		}
	case bool:
		text = fmt.Sprintf("%t", v)
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			text = fmt.Sprintf("%v", v)
		} else {
			text = string(raw)
		}
	}

	if len(text) > constants.ValueDisplayLength {
		text = text[:constants.ValueDisplayLength] + "..."
	}

	return text
}

// PrintError writes an error to stderr in the requested output format.
func PrintError(err error) {
	payload := pexels.ErrorPayload(err)

	switch viper.GetString("output") {
	case constants.FormatJSON:
		encoder := json.NewEncoder(os.Stderr)
		encoder.SetIndent("", strings.Repeat(" ", constants.JSONIndentSize))
		_ = encoder.Encode(payload)
	case constants.FormatYAML:
		encoder := yaml.NewEncoder(os.Stderr)
		_ = encoder.Encode(payload)
	default:
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
}
