package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/hevy-client/internal/constants"
	"github.com/fivetwenty-io/hevy-client/pkg/hevy"
	"github.com/fivetwenty-io/hevy-client/pkg/hevyclient"
)

// renderOutput writes data in the format selected by --output. The table
// format is delegated to renderTable.
func renderOutput(out io.Writer, data interface{}, renderTable func(io.Writer) error) error {
	switch format := outputFormat(); format {
	case constants.FormatJSON:
		return StandardJSONRenderer(out, data)
	case constants.FormatYAML:
		return StandardYAMLRenderer(out, data)
	case constants.FormatTable, "":
		return renderTable(out)
	default:
		return fmt.Errorf("%w: %s", constants.ErrUnsupportedOutput, format)
	}
}

func outputFormat() string {
	return strings.ToLower(viper.GetString("output"))
}

func isSupportedOutput(format string) bool {
	switch strings.ToLower(format) {
	case constants.FormatJSON, constants.FormatYAML, constants.FormatTable:
		return true
	default:
		return false
	}
}

// StandardJSONRenderer renders data as indented JSON.
func StandardJSONRenderer(out io.Writer, data interface{}) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")

	err := encoder.Encode(data)
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}

// StandardYAMLRenderer renders data as YAML.
func StandardYAMLRenderer(out io.Writer, data interface{}) error {
	encoder := yaml.NewEncoder(out)

	err := encoder.Encode(data)
	if err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}

	return encoder.Close()
}

// createClient builds an API client from flags, environment and the config
// file, in that order of precedence.
func createClient(cmd *cobra.Command) (hevy.Client, error) {
	apiKey := viper.GetString("api_key")
	if apiKey == "" {
		return nil, constants.ErrNoAPIKeyConfigured
	}

	logger := setupLogger(cmd.ErrOrStderr(), viper.GetString("log_level"), viper.GetBool("verbose"))

	client, err := hevyclient.New(&hevy.Config{
		APIKey:  apiKey,
		BaseURL: viper.GetString("api"),
		Debug:   viper.GetBool("verbose"),
		Logger:  NewZerologAdapter(logger),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return client, nil
}

// readInput reads path, or standard input when path is "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read standard input: %w", err)
		}

		return data, nil
	}

	// path is supplied by the user on the command line
	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return data, nil
}

func stringValue(record hevy.Record, key string) string {
	value, ok := record[key]
	if !ok || value == nil {
		return constants.NotAvailable
	}

	if text, ok := value.(string); ok {
		return text
	}

	return fmt.Sprint(value)
}
