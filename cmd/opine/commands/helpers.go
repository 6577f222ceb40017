// Package commands implements the opine CLI commands.
package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/opine-io/opine-client/pkg/opine"
	"github.com/opine-io/opine-client/pkg/opineclient"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	OutputFormatTable = "table"
	OutputFormatJSON  = "json"
	OutputFormatYAML  = "yaml"
)

const (
	defaultYAMLIndent = 2

	tableDateFormat     = "2006-01-02"
	tableDateTimeFormat = "2006-01-02 15:04:05"
)

// Static errors for err113 compliance.
var (
	ErrAPIEndpointRequired      = errors.New("API endpoint is required (use --api, OPINE_API, or 'opine login')")
	ErrTokenRequired            = errors.New("authentication token is required (use --token, OPINE_TOKEN, or 'opine login')")
	ErrEndpointValidationFailed = errors.New("endpoint validation failed")
	ErrConfigKeyUnknown         = errors.New("unknown configuration key")
	ErrCommentsFileRequired     = errors.New("a comments file is required (use --file)")
	ErrTimestampRequired        = errors.New("a timestamp is required (use --to)")
	ErrDeleteFailed             = errors.New("one or more deletions failed")
	ErrFullNameRequired         = errors.New("an owner/name pair is required")
)

// parseFullNameArg parses an argument that must be in owner/name form.
func parseFullNameArg(kind opine.ResourceKind, arg string) (string, string, error) {
	identifier, err := opine.ParseIdentifier(kind, arg)
	if err != nil {
		return "", "", err
	}

	owner, name, ok := identifier.FullName()
	if !ok {
		return "", "", fmt.Errorf("%w for %s, got %q", ErrFullNameRequired, kind, arg)
	}

	return owner, name, nil
}

// CreateClientWithAPI creates an API client using the given endpoint flag,
// falling back to the configured endpoint.
func CreateClientWithAPI(apiFlag string) (opine.Client, error) {
	endpoint := apiFlag
	if endpoint == "" {
		endpoint = viper.GetString("api")
	}

	if endpoint == "" {
		return nil, ErrAPIEndpointRequired
	}

	config := &opine.Config{
		Endpoint:        endpoint,
		Token:           viper.GetString("token"),
		ResolutionCache: resolutionCacheConfig(),
	}

	if viper.GetBool("verbose") {
		config.Debug = true
		config.Logger = NewStderrLogger()
	}

	return opineclient.New(config)
}

// resolutionCacheConfig builds the cache configuration from settings.
// Unset means the in-memory default.
func resolutionCacheConfig() *opine.CacheConfig {
	switch opine.CacheType(viper.GetString("cache_type")) {
	case opine.CacheTypeNone:
		return nil
	case opine.CacheTypeNATS:
		return &opine.CacheConfig{
			Type: opine.CacheTypeNATS,
			NATS: &opine.NATSKVConfig{
				URL:    viper.GetString("nats_url"),
				Bucket: viper.GetString("nats_bucket"),
			},
		}
	default:
		return opine.DefaultCacheConfig()
	}
}

// StandardJSONRenderer encodes data as indented JSON to stdout.
func StandardJSONRenderer[T any](data T) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")

	err := encoder.Encode(data)
	if err != nil {
		return fmt.Errorf("encoding data to JSON: %w", err)
	}

	return nil
}

// StandardYAMLRenderer encodes data as YAML to stdout.
func StandardYAMLRenderer[T any](data T) error {
	encoder := yaml.NewEncoder(os.Stdout)
	encoder.SetIndent(defaultYAMLIndent)

	err := encoder.Encode(data)
	if err != nil {
		return fmt.Errorf("encoding data to YAML: %w", err)
	}

	return nil
}

// StderrLogger writes structured log lines to stderr. Used in verbose mode.
type StderrLogger struct{}

// NewStderrLogger creates a stderr logger.
func NewStderrLogger() *StderrLogger {
	return &StderrLogger{}
}

func (l *StderrLogger) Debug(msg string, fields map[string]interface{}) {
	l.log("DEBUG", msg, fields)
}

func (l *StderrLogger) Info(msg string, fields map[string]interface{}) {
	l.log("INFO", msg, fields)
}

func (l *StderrLogger) Warn(msg string, fields map[string]interface{}) {
	l.log("WARN", msg, fields)
}

func (l *StderrLogger) Error(msg string, fields map[string]interface{}) {
	l.log("ERROR", msg, fields)
}

func (l *StderrLogger) log(level, msg string, fields map[string]interface{}) {
	_, _ = fmt.Fprintf(os.Stderr, "%s %s", level, msg)

	for key, value := range fields {
		_, _ = fmt.Fprintf(os.Stderr, " %s=%v", key, value)
	}

	_, _ = fmt.Fprintln(os.Stderr)
}
