package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/olekukonko/tablewriter"
	"github.com/opine-io/opine-client/internal/constants"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config represents the persisted CLI configuration.
type Config struct {
	Endpoint   string `yaml:"api,omitempty"`
	Token      string `yaml:"token,omitempty"`
	Output     string `yaml:"output,omitempty"`
	CacheType  string `yaml:"cache_type,omitempty"`
	NATSURL    string `yaml:"nats_url,omitempty"`
	NATSBucket string `yaml:"nats_bucket,omitempty"`
}

// configKeys are the settable configuration keys.
var configKeys = []string{"api", "token", "output", "cache_type", "nats_url", "nats_bucket"}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Get, set, and list persisted configuration values",
	}

	cmd.AddCommand(newConfigListCommand())
	cmd.AddCommand(newConfigGetCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigUnsetCommand())

	return cmd
}

func newConfigListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List configuration values",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			values := configAsMap(config)

			output := viper.GetString("output")
			switch output {
			case OutputFormatJSON:
				return StandardJSONRenderer(values)
			case OutputFormatYAML:
				return StandardYAMLRenderer(values)
			default:
				return renderConfigTable(values)
			}
		},
	}
}

func renderConfigTable(values map[string]string) error {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Key", "Value")

	for _, key := range keys {
		value := values[key]
		if key == "token" && value != "" {
			value = "(set)"
		}

		_ = table.Append(key, value)
	}

	_ = table.Render()

	return nil
}

func newConfigGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get KEY",
		Short: "Get a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			value, ok := configAsMap(config)[args[0]]
			if !ok {
				return fmt.Errorf("%w: %s", ErrConfigKeyUnknown, args[0])
			}

			_, _ = fmt.Fprintln(os.Stdout, value)

			return nil
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			err := setConfigValue(config, args[0], args[1])
			if err != nil {
				return err
			}

			err = saveConfigStruct(config)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(os.Stdout, "Set %s\n", args[0])

			return nil
		},
	}
}

func newConfigUnsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unset KEY",
		Short: "Unset a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			err := setConfigValue(config, args[0], "")
			if err != nil {
				return err
			}

			err = saveConfigStruct(config)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(os.Stdout, "Unset %s\n", args[0])

			return nil
		},
	}
}

func configAsMap(config *Config) map[string]string {
	return map[string]string{
		"api":         config.Endpoint,
		"token":       config.Token,
		"output":      config.Output,
		"cache_type":  config.CacheType,
		"nats_url":    config.NATSURL,
		"nats_bucket": config.NATSBucket,
	}
}

func setConfigValue(config *Config, key, value string) error {
	switch key {
	case "api":
		config.Endpoint = value
	case "token":
		config.Token = value
	case "output":
		config.Output = value
	case "cache_type":
		config.CacheType = value
	case "nats_url":
		config.NATSURL = value
	case "nats_bucket":
		config.NATSBucket = value
	default:
		return fmt.Errorf("%w: %s (valid keys: %v)", ErrConfigKeyUnknown, key, configKeys)
	}

	return nil
}

// configFilePath returns the path of the active config file.
func configFilePath() string {
	if used := viper.ConfigFileUsed(); used != "" {
		return used
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "config.yml"
	}

	return filepath.Join(home, ".opine", "config.yml")
}

// loadConfig reads the persisted configuration. A missing or unreadable
// file yields an empty config.
func loadConfig() *Config {
	config := &Config{}

	data, err := os.ReadFile(configFilePath())
	if err != nil {
		return config
	}

	_ = yaml.Unmarshal(data, config)

	return config
}

// saveConfigStruct writes the configuration back to disk.
func saveConfigStruct(config *Config) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	path := configFilePath()

	err = os.MkdirAll(filepath.Dir(path), constants.ConfigDirPerm)
	if err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	err = os.WriteFile(path, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
