package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/graphwell-io/hubsync/internal/constants"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config is the persisted CLI configuration, stored at
// $HOME/.hubsync/config.yml.
type Config struct {
	API    string `json:"api,omitempty"    yaml:"api,omitempty"`
	Token  string `json:"token,omitempty"  yaml:"token,omitempty"`
	AppID  string `json:"app_id,omitempty" yaml:"app_id,omitempty"`
	Output string `json:"output,omitempty" yaml:"output,omitempty"`

	State StateConfig `json:"state,omitempty" yaml:"state,omitempty"`
	Neo4j Neo4jConfig `json:"neo4j,omitempty" yaml:"neo4j,omitempty"`
}

// StateConfig selects the sync-state backend used by the sync command.
type StateConfig struct {
	Backend    string `json:"backend,omitempty"     yaml:"backend,omitempty"`
	Directory  string `json:"directory,omitempty"   yaml:"directory,omitempty"`
	NATSURL    string `json:"nats_url,omitempty"    yaml:"nats_url,omitempty"`
	NATSBucket string `json:"nats_bucket,omitempty" yaml:"nats_bucket,omitempty"`
}

// Neo4jConfig points the sync command at a Neo4j instance.
type Neo4jConfig struct {
	URI      string `json:"uri,omitempty"      yaml:"uri,omitempty"`
	Username string `json:"username,omitempty" yaml:"username,omitempty"`
	Password string `json:"password,omitempty" yaml:"password,omitempty"`
	Database string `json:"database,omitempty" yaml:"database,omitempty"`
}

// loadConfig assembles the configuration from viper, which merges the
// config file, environment, and flags.
func loadConfig() *Config {
	return &Config{
		API:    viper.GetString("api"),
		Token:  viper.GetString("token"),
		AppID:  viper.GetString("app_id"),
		Output: viper.GetString("output"),
		State: StateConfig{
			Backend:    viper.GetString("state.backend"),
			Directory:  viper.GetString("state.directory"),
			NATSURL:    viper.GetString("state.nats_url"),
			NATSBucket: viper.GetString("state.nats_bucket"),
		},
		Neo4j: Neo4jConfig{
			URI:      viper.GetString("neo4j.uri"),
			Username: viper.GetString("neo4j.username"),
			Password: viper.GetString("neo4j.password"),
			Database: viper.GetString("neo4j.database"),
		},
	}
}

// saveConfigStruct writes the configuration to the active config file,
// creating $HOME/.hubsync when needed.
func saveConfigStruct(config *Config) error {
	configFile := viper.ConfigFileUsed()
	if configFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get user home directory: %w", err)
		}

		configDir := filepath.Join(home, ".hubsync")

		err = os.MkdirAll(configDir, constants.ConfigDirPerm)
		if err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}

		configFile = filepath.Join(configDir, "config.yml")
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	err = os.WriteFile(configFile, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// configValue reads one configuration value by key.
func configValue(config *Config, key string) (string, error) {
	switch key {
	case "api":
		return config.API, nil
	case "token":
		return config.Token, nil
	case "app_id":
		return config.AppID, nil
	case "output":
		return config.Output, nil
	case "state.backend":
		return config.State.Backend, nil
	case "state.directory":
		return config.State.Directory, nil
	case "state.nats_url":
		return config.State.NATSURL, nil
	case "state.nats_bucket":
		return config.State.NATSBucket, nil
	case "neo4j.uri":
		return config.Neo4j.URI, nil
	case "neo4j.username":
		return config.Neo4j.Username, nil
	case "neo4j.password":
		return config.Neo4j.Password, nil
	case "neo4j.database":
		return config.Neo4j.Database, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownConfigKey, key)
	}
}

// setConfigValue writes one configuration value by key.
func setConfigValue(config *Config, key, value string) error {
	switch key {
	case "api":
		config.API = value
	case "token":
		config.Token = value
	case "app_id":
		config.AppID = value
	case "output":
		config.Output = value
	case "state.backend":
		config.State.Backend = value
	case "state.directory":
		config.State.Directory = value
	case "state.nats_url":
		config.State.NATSURL = value
	case "state.nats_bucket":
		config.State.NATSBucket = value
	case "neo4j.uri":
		config.Neo4j.URI = value
	case "neo4j.username":
		config.Neo4j.Username = value
	case "neo4j.password":
		config.Neo4j.Password = value
	case "neo4j.database":
		config.Neo4j.Database = value
	default:
		return fmt.Errorf("%w: %s", ErrUnknownConfigKey, key)
	}

	return nil
}

// isSecretKey reports whether a key's value is masked in table output.
func isSecretKey(key string) bool {
	return key == "token" || key == "neo4j.password"
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Inspect and edit the persisted hubsync configuration",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigGetCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigUnsetCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the full resolved configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			return renderOutput(config, func() error {
				return displayConfigTable(config)
			})
		},
	}
}

func displayConfigTable(config *Config) error {
	rows := []struct {
		key   string
		value string
	}{
		{"api", config.API},
		{"token", config.Token},
		{"app_id", config.AppID},
		{"output", config.Output},
		{"state.backend", config.State.Backend},
		{"state.directory", config.State.Directory},
		{"state.nats_url", config.State.NATSURL},
		{"state.nats_bucket", config.State.NATSBucket},
		{"neo4j.uri", config.Neo4j.URI},
		{"neo4j.username", config.Neo4j.Username},
		{"neo4j.password", config.Neo4j.Password},
		{"neo4j.database", config.Neo4j.Database},
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Key", "Value")

	for _, row := range rows {
		value := row.value
		if value != "" && isSecretKey(row.key) {
			value = Masked
		}

		if value == "" {
			value = NotAvailable
		}

		_ = table.Append(row.key, value)
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func newConfigGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get KEY",
		Short: "Get a configuration value",
		Long:  "Print a single configuration value; secrets print masked",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]

			value, err := configValue(loadConfig(), key)
			if err != nil {
				return err
			}

			if value != "" && isSecretKey(key) {
				value = Masked
			}

			fmt.Println(value)

			return nil
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long:  "Set a configuration value and persist it to the config file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]

			config := loadConfig()

			err := setConfigValue(config, key, value)
			if err != nil {
				return err
			}

			err = saveConfigStruct(config)
			if err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			shown := value
			if isSecretKey(key) {
				shown = Masked
			}

			fmt.Printf("Set %s to %s\n", key, shown)

			return nil
		},
	}
}

func newConfigUnsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unset KEY",
		Short: "Unset a configuration value",
		Long:  "Remove a configuration value and persist the change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]

			config := loadConfig()

			err := setConfigValue(config, key, "")
			if err != nil {
				return err
			}

			err = saveConfigStruct(config)
			if err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			fmt.Printf("Unset %s\n", key)

			return nil
		},
	}
}
