package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// newConfigCmd represents the config command
func (a *app) newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage csvtypes configuration",
		Long: `Manage csvtypes configuration files and settings.

Configuration hierarchy (highest to lowest priority):
1. CLI flags
2. Environment variables (CSVTYPES_*, e.g. CSVTYPES_INPUT_SEPARATOR)
3. Config file (~/.csvtypes/config.yaml)
4. Defaults`,
	}

	configCmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show current configuration",
			Long:  `Display the effective configuration after merging defaults, config file and env vars.`,
			Args:  usageArgs(cobra.NoArgs),
			RunE:  a.runConfigShow,
		},
		&cobra.Command{
			Use:   "init",
			Short: "Initialize default configuration file",
			Long:  `Create a default configuration file at ~/.csvtypes/config.yaml with all available options.`,
			Args:  usageArgs(cobra.NoArgs),
			RunE:  a.runConfigInit,
		},
	)
	return configCmd
}

func (a *app) runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}

	if configFile := a.v.ConfigFileUsed(); configFile != "" {
		fmt.Fprintf(a.stderr, "Configuration file: %s\n\n", configFile)
	} else {
		fmt.Fprintf(a.stderr, "No configuration file found (using defaults)\n\n")
	}

	yamlData, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	_, err = a.stdout.Write(yamlData)
	return err
}

func (a *app) runConfigInit(cmd *cobra.Command, args []string) (err error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("error finding home directory: %w", err)
	}

	configDir := filepath.Join(home, ".csvtypes")
	configPath := filepath.Join(configDir, "config.yaml")

	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("config file already exists: %s\nUse 'csvtypes config show' to view it, or delete it first to recreate", configPath)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	f, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("error creating config file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close config file: %w", closeErr)
		}
	}()

	// Helper for writing with error checking
	var werr error
	printf := func(format string, a ...any) {
		if werr != nil {
			return
		}
		_, werr = fmt.Fprintf(f, format, a...)
	}

	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	yamlData, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	printf("# csvtypes configuration file\n")
	printf("#\n")
	printf("# Configuration hierarchy (highest to lowest priority):\n")
	printf("#   1. CLI flags\n")
	printf("#   2. Environment variables (CSVTYPES_*)\n")
	printf("#   3. This config file\n")
	printf("#   4. Built-in defaults\n\n")
	printf("%s", yamlData)
	printf("\n# Extra types are registered after the built-in ones:\n")
	printf("#   types:\n")
	printf("#     definitions:\n")
	printf("#       - name: bool\n")
	printf("#         pattern: (true|false)\n")
	if werr != nil {
		return fmt.Errorf("error writing config: %w", werr)
	}

	fmt.Fprintf(a.stdout, "Created default configuration: %s\n", configPath)
	fmt.Fprintf(a.stdout, "\nTo view the configuration:\n  csvtypes config show\n")
	return nil
}
