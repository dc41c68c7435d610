package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Version is set at build time
var Version = "dev"

// app carries the state shared by all subcommands of one invocation
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	v      *viper.Viper

	cfgFile string
	verbose bool
}

// Execute runs csvtypes with args. Errors are returned as *ExitError.
func Execute(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	a := &app{
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
		v:      viper.New(),
	}

	root := a.newRootCmd()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		return toExitError(err)
	}
	return nil
}

// newRootCmd builds the base command and its subcommands
func (a *app) newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "csvtypes",
		Short: "csvtypes - infer and assert column types of delimited tables",
		Long: `csvtypes reads a delimited text table (CSV by default) and works out, for
every column, which named types match all of its values.

A type is a name plus a regular expression that must match a whole value.
The built-in types are string, float and int; more can be added from a
type definitions file or the config file.

  match   list the types matching each column
  assert  check each column against one expected type and report the
          rows that do not conform`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initConfig()
		},
	}

	// Global flags
	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default: $HOME/.csvtypes/config.yaml)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "verbose output (debug logging)")
	root.PersistentFlags().String("log-level", "info", "log level: debug, info, warn, error")
	root.PersistentFlags().String("log-format", "text", "log format: text, json")

	// Bind flags to viper
	_ = a.v.BindPFlag("log.level", root.PersistentFlags().Lookup("log-level"))
	_ = a.v.BindPFlag("log.format", root.PersistentFlags().Lookup("log-format"))

	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &ExitError{Code: ExitUsage, Message: err.Error()}
	})

	root.AddCommand(
		a.newMatchCmd(),
		a.newAssertCmd(),
		a.newConfigCmd(),
		a.newVersionCmd(),
	)
	return root
}

// newVersionCmd represents the version command
func (a *app) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(a.stdout, "csvtypes %s\n", Version)
			return err
		},
	}
}

// initConfig reads in config file and ENV variables
func (a *app) initConfig() error {
	setDefaults(a.v)

	explicit := a.cfgFile != ""
	if explicit {
		// Use config file from the flag
		a.v.SetConfigFile(a.cfgFile)
	} else {
		// Without a home directory only defaults, env and flags apply
		if home, err := os.UserHomeDir(); err == nil {
			a.v.AddConfigPath(filepath.Join(home, ".csvtypes"))
		}
		a.v.SetConfigType("yaml")
		a.v.SetConfigName("config")
	}

	// Read in environment variables that match CSVTYPES_*
	a.v.SetEnvPrefix("CSVTYPES")
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	a.v.AutomaticEnv()

	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}
	return nil
}

// usageArgs turns argument count errors into usage errors
func usageArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return &ExitError{Code: ExitUsage, Message: err.Error()}
		}
		return nil
	}
}
