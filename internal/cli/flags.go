package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/csvtypes/internal/config"
	"github.com/ppiankov/csvtypes/internal/model"
	"github.com/ppiankov/csvtypes/internal/pipeline"
)

// tableFlags are the flags shared by match and assert that do not map to a
// config key
type tableFlags struct {
	typeFile        string
	typeFileReplace string
	groupByRow      bool
}

// tableFlagKeys maps table flags to their config keys
var tableFlagKeys = map[string]string{
	"header":           "input.header",
	"separator":        "input.separator",
	"encoding":         "input.encoding",
	"max-threads":      "concurrency.workers",
	"machine-readable": "output.machine_readable",
	"format":           "output.format",
}

func addTableFlags(cmd *cobra.Command, tf *tableFlags) {
	d := model.DefaultConfig()
	f := cmd.Flags()

	// Input flags
	f.Bool("header", d.Input.Header, "first row holds column names")
	f.String("separator", d.Input.Separator, `field separator: one character, "\t" or "tab"`)
	f.String("encoding", d.Input.Encoding, "input encoding: utf-8, latin1, windows-1252, utf-16le, utf-16be")

	// Type flags
	f.StringVarP(&tf.typeFile, "config-file", "c", "", "add types from a type definitions file")
	f.StringVarP(&tf.typeFileReplace, "config-file-replace-default", "C", "", "same as --config-file but replaces the built-in types")

	// Concurrency and output flags
	f.Int("max-threads", d.Concurrency.Workers, "number of worker threads")
	f.BoolP("machine-readable", "m", d.Output.MachineReadable, "machine readable output")
	f.String("format", d.Output.Format, "output format: text, json, yaml")
}

// setDefaults registers every config key with its built-in default so that
// env variables are picked up for all of them.
func setDefaults(v *viper.Viper) {
	d := model.DefaultConfig()
	v.SetDefault("input.separator", d.Input.Separator)
	v.SetDefault("input.header", d.Input.Header)
	v.SetDefault("input.encoding", d.Input.Encoding)
	v.SetDefault("concurrency.workers", d.Concurrency.Workers)
	v.SetDefault("output.machine_readable", d.Output.MachineReadable)
	v.SetDefault("output.format", d.Output.Format)
	v.SetDefault("output.grouping", d.Output.Grouping)
	v.SetDefault("types.replace_defaults", d.Types.ReplaceDefaults)
	v.SetDefault("types.definitions", d.Types.Definitions)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
}

// loadConfig merges flags, env, config file and defaults
func (a *app) loadConfig() (*model.Config, error) {
	cfg := &model.Config{}
	if err := a.v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

func (a *app) logger(cfg *model.Config) *slog.Logger {
	level := cfg.Log.Level
	if a.verbose {
		level = "debug"
	}
	return newLogger(level, cfg.Log.Format, a.stderr)
}

// tableEnv is everything a table command needs after flag parsing
type tableEnv struct {
	logger   *slog.Logger
	pipeline *pipeline.Pipeline
	renderer *pipeline.Renderer
}

// prepare binds the command's flags, loads the configuration and builds the
// type registry, pipeline and renderer.
func (a *app) prepare(cmd *cobra.Command, tf *tableFlags) (*tableEnv, error) {
	for name, key := range tableFlagKeys {
		if err := a.v.BindPFlag(key, cmd.Flags().Lookup(name)); err != nil {
			return nil, fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	if tf.groupByRow {
		a.v.Set("output.grouping", model.GroupByRow.String())
	}

	cfg, err := a.loadConfig()
	if err != nil {
		return nil, err
	}
	logger := a.logger(cfg)
	if used := a.v.ConfigFileUsed(); used != "" {
		logger.Debug("using config file", "path", used)
	}

	typeFile, err := config.NewTypeFile(tf.typeFile, tf.typeFileReplace)
	if err != nil {
		return nil, err
	}

	reg, err := config.BuildRegistry(cfg, typeFile, logger)
	if err != nil {
		return nil, err
	}

	p, err := pipeline.NewPipeline(cfg, reg, logger)
	if err != nil {
		return nil, &ExitError{Code: ExitUsage, Message: err.Error()}
	}

	r, err := pipeline.NewRenderer(a.stdout, a.stderr, cfg.Output)
	if err != nil {
		return nil, &ExitError{Code: ExitUsage, Message: err.Error()}
	}

	return &tableEnv{logger: logger, pipeline: p, renderer: r}, nil
}

func inputPath(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}
