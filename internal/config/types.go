// Package config loads user type definitions and assembles the type
// registry from defaults, the config file and type definition files.
package config

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ppiankov/csvtypes/internal/model"
	"github.com/ppiankov/csvtypes/internal/registry"
)

// FileMode says how a type definitions file combines with the defaults
type FileMode int

const (
	// NoFile means no type definitions file was given
	NoFile FileMode = iota
	// Append registers the file's types after the defaults
	Append
	// ReplaceDefault uses only the file's types
	ReplaceDefault
)

// ErrConflictingFiles is returned when both file modes are requested at once
var ErrConflictingFiles = errors.New("you can only use one of --config-file --config-file-replace-default at a time")

// TypeFile is a type definitions file chosen on the command line
type TypeFile struct {
	Path string
	Mode FileMode
}

// NewTypeFile picks the file mode from the two mutually exclusive flags
func NewTypeFile(appendPath, replacePath string) (TypeFile, error) {
	switch {
	case appendPath != "" && replacePath != "":
		return TypeFile{}, ErrConflictingFiles
	case appendPath != "":
		return TypeFile{Path: appendPath, Mode: Append}, nil
	case replacePath != "":
		return TypeFile{Path: replacePath, Mode: ReplaceDefault}, nil
	default:
		return TypeFile{Mode: NoFile}, nil
	}
}

// LoadTypeFile reads type definitions from path. Files ending in .yaml or
// .yml hold a YAML sequence of {name, pattern}; any other file uses the
// line format "name pattern".
func LoadTypeFile(path string) ([]model.TypeDef, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("can not read %q: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseTypeYAML(data)
	default:
		return ParseTypeLines(bytes.NewReader(data))
	}
}

// ParseTypeLines parses one definition per line: the name, one space, then
// the pattern (which may itself contain spaces). Lines without a space,
// blank lines and lines starting with # are skipped.
func ParseTypeLines(r io.Reader) ([]model.TypeDef, error) {
	var defs []model.TypeDef

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")

		// Skip empty lines and comments
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}

		name, pattern, ok := strings.Cut(line, " ")
		if !ok || name == "" {
			continue
		}
		defs = append(defs, model.TypeDef{Name: name, Pattern: pattern})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan type definitions: %w", err)
	}
	return defs, nil
}

// ParseTypeYAML parses a YAML sequence of {name, pattern} mappings
func ParseTypeYAML(data []byte) ([]model.TypeDef, error) {
	var defs []model.TypeDef
	if err := yaml.Unmarshal(data, &defs); err != nil {
		return nil, fmt.Errorf("parse type definitions: %w", err)
	}
	for i, d := range defs {
		if d.Name == "" {
			return nil, fmt.Errorf("parse type definitions: entry %d has no name", i)
		}
	}
	return defs, nil
}

// BuildRegistry registers, in order: the built-in types (unless replaced),
// the config file's definitions and the type file's definitions. A later
// definition of an existing name replaces it and moves it to the end.
func BuildRegistry(cfg *model.Config, file TypeFile, logger *slog.Logger) (*registry.Registry, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var defs []model.TypeDef
	if file.Mode != ReplaceDefault {
		if !cfg.Types.ReplaceDefaults {
			defs = append(defs, model.DefaultTypes()...)
		}
		defs = append(defs, cfg.Types.Definitions...)
	}

	if file.Mode != NoFile {
		fromFile, err := LoadTypeFile(file.Path)
		if err != nil {
			return nil, err
		}
		logger.Debug("loaded type definitions", "path", file.Path, "count", len(fromFile))
		defs = append(defs, fromFile...)
	}

	reg, err := registry.FromDefs(defs)
	if err != nil {
		return nil, err
	}
	logger.Debug("type registry built", "types", reg.Names())
	return reg, nil
}
