package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// DumpConfig holds the full TOML-driven dump configuration.
type DumpConfig struct {
	Source            SourceConfig `toml:"source"`
	SameDB            bool         `toml:"same_db"`
	Indexes           bool         `toml:"indexes"`
	IgnoreIndexErrors bool         `toml:"ignore_index_errors"`
	TinyIntAsBool     bool         `toml:"tinyint1_as_boolean"`
	Format            string       `toml:"format"` // migration|yaml
	Output            string       `toml:"output"` // file path, empty = stdout
}

// SourceConfig identifies the source database engine and connection string.
type SourceConfig struct {
	Type string `toml:"type"` // mysql, postgres or sqlite; inferred from a URL-style dsn when empty
	DSN  string `toml:"dsn"`
}

// DumpOptions are the translation-mode flags threaded through the
// translators, builder and renderer.
type DumpOptions struct {
	SameDB            bool // preserve vendor types/literals verbatim
	Indexes           bool // emit indexes in the full dump
	IgnoreIndexErrors bool // force :ignore_errors on index operations
	TinyIntAsBool     bool // translate tinyint as Boolean instead of Integer
}

// loadConfig reads a TOML config file and returns a DumpConfig with
// defaults applied.
func loadConfig(path string) (*DumpConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := DumpConfig{
		Indexes: true,
		Format:  "migration",
	}
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if unknown := md.Undecoded(); len(unknown) > 0 {
		keys := make([]string, len(unknown))
		for i, k := range unknown {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *DumpConfig) validate() error {
	if c.Source.DSN == "" {
		return fmt.Errorf("source.dsn is required")
	}
	if c.Source.Type == "" {
		detected, err := detectSourceType(c.Source.DSN)
		if err != nil {
			return fmt.Errorf("source.type is required (could not infer engine from dsn: %v)", err)
		}
		c.Source.Type = detected
	}
	if _, err := newSourceDB(c.Source.Type); err != nil {
		return err
	}

	switch c.Format {
	case "migration", "yaml":
	default:
		return fmt.Errorf("format must be one of: migration, yaml")
	}

	if c.SameDB && c.IgnoreIndexErrors {
		return fmt.Errorf("ignore_index_errors has no effect with same_db (index operations run against the identical engine)")
	}
	return nil
}

// DumpOptions derives the translation-mode flags from the config.
func (c *DumpConfig) DumpOptions() DumpOptions {
	return DumpOptions{
		SameDB:            c.SameDB,
		Indexes:           c.Indexes,
		IgnoreIndexErrors: c.IgnoreIndexErrors,
		TinyIntAsBool:     c.TinyIntAsBool,
	}
}
