package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	configPath  string
	indexesOnly bool
)

var rootCmd = &cobra.Command{
	Use:   "migradump [config.toml]",
	Short: "dump a database schema as a portable, replayable migration",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runDump,
}

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", "", "path to dump TOML config file")
	rootCmd.Flags().BoolVar(&indexesOnly, "indexes-only", false, "emit only index add/drop operations")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runDump(cmd *cobra.Command, args []string) error {
	cfgPath := configPath
	if len(args) > 0 {
		cfgPath = args[0]
	}
	if cfgPath == "" {
		return fmt.Errorf("config file required: migradump <config.toml> or migradump --config <config.toml>")
	}

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return err
	}

	start := time.Now()
	opts := cfg.DumpOptions()

	src, err := newSourceDB(cfg.Source.Type)
	if err != nil {
		return err
	}

	log.Printf("migradump — %s schema dump", src.Name())
	log.Printf("config: same_db=%t indexes=%t format=%s", cfg.SameDB, cfg.Indexes, cfg.Format)

	dbName, err := src.ExtractDBName(cfg.Source.DSN)
	if err != nil {
		return err
	}

	log.Printf("connecting to %s...", src.Name())
	db, err := src.OpenDB(cfg.Source.DSN)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("ping %s: %w", src.Name(), err)
	}

	log.Printf("introspecting schema '%s'...", dbName)
	schema, err := src.IntrospectSchema(db, dbName)
	if err != nil {
		return fmt.Errorf("introspect schema: %w", err)
	}
	log.Printf("found %d tables", len(schema.Tables))
	for _, t := range schema.Tables {
		log.Printf("  %s (%d cols, %d indexes, %d constraints)",
			t.Name, len(t.Columns), len(t.Indexes), len(t.Constraints))
	}

	for _, w := range collectTypeFallbackWarnings(schema, opts) {
		log.Printf("  WARN: %s", w)
	}
	for _, w := range collectIndexCompatibilityWarnings(schema) {
		log.Printf("  WARN: %s", w)
	}
	if objs, err := src.IntrospectSourceObjects(db, dbName); err == nil {
		for _, w := range sourceObjectWarnings(objs) {
			log.Printf("  WARN: %s", w)
		}
	}

	dialect := src.Dialect()

	var out string
	switch {
	case indexesOnly:
		out, err = dumpIndexMigration(schema, dialect, opts, defaultIndexName)
	case cfg.Format == "yaml":
		out, err = dumpYAML(schema, dialect, opts, defaultIndexName)
	default:
		out, err = dumpMigration(schema, dialect, opts, defaultIndexName)
	}
	if err != nil {
		return err
	}

	if cfg.Output == "" {
		fmt.Print(out)
	} else {
		if err := os.WriteFile(cfg.Output, []byte(out), 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		log.Printf("wrote %s", cfg.Output)
	}

	log.Printf("dump completed in %s", time.Since(start).Round(time.Millisecond))
	return nil
}
