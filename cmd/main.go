package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/declgen/declgen/internal/cmd"
	"github.com/declgen/declgen/internal/config"
	"github.com/declgen/declgen/internal/watch"
	"github.com/rs/zerolog"
)

const version = "0.1.0"

const defaultConfigFile = "declgen.yaml"

func main() {
	os.Exit(run())
}

func run() int {
	var (
		schemasDir  string
		browserDir  string
		outDir      string
		ignore      string
		global      string
		configPath  string
		watchMode   bool
		showVersion bool
	)

	flag.StringVar(&schemasDir, "schemas", "", "Path to the primary schema directory")
	flag.StringVar(&browserDir, "browser-schemas", "", "Path to the browser schema directory")
	flag.StringVar(&outDir, "out", "", "Directory the declaration file is written to")
	flag.StringVar(&ignore, "ignore", "", "Comma-separated namespace names to exclude from output")
	flag.StringVar(&global, "global", "", `Global namespace symbol (default "messenger")`)
	flag.StringVar(&configPath, "config", "", "Path to a declgen.yaml config file")
	flag.BoolVar(&watchMode, "watch", false, "Regenerate whenever a schema file changes")
	flag.BoolVar(&showVersion, "version", false, "Print version and exit")
	flag.Parse()

	if showVersion {
		fmt.Println("declgen", version)
		return 0
	}

	logger := setupLogger()

	settings, err := resolveSettings(configPath, schemasDir, browserDir, outDir, ignore, global, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		flag.Usage()
		return 1
	}

	if err := cmd.Run(*settings); err != nil {
		logger.Error().Err(err).Msg("generation failed")
		return 1
	}

	if watchMode {
		regenerate := func() {
			if err := cmd.Run(*settings); err != nil {
				logger.Error().Err(err).Msg("regeneration failed")
			}
		}

		dirs := []string{settings.SchemasDir, settings.BrowserSchemasDir}
		if err := watch.Watch(dirs, logger, regenerate); err != nil {
			logger.Error().Err(err).Msg("watch mode failed")
			return 1
		}
	}

	return 0
}

// resolveSettings layers the command line flags over an optional config
// file. An explicit -config path must exist; the default declgen.yaml
// is only used when present.
func resolveSettings(
	configPath string,
	schemasDir string,
	browserDir string,
	outDir string,
	ignore string,
	global string,
	logger zerolog.Logger,
) (*cmd.Settings, error) {
	cfg := &config.Config{}

	if configPath == "" {
		if _, err := os.Stat(defaultConfigFile); err == nil {
			configPath = defaultConfigFile
		}
	}

	if configPath != "" {
		fileCfg, err := config.Read(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileCfg
	}

	s := &cmd.Settings{
		SchemasDir:        firstNonEmpty(schemasDir, cfg.Schemas.Path),
		BrowserSchemasDir: firstNonEmpty(browserDir, cfg.Schemas.BrowserPath),
		OutDir:            firstNonEmpty(outDir, cfg.Output.Path),
		IgnoredNamespaces: cfg.Ignore,
		GlobalName:        firstNonEmpty(global, cfg.Global),
		Logger:            logger,
	}

	if ignore != "" {
		s.IgnoredNamespaces = splitList(ignore)
	}

	if s.OutDir == "" {
		return nil, fmt.Errorf(`output directory is required (use -out)`)
	}

	if s.SchemasDir == "" && s.BrowserSchemasDir == "" {
		return nil, fmt.Errorf(`at least one schema directory is required (use -schemas or -browser-schemas)`)
	}

	return s, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func splitList(s string) []string {
	var out []string

	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}

	return out
}

func setupLogger() zerolog.Logger {
	levelStr := os.Getenv("DECLGEN_LOG_LEVEL")
	if levelStr == "" {
		levelStr = "info"
	}

	level, err := zerolog.ParseLevel(levelStr)
	if err != nil {
		level = zerolog.InfoLevel
	}

	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	return zerolog.New(output).With().Timestamp().Logger().Level(level)
}
