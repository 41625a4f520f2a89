package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/massimocristi1970/lending-forecast-tool/internal/config"
	"github.com/massimocristi1970/lending-forecast-tool/internal/export"
	"github.com/massimocristi1970/lending-forecast-tool/internal/forecast"
	"github.com/massimocristi1970/lending-forecast-tool/internal/scenario"
	"github.com/massimocristi1970/lending-forecast-tool/internal/server"
	"github.com/massimocristi1970/lending-forecast-tool/pkg/constants"
	"github.com/massimocristi1970/lending-forecast-tool/pkg/output"
	"github.com/massimocristi1970/lending-forecast-tool/pkg/validation"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var version = "dev"

// initializeLogger creates a zap logger based on configuration and CLI override
func initializeLogger(loggingConfig config.LoggingConfig, logLevelOverride string) (*zap.Logger, error) {
	// Determine log level (CLI override takes precedence)
	level := loggingConfig.Level
	if logLevelOverride != "" {
		level = logLevelOverride
	}
	if level == "" {
		level = "info"
	}

	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	format := loggingConfig.Format
	if format == "" {
		format = "json"
	}

	var zapConfig zap.Config
	switch format {
	case "console":
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	case "json":
		zapConfig = zap.NewProductionConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}

	// Configure output file if specified
	if loggingConfig.OutputFile != "" {
		if dir := filepath.Dir(loggingConfig.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %v", dir, err)
			}
		}

		if file, err := os.OpenFile(loggingConfig.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %v", loggingConfig.OutputFile, err)
		} else {
			_ = file.Close()
		}

		zapConfig.OutputPaths = []string{loggingConfig.OutputFile}
		zapConfig.ErrorOutputPaths = []string{loggingConfig.OutputFile}
	}

	return zapConfig.Build()
}

func main() {
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	exportPath := flag.String("export", "", "xlsx export path override")
	serve := flag.Bool("serve", false, "run the HTTP server instead of a one-shot forecast")
	addr := flag.String("addr", "", "HTTP listen address override")
	serverConfigLocation := flag.String("server-config", constants.DefaultServerConfigFile, "path to server configuration file")
	flag.Parse()

	if *serve {
		runServer(*serverConfigLocation, *addr, *logLevel)
		return
	}

	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		return
	}

	logger, err := initializeLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	// Determine output format (CLI override takes precedence over config)
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}

	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	warnings, err := conf.ValidateConfiguration()
	if err != nil {
		logger.Fatal("invalid configuration",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	for _, warning := range warnings {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	engine := forecast.NewEngine(logger)
	store := scenario.NewStore(logger)

	var results []*forecast.Result
	for _, sc := range conf.Scenarios {
		if !sc.Active {
			logger.Debug(fmt.Sprintf("skipping scenario %s because it is inactive", sc.Name),
				zap.String("op", "main"),
			)
			continue
		}

		result, err := engine.BuildForecast(sc.Parameters())
		if err != nil {
			logger.Fatal("failed to compute forecast",
				zap.String("op", "main"),
				zap.String("scenario", sc.Name),
				zap.Error(err),
			)
		}
		results = append(results, result)

		if err := store.Save(result.Name, *result); err != nil {
			logger.Fatal("failed to save scenario",
				zap.String("op", "main"),
				zap.String("scenario", result.Name),
				zap.Error(err),
			)
		}
	}

	if len(results) == 0 {
		logger.Fatal("no active scenarios in configuration",
			zap.String("op", "main"),
		)
	}

	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyFormat(results)
	case constants.OutputFormatCSV:
		output.CsvFormat(results)
	}

	// With two or more active scenarios, render the side-by-side comparison.
	if names := store.Names(); len(names) >= 2 {
		rows, err := store.Compare(names)
		if err != nil {
			logger.Fatal("failed to compare scenarios",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		fmt.Printf("\n")
		output.PrettyComparison(rows)
	}

	path := conf.Export.Path
	if *exportPath != "" {
		path = *exportPath
	}
	if path != "" {
		for _, result := range results {
			target := exportTarget(path, result.Name, len(results) > 1)
			if err := export.WriteFile(target, result); err != nil {
				logger.Fatal("failed to export workbook",
					zap.String("op", "main"),
					zap.String("scenario", result.Name),
					zap.Error(err),
				)
			}
			logger.Info("workbook exported",
				zap.String("op", "main"),
				zap.String("scenario", result.Name),
				zap.String("path", target),
			)
		}
	}
}

// exportTarget derives a per-scenario file name when several scenarios share
// one configured export path.
func exportTarget(path, scenarioName string, multiple bool) string {
	if !multiple {
		return path
	}
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	return base + "_" + strings.ReplaceAll(scenarioName, " ", "_") + ext
}

func runServer(configLocation, addrOverride, logLevelOverride string) {
	serverConf, err := server.LoadConfig(configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load server configuration at %s\", \"error\": \"%v\"}\n", configLocation, err)
		return
	}

	logger, err := initializeLogger(serverConf.Logging, logLevelOverride)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	address := serverConf.Address
	if addrOverride != "" {
		address = addrOverride
	}

	store := scenario.NewStore(logger)
	router := server.NewRouter(logger, store, serverConf.BodySizeBytes(), version)

	logger.Info("starting HTTP server",
		zap.String("op", "main"),
		zap.String("address", address),
	)
	if err := http.ListenAndServe(address, router); err != nil {
		logger.Fatal("HTTP server failed",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
}
