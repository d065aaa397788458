package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/iwvelando/finance-workbook/internal/config"
	"github.com/iwvelando/finance-workbook/internal/household"
	"github.com/iwvelando/finance-workbook/internal/plan"
	"github.com/iwvelando/finance-workbook/internal/report"
	"github.com/iwvelando/finance-workbook/internal/server"
	"github.com/iwvelando/finance-workbook/internal/store"
	"github.com/iwvelando/finance-workbook/pkg/constants"
	"github.com/iwvelando/finance-workbook/pkg/output"
	"github.com/iwvelando/finance-workbook/pkg/validation"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// version is set at build time with -ldflags "-X main.version=...".
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
	case "json":
		zapConfig = zap.NewProductionConfig()
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}
	zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)

	if loggingConfig.OutputFile != "" {
		if dir := filepath.Dir(loggingConfig.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %w", dir, err)
			}
		}

		file, err := os.OpenFile(loggingConfig.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %w", loggingConfig.OutputFile, err)
		}
		_ = file.Close()

		zapConfig.OutputPaths = []string{loggingConfig.OutputFile}
		zapConfig.ErrorOutputPaths = []string{loggingConfig.OutputFile}
	}

	return zapConfig.Build()
}

// loadConfiguration reads the configuration file. A missing file at the
// default location falls back to the built-in defaults.
func loadConfiguration(path string, explicit bool) (*config.Configuration, error) {
	if !explicit {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			return config.Default(), nil
		}
	}
	return config.LoadConfiguration(path)
}

func flagWasSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

// fatal reports a failure that happens before the logger exists.
func fatal(msg string, err error) {
	fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": %q, \"error\": %q}\n", msg, err.Error())
	os.Exit(1)
}

func main() {
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	householdPath := flag.String("household", "", "path to the household document to evaluate, - for stdin")
	initPath := flag.String("init", "", "write a blank household document to this path and exit")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv, pdf")
	outputFile := flag.String("out", "", "output file override (required for pdf)")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	serve := flag.Bool("serve", false, "serve the HTTP API instead of evaluating a household")
	serverConfigLocation := flag.String("server-config", constants.DefaultServerConfigFile, "path to the HTTP server configuration file")
	showVersion := flag.Bool("version", false, "print the version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version)
		return
	}

	conf, err := loadConfiguration(*configLocation, flagWasSet("config"))
	if err != nil {
		fatal("failed to load configuration at "+*configLocation, err)
	}

	if *serve {
		runServer(conf, *serverConfigLocation, *logLevel)
		return
	}

	logger, err := initializeLogger(conf.Logging, *logLevel)
	if err != nil {
		fatal("failed to initialize logger", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	if *initPath != "" {
		if err := household.Save(*initPath, household.New()); err != nil {
			logger.Fatal("failed to write household document",
				zap.String("op", "main"),
				zap.String("path", *initPath),
				zap.Error(err),
			)
		}
		logger.Info("wrote blank household document",
			zap.String("op", "main"),
			zap.String("path", *initPath),
		)
		return
	}

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

	target := conf.Output.File
	if *outputFile != "" {
		target = *outputFile
	}
	if outputFormat == constants.OutputFormatPDF && target == "" {
		logger.Fatal("pdf output requires an output file",
			zap.String("op", "main"),
		)
	}

	if *householdPath == "" {
		logger.Fatal("no household document given, use -household",
			zap.String("op", "main"),
		)
	}
	h, err := loadHousehold(*householdPath, os.Stdin)
	if err != nil {
		logger.Fatal("failed to load household document",
			zap.String("op", "main"),
			zap.String("path", *householdPath),
			zap.Error(err),
		)
	}

	table, err := conf.LoadRateTable()
	if err != nil {
		logger.Fatal("failed to load rate table",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	wb := plan.EvaluateWith(logger, h, table, time.Now(), conf.PlanAssumptions())

	if err := writeWorkbook(wb, outputFormat, target); err != nil {
		logger.Fatal("failed to write workbook",
			zap.String("op", "main"),
			zap.String("format", outputFormat),
			zap.Error(err),
		)
	}
}

func loadHousehold(path string, stdin io.Reader) (*household.Household, error) {
	if path == "-" {
		return household.Read(stdin)
	}
	return household.Load(path)
}

func writeWorkbook(wb plan.Workbook, format, target string) (err error) {
	var w io.Writer = os.Stdout
	if target != "" {
		f, createErr := os.Create(target)
		if createErr != nil {
			return fmt.Errorf("failed to create %s: %w", target, createErr)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = cerr
			}
		}()
		w = f
	}

	switch format {
	case constants.OutputFormatPretty:
		output.PrettyFormat(w, wb)
	case constants.OutputFormatCSV:
		return output.CsvFormat(w, wb)
	case constants.OutputFormatPDF:
		return report.Render(w, wb)
	}
	return nil
}

func runServer(conf *config.Configuration, serverConfigLocation, logLevel string) {
	srvCfg, err := server.LoadConfig(serverConfigLocation)
	if err != nil {
		fatal("failed to load server configuration at "+serverConfigLocation, err)
	}

	loggingConfig := conf.Logging
	if srvCfg.Logging != (config.LoggingConfig{}) {
		loggingConfig = srvCfg.Logging
	}
	logger, err := initializeLogger(loggingConfig, logLevel)
	if err != nil {
		fatal("failed to initialize logger", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	table, err := conf.LoadRateTable()
	if err != nil {
		logger.Fatal("failed to load rate table",
			zap.String("op", "main.runServer"),
			zap.Error(err),
		)
	}

	storeDir := conf.Store.Dir
	if srvCfg.StoreDir != "" {
		storeDir = srvCfg.StoreDir
	}
	clients, err := store.New(logger, storeDir)
	if err != nil {
		logger.Fatal("failed to open client store",
			zap.String("op", "main.runServer"),
			zap.String("dir", storeDir),
			zap.Error(err),
		)
	}

	handler := server.NewHandler(logger, server.Options{
		Table:         table,
		Assumptions:   conf.PlanAssumptions(),
		Store:         clients,
		MaxUploadSize: srvCfg.UploadSizeBytes(),
		Version:       version,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Serve(ctx, logger, srvCfg, handler); err != nil {
		logger.Error("server stopped with error",
			zap.String("op", "main.runServer"),
			zap.Error(err),
		)
	}
}
