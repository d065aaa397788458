package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/iwvelando/finance-workbook/internal/config"
	"github.com/iwvelando/finance-workbook/internal/household"
	"github.com/iwvelando/finance-workbook/internal/plan"
	"github.com/iwvelando/finance-workbook/internal/ratetable"
	"github.com/iwvelando/finance-workbook/pkg/constants"
	"github.com/iwvelando/finance-workbook/pkg/testutil"
)

func TestInitializeLogger(t *testing.T) {
	tests := []struct {
		name      string
		cfg       config.LoggingConfig
		override  string
		wantError bool
	}{
		{name: "Defaults", cfg: config.LoggingConfig{}},
		{name: "Console debug", cfg: config.LoggingConfig{Level: "debug", Format: "console"}},
		{name: "Override wins", cfg: config.LoggingConfig{Level: "bogus"}, override: "warn"},
		{name: "Invalid level", cfg: config.LoggingConfig{Level: "verbose"}, wantError: true},
		{name: "Invalid format", cfg: config.LoggingConfig{Format: "xml"}, wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := initializeLogger(tt.cfg, tt.override)
			if tt.wantError {
				if err == nil {
					t.Error("initializeLogger() expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("initializeLogger() error = %v", err)
			}
			_ = logger.Sync()
		})
	}

	t.Run("Output file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "logs", "workbook.log")
		logger, err := initializeLogger(config.LoggingConfig{OutputFile: path}, "")
		if err != nil {
			t.Fatalf("initializeLogger() error = %v", err)
		}
		logger.Info("hello")
		_ = logger.Sync()
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("log file not written: %v", err)
		}
		if !strings.Contains(string(data), "hello") {
			t.Errorf("log file content = %q", data)
		}
	})
}

func TestLoadConfigurationFallback(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "config.yaml")

	conf, err := loadConfiguration(missing, false)
	if err != nil {
		t.Fatalf("loadConfiguration() error = %v", err)
	}
	if conf.Output.Format != constants.OutputFormatPretty {
		t.Errorf("expected default configuration, got %+v", conf.Output)
	}

	if _, err := loadConfiguration(missing, true); err == nil {
		t.Error("an explicitly requested missing file should be an error")
	}
}

func TestWriteWorkbook(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "household.json")
	if err := household.Save(path, testutil.SampleHousehold()); err != nil {
		t.Fatalf("household.Save() error = %v", err)
	}
	h, err := loadHousehold(path, nil)
	if err != nil {
		t.Fatalf("loadHousehold() error = %v", err)
	}
	wb := plan.Evaluate(nil, h, ratetable.CZ2025(), time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC))

	tests := []struct {
		format string
		file   string
		prefix []byte
	}{
		{format: constants.OutputFormatPretty, file: "plan.txt", prefix: []byte("=== Financial plan for Jana Nováková")},
		{format: constants.OutputFormatCSV, file: "plan.csv", prefix: []byte("section,item,value")},
		{format: constants.OutputFormatPDF, file: "plan.pdf", prefix: []byte("%PDF-")},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			target := filepath.Join(dir, tt.file)
			if err := writeWorkbook(wb, tt.format, target); err != nil {
				t.Fatalf("writeWorkbook() error = %v", err)
			}
			data, err := os.ReadFile(target)
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.HasPrefix(data, tt.prefix) {
				t.Errorf("output starts with %q, expected %q", data[:min(len(data), 40)], tt.prefix)
			}
		})
	}

	if err := writeWorkbook(wb, constants.OutputFormatCSV, filepath.Join(dir, "missing", "plan.csv")); err == nil {
		t.Error("expected error for an unwritable target")
	}
}

func TestLoadHouseholdFromStdin(t *testing.T) {
	data, err := household.Encode(testutil.SampleHousehold())
	if err != nil {
		t.Fatal(err)
	}
	h, err := loadHousehold("-", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("loadHousehold() error = %v", err)
	}
	if h.Name() != "Jana Nováková" {
		t.Errorf("Name() = %q", h.Name())
	}

	if _, err := loadHousehold("-", strings.NewReader("{")); err == nil {
		t.Error("expected error for a malformed document")
	}
}
