// Package config defines the application configuration and loads it from a
// YAML file.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/iwvelando/finance-workbook/internal/plan"
	"github.com/iwvelando/finance-workbook/internal/ratetable"
	"github.com/iwvelando/finance-workbook/pkg/constants"
	"github.com/iwvelando/finance-workbook/pkg/mathutil"
	"github.com/iwvelando/finance-workbook/pkg/validation"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment variables that override file settings, e.g.
// FINANCE_WORKBOOK_LOGGING_LEVEL.
const EnvPrefix = "FINANCE_WORKBOOK"

// Configuration holds all configuration for finance-workbook.
type Configuration struct {
	Logging     LoggingConfig     `mapstructure:"logging"`
	Output      OutputConfig      `mapstructure:"output"`
	Store       StoreConfig       `mapstructure:"store"`
	Assumptions AssumptionsConfig `mapstructure:"assumptions"`
	RateTable   RateTableConfig   `mapstructure:"rateTable"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `mapstructure:"level" yaml:"level,omitempty"`           // debug, info, warn, error
	Format     string `mapstructure:"format" yaml:"format,omitempty"`         // json, console
	OutputFile string `mapstructure:"outputFile" yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `mapstructure:"format"` // pretty, csv, pdf
	File   string `mapstructure:"file"`   // required for pdf
}

// StoreConfig locates the saved clients.
type StoreConfig struct {
	Dir string `mapstructure:"dir"`
}

// AssumptionsConfig holds the planning defaults. Rates are in percent.
type AssumptionsConfig struct {
	InflationPercent        float64 `mapstructure:"inflationPercent"`
	RetirementAge           int     `mapstructure:"retirementAge"`
	RetirementSpending      float64 `mapstructure:"retirementSpending"`
	RetirementReturnPercent float64 `mapstructure:"retirementReturnPercent"`
	PayoutYears             int     `mapstructure:"payoutYears"`
}

// RateTableConfig selects the statutory rate table. File, when set, is a YAML
// override applied on top of the table for Year.
type RateTableConfig struct {
	Year int    `mapstructure:"year"`
	File string `mapstructure:"file"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("output.format", constants.OutputFormatPretty)
	v.SetDefault("store.dir", constants.DefaultStoreDir)
	v.SetDefault("assumptions.inflationPercent", constants.DefaultInflationRate*constants.PercentageMultiplier)
	v.SetDefault("assumptions.retirementAge", constants.DefaultRetirementAge)
	v.SetDefault("assumptions.retirementSpending", constants.DefaultRetirementSpending)
	v.SetDefault("assumptions.retirementReturnPercent", constants.DefaultRetirementReturn)
	v.SetDefault("assumptions.payoutYears", constants.DefaultPayoutYears)
	v.SetDefault("rateTable.year", ratetable.Default().Year)
}

// Default returns the configuration used when no file is given.
func Default() *Configuration {
	v := viper.New()
	setDefaults(v)
	var configuration Configuration
	// Defaults alone always decode.
	_ = v.Unmarshal(&configuration)
	return &configuration
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. Missing keys keep their defaults and environment
// variables prefixed with EnvPrefix override the file.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(configPath)
	v.SetConfigType("yml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %w", err)
	}

	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}

	if err := configuration.Validate(); err != nil {
		return nil, err
	}
	return &configuration, nil
}

// Validate checks the configuration for values the application cannot use.
func (c *Configuration) Validate() error {
	var errs []error
	if err := validation.ValidateOutputFormat(c.Output.Format); err != nil {
		errs = append(errs, err)
	}
	if c.Output.Format == constants.OutputFormatPDF && strings.TrimSpace(c.Output.File) == "" {
		errs = append(errs, errors.New("output.file is required for pdf output"))
	}
	if err := validation.ValidateRate("assumptions.inflationPercent", mathutil.PercentToRate(c.Assumptions.InflationPercent)); err != nil {
		errs = append(errs, err)
	}
	if err := validation.ValidateRate("assumptions.retirementReturnPercent", mathutil.PercentToRate(c.Assumptions.RetirementReturnPercent)); err != nil {
		errs = append(errs, err)
	}
	if err := validation.ValidateYears("assumptions.retirementAge", c.Assumptions.RetirementAge, 1, 100); err != nil {
		errs = append(errs, err)
	}
	if err := validation.ValidateYears("assumptions.payoutYears", c.Assumptions.PayoutYears, 1, 60); err != nil {
		errs = append(errs, err)
	}
	if err := validation.ValidateNonNegative("assumptions.retirementSpending", c.Assumptions.RetirementSpending); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// PlanAssumptions converts the configured assumptions for the plan package.
func (c *Configuration) PlanAssumptions() plan.Assumptions {
	return plan.Assumptions{
		InflationRate:       mathutil.PercentToRate(c.Assumptions.InflationPercent),
		RetirementAge:       c.Assumptions.RetirementAge,
		RetirementSpending:  c.Assumptions.RetirementSpending,
		AnnualReturnPercent: c.Assumptions.RetirementReturnPercent,
		PayoutYears:         c.Assumptions.PayoutYears,
	}
}

// LoadRateTable returns the built-in table for the configured year with the
// override file, when one is set, applied on top.
func (c *Configuration) LoadRateTable() (ratetable.Table, error) {
	t, err := ratetable.ForYear(c.RateTable.Year)
	if err != nil {
		return ratetable.Table{}, fmt.Errorf("rate table: %w", err)
	}
	if c.RateTable.File == "" {
		return t, nil
	}
	t, err = ratetable.LoadFile(c.RateTable.File, t)
	if err != nil {
		return ratetable.Table{}, fmt.Errorf("rate table override: %w", err)
	}
	return t, nil
}
