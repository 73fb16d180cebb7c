package config

import (
	"fmt"
	"strings"

	"fjacquet/camt-export/internal/export"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Export struct {
		Delimiter           string `mapstructure:"delimiter" yaml:"delimiter"`
		IncludeHeader       bool   `mapstructure:"include_header" yaml:"include_header"`
		WriteBOM            bool   `mapstructure:"write_bom" yaml:"write_bom"`
		SignedAmount        bool   `mapstructure:"signed_amount" yaml:"signed_amount"`
		CreditAsBool        bool   `mapstructure:"credit_as_bool" yaml:"credit_as_bool"`
		RemittanceSeparator string `mapstructure:"remittance_separator" yaml:"remittance_separator"`
		UseEffectiveCredit  bool   `mapstructure:"use_effective_credit" yaml:"use_effective_credit"`
		PreferUltimate      bool   `mapstructure:"prefer_ultimate" yaml:"prefer_ultimate"`
		SortByBookingDate   bool   `mapstructure:"sort_by_booking_date" yaml:"sort_by_booking_date"`
	} `mapstructure:"export" yaml:"export"`

	Parser struct {
		// StrictAmounts reports unparseable decimal values at error level
		// instead of silently degrading them to zero.
		StrictAmounts bool `mapstructure:"strict_amounts" yaml:"strict_amounts"`
	} `mapstructure:"parser" yaml:"parser"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading
func InitializeConfig() (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.camt-export")
	v.AddConfigPath(".camt-export")
	v.AddConfigPath(".")

	// 3. Environment variables
	v.SetEnvPrefix("CAMT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Continue with defaults and env vars
			Logger.Warnf("Error reading config file %s: %v", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("export.delimiter", ";")
	v.SetDefault("export.include_header", true)
	v.SetDefault("export.write_bom", false)
	v.SetDefault("export.signed_amount", true)
	v.SetDefault("export.credit_as_bool", true)
	v.SetDefault("export.remittance_separator", " | ")
	v.SetDefault("export.use_effective_credit", false)
	v.SetDefault("export.prefer_ultimate", true)
	v.SetDefault("export.sort_by_booking_date", true)

	v.SetDefault("parser.strict_amounts", false)
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}
	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}
	if len(config.Export.Delimiter) != 1 {
		return fmt.Errorf("export delimiter must be a single character, got: %s", config.Export.Delimiter)
	}
	return nil
}

// ExportOptions converts the configuration to the export layer's options.
func (c *Config) ExportOptions() export.Options {
	return export.Options{
		Delimiter:                  c.Export.Delimiter[0],
		IncludeHeader:              c.Export.IncludeHeader,
		WriteBOM:                   c.Export.WriteBOM,
		SignedAmount:               c.Export.SignedAmount,
		CreditAsBool:               c.Export.CreditAsBool,
		RemittanceSeparator:        c.Export.RemittanceSeparator,
		UseEffectiveCredit:         c.Export.UseEffectiveCredit,
		PreferUltimateCounterparty: c.Export.PreferUltimate,
		SortByBookingDate:          c.Export.SortByBookingDate,
	}
}
