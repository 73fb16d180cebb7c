package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearTestEnvVars(t *testing.T) {
	for _, key := range []string{
		"CAMT_LOG_LEVEL",
		"CAMT_LOG_FORMAT",
		"CAMT_EXPORT_DELIMITER",
		"CAMT_EXPORT_INCLUDE_HEADER",
		"CAMT_EXPORT_WRITE_BOM",
		"CAMT_EXPORT_SIGNED_AMOUNT",
		"CAMT_EXPORT_CREDIT_AS_BOOL",
		"CAMT_EXPORT_REMITTANCE_SEPARATOR",
		"CAMT_EXPORT_USE_EFFECTIVE_CREDIT",
		"CAMT_EXPORT_PREFER_ULTIMATE",
		"CAMT_EXPORT_SORT_BY_BOOKING_DATE",
		"CAMT_PARSER_STRICT_AMOUNTS",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestInitializeConfig_Defaults(t *testing.T) {
	clearTestEnvVars(t)

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "info", config.Log.Level)
	assert.Equal(t, "text", config.Log.Format)
	assert.Equal(t, ";", config.Export.Delimiter)
	assert.True(t, config.Export.IncludeHeader)
	assert.False(t, config.Export.WriteBOM)
	assert.True(t, config.Export.SignedAmount)
	assert.True(t, config.Export.CreditAsBool)
	assert.Equal(t, " | ", config.Export.RemittanceSeparator)
	assert.False(t, config.Export.UseEffectiveCredit)
	assert.True(t, config.Export.PreferUltimate)
	assert.True(t, config.Export.SortByBookingDate)
	assert.False(t, config.Parser.StrictAmounts)
}

func TestInitializeConfig_EnvironmentVariables(t *testing.T) {
	clearTestEnvVars(t)

	t.Setenv("CAMT_LOG_LEVEL", "debug")
	t.Setenv("CAMT_LOG_FORMAT", "json")
	t.Setenv("CAMT_EXPORT_DELIMITER", ",")
	t.Setenv("CAMT_EXPORT_WRITE_BOM", "true")
	t.Setenv("CAMT_PARSER_STRICT_AMOUNTS", "true")

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "debug", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, ",", config.Export.Delimiter)
	assert.True(t, config.Export.WriteBOM)
	assert.True(t, config.Parser.StrictAmounts)
}

func TestInitializeConfig_ConfigFile(t *testing.T) {
	clearTestEnvVars(t)

	tmpDir := t.TempDir()
	configContent := `log:
  level: warn
  format: json
export:
  delimiter: ","
  signed_amount: false
parser:
  strict_amounts: true
`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.yaml"), []byte(configContent), 0o600))

	oldWd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tmpDir))
	defer func() {
		require.NoError(t, os.Chdir(oldWd))
	}()

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "warn", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, ",", config.Export.Delimiter)
	assert.False(t, config.Export.SignedAmount)
	assert.True(t, config.Parser.StrictAmounts)
	// Unset keys keep their defaults.
	assert.True(t, config.Export.IncludeHeader)
}

func TestInitializeConfig_InvalidLogLevel(t *testing.T) {
	clearTestEnvVars(t)
	t.Setenv("CAMT_LOG_LEVEL", "verbose")

	_, err := InitializeConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestInitializeConfig_InvalidLogFormat(t *testing.T) {
	clearTestEnvVars(t)
	t.Setenv("CAMT_LOG_FORMAT", "xml")

	_, err := InitializeConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log format")
}

func TestInitializeConfig_InvalidDelimiter(t *testing.T) {
	clearTestEnvVars(t)
	t.Setenv("CAMT_EXPORT_DELIMITER", ";;")

	_, err := InitializeConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "delimiter must be a single character")
}

func TestExportOptions(t *testing.T) {
	clearTestEnvVars(t)

	config, err := InitializeConfig()
	require.NoError(t, err)

	opts := config.ExportOptions()
	assert.Equal(t, byte(';'), opts.Delimiter)
	assert.True(t, opts.IncludeHeader)
	assert.False(t, opts.WriteBOM)
	assert.True(t, opts.SignedAmount)
	assert.True(t, opts.CreditAsBool)
	assert.Equal(t, " | ", opts.RemittanceSeparator)
	assert.False(t, opts.UseEffectiveCredit)
	assert.True(t, opts.PreferUltimateCounterparty)
	assert.True(t, opts.SortByBookingDate)
}
