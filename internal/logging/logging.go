// Package logging centralizes logger construction so every package logs with
// the same level and format.
package logging

import (
	"strings"

	"github.com/sirupsen/logrus"
)

// Standardized field names for structured logging. Using these constants
// keeps the log output consistent and machine-filterable.
const (
	FieldFile       = "file_path"
	FieldInputFile  = "input_file"
	FieldOutputFile = "output_file"
	FieldInputDir   = "input_dir"
	FieldOutputDir  = "output_dir"
	FieldKind       = "kind"
	FieldStatements = "statements"
	FieldRows       = "rows"
	FieldCount      = "count"
	FieldDelimiter  = "delimiter"
	FieldError      = "error"
)

// Configure builds a logger with the given level and format. An unknown
// level falls back to info; any format other than "json" means text with
// full timestamps.
func Configure(level, format string) *logrus.Logger {
	logger := logrus.New()

	logLevel, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if strings.ToLower(format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}
	return logger
}
