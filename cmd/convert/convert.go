// Package convert handles single-file CAMT XML to CSV conversion
package convert

import (
	"fjacquet/camt-export/cmd/root"
	"fjacquet/camt-export/internal/camtparser"
	"fjacquet/camt-export/internal/logging"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Cmd represents the convert command
var Cmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a CAMT XML file to CSV",
	Long: `Convert a camt.052/053/054 XML file to normalized CSV rows.

Example:
  camt-export convert -i statement.xml -o statement.csv`,
	Run: convertFunc,
}

func convertFunc(cmd *cobra.Command, args []string) {
	input := root.SharedFlags.Input
	output := root.SharedFlags.Output

	if input == "" || output == "" {
		root.Log.Fatal("Both --input and --output are required")
	}

	if root.SharedFlags.Validate {
		ok, err := camtparser.ValidateFormat(input)
		if err != nil {
			root.Log.WithError(err).Fatal("Validation failed")
		}
		if !ok {
			root.Log.WithField(logging.FieldFile, input).Fatal("File is not a supported CAMT XML file")
		}
		root.Log.WithField(logging.FieldFile, input).Info("File format validated")
	}

	if err := camtparser.ConvertToCSV(input, output, root.ExportOptions()); err != nil {
		root.Log.WithError(err).Fatal("Conversion failed")
	}
	root.Log.WithFields(logrus.Fields{
		logging.FieldInputFile:  input,
		logging.FieldOutputFile: output,
	}).Info("Conversion completed")
}
