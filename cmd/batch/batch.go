// Package batch handles batch processing of CAMT XML files
package batch

import (
	"fjacquet/camt-export/cmd/root"
	"fjacquet/camt-export/internal/camtparser"
	"fjacquet/camt-export/internal/logging"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Cmd represents the batch command
var Cmd = &cobra.Command{
	Use:   "batch",
	Short: "Batch convert CAMT XML files from a directory",
	Long: `Batch convert all CAMT XML files in an input directory to CSV files in an
output directory. Each file is validated and converted independently; files
that fail are skipped with a warning.

Example:
  camt-export batch --input-dir input/ --output-dir output/`,
	Run: batchFunc,
}

func init() {
	Cmd.Flags().StringVar(&root.InputDir, "input-dir", "", "Directory containing CAMT XML files")
	Cmd.Flags().StringVar(&root.OutputDir, "output-dir", "", "Directory to write CSV files to")
}

func batchFunc(cmd *cobra.Command, args []string) {
	inputDir := root.InputDir
	outputDir := root.OutputDir
	if inputDir == "" {
		inputDir = root.SharedFlags.Input
	}
	if outputDir == "" {
		outputDir = root.SharedFlags.Output
	}
	if inputDir == "" || outputDir == "" {
		root.Log.Fatal("Both --input-dir and --output-dir are required")
	}

	count, err := camtparser.BatchConvert(inputDir, outputDir, root.ExportOptions())
	if err != nil {
		root.Log.WithError(err).Fatal("Batch conversion failed")
	}
	root.Log.WithFields(logrus.Fields{
		logging.FieldInputDir:  inputDir,
		logging.FieldOutputDir: outputDir,
		logging.FieldCount:     count,
	}).Info("Batch conversion completed")
}
