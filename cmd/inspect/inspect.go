// Package inspect dumps the parsed document model for debugging
package inspect

import (
	"os"

	"fjacquet/camt-export/cmd/root"
	"fjacquet/camt-export/internal/camtparser"
	"fjacquet/camt-export/internal/logging"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Cmd represents the inspect command
var Cmd = &cobra.Command{
	Use:   "inspect",
	Short: "Parse a CAMT XML file and dump the document model as YAML",
	Long: `Parse a camt.052/053/054 XML file and print the extracted document model
as YAML. Useful to see exactly what the extractor found before projection.

Example:
  camt-export inspect -i statement.xml`,
	Run: inspectFunc,
}

func inspectFunc(cmd *cobra.Command, args []string) {
	input := root.SharedFlags.Input
	if input == "" {
		root.Log.Fatal("--input is required")
	}

	doc, err := camtparser.ParseFile(input)
	if err != nil {
		root.Log.WithError(err).Fatal("Parse failed")
	}

	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		root.Log.WithError(err).Fatal("Failed to encode document")
	}
	if err := enc.Close(); err != nil {
		root.Log.WithError(err).Fatal("Failed to flush YAML output")
	}
	root.Log.WithField(logging.FieldFile, input).Debug("Inspect completed")
}
