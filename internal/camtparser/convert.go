package camtparser

import (
	"fmt"
	"path/filepath"
	"strings"

	"fjacquet/camt-export/internal/export"
	"fjacquet/camt-export/internal/fileutils"

	"github.com/sirupsen/logrus"
)

// ConvertToCSV converts one CAMT XML file to a CSV file: parse, project,
// sort, write. The file is format-checked first so a non-CAMT file fails
// fast with a clear error.
func ConvertToCSV(xmlFile, csvFile string, opts export.Options) error {
	ok, err := ValidateFormat(xmlFile)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("file %s is not a supported CAMT XML file", xmlFile)
	}

	doc, err := ParseFile(xmlFile)
	if err != nil {
		return err
	}

	rows := export.Project(doc, opts)
	export.Sort(rows, opts.SortByBookingDate)

	out, err := fileutils.CreateFile(csvFile)
	if err != nil {
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := out.Close(); err != nil {
			log.WithError(err).Warn("Failed to close CSV file")
		}
	}()

	if err := export.WriteRows(out, rows, opts); err != nil {
		return fmt.Errorf("error writing CSV file: %w", err)
	}

	log.WithFields(logrus.Fields{
		"input":  xmlFile,
		"output": csvFile,
		"rows":   len(rows),
	}).Info("Converted CAMT XML to CSV")
	return nil
}

// BatchConvert converts all XML files in a directory to CSV files.
// Files that fail to convert are skipped with a warning; the returned count
// is the number of successful conversions.
func BatchConvert(inputDir, outputDir string, opts export.Options) (int, error) {
	log.WithFields(logrus.Fields{
		"inputDir":  inputDir,
		"outputDir": outputDir,
	}).Info("Batch converting CAMT XML files")

	if err := fileutils.EnsureDirectoryExists(outputDir); err != nil {
		log.WithError(err).Error("Failed to create output directory")
		return 0, fmt.Errorf("error creating output directory: %w", err)
	}

	files, err := fileutils.ListFilesWithExtension(inputDir, ".xml")
	if err != nil {
		log.WithError(err).Error("Failed to read input directory")
		return 0, fmt.Errorf("error reading input directory: %w", err)
	}

	var processed int
	for _, file := range files {
		baseName := filepath.Base(file)
		baseNameWithoutExt := strings.TrimSuffix(baseName, filepath.Ext(baseName))
		outputFile := filepath.Join(outputDir, baseNameWithoutExt+".csv")

		if err := ConvertToCSV(file, outputFile, opts); err != nil {
			log.WithFields(logrus.Fields{
				"file":  file,
				"error": err,
			}).Warning("Failed to convert file, skipping")
			continue
		}
		processed++
	}

	log.WithField("count", processed).Info("Batch conversion completed")
	return processed, nil
}
