// Package refcode maps ISO bank transaction classifications to the
// three-digit reference codes (GVC) accounting systems expect when the
// proprietary code field does not already carry one.
//
// The backing table is embedded, loaded exactly once on first use and
// read-only afterwards, so lookups are safe from concurrent goroutines.
package refcode

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
	"sync"

	"github.com/gocarina/gocsv"
	"github.com/sirupsen/logrus"

	_ "embed"
)

var log = logrus.New()

// SetLogger allows setting a custom logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

//go:embed codes.csv
var codesCSV []byte

// tableRow mirrors one line of the embedded table. Trailing descriptive
// columns exist for maintainers only and are ignored by the lookup.
type tableRow struct {
	ReferenceCode   string `csv:"ReferenceCode"`
	CreditDebitFlag string `csv:"CreditDebitFlag"`
	Domain          string `csv:"Domain"`
	Family          string `csv:"Family"`
	SubFamily       string `csv:"SubFamily"`
	Description     string `csv:"Description"`
}

var (
	loadOnce sync.Once
	table    map[string]string
)

// load parses the embedded table. Rows with a missing code, an invalid
// credit/debit flag or an empty classification are skipped; duplicate keys
// keep the first inserted row.
func load() {
	r := csv.NewReader(bytes.NewReader(codesCSV))
	r.Comma = ';'
	r.FieldsPerRecord = -1

	var rows []tableRow
	if err := gocsv.UnmarshalCSV(r, &rows); err != nil {
		log.WithError(err).Error("Failed to decode embedded reference-code table")
		table = map[string]string{}
		return
	}

	table = make(map[string]string, len(rows))
	for _, row := range rows {
		code := strings.TrimSpace(row.ReferenceCode)
		flag := strings.TrimSpace(row.CreditDebitFlag)
		domain := upperTrim(row.Domain)
		family := upperTrim(row.Family)
		subFamily := upperTrim(row.SubFamily)

		if code == "" || domain == "" || family == "" || subFamily == "" {
			continue
		}
		if flag != "C" && flag != "D" {
			continue
		}

		k := key(domain, family, subFamily, flag[0])
		if _, exists := table[k]; !exists {
			table[k] = code
		}
	}
	log.WithField("count", len(table)).Debug("Reference-code table loaded")
}

func upperTrim(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

func key(domain, family, subFamily string, flag byte) string {
	return fmt.Sprintf("%s;%s;%s;%c", domain, family, subFamily, flag)
}

// Lookup returns the reference code for a (domain, family, subfamily,
// credit/debit flag) tuple, or "" when the table has no entry. Inputs are
// trimmed and uppercased before key construction; flag must be 'C' or 'D'.
// Lookup is a pure function of its inputs once the table is loaded.
func Lookup(domain, family, subFamily string, flag byte) string {
	loadOnce.Do(load)
	return table[key(upperTrim(domain), upperTrim(family), upperTrim(subFamily), flag)]
}
