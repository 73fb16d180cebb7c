package export

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// utf8BOM makes Excel detect UTF-8.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// escapeField quotes a value when it contains the delimiter, a quote or a
// line break, doubling embedded quotes. Values are otherwise written
// verbatim; in particular a leading or trailing space stays unquoted, which
// is why this writer exists instead of encoding/csv (that one force-quotes
// space-padded fields and would mangle the balance placeholder).
func escapeField(s string, delimiter byte) string {
	if strings.IndexByte(s, delimiter) < 0 && !strings.ContainsAny(s, "\"\n\r") {
		return s
	}
	s = strings.ReplaceAll(s, `"`, `""`)
	return `"` + s + `"`
}

// WriteRows serializes rows as CSV using the display values. The header row,
// byte order mark and delimiter follow the options.
func WriteRows(w io.Writer, rows []Row, opts Options) error {
	bw := bufio.NewWriter(w)

	if opts.WriteBOM {
		if _, err := bw.Write(utf8BOM); err != nil {
			return fmt.Errorf("error writing BOM: %w", err)
		}
	}

	if opts.IncludeHeader {
		for i, name := range HeaderRow(opts) {
			if i > 0 {
				if err := bw.WriteByte(opts.Delimiter); err != nil {
					return fmt.Errorf("error writing header: %w", err)
				}
			}
			if _, err := bw.WriteString(escapeField(name, opts.Delimiter)); err != nil {
				return fmt.Errorf("error writing header: %w", err)
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return fmt.Errorf("error writing header: %w", err)
		}
	}

	for i := range rows {
		for f := Field(0); f < FieldCount; f++ {
			if f > 0 {
				if err := bw.WriteByte(opts.Delimiter); err != nil {
					return fmt.Errorf("error writing row: %w", err)
				}
			}
			if _, err := bw.WriteString(escapeField(rows[i][f].Display, opts.Delimiter)); err != nil {
				return fmt.Errorf("error writing row: %w", err)
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return fmt.Errorf("error writing row: %w", err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("error flushing CSV output: %w", err)
	}
	return nil
}
