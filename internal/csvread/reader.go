// Package csvread parses one helpdesk export file into an untyped RawTable.
// Exports carry two lines of tool metadata before the real column header and
// arrive either UTF-8 or Windows-1252 encoded, depending on which machine
// produced them.
package csvread

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/dmelo/ticketstats/internal/model"
)

const preambleLines = 2

// Open reads the export file at path into a RawTable named after its base name.
func Open(path string) (*model.RawTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open export file: %w", err)
	}
	defer f.Close()
	return ReadTable(filepath.Base(path), f)
}

// ReadTable parses one export stream. The first two lines are skipped, the
// third is the column header, everything after is data. Ragged rows are
// fitted to the header width because older export versions pad or truncate
// trailing columns inconsistently.
func ReadTable(name string, r io.Reader) (*model.RawTable, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%s: read: %w", name, err)
	}

	data, err := decode(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: decode: %w", name, err)
	}

	rest, err := skipPreamble(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	cr := csv.NewReader(bytes.NewReader(rest))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("%s: missing header row: %w", name, err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var rows [][]string
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: parse csv: %w", name, err)
		}
		rows = append(rows, fitWidth(rec, len(header)))
	}

	return &model.RawTable{Name: name, Header: header, Rows: rows}, nil
}

// decode returns UTF-8 text. Input that is not valid UTF-8 is assumed to be
// Windows-1252, the encoding the legacy export tooling writes.
func decode(data []byte) ([]byte, error) {
	// Strip a UTF-8 BOM if present.
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})
	if utf8.Valid(data) {
		return data, nil
	}
	out, _, err := transform.Bytes(charmap.Windows1252.NewDecoder(), data)
	if err != nil {
		return nil, fmt.Errorf("windows-1252 fallback: %w", err)
	}
	return out, nil
}

// skipPreamble drops the metadata lines ahead of the column header. The
// preamble is treated as opaque text, not CSV, since it is free-form.
func skipPreamble(data []byte) ([]byte, error) {
	for i := 0; i < preambleLines; i++ {
		idx := bytes.IndexByte(data, '\n')
		if idx < 0 {
			return nil, fmt.Errorf("missing preamble line %d", i+1)
		}
		data = data[idx+1:]
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("no header row after preamble")
	}
	return data, nil
}

func fitWidth(rec []string, width int) []string {
	if len(rec) == width {
		return rec
	}
	if len(rec) > width {
		return rec[:width]
	}
	out := make([]string, width)
	copy(out, rec)
	return out
}
