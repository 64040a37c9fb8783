package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

const utf8BOM = "\uFEFF"

// CSVSource reads export rows by header name. Unknown columns are kept in Raw
// and otherwise ignored; missing columns read as empty strings.
type CSVSource struct {
	r      *csv.Reader
	header []string
	index  map[string]int
	line   int
}

// NewCSVSource reads the header row from r.
func NewCSVSource(r io.Reader) (*CSVSource, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("csv is empty: missing header row")
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		if _, dup := index[key]; !dup {
			index[key] = i
		}
	}
	if _, ok := index[strings.ToLower(ColumnName)]; !ok {
		return nil, fmt.Errorf("csv header has no %q column", ColumnName)
	}

	return &CSVSource{r: cr, header: header, index: index, line: 1}, nil
}

// Header returns the source columns in file order.
func (s *CSVSource) Header() []string {
	return append([]string(nil), s.header...)
}

// Next returns the next row, or io.EOF.
func (s *CSVSource) Next() (Record, error) {
	for {
		fields, err := s.r.Read()
		if err != nil {
			return Record{}, err
		}
		s.line++
		if isBlank(fields) {
			continue
		}
		return s.record(fields), nil
	}
}

func (s *CSVSource) record(fields []string) Record {
	get := func(col string) string {
		i, ok := s.index[strings.ToLower(col)]
		if !ok || i >= len(fields) {
			return ""
		}
		return strings.TrimSpace(fields[i])
	}
	return Record{
		Line:         s.line,
		Count:        get(ColumnCount),
		Edition:      get(ColumnEdition),
		EditionCode:  get(ColumnEditionCode),
		CardNumber:   get(ColumnCardNumber),
		Name:         get(ColumnName),
		Condition:    get(ColumnCondition),
		Language:     get(ColumnLanguage),
		Foil:         get(ColumnFoil),
		Promo:        get(ColumnPromo),
		ArtistProof:  get(ColumnArtistProof),
		PrintingNote: get(ColumnPrintingNote),
		LastUpdated:  get(ColumnLastUpdated),
		Raw:          append([]string(nil), fields...),
	}
}

func isBlank(fields []string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// CSVRejectWriter writes rejects with the source header plus an Error column,
// so a corrected reject file can be imported again.
type CSVRejectWriter struct {
	w        *csv.Writer
	width    int
	errCol   int
	appended bool // Error column added after the source header
}

// NewCSVRejectWriter writes the header immediately. An existing Error column
// in the source header is reused rather than duplicated.
func NewCSVRejectWriter(w io.Writer, header []string) (*CSVRejectWriter, error) {
	cols := append([]string(nil), header...)
	errCol := -1
	for i, h := range cols {
		if strings.EqualFold(strings.TrimSpace(h), ColumnError) {
			errCol = i
			break
		}
	}
	appended := errCol < 0
	if appended {
		cols = append(cols, ColumnError)
		errCol = len(cols) - 1
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(cols); err != nil {
		return nil, fmt.Errorf("write reject header: %w", err)
	}
	return &CSVRejectWriter{w: cw, width: len(cols), errCol: errCol, appended: appended}, nil
}

// WriteReject writes the row as read plus its error. Fields past the end of
// the header are kept; the error then follows the last of them.
func (w *CSVRejectWriter) WriteReject(r Reject) error {
	col := w.errCol
	if w.appended && len(r.Record.Raw) > col {
		col = len(r.Record.Raw)
	}
	row := make([]string, max(w.width, col+1, len(r.Record.Raw)))
	copy(row, r.Record.Raw)
	row[col] = r.Error
	return w.w.Write(row)
}

// Flush writes buffered rows and reports any write error.
func (w *CSVRejectWriter) Flush() error {
	w.w.Flush()
	return w.w.Error()
}
