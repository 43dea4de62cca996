package csv

import (
	"encoding/csv"
	"errors"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"hermannm.dev/bookinganalysis/transform"
	"hermannm.dev/wrap"
)

const maxRowsToCheckForDelimiter = 20

type Reader struct {
	inner      *csv.Reader
	file       io.ReadSeeker
	currentRow int
}

func NewReader(csvFile io.ReadSeeker) (*Reader, error) {
	delimiter, err := deduceFieldDelimiter(csvFile, maxRowsToCheckForDelimiter)
	if err != nil {
		return nil, err
	}

	return &Reader{inner: newInnerReader(csvFile, delimiter), file: csvFile, currentRow: 0}, nil
}

func newInnerReader(csvFile io.ReadSeeker, delimiter rune) *csv.Reader {
	reader := csv.NewReader(csvFile)
	reader.ReuseRecord = true
	reader.Comma = delimiter
	return reader
}

// ReadRecords reads the remainder of the CSV file into records for analysis.
//
// The header row gives each column's field path: dot-delimited headers (e.g. 'location.city')
// produce nested fields in the records. Numeric cells parse as numbers, other cells as strings.
// Empty cells are omitted from the record entirely, so that the transform's missing-field
// defaults apply to them. Rows without an 'id' column get a generated UUID.
func (reader *Reader) ReadRecords() ([]transform.Record, error) {
	headerRow, err := reader.ReadHeaderRow()
	if err != nil {
		return nil, wrap.Error(err, "failed to read CSV header row")
	}
	// The inner reader reuses its row slice between reads, so the header must be copied.
	fieldPaths := slices.Clone(headerRow)

	records := make([]transform.Record, 0)
	for {
		row, rowNumber, done, err := reader.ReadRow()
		if done {
			break
		}
		if err != nil {
			// encoding/csv rejects rows with a different field count than the header row, so
			// rows that reach record building always match fieldPaths.
			return nil, wrap.Errorf(err, "failed to read CSV row %d", rowNumber)
		}

		records = append(records, newRecordFromRow(fieldPaths, row))
	}

	return records, nil
}

func (reader *Reader) ReadRow() (row []string, rowNumber int, done bool, err error) {
	reader.currentRow++

	row, err = reader.inner.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, 0, true, nil
		} else {
			return nil, 0, false, err
		}
	}

	return row, reader.currentRow, false, nil
}

func (reader *Reader) ReadHeaderRow() (row []string, err error) {
	row, rowNumber, done, err := reader.ReadRow()
	if rowNumber != 1 {
		return nil, errors.New("tried to read header row after reading previous rows")
	}
	if done {
		return nil, errors.New("csv file ended before header row")
	}
	if err != nil {
		return nil, err
	}
	return row, nil
}

func (reader *Reader) ResetReadPosition() error {
	if _, err := reader.file.Seek(0, io.SeekStart); err != nil {
		return err
	}

	reader.currentRow = 0
	reader.inner = newInnerReader(reader.file, reader.inner.Comma)
	return nil
}

func newRecordFromRow(fieldPaths []string, row []string) transform.Record {
	record := make(transform.Record, len(fieldPaths))

	for i, fieldPath := range fieldPaths {
		field := strings.TrimSpace(row[i])
		if field == "" {
			continue
		}

		if number, err := strconv.ParseFloat(field, 64); err == nil {
			setRecordField(record, fieldPath, number)
		} else {
			setRecordField(record, fieldPath, field)
		}
	}

	if _, hasID := record["id"]; !hasID {
		record["id"] = uuid.NewString()
	}

	return record
}

func setRecordField(record transform.Record, fieldPath string, value any) {
	segments := strings.Split(fieldPath, ".")
	lastSegment := len(segments) - 1

	current := map[string]any(record)
	for _, segment := range segments[:lastSegment] {
		nested, ok := current[segment].(map[string]any)
		if !ok {
			nested = make(map[string]any)
			current[segment] = nested
		}
		current = nested
	}

	current[segments[lastSegment]] = value
}
