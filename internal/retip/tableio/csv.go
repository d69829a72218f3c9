package tableio

import (
	"encoding/csv"
	"errors"
	"io"

	"github.com/oloBion/retip/internal/pkg/pkgerror"
	"github.com/oloBion/retip/internal/retip/entity"
)

// ReadCSV reads a header line followed by records.
func ReadCSV(r io.Reader, schema entity.Schema) (*entity.Table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, pkgerror.NewSchemaValidation(entity.ColumnName, "column not found, input has no header")
	}
	if err != nil {
		return nil, pkgerror.NewServer(err)
	}

	var records [][]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, pkgerror.NewServer(err)
		}
		records = append(records, record)
	}

	return build(header, records, schema)
}

// WriteCSV writes t with a header line. Missing cells are empty.
func WriteCSV(w io.Writer, t *entity.Table) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(t.Columns()); err != nil {
		return pkgerror.NewServer(err)
	}

	record := make([]string, t.NumColumns())
	for _, row := range t.Rows() {
		for i, v := range row {
			record[i] = v.Text()
		}
		if err := writer.Write(record); err != nil {
			return pkgerror.NewServer(err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return pkgerror.NewServer(err)
	}
	return nil
}
