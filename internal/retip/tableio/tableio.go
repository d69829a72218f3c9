// Package tableio reads and writes record tables in the supported file formats.
//
// The format is always chosen from the file extension. Cells are coerced on
// read against an entity.Schema: declared number columns must parse as
// floats, undeclared columns are numeric only when every present cell is.
package tableio

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/oloBion/retip/internal/pkg/pkgerror"
	"github.com/oloBion/retip/internal/retip/entity"
)

// Format is a supported table file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ReadOptions tune how a file is turned into a table.
type ReadOptions struct {
	// Sheet selects the XLSX worksheet; the first sheet when empty.
	Sheet  string
	Schema entity.Schema
}

// FormatOf returns the format for path, or an UnsupportedFormat error naming the extension.
func FormatOf(path string) (Format, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch Format(ext) {
	case FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	default:
		return "", pkgerror.NewUnsupportedFormat(ext)
	}
}

// ParseFormat accepts a bare format name such as "csv".
func ParseFormat(name string) (Format, error) {
	return FormatOf("." + name)
}

// Read loads the table stored at path.
func Read(path string, opts ReadOptions) (*entity.Table, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, pkgerror.NewServer(err)
	}
	defer f.Close()

	switch format {
	case FormatXLSX:
		return ReadXLSX(f, opts)
	default:
		return ReadCSV(f, opts.Schema)
	}
}

// Write stores t at path, creating parent directories as needed.
func Write(path string, t *entity.Table) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return pkgerror.NewServer(err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return pkgerror.NewServer(err)
	}

	switch format {
	case FormatXLSX:
		err = WriteXLSX(f, t)
	default:
		err = WriteCSV(f, t)
	}
	if err != nil {
		f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return pkgerror.NewServer(err)
	}
	return nil
}

// build turns a header and raw string rows into a typed table.
func build(header []string, records [][]string, schema entity.Schema) (*entity.Table, error) {
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	t, err := entity.NewTable(header...)
	if err != nil {
		return nil, pkgerror.NewSchemaValidation("header", err.Error())
	}

	columns := make([][]entity.Value, len(header))
	for c, name := range header {
		raw := make([]string, len(records))
		for r, rec := range records {
			if c < len(rec) {
				raw[r] = rec[c]
			}
		}

		col, err := coerce(name, raw, schema.TypeOf(name))
		if err != nil {
			return nil, err
		}
		columns[c] = col
	}

	for r, rec := range records {
		if len(rec) > len(header) {
			return nil, pkgerror.NewSchemaValidation(
				fmt.Sprintf("row %d", r+1),
				fmt.Sprintf("%d cells for %d columns", len(rec), len(header)),
			)
		}

		row := make([]entity.Value, len(header))
		for c := range header {
			row[c] = columns[c][r]
		}
		if err := t.Append(row...); err != nil {
			return nil, pkgerror.NewServer(err)
		}
	}

	return t, nil
}

func coerce(name string, raw []string, typ entity.FieldType) ([]entity.Value, error) {
	out := make([]entity.Value, len(raw))

	switch typ {
	case entity.FieldString:
		for i, s := range raw {
			out[i] = entity.ParseString(s)
		}
		return out, nil

	case entity.FieldNumber:
		for i, s := range raw {
			v, err := entity.ParseNumber(s)
			if err != nil {
				return nil, pkgerror.NewSchemaValidation(name, fmt.Sprintf("row %d: %q is not a number", i+1, s))
			}
			out[i] = v
		}
		return out, nil
	}

	for i, s := range raw {
		v, err := entity.ParseNumber(s)
		if err != nil {
			return coerce(name, raw, entity.FieldString)
		}
		out[i] = v
	}
	return out, nil
}

// cells renders a row for writers: missing is empty, numbers stay numbers.
func cells(row []entity.Value) []any {
	out := make([]any, len(row))
	for i, v := range row {
		if v.IsMissing() {
			continue
		}
		if f, ok := v.Float(); ok {
			out[i] = f
			continue
		}
		out[i] = v.Text()
	}
	return out
}
