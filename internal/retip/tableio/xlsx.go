package tableio

import (
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/oloBion/retip/internal/pkg/pkgerror"
	"github.com/oloBion/retip/internal/retip/entity"
)

const defaultSheet = "Sheet1"

// ReadXLSX reads the selected worksheet; its first row is the header.
func ReadXLSX(r io.Reader, opts ReadOptions) (*entity.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, pkgerror.NewServer(err)
	}
	defer f.Close()

	sheet := opts.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, pkgerror.NewSchemaValidation(entity.ColumnName, "column not found, workbook has no sheets")
		}
		sheet = sheets[0]
	}

	idx, err := f.GetSheetIndex(sheet)
	if err != nil || idx < 0 {
		return nil, pkgerror.NewConfiguration("dataset.sheet", sheet, "sheet not found in workbook")
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, pkgerror.NewServer(err)
	}
	if len(rows) == 0 {
		return nil, pkgerror.NewSchemaValidation(entity.ColumnName, "column not found, sheet has no header")
	}

	return build(rows[0], rows[1:], opts.Schema)
}

// WriteXLSX writes t to a single worksheet. Missing cells are left empty.
func WriteXLSX(w io.Writer, t *entity.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	sw, err := f.NewStreamWriter(defaultSheet)
	if err != nil {
		return pkgerror.NewServer(err)
	}

	header := make([]any, 0, t.NumColumns())
	for _, c := range t.Columns() {
		header = append(header, c)
	}
	if err := sw.SetRow("A1", header); err != nil {
		return pkgerror.NewServer(err)
	}

	for i, row := range t.Rows() {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return pkgerror.NewServer(err)
		}
		if err := sw.SetRow(cell, cells(row)); err != nil {
			return pkgerror.NewServer(err)
		}
	}

	if err := sw.Flush(); err != nil {
		return pkgerror.NewServer(err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return pkgerror.NewServer(err)
	}
	return nil
}
