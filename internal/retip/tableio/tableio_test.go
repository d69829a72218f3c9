package tableio

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oloBion/retip/internal/pkg/pkgerror"
	"github.com/oloBion/retip/internal/retip/entity"
)

const sampleCSV = `Name,RT,SMILES,MW,Note
ethanol,1.5,CCO,46.07,x
methanol,NA,CO,,
bad,2.25,bad,n/a,y
`

func TestFormatOf(t *testing.T) {
	cases := map[string]error{
		"a.csv":        nil,
		"dir/A.CSV":    nil,
		"b.xlsx":       nil,
		"legacy.xls":   pkgerror.ErrUnsupportedFormat,
		"data.json":    pkgerror.ErrUnsupportedFormat,
		"no_extension": pkgerror.ErrUnsupportedFormat,
	}

	for path, want := range cases {
		_, err := FormatOf(path)
		if want == nil {
			assert.NoError(t, err, path)
			continue
		}
		assert.True(t, errors.Is(err, want), "%s: %v", path, err)
	}

	_, err := FormatOf("legacy.xls")
	assert.Contains(t, err.Error(), "xls")
}

func TestReadCSVCoercesBySchema(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader(sampleCSV), entity.DefaultSchema())
	require.NoError(t, err)

	assert.Equal(t, []string{"Name", "RT", "SMILES", "MW", "Note"}, tbl.Columns())
	assert.Equal(t, 3, tbl.NumRows())

	rt, _ := tbl.Column(entity.ColumnRT)
	assert.Empty(t, cmp.Diff([]entity.Value{entity.Number(1.5), entity.Missing(), entity.Number(2.25)}, rt))

	// undeclared numeric column is inferred as numbers
	mw, _ := tbl.Column("MW")
	assert.True(t, mw[0].IsNumber())
	assert.True(t, mw[1].IsMissing())
	assert.True(t, mw[2].IsMissing())

	// undeclared text column stays text
	assert.Equal(t, entity.String("x"), tbl.At(0, "Note"))
	assert.True(t, tbl.At(1, "Note").IsMissing())
}

func TestReadCSVRejectsNonNumericRT(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("Name,RT\na,fast\n"), entity.DefaultSchema())
	require.Error(t, err)
	assert.True(t, errors.Is(err, pkgerror.ErrSchemaValidation))
	assert.Equal(t, `RT: row 1: "fast" is not a number`, err.Error())
}

func TestReadCSVRejectsMalformed(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""), entity.DefaultSchema())
	assert.True(t, errors.Is(err, pkgerror.ErrSchemaValidation))

	_, err = ReadCSV(strings.NewReader("Name,Name\na,b\n"), entity.DefaultSchema())
	assert.True(t, errors.Is(err, pkgerror.ErrSchemaValidation))

	_, err = ReadCSV(strings.NewReader("Name,RT\na,1,extra\n"), entity.DefaultSchema())
	assert.True(t, errors.Is(err, pkgerror.ErrSchemaValidation))
}

func TestCSVRoundTrip(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader(sampleCSV), entity.DefaultSchema())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, tbl))
	assert.Contains(t, buf.String(), "methanol,,CO,,\n")

	again, err := ReadCSV(&buf, entity.DefaultSchema())
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(tbl.Rows(), again.Rows()))
}

func TestXLSXRoundTrip(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader(sampleCSV), entity.DefaultSchema())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, tbl))

	again, err := ReadXLSX(bytes.NewReader(buf.Bytes()), ReadOptions{Schema: entity.DefaultSchema()})
	require.NoError(t, err)
	assert.Equal(t, tbl.Columns(), again.Columns())
	assert.Empty(t, cmp.Diff(tbl.Rows(), again.Rows()))

	named, err := ReadXLSX(bytes.NewReader(buf.Bytes()), ReadOptions{Sheet: defaultSheet, Schema: entity.DefaultSchema()})
	require.NoError(t, err)
	assert.Equal(t, 3, named.NumRows())

	_, err = ReadXLSX(bytes.NewReader(buf.Bytes()), ReadOptions{Sheet: "nope"})
	assert.True(t, errors.Is(err, pkgerror.ErrConfiguration))
}

func TestWriteCreatesParentsAndDispatches(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader(sampleCSV), entity.DefaultSchema())
	require.NoError(t, err)

	dir := t.TempDir()
	for _, name := range []string{"nested/out.csv", "nested/deeper/out.xlsx"} {
		path := filepath.Join(dir, name)
		require.NoError(t, Write(path, tbl))

		back, err := Read(path, ReadOptions{Schema: entity.DefaultSchema()})
		require.NoError(t, err)
		assert.Equal(t, tbl.NumRows(), back.NumRows(), name)
	}

	err = Write(filepath.Join(dir, "out.parquet"), tbl)
	assert.True(t, errors.Is(err, pkgerror.ErrUnsupportedFormat))
	_, statErr := os.Stat(filepath.Join(dir, "out.parquet"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestReadMissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "missing.csv"), ReadOptions{})
	require.Error(t, err)
	assert.Equal(t, 1, pkgerror.ExitCode(err))
}
