package usecase

import (
	"errors"
	"fmt"
	"strings"

	"github.com/oloBion/retip/internal/pkg/pkgerror"
	"github.com/oloBion/retip/internal/retip/entity"
	"github.com/oloBion/retip/internal/retip/tableio"
)

// Load reads a record table from path and validates it against the default schema.
func Load(path, sheet string) (*entity.Table, error) {
	schema := entity.DefaultSchema()

	t, err := tableio.Read(path, tableio.ReadOptions{Sheet: sheet, Schema: schema})
	if err != nil {
		return nil, err
	}

	if err := ValidateTable(t, schema); err != nil {
		return nil, err
	}
	return t, nil
}

// ValidateTable checks required columns, the identifier set and declared
// column types. Tables built in memory are checked the same way as loaded ones.
func ValidateTable(t *entity.Table, schema entity.Schema) error {
	if t == nil {
		return pkgerror.NewServer(errors.New("nil record table"))
	}

	for _, f := range schema.Fields {
		if f.Required && !t.HasColumn(f.Name) {
			return pkgerror.NewSchemaValidation(f.Name, "column was not found")
		}
	}

	if len(schema.Identifiers) > 0 {
		found := false
		for _, id := range schema.Identifiers {
			if t.HasColumn(id) {
				found = true
				break
			}
		}
		if !found {
			return pkgerror.NewSchemaValidation(
				strings.Join(schema.Identifiers, "|"),
				"no identifier column was found",
			)
		}
	}

	for _, f := range schema.Fields {
		col, ok := t.Column(f.Name)
		if !ok {
			continue
		}
		for i, v := range col {
			if v.IsMissing() {
				continue
			}
			if f.Type == entity.FieldNumber && !v.IsNumber() {
				return pkgerror.NewSchemaValidation(f.Name, fmt.Sprintf("row %d: %q is not a number", i+1, v.Text()))
			}
		}
	}

	return nil
}
