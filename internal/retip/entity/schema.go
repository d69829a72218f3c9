package entity

// Column names every input table is checked against.
const (
	ColumnName      = "Name"
	ColumnRT        = "RT"
	ColumnPubChemID = "PubChem CID"
	ColumnSMILES    = "SMILES"
)

// FieldType is the logical type of a column.
type FieldType int

const (
	FieldAny FieldType = iota
	FieldString
	FieldNumber
)

func (f FieldType) String() string {
	switch f {
	case FieldString:
		return "string"
	case FieldNumber:
		return "number"
	default:
		return "any"
	}
}

// Field describes one named column.
type Field struct {
	Name     string
	Type     FieldType
	Required bool
}

// Schema is the explicit description of an input table.
type Schema struct {
	Fields []Field
	// Identifiers lists columns of which at least one must be present.
	Identifiers []string
}

// DefaultSchema returns the retention-time input schema.
func DefaultSchema() Schema {
	return Schema{
		Fields: []Field{
			{Name: ColumnName, Type: FieldString, Required: true},
			{Name: ColumnRT, Type: FieldNumber, Required: true},
			{Name: ColumnPubChemID, Type: FieldAny},
			{Name: ColumnSMILES, Type: FieldString},
		},
		Identifiers: []string{ColumnPubChemID, ColumnSMILES},
	}
}

// Field returns the field named name.
func (s Schema) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// TypeOf returns the declared type of a column, FieldAny for undeclared ones.
func (s Schema) TypeOf(name string) FieldType {
	f, _ := s.Field(name)
	return f.Type
}
