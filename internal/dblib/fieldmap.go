package dblib

import "strings"

// FieldType is the DbLib field type code.
type FieldType int

const (
	FieldTypeKey  FieldType = 0 // resolves a library part
	FieldTypeText FieldType = 1
)

// FieldMap is one [FieldMapN] section. Its entries are encoded into a single
// Options value in a fixed key order.
type FieldMap struct {
	Table         string
	Field         string
	Type          FieldType
	ParameterName string
	VisibleOnAdd  bool
	AddMode       int
	RemoveMode    int
	UpdateMode    int
}

// Options encodes m as the pipe-delimited Options value.
func (m FieldMap) Options() string {
	parts := []string{
		"FieldName=" + m.Table + "." + m.Field,
		"TableNameOnly=" + m.Table,
		"FieldNameOnly=" + m.Field,
		"FieldType=" + itoa(int(m.Type)),
		"ParameterName=" + m.ParameterName,
		"VisibleOnAdd=" + boolWord(m.VisibleOnAdd),
		"AddMode=" + itoa(m.AddMode),
		"RemoveMode=" + itoa(m.RemoveMode),
		"UpdateMode=" + itoa(m.UpdateMode),
	}
	return strings.Join(parts, "|")
}

// boolWord renders booleans as the literal words the EDA tool expects.
func boolWord(b bool) string {
	if b {
		return "True"
	}
	return "False"
}
