package query

import "strings"

// FieldType decides how raw query-string values are parsed and which
// operators a field accepts.
type FieldType int

const (
	String FieldType = iota
	Number
	Bool
	Time
	ID
	StringArray
)

// Field describes one filterable/sortable attribute of a collection.
// Name is the public (JSON) name, Column the store column.
type Field struct {
	Name   string
	Column string
	Type   FieldType
}

func (f Field) allows(op Op) bool {
	switch f.Type {
	case Bool, ID, StringArray:
		return op == OpEq || op == OpIn
	default:
		return true
	}
}

func (f Field) sortable() bool { return f.Type != StringArray }

// Schema is the allow-list of fields for one collection. Keys that are not
// in the schema are rejected instead of being passed to the store.
type Schema struct {
	Collection string
	Table      string
	fields     map[string]Field
	top        map[string]struct{}
}

func NewSchema(collection, table string, fields ...Field) *Schema {
	s := &Schema{
		Collection: collection,
		Table:      table,
		fields:     make(map[string]Field, len(fields)),
		top:        make(map[string]struct{}, len(fields)),
	}
	for _, f := range fields {
		s.fields[f.Name] = f
		s.top[strings.SplitN(f.Name, ".", 2)[0]] = struct{}{}
	}
	return s
}

// WithRelations marks names that can be selected but not filtered or sorted.
func (s *Schema) WithRelations(names ...string) *Schema {
	for _, n := range names {
		s.top[n] = struct{}{}
	}
	return s
}

func (s *Schema) Field(name string) (Field, bool) {
	f, ok := s.fields[name]
	return f, ok
}

// Selectable reports whether name is a top-level attribute usable in select.
func (s *Schema) Selectable(name string) bool {
	_, ok := s.top[name]
	return ok
}
