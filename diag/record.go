package diag

import (
	"bytes"
	"encoding/json"
)

// Category groups the diagnostic operations.
type Category string

const (
	CategorySystem  Category = "system"
	CategoryService Category = "service"
	CategoryProcess Category = "process"
	CategoryNetwork Category = "network"
	CategoryLogs    Category = "logs"
	CategoryStorage Category = "storage"
)

// Categories returns the closed category set in declaration order.
func Categories() []Category {
	return []Category{
		CategorySystem, CategoryService, CategoryProcess,
		CategoryNetwork, CategoryLogs, CategoryStorage,
	}
}

// unknown is the marker for a field whose value could not be determined.
// It serializes as null in JSON and as the literal "unknown" in tables.
type unknown struct{}

func (unknown) MarshalJSON() ([]byte, error) { return []byte("null"), nil }

// Unknown marks a field value that was unavailable, never silently absent.
var Unknown = unknown{}

// IsUnknown reports whether v is the unknown marker.
func IsUnknown(v any) bool {
	_, ok := v.(unknown)
	return ok
}

// Field is one named value inside a record. Values are scalars, the Unknown
// marker, []string, nested Fields, or []Fields (a row list).
type Field struct {
	Name  string
	Value any
}

// Fields is an insertion-ordered field mapping.
type Fields []Field

// Set appends a field, replacing an existing one of the same name in place.
func (f *Fields) Set(name string, value any) {
	for i := range *f {
		if (*f)[i].Name == name {
			(*f)[i].Value = value
			return
		}
	}
	*f = append(*f, Field{Name: name, Value: value})
}

// Get returns the value stored under name.
func (f Fields) Get(name string) (any, bool) {
	for _, fld := range f {
		if fld.Name == name {
			return fld.Value, true
		}
	}
	return nil, false
}

// Names returns the field names in declaration order.
func (f Fields) Names() []string {
	names := make([]string, 0, len(f))
	for _, fld := range f {
		names = append(names, fld.Name)
	}
	return names
}

// MarshalJSON emits a JSON object with keys in declaration order.
func (f Fields) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, fld := range f {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(fld.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := marshalValue(fld.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func marshalValue(v any) ([]byte, error) {
	switch val := v.(type) {
	case nil, unknown:
		return []byte("null"), nil
	case Fields:
		return val.MarshalJSON()
	case []Fields:
		var buf bytes.Buffer
		buf.WriteByte('[')
		for i, row := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			b, err := row.MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf.Write(b)
		}
		buf.WriteByte(']')
		return buf.Bytes(), nil
	default:
		return json.Marshal(v)
	}
}

// Record is the normalized result of one diagnostic operation. Op and
// Category are carried for dispatch and rendering; only Fields serialize.
type Record struct {
	Op       string
	Category Category
	Fields   Fields
}

// NewRecord builds an empty record for the given operation.
func NewRecord(op string, category Category) *Record {
	return &Record{Op: op, Category: category}
}

// Set stores a field value and returns the record for chaining.
func (r *Record) Set(name string, value any) *Record {
	r.Fields.Set(name, value)
	return r
}

// Get returns the value stored under name.
func (r *Record) Get(name string) (any, bool) { return r.Fields.Get(name) }

// MarshalJSON serializes the field mapping only.
func (r *Record) MarshalJSON() ([]byte, error) { return r.Fields.MarshalJSON() }
