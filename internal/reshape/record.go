package reshape

import (
	"bytes"
	"encoding/json"
)

// Field is one named numeric value of a record
type Field struct {
	Key   string
	Value float64
}

// Record is a flat chart/table row: a label plus named numeric fields.
// It marshals to a single JSON object such as {"label":"FAC B","t_inscritos":120}.
type Record struct {
	LabelKey string
	Label    string
	Fields   []Field
}

// Set stores value under key, replacing an existing field of the same name
func (r *Record) Set(key string, value float64) {
	for i := range r.Fields {
		if r.Fields[i].Key == key {
			r.Fields[i].Value = value
			return
		}
	}
	r.Fields = append(r.Fields, Field{Key: key, Value: value})
}

// Value returns the field stored under key
func (r Record) Value(key string) (float64, bool) {
	for _, f := range r.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return 0, false
}

// Keys returns the field names in order
func (r Record) Keys() []string {
	keys := make([]string, len(r.Fields))
	for i, f := range r.Fields {
		keys[i] = f.Key
	}
	return keys
}

func (r Record) labelKey() string {
	if r.LabelKey == "" {
		return LabelKey
	}
	return r.LabelKey
}

// MarshalJSON writes the record as one object, label first, fields in order
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	if err := writeMember(&buf, r.labelKey(), r.Label); err != nil {
		return nil, err
	}
	for _, f := range r.Fields {
		if f.Key == r.labelKey() {
			continue
		}
		buf.WriteByte(',')
		if err := writeMember(&buf, f.Key, f.Value); err != nil {
			return nil, err
		}
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeMember(buf *bytes.Buffer, key string, value any) error {
	k, err := json.Marshal(key)
	if err != nil {
		return err
	}
	v, err := json.Marshal(value)
	if err != nil {
		return err
	}
	buf.Write(k)
	buf.WriteByte(':')
	buf.Write(v)
	return nil
}
