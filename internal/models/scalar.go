package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Scalar holds a JSON number or string as raw text.
// The backend encodes aggregates either way; callers decide how to parse.
type Scalar string

// UnmarshalJSON accepts numbers, strings and null
func (s *Scalar) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*s = ""
		return nil
	case data[0] == '"':
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = Scalar(str)
		return nil
	case data[0] == '-' || (data[0] >= '0' && data[0] <= '9'):
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*s = Scalar(n.String())
		return nil
	}
	return fmt.Errorf("scalar: unsupported JSON value %s", string(data))
}

// MarshalJSON writes the raw text back as a string
func (s Scalar) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(s))
}

// String returns the raw text
func (s Scalar) String() string {
	return string(s)
}
