package filter

import (
	"net/url"
	"strings"
)

// Param is a single query key/value pair
type Param struct {
	Key   string
	Value string
}

// QueryParameters is an ordered multi-map of query parameters.
// Encode keeps insertion order, unlike url.Values.
type QueryParameters []Param

// Add returns q with a new pair appended
func (q QueryParameters) Add(key, value string) QueryParameters {
	return append(q, Param{Key: key, Value: value})
}

// Get returns the first value stored under key
func (q QueryParameters) Get(key string) (string, bool) {
	for _, p := range q {
		if p.Key == key {
			return p.Value, true
		}
	}
	return "", false
}

// Values returns every value stored under key
func (q QueryParameters) Values(key string) []string {
	var out []string
	for _, p := range q {
		if p.Key == key {
			out = append(out, p.Value)
		}
	}
	return out
}

// Has reports whether key is present
func (q QueryParameters) Has(key string) bool {
	_, ok := q.Get(key)
	return ok
}

// Encode serializes the parameters as a URL query string
func (q QueryParameters) Encode() string {
	var sb strings.Builder
	for i, p := range q {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(p.Key))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(p.Value))
	}
	return sb.String()
}
