package client

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"sort"
)

// Attachment is a binary file sent inside a multipart body
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// encodeMultipart writes fields as form data. Slices become repeated "key[]"
// parts, attachments become file parts and nil values are skipped.
func encodeMultipart(fields map[string]any) (*encodedBody, error) {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, k := range keys {
		switch v := fields[k].(type) {
		case nil:
			continue
		case []any:
			for _, el := range v {
				if err := writePart(w, k+"[]", el); err != nil {
					return nil, err
				}
			}
		case []string:
			for _, el := range v {
				if err := writePart(w, k+"[]", el); err != nil {
					return nil, err
				}
			}
		case []Attachment:
			for _, el := range v {
				if err := writePart(w, k+"[]", el); err != nil {
					return nil, err
				}
			}
		default:
			if err := writePart(w, k, v); err != nil {
				return nil, err
			}
		}
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to close multipart body: %w", err)
	}
	return &encodedBody{data: buf.Bytes(), contentType: w.FormDataContentType()}, nil
}

func writePart(w *multipart.Writer, name string, v any) error {
	switch a := v.(type) {
	case Attachment:
		return writeFile(w, name, a)
	case *Attachment:
		if a == nil {
			return nil
		}
		return writeFile(w, name, *a)
	default:
		if err := w.WriteField(name, fmt.Sprint(v)); err != nil {
			return fmt.Errorf("failed to write field %s: %w", name, err)
		}
		return nil
	}
}

func writeFile(w *multipart.Writer, name string, a Attachment) error {
	ct := a.ContentType
	if ct == "" {
		ct = "application/octet-stream"
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, name, a.Filename))
	h.Set("Content-Type", ct)

	part, err := w.CreatePart(h)
	if err != nil {
		return fmt.Errorf("failed to create file part %s: %w", name, err)
	}
	if _, err := part.Write(a.Data); err != nil {
		return fmt.Errorf("failed to write file part %s: %w", name, err)
	}
	return nil
}
