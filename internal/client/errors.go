package client

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"
)

// GenericMessage is reported when the upstream gave no usable message
const GenericMessage = "the request could not be completed"

// APIError is a failed upstream call: a non-2xx answer, a timeout or a network failure
type APIError struct {
	StatusCode int      `json:"statusCode"`
	Messages   []string `json:"messages"`
	Kind       string   `json:"error,omitempty"`
	cause      error
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("api error: %s", strings.Join(e.Messages, "; "))
	}
	return fmt.Sprintf("api error %d: %s", e.StatusCode, strings.Join(e.Messages, "; "))
}

func (e *APIError) Unwrap() error { return e.cause }

// IsAPIError reports whether err carries an *APIError
func IsAPIError(err error) bool {
	var e *APIError
	return errors.As(err, &e)
}

// parseError builds an APIError from an error body shaped like
// {"statusCode": 400, "message": "..." | ["..."], "error": "Bad Request"}.
func parseError(status int, body []byte) *APIError {
	e := &APIError{StatusCode: status}

	if len(body) > 0 && gjson.ValidBytes(body) {
		res := gjson.ParseBytes(body)

		msg := res.Get("message")
		switch {
		case msg.IsArray():
			for _, m := range msg.Array() {
				if s := strings.TrimSpace(m.String()); s != "" {
					e.Messages = append(e.Messages, s)
				}
			}
		case msg.Type == gjson.String:
			if s := strings.TrimSpace(msg.String()); s != "" {
				e.Messages = []string{s}
			}
		}
		e.Kind = res.Get("error").String()
	}

	if len(e.Messages) == 0 {
		if e.Kind != "" {
			e.Messages = []string{e.Kind}
		} else {
			e.Messages = []string{GenericMessage}
		}
	}
	if e.Kind == "" {
		e.Kind = http.StatusText(status)
	}
	return e
}

func networkError(err error) *APIError {
	return &APIError{Messages: []string{GenericMessage}, cause: err}
}

func timeoutError(err error) *APIError {
	return &APIError{
		StatusCode: http.StatusGatewayTimeout,
		Messages:   []string{"the request timed out"},
		Kind:       http.StatusText(http.StatusGatewayTimeout),
		cause:      err,
	}
}
