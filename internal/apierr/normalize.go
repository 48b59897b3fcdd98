package apierr

import (
	"bytes"
	"encoding/json"
	"errors"
)

// Payload is one of ErrorPayload, DetailPayload, MessagePayload or RawPayload.
type Payload interface {
	payload()
}

// ErrorPayload is a body whose "error" field is set.
type ErrorPayload string

// DetailPayload is a body whose "detail" field is set and "error" is not.
type DetailPayload string

// MessagePayload is a body with only "message" set.
type MessagePayload string

// RawPayload is a body matching none of the known shapes.
type RawPayload struct {
	Body []byte
}

func (ErrorPayload) payload()   {}
func (DetailPayload) payload()  {}
func (MessagePayload) payload() {}
func (RawPayload) payload()     {}

// fields in priority order.
var fields = [...]struct {
	name string
	wrap func(string) Payload
}{
	{"error", func(s string) Payload { return ErrorPayload(s) }},
	{"detail", func(s string) Payload { return DetailPayload(s) }},
	{"message", func(s string) Payload { return MessagePayload(s) }},
}

// Classify maps a response body to its payload shape.
//
// A field counts as present unless it is missing, null, false, "" or a
// number equal to zero (0, -0, 0.0, 0e0).
// Non-string values (for example a list of validation messages) are kept as
// compact JSON text.
func Classify(body []byte) Payload {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(body, &obj); err != nil || obj == nil {
		return RawPayload{Body: body}
	}
	for _, f := range fields {
		raw, ok := obj[f.name]
		if !ok {
			continue
		}
		if text, ok := textOf(raw); ok {
			return f.wrap(text)
		}
	}
	return RawPayload{Body: body}
}

// Text returns the message carried by p. RawPayload carries none.
func Text(p Payload) (string, bool) {
	switch v := p.(type) {
	case ErrorPayload:
		return string(v), true
	case DetailPayload:
		return string(v), true
	case MessagePayload:
		return string(v), true
	default:
		return "", false
	}
}

// Normalize reduces a service failure to an *AppError. Errors that are not a
// *StatusError, or whose body matches no known shape, are returned as is.
func Normalize(err error) error {
	var se *StatusError
	if !errors.As(err, &se) {
		return err
	}
	msg, ok := Text(Classify(se.Body))
	if !ok {
		return err
	}
	return &AppError{Message: msg, Status: se.Status, cause: err}
}

// Message is the text a UI shows for err.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Message
	}
	return err.Error()
}

func textOf(raw json.RawMessage) (string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return "", false
	}
	switch c := raw[0]; {
	case c == 'n', c == 'f':
		return "", false
	case c == '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil || s == "" {
			return "", false
		}
		return s, true
	case c == '-' || (c >= '0' && c <= '9'):
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return "", false
		}
		if f, err := n.Float64(); err == nil && f == 0 {
			return "", false
		}
		return n.String(), true
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw), true
	}
	return buf.String(), true
}
