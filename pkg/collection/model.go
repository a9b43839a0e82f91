// Package collection decodes Postman 2.1 collection documents into the subset of
// entities the Markdown converter understands.
//
// Optional fields are resolved while decoding: absent or null values become nil
// pointers or empty slices, so renderers never probe raw maps.
package collection

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Collection is the root document.
type Collection struct {
	Variables []Variable `json:"variable"`
	Items     []Item     `json:"item"`
}

// Variable is a collection-level variable. Postman stores no description for it.
type Variable struct {
	Key   string `json:"key"`
	Value Text   `json:"value"`
}

// Item is one named request with its captured responses.
type Item struct {
	Name      string     `json:"name"`
	Request   Request    `json:"request"`
	Responses []Response `json:"response"`
}

// Request describes the HTTP call of an item.
type Request struct {
	Method      string   `json:"method"`
	URL         URL      `json:"url"`
	Header      []Header `json:"header"`
	Description *Text    `json:"description"`
	Body        *Body    `json:"body"`
}

// Header is a request header. Value may contain {{var}} placeholders.
type Header struct {
	Key         string `json:"key"`
	Value       Text   `json:"value"`
	Description *Text  `json:"description"`
}

// QueryParam is one query-string entry of a URL.
type QueryParam struct {
	Key         string `json:"key"`
	Value       Text   `json:"value"`
	Description *Text  `json:"description"`
}

// URL is the request address. Raw is the literal URL as typed in Postman.
type URL struct {
	Raw   string       `json:"raw"`
	Path  []string     `json:"path"`
	Query []QueryParam `json:"query"`
}

// UnmarshalJSON accepts both the object form and the bare string form of a URL.
func (u *URL) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("failed to decode url: %w", err)
		}
		*u = URL{Raw: raw}
		return nil
	}

	type plain URL
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("failed to decode url: %w", err)
	}
	*u = URL(p)
	return nil
}

// Body is a request payload. Raw is nil when the body carries no raw text,
// e.g. form-data or file bodies. A raw field holding a non-string JSON value is
// kept in RawJSON instead.
type Body struct {
	Raw     *string
	RawJSON json.RawMessage
}

// UnmarshalJSON reads the raw field of a body object. Bodies that are not
// objects decode as a body without raw text.
func (b *Body) UnmarshalJSON(data []byte) error {
	*b = Body{}
	if !isObject(data) {
		return nil
	}

	var fields struct {
		Raw json.RawMessage `json:"raw"`
	}
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("failed to decode body: %w", err)
	}

	var err error
	b.Raw, b.RawJSON, err = splitString(fields.Raw)
	return err
}

// Response is a captured example response.
type Response struct {
	Code   *Text
	Status *Text
	// Body is the body text; BodyJSON holds a body that is not a JSON string.
	Body     *string
	BodyJSON json.RawMessage

	// HasBody reports whether the body field was present at all,
	// which separates a null body from a missing one.
	HasBody bool
}

// UnmarshalJSON records whether the body field was present. Responses that
// are not objects decode as a response without code, status or body.
func (r *Response) UnmarshalJSON(data []byte) error {
	*r = Response{}
	if !isObject(data) {
		return nil
	}

	var p struct {
		Code   *Text           `json:"code"`
		Status *Text           `json:"status"`
		Body   json.RawMessage `json:"body"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	_, r.HasBody = fields["body"]

	body, bodyJSON, err := splitString(p.Body)
	if err != nil {
		return err
	}
	r.Code, r.Status, r.Body, r.BodyJSON = p.Code, p.Status, body, bodyJSON
	return nil
}

func isObject(data []byte) bool {
	data = bytes.TrimSpace(data)
	return len(data) > 0 && data[0] == '{'
}

// splitString separates a JSON string from any other JSON value. Null and
// absent values yield neither.
func splitString(raw json.RawMessage) (*string, json.RawMessage, error) {
	raw = bytes.TrimSpace(raw)
	switch {
	case len(raw) == 0 || bytes.Equal(raw, []byte("null")):
		return nil, nil, nil
	case raw[0] == '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, nil, fmt.Errorf("failed to decode string: %w", err)
		}
		return &s, nil, nil
	default:
		return nil, bytes.Clone(raw), nil
	}
}

// CodeText returns the status code, defaulting to 200.
func (r Response) CodeText() string {
	if r.Code == nil {
		return "200"
	}
	return r.Code.String()
}

// StatusText returns the status phrase, defaulting to OK.
func (r Response) StatusText() string {
	if r.Status == nil {
		return "OK"
	}
	return r.Status.String()
}
