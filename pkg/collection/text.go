package collection

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Text is a loosely-typed scalar rendered as a string.
//
// Strings decode as-is, numbers keep their literal, booleans become true/false and
// null becomes empty. Postman description objects ({"content": ...}) decode to
// their content.
type Text string

// String returns the text.
func (t Text) String() string {
	return string(t)
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		*t = ""
		return nil
	}

	switch data[0] {
	case 'n':
		*t = ""
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("failed to decode text: %w", err)
		}
		*t = Text(s)
	case '{':
		var desc struct {
			Content string `json:"content"`
		}
		if err := json.Unmarshal(data, &desc); err != nil {
			return fmt.Errorf("failed to decode text object: %w", err)
		}
		*t = Text(desc.Content)
	default:
		// numbers, booleans and arrays keep their literal form
		*t = Text(data)
	}
	return nil
}
