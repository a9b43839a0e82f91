package markup

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode/utf16"
)

const (
	emptyObject = "{}"
	indentUnit  = "  "
)

// FormatRawData pretty-prints JSON payloads with two-space indentation.
// Anything that is not a single JSON value is returned unchanged and labelled xml.
//
// Numbers are written in canonical form: integers as digits, other numbers as
// the shortest decimal that round-trips, with a ".0" suffix on integral values
// and exponent form outside 1e-4 <= |x| < 1e16. The bare NaN, Infinity and
// -Infinity tokens are accepted.
func FormatRawData(data string) (lang, out string) {
	pretty, err := indentJSON(data)
	if err != nil {
		return LangXML, data
	}
	return LangJSON, pretty
}

// member is one key/value pair of a decoded object. Objects are kept as ordered
// member lists so the output follows the input's key order.
type member struct {
	key   string
	value any
}

type object []member

// nonFinite is a NaN or infinity token, written back as-is.
type nonFinite string

// nonFiniteMark prefixes the string a non-finite token is swapped for while
// decoding. U+FDD0 is a noncharacter and never appears in real payloads;
// inputs that contain it anyway do not get non-finite support.
const nonFiniteMark = "\ufdd0"

var nonFiniteTokens = []string{"-Infinity", "Infinity", "NaN"}

// markNonFinite replaces NaN and infinity tokens outside strings with marked
// strings, so the standard decoder accepts them.
func markNonFinite(data string) string {
	if strings.Contains(data, nonFiniteMark) || strings.Contains(strings.ToLower(data), `\ufdd0`) {
		return data
	}

	var sb strings.Builder
	inString := false
	for i := 0; i < len(data); i++ {
		c := data[i]
		if inString {
			sb.WriteByte(c)
			switch c {
			case '\\':
				if i+1 < len(data) {
					i++
					sb.WriteByte(data[i])
				}
			case '"':
				inString = false
			}
			continue
		}
		if c == '"' {
			inString = true
			sb.WriteByte(c)
			continue
		}

		matched := false
		for _, tok := range nonFiniteTokens {
			if strings.HasPrefix(data[i:], tok) {
				sb.WriteString(`"` + nonFiniteMark + tok + `"`)
				i += len(tok) - 1
				matched = true
				break
			}
		}
		if !matched {
			sb.WriteByte(c)
		}
	}
	return sb.String()
}

func indentJSON(data string) (string, error) {
	data = markNonFinite(data)
	if !json.Valid([]byte(data)) {
		return "", fmt.Errorf("payload is not valid JSON")
	}

	dec := json.NewDecoder(strings.NewReader(data))
	dec.UseNumber()

	v, err := decodeOrdered(dec)
	if err != nil {
		return "", err
	}
	if _, err := dec.Token(); err != io.EOF {
		return "", fmt.Errorf("unexpected data after JSON value")
	}

	var sb strings.Builder
	writeValue(&sb, v, 0)
	return sb.String(), nil
}

func decodeOrdered(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	if str, ok := tok.(string); ok {
		if name, found := strings.CutPrefix(str, nonFiniteMark); found {
			return nonFinite(name), nil
		}
		return str, nil
	}

	delim, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}

	switch delim {
	case '{':
		obj := object{}
		seen := map[string]int{}
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, ok := keyTok.(string)
			if !ok || strings.HasPrefix(key, nonFiniteMark) {
				return nil, fmt.Errorf("unexpected object key %v", keyTok)
			}
			value, err := decodeOrdered(dec)
			if err != nil {
				return nil, err
			}
			// a repeated key keeps its first position and takes the last value
			if idx, dup := seen[key]; dup {
				obj[idx].value = value
				continue
			}
			seen[key] = len(obj)
			obj = append(obj, member{key: key, value: value})
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return obj, nil
	case '[':
		arr := []any{}
		for dec.More() {
			value, err := decodeOrdered(dec)
			if err != nil {
				return nil, err
			}
			arr = append(arr, value)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return arr, nil
	default:
		return nil, fmt.Errorf("unexpected delimiter %v", delim)
	}
}

func writeValue(sb *strings.Builder, v any, depth int) {
	switch val := v.(type) {
	case object:
		if len(val) == 0 {
			sb.WriteString(emptyObject)
			return
		}
		sb.WriteString("{\n")
		for i, m := range val {
			if i > 0 {
				sb.WriteString(",\n")
			}
			sb.WriteString(strings.Repeat(indentUnit, depth+1))
			writeString(sb, m.key)
			sb.WriteString(": ")
			writeValue(sb, m.value, depth+1)
		}
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(indentUnit, depth))
		sb.WriteString("}")
	case []any:
		if len(val) == 0 {
			sb.WriteString("[]")
			return
		}
		sb.WriteString("[\n")
		for i, item := range val {
			if i > 0 {
				sb.WriteString(",\n")
			}
			sb.WriteString(strings.Repeat(indentUnit, depth+1))
			writeValue(sb, item, depth+1)
		}
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(indentUnit, depth))
		sb.WriteString("]")
	case string:
		writeString(sb, val)
	case json.Number:
		sb.WriteString(formatNumber(val.String()))
	case nonFinite:
		sb.WriteString(string(val))
	case bool:
		if val {
			sb.WriteString("true")
		} else {
			sb.WriteString("false")
		}
	case nil:
		sb.WriteString("null")
	}
}

// writeString quotes s using only printable ASCII; everything else is written
// as a \uXXXX escape, with surrogate pairs above the BMP.
func writeString(sb *strings.Builder, s string) {
	const hex = "0123456789abcdef"

	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		case '\b':
			sb.WriteString(`\b`)
		case '\f':
			sb.WriteString(`\f`)
		default:
			if r >= ' ' && r <= '~' {
				sb.WriteRune(r)
				continue
			}
			units := []rune{r}
			if r > 0xFFFF {
				hi, lo := utf16.EncodeRune(r)
				units = []rune{hi, lo}
			}
			for _, u := range units {
				sb.WriteString(`\u`)
				sb.WriteByte(hex[u>>12&0xF])
				sb.WriteByte(hex[u>>8&0xF])
				sb.WriteByte(hex[u>>4&0xF])
				sb.WriteByte(hex[u&0xF])
			}
		}
	}
	sb.WriteByte('"')
}

// formatNumber rewrites a JSON number literal in canonical form.
func formatNumber(lit string) string {
	if !strings.ContainsAny(lit, ".eE") {
		if lit == "-0" {
			return "0"
		}
		return lit
	}
	// out-of-range literals come back as an infinity, like any float parser
	f, _ := strconv.ParseFloat(lit, 64)
	return formatFloat(f)
}

// formatFloat writes f with the shortest round-trip digits. Integral values get
// a ".0" suffix; decimal exponents below -4 or from 16 up use exponent form.
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}

	sci := strconv.FormatFloat(f, 'e', -1, 64)
	mantissa, expText, _ := strings.Cut(sci, "e")
	exp, _ := strconv.Atoi(expText)

	sign := ""
	if rest, ok := strings.CutPrefix(mantissa, "-"); ok {
		sign, mantissa = "-", rest
	}
	digits := strings.Replace(mantissa, ".", "", 1)

	var out string
	switch {
	case exp < -4 || exp >= 16:
		out = digits[:1]
		if len(digits) > 1 {
			out += "." + digits[1:]
		}
		out += fmt.Sprintf("e%+03d", exp)
	case exp < 0:
		out = "0." + strings.Repeat("0", -exp-1) + digits
	case len(digits) <= exp+1:
		out = digits + strings.Repeat("0", exp+1-len(digits)) + ".0"
	default:
		out = digits[:exp+1] + "." + digits[exp+1:]
	}
	return sign + out
}
