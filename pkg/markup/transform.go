// Package markup renders collection entities as Markdown fragments.
//
// The value transformers in this file are pure functions; the section
// generators live in sections.go.
package markup

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf16"
	"unicode/utf8"
)

// Fenced code block languages picked by FormatRawData.
const (
	LangJSON = "json"
	LangXML  = "xml"
)

// markupEscaper backslash-escapes the characters Markdown tables would treat as syntax.
var markupEscaper = strings.NewReplacer(
	"{", `\{`,
	"}", `\}`,
	"[", `\[`,
	"]", `\]`,
)

// urlEncoder percent-encodes the characters a copied URL must not carry raw.
// The replacer works in a single pass, so the %XX sequences it introduces are
// never encoded again.
var urlEncoder = strings.NewReplacer(
	"%", "%25",
	"'", "%27",
	"{", "%7B",
	"}", "%7D",
	`"`, "%22",
	" ", "%20",
	"[", "%5B",
	"]", "%5D",
)

// Shorthand rewrites {{name}} placeholders as $name.
func Shorthand(s string) string {
	s = strings.ReplaceAll(s, "{{", "$")
	return strings.ReplaceAll(s, "}}", "")
}

// Clean decodes literal backslash escapes, rewrites placeholders, drops CRLF
// pairs and strips one pair of surrounding double quotes.
func Clean(s string) (string, error) {
	decoded, err := decodeEscapes(s)
	if err != nil {
		return "", err
	}

	out := strings.ReplaceAll(Shorthand(decoded), "\r\n", "")
	if strings.HasPrefix(out, `"`) && strings.HasSuffix(out, `"`) {
		if len(out) == 1 {
			return "", nil
		}
		return out[1 : len(out)-1], nil
	}
	return out, nil
}

// EscapeMarkup prefixes every {, }, [ and ] with a backslash.
func EscapeMarkup(value string) string {
	return markupEscaper.Replace(value)
}

// EncodeFullURL prepares a raw URL for display in a code block.
func EncodeFullURL(raw string) string {
	return urlEncoder.Replace(Shorthand(collapseSpace(raw)))
}

// collapseSpace replaces every run of whitespace with a single space.
func collapseSpace(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))

	inSpace := false
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if isSpace(r) {
			if !inSpace {
				sb.WriteByte(' ')
			}
			inSpace = true
		} else {
			sb.WriteString(s[i : i+size])
			inSpace = false
		}
		i += size
	}
	return sb.String()
}

// isSpace also treats the ASCII file/group/record/unit separators as whitespace.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

// decodeEscapes turns escape sequences written as literal text back into the
// characters they stand for. Unknown escapes are kept verbatim.
func decodeEscapes(s string) (string, error) {
	if !strings.Contains(s, `\`) {
		return s, nil
	}

	var sb strings.Builder
	sb.Grow(len(s))

	for i := 0; i < len(s); {
		if s[i] != '\\' {
			sb.WriteByte(s[i])
			i++
			continue
		}
		if i+1 >= len(s) {
			return "", fmt.Errorf("trailing backslash at offset %d", i)
		}

		c := s[i+1]
		switch c {
		case '\n':
			i += 2
		case '\\', '\'', '"':
			sb.WriteByte(c)
			i += 2
		case 'a':
			sb.WriteByte('\a')
			i += 2
		case 'b':
			sb.WriteByte('\b')
			i += 2
		case 'f':
			sb.WriteByte('\f')
			i += 2
		case 'n':
			sb.WriteByte('\n')
			i += 2
		case 'r':
			sb.WriteByte('\r')
			i += 2
		case 't':
			sb.WriteByte('\t')
			i += 2
		case 'v':
			sb.WriteByte('\v')
			i += 2
		case '0', '1', '2', '3', '4', '5', '6', '7':
			j := i + 1
			for j < len(s) && j < i+4 && s[j] >= '0' && s[j] <= '7' {
				j++
			}
			v, _ := strconv.ParseUint(s[i+1:j], 8, 32)
			sb.WriteRune(rune(v))
			i = j
		case 'x', 'u', 'U':
			width := map[byte]int{'x': 2, 'u': 4, 'U': 8}[c]
			r, err := parseHex(s, i+2, width)
			if err != nil {
				return "", err
			}
			i += 2 + width

			// join UTF-16 surrogate pairs written as two \u escapes
			if c == 'u' && utf16.IsSurrogate(r) && strings.HasPrefix(s[i:], `\u`) {
				if low, err := parseHex(s, i+2, 4); err == nil {
					if joined := utf16.DecodeRune(r, low); joined != utf8.RuneError {
						r = joined
						i += 6
					}
				}
			}
			if r > unicode.MaxRune {
				return "", fmt.Errorf("escape \\%c%s is out of range", c, s[i-width:i])
			}
			sb.WriteRune(r)
		default:
			sb.WriteByte('\\')
			sb.WriteByte(c)
			i += 2
		}
	}
	return sb.String(), nil
}

// parseHex reads exactly width hex digits starting at s[start].
func parseHex(s string, start, width int) (rune, error) {
	if start+width > len(s) {
		return 0, fmt.Errorf("truncated escape at offset %d", start-2)
	}
	v, err := strconv.ParseUint(s[start:start+width], 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid escape at offset %d: %w", start-2, err)
	}
	return rune(v), nil
}
