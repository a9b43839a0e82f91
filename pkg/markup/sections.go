package markup

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/blackcoderx/postman2md/pkg/collection"
)

// Renderer generates Markdown sections for collection entities.
// A Renderer is used by one conversion pass and is not safe for concurrent use.
type Renderer struct {
	log      *slog.Logger
	warnings int
}

// NewRenderer creates a renderer that reports progress and warnings to log.
// A nil logger discards them.
func NewRenderer(log *slog.Logger) *Renderer {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Renderer{log: log}
}

// Warnings returns how many recoverable problems the renderer has reported.
func (r *Renderer) Warnings() int {
	return r.warnings
}

// VariablesSection renders the collection variables as a table sorted by key.
func (r *Renderer) VariablesSection(vars []collection.Variable) string {
	sorted := slices.Clone(vars)
	slices.SortStableFunc(sorted, func(a, b collection.Variable) int {
		return strings.Compare(a.Key, b.Key)
	})

	var sb strings.Builder
	sb.WriteString("## Variables Used in this Collection\n\n")
	sb.WriteString("| Name | Description | Example |\n")
	sb.WriteString("| ---- | ----------- | ------- |\n")
	for _, v := range sorted {
		fmt.Fprintf(&sb, "| %s | | %s |\n", v.Key, v.Value)
	}
	return sb.String()
}

// RequestSection renders the heading, URL, headers, parameters and, for
// anything but GET, the payload of an item's request.
func (r *Renderer) RequestSection(item collection.Item) string {
	req := item.Request

	var sb strings.Builder
	fmt.Fprintf(&sb, "## **%s** %s\n\n", req.Method, item.Name)

	if req.Description != nil {
		fmt.Fprintf(&sb, "%s\n\n", req.Description)
	}

	sb.WriteString("### Request\n\n")
	sb.WriteString("#### Request URL\n\n")
	fmt.Fprintf(&sb, "```\n%s\n```\n\n", EncodeFullURL(req.URL.Raw))

	sb.WriteString("#### Request Headers\n\n")
	sb.WriteString("| Key | Value | Description |\n")
	sb.WriteString("| --- | ----- | ----------- |\n")
	for _, h := range req.Header {
		fmt.Fprintf(&sb, "| %s | %s | %s |\n", h.Key, EscapeMarkup(h.Value.String()), orBlank(h.Description))
	}
	sb.WriteString("\n")

	if params, ok := r.parametersTable(req.URL); ok {
		sb.WriteString(params)
		sb.WriteString("\n")
	}

	if req.Method != "GET" {
		lang, payload := r.payload(req.Body)
		sb.WriteString("#### Request Payload\n\n")
		fmt.Fprintf(&sb, "```%s\n%s\n```\n\n", lang, payload)
	} else {
		r.log.Debug("no payload for GET", "resource", item.Name)
	}

	return sb.String()
}

// parametersTable renders path placeholders and query-string entries.
// ok is false when the URL has neither.
func (r *Renderer) parametersTable(u collection.URL) (table string, ok bool) {
	var sb strings.Builder
	sb.WriteString("#### Request Parameters\n\n")
	sb.WriteString("| Parameter Type | Key | Value | Description |\n")
	sb.WriteString("| -------------- | --- | ----- | ----------- |\n")

	for _, segment := range u.Path {
		if strings.Contains(segment, "{{") {
			ok = true
			fmt.Fprintf(&sb, "| Path Parameter | %s | | |\n", Shorthand(segment))
		}
	}
	for _, q := range u.Query {
		ok = true
		fmt.Fprintf(&sb, "| Query String Parameter | %s | %s | %s |\n", q.Key, EscapeMarkup(q.Value.String()), orBlank(q.Description))
	}

	r.log.Debug("parameters", "table", sb.String(), "emitted", ok)
	return sb.String(), ok
}

// payload picks the fenced-block language and content for a request body.
// Stage one rewrites placeholders and escapes; if it fails the raw text is
// used verbatim. Stage two formats the cleaned text.
//
// A raw field holding a non-string JSON value enters stage one as its JSON
// text, the same form a string raw has after quoting.
func (r *Renderer) payload(body *collection.Body) (lang, content string) {
	if body == nil || (body.Raw == nil && body.RawJSON == nil) {
		return LangJSON, emptyObject
	}

	var raw, cleaned string
	var err error
	if body.Raw != nil {
		raw = *body.Raw
		cleaned, err = cleanPayload(raw)
	} else {
		raw = string(body.RawJSON)
		r.log.Debug("payload is not a string", "raw", raw)
		cleaned, err = Clean(raw)
	}
	if err != nil {
		r.log.Debug("payload kept verbatim", "error", err)
		return LangJSON, raw
	}
	if cleaned == "" {
		return LangJSON, emptyObject
	}
	return FormatRawData(cleaned)
}

// cleanPayload quotes the raw body as a JSON string literal and cleans it, which
// turns placeholders into shorthand and removes CRLF line breaks.
func cleanPayload(raw string) (string, error) {
	quoted, err := json.Marshal(raw)
	if err != nil {
		return "", fmt.Errorf("failed to quote payload: %w", err)
	}
	return Clean(string(quoted))
}

// ResponseSection renders the status and body of the item's first response.
func (r *Renderer) ResponseSection(item collection.Item) string {
	var sb strings.Builder
	sb.WriteString("### Response\n\n")
	if len(item.Responses) == 0 {
		return sb.String()
	}

	resp := item.Responses[0]
	if resp.Code == nil || resp.Status == nil {
		r.log.Debug("response without code or status", "resource", item.Name,
			"has_code", resp.Code != nil, "has_status", resp.Status != nil)
	}
	fmt.Fprintf(&sb, "#### Status: %s %s\n\n", resp.CodeText(), resp.StatusText())

	lang, body := LangJSON, " "
	switch {
	case !resp.HasBody:
		r.warnings++
		r.log.Warn("response body is missing", "resource", item.Name, "method", item.Request.Method)
	case resp.BodyJSON != nil:
		// only text bodies are parsed; other values are shown as written
		lang, body = LangXML, string(resp.BodyJSON)
	case resp.Body == nil:
		lang, body = FormatRawData(emptyObject)
	default:
		lang, body = FormatRawData(*resp.Body)
	}
	fmt.Fprintf(&sb, "```%s\n%s\n```\n\n", lang, body)

	return sb.String()
}

func orBlank(t *collection.Text) string {
	if t == nil {
		return " "
	}
	return t.String()
}
