package collection

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalJSON = `{
  "info": {"name": "demo"},
  "variable": [{"key": "host", "value": "api.example.com"}],
  "item": [
    {
      "name": "Ping",
      "request": {
        "method": "GET",
        "url": {"raw": "{{host}}/ping", "path": ["ping"]},
        "header": []
      },
      "response": []
    }
  ]
}`

func TestParse_Minimal(t *testing.T) {
	coll, err := Parse([]byte(minimalJSON), FormatJSON)
	require.NoError(t, err)

	require.Len(t, coll.Variables, 1)
	assert.Equal(t, "host", coll.Variables[0].Key)
	assert.Equal(t, "api.example.com", coll.Variables[0].Value.String())

	require.Len(t, coll.Items, 1)
	item := coll.Items[0]
	assert.Equal(t, "Ping", item.Name)
	assert.Equal(t, "GET", item.Request.Method)
	assert.Equal(t, "{{host}}/ping", item.Request.URL.Raw)
	assert.Equal(t, []string{"ping"}, item.Request.URL.Path)
	assert.Nil(t, item.Request.Description)
	assert.Nil(t, item.Request.Body)
	assert.Empty(t, item.Responses)
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "not json", doc: `this is not a collection`},
		{name: "missing variable", doc: `{"item": []}`},
		{name: "missing item", doc: `{"variable": []}`},
		{name: "item is not an array", doc: `{"variable": [], "item": {}}`},
		{name: "item without request", doc: `{"variable": [], "item": [{"name": "x"}]}`},
		{name: "request without method", doc: `{"variable": [], "item": [{"name": "x", "request": {"url": "u"}}]}`},
		{name: "variable without key", doc: `{"variable": [{"value": "v"}], "item": []}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc), FormatJSON)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestParse_YAML(t *testing.T) {
	doc := `
variable:
  - key: token
    value: abc
item:
  - name: Users
    request:
      method: POST
      url: "{{base_url}}/users"
      body:
        raw: '{"name": "{{user}}"}'
    response:
      - code: 201
        status: Created
        body: '{"id": 1}'
`
	coll, err := Parse([]byte(doc), FormatYAML)
	require.NoError(t, err)

	require.Len(t, coll.Items, 1)
	req := coll.Items[0].Request
	assert.Equal(t, "{{base_url}}/users", req.URL.Raw)
	require.NotNil(t, req.Body)
	require.NotNil(t, req.Body.Raw)
	assert.Equal(t, `{"name": "{{user}}"}`, *req.Body.Raw)

	resp := coll.Items[0].Responses[0]
	assert.Equal(t, "201", resp.CodeText())
	assert.Equal(t, "Created", resp.StatusText())
}

func TestParse_YAMLMalformed(t *testing.T) {
	_, err := Parse([]byte("variable: [\n"), FormatYAML)
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestResponse_BodyPresence(t *testing.T) {
	tests := []struct {
		name        string
		doc         string
		wantHasBody bool
		wantBody    *string
		wantJSON    string
	}{
		{name: "absent", doc: `{"code": 200}`, wantHasBody: false},
		{name: "null", doc: `{"body": null}`, wantHasBody: true},
		{name: "string", doc: `{"body": "hello"}`, wantHasBody: true, wantBody: ptr("hello")},
		{name: "object", doc: `{"body": {"a": 1}}`, wantHasBody: true, wantJSON: `{"a": 1}`},
		{name: "number", doc: `{"body": 5}`, wantHasBody: true, wantJSON: `5`},
		{name: "not an object", doc: `"stray"`, wantHasBody: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r Response
			require.NoError(t, json.Unmarshal([]byte(tt.doc), &r))
			assert.Equal(t, tt.wantHasBody, r.HasBody)
			assert.Equal(t, tt.wantBody, r.Body)
			assert.Equal(t, tt.wantJSON, string(r.BodyJSON))
		})
	}
}

func TestBody_Shapes(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		wantRaw  *string
		wantJSON string
	}{
		{name: "string raw", doc: `{"mode": "raw", "raw": "{\"a\": 1}"}`, wantRaw: ptr(`{"a": 1}`)},
		{name: "null raw", doc: `{"raw": null}`},
		{name: "no raw", doc: `{"mode": "formdata", "formdata": []}`},
		{name: "number raw", doc: `{"raw": 123}`, wantJSON: `123`},
		{name: "object raw", doc: `{"raw": {"a": [1, 2]}}`, wantJSON: `{"a": [1, 2]}`},
		{name: "string body", doc: `"text"`},
		{name: "array body", doc: `[1, 2]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b Body
			require.NoError(t, json.Unmarshal([]byte(tt.doc), &b))
			assert.Equal(t, tt.wantRaw, b.Raw)
			assert.Equal(t, tt.wantJSON, string(b.RawJSON))
		})
	}
}

func TestParse_OddlyShapedBodies(t *testing.T) {
	doc := `{
  "variable": [],
  "item": [
    {"name": "A", "request": {"method": "POST", "url": "/a", "body": {"raw": 123}}},
    {"name": "B", "request": {"method": "POST", "url": "/b", "body": "text"}},
    {"name": "C", "request": {"method": "GET", "url": "/c"}, "response": [{"body": {"a": 1}}, "stray"]}
  ]
}`
	coll, err := Parse([]byte(doc), FormatJSON)
	require.NoError(t, err)
	require.Len(t, coll.Items, 3)

	assert.Equal(t, `123`, string(coll.Items[0].Request.Body.RawJSON))
	require.NotNil(t, coll.Items[1].Request.Body)
	assert.Nil(t, coll.Items[1].Request.Body.Raw)
	assert.Equal(t, `{"a": 1}`, string(coll.Items[2].Responses[0].BodyJSON))
	assert.False(t, coll.Items[2].Responses[1].HasBody)
}

func TestResponse_Defaults(t *testing.T) {
	var r Response
	require.NoError(t, json.Unmarshal([]byte(`{"code": null}`), &r))
	assert.Equal(t, "200", r.CodeText())
	assert.Equal(t, "OK", r.StatusText())
}

func TestURL_StringForm(t *testing.T) {
	var u URL
	require.NoError(t, json.Unmarshal([]byte(`"https://example.com/{{id}}"`), &u))
	assert.Equal(t, "https://example.com/{{id}}", u.Raw)
	assert.Nil(t, u.Path)
	assert.Nil(t, u.Query)
}

func TestText_Decoding(t *testing.T) {
	tests := []struct {
		doc  string
		want string
	}{
		{doc: `"plain"`, want: "plain"},
		{doc: `null`, want: ""},
		{doc: `42`, want: "42"},
		{doc: `1.50`, want: "1.50"},
		{doc: `true`, want: "true"},
		{doc: `{"content": "Described", "type": "text/plain"}`, want: "Described"},
	}

	for _, tt := range tests {
		t.Run(tt.doc, func(t *testing.T) {
			var got Text
			require.NoError(t, json.Unmarshal([]byte(tt.doc), &got))
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestText_NullPointer(t *testing.T) {
	var h Header
	require.NoError(t, json.Unmarshal([]byte(`{"key": "k", "value": null, "description": null}`), &h))
	assert.Equal(t, "", h.Value.String())
	assert.Nil(t, h.Description)
}

func TestFileLoader_Load(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "api.postman_collection.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(minimalJSON), 0644))

	coll, err := FileLoader{}.Load(jsonPath)
	require.NoError(t, err)
	assert.Len(t, coll.Items, 1)

	_, err = FileLoader{}.Load(filepath.Join(dir, "missing.json"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMalformed)
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatFromPath("c.yaml"))
	assert.Equal(t, FormatYAML, FormatFromPath("C.YML"))
	assert.Equal(t, FormatJSON, FormatFromPath("c.json"))
	assert.Equal(t, FormatJSON, FormatFromPath("collection"))
}

func ptr(s string) *string { return &s }
