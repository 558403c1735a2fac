package dashboard

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatContent(t *testing.T) {
	assert.Equal(t, "plain text", FormatContent("plain text"))
	assert.Equal(t, "{\n  \"a\": 1\n}", FormatContent(json.RawMessage(`{"a": 1}`)))
	assert.Equal(t, "{\n  \"a\": 1\n}", FormatContent([]byte("  {\"a\":1}\n")))
	assert.Equal(t, "{\n  \"k\": \"v\"\n}", FormatContent(map[string]string{"k": "v"}))
	assert.Equal(t, "{}", FormatContent(json.RawMessage(`{}`)))
	assert.Equal(t, "not json", FormatContent(json.RawMessage(`not json`)))
	assert.Equal(t, "[\n  1,\n  2\n]", FormatContent([]int{1, 2}))
}

func TestFormatContentCanonicalSpelling(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{`{"a": 1.50, "b": "\u00e9\/"}`, "{\n  \"a\": 1.5,\n  \"b\": \"é/\"\n}"},
		{`{"z": 1e2, "a": -0.25E1}`, "{\n  \"z\": 100,\n  \"a\": -2.5\n}"},
		{`{"tag": "<b>&"}`, "{\n  \"tag\": \"<b>&\"\n}"},
		{`{"n": {"deep": [true, null, []]}, "e": {}}`, "{\n  \"n\": {\n    \"deep\": [\n      true,\n      null,\n      []\n    ]\n  },\n  \"e\": {}\n}"},
		{`[]`, "[]"},
		{`{"a": 1} {"b": 2}`, `{"a": 1} {"b": 2}`},
		{`{"a": }`, `{"a": }`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatContent(json.RawMessage(tt.raw)), tt.raw)
	}
}

func TestErrorMessage(t *testing.T) {
	cases := []struct {
		body interface{}
		want string
	}{
		{map[string]interface{}{"error": "not found"}, "not found"},
		{map[string]interface{}{"error": ""}, unknownError},
		{map[string]interface{}{"error": nil}, unknownError},
		{map[string]interface{}{"error": false}, unknownError},
		{map[string]interface{}{"error": true}, "true"},
		{map[string]interface{}{"error": 0.0}, unknownError},
		{map[string]interface{}{"error": 404.0}, "404"},
		{map[string]interface{}{"error": map[string]interface{}{"code": "E1"}}, `{"code":"E1"}`},
		{map[string]interface{}{}, unknownError},
		{[]interface{}{1.0}, unknownError},
		{nil, unknownError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, errorMessage(tc.body))
	}
}
