package dashboard

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const (
	indent       = "  "
	unknownError = "Unknown error"
)

// FormatContent renders a value for a response area. Strings are shown
// verbatim. Raw JSON is re-encoded with a two space indent, keeping the key
// order it arrived in while numbers and strings get their canonical
// spelling. Anything else is marshalled with the same indent.
func FormatContent(content interface{}) string {
	switch v := content.(type) {
	case string:
		return v
	case json.RawMessage:
		return indentJSON(v)
	case []byte:
		return indentJSON(v)
	default:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", indent)
		if err := enc.Encode(v); err != nil {
			return fmt.Sprint(v)
		}
		return strings.TrimSuffix(buf.String(), "\n")
	}
}

// indentJSON falls back to the raw text when it is not a single JSON value
func indentJSON(raw []byte) string {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var buf bytes.Buffer
	if err := writeValue(dec, &buf, 0); err != nil {
		return string(raw)
	}
	if _, err := dec.Token(); err != io.EOF {
		return string(raw)
	}
	return buf.String()
}

// writeValue copies one value from dec to buf, token by token
func writeValue(dec *json.Decoder, buf *bytes.Buffer, depth int) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}

	delim, ok := tok.(json.Delim)
	if !ok {
		return writeScalar(buf, tok)
	}
	if delim != '{' && delim != '[' {
		return fmt.Errorf("unexpected %q", delim)
	}

	buf.WriteRune(rune(delim))
	n := 0
	for dec.More() {
		if n > 0 {
			buf.WriteByte(',')
		}
		newline(buf, depth+1)
		if delim == '{' {
			key, err := dec.Token()
			if err != nil {
				return err
			}
			if err := writeScalar(buf, key); err != nil {
				return err
			}
			buf.WriteString(": ")
		}
		if err := writeValue(dec, buf, depth+1); err != nil {
			return err
		}
		n++
	}

	end, err := dec.Token()
	if err != nil {
		return err
	}
	if n > 0 {
		newline(buf, depth)
	}
	buf.WriteRune(rune(end.(json.Delim)))
	return nil
}

func writeScalar(buf *bytes.Buffer, tok json.Token) error {
	switch v := tok.(type) {
	case nil:
		buf.WriteString("null")
	case bool:
		buf.WriteString(strconv.FormatBool(v))
	case json.Number:
		buf.WriteString(canonicalNumber(v))
	case string:
		enc := json.NewEncoder(buf)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(v); err != nil {
			return err
		}
		// Encode terminates with a newline
		buf.Truncate(buf.Len() - 1)
	default:
		return fmt.Errorf("unexpected token %v", tok)
	}
	return nil
}

// canonicalNumber spells n the way a float64 marshals, so 1.50 becomes 1.5
// and 1e2 becomes 100. Out of range literals are kept as sent.
func canonicalNumber(n json.Number) string {
	f, err := n.Float64()
	if err != nil {
		return n.String()
	}
	out, err := json.Marshal(f)
	if err != nil {
		return n.String()
	}
	return string(out)
}

func newline(buf *bytes.Buffer, depth int) {
	buf.WriteByte('\n')
	buf.WriteString(strings.Repeat(indent, depth))
}

// errorMessage extracts the error field of a decoded failure body, falling
// back to "Unknown error" when the field is absent or empty
func errorMessage(body interface{}) string {
	obj, ok := body.(map[string]interface{})
	if !ok {
		return unknownError
	}

	switch v := obj["error"].(type) {
	case nil:
		return unknownError
	case string:
		if v == "" {
			return unknownError
		}
		return v
	case bool:
		if !v {
			return unknownError
		}
		return "true"
	case float64:
		if v == 0 {
			return unknownError
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		out, err := json.Marshal(v)
		if err != nil {
			return unknownError
		}
		return string(out)
	}
}
