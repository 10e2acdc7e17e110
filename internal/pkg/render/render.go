package render

import (
	"encoding/json"
	"fmt"
	"html"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
)

// Negotiated writes data in the representation the client asked for:
// JSON (the default), line-oriented plaintext, or a minimal HTML list
// with every value escaped. Only read endpoints go through here;
// mutations always answer JSON.
func Negotiated(c *gin.Context, code int, data any) {
	switch c.NegotiateFormat(gin.MIMEJSON, gin.MIMEPlain, gin.MIMEHTML) {
	case gin.MIMEPlain:
		c.String(code, asText(data))
	case gin.MIMEHTML:
		c.Data(code, "text/html; charset=utf-8", []byte(asHTML(data)))
	default:
		c.JSON(code, data)
	}
}

func asText(data any) string {
	var b strings.Builder
	for _, item := range flatten(data) {
		for _, kv := range item {
			fmt.Fprintf(&b, "%s: %s\n", kv[0], kv[1])
		}
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func asHTML(data any) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html><body>\n")
	for _, item := range flatten(data) {
		b.WriteString("<ul>\n")
		for _, kv := range item {
			fmt.Fprintf(&b, "<li><strong>%s</strong>: %s</li>\n",
				html.EscapeString(kv[0]), html.EscapeString(kv[1]))
		}
		b.WriteString("</ul>\n")
	}
	b.WriteString("</body></html>\n")
	return b.String()
}

// flatten reduces data to one key/value table per object, going through
// JSON so the output matches the JSON representation field for field.
func flatten(data any) [][][2]string {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil
	}

	var list []map[string]any
	if err := json.Unmarshal(raw, &list); err != nil {
		var single map[string]any
		if err := json.Unmarshal(raw, &single); err != nil {
			return nil
		}
		list = []map[string]any{single}
	}

	out := make([][][2]string, 0, len(list))
	for _, obj := range list {
		keys := make([]string, 0, len(obj))
		for k := range obj {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		item := make([][2]string, 0, len(keys))
		for _, k := range keys {
			item = append(item, [2]string{k, stringify(obj[k])})
		}
		out = append(out, item)
	}
	return out
}

func stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case map[string]any, []any:
		raw, _ := json.Marshal(val)
		return string(raw)
	default:
		return fmt.Sprintf("%v", val)
	}
}
