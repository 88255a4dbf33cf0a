package client

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Params maps placeholder names (without the colon) to their values.
// Values must be strings or integers.
type Params map[string]interface{}

// BuildPath substitutes :name placeholders in a path template.
//
// A placeholder is a colon followed by a maximal run of identifier characters
// ([A-Za-z0-9_]); matching is whole-token, so :id can never substitute inside
// :identifier. Params whose name does not appear in the template are ignored.
// Unresolved placeholders are left verbatim: a literal :name surviving into
// the URL flags a missing-parameter bug at the caller and will 404 reliably
// instead of silently hitting a wrong resource.
func BuildPath(template string, params Params) string {
	var b strings.Builder
	b.Grow(len(template))

	for i := 0; i < len(template); {
		if template[i] != ':' {
			b.WriteByte(template[i])
			i++
			continue
		}
		j := i + 1
		for j < len(template) && isIdentChar(template[j]) {
			j++
		}
		if j == i+1 { // bare colon, not a placeholder
			b.WriteByte(':')
			i++
			continue
		}
		name := template[i+1 : j]
		if val, ok := params[name]; ok {
			b.WriteString(stringify(val))
		} else {
			b.WriteString(template[i:j])
		}
		i = j
	}
	return b.String()
}

func isIdentChar(c byte) bool {
	return c == '_' ||
		('a' <= c && c <= 'z') ||
		('A' <= c && c <= 'Z') ||
		('0' <= c && c <= '9')
}

func stringify(val interface{}) string {
	switch v := val.(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		return fmt.Sprint(v)
	}
}

// appendQuery appends an encoded query string to a built path. url.Values
// encodes in sorted key order, which keeps cache keys canonical.
func appendQuery(path string, query url.Values) string {
	if len(query) == 0 {
		return path
	}
	return path + "?" + query.Encode()
}
