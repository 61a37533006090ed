package cookie

import "strings"

// Jar maps cookie names to values for a single request.
type Jar map[string]string

// Get returns the value for name, or an empty string.
func (j Jar) Get(name string) string {
	return j[name]
}

// Parse splits a raw Cookie header into name/value pairs.
// Whitespace around separators is ignored, empty and malformed segments are
// dropped, and the first occurrence of a name wins. It never fails.
func Parse(header string) Jar {
	jar := make(Jar)
	for segment := range strings.SplitSeq(header, ";") {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}

		name, value, ok := strings.Cut(segment, "=")
		if !ok {
			continue
		}
		name = strings.TrimSpace(name)
		if !isToken(name) {
			continue
		}
		if _, seen := jar[name]; seen {
			continue
		}
		jar[name] = unquote(strings.TrimSpace(value))
	}
	return jar
}

// Extract returns the value of the named cookie from a raw Cookie header,
// or an empty string when it is absent or the header cannot be parsed.
func Extract(header, name string) string {
	if header == "" || name == "" {
		return ""
	}
	return Parse(header).Get(name)
}

func unquote(v string) string {
	if len(v) > 1 && v[0] == '"' && v[len(v)-1] == '"' {
		return v[1 : len(v)-1]
	}
	return v
}
