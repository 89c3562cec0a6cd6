package render

import "strings"

// substitutePath replaces the "{key}" and "{{key}}" placeholder forms a
// manifest's destination path may use with values, preferring the
// double-brace form so it is not partially consumed by the single-brace
// replacement first.
func substitutePath(path string, values map[string]string) string {
	for key, val := range values {
		path = strings.ReplaceAll(path, "{{"+key+"}}", val)
		path = strings.ReplaceAll(path, "{"+key+"}", val)
	}
	return path
}

// endpointIdentifier returns whichever of "endpoint", "endpoint_fs", or
// "fn_name" an endpoint object carries first, matching the fallback
// order every renderer uses to name a per-operation artifact.
func endpointIdentifier(endpoint map[string]any) (string, bool) {
	for _, key := range []string{"endpoint", "endpoint_fs", "fn_name"} {
		if v, ok := endpoint[key].(string); ok && v != "" {
			return v, true
		}
	}
	return "", false
}
