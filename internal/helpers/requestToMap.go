package helpers

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// RequestToMap flattens an http.Request into nested maps that rules can walk with
// dotted access, e.g. `request.method == "POST"` or `request.headers.content_type`.
//
// Header and query names are lower-cased and dashes become underscores so that every
// key is a valid rule identifier. Only the first value of repeated headers or query
// parameters is kept. The request body is read and restored.
func RequestToMap(r *http.Request) (map[string]any, error) {
	if r == nil {
		return nil, errors.New("request is nil")
	}

	out := map[string]any{
		"method":         r.Method,
		"proto":          r.Proto,
		"host":           r.Host,
		"remote_addr":    r.RemoteAddr,
		"content_length": r.ContentLength,
		"path":           "/",
		"url":            "/",
		"headers":        firstValues(r.Header),
		"query":          map[string]any{},
		"body":           "",
	}

	if r.URL != nil {
		out["path"] = r.URL.Path
		out["url"] = r.URL.String()
		out["query"] = firstValues(r.URL.Query())
	}

	if r.Body != nil {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read request body: %w", err)
		}
		r.Body = io.NopCloser(bytes.NewReader(body))
		out["body"] = string(body)
	}

	return out, nil
}

func firstValues(src map[string][]string) map[string]any {
	out := make(map[string]any, len(src))
	for k, v := range src {
		if len(v) == 0 {
			continue
		}
		out[IdentifierKey(k)] = v[0]
	}
	return out
}

// IdentifierKey normalizes an arbitrary name into something the rule scanner
// accepts as an identifier.
func IdentifierKey(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), "-", "_")
}
