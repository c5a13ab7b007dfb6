package loader

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// ruleExtensions mark a string containing a path separator as a file path even when
// the file does not exist, so a typo is reported as a missing file rather than a
// parse error.
var ruleExtensions = []string{".rules", ".rule", ".json", ZstdExtension}

// InferLoader picks a loader for input:
//   - Loader: returned as is
//   - []byte: FromBytes
//   - string with an http, https, file, or bolt URL scheme: FromHTTP, FromDisk, FromBolt
//   - single-line string naming an existing file, or a path ending in a rule file extension: FromDisk
//   - any other string: FromString
func InferLoader(input any) (Loader, error) {
	switch v := input.(type) {
	case Loader:
		return v, nil
	case []byte:
		return NewFromBytes(v)
	case string:
		return inferFromString(v)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedInput, input)
	}
}

func inferFromString(input string) (Loader, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, fmt.Errorf("%w: input is empty", ErrScriptNotAvailable)
	}

	if strings.ContainsAny(input, "\n;") {
		return NewFromString(input)
	}

	if u, err := url.Parse(input); err == nil {
		switch u.Scheme {
		case "http", "https":
			return NewFromHTTP(input)
		case "file":
			return NewFromDisk(u.Path)
		case "bolt":
			return newFromBoltURL(u)
		}
	}

	if looksLikePath(input) {
		return NewFromDisk(input)
	}
	return NewFromString(input)
}

func looksLikePath(input string) bool {
	if strings.ContainsAny(input, " \t\"'") {
		return false
	}
	if info, err := os.Stat(input); err == nil {
		return !info.IsDir()
	}
	if !strings.ContainsAny(input, `/\`) {
		return false
	}
	return slices.Contains(ruleExtensions, strings.ToLower(filepath.Ext(input)))
}
