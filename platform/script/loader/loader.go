// Package loader fetches rule source from strings, files, bolt databases, and HTTP
// endpoints. Every loader also reports a source URL that identifies the rule in logs
// and becomes the executable unit's ID.
package loader

import (
	"errors"
	"io"
	"net/url"
)

var (
	ErrScriptNotAvailable = errors.New("script not available")
	ErrInvalidPath        = errors.New("invalid path")
	ErrUnsupportedInput   = errors.New("unsupported loader input")
)

// Loader is used by the compiler to read rule source.
type Loader interface {
	GetReader() (io.ReadCloser, error)
	GetSourceURL() *url.URL
}
