package loader

import (
	"bytes"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// ZstdExtension marks rule files stored zstd-compressed.
const ZstdExtension = ".zst"

// FromDisk loads a rule file. The file is read on every GetReader call, so edits
// are picked up the next time the rule is compiled.
type FromDisk struct {
	path      string
	sourceURL *url.URL
}

// NewFromDisk resolves path to an absolute path. The file does not have to exist
// yet; a missing file is reported by GetReader.
func NewFromDisk(path string) (*FromDisk, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("%w: path is empty", ErrInvalidPath)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPath, err)
	}

	return &FromDisk{
		path:      abs,
		sourceURL: &url.URL{Scheme: "file", Path: filepath.ToSlash(abs)},
	}, nil
}

func (l *FromDisk) String() string {
	return fmt.Sprintf("loader.FromDisk{Path: %s}", l.path)
}

// GetReader returns the file content, decompressed when the name ends in .zst.
func (l *FromDisk) GetReader() (io.ReadCloser, error) {
	content, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScriptNotAvailable, err)
	}

	if strings.HasSuffix(l.path, ZstdExtension) {
		content, err = decompress(content)
		if err != nil {
			return nil, fmt.Errorf("failed to decompress %s: %w", l.path, err)
		}
	}

	return io.NopCloser(bytes.NewReader(content)), nil
}

func (l *FromDisk) GetSourceURL() *url.URL {
	return l.sourceURL
}

func decompress(content []byte) ([]byte, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	return dec.DecodeAll(content, nil)
}
