package data

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FileProvider serves static data decoded from a YAML document. JSON is valid YAML,
// so .json files load the same way.
type FileProvider struct {
	path   string
	static *StaticProvider
}

// NewFileProvider reads and decodes the file at path once, at construction.
func NewFileProvider(path string) (*FileProvider, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read data file: %w", err)
	}
	p, err := NewFileProviderFromBytes(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	p.path = path
	return p, nil
}

// NewFileProviderFromBytes decodes a YAML or JSON document whose top level is a
// mapping. An empty document yields empty data.
func NewFileProviderFromBytes(content []byte) (*FileProvider, error) {
	d, err := DecodeYAML(content)
	if err != nil {
		return nil, err
	}
	return &FileProvider{static: NewStaticProvider(d)}, nil
}

func (p *FileProvider) String() string {
	if p.path == "" {
		return "data.FileProvider{inline}"
	}
	return fmt.Sprintf("data.FileProvider{Path: %s}", p.path)
}

func (p *FileProvider) GetData(ctx context.Context) (map[string]any, error) {
	return p.static.GetData(ctx)
}

// AddDataToContext always fails: file data is fixed at construction.
func (p *FileProvider) AddDataToContext(
	ctx context.Context,
	d ...map[string]any,
) (context.Context, error) {
	return p.static.AddDataToContext(ctx, d...)
}

// DecodeYAML decodes a document into string-keyed maps all the way down, so every
// nested mapping is reachable with dotted access.
func DecodeYAML(content []byte) (map[string]any, error) {
	if len(bytes.TrimSpace(content)) == 0 {
		return make(map[string]any), nil
	}

	var raw any
	if err := yaml.Unmarshal(content, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidData, err)
	}
	if raw == nil {
		return make(map[string]any), nil
	}

	top, ok := normalizeYAML(raw).(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: top level must be a mapping, got %T", ErrInvalidData, raw)
	}
	return top, nil
}

func normalizeYAML(v any) any {
	switch v := v.(type) {
	case map[string]any:
		for k, item := range v {
			v[k] = normalizeYAML(item)
		}
		return v
	case map[any]any:
		out := make(map[string]any, len(v))
		for k, item := range v {
			out[fmt.Sprint(k)] = normalizeYAML(item)
		}
		return out
	case []any:
		for i, item := range v {
			v[i] = normalizeYAML(item)
		}
		return v
	default:
		return v
	}
}
