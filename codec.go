package projector

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Codec decodes a stored record into a value. Sources that read encoded
// data (files, blobs) use a Codec so the record format stays swappable.
type Codec interface {
	// Unmarshal deserializes bytes into a value.
	Unmarshal(data []byte, v any) error

	// ContentType returns the MIME type for diagnostics.
	ContentType() string
}

// JSONCodec decodes JSON with encoding/json.
type JSONCodec struct{}

// Unmarshal decodes JSON bytes into v.
func (JSONCodec) Unmarshal(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode json: %w", err)
	}
	return nil
}

// ContentType returns the JSON MIME type.
func (JSONCodec) ContentType() string {
	return "application/json"
}

// YAMLCodec decodes YAML with gopkg.in/yaml.v3. It also accepts JSON.
type YAMLCodec struct{}

// Unmarshal decodes YAML bytes into v.
func (YAMLCodec) Unmarshal(data []byte, v any) error {
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode yaml: %w", err)
	}
	return nil
}

// ContentType returns the YAML MIME type.
func (YAMLCodec) ContentType() string {
	return "application/x-yaml"
}

// AutoCodec picks JSON when the payload starts with an object or array and
// YAML otherwise.
type AutoCodec struct{}

// Unmarshal detects the format of data and decodes it into v.
func (AutoCodec) Unmarshal(data []byte, v any) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return JSONCodec{}.Unmarshal(data, v)
	}
	return YAMLCodec{}.Unmarshal(data, v)
}

// ContentType reports a generic type since the format is decided per payload.
func (AutoCodec) ContentType() string {
	return "application/octet-stream"
}

// CodecFor returns the codec matching a file extension: JSONCodec for
// .json, YAMLCodec for .yaml and .yml, AutoCodec for anything else.
func CodecFor(path string) Codec {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSONCodec{}
	case ".yaml", ".yml":
		return YAMLCodec{}
	default:
		return AutoCodec{}
	}
}

// ParseCodec maps a format name ("json", "yaml", "auto" or "") to a Codec.
func ParseCodec(name string) (Codec, error) {
	switch strings.ToLower(name) {
	case "json":
		return JSONCodec{}, nil
	case "yaml", "yml":
		return YAMLCodec{}, nil
	case "auto", "":
		return AutoCodec{}, nil
	default:
		return nil, fmt.Errorf("unknown codec %q", name)
	}
}

var (
	_ Codec = JSONCodec{}
	_ Codec = YAMLCodec{}
	_ Codec = AutoCodec{}
)
