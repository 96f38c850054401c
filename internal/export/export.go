// Package export serializes analysis results into interchange formats.
// JSON is the canonical format; YAML and TOML are offered for embedding in
// documentation and config-adjacent tooling.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"repoatlas/internal/errors"
)

// Format identifies an output encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// ParseFormat maps a user-supplied format name to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json", "":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	default:
		return "", errors.New(errors.InvalidInput, fmt.Sprintf("unknown output format %q", s), nil)
	}
}

// Encode serializes v in the requested format. JSON output is indented and
// newline-terminated so it can go straight to a terminal or file.
func Encode(v interface{}, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, errors.New(errors.InternalError, "failed to encode JSON", err)
		}
		return append(data, '\n'), nil

	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return nil, errors.New(errors.InternalError, "failed to encode YAML", err)
		}
		if err := enc.Close(); err != nil {
			return nil, errors.New(errors.InternalError, "failed to finalize YAML", err)
		}
		return buf.Bytes(), nil

	case FormatTOML:
		data, err := toml.Marshal(v)
		if err != nil {
			return nil, errors.New(errors.InternalError, "failed to encode TOML", err)
		}
		return data, nil

	default:
		return nil, errors.New(errors.InvalidInput, fmt.Sprintf("unknown output format %q", format), nil)
	}
}
