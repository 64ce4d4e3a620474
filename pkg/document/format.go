package document

import (
	"fmt"
	"strings"
)

// Format selects the output encoding.
type Format string

const (
	JSON   Format = "json"
	YAML   Format = "yaml"
	TOML   Format = "toml"
	Legacy Format = "legacy"
)

// Formats lists the supported formats in the order shown to users.
var Formats = []Format{JSON, YAML, TOML, Legacy}

// ParseFormat accepts a format name, case insensitively. "" means JSON.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case "":
		return JSON, nil
	case "yml":
		return YAML, nil
	case JSON, YAML, TOML, Legacy:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported format %q (supported: json, yaml, toml, legacy)", name)
	}
}

// Extension returns the file extension for documents in this format.
func (f Format) Extension() string {
	switch f {
	case YAML:
		return ".yaml"
	case TOML:
		return ".toml"
	default:
		return ".json"
	}
}

// ContentType returns the MIME type used by the HTTP adapter.
func (f Format) ContentType() string {
	switch f {
	case YAML:
		return "application/yaml"
	case TOML:
		return "application/toml"
	default:
		return "application/json"
	}
}
