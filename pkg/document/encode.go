package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/tmsim/pkg/domain"
)

// Encode writes m to w in the given format.
func Encode(w io.Writer, m *domain.Machine, format Format) error {
	switch format {
	case JSON, "":
		return encodeJSON(w, FromMachine(m))
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(FromMachine(m)); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	case TOML:
		if err := toml.NewEncoder(w).Encode(FromMachine(m)); err != nil {
			return fmt.Errorf("failed to encode toml: %w", err)
		}
		return nil
	case Legacy:
		doc, err := ToLegacy(m)
		if err != nil {
			return err
		}
		return encodeJSON(w, doc)
	default:
		return fmt.Errorf("unsupported format %q", string(format))
	}
}

// Marshal returns the encoding of m in the given format.
func Marshal(m *domain.Machine, format Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, m, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ForFile adapts encoded data for writing to a file. Legacy documents are
// pretty on a terminal but compact on disk, which is what the tmsim runtime
// expects to load; other formats are returned unchanged.
func ForFile(data []byte, format Format) ([]byte, error) {
	if format != Legacy {
		return data, nil
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to compact legacy document: %w", err)
	}
	return buf.Bytes(), nil
}

// encodeJSON keeps symbols like '<', '>' and '&' readable instead of \u escapes.
func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode json: %w", err)
	}
	return nil
}
