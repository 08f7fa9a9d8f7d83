package merge

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/promptkeeper/internal/models"
	"gopkg.in/yaml.v3"
)

// Format selects an export encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat maps a config value to a Format, defaulting to JSON.
func ParseFormat(s string) Format {
	switch Format(s) {
	case FormatYAML, "yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Export renders recs as a JSON array indented with two spaces. The output
// mirrors the collection exactly and can be imported back.
func Export(recs []models.Record) ([]byte, error) {
	if recs == nil {
		recs = []models.Record{}
	}
	data, err := json.MarshalIndent(recs, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode export: %w", err)
	}
	return data, nil
}

// ExportYAML renders recs as YAML for reading. It is not an import format.
func ExportYAML(recs []models.Record) ([]byte, error) {
	if recs == nil {
		recs = []models.Record{}
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(recs); err != nil {
		return nil, fmt.Errorf("encode yaml export: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode yaml export: %w", err)
	}
	return buf.Bytes(), nil
}

// Render encodes recs in format f.
func Render(recs []models.Record, f Format) ([]byte, error) {
	if f == FormatYAML {
		return ExportYAML(recs)
	}
	return Export(recs)
}

// ExportFilename names a JSON export taken at now,
// e.g. prompts-export-20240102-030405.json.
func ExportFilename(now time.Time) string {
	return Filename(now, FormatJSON)
}

// Filename names an export in format f taken at now (UTC).
func Filename(now time.Time, f Format) string {
	return "prompts-export-" + now.UTC().Format("20060102-150405") + "." + string(f)
}
