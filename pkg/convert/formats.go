package convert

import (
	"encoding/json"
	"strings"
)

// Format represents a supported import/export format.
type Format string

// Supported formats.
const (
	FormatUnknown  Format = ""
	FormatPostman  Format = "postman"  // Postman Collection v2.1
	FormatInsomnia Format = "insomnia" // Insomnia workspace export
	FormatOpenAPI  Format = "openapi"  // OpenAPI 3.0
	FormatCURL     Format = "curl"     // cURL command text
)

// String returns the string representation of the format.
func (f Format) String() string {
	return string(f)
}

// IsValid returns true if the format is a known format.
func (f Format) IsValid() bool {
	switch f {
	case FormatPostman, FormatInsomnia, FormatOpenAPI, FormatCURL:
		return true
	default:
		return false
	}
}

// CanImport returns true if this format supports importing.
func (f Format) CanImport() bool {
	return f.IsValid()
}

// CanExport returns true if this format supports exporting.
// Insomnia and OpenAPI export are acknowledged gaps.
func (f Format) CanExport() bool {
	switch f {
	case FormatPostman, FormatCURL:
		return true
	default:
		return false
	}
}

// Classify inspects raw content and decides which converter should handle it.
// Detection is shape-based: it probes a few top-level keys rather than
// validating against the full official schemas. Anything unrecognized falls
// back to Postman, which imports best-effort.
func Classify(content string) Format {
	trimmed := strings.TrimSpace(content)
	if strings.HasPrefix(trimmed, "curl ") || strings.HasPrefix(trimmed, "curl\t") {
		return FormatCURL
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(trimmed), &raw); err != nil {
		return FormatPostman
	}

	var info struct {
		Schema string `json:"schema"`
	}
	if infoRaw, ok := raw["info"]; ok {
		if json.Unmarshal(infoRaw, &info) == nil && strings.Contains(info.Schema, "postman") {
			return FormatPostman
		}
	}

	if typeRaw, ok := raw["_type"]; ok {
		var docType string
		if json.Unmarshal(typeRaw, &docType) == nil && docType == "export" {
			var resources []json.RawMessage
			if resRaw, ok := raw["resources"]; ok && json.Unmarshal(resRaw, &resources) == nil {
				return FormatInsomnia
			}
		}
	}

	if _, hasOpenAPI := raw["openapi"]; hasOpenAPI {
		if _, hasInfo := raw["info"]; hasInfo {
			if _, hasPaths := raw["paths"]; hasPaths {
				return FormatOpenAPI
			}
		}
	}

	return FormatPostman
}

// ParseFormat parses a format string into a Format type.
// Returns FormatUnknown for unrecognized format strings.
func ParseFormat(s string) Format {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "postman":
		return FormatPostman
	case "insomnia":
		return FormatInsomnia
	case "openapi", "swagger", "oas":
		return FormatOpenAPI
	case "curl":
		return FormatCURL
	default:
		return FormatUnknown
	}
}

// ImportFormats returns the formats that support importing.
func ImportFormats() []Format {
	return []Format{FormatPostman, FormatInsomnia, FormatOpenAPI, FormatCURL}
}

// ExportFormats returns the formats that support exporting.
func ExportFormats() []Format {
	return []Format{FormatPostman, FormatCURL}
}
