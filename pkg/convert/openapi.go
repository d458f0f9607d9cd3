package convert

import (
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/xbklairith/postgirl-sub001/pkg/collection"
)

// defaultServerURL is used when the document declares no servers.
const defaultServerURL = "https://api.example.com"

// OpenAPI 3.0 wire types. Decoding goes through yaml.v3, which accepts both
// YAML and JSON documents; the classifier only routes JSON here, YAML arrives
// via the explicit-format import path.

type openAPIDocument struct {
	OpenAPI string                     `json:"openapi" yaml:"openapi"`
	Info    *openAPIInfo               `json:"info" yaml:"info"`
	Servers []openAPIServer            `json:"servers,omitempty" yaml:"servers,omitempty"`
	Paths   map[string]openAPIPathItem `json:"paths" yaml:"paths"`
}

type openAPIInfo struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Version     string `json:"version,omitempty" yaml:"version,omitempty"`
}

type openAPIServer struct {
	URL string `json:"url" yaml:"url"`
}

type openAPIPathItem struct {
	Get     *openAPIOperation `json:"get,omitempty" yaml:"get,omitempty"`
	Post    *openAPIOperation `json:"post,omitempty" yaml:"post,omitempty"`
	Put     *openAPIOperation `json:"put,omitempty" yaml:"put,omitempty"`
	Delete  *openAPIOperation `json:"delete,omitempty" yaml:"delete,omitempty"`
	Patch   *openAPIOperation `json:"patch,omitempty" yaml:"patch,omitempty"`
	Head    *openAPIOperation `json:"head,omitempty" yaml:"head,omitempty"`
	Options *openAPIOperation `json:"options,omitempty" yaml:"options,omitempty"`
}

// operations returns the path item's operations in the fixed method order.
func (p *openAPIPathItem) operations() []struct {
	Method string
	Op     *openAPIOperation
} {
	return []struct {
		Method string
		Op     *openAPIOperation
	}{
		{"GET", p.Get},
		{"POST", p.Post},
		{"PUT", p.Put},
		{"DELETE", p.Delete},
		{"PATCH", p.Patch},
		{"HEAD", p.Head},
		{"OPTIONS", p.Options},
	}
}

type openAPIOperation struct {
	Summary     string              `json:"summary,omitempty" yaml:"summary,omitempty"`
	Description string              `json:"description,omitempty" yaml:"description,omitempty"`
	OperationID string              `json:"operationId,omitempty" yaml:"operationId,omitempty"`
	Parameters  []openAPIParameter  `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	RequestBody *openAPIRequestBody `json:"requestBody,omitempty" yaml:"requestBody,omitempty"`
}

type openAPIParameter struct {
	Name     string  `json:"name" yaml:"name"`
	In       string  `json:"in" yaml:"in"` // query, header, path, cookie
	Required bool    `json:"required,omitempty" yaml:"required,omitempty"`
	Schema   *Schema `json:"schema,omitempty" yaml:"schema,omitempty"`
}

type openAPIRequestBody struct {
	Required bool                        `json:"required,omitempty" yaml:"required,omitempty"`
	Content  map[string]openAPIMediaType `json:"content" yaml:"content"`
}

type openAPIMediaType struct {
	Schema *Schema `json:"schema,omitempty" yaml:"schema,omitempty"`
}

// OpenAPIImporter imports OpenAPI 3.0 documents (import only).
type OpenAPIImporter struct{}

// Import synthesizes one canonical request per (path, method) operation.
// Validation is shape-based: openapi version string, info.title and a paths
// map must be present; anything else about the document is taken on faith.
func (i *OpenAPIImporter) Import(workspaceID string, data []byte) (*Bundle, error) {
	var doc openAPIDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &ImportError{
			Kind:    ErrorParsing,
			Message: "failed to parse OpenAPI document",
			Details: err.Error(),
		}
	}

	if doc.OpenAPI == "" || doc.Info == nil || doc.Info.Title == "" || doc.Paths == nil {
		return nil, &ImportError{
			Kind:    ErrorParsing,
			Message: "not a valid OpenAPI 3.0 document: openapi, info.title and paths are required",
		}
	}

	baseURL := defaultServerURL
	if len(doc.Servers) > 0 && doc.Servers[0].URL != "" {
		baseURL = doc.Servers[0].URL
	}

	bundle := &Bundle{
		Collection: collection.NewCollection(workspaceID, doc.Info.Title, doc.Info.Description),
	}

	// Sorted path order keeps imports deterministic.
	paths := make([]string, 0, len(doc.Paths))
	for p := range doc.Paths {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, p := range paths {
		pathItem := doc.Paths[p]
		for _, entry := range pathItem.operations() {
			if entry.Op == nil {
				continue
			}
			req, err := i.convertOperation(bundle.Collection.ID, baseURL, p, entry.Method, entry.Op)
			if err != nil {
				bundle.addError(ErrorConversion, operationName(p, entry.Method, entry.Op),
					"failed to convert operation", err.Error())
				continue
			}
			req.OrderIndex = len(bundle.Requests)
			bundle.Requests = append(bundle.Requests, req)
		}
	}

	return bundle, nil
}

// convertOperation builds one canonical request from an operation.
func (i *OpenAPIImporter) convertOperation(collectionID, baseURL, path, method string, op *openAPIOperation) (*collection.Request, error) {
	req := collection.NewRequest(collectionID, operationName(path, method, op))
	req.Description = op.Description
	req.Method = method
	req.URL = strings.TrimSuffix(baseURL, "/") + path

	// Query parameters with a declared default become part of the URL;
	// header parameters with a default become headers.
	var query []string
	for _, param := range op.Parameters {
		if param.Schema == nil || param.Schema.Default == nil {
			continue
		}
		value := fmt.Sprintf("%v", param.Schema.Default)
		switch param.In {
		case "query":
			query = append(query, url.QueryEscape(param.Name)+"="+url.QueryEscape(value))
		case "header":
			req.Headers = append(req.Headers, collection.Header{Key: param.Name, Value: value})
		}
	}
	if len(query) > 0 {
		req.URL += "?" + strings.Join(query, "&")
	}

	if op.RequestBody != nil && len(op.RequestBody.Content) > 0 {
		contentType := pickContentType(op.RequestBody.Content)
		media := op.RequestBody.Content[contentType]
		req.Headers = append(req.Headers, collection.Header{Key: "Content-Type", Value: contentType})

		if strings.Contains(contentType, "json") {
			req.BodyType = collection.BodyRaw
			body, err := json.MarshalIndent(Synthesize(media.Schema), "", "  ")
			if err != nil {
				return nil, fmt.Errorf("synthesizing example body: %w", err)
			}
			req.Body = string(body)
		} else {
			req.BodyType = collection.BodyForm
		}
	}

	return req, nil
}

// pickContentType resolves "the first content-type key" over Go's unordered
// maps: a JSON media type wins if present, otherwise the lexicographically
// smallest key.
func pickContentType(content map[string]openAPIMediaType) string {
	keys := make([]string, 0, len(content))
	for k := range content {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if strings.Contains(k, "json") {
			return k
		}
	}
	return keys[0]
}

// operationName picks summary, then operationId, then "METHOD path".
func operationName(path, method string, op *openAPIOperation) string {
	if op.Summary != "" {
		return op.Summary
	}
	if op.OperationID != "" {
		return op.OperationID
	}
	return fmt.Sprintf("%s %s", method, path)
}

// Format returns FormatOpenAPI.
func (i *OpenAPIImporter) Format() Format {
	return FormatOpenAPI
}

func init() {
	RegisterImporter(&OpenAPIImporter{})
}
