package convert

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/xbklairith/postgirl-sub001/pkg/collection"
)

// postmanSchemaURL is the schema stamped on exported collections.
const postmanSchemaURL = "https://schema.getpostman.com/json/collection/v2.1.0/collection.json"

// maxFolderDepth bounds folder recursion so adversarial nesting cannot grow
// the call stack without limit.
const maxFolderDepth = 32

// Postman Collection v2.1 wire types.

type postmanCollection struct {
	Info postmanInfo   `json:"info"`
	Item []postmanItem `json:"item"`
}

type postmanInfo struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Schema      string `json:"schema"`
}

// postmanItem is either a leaf (Request set) or a folder (Item set).
type postmanItem struct {
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Request     *postmanRequest   `json:"request,omitempty"`
	Item        []postmanItem     `json:"item,omitempty"`
	Event       []json.RawMessage `json:"event,omitempty"`
}

type postmanRequest struct {
	Method      string `json:"method"`
	Description string `json:"description,omitempty"`
	// URL may be a raw string or a {raw, host, path, ...} object. It is kept
	// opaque here and decoded per leaf so one malformed URL fails one item,
	// not the whole document.
	URL    json.RawMessage `json:"url,omitempty"`
	Header []postmanHeader `json:"header,omitempty"`
	Body   *postmanBody    `json:"body,omitempty"`
	Auth   json.RawMessage `json:"auth,omitempty"`
}

type postmanHeader struct {
	Key      string `json:"key"`
	Value    string `json:"value"`
	Disabled bool   `json:"disabled,omitempty"`
}

type postmanBody struct {
	Mode       string            `json:"mode"`
	Raw        string            `json:"raw,omitempty"`
	URLEncoded []postmanKeyValue `json:"urlencoded,omitempty"`
	FormData   []postmanFormData `json:"formdata,omitempty"`
}

type postmanKeyValue struct {
	Key      string `json:"key"`
	Value    string `json:"value"`
	Disabled bool   `json:"disabled,omitempty"`
}

type postmanFormData struct {
	Key      string `json:"key"`
	Value    string `json:"value,omitempty"`
	Type     string `json:"type,omitempty"` // "text" or "file"
	Disabled bool   `json:"disabled,omitempty"`
}

// postmanURLObject is the object form of a request URL.
type postmanURLObject struct {
	Raw string `json:"raw"`
}

// decodePostmanURL resolves the string-or-object URL field.
func decodePostmanURL(raw json.RawMessage) (string, error) {
	if len(raw) == 0 {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}
	var obj postmanURLObject
	if err := json.Unmarshal(raw, &obj); err != nil {
		return "", fmt.Errorf("url is neither a string nor a url object: %w", err)
	}
	return obj.Raw, nil
}

// PostmanImporter imports Postman Collection v2.1 documents.
type PostmanImporter struct{}

// Import recursively walks the item tree, flattening folders into a single
// collection. Postman is also the classifier's fallback format, so input
// that merely looks like JSON imports best-effort rather than erroring.
func (i *PostmanImporter) Import(workspaceID string, data []byte) (*Bundle, error) {
	var doc postmanCollection
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &ImportError{
			Kind:    ErrorParsing,
			Message: "failed to parse Postman collection",
			Details: err.Error(),
		}
	}

	name := doc.Info.Name
	if name == "" {
		name = "Imported Collection"
	}

	bundle := &Bundle{
		Collection: collection.NewCollection(workspaceID, name, doc.Info.Description),
	}
	i.walkItems(doc.Item, bundle, 0)
	return bundle, nil
}

// walkItems processes items depth-first. Folders are flattened: they bump
// FolderCount and contribute their children, but create no canonical entity.
func (i *PostmanImporter) walkItems(items []postmanItem, bundle *Bundle, depth int) {
	for _, item := range items {
		switch {
		case item.Request != nil:
			req, warnings, err := i.convertItem(item, bundle.Collection.ID)
			bundle.Warnings = append(bundle.Warnings, warnings...)
			if err != nil {
				bundle.addError(ErrorConversion, item.Name, "failed to convert request", err.Error())
				continue
			}
			req.OrderIndex = len(bundle.Requests)
			bundle.Requests = append(bundle.Requests, req)

		case item.Item != nil:
			if depth >= maxFolderDepth {
				bundle.addError(ErrorConversion, item.Name,
					"folder nesting exceeds maximum depth", fmt.Sprintf("depth limit is %d", maxFolderDepth))
				continue
			}
			bundle.FolderCount++
			i.walkItems(item.Item, bundle, depth+1)

		default:
			bundle.addWarning(WarningFormatIssue, item.Name,
				"item has neither a request nor child items", "")
		}
	}
}

// convertItem converts one leaf item to a canonical request.
func (i *PostmanImporter) convertItem(item postmanItem, collectionID string) (*collection.Request, []ImportWarning, error) {
	var warnings []ImportWarning

	rawURL, err := decodePostmanURL(item.Request.URL)
	if err != nil {
		return nil, warnings, err
	}

	req := collection.NewRequest(collectionID, item.Name)
	req.Description = item.Request.Description
	req.Method = collection.NormalizeMethod(item.Request.Method)
	req.URL = rawURL

	// Disabled headers are dropped silently; that is expected Postman
	// behavior, not data loss.
	for _, h := range item.Request.Header {
		if h.Disabled {
			continue
		}
		req.Headers = append(req.Headers, collection.Header{Key: h.Key, Value: h.Value})
	}

	body := item.Request.Body
	switch {
	case body == nil:
		req.BodyType = collection.BodyNone

	case body.Mode == "raw":
		req.BodyType = collection.BodyRaw
		req.Body = body.Raw

	case body.Mode == "urlencoded":
		req.BodyType = collection.BodyForm
		req.Body = encodeFormPairs(body.URLEncoded)

	case body.Mode == "formdata":
		req.BodyType = collection.BodyForm
		pairs := make([]postmanKeyValue, 0, len(body.FormData))
		hasFiles := false
		for _, f := range body.FormData {
			if f.Type == "file" {
				hasFiles = true
				continue
			}
			pairs = append(pairs, postmanKeyValue{Key: f.Key, Value: f.Value, Disabled: f.Disabled})
		}
		req.Body = encodeFormPairs(pairs)
		if hasFiles {
			warnings = append(warnings, ImportWarning{
				Kind:     WarningDataLoss,
				Message:  "form-data file fields are not supported and were dropped",
				ItemName: item.Name,
			})
		}

	default:
		req.BodyType = collection.BodyRaw
		req.Body = ""
	}

	if len(item.Request.Auth) > 0 && string(item.Request.Auth) != "null" {
		warnings = append(warnings, ImportWarning{
			Kind:     WarningUnsupportedFeature,
			Message:  "request auth configuration has no canonical representation",
			ItemName: item.Name,
		})
	}
	if len(item.Event) > 0 {
		warnings = append(warnings, ImportWarning{
			Kind:     WarningUnsupportedFeature,
			Message:  "test scripts are not supported",
			ItemName: item.Name,
		})
	}

	return req, warnings, nil
}

// encodeFormPairs url-encodes enabled key/value pairs, preserving order.
func encodeFormPairs(pairs []postmanKeyValue) string {
	var sb strings.Builder
	for _, p := range pairs {
		if p.Disabled {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(p.Key))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(p.Value))
	}
	return sb.String()
}

// Format returns FormatPostman.
func (i *PostmanImporter) Format() Format {
	return FormatPostman
}

// PostmanExporter exports canonical collections as Postman Collection v2.1
// documents. Folder structure is not reconstructed; every request becomes a
// flat item.
type PostmanExporter struct{}

// Export converts a collection and its requests to Postman v2.1 JSON.
func (e *PostmanExporter) Export(col *collection.Collection, requests []*collection.Request) ([]byte, error) {
	if col == nil {
		return nil, &ExportError{Format: FormatPostman, Message: "collection cannot be nil"}
	}

	doc := postmanCollection{
		Info: postmanInfo{
			Name:        col.Name,
			Description: col.Description,
			Schema:      postmanSchemaURL,
		},
		Item: make([]postmanItem, 0, len(requests)),
	}

	for _, req := range requests {
		item := postmanItem{
			Name: req.Name,
			Request: &postmanRequest{
				Method:      req.Method,
				Description: req.Description,
				URL:         mustMarshalURL(req.URL),
			},
		}
		for _, h := range req.Headers {
			item.Request.Header = append(item.Request.Header, postmanHeader{Key: h.Key, Value: h.Value})
		}
		if req.Body != "" {
			item.Request.Body = &postmanBody{Mode: "raw", Raw: req.Body}
		}
		doc.Item = append(doc.Item, item)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, &ExportError{Format: FormatPostman, Message: "failed to marshal collection", Cause: err}
	}
	return append(data, '\n'), nil
}

// mustMarshalURL encodes a URL string as the object form Postman prefers.
func mustMarshalURL(raw string) json.RawMessage {
	data, _ := json.Marshal(postmanURLObject{Raw: raw})
	return data
}

// Format returns FormatPostman.
func (e *PostmanExporter) Format() Format {
	return FormatPostman
}

func init() {
	RegisterImporter(&PostmanImporter{})
	RegisterExporter(&PostmanExporter{})
}
