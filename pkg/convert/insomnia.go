package convert

import (
	"encoding/json"
	"fmt"

	"github.com/xbklairith/postgirl-sub001/pkg/collection"
)

// Insomnia export wire types. An export is a flat array of tagged resources;
// parent/child structure is expressed through parentId references, which this
// importer flattens.

type insomniaExport struct {
	Type         string `json:"_type"`
	ExportFormat int    `json:"__export_format"`
	// Resources stay raw so each one is decoded individually: one malformed
	// resource yields one conversion error, not a failed document.
	Resources []json.RawMessage `json:"resources"`
}

// insomniaProbe is the loose first-pass decode used for routing and naming.
type insomniaProbe struct {
	Type string `json:"_type"`
	Name string `json:"name"`
}

type insomniaResource struct {
	ID             string           `json:"_id"`
	Type           string           `json:"_type"`
	ParentID       string           `json:"parentId"`
	Name           string           `json:"name"`
	Description    string           `json:"description,omitempty"`
	Method         string           `json:"method,omitempty"`
	URL            string           `json:"url,omitempty"`
	Headers        []insomniaHeader `json:"headers,omitempty"`
	Body           *insomniaBody    `json:"body,omitempty"`
	Authentication *insomniaAuth    `json:"authentication,omitempty"`
	Data           map[string]any   `json:"data,omitempty"` // environment variables
}

type insomniaHeader struct {
	Name     string `json:"name"`
	Value    string `json:"value"`
	Disabled bool   `json:"disabled,omitempty"`
}

type insomniaBody struct {
	MimeType string              `json:"mimeType,omitempty"`
	Text     string              `json:"text,omitempty"`
	Params   []insomniaBodyParam `json:"params,omitempty"`
}

type insomniaBodyParam struct {
	Name     string `json:"name"`
	Value    string `json:"value"`
	Disabled bool   `json:"disabled,omitempty"`
}

type insomniaAuth struct {
	Type string `json:"type,omitempty"`
}

// InsomniaImporter imports Insomnia workspace exports (import only).
type InsomniaImporter struct{}

// Import converts a flat resource array. The single workspace resource names
// the collection; its absence aborts the import since there is nothing to
// attach requests to. Request groups are counted and flattened away.
func (i *InsomniaImporter) Import(workspaceID string, data []byte) (*Bundle, error) {
	var doc insomniaExport
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &ImportError{
			Kind:    ErrorParsing,
			Message: "failed to parse Insomnia export",
			Details: err.Error(),
		}
	}

	// Locate the workspace first; everything hangs off it.
	var workspaceName string
	found := false
	for _, raw := range doc.Resources {
		var probe insomniaProbe
		if json.Unmarshal(raw, &probe) == nil && probe.Type == "workspace" {
			workspaceName = probe.Name
			found = true
			break
		}
	}
	if !found {
		return nil, &ImportError{
			Kind:    ErrorParsing,
			Message: "Insomnia export contains no workspace resource",
		}
	}
	if workspaceName == "" {
		workspaceName = "Imported from Insomnia"
	}

	bundle := &Bundle{
		Collection: collection.NewCollection(workspaceID, workspaceName, ""),
	}

	for idx, raw := range doc.Resources {
		var probe insomniaProbe
		if err := json.Unmarshal(raw, &probe); err != nil {
			bundle.addError(ErrorConversion, fmt.Sprintf("resource %d", idx),
				"unreadable resource entry", err.Error())
			continue
		}

		switch probe.Type {
		case "request":
			var res insomniaResource
			if err := json.Unmarshal(raw, &res); err != nil {
				bundle.addError(ErrorConversion, probe.Name, "failed to decode request resource", err.Error())
				continue
			}
			req, warnings, err := i.convertRequest(&res, bundle.Collection.ID)
			bundle.Warnings = append(bundle.Warnings, warnings...)
			if err != nil {
				bundle.addError(ErrorConversion, res.Name, "failed to convert request", err.Error())
				continue
			}
			req.OrderIndex = len(bundle.Requests)
			bundle.Requests = append(bundle.Requests, req)

		case "request_group":
			bundle.FolderCount++

		case "environment":
			var res insomniaResource
			if err := json.Unmarshal(raw, &res); err != nil {
				bundle.addError(ErrorConversion, probe.Name, "failed to decode environment resource", err.Error())
				continue
			}
			bundle.Environments = append(bundle.Environments, i.convertEnvironment(&res, workspaceID))
		}
	}

	return bundle, nil
}

// convertRequest maps one request resource to a canonical request.
func (i *InsomniaImporter) convertRequest(res *insomniaResource, collectionID string) (*collection.Request, []ImportWarning, error) {
	var warnings []ImportWarning

	name := res.Name
	if name == "" {
		name = fmt.Sprintf("%s %s", collection.NormalizeMethod(res.Method), res.URL)
	}

	req := collection.NewRequest(collectionID, name)
	req.Description = res.Description
	req.Method = collection.NormalizeMethod(res.Method)
	req.URL = res.URL

	for _, h := range res.Headers {
		if h.Disabled {
			continue
		}
		req.Headers = append(req.Headers, collection.Header{Key: h.Name, Value: h.Value})
	}

	switch {
	case res.Body == nil:
		req.BodyType = collection.BodyNone

	case res.Body.Text != "":
		req.BodyType = collection.BodyRaw
		req.Body = res.Body.Text

	case len(res.Body.Params) > 0:
		req.BodyType = collection.BodyForm
		pairs := make([]postmanKeyValue, 0, len(res.Body.Params))
		for _, p := range res.Body.Params {
			pairs = append(pairs, postmanKeyValue{Key: p.Name, Value: p.Value, Disabled: p.Disabled})
		}
		req.Body = encodeFormPairs(pairs)

	case res.Body.MimeType != "":
		req.BodyType = collection.BodyNone
		warnings = append(warnings, ImportWarning{
			Kind:     WarningDataLoss,
			Message:  "request body uses an unsupported encoding",
			Details:  res.Body.MimeType,
			ItemName: name,
		})

	default:
		req.BodyType = collection.BodyNone
	}

	if res.Authentication != nil && res.Authentication.Type != "" {
		warnings = append(warnings, ImportWarning{
			Kind:     WarningUnsupportedFeature,
			Message:  "authentication configuration has no canonical representation",
			Details:  res.Authentication.Type,
			ItemName: name,
		})
	}

	return req, warnings, nil
}

// convertEnvironment maps an environment resource. Non-string values are
// stringified; nested substitution is left to the environment subsystem.
func (i *InsomniaImporter) convertEnvironment(res *insomniaResource, workspaceID string) *collection.Environment {
	name := res.Name
	if name == "" {
		name = "Imported Environment"
	}
	env := collection.NewEnvironment(workspaceID, name)
	for k, v := range res.Data {
		env.Variables[k] = fmt.Sprintf("%v", v)
	}
	return env
}

// Format returns FormatInsomnia.
func (i *InsomniaImporter) Format() Format {
	return FormatInsomnia
}

func init() {
	RegisterImporter(&InsomniaImporter{})
}
