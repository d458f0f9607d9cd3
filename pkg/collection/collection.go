// Package collection defines the canonical request/collection model that all
// format converters import into and export from.
package collection

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// BodyType identifies how a request body should be interpreted.
type BodyType string

// Supported body types.
const (
	BodyRaw  BodyType = "raw"
	BodyForm BodyType = "form"
	BodyJSON BodyType = "json"
	BodyNone BodyType = "none"
)

// Default request settings, matching the desktop app's new-request defaults.
const (
	DefaultTimeoutMs = 30000
)

// Collection groups requests inside a workspace.
type Collection struct {
	ID          string    `json:"id"`
	WorkspaceID string    `json:"workspaceId"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Header is a single request header. Headers are kept as an ordered slice so
// that source-document ordering survives import/export.
type Header struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Request is the canonical HTTP request representation.
type Request struct {
	ID              string    `json:"id"`
	CollectionID    string    `json:"collectionId"`
	Name            string    `json:"name"`
	Description     string    `json:"description,omitempty"`
	Method          string    `json:"method"`
	URL             string    `json:"url"`
	Headers         []Header  `json:"headers"`
	Body            string    `json:"body,omitempty"`
	BodyType        BodyType  `json:"bodyType"`
	FollowRedirects bool      `json:"followRedirects"`
	TimeoutMs       int       `json:"timeoutMs"`
	OrderIndex      int       `json:"orderIndex"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// Environment is a named set of variables scoped to a workspace.
type Environment struct {
	ID          string            `json:"id"`
	WorkspaceID string            `json:"workspaceId"`
	Name        string            `json:"name"`
	Variables   map[string]string `json:"variables"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

// NewCollection creates a collection with a fresh ID and timestamps.
func NewCollection(workspaceID, name, description string) *Collection {
	now := time.Now().UTC()
	return &Collection{
		ID:          uuid.NewString(),
		WorkspaceID: workspaceID,
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// NewRequest creates a request with a fresh ID, default settings and timestamps.
func NewRequest(collectionID, name string) *Request {
	now := time.Now().UTC()
	return &Request{
		ID:              uuid.NewString(),
		CollectionID:    collectionID,
		Name:            name,
		Method:          "GET",
		Headers:         []Header{},
		BodyType:        BodyNone,
		FollowRedirects: true,
		TimeoutMs:       DefaultTimeoutMs,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// NewEnvironment creates an environment with a fresh ID and timestamps.
func NewEnvironment(workspaceID, name string) *Environment {
	now := time.Now().UTC()
	return &Environment{
		ID:          uuid.NewString(),
		WorkspaceID: workspaceID,
		Name:        name,
		Variables:   make(map[string]string),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// knownMethods is the fixed method set the UI offers.
var knownMethods = map[string]bool{
	"GET": true, "POST": true, "PUT": true, "DELETE": true,
	"PATCH": true, "HEAD": true, "OPTIONS": true,
}

// NormalizeMethod uppercases a method name. Unrecognized methods from source
// formats are passed through uppercased rather than rejected; an empty method
// becomes GET.
func NormalizeMethod(method string) string {
	m := strings.ToUpper(strings.TrimSpace(method))
	if m == "" {
		return "GET"
	}
	return m
}

// IsKnownMethod reports whether the method belongs to the fixed set.
func IsKnownMethod(method string) bool {
	return knownMethods[strings.ToUpper(method)]
}

// HeaderValue returns the first value for key (case-insensitive), and whether
// it was present.
func HeaderValue(headers []Header, key string) (string, bool) {
	for _, h := range headers {
		if strings.EqualFold(h.Key, key) {
			return h.Value, true
		}
	}
	return "", false
}
