package convert

import (
	"time"

	"github.com/xbklairith/postgirl-sub001/pkg/collection"
)

// Exporter converts a canonical collection and its requests into the bytes of
// one external format.
type Exporter interface {
	Export(col *collection.Collection, requests []*collection.Request) ([]byte, error)

	// Format returns the format this exporter produces.
	Format() Format
}

// ExportResult is returned by Coordinator.ExportCollection.
type ExportResult struct {
	// Data is the exported document.
	Data []byte `json:"-"`

	Format       Format        `json:"format"`
	RequestCount int           `json:"requestCount"`
	Duration     time.Duration `json:"duration"`
}

// ExportError represents an error during export.
type ExportError struct {
	Format  Format
	Message string
	Cause   error
}

func (e *ExportError) Error() string {
	msg := e.Message
	if e.Format != FormatUnknown {
		msg = string(e.Format) + ": " + msg
	}
	if e.Cause != nil {
		msg = msg + ": " + e.Cause.Error()
	}
	return msg
}

func (e *ExportError) Unwrap() error {
	return e.Cause
}
