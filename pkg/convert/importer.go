package convert

import (
	"time"

	"github.com/xbklairith/postgirl-sub001/pkg/collection"
)

// Importer parses data in one external format and produces a Bundle of
// canonical entities plus per-item errors and warnings. A non-nil error from
// Import means the whole document could not be processed (e.g. unparseable
// input, or a missing Insomnia workspace); item-level failures never surface
// as the error return — they are accumulated in the Bundle instead.
type Importer interface {
	Import(workspaceID string, data []byte) (*Bundle, error)

	// Format returns the format this importer handles.
	Format() Format
}

// Bundle is the accumulator an importer fills while walking its source tree.
// Item-level failures land in Errors while the walk continues with the next
// item; that fold shape is what makes error isolation structural rather than
// a discipline convention.
type Bundle struct {
	Collection   *collection.Collection
	Requests     []*collection.Request
	Environments []*collection.Environment

	// FolderCount counts grouping nodes that were flattened away.
	FolderCount int

	Errors   []ImportError
	Warnings []ImportWarning
}

// addError records an item-level failure.
func (b *Bundle) addError(kind ErrorKind, itemName, message, details string) {
	b.Errors = append(b.Errors, ImportError{
		Kind:     kind,
		Message:  message,
		Details:  details,
		ItemName: itemName,
	})
}

// addWarning records a representational gap.
func (b *Bundle) addWarning(kind WarningKind, itemName, message, details string) {
	b.Warnings = append(b.Warnings, ImportWarning{
		Kind:     kind,
		Message:  message,
		Details:  details,
		ItemName: itemName,
	})
}

// ErrorKind categorizes an import error.
type ErrorKind string

// Error kinds.
const (
	// ErrorParsing means the input is not well-formed for the detected format.
	ErrorParsing ErrorKind = "parsing"
	// ErrorValidation means the input parsed but a required field is missing.
	ErrorValidation ErrorKind = "validation"
	// ErrorConversion means a single item failed to transform; siblings continue.
	ErrorConversion ErrorKind = "conversion"
	// ErrorUnknown means an unexpected failure caught at the coordinator boundary.
	ErrorUnknown ErrorKind = "unknown"
)

// ImportError describes one failed item or a fatal document-level failure.
// It implements error so importers can return fatal failures directly.
type ImportError struct {
	Kind     ErrorKind `json:"kind"`
	Message  string    `json:"message"`
	Details  string    `json:"details,omitempty"`
	ItemName string    `json:"itemName,omitempty"`
}

func (e *ImportError) Error() string {
	msg := string(e.Kind) + ": " + e.Message
	if e.ItemName != "" {
		msg += " (" + e.ItemName + ")"
	}
	if e.Details != "" {
		msg += ": " + e.Details
	}
	return msg
}

// WarningKind categorizes an import warning.
type WarningKind string

// Warning kinds. Warnings never flip an import to failed; they inform the
// caller of representational gaps.
const (
	WarningUnsupportedFeature WarningKind = "unsupportedFeature"
	WarningDataLoss           WarningKind = "dataLoss"
	WarningFormatIssue        WarningKind = "formatIssue"
)

// ImportWarning describes a source feature with no canonical representation.
type ImportWarning struct {
	Kind     WarningKind `json:"kind"`
	Message  string      `json:"message"`
	Details  string      `json:"details,omitempty"`
	ItemName string      `json:"itemName,omitempty"`
}

// CollectionSummary describes one imported collection.
type CollectionSummary struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	RequestCount int    `json:"requestCount"`
	FolderCount  int    `json:"folderCount"`
}

// EnvironmentSummary describes one imported environment.
type EnvironmentSummary struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	VariableCount int    `json:"variableCount"`
}

// ImportSummary holds aggregate counts for one import operation.
type ImportSummary struct {
	TotalItems      int           `json:"totalItems"`
	SuccessfulItems int           `json:"successfulItems"`
	FailedItems     int           `json:"failedItems"`
	Duration        time.Duration `json:"duration"`
}

// ImportResult is returned by Coordinator.ImportCollection. Success is true
// iff Errors is empty.
type ImportResult struct {
	Success      bool                 `json:"success"`
	Collections  []CollectionSummary  `json:"collections"`
	Environments []EnvironmentSummary `json:"environments"`
	Errors       []ImportError        `json:"errors"`
	Warnings     []ImportWarning      `json:"warnings"`
	Summary      ImportSummary        `json:"summary"`
}
