package convert

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/xbklairith/postgirl-sub001/pkg/logging"
	"github.com/xbklairith/postgirl-sub001/pkg/store"
)

// Coordinator is the single entry point the surrounding application calls.
// It classifies input, dispatches to the matching converter, persists the
// produced entities sequentially in source-document order, and aggregates
// per-item outcomes into one result. Each call owns its own accumulator;
// there is no shared mutable state between invocations.
type Coordinator struct {
	collections  store.CollectionStore
	environments store.EnvironmentStore
	registry     *Registry
	logger       *slog.Logger
}

// NewCoordinator creates a Coordinator backed by the given stores. A nil
// logger disables logging; a nil environment store skips environment
// persistence (environments still appear as summaries).
func NewCoordinator(collections store.CollectionStore, environments store.EnvironmentStore, logger *slog.Logger) *Coordinator {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Coordinator{
		collections:  collections,
		environments: environments,
		registry:     defaultRegistry,
		logger:       logger,
	}
}

// ImportCollection classifies raw content and imports it into the workspace.
// The returned result carries all errors and warnings; the error return is
// reserved for catastrophic misuse (missing workspace ID). A partially
// completed import is an accepted terminal state, never rolled back.
func (c *Coordinator) ImportCollection(ctx context.Context, workspaceID, content string) (result *ImportResult, err error) {
	if workspaceID == "" {
		return nil, errors.New("workspace id is required")
	}
	return c.importAs(ctx, workspaceID, content, Classify(content))
}

// ImportCollectionAs imports content as an explicitly chosen format,
// bypassing classification. Used when the caller already knows the format
// (e.g. a --format flag), which also admits YAML OpenAPI documents the
// JSON-based classifier cannot route.
func (c *Coordinator) ImportCollectionAs(ctx context.Context, workspaceID, content string, format Format) (*ImportResult, error) {
	if workspaceID == "" {
		return nil, errors.New("workspace id is required")
	}
	return c.importAs(ctx, workspaceID, content, format)
}

func (c *Coordinator) importAs(ctx context.Context, workspaceID, content string, format Format) (result *ImportResult, err error) {
	start := time.Now()
	result = &ImportResult{
		Collections:  []CollectionSummary{},
		Environments: []EnvironmentSummary{},
		Errors:       []ImportError{},
		Warnings:     []ImportWarning{},
	}

	// Converters are not expected to panic; if one does, the operation
	// degrades to a failed result instead of unwinding through the caller.
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("import panicked", "format", format, "panic", r)
			result.Errors = append(result.Errors, ImportError{
				Kind:    ErrorUnknown,
				Message: "unexpected failure during import",
				Details: fmt.Sprint(r),
			})
			result.Success = false
			// The panic interrupted the bookkeeping; fold the failure into
			// whatever counts had been accumulated so far.
			result.Summary.FailedItems++
			result.Summary.TotalItems = result.Summary.SuccessfulItems + result.Summary.FailedItems
			result.Summary.Duration = time.Since(start)
			err = nil
		}
	}()

	importer := c.registry.GetImporter(format)
	if importer == nil {
		result.Errors = append(result.Errors, ImportError{
			Kind:    ErrorParsing,
			Message: fmt.Sprintf("no importer available for format %q", format),
		})
		result.Summary.Duration = time.Since(start)
		return result, nil
	}

	c.logger.Debug("importing collection", "workspace", workspaceID, "format", format)

	bundle, importErr := importer.Import(workspaceID, []byte(content))
	if importErr != nil {
		var impErr *ImportError
		if errors.As(importErr, &impErr) {
			result.Errors = append(result.Errors, *impErr)
		} else {
			result.Errors = append(result.Errors, ImportError{
				Kind:    ErrorParsing,
				Message: "import failed",
				Details: importErr.Error(),
			})
		}
		result.Summary.FailedItems = 1
		result.Summary.TotalItems = 1
		result.Summary.Duration = time.Since(start)
		c.logger.Warn("import failed", "format", format, "error", importErr)
		return result, nil
	}

	result.Errors = append(result.Errors, bundle.Errors...)
	result.Warnings = append(result.Warnings, bundle.Warnings...)
	failed := len(bundle.Errors)
	successful := 0

	// Persist sequentially, one item at a time, in source-document order.
	// Every entity has a fresh ID, so there is no concurrent-write hazard
	// and no need for transactional atomicity.
	if createErr := c.collections.CreateCollection(ctx, bundle.Collection); createErr != nil {
		result.Errors = append(result.Errors, ImportError{
			Kind:    ErrorUnknown,
			Message: "failed to persist collection",
			Details: createErr.Error(),
		})
		result.Summary.FailedItems = failed + 1
		result.Summary.TotalItems = failed + 1
		result.Summary.Duration = time.Since(start)
		return result, nil
	}

	persisted := 0
	for _, req := range bundle.Requests {
		if createErr := c.collections.CreateRequest(ctx, req); createErr != nil {
			result.Errors = append(result.Errors, ImportError{
				Kind:     ErrorUnknown,
				Message:  "failed to persist request",
				Details:  createErr.Error(),
				ItemName: req.Name,
			})
			failed++
			continue
		}
		persisted++
		successful++
	}

	result.Collections = append(result.Collections, CollectionSummary{
		ID:           bundle.Collection.ID,
		Name:         bundle.Collection.Name,
		RequestCount: persisted,
		FolderCount:  bundle.FolderCount,
	})

	for _, env := range bundle.Environments {
		if c.environments != nil {
			if createErr := c.environments.CreateEnvironment(ctx, env); createErr != nil {
				result.Errors = append(result.Errors, ImportError{
					Kind:     ErrorUnknown,
					Message:  "failed to persist environment",
					Details:  createErr.Error(),
					ItemName: env.Name,
				})
				failed++
				continue
			}
		}
		successful++
		result.Environments = append(result.Environments, EnvironmentSummary{
			ID:            env.ID,
			Name:          env.Name,
			VariableCount: len(env.Variables),
		})
	}

	result.Success = len(result.Errors) == 0
	result.Summary = ImportSummary{
		TotalItems:      successful + failed,
		SuccessfulItems: successful,
		FailedItems:     failed,
		Duration:        time.Since(start),
	}

	c.logger.Info("import finished",
		"format", format,
		"collection", bundle.Collection.Name,
		"requests", persisted,
		"errors", len(result.Errors),
		"warnings", len(result.Warnings),
	)

	return result, nil
}

// ExportCollection loads a collection and its requests from the store and
// renders them in the target format. Unlike import, the format is caller
// specified — nothing is classified.
func (c *Coordinator) ExportCollection(ctx context.Context, collectionID string, format Format) (*ExportResult, error) {
	start := time.Now()

	if !format.CanExport() {
		return nil, &ExportError{Format: format, Message: "format does not support export"}
	}

	exporter := c.registry.GetExporter(format)
	if exporter == nil {
		return nil, &ExportError{Format: format, Message: "no exporter available for format"}
	}

	col, err := c.collections.GetCollection(ctx, collectionID)
	if err != nil {
		return nil, fmt.Errorf("loading collection %s: %w", collectionID, err)
	}

	requests, err := c.collections.ListRequests(ctx, collectionID)
	if err != nil {
		return nil, fmt.Errorf("listing requests for %s: %w", collectionID, err)
	}

	data, err := exporter.Export(col, requests)
	if err != nil {
		return nil, err
	}

	c.logger.Info("export finished", "format", format, "collection", col.Name, "requests", len(requests))

	return &ExportResult{
		Data:         data,
		Format:       format,
		RequestCount: len(requests),
		Duration:     time.Since(start),
	}, nil
}
