package convert

import (
	"sync"
)

// Registry maps formats to their converters. The coordinator resolves every
// import/export dispatch through one; converters never reference each other.
type Registry struct {
	mu        sync.RWMutex
	importers map[Format]Importer
	exporters map[Format]Exporter
}

// defaultRegistry is the global registry instance; converters register
// themselves in init().
var defaultRegistry = NewRegistry()

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		importers: make(map[Format]Importer),
		exporters: make(map[Format]Exporter),
	}
}

// RegisterImporter adds an importer to the default registry. Called from the
// converters' init functions.
func RegisterImporter(importer Importer) {
	defaultRegistry.RegisterImporter(importer)
}

// RegisterExporter adds an exporter to the default registry.
func RegisterExporter(exporter Exporter) {
	defaultRegistry.RegisterExporter(exporter)
}

// GetImporter resolves a format against the default registry.
func GetImporter(format Format) Importer {
	return defaultRegistry.GetImporter(format)
}

// GetExporter resolves a format against the default registry.
func GetExporter(format Format) Exporter {
	return defaultRegistry.GetExporter(format)
}

// RegisterImporter adds an importer, replacing any previous one for the same
// format.
func (r *Registry) RegisterImporter(importer Importer) {
	if importer == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.importers[importer.Format()] = importer
}

// RegisterExporter adds an exporter, replacing any previous one for the same
// format.
func (r *Registry) RegisterExporter(exporter Exporter) {
	if exporter == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.exporters[exporter.Format()] = exporter
}

// GetImporter returns the importer for a format, or nil.
func (r *Registry) GetImporter(format Format) Importer {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.importers[format]
}

// GetExporter returns the exporter for a format, or nil.
func (r *Registry) GetExporter(format Format) Exporter {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.exporters[format]
}

// HasImporter reports whether an importer is registered for the format.
func (r *Registry) HasImporter(format Format) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.importers[format]
	return ok
}

// HasExporter reports whether an exporter is registered for the format.
func (r *Registry) HasExporter(format Format) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.exporters[format]
	return ok
}
