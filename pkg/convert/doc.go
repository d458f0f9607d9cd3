// Package convert translates between the canonical collection/request model
// and external API-description formats: Postman Collection v2.1, Insomnia
// workspace exports, OpenAPI 3.0 documents, and raw curl command text.
//
// The engine is organized around three ideas:
//
//   - Classification: Classify inspects raw text and routes it to a
//     converter. Detection is shape-based (a few top-level key probes), not
//     full schema validation, and falls back to Postman for ambiguous input.
//
//   - Error isolation: converters fold over their source tree accumulating
//     (requests, errors, warnings) into a Bundle. One malformed item becomes
//     one conversion error; siblings are always processed. Only
//     whole-document failures (unparseable input, a missing Insomnia
//     workspace, an invalid OpenAPI shape) abort an import.
//
//   - Warnings over silence: source features with no canonical
//     representation (test scripts, auth configurations, file attachments)
//     are surfaced as warnings instead of being dropped without trace.
//     Warnings never fail an import.
//
// Coordinator ties it together: classify, dispatch, persist through the
// store sequentially in source order, and aggregate everything into a single
// ImportResult or ExportResult.
//
// All conversion work is synchronous, single-threaded tree traversal. Each
// call owns its own accumulators, so a Coordinator is safe for concurrent
// use as long as its stores are.
package convert
