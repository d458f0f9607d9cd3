package convert

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xbklairith/postgirl-sub001/pkg/collection"
	"github.com/xbklairith/postgirl-sub001/pkg/store"
)

func newTestCoordinator(t *testing.T) (*Coordinator, *store.MemoryStore) {
	t.Helper()
	mem := store.NewMemoryStore()
	return NewCoordinator(mem, mem, nil), mem
}

func TestCoordinatorImportPostman(t *testing.T) {
	coord, mem := newTestCoordinator(t)
	ctx := context.Background()

	result, err := coord.ImportCollection(ctx, "ws-1", postmanSample)
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Empty(t, result.Errors)
	require.Len(t, result.Collections, 1)

	summary := result.Collections[0]
	assert.Equal(t, "Sample API", summary.Name)
	assert.Equal(t, 3, summary.RequestCount)
	assert.Equal(t, 2, summary.FolderCount)

	assert.Equal(t, 3, result.Summary.TotalItems)
	assert.Equal(t, 3, result.Summary.SuccessfulItems)
	assert.Equal(t, 0, result.Summary.FailedItems)
	assert.Greater(t, result.Summary.Duration.Nanoseconds(), int64(0))

	// The collection and its requests are actually in the store, in order.
	col, err := mem.GetCollection(ctx, summary.ID)
	require.NoError(t, err)
	assert.Equal(t, "ws-1", col.WorkspaceID)

	requests, err := mem.ListRequests(ctx, summary.ID)
	require.NoError(t, err)
	require.Len(t, requests, 3)
	assert.Equal(t, "List users", requests[0].Name)
	assert.Equal(t, "Create user", requests[1].Name)
	assert.Equal(t, "Update user", requests[2].Name)
}

func TestCoordinatorImportRequiresWorkspace(t *testing.T) {
	coord, _ := newTestCoordinator(t)

	_, err := coord.ImportCollection(context.Background(), "", postmanSample)
	require.Error(t, err)

	_, err = coord.ImportCollectionAs(context.Background(), "", postmanSample, FormatPostman)
	require.Error(t, err)
}

func TestCoordinatorImportClassifies(t *testing.T) {
	coord, _ := newTestCoordinator(t)
	ctx := context.Background()

	result, err := coord.ImportCollection(ctx, "ws", `curl https://api.example.com/ping`)
	require.NoError(t, err)
	assert.True(t, result.Success)
	require.Len(t, result.Collections, 1)
	assert.Equal(t, "Imported from curl", result.Collections[0].Name)
}

func TestCoordinatorImportAsExplicitFormat(t *testing.T) {
	coord, _ := newTestCoordinator(t)
	ctx := context.Background()

	// YAML never survives JSON classification; the explicit path accepts it.
	doc := "openapi: \"3.0.0\"\ninfo:\n  title: YAML API\npaths:\n  /ping:\n    get: {}\n"
	result, err := coord.ImportCollectionAs(ctx, "ws", doc, FormatOpenAPI)
	require.NoError(t, err)
	assert.True(t, result.Success)
	require.Len(t, result.Collections, 1)
	assert.Equal(t, "YAML API", result.Collections[0].Name)
	assert.Equal(t, 1, result.Collections[0].RequestCount)
}

func TestCoordinatorImportUnknownFormat(t *testing.T) {
	coord, _ := newTestCoordinator(t)

	result, err := coord.ImportCollectionAs(context.Background(), "ws", "{}", FormatUnknown)
	require.NoError(t, err, "a missing importer is a result error, not a call error")
	assert.False(t, result.Success)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, ErrorParsing, result.Errors[0].Kind)
	assert.Empty(t, result.Collections)
}

func TestCoordinatorImportFatalParseError(t *testing.T) {
	coord, mem := newTestCoordinator(t)
	ctx := context.Background()

	result, err := coord.ImportCollectionAs(ctx, "ws", "{broken", FormatPostman)
	require.NoError(t, err)

	assert.False(t, result.Success)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, ErrorParsing, result.Errors[0].Kind)
	assert.Equal(t, 1, result.Summary.TotalItems)
	assert.Equal(t, 1, result.Summary.FailedItems)

	cols, listErr := mem.ListCollections(ctx, "ws")
	require.NoError(t, listErr)
	assert.Empty(t, cols, "nothing is persisted when parsing fails outright")
}

func TestCoordinatorImportPartialFailure(t *testing.T) {
	coord, mem := newTestCoordinator(t)
	ctx := context.Background()

	doc := `{
	  "info": {"name": "Mixed", "schema": "postman"},
	  "item": [
	    {"name": "good-1", "request": {"method": "GET", "url": "https://x.test/1"}},
	    {"name": "bad", "request": {"method": "GET", "url": 42}},
	    {"name": "good-2", "request": {"method": "GET", "url": "https://x.test/2"}}
	  ]
	}`

	result, err := coord.ImportCollection(ctx, "ws", doc)
	require.NoError(t, err)

	assert.False(t, result.Success, "any error flips success, warnings never do")
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "bad", result.Errors[0].ItemName)

	require.Len(t, result.Collections, 1)
	assert.Equal(t, 2, result.Collections[0].RequestCount)
	assert.Equal(t, 3, result.Summary.TotalItems)
	assert.Equal(t, 2, result.Summary.SuccessfulItems)
	assert.Equal(t, 1, result.Summary.FailedItems)

	requests, listErr := mem.ListRequests(ctx, result.Collections[0].ID)
	require.NoError(t, listErr)
	require.Len(t, requests, 2, "the surviving items are persisted despite the failure")
}

func TestCoordinatorImportWarningsKeepSuccess(t *testing.T) {
	coord, _ := newTestCoordinator(t)
	ctx := context.Background()

	doc := `{
	  "info": {"name": "C", "schema": "postman"},
	  "item": [{
	    "name": "Secure",
	    "request": {
	      "method": "GET",
	      "url": "https://x.test/",
	      "auth": {"type": "bearer"}
	    }
	  }]
	}`

	result, err := coord.ImportCollection(ctx, "ws", doc)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.NotEmpty(t, result.Warnings)
	assert.Empty(t, result.Errors)
}

func TestCoordinatorImportEnvironments(t *testing.T) {
	coord, mem := newTestCoordinator(t)
	ctx := context.Background()

	result, err := coord.ImportCollection(ctx, "ws", insomniaSample)
	require.NoError(t, err)
	assert.True(t, result.Success)
	require.Len(t, result.Environments, 1)
	assert.Equal(t, "Base Environment", result.Environments[0].Name)
	assert.Equal(t, 2, result.Environments[0].VariableCount)

	envs, listErr := mem.ListEnvironments(ctx, "ws")
	require.NoError(t, listErr)
	require.Len(t, envs, 1)
}

// failingRequestStore wraps MemoryStore and fails CreateRequest for one name.
type failingRequestStore struct {
	*store.MemoryStore
	failName string
}

func (s *failingRequestStore) CreateRequest(ctx context.Context, req *collection.Request) error {
	if req.Name == s.failName {
		return errors.New("disk full")
	}
	return s.MemoryStore.CreateRequest(ctx, req)
}

func TestCoordinatorPersistenceFailureIsIsolated(t *testing.T) {
	mem := store.NewMemoryStore()
	failing := &failingRequestStore{MemoryStore: mem, failName: "Create user"}
	coord := NewCoordinator(failing, mem, nil)
	ctx := context.Background()

	result, err := coord.ImportCollection(ctx, "ws", postmanSample)
	require.NoError(t, err)

	assert.False(t, result.Success)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, ErrorUnknown, result.Errors[0].Kind)
	assert.Equal(t, "Create user", result.Errors[0].ItemName)

	require.Len(t, result.Collections, 1)
	assert.Equal(t, 2, result.Collections[0].RequestCount,
		"the remaining requests still persist after a store failure")
}

// panickingImporter blows up mid-import to exercise the recovery path.
type panickingImporter struct{}

func (p *panickingImporter) Import(string, []byte) (*Bundle, error) {
	panic("converter bug")
}

func (p *panickingImporter) Format() Format { return FormatPostman }

func TestCoordinatorImportPanicDegradesToResult(t *testing.T) {
	mem := store.NewMemoryStore()
	coord := NewCoordinator(mem, mem, nil)
	coord.registry = NewRegistry()
	coord.registry.RegisterImporter(&panickingImporter{})

	result, err := coord.ImportCollectionAs(context.Background(), "ws", "{}", FormatPostman)
	require.NoError(t, err, "a panicking converter must not unwind through the caller")

	assert.False(t, result.Success)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, ErrorUnknown, result.Errors[0].Kind)
	assert.Contains(t, result.Errors[0].Details, "converter bug")

	assert.Equal(t, 1, result.Summary.TotalItems)
	assert.Equal(t, 1, result.Summary.FailedItems)
	assert.Equal(t, 0, result.Summary.SuccessfulItems)
	assert.Greater(t, result.Summary.Duration.Nanoseconds(), int64(0))
}

func TestCoordinatorExport(t *testing.T) {
	coord, _ := newTestCoordinator(t)
	ctx := context.Background()

	imported, err := coord.ImportCollection(ctx, "ws", postmanSample)
	require.NoError(t, err)
	require.Len(t, imported.Collections, 1)
	id := imported.Collections[0].ID

	exported, err := coord.ExportCollection(ctx, id, FormatCURL)
	require.NoError(t, err)
	assert.Equal(t, FormatCURL, exported.Format)
	assert.Equal(t, 3, exported.RequestCount)
	assert.Contains(t, string(exported.Data), "# List users")
	assert.Contains(t, string(exported.Data), "curl ")
}

func TestCoordinatorExportUnsupportedFormat(t *testing.T) {
	coord, _ := newTestCoordinator(t)

	_, err := coord.ExportCollection(context.Background(), "any", FormatInsomnia)
	require.Error(t, err)

	var expErr *ExportError
	require.ErrorAs(t, err, &expErr)
	assert.Equal(t, FormatInsomnia, expErr.Format)
}

func TestCoordinatorExportUnknownCollection(t *testing.T) {
	coord, _ := newTestCoordinator(t)

	_, err := coord.ExportCollection(context.Background(), "nope", FormatPostman)
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCoordinatorFullConversionPipeline(t *testing.T) {
	coord, _ := newTestCoordinator(t)
	ctx := context.Background()

	// OpenAPI in, Postman out.
	imported, err := coord.ImportCollection(ctx, "ws", openAPISample)
	require.NoError(t, err)
	require.True(t, imported.Success)
	id := imported.Collections[0].ID

	exported, err := coord.ExportCollection(ctx, id, FormatPostman)
	require.NoError(t, err)
	assert.Equal(t, FormatPostman, exported.Format)
	assert.Equal(t, 3, exported.RequestCount)

	// The exported document classifies and imports as Postman.
	assert.Equal(t, FormatPostman, Classify(string(exported.Data)))
	reimported, err := coord.ImportCollection(ctx, "ws", string(exported.Data))
	require.NoError(t, err)
	assert.True(t, reimported.Success)
	assert.Equal(t, 3, reimported.Collections[0].RequestCount)
}
