package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistryRegistrations(t *testing.T) {
	for _, f := range []Format{FormatPostman, FormatInsomnia, FormatOpenAPI, FormatCURL} {
		imp := defaultRegistry.GetImporter(f)
		require.NotNil(t, imp, "importer for %s", f)
		assert.Equal(t, f, imp.Format())
	}

	for _, f := range []Format{FormatPostman, FormatCURL} {
		exp := defaultRegistry.GetExporter(f)
		require.NotNil(t, exp, "exporter for %s", f)
		assert.Equal(t, f, exp.Format())
	}

	assert.Nil(t, defaultRegistry.GetImporter(FormatUnknown))
	assert.Nil(t, defaultRegistry.GetExporter(FormatInsomnia))
	assert.Nil(t, defaultRegistry.GetExporter(FormatOpenAPI))
}

func TestRegistryIsolation(t *testing.T) {
	r := NewRegistry()
	assert.Nil(t, r.GetImporter(FormatPostman), "a fresh registry starts empty")

	r.RegisterImporter(&PostmanImporter{})
	assert.NotNil(t, r.GetImporter(FormatPostman))
	assert.True(t, r.HasImporter(FormatPostman))
	assert.False(t, r.HasExporter(FormatPostman))
}
