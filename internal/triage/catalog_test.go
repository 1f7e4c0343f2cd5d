package triage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCatalog(t *testing.T) {
	raw := `[
		{
			"panel": "Hemoglobin (HB)",
			"fields": [
				{
					"field": "Hemoglobin Level",
					"bands": [
						{"op": "<", "bound": 6.0, "severity": "critical", "message": "life-threatening anemia"},
						{"op": "<", "bound": 12.0, "severity": "abnormal", "message": "anemia"}
					]
				}
			]
		},
		{
			"panel": "HIV Screening",
			"fields": [
				{
					"field": "HIV 1/2 Antibody",
					"tokens": [
						{"value": "reactive", "exact": true, "severity": "critical", "message": "reactive screen"}
					]
				}
			]
		}
	]`
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o600))

	catalog, err := LoadCatalog(path)
	require.NoError(t, err)
	require.Len(t, catalog.Panels(), 2)

	findings := catalog.Evaluate(map[string]map[string]string{
		"Hemoglobin (HB)": {"Hemoglobin Level": "5.0"},
		"HIV Screening":   {"HIV 1/2 Antibody": "REACTIVE"},
	})
	require.Len(t, findings, 2)
	assert.Equal(t, SeverityCritical, findings[0].Severity)
	assert.Equal(t, SeverityCritical, findings[1].Severity)
}

func TestLoadCatalogErrors(t *testing.T) {
	_, err := LoadCatalog(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))
	_, err = LoadCatalog(path)
	assert.Error(t, err)

	empty := filepath.Join(t.TempDir(), "empty.json")
	require.NoError(t, os.WriteFile(empty, []byte("[]"), 0o600))
	_, err = LoadCatalog(empty)
	assert.Error(t, err)
}

func TestCatalogLookup(t *testing.T) {
	catalog := DefaultCatalog()

	rule, ok := catalog.Lookup("  complete blood count (cbc) ")
	require.True(t, ok)
	assert.Equal(t, "Complete Blood Count (CBC)", rule.Panel)

	_, ok = catalog.Lookup("Panel Nobody Configured")
	assert.False(t, ok)
}

func TestDefaultCatalogShape(t *testing.T) {
	panels := DefaultCatalog().Panels()
	assert.GreaterOrEqual(t, len(panels), 25)
	for _, p := range panels {
		assert.NotEmpty(t, p.Panel)
		assert.NotEmpty(t, p.Fields, "%s has no field rules", p.Panel)
		for _, fr := range p.Fields {
			// a field carries bands or tokens, never both
			assert.False(t, len(fr.Bands) > 0 && len(fr.Tokens) > 0,
				"%s/%s mixes bands and tokens", p.Panel, fr.Field)
		}
	}
}
