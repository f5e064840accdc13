package banks

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColumnFor(t *testing.T) {
	cal := DefaultRegistry().Fallback

	tests := []struct {
		name     string
		x        float64
		expected string
	}{
		{"left edge is date", 30, ColDate},
		{"value date band", 100, ColValueDate},
		{"narration", 200, ColDescription},
		{"debit band", 370, ColDebit},
		{"credit band", 460, ColCredit},
		{"balance band", 550, ColBalance},
		{"beyond right edge snaps to balance", 700, ColBalance},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, cal.ColumnFor(tc.x))
		})
	}
}

func TestRegistryFor(t *testing.T) {
	reg := DefaultRegistry()

	zenith := reg.For("Zenith Bank")
	assert.Contains(t, zenith.Columns, ColValueDate)

	gtb := reg.For("GTBank")
	assert.NotContains(t, gtb.Columns, ColValueDate)

	// Unrecognized issuers get the documented fallback.
	assert.Equal(t, reg.Fallback, reg.For("Some Microfinance Bank"))
	assert.Equal(t, reg.Fallback, reg.For(UnknownBank))
}

func TestLoadRegistryMergesOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "calibrations.yaml")
	content := `
calibrations:
  "Kuda Bank":
    line_tolerance: 4
    columns:
      date: {min: 0, max: 60}
      description: {min: 60, max: 300}
      debit: {min: 300, max: 400}
      credit: {min: 400, max: 500}
      balance: {min: 500, max: 600}
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	reg, err := LoadRegistry(path)
	require.NoError(t, err)

	kuda := reg.For("Kuda Bank")
	assert.Equal(t, 4.0, kuda.LineTolerance)
	assert.Equal(t, Range{Min: 0, Max: 60}, kuda.Columns[ColDate])

	// Defaults survive the merge.
	assert.Contains(t, reg.Calibrations, "Zenith Bank")
	assert.NotNil(t, reg.Fallback.Columns)
}

func TestLoadRegistryErrors(t *testing.T) {
	_, err := LoadRegistry(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("calibrations: ["), 0o600))
	_, err = LoadRegistry(bad)
	assert.Error(t, err)
}
