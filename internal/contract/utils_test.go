package contract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/gacscore/gacscore/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetColorLabel(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name     string
		input    float64
		expected string
	}{
		{"smallest value possible", 0, schema.PoorLabel},
		{"just before fair", 24.9, schema.PoorLabel},
		{"exactly fair", 25, schema.FairLabel},
		{"exactly good", 50, schema.GoodLabel},
		{"just before excellent", 74.99, schema.GoodLabel},
		{"exactly excellent", 75, schema.ExcellentLabel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetColorLabel(tt.input))
		})
	}
}

func TestSelectOutputFile(t *testing.T) {
	f, err := SelectOutputFile("")
	require.NoError(t, err)
	assert.Equal(t, os.Stdout, f)

	path := filepath.Join(t.TempDir(), "report.json")
	f, err = SelectOutputFile(path)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestStoreKeys(t *testing.T) {
	assert.Equal(t, "project/default", ProjectKey(""))
	assert.Equal(t, "project/lab", ProjectKey("lab"))
	assert.Equal(t, "project/lab/economy", DimensionKey("lab", "economy"))
	assert.Equal(t, "project/default/energy", DimensionKey("", "energy"))
}

func TestDBFilePaths(t *testing.T) {
	assert.NotEqual(t, GetProjectDBFilePath(), GetHistoryDBFilePath())
	assert.Equal(t, ".gacscore_projects.db", filepath.Base(GetProjectDBFilePath()))
	assert.Equal(t, ".gacscore_history.db", filepath.Base(GetHistoryDBFilePath()))
}

func TestTruncateText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		width    int
		expected string
	}{
		{"fits", "Energy", 10, "Energy"},
		{"truncated", "Sample preparation approach", 10, "Sample ..."},
		{"tiny width ignored", "Sample", 3, "Sample"},
		{"multibyte", "Σ mass·hcodes²", 8, "Σ mas..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TruncateText(tt.input, tt.width))
		})
	}
}

func TestParseBoolString(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
		wantErr  bool
	}{
		{"yes", true, false},
		{"TRUE", true, false},
		{"1", true, false},
		{"no", false, false},
		{"False", false, false},
		{"0", false, false},
		{"", false, true},
		{"maybe", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseBoolString(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
