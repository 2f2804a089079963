package contract

import (
	"testing"
	"time"

	"github.com/gacscore/gacscore/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() *ConfigRawInput {
	return &ConfigRawInput{
		Output:         "text",
		Precision:      1,
		Color:          "yes",
		ProjectBackend: "sqlite",
		HistoryBackend: "none",
	}
}

func TestProcessAndValidate(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(*ConfigRawInput)
		errSubstr string
	}{
		{
			name:   "valid minimal config",
			modify: func(*ConfigRawInput) {},
		},
		{
			name:      "invalid output",
			modify:    func(in *ConfigRawInput) { in.Output = "yaml" },
			errSubstr: "invalid output format",
		},
		{
			name:      "parquet without file",
			modify:    func(in *ConfigRawInput) { in.Output = "parquet" },
			errSubstr: "requires --output-file",
		},
		{
			name:      "precision too high",
			modify:    func(in *ConfigRawInput) { in.Precision = 3 },
			errSubstr: "precision must be 1 or 2",
		},
		{
			name:      "bad color",
			modify:    func(in *ConfigRawInput) { in.Color = "maybe" },
			errSubstr: "invalid --color value",
		},
		{
			name:      "bad autosave delay",
			modify:    func(in *ConfigRawInput) { in.AutosaveDelay = "soon" },
			errSubstr: "invalid autosave-delay",
		},
		{
			name:      "negative autosave delay",
			modify:    func(in *ConfigRawInput) { in.AutosaveDelay = "-1s" },
			errSubstr: "must be positive",
		},
		{
			name:      "tolerance too large",
			modify:    func(in *ConfigRawInput) { in.Tolerance = 10 },
			errSubstr: "tolerance must be",
		},
		{
			name:      "unknown backend",
			modify:    func(in *ConfigRawInput) { in.ProjectBackend = "redis" },
			errSubstr: "invalid project backend",
		},
		{
			name:      "mysql without connection string",
			modify:    func(in *ConfigRawInput) { in.HistoryBackend = "mysql" },
			errSubstr: "history-db-connect",
		},
		{
			name: "same sqlite file",
			modify: func(in *ConfigRawInput) {
				in.HistoryBackend = "sqlite"
				in.ProjectDBConnect = "same.db"
				in.HistoryDBConnect = "same.db"
			},
			errSubstr: "different SQLite database files",
		},
		{
			name:      "unknown selected dimension",
			modify:    func(in *ConfigRawInput) { in.Selected = "economy,unknown" },
			errSubstr: "unknown dimension 'unknown'",
		},
		{
			name:      "dimension weight out of range",
			modify:    func(in *ConfigRawInput) { in.DimensionWeights = map[string]float64{"economy": 120} },
			errSubstr: "between 0 and 100",
		},
		{
			name:      "unknown weighted dimension",
			modify:    func(in *ConfigRawInput) { in.DimensionWeights = map[string]float64{"nope": 10} },
			errSubstr: "unknown dimension 'nope'",
		},
		{
			name: "unknown weighted question",
			modify: func(in *ConfigRawInput) {
				in.QuestionWeights = map[string]map[string]float64{"energy": {"q9": 10}}
			},
			errSubstr: "unknown question 'energy/q9'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.modify(input)
			cfg := &Config{}
			err := ProcessAndValidate(cfg, input)
			if tt.errSubstr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSubstr)
		})
	}
}

func TestProcessAndValidateDefaults(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, validInput()))

	assert.Equal(t, schema.TextOut, cfg.Output)
	assert.Equal(t, DefaultAutosaveDelay, cfg.AutosaveDelay)
	assert.Equal(t, schema.WeightTolerance, cfg.Tolerance)
	assert.Equal(t, schema.SQLiteBackend, cfg.ProjectBackend)
	assert.Equal(t, schema.NoneBackend, cfg.HistoryBackend)
	assert.True(t, cfg.UseColors)
	assert.Nil(t, cfg.Selected)
	assert.Equal(t, DefaultProjectName, cfg.ResolvedProjectName())
}

func TestProcessSelection(t *testing.T) {
	input := validInput()
	input.Selected = " economy, energy ,,economy"
	input.AutosaveDelay = "2s"
	input.Project = "lab-a"

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))
	assert.Equal(t, []string{"economy", "energy"}, cfg.Selected)
	assert.Equal(t, 2*time.Second, cfg.AutosaveDelay)
	assert.Equal(t, "lab-a", cfg.ResolvedProjectName())
}

func TestProcessCustomWeights(t *testing.T) {
	t.Run("partial question weights pass", func(t *testing.T) {
		input := validInput()
		input.QuestionWeights = map[string]map[string]float64{"energy": {"q1": 70}}
		cfg := &Config{}
		require.NoError(t, ProcessAndValidate(cfg, input))
		assert.Equal(t, 70.0, cfg.QuestionWeights["energy"]["q1"])
	})

	t.Run("complete question weights must sum to 100", func(t *testing.T) {
		input := validInput()
		input.QuestionWeights = map[string]map[string]float64{"energy": {"q1": 50, "q2": 20, "q3": 10, "q4": 10}}
		err := ProcessAndValidate(&Config{}, input)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must sum to 100, got 90.00")
	})

	t.Run("complete question weights at 100", func(t *testing.T) {
		input := validInput()
		input.QuestionWeights = map[string]map[string]float64{"energy": {"q1": 40, "q2": 20, "q3": 20, "q4": 20}}
		require.NoError(t, ProcessAndValidate(&Config{}, input))
	})

	t.Run("dimension weight sums are left to the gate", func(t *testing.T) {
		input := validInput()
		input.DimensionWeights = map[string]float64{"economy": 80, "energy": 80}
		cfg := &Config{}
		require.NoError(t, ProcessAndValidate(cfg, input))
		assert.Len(t, cfg.DimensionWeights, 2)
	})
}

func TestValidateDatabaseConnectionString(t *testing.T) {
	tests := []struct {
		name    string
		backend schema.DatabaseBackend
		conn    string
		wantErr bool
	}{
		{"sqlite empty", schema.SQLiteBackend, "", false},
		{"none empty", schema.NoneBackend, "", false},
		{"mysql valid", schema.MySQLBackend, "user:pass@tcp(localhost:3306)/gac", false},
		{"mysql no tcp", schema.MySQLBackend, "user:pass@localhost/gac", true},
		{"mysql empty", schema.MySQLBackend, "", true},
		{"postgres valid", schema.PostgreSQLBackend, "host=localhost user=gac dbname=gac", false},
		{"postgres no dbname", schema.PostgreSQLBackend, "host=localhost", true},
		{"postgres no host", schema.PostgreSQLBackend, "dbname=gac", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDatabaseConnectionString(tt.backend, tt.conn)
			assert.Equal(t, tt.wantErr, err != nil, err)
		})
	}
}

func TestConfigClone(t *testing.T) {
	cfg := &Config{
		Selected:         []string{"economy"},
		DimensionWeights: map[string]float64{"economy": 50},
		QuestionWeights:  map[string]map[string]float64{"economy": {"q1": 40}},
	}
	clone := cfg.Clone()
	clone.Selected[0] = "energy"
	clone.DimensionWeights["economy"] = 10
	clone.QuestionWeights["economy"]["q1"] = 10

	assert.Equal(t, "economy", cfg.Selected[0])
	assert.Equal(t, 50.0, cfg.DimensionWeights["economy"])
	assert.Equal(t, 40.0, cfg.QuestionWeights["economy"]["q1"])
}
