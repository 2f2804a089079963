package contract

import (
	"fmt"
	"maps"
	"math"
	"strings"
	"time"

	"github.com/gacscore/gacscore/core/catalog"
	"github.com/gacscore/gacscore/schema"
)

// Default values for configuration.
const (
	DefaultPrecision     = 1
	DefaultAutosaveDelay = 500 * time.Millisecond
	DefaultProjectName   = "default"
	MaxTolerance         = 5.0
)

// Config holds the runtime configuration for an assessment.
// This struct remains the "final, validated" config.
type Config struct {
	Output     schema.OutputMode
	OutputFile string
	Precision  int
	Width      int // Terminal width override (0 = auto-detect)
	Detail     bool
	UseColors  bool // Enable colored labels in table output

	ProjectPath string // Project file given as a positional argument
	ProjectName string
	Selected    []string

	ProjectBackend   schema.DatabaseBackend
	ProjectDBConnect string // Please use env var as this is plaintext

	HistoryBackend   schema.DatabaseBackend
	HistoryDBConnect string // Please use env var as this is plaintext

	AutosaveDelay time.Duration
	Tolerance     float64
	Record        bool
	Save          bool

	// DimensionWeights is a mapping of [DimensionID] = Weight
	DimensionWeights map[string]float64

	// QuestionWeights is a mapping of [DimensionID][QuestionID] = Weight
	QuestionWeights map[string]map[string]float64
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	ProjectPathStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	Output           string `mapstructure:"output"`
	OutputFile       string `mapstructure:"output-file"`
	Precision        int    `mapstructure:"precision"`
	Width            int    `mapstructure:"width"`
	Detail           bool   `mapstructure:"detail"`
	Color            string `mapstructure:"color"`
	ProjectBackend   string `mapstructure:"project-backend"`
	ProjectDBConnect string `mapstructure:"project-db-connect"`
	HistoryBackend   string `mapstructure:"history-backend"`
	HistoryDBConnect string `mapstructure:"history-db-connect"`
	AutosaveDelay    string `mapstructure:"autosave-delay"`
	Project          string `mapstructure:"project"`
	Selected         string `mapstructure:"selected"`

	// --- Fields from checkCmd.Flags() ---
	Tolerance float64 `mapstructure:"tolerance"`

	// --- Fields from scoreCmd.Flags() ---
	Record bool `mapstructure:"record"`
	Save   bool `mapstructure:"save"`

	// --- Custom weights from config file ---
	DimensionWeights map[string]float64            `mapstructure:"dimension-weights"`
	QuestionWeights  map[string]map[string]float64 `mapstructure:"question-weights"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Selected != nil {
		clone.Selected = make([]string, len(c.Selected))
		copy(clone.Selected, c.Selected)
	}
	if c.DimensionWeights != nil {
		clone.DimensionWeights = make(map[string]float64, len(c.DimensionWeights))
		maps.Copy(clone.DimensionWeights, c.DimensionWeights)
	}
	if c.QuestionWeights != nil {
		clone.QuestionWeights = make(map[string]map[string]float64, len(c.QuestionWeights))
		for dimID, weights := range c.QuestionWeights {
			clone.QuestionWeights[dimID] = make(map[string]float64, len(weights))
			maps.Copy(clone.QuestionWeights[dimID], weights)
		}
	}
	return &clone
}

// ResolvedProjectName returns the project name used for store keys.
func (c *Config) ResolvedProjectName() string {
	if c.ProjectName == "" {
		return DefaultProjectName
	}
	return c.ProjectName
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processSelection(cfg, input); err != nil {
		return err
	}
	if err := processCustomWeights(cfg, input); err != nil {
		return err
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateBackendConfigs validates project and history backend configurations.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	// --- Project Backend Validation ---
	cfg.ProjectBackend = schema.DatabaseBackend(strings.ToLower(input.ProjectBackend))
	if cfg.ProjectBackend == "" {
		cfg.ProjectBackend = schema.SQLiteBackend
	}
	if _, ok := schema.ValidDatabaseBackends[cfg.ProjectBackend]; !ok {
		return fmt.Errorf("invalid project backend '%s'. must be sqlite, mysql, postgresql, none", input.ProjectBackend)
	}
	cfg.ProjectDBConnect = input.ProjectDBConnect
	if err := ValidateDatabaseConnectionString(cfg.ProjectBackend, cfg.ProjectDBConnect); err != nil {
		return fmt.Errorf("project-db-connect: %w", err)
	}

	// --- History Backend Validation ---
	cfg.HistoryBackend = schema.DatabaseBackend(strings.ToLower(input.HistoryBackend))
	if cfg.HistoryBackend == "" {
		cfg.HistoryBackend = schema.NoneBackend
	}
	if _, ok := schema.ValidDatabaseBackends[cfg.HistoryBackend]; !ok {
		return fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", input.HistoryBackend)
	}
	cfg.HistoryDBConnect = input.HistoryDBConnect
	if err := ValidateDatabaseConnectionString(cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
		return fmt.Errorf("history-db-connect: %w", err)
	}

	// For SQLite, resolve to actual file paths to catch default path conflicts
	if cfg.ProjectBackend == schema.SQLiteBackend && cfg.HistoryBackend == schema.SQLiteBackend {
		projectDBPath := cfg.ProjectDBConnect
		if projectDBPath == "" {
			projectDBPath = GetProjectDBFilePath()
		}
		historyDBPath := cfg.HistoryDBConnect
		if historyDBPath == "" {
			historyDBPath = GetHistoryDBFilePath()
		}
		if projectDBPath == historyDBPath {
			return fmt.Errorf("project and history storage must use different SQLite database files. Both resolve to %q", projectDBPath)
		}
	}
	return nil
}

// validateSimpleInputs processes and validates all scalar fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.OutputFile = input.OutputFile
	cfg.Detail = input.Detail
	cfg.Width = input.Width
	cfg.Record = input.Record
	cfg.Save = input.Save
	cfg.ProjectPath = strings.TrimSpace(input.ProjectPathStr)
	cfg.ProjectName = strings.TrimSpace(input.Project)

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. Precision and Output Validation ---
	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}

	// --- 2. Autosave and Tolerance ---
	cfg.AutosaveDelay = DefaultAutosaveDelay
	if input.AutosaveDelay != "" {
		delay, err := time.ParseDuration(input.AutosaveDelay)
		if err != nil {
			return fmt.Errorf("invalid autosave-delay '%s': %w", input.AutosaveDelay, err)
		}
		if delay <= 0 {
			return fmt.Errorf("autosave-delay must be positive (received %s)", delay)
		}
		cfg.AutosaveDelay = delay
	}

	cfg.Tolerance = schema.WeightTolerance
	if input.Tolerance != 0 {
		if input.Tolerance < 0 || input.Tolerance > MaxTolerance || math.IsNaN(input.Tolerance) {
			return fmt.Errorf("tolerance must be greater than 0 and cannot exceed %.0f (received %v)", MaxTolerance, input.Tolerance)
		}
		cfg.Tolerance = input.Tolerance
	}

	// --- 3. Backend Validation ---
	return validateBackendConfigs(cfg, input)
}

// RevalidateSelection re-parses a dimension selection given outside the CLI, such as an MCP tool call.
// An empty selection keeps the current one.
func RevalidateSelection(cfg *Config, selected string) error {
	if strings.TrimSpace(selected) == "" {
		return nil
	}
	return processSelection(cfg, &ConfigRawInput{Selected: selected})
}

// RevalidateTolerance checks a weight gate tolerance given outside the CLI.
// Zero keeps the current tolerance.
func RevalidateTolerance(cfg *Config, tolerance float64) error {
	if tolerance == 0 {
		return nil
	}
	if tolerance < 0 || tolerance > MaxTolerance {
		return fmt.Errorf("tolerance must be between 0 and %.0f", MaxTolerance)
	}
	cfg.Tolerance = tolerance
	return nil
}

// processSelection parses the comma separated dimension list.
func processSelection(cfg *Config, input *ConfigRawInput) error {
	cfg.Selected = nil
	if input.Selected == "" {
		return nil
	}
	seen := make(map[string]struct{})
	for p := range strings.SplitSeq(input.Selected, ",") {
		id := strings.TrimSpace(p)
		if id == "" {
			continue
		}
		if _, ok := catalog.Lookup(id); !ok {
			return fmt.Errorf("unknown dimension '%s' in selected. must be one of %s", id, strings.Join(catalog.IDs(), ", "))
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		cfg.Selected = append(cfg.Selected, id)
	}
	return nil
}

// processCustomWeights validates the weight overrides from the config file.
// Dimension weights are range checked only; their sum is reported by the weight gate.
// Question weights that cover a whole dimension must sum to 100 within tolerance.
func processCustomWeights(cfg *Config, input *ConfigRawInput) error {
	cfg.DimensionWeights = nil
	if len(input.DimensionWeights) > 0 {
		cfg.DimensionWeights = make(map[string]float64, len(input.DimensionWeights))
		for dimID, w := range input.DimensionWeights {
			if _, ok := catalog.Lookup(dimID); !ok {
				return fmt.Errorf("unknown dimension '%s' in dimension-weights", dimID)
			}
			if err := validateWeight(w); err != nil {
				return fmt.Errorf("dimension-weights %s: %w", dimID, err)
			}
			cfg.DimensionWeights[dimID] = w
		}
	}

	cfg.QuestionWeights = nil
	if len(input.QuestionWeights) > 0 {
		cfg.QuestionWeights = make(map[string]map[string]float64, len(input.QuestionWeights))
		for dimID, weights := range input.QuestionWeights {
			dim, ok := catalog.Lookup(dimID)
			if !ok {
				return fmt.Errorf("unknown dimension '%s' in question-weights", dimID)
			}
			out := make(map[string]float64, len(weights))
			for qID, w := range weights {
				if dim.Question(qID) == nil {
					return fmt.Errorf("unknown question '%s/%s' in question-weights", dimID, qID)
				}
				if err := validateWeight(w); err != nil {
					return fmt.Errorf("question-weights %s/%s: %w", dimID, qID, err)
				}
				out[qID] = w
			}
			if len(out) == len(dim.QuestionIDs()) {
				sum := 0.0
				for _, qID := range dim.QuestionIDs() {
					sum += out[qID]
				}
				if math.Abs(sum-100) > cfg.Tolerance {
					return fmt.Errorf("question weights for dimension %s must sum to 100, got %.2f", dimID, sum)
				}
			}
			cfg.QuestionWeights[dimID] = out
		}
	}
	return nil
}

func validateWeight(w float64) error {
	if math.IsNaN(w) || w < 0 || w > 100 {
		return fmt.Errorf("weight must be between 0 and 100 (received %v)", w)
	}
	return nil
}
