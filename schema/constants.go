package schema

// Custom string types for type safety.
type (
	// QuestionType represents how a question collects and scores its answer.
	QuestionType string

	// Scale represents the native range of a raw question score.
	Scale string

	// FormulaID identifies a closed-form multi-input formula.
	FormulaID string

	// AnswerKind tags the variant held by an Answer.
	AnswerKind string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for project and history storage.
	DatabaseBackend string
)

// All question types supported.
const (
	InputQuestion      QuestionType = "input"
	SelectQuestion     QuestionType = "select"
	CheckboxQuestion   QuestionType = "checkbox"
	MultiInputQuestion QuestionType = "multi-input"
)

// All score scales. Checkbox questions score on ScaleTen; everything else on ScalePercent.
const (
	ScalePercent Scale = "percent" // 0-100
	ScaleTen     Scale = "ten"     // 0-10
)

// Max returns the upper bound of the scale.
func (s Scale) Max() float64 {
	if s == ScaleTen {
		return 10
	}
	return 100
}

// All answer kinds.
const (
	AnswerEmpty   AnswerKind = "empty"
	AnswerText    AnswerKind = "text"    // input, select
	AnswerChoices AnswerKind = "choices" // checkbox
	AnswerFields  AnswerKind = "fields"  // multi-input
	AnswerRows    AnswerKind = "rows"    // repeating multi-input
)

// Formula identifiers, one per multi-input question family.
const (
	ResourceAccuracy        FormulaID = "resource-accuracy"
	ScaleInStability        FormulaID = "scale-in-stability"
	MinimizationSensitivity FormulaID = "minimization-sensitivity"
	EconomicBurden          FormulaID = "economic-burden"
	TimeOutput              FormulaID = "time-output"
	ResourceProductivity    FormulaID = "resource-productivity"
	AtmosphericSafety       FormulaID = "atmospheric-safety"
	OperationalEnergy       FormulaID = "operational-energy"
	WasteBurden             FormulaID = "waste-burden"
	PrecisionAccuracy       FormulaID = "precision-accuracy"
	SensitivityLinearity    FormulaID = "sensitivity-linearity"
	OccupationalExposure    FormulaID = "occupational-exposure"
	PhysicalProtection      FormulaID = "physical-protection"
	ThermalRunaway          FormulaID = "thermal-runaway"
	DigitalTransfer         FormulaID = "digital-transfer"
	AuditTrail              FormulaID = "audit-trail"
	MetadataRedundancy      FormulaID = "metadata-redundancy"
	CircularLoop            FormulaID = "circular-loop"
	BiomassSubstitution     FormulaID = "biomass-substitution"
	EcosystemIntegration    FormulaID = "ecosystem-integration"
	MethodologicalSynergy   FormulaID = "methodological-synergy"
	StructuralAdvancement   FormulaID = "structural-advancement"
	TheoreticalExtension    FormulaID = "theoretical-extension"
	MultiReagentHazard      FormulaID = "multi-reagent-hazard"
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All storage backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// WeightTolerance is the allowed deviation from 100 when validating weight sums.
const WeightTolerance = 0.01

// ValidQuestionTypes lists all valid question types.
var ValidQuestionTypes = map[QuestionType]struct{}{
	InputQuestion:      {},
	SelectQuestion:     {},
	CheckboxQuestion:   {},
	MultiInputQuestion: {},
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid storage backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}
