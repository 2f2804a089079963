package algo

import (
	"slices"

	"github.com/gacscore/gacscore/core/formula"
	"github.com/gacscore/gacscore/schema"
)

// formulaBinding ties a formula id to its ordered field keys and evaluator.
type formulaBinding struct {
	fields []string
	eval   func(v []float64) float64
}

// bind2 and bind3 adapt fixed-arity formulas to the slice evaluator.
func bind2(fn func(a, b float64) float64, a, b string) formulaBinding {
	return formulaBinding{
		fields: []string{a, b},
		eval:   func(v []float64) float64 { return fn(v[0], v[1]) },
	}
}

func bind3(fn func(a, b, c float64) float64, a, b, c string) formulaBinding {
	return formulaBinding{
		fields: []string{a, b, c},
		eval:   func(v []float64) float64 { return fn(v[0], v[1], v[2]) },
	}
}

// formulas is the single table of multi-input formulas. The multi-reagent
// hazard index is list-based and handled separately.
var formulas = map[schema.FormulaID]formulaBinding{
	schema.ResourceAccuracy:        bind2(formula.ResourceAccuracyIndex, "Y", "A"),
	schema.ScaleInStability:        bind2(formula.ScaleInStabilityIndex, "P", "R"),
	schema.MinimizationSensitivity: bind2(formula.MinimizationSensitivityGain, "wasteRatio", "S"),
	schema.EconomicBurden:          bind2(formula.EconomicBurdenIndex, "cost", "time"),
	schema.TimeOutput:              bind2(formula.TimeOutputEfficiency, "runtime", "analytes"),
	schema.ResourceProductivity:    bind2(formula.ResourceProductivityRatio, "analytes", "volume"),
	schema.AtmosphericSafety:       bind3(formula.AtmosphericSafetyIndex, "tbp", "nHalogen", "nH"),
	schema.OperationalEnergy:       bind3(formula.OperationalEnergyLoad, "power", "time", "throughput"),
	schema.WasteBurden:             bind2(formula.WasteBurdenIntensity, "vwaste", "eta"),
	schema.PrecisionAccuracy:       bind2(formula.PrecisionAccuracyIndex, "recovery", "rsd"),
	schema.SensitivityLinearity:    bind3(formula.SensitivityLinearityFidelity, "r2", "lod", "creq"),
	schema.OccupationalExposure:    bind2(formula.OccupationalExposureRisk, "H", "t"),
	schema.PhysicalProtection:      bind2(formula.PhysicalProtectionStability, "N", "F"),
	schema.ThermalRunaway:          bind2(formula.ThermalRunawayDefense, "tOp", "deltaT"),
	schema.DigitalTransfer:         bind2(formula.DigitalTransferIntegrity, "x", "y"),
	schema.AuditTrail:              bind2(formula.AuditTrailVigilance, "x", "y"),
	schema.MetadataRedundancy:      bind2(formula.MetadataRedundancy, "x", "y"),
	schema.CircularLoop:            bind2(formula.CircularLoopIndex, "R", "N"),
	schema.BiomassSubstitution:     bind2(formula.BiomassSubstitutionIntensity, "Fb", "Tr"),
	schema.EcosystemIntegration:    bind2(formula.EcosystemIntegrationPotential, "D28", "Hlife"),
	schema.MethodologicalSynergy:   bind2(formula.MethodologicalSynergy, "Vt", "Jp"),
	schema.StructuralAdvancement:   bind2(formula.StructuralAdvancement, "Ls", "Dsa"),
	schema.TheoreticalExtension:    bind2(formula.TheoreticalExtensionEfficiency, "Nr", "Ma"),
}

// reagentFields are the per-row keys of the multi-reagent hazard index.
var reagentFields = []string{"mass", "hcodes"}

// FormulaFields returns the field keys a formula consumes, in evaluation order.
// The second result is false for an unknown formula.
func FormulaFields(id schema.FormulaID) ([]string, bool) {
	if id == schema.MultiReagentHazard {
		return slices.Clone(reagentFields), true
	}
	b, ok := formulas[id]
	if !ok {
		return nil, false
	}
	return slices.Clone(b.fields), true
}

// IsRepeatingFormula reports whether the formula takes a list of records.
func IsRepeatingFormula(id schema.FormulaID) bool {
	return id == schema.MultiReagentHazard
}

// FormulaIDs returns every known formula id in sorted order.
func FormulaIDs() []schema.FormulaID {
	ids := make([]schema.FormulaID, 0, len(formulas)+1)
	for id := range formulas {
		ids = append(ids, id)
	}
	ids = append(ids, schema.MultiReagentHazard)
	slices.Sort(ids)
	return ids
}

// scoreFormula parses the answer fields and evaluates the question's formula.
func scoreFormula(q *schema.Question, a schema.Answer) float64 {
	if q.Formula == schema.MultiReagentHazard {
		return scoreReagents(a)
	}
	b, ok := formulas[q.Formula]
	if !ok || a.Kind != schema.AnswerFields {
		return 0
	}
	values, ok := parseFields(a.Fields, b.fields)
	if !ok {
		return 0
	}
	return b.eval(values)
}

func scoreReagents(a schema.Answer) float64 {
	if a.Kind != schema.AnswerRows {
		return 0
	}
	reagents := make([]formula.Reagent, 0, len(a.Rows))
	for _, row := range a.Rows {
		values, ok := parseFields(row, reagentFields)
		if !ok {
			return 0
		}
		reagents = append(reagents, formula.Reagent{Mass: values[0], HCodes: values[1]})
	}
	return formula.MultiReagentHazardIndex(reagents)
}

// parseFields returns the values of keys in order, or false if any is missing or not finite.
func parseFields(record map[string]string, keys []string) ([]float64, bool) {
	values := make([]float64, len(keys))
	for i, k := range keys {
		raw, ok := record[k]
		if !ok {
			return nil, false
		}
		v, ok := ParseNumber(raw)
		if !ok {
			return nil, false
		}
		values[i] = v
	}
	return values, true
}
