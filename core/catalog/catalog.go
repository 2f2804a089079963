// Package catalog contains the assessment dimensions, their modules and questions.
package catalog

import (
	"github.com/gacscore/gacscore/schema"
)

var f = schema.Float

func input(id, title, unit string, rules ...schema.ScoringRule) schema.Question {
	return schema.Question{ID: id, Title: title, Type: schema.InputQuestion, Scale: schema.ScalePercent, Unit: unit, Rules: rules}
}

func choice(id, title string, options ...schema.Option) schema.Question {
	return schema.Question{ID: id, Title: title, Type: schema.SelectQuestion, Scale: schema.ScalePercent, Options: options}
}

func checkbox(id, title string, options ...schema.Option) schema.Question {
	return schema.Question{ID: id, Title: title, Type: schema.CheckboxQuestion, Scale: schema.ScaleTen, Options: options}
}

func multi(id, title string, formula schema.FormulaID, fields ...schema.FieldSpec) schema.Question {
	return schema.Question{
		ID:        id,
		Title:     title,
		Type:      schema.MultiInputQuestion,
		Scale:     schema.ScalePercent,
		Fields:    fields,
		Repeating: formula == schema.MultiReagentHazard,
		Formula:   formula,
	}
}

func rule(lo, hi *float64, score float64) schema.ScoringRule {
	return schema.ScoringRule{Min: lo, Max: hi, Score: score}
}

func opt(value, label string, score float64) schema.Option {
	return schema.Option{Value: value, Label: label, Score: score}
}

func field(key, label, unit string) schema.FieldSpec {
	return schema.FieldSpec{Key: key, Label: label, Unit: unit}
}

// dimensions is the full catalog in display order. Default weights sum to 100.
var dimensions = []schema.Dimension{
	{
		ID: "sample-prep", Name: "Sample Preparation", DefaultWeight: 12, Color: "#4caf50",
		Modules: []schema.Module{
			{ID: "sampling", Name: "Sampling", Questions: []schema.Question{
				input("q1", "Sample volume required", "mL",
					rule(nil, f(1), 100), rule(f(1), f(10), 80), rule(f(10), f(50), 60),
					rule(f(50), f(100), 40), rule(f(100), nil, 20)),
				choice("q2", "Sample preparation approach",
					opt("in-situ", "In-situ measurement", 100),
					opt("direct", "Direct analysis without preparation", 80),
					opt("simple", "Simple dilution or filtration", 60),
					opt("multi-step", "Multi-step extraction", 30),
					opt("extensive", "Extensive clean-up and derivatization", 10)),
			}},
			{ID: "prep-efficiency", Name: "Preparation Efficiency", Questions: []schema.Question{
				multi("q3", "Resource-accuracy index", schema.ResourceAccuracy,
					field("Y", "Extraction yield", "fraction"),
					field("A", "Accuracy deviation", "fraction")),
				multi("q4", "Scale-in stability index", schema.ScaleInStability,
					field("P", "Calibration points", ""),
					field("R", "Relative error", "fraction")),
				multi("q5", "Minimization-sensitivity gain", schema.MinimizationSensitivity,
					field("wasteRatio", "Waste ratio", "fraction"),
					field("S", "Sensitivity factor", "")),
			}},
		},
	},
	{
		ID: "green-ecology", Name: "Green Ecology", DefaultWeight: 12, Color: "#8bc34a",
		Modules: []schema.Module{
			{ID: "reagents", Name: "Reagents and Solvents", Questions: []schema.Question{
				checkbox("q1", "Hazard pictograms of reagents used",
					opt("explosive", "Explosive", 30),
					opt("flammable", "Flammable", 15),
					opt("toxic", "Acute toxicity", 25),
					opt("corrosive", "Corrosive", 15),
					opt("health", "Serious health hazard", 20),
					opt("environmental", "Hazardous to the environment", 20),
					opt("oxidizer", "Oxidizer", 15)),
				choice("q2", "Main solvent class",
					opt("water", "Water", 100),
					opt("bio-based", "Bio-based solvent", 85),
					opt("class3", "ICH class 3", 60),
					opt("class2", "ICH class 2", 30),
					opt("class1", "ICH class 1", 0)),
				multi("q3", "Multi-reagent essential hazard index", schema.MultiReagentHazard,
					field("mass", "Reagent mass", "g"),
					field("hcodes", "Number of H-codes", "")),
			}},
			{ID: "emissions", Name: "Emissions and Waste", Questions: []schema.Question{
				multi("q4", "Atmospheric safety index", schema.AtmosphericSafety,
					field("tbp", "Boiling point", "°C"),
					field("nHalogen", "Halogen atoms", ""),
					field("nH", "Hydrogen atoms", "")),
				multi("q5", "Waste burden intensity", schema.WasteBurden,
					field("vwaste", "Waste volume", "mL"),
					field("eta", "Treated fraction", "fraction")),
				input("q6", "Derivatization steps", "steps",
					rule(nil, f(1), 100), rule(f(1), f(2), 70), rule(f(2), f(3), 40), rule(f(3), nil, 10)),
			}},
		},
	},
	{
		ID: "economy", Name: "Economic Efficiency", DefaultWeight: 12, Color: "#ffc107",
		Modules: []schema.Module{
			{ID: "cost", Name: "Cost", Questions: []schema.Question{
				multi("q1", "Economic burden index", schema.EconomicBurden,
					field("cost", "Cost per sample", "USD"),
					field("time", "Labour time per sample", "h")),
				input("q2", "Instrument acquisition cost", "kUSD",
					rule(nil, f(10), 100), rule(f(10), f(50), 80), rule(f(50), f(150), 60),
					rule(f(150), f(300), 40), rule(f(300), nil, 20)),
			}},
			{ID: "throughput", Name: "Throughput", Questions: []schema.Question{
				multi("q3", "Time-output efficiency", schema.TimeOutput,
					field("runtime", "Run time", "min"),
					field("analytes", "Analytes per run", "")),
				multi("q4", "Resource productivity ratio", schema.ResourceProductivity,
					field("analytes", "Analytes per run", ""),
					field("volume", "Consumable volume", "mL")),
			}},
		},
	},
	{
		ID: "energy", Name: "Energy Consumption", DefaultWeight: 11, Color: "#ff9800",
		Modules: []schema.Module{
			{ID: "demand", Name: "Energy Demand", Questions: []schema.Question{
				input("q1", "Energy consumption per sample", "kWh",
					rule(nil, f(0.1), 100), rule(f(0.1), f(0.5), 80), rule(f(0.5), f(1.5), 60),
					rule(f(1.5), f(3), 30), rule(f(3), nil, 10)),
				choice("q2", "Instrument class",
					opt("portable", "Portable or handheld", 100),
					opt("benchtop", "Benchtop", 70),
					opt("hyphenated", "Hyphenated system", 40),
					opt("large-scale", "Large-scale facility", 15)),
			}},
			{ID: "operation", Name: "Operation", Questions: []schema.Question{
				multi("q3", "Operational energy load", schema.OperationalEnergy,
					field("power", "Power draw", "W"),
					field("time", "Operating time", "min"),
					field("throughput", "Samples per run", "")),
				checkbox("q4", "Energy-intensive conditions",
					opt("heating", "Heating above 100 °C", 20),
					opt("cooling", "Active cooling", 15),
					opt("vacuum", "Vacuum", 15),
					opt("high-pressure", "High pressure", 20),
					opt("purge", "Continuous gas purge", 10),
					opt("standby", "Long standby periods", 20)),
			}},
		},
	},
	{
		ID: "performance", Name: "Analytical Performance", DefaultWeight: 11, Color: "#2196f3",
		Modules: []schema.Module{
			{ID: "quality", Name: "Data Quality", Questions: []schema.Question{
				multi("q1", "Precision-accuracy collaborative index", schema.PrecisionAccuracy,
					field("recovery", "Recovery", "%"),
					field("rsd", "Relative standard deviation", "%")),
				multi("q2", "Sensitivity-linearity fidelity", schema.SensitivityLinearity,
					field("r2", "Coefficient of determination", ""),
					field("lod", "Limit of detection", ""),
					field("creq", "Required concentration", "")),
			}},
			{ID: "scope", Name: "Method Scope", Questions: []schema.Question{
				choice("q3", "Validation level",
					opt("full", "Full validation", 100),
					opt("partial", "Partial validation", 70),
					opt("in-house", "In-house checks only", 40),
					opt("none", "Not validated", 0)),
				input("q4", "Analytes determined simultaneously", "",
					rule(nil, f(2), 20), rule(f(2), f(5), 50), rule(f(5), f(10), 75), rule(f(10), nil, 100)),
			}},
		},
	},
	{
		ID: "safety", Name: "Operator Safety", DefaultWeight: 11, Color: "#f44336",
		Modules: []schema.Module{
			{ID: "exposure", Name: "Exposure", Questions: []schema.Question{
				multi("q1", "Occupational exposure risk", schema.OccupationalExposure,
					field("H", "Hazard score", ""),
					field("t", "Exposure time", "h")),
				multi("q2", "Physical protection stability", schema.PhysicalProtection,
					field("N", "Protection layers", ""),
					field("F", "Failure modes", "")),
			}},
			{ID: "process", Name: "Process Hazards", Questions: []schema.Question{
				multi("q3", "Thermal runaway defense", schema.ThermalRunaway,
					field("tOp", "Operating temperature", "°C"),
					field("deltaT", "Safety margin", "°C")),
				checkbox("q4", "Process hazards present",
					opt("high-voltage", "High voltage", 20),
					opt("pressurized-gas", "Pressurized gas", 20),
					opt("ionizing-radiation", "Ionizing radiation", 40),
					opt("sharps", "Sharps", 10),
					opt("cryogenic", "Cryogenic liquids", 15),
					opt("open-flame", "Open flame", 25)),
			}},
		},
	},
	{
		ID: "digital", Name: "Digitalization", DefaultWeight: 11, Color: "#9c27b0",
		Modules: []schema.Module{
			{ID: "data", Name: "Data Integrity", Questions: []schema.Question{
				multi("q1", "Digital transfer integrity", schema.DigitalTransfer,
					field("x", "Automated transfer share", "%"),
					field("y", "Manual transcription steps", "")),
				multi("q2", "Audit trail vigilance", schema.AuditTrail,
					field("x", "Audit coverage", "%"),
					field("y", "Reviews per year", "")),
				multi("q3", "Metadata and redundancy", schema.MetadataRedundancy,
					field("x", "Metadata completeness", "0-10"),
					field("y", "Redundant copies", "")),
			}},
			{ID: "automation", Name: "Automation", Questions: []schema.Question{
				choice("q4", "Automation level",
					opt("full", "Fully automated", 100),
					opt("semi", "Semi-automated", 60),
					opt("manual", "Manual", 20)),
			}},
		},
	},
	{
		ID: "circularity", Name: "Circular Economy", DefaultWeight: 10, Color: "#009688",
		Modules: []schema.Module{
			{ID: "reuse", Name: "Reuse and Renewal", Questions: []schema.Question{
				multi("q1", "Circular loop index", schema.CircularLoop,
					field("R", "Reuse fraction", "fraction"),
					field("N", "Reuse cycles", "")),
				multi("q2", "Biomass substitution intensity", schema.BiomassSubstitution,
					field("Fb", "Bio-based fraction", "fraction"),
					field("Tr", "Renewal time", "years")),
			}},
			{ID: "end-of-life", Name: "End of Life", Questions: []schema.Question{
				multi("q3", "Ecosystem integration potential", schema.EcosystemIntegration,
					field("D28", "28-day biodegradation", "%"),
					field("Hlife", "Environmental half-life", "days")),
				choice("q4", "Consumable recyclability",
					opt("fully", "Fully recyclable", 100),
					opt("partially", "Partially recyclable", 60),
					opt("none", "Not recyclable", 10)),
			}},
		},
	},
	{
		ID: "innovation", Name: "Methodological Innovation", DefaultWeight: 10, Color: "#3f51b5",
		Modules: []schema.Module{
			{ID: "method", Name: "Method Design", Questions: []schema.Question{
				multi("q1", "Methodological synergy", schema.MethodologicalSynergy,
					field("Vt", "Techniques combined", ""),
					field("Jp", "Joint parameters", "")),
				multi("q2", "Structural advancement", schema.StructuralAdvancement,
					field("Ls", "Structural level", ""),
					field("Dsa", "Design advancement", "")),
			}},
			{ID: "theory", Name: "Theory", Questions: []schema.Question{
				multi("q3", "Theoretical extension efficiency", schema.TheoreticalExtension,
					field("Nr", "New rules established", ""),
					field("Ma", "Model applicability", "")),
				choice("q4", "Novelty of the method",
					opt("new-principle", "New measurement principle", 100),
					opt("significant", "Significant modification", 70),
					opt("adaptation", "Adaptation of a known method", 40),
					opt("established", "Established method", 10)),
			}},
		},
	},
}

// Dimensions returns a deep copy of the catalog in display order.
func Dimensions() []schema.Dimension {
	out := make([]schema.Dimension, len(dimensions))
	for i, d := range dimensions {
		out[i] = cloneDimension(d)
	}
	return out
}

// IDs returns the dimension ids in display order.
func IDs() []string {
	ids := make([]string, len(dimensions))
	for i, d := range dimensions {
		ids[i] = d.ID
	}
	return ids
}

// Lookup returns a copy of the dimension with the given id.
func Lookup(dimID string) (schema.Dimension, bool) {
	for _, d := range dimensions {
		if d.ID == dimID {
			return cloneDimension(d), true
		}
	}
	return schema.Dimension{}, false
}

// Question returns a copy of the question (dimID, qID).
func Question(dimID, qID string) (schema.Question, bool) {
	for i := range dimensions {
		if dimensions[i].ID != dimID {
			continue
		}
		if q := dimensions[i].Question(qID); q != nil {
			return *q, true
		}
		return schema.Question{}, false
	}
	return schema.Question{}, false
}

func cloneDimension(d schema.Dimension) schema.Dimension {
	modules := make([]schema.Module, len(d.Modules))
	for i, m := range d.Modules {
		qs := make([]schema.Question, len(m.Questions))
		copy(qs, m.Questions)
		modules[i] = schema.Module{ID: m.ID, Name: m.Name, Questions: qs}
	}
	d.Modules = modules
	return d
}
