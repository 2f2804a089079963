package formula

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestSigmoid tests the logistic helper.
func TestSigmoid(t *testing.T) {
	assert.InDelta(t, 0.5, Sigmoid(0), 1e-12)
	assert.InDelta(t, 1.0, Sigmoid(50), 1e-9)
	assert.InDelta(t, 0.0, Sigmoid(-50), 1e-9)
}

// TestClamp tests the range limiter.
func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-5, 0, 100))
	assert.Equal(t, 100.0, Clamp(150, 0, 100))
	assert.Equal(t, 42.0, Clamp(42, 0, 100))
}

// TestFormulas checks each formula at reference points.
func TestFormulas(t *testing.T) {
	tests := []struct {
		name     string
		got      float64
		expected float64
	}{
		{"resource accuracy midpoint", ResourceAccuracyIndex(0.4, 0), 50},
		{"resource accuracy penalized", ResourceAccuracyIndex(0.4, 0.1), 50 * math.Exp(-0.2)},
		{"scale-in no points", ScaleInStabilityIndex(0, 0), 0},
		{"scale-in negative error", ScaleInStabilityIndex(10, -0.1), 0},
		{"scale-in clean", ScaleInStabilityIndex(5, 0), 100 * 25.0 / 90.0},
		{"minimization full", MinimizationSensitivityGain(0, 1), 100},
		{"minimization all waste", MinimizationSensitivityGain(1, 1), 0},
		{"economic burden zero", EconomicBurdenIndex(0, 0), 100},
		{"economic burden unit base", EconomicBurdenIndex(15, 0), 50},
		{"economic burden negative base", EconomicBurdenIndex(-30, 0), 0},
		{"time output zero runtime", TimeOutputEfficiency(0, 3), 100},
		{"time output no analytes", TimeOutputEfficiency(10, 0), 0},
		{"time output negative runtime", TimeOutputEfficiency(-1, 2), 0},
		{"productivity no volume", ResourceProductivityRatio(1, 0), 100},
		{"productivity undefined", ResourceProductivityRatio(0, 0), 0},
		{"productivity volume floor", ResourceProductivityRatio(2, -1), 0},
		{"atmospheric midpoint", AtmosphericSafetyIndex(50, 0, 0), 50},
		{"energy no power", OperationalEnergyLoad(0, 10, 1), 100},
		{"energy no throughput", OperationalEnergyLoad(100, 10, 0), 0},
		{"energy unit exponent", OperationalEnergyLoad(100, 100, 1), 100 * math.Exp(-1)},
		{"waste none", WasteBurdenIntensity(0, 0), 100},
		{"waste negative base", WasteBurdenIntensity(10, 2), 0},
		{"precision ideal", PrecisionAccuracyIndex(100, 0), 100},
		{"precision rsd", PrecisionAccuracyIndex(100, 2.5), 50},
		{"linearity below range", SensitivityLinearityFidelity(0.98, 0, 1), 0},
		{"linearity above range", SensitivityLinearityFidelity(1.01, 0, 1), 0},
		{"linearity zero creq", SensitivityLinearityFidelity(0.995, 0, 0), 0},
		{"linearity cos floor", SensitivityLinearityFidelity(0.995, 3, 1), 0},
		{"linearity lower edge", SensitivityLinearityFidelity(0.99, 0, 1), 0},
		{"exposure none", OccupationalExposureRisk(0, 4), 100},
		{"exposure negative time", OccupationalExposureRisk(1, -1), 0},
		{"exposure unit exponent", OccupationalExposureRisk(20, 4), 100 * math.Exp(-1)},
		{"protection undefined", PhysicalProtectionStability(0, 0), 0},
		{"protection no failure", PhysicalProtectionStability(2, 0), 100},
		{"protection balanced", PhysicalProtectionStability(2, 16), 50},
		{"thermal at boundary", ThermalRunawayDefense(0, 35), 0},
		{"thermal below boundary", ThermalRunawayDefense(10, 20), 0},
		{"thermal just above boundary", ThermalRunawayDefense(0, 35.0001), 100},
		{"digital transfer full", DigitalTransferIntegrity(100, 0), 100},
		{"digital transfer negative", DigitalTransferIntegrity(-1, 0), 0},
		{"audit trail reference", AuditTrailVigilance(100, 12), 100},
		{"audit trail log floor", AuditTrailVigilance(100, -1), 0},
		{"metadata no completeness", MetadataRedundancy(0, 3), 0},
		{"metadata reference", MetadataRedundancy(10, 3), 100 * 0.875 * 1.143},
		{"circular loop baseline", CircularLoopIndex(0, 0), 25},
		{"circular loop undefined log", CircularLoopIndex(1, -10), 0},
		{"biomass none", BiomassSubstitutionIntensity(0, 1), 25},
		{"biomass full", BiomassSubstitutionIntensity(1, 1), 85},
		{"biomass negative", BiomassSubstitutionIntensity(-0.5, 1), 0},
		{"ecosystem full", EcosystemIntegrationPotential(100, 0), 90},
		{"ecosystem pole", EcosystemIntegrationPotential(100, -100), 0},
		{"ecosystem negative radicand", EcosystemIntegrationPotential(-50, 0), 0},
		{"synergy none", MethodologicalSynergy(0, 0), 0},
		{"synergy negative joint", MethodologicalSynergy(2, -2), 0},
		{"structural none", StructuralAdvancement(0, 5), 0},
		{"theoretical none", TheoreticalExtensionEfficiency(0, 3), 0},
		{"theoretical midpoint", TheoreticalExtensionEfficiency(5, 1), 100 * math.Sin(math.Pi/4)},
		{"theoretical pole", TheoreticalExtensionEfficiency(-5, 1), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, tt.got, 1e-9)
		})
	}
}

// TestSaturatingFormulasStayInRange checks the formulas that clamp themselves.
func TestSaturatingFormulasStayInRange(t *testing.T) {
	inputs := []float64{-1e6, -10, -1, 0, 0.5, 1, 10, 1e6}
	for _, a := range inputs {
		for _, b := range inputs {
			for _, v := range []float64{
				CircularLoopIndex(a, b),
				BiomassSubstitutionIntensity(a, b),
				EcosystemIntegrationPotential(a, b),
				MethodologicalSynergy(a, b),
				StructuralAdvancement(a, b),
				TheoreticalExtensionEfficiency(a, b),
			} {
				assert.GreaterOrEqual(t, v, 0.0)
				assert.LessOrEqual(t, v, 100.0)
			}
		}
	}
}

// TestMultiReagentHazardIndex tests the aggregated hazard index.
func TestMultiReagentHazardIndex(t *testing.T) {
	tests := []struct {
		name     string
		reagents []Reagent
		expected float64
	}{
		{"empty list", nil, 0},
		{"no mass", []Reagent{{Mass: 0, HCodes: 5}, {Mass: 0, HCodes: 2}}, 100},
		{"no hazard codes", []Reagent{{Mass: 3, HCodes: 0}}, 100},
		{"single reagent", []Reagent{{Mass: 1, HCodes: 2}}, 100 * math.Exp(-3)},
		{"two reagents", []Reagent{{Mass: 1, HCodes: 1}, {Mass: 3, HCodes: 1}}, 100 * math.Exp(-3)},
		{"negative sum", []Reagent{{Mass: -4, HCodes: 1}}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, MultiReagentHazardIndex(tt.reagents), 1e-9)
		})
	}

	assert.InDelta(t, 4.98, MultiReagentHazardIndex([]Reagent{{Mass: 1, HCodes: 2}}), 0.005)
}

// BenchmarkMultiReagentHazardIndex benchmarks the list-based formula.
func BenchmarkMultiReagentHazardIndex(b *testing.B) {
	reagents := make([]Reagent, 50)
	for i := range reagents {
		reagents[i] = Reagent{Mass: float64(i) / 10, HCodes: float64(i % 4)}
	}
	for b.Loop() {
		_ = MultiReagentHazardIndex(reagents)
	}
}
