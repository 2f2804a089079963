// Package formula holds the closed-form scoring formulas used by multi-input questions.
// Every function is pure. Inputs outside a formula's domain return 0.
// Results are not clamped unless the formula itself clamps.
package formula

import "math"

// Reagent is one (mass, hazard-code count) pair of the multi-reagent hazard index.
type Reagent struct {
	Mass   float64
	HCodes float64
}

// Sigmoid is the logistic function 1/(1+e^-x).
func Sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

// ResourceAccuracyIndex rewards high yield and penalizes accuracy deviation.
//
//	100 * sigmoid(12*(Y-0.4)) * exp(-20*A^2)
func ResourceAccuracyIndex(y, a float64) float64 {
	return 100 * Sigmoid(12*(y-0.4)) * math.Exp(-20*a*a)
}

// ScaleInStabilityIndex combines calibration points P with relative error R.
//
//	100 * P^2/(P^2+65) * exp(-30*R^1.5)
func ScaleInStabilityIndex(p, r float64) float64 {
	if r < 0 {
		return 0
	}
	p2 := p * p
	return 100 * p2 / (p2 + 65) * math.Exp(-30*math.Pow(r, 1.5))
}

// MinimizationSensitivityGain trades the waste ratio against the sensitivity factor S.
//
//	100 * (1-wasteRatio) * 2/(1+S^2)
func MinimizationSensitivityGain(wasteRatio, s float64) float64 {
	return 100 * (1 - wasteRatio) * 2 / (1 + s*s)
}

// EconomicBurdenIndex decays with cost plus time-weighted labour.
//
//	100 / (1 + ((cost+20*time)/15)^2.5)
func EconomicBurdenIndex(cost, time float64) float64 {
	base := (cost + 20*time) / 15
	if base < 0 {
		return 0
	}
	return 100 / (1 + math.Pow(base, 2.5))
}

// TimeOutputEfficiency scores runtime per analyte.
//
//	100 / (1 + 0.01*(runtime/analytes)^4.5)
func TimeOutputEfficiency(runtime, analytes float64) float64 {
	if analytes <= 0 || runtime < 0 {
		return 0
	}
	return 100 / (1 + 0.01*math.Pow(runtime/analytes, 4.5))
}

// ResourceProductivityRatio scores analytes per log-volume consumed.
//
//	100*analytes^2 / (analytes^2 + ln(1+volume))
func ResourceProductivityRatio(analytes, volume float64) float64 {
	if volume <= -1 {
		return 0
	}
	a2 := analytes * analytes
	denom := a2 + math.Log1p(volume)
	if denom == 0 {
		return 0
	}
	return 100 * a2 / denom
}

// AtmosphericSafetyIndex favours high boiling points and few halogen/hydrogen atoms.
//
//	100 * sigmoid(0.05*(tbp-50)) * exp(-(2*nHalogen+0.5*nH)/5)
func AtmosphericSafetyIndex(tbp, nHalogen, nH float64) float64 {
	return 100 * Sigmoid(0.05*(tbp-50)) * math.Exp(-(2*nHalogen+0.5*nH)/5)
}

// OperationalEnergyLoad decays with energy spent per unit of throughput.
//
//	100 * exp(-(power*time)/(10000*throughput))
func OperationalEnergyLoad(power, time, throughput float64) float64 {
	if throughput <= 0 {
		return 0
	}
	return 100 * math.Exp(-(power*time)/(10000*throughput))
}

// WasteBurdenIntensity scores untreated waste volume, where eta is the treated fraction.
//
//	100 * [1/(1+0.05*(vwaste*(1-eta))^1.2)] * exp(-vwaste/200)
func WasteBurdenIntensity(vwaste, eta float64) float64 {
	base := vwaste * (1 - eta)
	if base < 0 {
		return 0
	}
	return 100 * (1 / (1 + 0.05*math.Pow(base, 1.2))) * math.Exp(-vwaste/200)
}

// PrecisionAccuracyIndex is the precision-accuracy collaborative index.
//
//	100 * exp(-0.5*((recovery-100)/3)^2) * 1/(1+(rsd/2.5)^2)
func PrecisionAccuracyIndex(recovery, rsd float64) float64 {
	z := (recovery - 100) / 3
	q := rsd / 2.5
	return 100 * math.Exp(-0.5*z*z) * 1 / (1+q*q)
}

// SensitivityLinearityFidelity is only defined for 0.99 <= r2 <= 1.0.
//
//	max(0, 100 * ((r2-0.99)/0.0099)^4 * cos((pi/2)*(lod/creq)))
func SensitivityLinearityFidelity(r2, lod, creq float64) float64 {
	if r2 < 0.99 || r2 > 1.0 || creq <= 0 {
		return 0
	}
	return math.Max(0, 100*math.Pow((r2-0.99)/0.0099, 4)*math.Cos((math.Pi/2)*(lod/creq)))
}

// OccupationalExposureRisk decays with hazard H over exposure time t.
//
//	100 * exp(-(H*sqrt(t))/40)
func OccupationalExposureRisk(h, t float64) float64 {
	if t < 0 {
		return 0
	}
	return 100 * math.Exp(-(h*math.Sqrt(t))/40)
}

// PhysicalProtectionStability scores protection layers N against failure modes F.
//
//	100 * N^4/(N^4+F)
func PhysicalProtectionStability(n, f float64) float64 {
	n4 := math.Pow(n, 4)
	if n4+f <= 0 {
		return 0
	}
	return 100 * n4 / (n4 + f)
}

// ThermalRunawayDefense scores the operating temperature against the safety margin deltaT.
// A margin at or below 35 degrees scores 0.
//
//	100 * exp(-0.1*(tOp/(deltaT-35))^2)
func ThermalRunawayDefense(tOp, deltaT float64) float64 {
	if deltaT <= 35 {
		return 0
	}
	ratio := tOp / (deltaT - 35)
	return 100 * math.Exp(-0.1*ratio*ratio)
}

// DigitalTransferIntegrity scores automated transfer share x against manual steps y.
//
//	100 * (x/100)^1.5 * exp(-y^2/40)
func DigitalTransferIntegrity(x, y float64) float64 {
	if x < 0 {
		return 0
	}
	return 100 * math.Pow(x/100, 1.5) * math.Exp(-y*y/40)
}

// AuditTrailVigilance scores audit coverage x with review frequency y.
//
//	100 * sin(pi*x/200) * ln(1+y)/ln(13)
func AuditTrailVigilance(x, y float64) float64 {
	if y <= -1 {
		return 0
	}
	return 100 * math.Sin(math.Pi*x/200) * math.Log1p(y) / math.Log(13)
}

// MetadataRedundancy scores metadata completeness x with y redundant copies.
// The 1.143 factor maps the reference input to 100.
//
//	100 * sqrt(x/10) * (1-0.5^y) * 1.143
func MetadataRedundancy(x, y float64) float64 {
	if x <= 0 {
		return 0
	}
	return 100 * math.Sqrt(x/10) * (1 - math.Pow(0.5, y)) * 1.143
}

// CircularLoopIndex scores reuse fraction R across N cycles.
//
//	clamp(0, 100, 65*tanh(R*ln(N+10)) + 25)
func CircularLoopIndex(r, n float64) float64 {
	if n <= -10 {
		return 0
	}
	return Clamp(65*math.Tanh(r*math.Log(n+10))+25, 0, 100)
}

// BiomassSubstitutionIntensity scores bio-based fraction Fb with renewal time Tr.
//
//	clamp(0, 100, (25+60*sqrt(Fb)) * exp(-0.005*(Tr-1)))
func BiomassSubstitutionIntensity(fb, tr float64) float64 {
	if fb < 0 {
		return 0
	}
	return Clamp((25+60*math.Sqrt(fb))*math.Exp(-0.005*(tr-1)), 0, 100)
}

// EcosystemIntegrationPotential scores 28-day biodegradation D28 and half-life Hlife.
//
//	clamp(0, 100, 60*sqrt((D28/100)*(1-Hlife/(Hlife+100))) + 30)
func EcosystemIntegrationPotential(d28, hlife float64) float64 {
	if hlife == -100 {
		return 0
	}
	radicand := (d28 / 100) * (1 - hlife/(hlife+100))
	if radicand < 0 {
		return 0
	}
	return Clamp(60*math.Sqrt(radicand)+30, 0, 100)
}

// MethodologicalSynergy scores technique variety Vt with joint parameters Jp.
//
//	clamp(0, 100, 100*(1-exp(-0.1*Vt^2*sqrt(Jp+1))))
func MethodologicalSynergy(vt, jp float64) float64 {
	if jp < -1 {
		return 0
	}
	return Clamp(100*(1-math.Exp(-0.1*vt*vt*math.Sqrt(jp+1))), 0, 100)
}

// StructuralAdvancement scores structural level Ls with design advancement Dsa.
//
//	clamp(0, 100, 100*(Ls*Dsa)^2/((Ls*Dsa)^2+1.5))
func StructuralAdvancement(ls, dsa float64) float64 {
	p2 := (ls * dsa) * (ls * dsa)
	return Clamp(100*p2/(p2+1.5), 0, 100)
}

// TheoreticalExtensionEfficiency scores new rules Nr with model applicability Ma.
//
//	clamp(0, 100, 100*sin((pi/2)*(Nr*Ma)/(Nr*Ma+5)))
func TheoreticalExtensionEfficiency(nr, ma float64) float64 {
	p := nr * ma
	if p+5 == 0 {
		return 0
	}
	return Clamp(100*math.Sin((math.Pi/2)*p/(p+5)), 0, 100)
}

// MultiReagentHazardIndex aggregates mass-weighted squared hazard-code counts.
// An empty reagent list is treated as unanswered and scores 0.
//
//	sum = Σ mass*hcodes^2; 100 * exp(-1.5*sqrt(sum))
func MultiReagentHazardIndex(reagents []Reagent) float64 {
	if len(reagents) == 0 {
		return 0
	}
	var sum float64
	for _, r := range reagents {
		sum += r.Mass * r.HCodes * r.HCodes
	}
	if sum < 0 {
		return 0
	}
	return 100 * math.Exp(-1.5*math.Sqrt(sum))
}
