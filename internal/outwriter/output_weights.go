package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/gacscore/gacscore/internal/contract"
	"github.com/gacscore/gacscore/schema"
)

// weightsView is the JSON shape of the weights command.
type weightsView struct {
	Dimensions map[string]float64            `json:"dimensions"`
	Questions  map[string]map[string]float64 `json:"questions"`
	Check      schema.WeightCheckResult      `json:"check"`
}

// WriteWeights renders the current dimension and question weights with the gate outcome.
func WriteWeights(report schema.AssessmentReport, cfg *contract.Config) error {
	fmtFloat := createFormatter(cfg.Precision)
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, buildWeightsView(report))
		}, "Wrote JSON")
	case schema.CSVOut:
		header := []string{"dimension", "question", "weight"}
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
				for _, d := range report.Dimensions {
					if err := cw.Write([]string{d.DimensionID, "", fmtFloat(d.Weight)}); err != nil {
						return err
					}
					for _, q := range d.Questions {
						if err := cw.Write([]string{d.DimensionID, q.QuestionID, fmtFloat(q.Weight)}); err != nil {
							return err
						}
					}
				}
				return nil
			})
		}, "Wrote CSV")
	case schema.ParquetOut:
		return fmt.Errorf("parquet output is not supported for weights")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeWeightsTable(w, report, fmtFloat)
		}, "Wrote table")
	}
}

func writeWeightsTable(w io.Writer, report schema.AssessmentReport, fmtFloat func(float64) string) error {
	sums := make(map[string]schema.DimensionWeightCheck, len(report.WeightCheck.Dimensions))
	for _, dc := range report.WeightCheck.Dimensions {
		sums[dc.DimensionID] = dc
	}

	headers := []string{"Dimension", "Selected", "Weight", "Question weights", "Question sum"}
	data := make([][]string, 0, len(report.Dimensions))
	for _, d := range report.Dimensions {
		pairs := make([]string, 0, len(d.Questions))
		sum := 0.0
		for _, q := range d.Questions {
			pairs = append(pairs, q.QuestionID+"="+fmtFloat(q.Weight))
			sum += q.Weight
		}
		if dc, ok := sums[d.DimensionID]; ok {
			sum = dc.Total
		}
		data = append(data, []string{d.DimensionID, checkMark(d.Selected), fmtFloat(d.Weight), strings.Join(pairs, " "), fmtFloat(sum)})
	}
	if err := writeTable(w, headers, data); err != nil {
		return err
	}
	return writeCheckSummary(w, report.WeightCheck, fmtFloat)
}

func buildWeightsView(report schema.AssessmentReport) weightsView {
	view := weightsView{
		Dimensions: make(map[string]float64, len(report.Dimensions)),
		Questions:  make(map[string]map[string]float64, len(report.Dimensions)),
		Check:      report.WeightCheck,
	}
	for _, d := range report.Dimensions {
		view.Dimensions[d.DimensionID] = d.Weight
		qw := make(map[string]float64, len(d.Questions))
		for _, q := range d.Questions {
			qw[q.QuestionID] = q.Weight
		}
		view.Questions[d.DimensionID] = qw
	}
	return view
}
