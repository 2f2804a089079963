package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/gacscore/gacscore/internal/contract"
	"github.com/gacscore/gacscore/internal/parquet"
	"github.com/gacscore/gacscore/schema"
)

// WriteReport renders an assessment report in the configured output format.
func WriteReport(report schema.AssessmentReport, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, report)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeReportCSV(w, report, cfg.Precision)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return parquet.WriteReportRows(w, parquet.ConvertReport(report))
		}, "Wrote Parquet")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeReportTable(w, report, cfg, duration)
		}, "Wrote table")
	}
}

// writeReportTable prints the dimension table, optional question tables and the gate summary.
func writeReportTable(w io.Writer, report schema.AssessmentReport, cfg *contract.Config, duration time.Duration) error {
	fmtFloat := createFormatter(cfg.Precision)
	label := labeler(cfg)

	if report.ProjectName != "" {
		if _, err := fmt.Fprintf(w, "Project: %s\n", report.ProjectName); err != nil {
			return err
		}
	}

	headers := []string{"Dimension", "Name", "Selected", "Weight", "Score", "Contribution", "Label"}
	data := make([][]string, 0, len(report.Dimensions))
	for _, d := range report.Dimensions {
		data = append(data, []string{
			d.DimensionID,
			d.Name,
			checkMark(d.Selected),
			fmtFloat(d.Weight),
			fmtFloat(d.Score),
			fmtFloat(d.Contribution),
			label(d.Score),
		})
	}
	if err := writeTable(w, headers, data); err != nil {
		return err
	}

	if cfg.Detail {
		titleWidth := GetMaxTableTitleWidth(cfg)
		for _, d := range report.Dimensions {
			if !d.Selected {
				continue
			}
			if _, err := fmt.Fprintf(w, "\n%s (%s)\n", d.Name, d.DimensionID); err != nil {
				return err
			}
			if err := writeQuestionTable(w, d.Questions, fmtFloat, titleWidth); err != nil {
				return err
			}
		}
	}

	if _, err := fmt.Fprintf(w, "\nOverall score: %s (%s)\n", fmtFloat(report.OverallScore), label(report.OverallScore)); err != nil {
		return err
	}
	if err := writeCheckSummary(w, report.WeightCheck, fmtFloat); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Assessment completed in %v.\n", duration.Round(time.Millisecond))
	return err
}

// writeQuestionTable prints one row per question of a dimension.
func writeQuestionTable(w io.Writer, questions []schema.QuestionReport, fmtFloat func(float64) string, titleWidth int) error {
	headers := []string{"Question", "Title", "Type", "Answered", "Raw", "Weight", "Contribution"}
	data := make([][]string, 0, len(questions))
	for _, q := range questions {
		data = append(data, []string{
			q.QuestionID,
			contract.TruncateText(q.Title, titleWidth),
			string(q.Type),
			checkMark(q.Answered),
			formatRaw(q.RawScore, q.Scale, fmtFloat),
			fmtFloat(q.Weight),
			fmtFloat(q.Contribution),
		})
	}
	return writeTable(w, headers, data)
}

// writeCheckSummary prints the weight gate outcome below a table.
func writeCheckSummary(w io.Writer, check schema.WeightCheckResult, fmtFloat func(float64) string) error {
	if check.Passed {
		_, err := fmt.Fprintf(w, "%s Weights valid (total %s)\n", contract.PassColor.Sprint("✅"), fmtFloat(check.Total))
		return err
	}
	_, err := fmt.Fprintf(w, "%s %s\n", contract.FailColor.Sprint("❌"), check.Message)
	return err
}

// writeReportCSV writes one row per question so spreadsheets can pivot on dimension.
func writeReportCSV(w io.Writer, report schema.AssessmentReport, precision int) error {
	fmtFloat := createFormatter(precision)
	header := []string{
		"dimension", "selected", "dimension_weight", "dimension_score", "dimension_contribution",
		"question", "type", "scale", "answered", "raw_score", "question_weight", "question_contribution",
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, d := range report.Dimensions {
			for _, q := range d.Questions {
				row := []string{
					d.DimensionID,
					strconv.FormatBool(d.Selected),
					fmtFloat(d.Weight),
					fmtFloat(d.Score),
					fmtFloat(d.Contribution),
					q.QuestionID,
					string(q.Type),
					string(q.Scale),
					strconv.FormatBool(q.Answered),
					fmtFloat(q.RawScore),
					fmtFloat(q.Weight),
					fmtFloat(q.Contribution),
				}
				if err := cw.Write(row); err != nil {
					return fmt.Errorf("failed to write CSV row: %w", err)
				}
			}
		}
		return nil
	})
}

// labeler picks colored or plain score labels.
func labeler(cfg *contract.Config) func(float64) string {
	if cfg.UseColors {
		return contract.GetColorLabel
	}
	return schema.GetPlainLabel
}

// formatRaw shows a raw score against its scale maximum.
func formatRaw(score float64, scale schema.Scale, fmtFloat func(float64) string) string {
	return fmtFloat(score) + "/" + strconv.FormatFloat(scale.Max(), 'f', -1, 64)
}
