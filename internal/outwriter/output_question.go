package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/gacscore/gacscore/internal/contract"
	"github.com/gacscore/gacscore/schema"
)

// WriteQuestion renders the score of a single question.
func WriteQuestion(qr schema.QuestionReport, cfg *contract.Config) error {
	fmtFloat := createFormatter(cfg.Precision)
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, qr)
		}, "Wrote JSON")
	case schema.CSVOut:
		header := []string{"dimension", "module", "question", "type", "scale", "answered", "raw_score"}
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
				return cw.Write([]string{
					qr.DimensionID, qr.ModuleID, qr.QuestionID, string(qr.Type), string(qr.Scale),
					strconv.FormatBool(qr.Answered), fmtFloat(qr.RawScore),
				})
			})
		}, "Wrote CSV")
	case schema.ParquetOut:
		return fmt.Errorf("parquet output is not supported for a single question")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			_, err := fmt.Fprintf(w, "%s/%s %s\nType: %s\nScore: %s\n",
				qr.DimensionID, qr.QuestionID, qr.Title, qr.Type, formatRaw(qr.RawScore, qr.Scale, fmtFloat))
			return err
		}, "Wrote text")
	}
}
