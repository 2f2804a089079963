package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/gacscore/gacscore/internal/contract"
	"github.com/gacscore/gacscore/schema"
)

// WriteCatalog renders the dimension catalog.
func WriteCatalog(model schema.CatalogRenderModel, cfg *contract.Config) error {
	fmtFloat := createFormatter(cfg.Precision)
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, model)
		}, "Wrote JSON")
	case schema.CSVOut:
		header := []string{"dimension", "default_weight", "module", "question", "type", "scale", "title", "scoring"}
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
				for _, r := range model.Dimensions {
					if err := cw.Write([]string{
						r.DimensionID, fmtFloat(r.DefaultWeight), r.ModuleID, r.QuestionID,
						r.Type, r.Scale, r.Title, r.Scoring,
					}); err != nil {
						return fmt.Errorf("failed to write CSV row: %w", err)
					}
				}
				return nil
			})
		}, "Wrote CSV")
	case schema.ParquetOut:
		return fmt.Errorf("parquet output is not supported for the catalog")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCatalogTable(w, model, cfg, fmtFloat)
		}, "Wrote table")
	}
}

func writeCatalogTable(w io.Writer, model schema.CatalogRenderModel, cfg *contract.Config, fmtFloat func(float64) string) error {
	if _, err := fmt.Fprintf(w, "%s\n", model.Title); err != nil {
		return err
	}
	if model.Description != "" {
		if _, err := fmt.Fprintf(w, "%s\n", model.Description); err != nil {
			return err
		}
	}

	titleWidth := GetMaxTableTitleWidth(cfg)
	headers := []string{"Dimension", "Weight", "Module", "Question", "Type", "Title"}
	data := make([][]string, 0, len(model.Dimensions))
	for _, r := range model.Dimensions {
		data = append(data, []string{
			r.DimensionID,
			fmtFloat(r.DefaultWeight),
			r.ModuleID,
			r.QuestionID,
			r.Type,
			contract.TruncateText(r.Title, titleWidth),
		})
	}
	if err := writeTable(w, headers, data); err != nil {
		return err
	}

	if cfg.Detail {
		for _, r := range model.Dimensions {
			if _, err := fmt.Fprintf(w, "%s/%s: %s\n", r.DimensionID, r.QuestionID, r.Scoring); err != nil {
				return err
			}
		}
	}
	return nil
}
