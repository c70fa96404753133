// Package excel writes sample batches and their quality reports to xlsx
// workbooks for offline inspection.
package excel

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"golehmer/internal/errors"
	"golehmer/ports"
)

const (
	samplesSheet = "Samples"
	summarySheet = "Summary"
)

// Exporter implements ports.ExporterPort over excelize.
type Exporter struct{}

// NewExporter creates a workbook exporter
func NewExporter() *Exporter {
	return &Exporter{}
}

// ExportSamples writes the drawn values, their normalized forms, and the
// quality report to an xlsx workbook at path.
func (e *Exporter) ExportSamples(ctx context.Context, path string, values []int64, modulus int64, report *ports.QualityReport) error {
	if len(values) == 0 {
		return errors.InvalidInput("no samples to export")
	}
	if modulus <= 0 {
		return errors.InvalidInput("modulus must be positive")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", samplesSheet); err != nil {
		return errors.ExportError("renaming samples sheet", err)
	}
	if err := e.writeSamples(f, values, modulus); err != nil {
		return err
	}
	if report != nil {
		if err := e.writeSummary(f, report); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return errors.ExportError(fmt.Sprintf("saving workbook %s", path), err)
	}
	return nil
}

func (e *Exporter) writeSamples(f *excelize.File, values []int64, modulus int64) error {
	headers := []interface{}{"Index", "Value", "Normalized"}
	if err := f.SetSheetRow(samplesSheet, "A1", &headers); err != nil {
		return errors.ExportError("writing sample headers", err)
	}

	m := float64(modulus)
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return errors.ExportError("computing cell coordinates", err)
		}
		row := []interface{}{i + 1, v, float64(v) / m}
		if err := f.SetSheetRow(samplesSheet, cell, &row); err != nil {
			return errors.ExportError(fmt.Sprintf("writing sample row %d", i+1), err)
		}
	}
	return nil
}

func (e *Exporter) writeSummary(f *excelize.File, report *ports.QualityReport) error {
	if _, err := f.NewSheet(summarySheet); err != nil {
		return errors.ExportError("creating summary sheet", err)
	}

	verdict := "PASS"
	if !report.Uniform {
		verdict = "FAIL"
	}

	rows := [][]interface{}{
		{"Samples", report.Samples},
		{"Mean", report.Mean},
		{"StdDev", report.StdDev},
		{"Median", report.Median},
		{"Min", report.Min},
		{"Max", report.Max},
		{"Bins", report.Bins},
		{"ChiSquare", report.ChiSquare},
		{"ChiSquareDF", report.ChiSquareDF},
		{"ChiSquarePValue", report.ChiSquarePValue},
		{"MaxDeviation", report.MaxDeviation},
		{"Verdict", verdict},
	}
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return errors.ExportError("computing cell coordinates", err)
		}
		if err := f.SetSheetRow(summarySheet, cell, &rows[i]); err != nil {
			return errors.ExportError("writing summary row", err)
		}
	}
	return nil
}

// Ensure Exporter implements ExporterPort
var _ ports.ExporterPort = (*Exporter)(nil)
