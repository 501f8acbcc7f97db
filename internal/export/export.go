// Package export writes the current selection out of the terminal: a
// spreadsheet of the selected states across every metric, and a PNG
// bar chart of the active metric.
package export

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"dividash/internal/census"
	"dividash/internal/scale"
	"dividash/internal/state"
)

// WriteWorkbook writes the selected states as an .xlsx workbook: one
// sheet with every catalog metric per state, one sheet with regional
// averages for the active metric. Returns the written path.
func WriteWorkbook(dir string, ds *census.Dataset, st state.State) (string, error) {
	if len(st.Selected) == 0 {
		return "", fmt.Errorf("nothing selected to export")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating export directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()
	const sheet = "Selection"
	f.SetSheetName("Sheet1", sheet)

	headers := append([]string{"State", "Code"}, ds.Catalog...)
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	for r, e := range st.Selected {
		cell, _ := excelize.CoordinatesToCellName(1, r+2)
		f.SetCellValue(sheet, cell, e.Row.Name)
		cell, _ = excelize.CoordinatesToCellName(2, r+2)
		f.SetCellValue(sheet, cell, e.Row.Code)
		for c, metric := range ds.Catalog {
			cell, _ := excelize.CoordinatesToCellName(c+3, r+2)
			if v, ok := e.Row.Value(metric); ok {
				f.SetCellValue(sheet, cell, v)
			} else {
				f.SetCellValue(sheet, cell, "no data")
			}
		}
	}

	const regions = "Regional Averages"
	f.NewSheet(regions)
	for i, h := range []string{"Region", "States", "Mean " + st.ActiveMetric, "Median " + st.ActiveMetric} {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(regions, cell, h)
	}
	for r, rs := range scale.RegionStats(st.ActiveMetric, ds) {
		cell, _ := excelize.CoordinatesToCellName(1, r+2)
		f.SetCellValue(regions, cell, rs.Region)
		cell, _ = excelize.CoordinatesToCellName(2, r+2)
		f.SetCellValue(regions, cell, rs.N)
		if rs.N > 0 {
			cell, _ = excelize.CoordinatesToCellName(3, r+2)
			f.SetCellValue(regions, cell, rs.Mean)
			cell, _ = excelize.CoordinatesToCellName(4, r+2)
			f.SetCellValue(regions, cell, rs.Median)
		}
	}

	path := filepath.Join(dir, fmt.Sprintf("dividash_%s.xlsx", timestamp()))
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("saving workbook: %w", err)
	}
	return path, nil
}

// WriteBarChart renders the active metric across the selection as a
// PNG bar chart. Missing values plot as zero-height bars; the axis
// label flags the income rescale when it applies.
func WriteBarChart(dir string, st state.State) (string, error) {
	if len(st.Selected) == 0 {
		return "", fmt.Errorf("nothing selected to export")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating export directory: %w", err)
	}

	values := make(plotter.Values, len(st.Selected))
	labels := make([]string, len(st.Selected))
	for i, e := range st.Selected {
		if v, ok := e.Row.Value(st.ActiveMetric); ok {
			values[i] = scale.PlotValue(st.ActiveMetric, v)
		}
		labels[i] = e.Row.Code
	}

	p := plot.New()
	p.Title.Text = st.ActiveMetric
	p.Y.Label.Text = st.ActiveMetric
	if census.IsIncomeMetric(st.ActiveMetric) {
		p.Y.Label.Text = st.ActiveMetric + " (thousands)"
	}

	bars, err := plotter.NewBarChart(values, vg.Points(24))
	if err != nil {
		return "", fmt.Errorf("building bar chart: %w", err)
	}
	bars.Color = color.RGBA{R: 0x3B, G: 0x82, B: 0xF6, A: 0xFF}
	p.Add(bars)
	p.NominalX(labels...)

	path := filepath.Join(dir, fmt.Sprintf("dividash_%s.png", timestamp()))
	if err := p.Save(8*vg.Inch, 4*vg.Inch, path); err != nil {
		return "", fmt.Errorf("saving chart: %w", err)
	}
	return path, nil
}

func timestamp() string {
	return time.Now().Format("20060102_150405")
}
