// Package report renders the chart and table artifacts the analysis tools
// write to the results directory.
package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// Series is one named line on a chart.
type Series struct {
	Name   string
	Points plotter.XYs
}

// XYs pairs two equal-length slices into plot points.
func XYs(xs, ys []float64) (plotter.XYs, error) {
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("XYs: %d xs vs %d ys", len(xs), len(ys))
	}
	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i].X = xs[i]
		pts[i].Y = ys[i]
	}
	return pts, nil
}

// SaveLineChart writes a multi-series line chart as a PNG.
func SaveLineChart(path, title, xLabel, yLabel string, series ...Series) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.Legend.Top = true

	args := make([]interface{}, 0, 2*len(series))
	for _, s := range series {
		args = append(args, s.Name, s.Points)
	}
	if err := plotutil.AddLines(p, args...); err != nil {
		return fmt.Errorf("SaveLineChart: %w", err)
	}
	if err := savePNG(p, path); err != nil {
		return fmt.Errorf("SaveLineChart: %w", err)
	}
	return nil
}

// SaveBarChart writes a labelled bar chart as a PNG.
func SaveBarChart(path, title, yLabel string, labels []string, values []float64) error {
	if len(labels) != len(values) {
		return fmt.Errorf("SaveBarChart: %d labels vs %d values", len(labels), len(values))
	}
	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = yLabel

	bars, err := plotter.NewBarChart(plotter.Values(values), vg.Points(24))
	if err != nil {
		return fmt.Errorf("SaveBarChart: %w", err)
	}
	bars.Color = plotutil.Color(0)
	p.Add(bars)
	p.NominalX(labels...)

	if err := savePNG(p, path); err != nil {
		return fmt.Errorf("SaveBarChart: %w", err)
	}
	return nil
}

// BarGroup is one named bar series in a grouped bar chart.
type BarGroup struct {
	Name   string
	Values []float64
}

// SaveGroupedBarChart writes side-by-side bar series sharing one label axis.
func SaveGroupedBarChart(path, title, yLabel string, labels []string, groups ...BarGroup) error {
	if len(groups) == 0 {
		return fmt.Errorf("SaveGroupedBarChart: no bar groups")
	}
	for _, g := range groups {
		if len(g.Values) != len(labels) {
			return fmt.Errorf("SaveGroupedBarChart: group %s has %d values vs %d labels", g.Name, len(g.Values), len(labels))
		}
	}
	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = yLabel
	p.Legend.Top = true

	w := vg.Points(20)
	for i, g := range groups {
		bars, err := plotter.NewBarChart(plotter.Values(g.Values), w)
		if err != nil {
			return fmt.Errorf("SaveGroupedBarChart: group %s: %w", g.Name, err)
		}
		bars.Color = plotutil.Color(i)
		bars.Offset = w * vg.Length(i-len(groups)/2)
		p.Add(bars)
		p.Legend.Add(g.Name, bars)
	}
	p.NominalX(labels...)

	if err := savePNG(p, path); err != nil {
		return fmt.Errorf("SaveGroupedBarChart: %w", err)
	}
	return nil
}

// Marker is a labelled vertical line overlaid on a histogram, used for VaR
// and expected shortfall levels.
type Marker struct {
	Label string
	X     float64
}

// SaveHistogram writes a PNG histogram of the sample with optional vertical
// markers.
func SaveHistogram(path, title, xLabel string, sample []float64, bins int, markers ...Marker) error {
	if len(sample) == 0 {
		return fmt.Errorf("SaveHistogram: empty sample")
	}
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Legend.Top = true

	hist, err := plotter.NewHist(plotter.Values(sample), bins)
	if err != nil {
		return fmt.Errorf("SaveHistogram: %w", err)
	}
	hist.Normalize(1)
	p.Add(hist)

	// Span the markers over the histogram's height.
	_, _, _, ymax := hist.DataRange()
	for i, m := range markers {
		line, err := plotter.NewLine(plotter.XYs{{X: m.X, Y: 0}, {X: m.X, Y: ymax}})
		if err != nil {
			return fmt.Errorf("SaveHistogram: marker %s: %w", m.Label, err)
		}
		line.Color = plotutil.Color(i + 1)
		line.Dashes = plotutil.Dashes(1)
		p.Add(line)
		p.Legend.Add(m.Label, line)
	}

	if err := savePNG(p, path); err != nil {
		return fmt.Errorf("SaveHistogram: %w", err)
	}
	return nil
}

// WriteCSV writes a result table with a header row, creating parent
// directories as needed.
func WriteCSV(path string, header []string, rows [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("WriteCSV: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("WriteCSV: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("WriteCSV: %w", err)
	}
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("WriteCSV: %w", err)
	}
	w.Flush()
	return w.Error()
}

func savePNG(p *plot.Plot, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return p.Save(8*vg.Inch, 5*vg.Inch, path)
}
