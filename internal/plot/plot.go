// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package plot renders the cumulative-publications line chart from the
// persisted counts artifact: one line per technique, cumulative count over
// publication year, saved as a fixed-DPI PNG.
package plot

import (
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/fnery/cumulative-publications/pkg/types"
)

// LabelMismatchError reports a configuration mismatch between the plot
// labels and the technique series in the counts artifact. It is raised
// before any drawing work begins.
type LabelMismatchError struct {
	Labels int
	Series int
}

func (e *LabelMismatchError) Error() string {
	return fmt.Sprintf("configuration mismatch: %d labels for %d technique series", e.Labels, e.Series)
}

// tickRotation matches the original chart's 70 degree year-label tilt.
const tickRotation = 70 * math.Pi / 180

// Render draws one cumulative line per technique and writes the chart to
// cfg.OutputFile as a PNG at cfg.DPI. labels must have exactly one entry
// per technique series in counts; a mismatch fails with
// LabelMismatchError before anything is drawn.
func Render(counts []map[int]int, labels []string, cfg types.PlotConfig) error {
	if len(labels) != len(counts) {
		return &LabelMismatchError{Labels: len(labels), Series: len(counts)}
	}

	p := plot.New()
	p.X.Label.Text = "Year"
	p.Y.Label.Text = "Cumulative publications"
	p.X.Tick.Marker = yearTicker{}
	p.X.Tick.Label.Rotation = tickRotation
	p.X.Tick.Label.XAlign = text.XRight
	p.X.Tick.Label.YAlign = text.YCenter
	if cfg.XMin != 0 {
		p.X.Min = float64(cfg.XMin)
	}
	if cfg.XMax != 0 {
		p.X.Max = float64(cfg.XMax)
	}
	p.Legend.Top = true
	p.Legend.Left = true

	// Without any series the axis ranges stay unset; give the empty
	// chart a finite frame.
	if len(counts) == 0 {
		if cfg.XMin == 0 && cfg.XMax == 0 {
			p.X.Min, p.X.Max = 0, 1
		}
		p.Y.Min, p.Y.Max = 0, 1
	}

	for i, series := range counts {
		line, err := plotter.NewLine(cumulativeXYs(series))
		if err != nil {
			return fmt.Errorf("building line for %q: %w", labels[i], err)
		}
		line.LineStyle.Width = vg.Points(2)
		line.LineStyle.Color = plotutil.Color(i)
		// Dash styles cycle when techniques outnumber the palette.
		line.LineStyle.Dashes = plotutil.Dashes(i)

		p.Add(line)
		p.Legend.Add(labels[i], line)
	}

	return writePNG(p, cfg)
}

// cumulativeXYs converts one technique's year→count map into (year,
// running cumulative sum) points in ascending year order.
func cumulativeXYs(series map[int]int) plotter.XYs {
	years := make([]int, 0, len(series))
	for year := range series {
		years = append(years, year)
	}
	sort.Ints(years)

	ordered := make([]int, len(years))
	for i, year := range years {
		ordered[i] = series[year]
	}

	sums := cumulative(ordered)
	xys := make(plotter.XYs, len(years))
	for i, year := range years {
		xys[i].X = float64(year)
		xys[i].Y = float64(sums[i])
	}
	return xys
}

// cumulative returns the running sum of values.
func cumulative(values []int) []int {
	sums := make([]int, len(values))
	total := 0
	for i, v := range values {
		total += v
		sums[i] = total
	}
	return sums
}

// yearTicker labels every whole year inside the axis range.
type yearTicker struct{}

func (yearTicker) Ticks(min, max float64) []plot.Tick {
	if math.IsInf(min, 0) || math.IsInf(max, 0) || max < min {
		return nil
	}
	var ticks []plot.Tick
	for y := int(math.Ceil(min)); y <= int(math.Floor(max)); y++ {
		ticks = append(ticks, plot.Tick{Value: float64(y), Label: strconv.Itoa(y)})
	}
	return ticks
}

// writePNG rasterizes the plot at the configured size and DPI.
func writePNG(p *plot.Plot, cfg types.PlotConfig) error {
	dpi := cfg.DPI
	if dpi <= 0 {
		dpi = 300
	}
	width := cfg.WidthInches
	if width <= 0 {
		width = 8
	}
	height := cfg.HeightInches
	if height <= 0 {
		height = 5
	}

	c := vgimg.NewWith(
		vgimg.UseWH(vg.Length(width)*vg.Inch, vg.Length(height)*vg.Inch),
		vgimg.UseDPI(dpi),
	)
	p.Draw(draw.New(c))

	f, err := os.Create(cfg.OutputFile)
	if err != nil {
		return fmt.Errorf("creating %s: %w", cfg.OutputFile, err)
	}
	defer f.Close()

	png := vgimg.PngCanvas{Canvas: c}
	if _, err := png.WriteTo(f); err != nil {
		return fmt.Errorf("writing %s: %w", cfg.OutputFile, err)
	}
	return nil
}
