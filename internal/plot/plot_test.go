// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package plot

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/fnery/cumulative-publications/pkg/types"
)

func testPlotCfg(t *testing.T) types.PlotConfig {
	t.Helper()
	return types.PlotConfig{
		OutputFile:   filepath.Join(t.TempDir(), "out.png"),
		DPI:          96,
		WidthInches:  4,
		HeightInches: 3,
	}
}

func TestCumulative(t *testing.T) {
	tests := []struct {
		name   string
		values []int
		want   []int
	}{
		{"typical", []int{2, 2, 0, 3}, []int{2, 4, 4, 7}},
		{"single", []int{5}, []int{5}},
		{"zeros", []int{0, 0, 0}, []int{0, 0, 0}},
		{"empty", nil, []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cumulative(tt.values)
			if len(got) != len(tt.want) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.want))
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("cumulative(%v)[%d] = %d, want %d", tt.values, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestCumulativeXYsSortsYears(t *testing.T) {
	// Map iteration order must not leak into the series.
	series := map[int]int{2002: 1, 2000: 2, 2001: 3}
	xys := cumulativeXYs(series)

	if len(xys) != 3 {
		t.Fatalf("len = %d, want 3", len(xys))
	}
	wantX := []float64{2000, 2001, 2002}
	wantY := []float64{2, 5, 6}
	for i := range wantX {
		if xys[i].X != wantX[i] || xys[i].Y != wantY[i] {
			t.Errorf("xys[%d] = (%v, %v), want (%v, %v)", i, xys[i].X, xys[i].Y, wantX[i], wantY[i])
		}
	}
}

func TestRenderLabelMismatch(t *testing.T) {
	cfg := testPlotCfg(t)
	counts := []map[int]int{{2000: 1}, {2000: 2}}
	labels := []string{"only one"}

	err := Render(counts, labels, cfg)
	var mismatch *LabelMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("Render() error = %v, want LabelMismatchError", err)
	}
	if mismatch.Labels != 1 || mismatch.Series != 2 {
		t.Errorf("error = %d labels / %d series, want 1/2", mismatch.Labels, mismatch.Series)
	}
	// The check fires before any drawing: no output file.
	if _, statErr := os.Stat(cfg.OutputFile); !os.IsNotExist(statErr) {
		t.Errorf("output file written despite mismatch")
	}
}

func TestRenderWritesPNG(t *testing.T) {
	cfg := testPlotCfg(t)
	counts := []map[int]int{
		{2000: 2, 2001: 2, 2002: 0, 2003: 3},
		{2000: 0, 2001: 1, 2002: 4, 2003: 1},
	}
	labels := []string{"Technique A", "Technique B"}

	if err := Render(counts, labels, cfg); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	data, err := os.ReadFile(cfg.OutputFile)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	pngMagic := []byte{0x89, 'P', 'N', 'G'}
	if !bytes.HasPrefix(data, pngMagic) {
		t.Errorf("output is not a PNG (starts with % x)", data[:4])
	}
}

func TestRenderEmptyCounts(t *testing.T) {
	cfg := testPlotCfg(t)
	if err := Render(nil, nil, cfg); err != nil {
		t.Fatalf("Render() with empty inputs error = %v", err)
	}
	if _, err := os.Stat(cfg.OutputFile); err != nil {
		t.Errorf("expected an empty chart file: %v", err)
	}
}

func TestYearTicker(t *testing.T) {
	ticks := yearTicker{}.Ticks(1999.5, 2002.5)
	want := []string{"2000", "2001", "2002"}
	if len(ticks) != len(want) {
		t.Fatalf("len(ticks) = %d, want %d", len(ticks), len(want))
	}
	for i, label := range want {
		if ticks[i].Label != label {
			t.Errorf("ticks[%d].Label = %q, want %q", i, ticks[i].Label, label)
		}
	}
}
