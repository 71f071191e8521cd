package render

import (
	"errors"
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/katalvlaran/gridpath/dijkstra"
)

// ErrTooFewWaves indicates a chart request with fewer than two waves.
var ErrTooFewWaves = errors.New("render: need at least two waves to chart")

// WaveSizes returns len(w.Cells) for each wave, indexed by distance.
func WaveSizes(waves []dijkstra.Wave) []int {
	out := make([]int, len(waves))
	for i, w := range waves {
		out[i] = len(w.Cells)
	}
	return out
}

// WaveChart writes a PNG line chart of cells finalized per distance.
func WaveChart(w io.Writer, sizes []int, width, height int) error {
	if len(sizes) < 2 {
		return ErrTooFewWaves
	}
	xs := make([]float64, len(sizes))
	ys := make([]float64, len(sizes))
	peak := 1.0
	for i, n := range sizes {
		xs[i] = float64(i)
		ys[i] = float64(n)
		if ys[i] > peak {
			peak = ys[i]
		}
	}

	graph := chart.Chart{
		Width:  width,
		Height: height,
		XAxis: chart.XAxis{
			Name:  "distance",
			Style: chart.Style{FontSize: 10.0},
			Range: &chart.ContinuousRange{Min: 0, Max: xs[len(xs)-1]},
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%d", int(v.(float64)))
			},
		},
		YAxis: chart.YAxis{
			Name:  "cells",
			Style: chart.Style{FontSize: 10.0},
			Range: &chart.ContinuousRange{Min: 0, Max: peak},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "cells per wave",
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: drawing.Color{R: 0x40, G: 0xce, B: 0xe3, A: 0xff},
					StrokeWidth: 3.0,
				},
			},
		},
	}

	return graph.Render(chart.PNG, w)
}
