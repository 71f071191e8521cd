package render

import (
	"bytes"
	"fmt"
	"image/jpeg"

	"github.com/icza/mjpeg"

	"github.com/katalvlaran/gridpath/dijkstra"
	"github.com/katalvlaran/gridpath/gridgraph"
)

// Recorder writes grid states as frames of an MJPEG AVI file.
type Recorder struct {
	aw      mjpeg.AviWriter
	cfg     Options
	width   int
	height  int
	frames  int
	buf     bytes.Buffer
	quality int
}

// NewRecorder creates the AVI file at path sized for g under opts.
// Every frame must come from a grid with g's dimensions.
func NewRecorder(path string, g *gridgraph.Grid, fps int, opts ...Option) (*Recorder, error) {
	if g == nil {
		return nil, ErrNilGrid
	}
	if fps < 1 {
		return nil, fmt.Errorf("render: fps must be positive, got %d", fps)
	}
	cfg := buildOptions(opts)
	w, h := size(g, cfg)
	aw, err := mjpeg.New(path, int32(w), int32(h), int32(fps))
	if err != nil {
		return nil, fmt.Errorf("render: create %s: %w", path, err)
	}
	return &Recorder{aw: aw, cfg: cfg, width: w, height: h, quality: 90}, nil
}

// Frame draws g and appends it to the video.
func (r *Recorder) Frame(g *gridgraph.Grid) error {
	if w, h := size(g, r.cfg); w != r.width || h != r.height {
		return fmt.Errorf("render: frame is %dx%d, video is %dx%d", w, h, r.width, r.height)
	}
	r.buf.Reset()
	if err := jpeg.Encode(&r.buf, draw(g, r.cfg).Image(), &jpeg.Options{Quality: r.quality}); err != nil {
		return err
	}
	if err := r.aw.AddFrame(r.buf.Bytes()); err != nil {
		return err
	}
	r.frames++
	return nil
}

// Frames returns the number of frames written so far.
func (r *Recorder) Frames() int { return r.frames }

// Close finalizes the AVI index and closes the file.
func (r *Recorder) Close() error { return r.aw.Close() }

// RecordRun resets g, replays the search from start to end with one frame
// per wave, then one frame per revealed path cell, and returns the path.
// g is left in its final highlighted state.
func RecordRun(rec *Recorder, g *gridgraph.Grid, start, end gridgraph.Coord) ([]gridgraph.Coord, error) {
	g.Reset()
	if err := rec.Frame(g); err != nil {
		return nil, err
	}
	for _, err := range dijkstra.Waves(g, start, end) {
		if err != nil {
			return nil, err
		}
		if err := rec.Frame(g); err != nil {
			return nil, err
		}
	}

	path := dijkstra.ShortestPath(g, end)
	for _, c := range path {
		if c == start || c == end {
			continue
		}
		g.MarkShortestPath(c)
		if err := rec.Frame(g); err != nil {
			return nil, err
		}
	}
	return path, nil
}
