// Package render draws grid states as images: a single PNG of a grid, an
// MJPEG video of a search replayed wave by wave, and a chart of how many
// cells each wave finalized.
package render

import (
	"errors"
	"image"
	"image/color"
	"io"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/katalvlaran/gridpath/gridgraph"
)

// ErrNilGrid indicates that a nil grid was passed.
var ErrNilGrid = errors.New("render: grid is nil")

// captionHeight is the band reserved above the grid when a caption is set.
const captionHeight = 20

// Palette maps each cell state to a color.
type Palette struct {
	Background color.Color
	Open       color.Color
	Wall       color.Color
	Start      color.Color
	End        color.Color
	Visited    color.Color
	Path       color.Color
	Text       color.Color
}

// DefaultPalette mirrors the browser visualizer's colors.
func DefaultPalette() Palette {
	return Palette{
		Background: color.RGBA{0xaf, 0xd8, 0xf8, 0xff},
		Open:       color.White,
		Wall:       color.RGBA{0x0c, 0x35, 0x47, 0xff},
		Start:      color.RGBA{0x00, 0xc8, 0x53, 0xff},
		End:        color.RGBA{0xd5, 0x00, 0x00, 0xff},
		Visited:    color.RGBA{0x40, 0xce, 0xe3, 0xff},
		Path:       color.RGBA{0xff, 0xfe, 0x6a, 0xff},
		Text:       color.Black,
	}
}

// Options configures drawing.
type Options struct {
	CellSize int     // Pixel size of one cell. Default 20.
	Gap      int     // Pixels of background between cells. Default 1.
	Palette  Palette // Cell colors.
	Caption  string  // Optional text drawn above the grid.
}

// Option represents a functional option for configuring drawing.
type Option func(*Options)

// DefaultOptions returns 20px cells with a 1px gap and DefaultPalette.
func DefaultOptions() Options {
	return Options{
		CellSize: gridgraph.DefaultSizing().CellSize,
		Gap:      1,
		Palette:  DefaultPalette(),
	}
}

// WithCellSize sets the cell size in pixels. Panics if px < 1.
func WithCellSize(px int) Option {
	if px < 1 {
		panic("render: CellSize must be at least 1")
	}
	return func(o *Options) { o.CellSize = px }
}

// WithGap sets the spacing between cells. Panics if px < 0.
func WithGap(px int) Option {
	if px < 0 {
		panic("render: Gap must be non-negative")
	}
	return func(o *Options) { o.Gap = px }
}

// WithPalette replaces the cell colors.
func WithPalette(p Palette) Option {
	return func(o *Options) { o.Palette = p }
}

// WithCaption draws text in a band above the grid.
func WithCaption(text string) Option {
	return func(o *Options) { o.Caption = text }
}

func buildOptions(opts []Option) Options {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Gap >= cfg.CellSize {
		cfg.Gap = 0
	}
	return cfg
}

// Size returns the pixel dimensions Image produces for g under opts.
func Size(g *gridgraph.Grid, opts ...Option) (width, height int) {
	cfg := buildOptions(opts)
	return size(g, cfg)
}

func size(g *gridgraph.Grid, cfg Options) (int, int) {
	w, h := g.Cols()*cfg.CellSize, g.Rows()*cfg.CellSize
	if cfg.Caption != "" {
		h += captionHeight
	}
	return w, h
}

// Image draws g. Start and end take precedence over run state, and
// shortest-path cells over visited ones.
func Image(g *gridgraph.Grid, opts ...Option) (image.Image, error) {
	if g == nil {
		return nil, ErrNilGrid
	}
	return draw(g, buildOptions(opts)).Image(), nil
}

// PNG draws g and writes it to w as PNG.
func PNG(w io.Writer, g *gridgraph.Grid, opts ...Option) error {
	if g == nil {
		return ErrNilGrid
	}
	return draw(g, buildOptions(opts)).EncodePNG(w)
}

// SavePNG draws g into the PNG file at path.
func SavePNG(path string, g *gridgraph.Grid, opts ...Option) error {
	if g == nil {
		return ErrNilGrid
	}
	return draw(g, buildOptions(opts)).SavePNG(path)
}

func draw(g *gridgraph.Grid, cfg Options) *gg.Context {
	w, h := size(g, cfg)
	dc := gg.NewContext(w, h)
	dc.SetColor(cfg.Palette.Background)
	dc.Clear()

	top := 0
	if cfg.Caption != "" {
		top = captionHeight
		dc.SetColor(cfg.Palette.Open)
		dc.DrawRectangle(0, 0, float64(w), captionHeight)
		dc.Fill()
		dc.SetFontFace(basicfont.Face7x13)
		dc.SetColor(cfg.Palette.Text)
		dc.DrawStringAnchored(cfg.Caption, 4, captionHeight/2, 0, 0.35)
	}

	side := float64(cfg.CellSize - cfg.Gap)
	for r := 0; r < g.Rows(); r++ {
		for c := 0; c < g.Cols(); c++ {
			cell := g.CellAt(r*g.Cols() + c)
			dc.SetColor(cellColor(cell, cfg.Palette))
			dc.DrawRectangle(float64(c*cfg.CellSize), float64(top+r*cfg.CellSize), side, side)
			dc.Fill()
		}
	}

	return dc
}

func cellColor(cell gridgraph.Cell, p Palette) color.Color {
	switch {
	case cell.IsStart:
		return p.Start
	case cell.IsEnd:
		return p.End
	case cell.IsWall:
		return p.Wall
	case cell.IsShortestPath:
		return p.Path
	case cell.Visited:
		return p.Visited
	default:
		return p.Open
	}
}
