package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/gridpath/dijkstra"
	"github.com/katalvlaran/gridpath/render"
)

func newRenderCmd(a *app) *cobra.Command {
	var (
		output, video, chartPath string
		cellSize, fps            int
		caption                  bool
	)
	cmd := &cobra.Command{
		Use:   "render [FILE]",
		Short: "Solve a text grid and draw it as PNG, with optional video and wave chart",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" && video == "" && chartPath == "" {
				return errors.New("nothing to do: set --output, --video or --chart")
			}
			if cellSize < 1 {
				return fmt.Errorf("--cell-size must be at least 1, got %d", cellSize)
			}
			var path string
			if len(args) == 1 {
				path = args[0]
			}
			in, closeIn, err := openInput(cmd.InOrStdin(), path)
			if err != nil {
				return err
			}
			defer closeIn()

			g, err := readGrid(in)
			if err != nil {
				return err
			}
			initial := g.Clone()

			sol, err := solve(cmd.Context(), g)
			if err != nil {
				return err
			}

			opts := []render.Option{render.WithCellSize(cellSize)}
			if output != "" {
				pngOpts := opts
				if caption {
					text := "no path"
					if sol.path != nil {
						text = fmt.Sprintf("path length %d, %d visited", dijkstra.PathLength(sol.path), len(sol.order))
					}
					pngOpts = append(pngOpts, render.WithCaption(text))
				}
				if err := render.SavePNG(output, g, pngOpts...); err != nil {
					return err
				}
				a.log.Infof("wrote %s", output)
			}

			if video != "" {
				rec, err := render.NewRecorder(video, initial, fps, opts...)
				if err != nil {
					return err
				}
				start, _ := initial.Start()
				end, _ := initial.End()
				if _, err := render.RecordRun(rec, initial, start, end); err != nil {
					_ = rec.Close()
					return err
				}
				if err := rec.Close(); err != nil {
					return err
				}
				a.log.Infof("wrote %s (%d frames)", video, rec.Frames())
			}

			if chartPath != "" {
				f, err := os.Create(chartPath)
				if err != nil {
					return err
				}
				if err := render.WaveChart(f, render.WaveSizes(sol.waves), 800, 400); err != nil {
					_ = f.Close()
					return err
				}
				if err := f.Close(); err != nil {
					return err
				}
				a.log.Infof("wrote %s", chartPath)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "PNG file for the solved grid")
	cmd.Flags().StringVar(&video, "video", "", "MJPEG AVI file replaying the search")
	cmd.Flags().StringVar(&chartPath, "chart", "", "PNG chart of cells finalized per wave")
	cmd.Flags().IntVar(&cellSize, "cell-size", 20, "pixels per cell")
	cmd.Flags().IntVar(&fps, "fps", 20, "video frames per second")
	cmd.Flags().BoolVar(&caption, "caption", true, "draw the path length above the grid")
	return cmd
}
