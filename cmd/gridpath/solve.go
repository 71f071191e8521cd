package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/gridpath/dijkstra"
	"github.com/katalvlaran/gridpath/gridgraph"
)

var errNoEndpoints = errors.New("grid needs one S and one E")

// readGrid parses the text form from r. Blank lines and trailing
// whitespace are ignored.
func readGrid(r io.Reader) (*gridgraph.Grid, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), " \t\r")
		if line != "" {
			lines = append(lines, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return gridgraph.Parse(lines)
}

// solution is the outcome of searching a grid once.
type solution struct {
	waves []dijkstra.Wave
	order []gridgraph.Cell
	path  []gridgraph.Coord
}

// solve runs the search on g without pauses and marks the interior of the
// shortest path.
func solve(ctx context.Context, g *gridgraph.Grid) (solution, error) {
	start, okStart := g.Start()
	end, okEnd := g.End()
	if !okStart || !okEnd {
		return solution{}, errNoEndpoints
	}

	var sol solution
	order, err := dijkstra.Run(ctx, g, start, end, nil,
		dijkstra.WithWaveInterval(0),
		dijkstra.WithOnWave(func(w dijkstra.Wave) { sol.waves = append(sol.waves, w) }),
	)
	if err != nil {
		return solution{}, err
	}
	sol.order = order
	sol.path = dijkstra.ShortestPath(g, end)
	for _, c := range sol.path {
		if c != start && c != end {
			g.MarkShortestPath(c)
		}
	}
	return sol, nil
}

func newSolveCmd(a *app) *cobra.Command {
	var showWaves bool
	cmd := &cobra.Command{
		Use:   "solve [FILE]",
		Short: "Solve a text grid and print it with the visited cells and path",
		Long: "Reads a grid of '.', '#', 'S', 'E' and 'B' from FILE or stdin and prints it\n" +
			"with visited cells as 'o' and the shortest path as '*'.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
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
			sol, err := solve(cmd.Context(), g)
			if err != nil {
				return err
			}
			a.log.Debugf("solved %dx%d grid: %d waves", g.Rows(), g.Cols(), len(sol.waves))

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, g.String())
			if showWaves {
				for _, w := range sol.waves {
					fmt.Fprintf(out, "wave %d: distance %d, %d cells\n", w.Index, w.Distance, len(w.Cells))
				}
			}
			if sol.path == nil {
				fmt.Fprintf(out, "no path (visited %d cells in %d waves)\n", len(sol.order), len(sol.waves))
				return nil
			}
			fmt.Fprintf(out, "path length %d (visited %d cells in %d waves)\n",
				dijkstra.PathLength(sol.path), len(sol.order), len(sol.waves))
			return nil
		},
	}
	cmd.Flags().BoolVar(&showWaves, "waves", false, "print every wave")
	return cmd
}
