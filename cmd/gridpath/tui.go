package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/gridpath/internal/log"
	"github.com/katalvlaran/gridpath/internal/tui"
	"github.com/katalvlaran/gridpath/visualizer"
)

func newTUICmd(a *app) *cobra.Command {
	var (
		rows, cols int
		fit        bool
		name       string
		logFile    string
	)
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Edit a grid and watch the search in the terminal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			// The alternate screen owns the terminal; logs go to a file or nowhere.
			level := a.log.Level()
			a.log = log.Discard()
			if logFile != "" {
				f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
				if err != nil {
					return err
				}
				defer f.Close()
				a.log = log.New(f, level)
			}

			if rows == 0 {
				rows = a.cfg.Rows
			}
			if cols == 0 {
				cols = a.cfg.Cols
			}
			session, err := visualizer.New(rows, cols, a.sessionOptions()...)
			if err != nil {
				return err
			}

			store, release, err := a.layoutStore(ctx)
			if err != nil {
				return err
			}
			defer release()

			return tui.Run(ctx, session, tui.Config{
				Store:       store,
				LayoutName:  name,
				FitToWindow: fit,
				Logger:      a.log,
			})
		},
	}
	cmd.Flags().IntVar(&rows, "rows", 0, "grid rows (default GRIDPATH_ROWS)")
	cmd.Flags().IntVar(&cols, "cols", 0, "grid columns (default GRIDPATH_COLS)")
	cmd.Flags().BoolVar(&fit, "fit", false, "resize the grid to the terminal")
	cmd.Flags().StringVar(&name, "layout", "tui", "layout name used by ctrl+s and ctrl+o")
	cmd.Flags().StringVar(&logFile, "log-file", "", "append logs to this file")
	return cmd
}
