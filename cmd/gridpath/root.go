package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/gridpath/config"
	"github.com/katalvlaran/gridpath/internal/log"
	"github.com/katalvlaran/gridpath/layout"
	"github.com/katalvlaran/gridpath/visualizer"
)

// app carries what every subcommand needs after flag parsing.
type app struct {
	cfg       config.Config
	log       *log.Logger
	envFiles  []string
	level     string
	connected bool
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:          "gridpath",
		Short:        "Dijkstra pathfinding on a grid of walls",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			a.log = log.New(cmd.ErrOrStderr(), log.LevelInfo)
			a.cfg = config.Load(a.log, a.envFiles...)
			level := a.cfg.LogLevel
			if a.level != "" {
				level = a.level
			}
			a.log.SetLevel(log.LevelFromString(level))
			return nil
		},
	}
	root.PersistentFlags().StringSliceVar(&a.envFiles, "env-file", nil, "dotenv files to load (default .env)")
	root.PersistentFlags().StringVar(&a.level, "log-level", "", "override "+config.EnvLogLevel)
	root.PersistentFlags().BoolVar(&a.connected, "connected", false, "random mazes always keep start and end connected")

	root.AddCommand(
		newTUICmd(a),
		newServeCmd(a),
		newSolveCmd(a),
		newRenderCmd(a),
	)
	return root
}

// sessionOptions turns the configuration into session options.
func (a *app) sessionOptions() []visualizer.Option {
	opts := []visualizer.Option{
		visualizer.WithWaveInterval(a.cfg.WaveInterval),
		visualizer.WithPathStepDelay(a.cfg.PathStepDelay),
		visualizer.WithWallDensity(a.cfg.WallDensity),
		visualizer.WithSizing(a.cfg.Sizing()),
		visualizer.WithLogger(a.log),
	}
	if a.connected {
		opts = append(opts, visualizer.WithGuaranteedPath())
	}
	return opts
}

// layoutStore returns a Redis-backed store when a Redis address is
// configured and a memory store otherwise. The returned func releases it.
func (a *app) layoutStore(ctx context.Context) (layout.Store, func(), error) {
	if a.cfg.RedisAddr == "" {
		a.log.Infof("layouts are kept in memory")
		return layout.NewMemoryStore(), func() {}, nil
	}
	client := redis.NewClient(&redis.Options{Addr: a.cfg.RedisAddr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("redis %s: %w", a.cfg.RedisAddr, err)
	}
	a.log.Infof("layouts are stored in redis at %s", a.cfg.RedisAddr)
	return layout.NewRedisStore(client, layout.DefaultKeyPrefix), func() {
		if err := client.Close(); err != nil {
			a.log.Warnf("closing redis: %v", err)
		}
	}, nil
}

// openInput opens path, or returns stdin when path is empty or "-".
func openInput(stdin io.Reader, path string) (io.Reader, func(), error) {
	if path == "" || path == "-" {
		return stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil
}
