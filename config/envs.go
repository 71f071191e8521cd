package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/katalvlaran/gridpath/gridgraph"
	"github.com/katalvlaran/gridpath/internal/log"
)

// Config holds the application's configuration values.
type Config struct {
	Rows          int           // Initial grid rows for hosts
	Cols          int           // Initial grid columns for hosts
	CellSize      int           // Pixel size of one cell (sizing policy, PNG export)
	HeaderHeight  int           // Pixels reserved above the grid by the sizing policy
	WaveInterval  time.Duration // Pause between engine waves in animated hosts
	PathStepDelay time.Duration // Pause between revealed shortest-path cells
	WallDensity   float64       // Probability of a wall per cell in a random maze
	HTTPAddr      string        // Listen address of the web host
	RedisAddr     string        // Redis address for layout storage; empty keeps layouts in memory
	LogLevel      string        // DEBUG, INFO, WARN, ERROR or NONE
	GinMode       string        // Mode for the Gin framework (release, debug, test)
}

// Environment variable names.
const (
	EnvRows          = "GRIDPATH_ROWS"
	EnvCols          = "GRIDPATH_COLS"
	EnvCellSize      = "GRIDPATH_CELL_SIZE"
	EnvHeaderHeight  = "GRIDPATH_HEADER_HEIGHT"
	EnvWaveInterval  = "GRIDPATH_WAVE_INTERVAL_MS"
	EnvPathStepDelay = "GRIDPATH_PATH_STEP_MS"
	EnvWallDensity   = "GRIDPATH_WALL_DENSITY"
	EnvHTTPAddr      = "GRIDPATH_HTTP_ADDR"
	EnvRedisAddr     = "GRIDPATH_REDIS_ADDR"
	EnvLogLevel      = "GRIDPATH_LOG_LEVEL"
	EnvGinMode       = "GIN_MODE"
)

// Default returns the configuration used when no variable is set.
func Default() Config {
	return Config{
		Rows:          20,
		Cols:          40,
		CellSize:      gridgraph.DefaultSizing().CellSize,
		HeaderHeight:  gridgraph.DefaultSizing().HeaderHeight,
		WaveInterval:  50 * time.Millisecond,
		PathStepDelay: 5 * time.Millisecond,
		WallDensity:   gridgraph.DefaultWallDensity,
		HTTPAddr:      ":8080",
		RedisAddr:     "",
		LogLevel:      "INFO",
		GinMode:       "release",
	}
}

// Load reads a .env file from the working directory if one exists, then
// the environment. Files are optional; a missing file is logged, not fatal.
// Unparseable or out-of-range values keep their default with a warning.
func Load(logger *log.Logger, files ...string) Config {
	if err := godotenv.Load(files...); err != nil {
		logger.Debugf(".env file not found or could not be loaded: %v", err)
	}
	return FromEnv(logger)
}

// FromEnv builds a Config from the current environment only.
func FromEnv(logger *log.Logger) Config {
	def := Default()
	return Config{
		Rows:          getEnvAsPositiveInt(logger, EnvRows, def.Rows),
		Cols:          getEnvAsPositiveInt(logger, EnvCols, def.Cols),
		CellSize:      getEnvAsPositiveInt(logger, EnvCellSize, def.CellSize),
		HeaderHeight:  getEnvAsNonNegativeInt(logger, EnvHeaderHeight, def.HeaderHeight),
		WaveInterval:  getEnvAsMillis(logger, EnvWaveInterval, def.WaveInterval),
		PathStepDelay: getEnvAsMillis(logger, EnvPathStepDelay, def.PathStepDelay),
		WallDensity:   getEnvAsProbability(logger, EnvWallDensity, def.WallDensity),
		HTTPAddr:      getEnvWithDefault(EnvHTTPAddr, def.HTTPAddr),
		RedisAddr:     getEnvWithDefault(EnvRedisAddr, def.RedisAddr),
		LogLevel:      getEnvWithDefault(EnvLogLevel, def.LogLevel),
		GinMode:       getEnvWithDefault(EnvGinMode, def.GinMode),
	}
}

// Sizing returns the viewport sizing policy described by c.
func (c Config) Sizing() gridgraph.Sizing {
	return gridgraph.Sizing{CellSize: c.CellSize, HeaderHeight: c.HeaderHeight}
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(logger *log.Logger, key string, defaultValue int, ok func(int) bool) int {
	raw, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.Atoi(raw)
	if err != nil || !ok(value) {
		logger.Warnf("environment variable %s=%q is invalid, using %d", key, raw, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsPositiveInt(logger *log.Logger, key string, defaultValue int) int {
	return getEnvAsInt(logger, key, defaultValue, func(v int) bool { return v > 0 })
}

func getEnvAsNonNegativeInt(logger *log.Logger, key string, defaultValue int) int {
	return getEnvAsInt(logger, key, defaultValue, func(v int) bool { return v >= 0 })
}

func getEnvAsMillis(logger *log.Logger, key string, defaultValue time.Duration) time.Duration {
	ms := getEnvAsNonNegativeInt(logger, key, int(defaultValue/time.Millisecond))
	return time.Duration(ms) * time.Millisecond
}

func getEnvAsProbability(logger *log.Logger, key string, defaultValue float64) float64 {
	raw, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || value < 0 || value > 1 {
		logger.Warnf("environment variable %s=%q is invalid, using %.2f", key, raw, defaultValue)
		return defaultValue
	}
	return value
}
