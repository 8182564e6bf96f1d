// Package config assembles runtime settings from defaults, an optional YAML
// file and command-line flags, in that order of precedence.
package config

import (
	"classic-snake/game"
	"classic-snake/game/types"
	"classic-snake/store"
	"flag"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// MinFPS is the lowest frame rate that still polls the timer once per
// interval at the fastest speed; ticks are consumed one per frame.
const MinFPS = int(time.Second / types.MinInterval)

// Config holds all application configuration
type Config struct {
	Grid      types.Grid     `yaml:"grid"`
	CellSize  int            `yaml:"cell_size"`
	FPS       int            `yaml:"fps"`
	Seed      uint64         `yaml:"seed"` // 0 picks a time-based seed
	MaxTicks  int            `yaml:"max_ticks"`
	Autopilot bool           `yaml:"autopilot"`
	Debug     bool           `yaml:"debug"`
	Store     store.Options  `yaml:"store"`
	Spectate  SpectateConfig `yaml:"spectate"`
	Headless  HeadlessConfig `yaml:"headless"`
}

// SpectateConfig controls the read-only spectator server.
type SpectateConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// HeadlessConfig controls windowless autopilot runs.
type HeadlessConfig struct {
	Enabled bool `yaml:"enabled"`
	Games   int  `yaml:"games"`
}

// Default matches the classic 400x400 board with 20px cells.
func Default() Config {
	return Config{
		Grid:     types.DefaultGrid,
		CellSize: 20,
		FPS:      60,
		Store: store.Options{
			Backend: store.BackendSQLite,
			Path:    "data/snake.db",
		},
		Spectate: SpectateConfig{Addr: ":8080"},
		Headless: HeadlessConfig{Games: 100},
	}
}

// Load builds the configuration for args (without the program name).
func Load(args []string) (Config, error) {
	cfg := Default()
	flags := cfg

	fs := flag.NewFlagSet("snake", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	path := fs.String("config", "", "Path to a YAML config file")
	fs.IntVar(&flags.Grid.Width, "width", flags.Grid.Width, "Grid width in cells")
	fs.IntVar(&flags.Grid.Height, "height", flags.Grid.Height, "Grid height in cells")
	fs.IntVar(&flags.CellSize, "cell", flags.CellSize, "Cell size in pixels")
	fs.IntVar(&flags.FPS, "fps", flags.FPS, "Target frames per second")
	fs.Uint64Var(&flags.Seed, "seed", flags.Seed, "Food RNG seed (0 = time based)")
	fs.IntVar(&flags.MaxTicks, "max-ticks", flags.MaxTicks, "End a game after this many ticks (0 = no limit)")
	fs.BoolVar(&flags.Autopilot, "autopilot", flags.Autopilot, "Start with the autopilot steering")
	fs.BoolVar(&flags.Debug, "debug", flags.Debug, "Verbose logging")
	fs.StringVar(&flags.Store.Backend, "store", flags.Store.Backend, "Store backend: sqlite, file or memory")
	fs.StringVar(&flags.Store.Path, "store-path", flags.Store.Path, "Database or stats file path")
	fs.BoolVar(&flags.Spectate.Enabled, "spectate", flags.Spectate.Enabled, "Serve the spectator feed")
	fs.StringVar(&flags.Spectate.Addr, "spectate-addr", flags.Spectate.Addr, "Spectator listen address")
	fs.BoolVar(&flags.Headless.Enabled, "headless", flags.Headless.Enabled, "Play autopilot games without a window")
	fs.IntVar(&flags.Headless.Games, "games", flags.Headless.Games, "Number of headless games")

	if err := fs.Parse(args); err != nil {
		return Config{}, errors.Wrap(err, "parse flags")
	}

	if *path != "" {
		if err := loadFile(*path, &cfg); err != nil {
			return Config{}, err
		}
	}

	// flags given on the command line win over the file
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "width":
			cfg.Grid.Width = flags.Grid.Width
		case "height":
			cfg.Grid.Height = flags.Grid.Height
		case "cell":
			cfg.CellSize = flags.CellSize
		case "fps":
			cfg.FPS = flags.FPS
		case "seed":
			cfg.Seed = flags.Seed
		case "max-ticks":
			cfg.MaxTicks = flags.MaxTicks
		case "autopilot":
			cfg.Autopilot = flags.Autopilot
		case "debug":
			cfg.Debug = flags.Debug
		case "store":
			cfg.Store.Backend = flags.Store.Backend
		case "store-path":
			cfg.Store.Path = flags.Store.Path
		case "spectate":
			cfg.Spectate.Enabled = flags.Spectate.Enabled
		case "spectate-addr":
			cfg.Spectate.Addr = flags.Spectate.Addr
		case "headless":
			cfg.Headless.Enabled = flags.Headless.Enabled
		case "games":
			cfg.Headless.Games = flags.Headless.Games
		}
	})

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "read config %s", path)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return errors.Wrapf(err, "parse config %s", path)
	}
	return nil
}

// Validate rejects settings the game cannot run with.
func (c Config) Validate() error {
	if c.Grid.Width < 2 || c.Grid.Height < 1 {
		return errors.Errorf("grid %dx%d is too small", c.Grid.Width, c.Grid.Height)
	}
	if c.CellSize <= 0 {
		return errors.Errorf("cell size must be positive, got %d", c.CellSize)
	}
	if c.FPS < MinFPS {
		return errors.Errorf("fps must be at least %d so every tick gets a frame, got %d", MinFPS, c.FPS)
	}
	if c.MaxTicks < 0 {
		return errors.Errorf("max ticks cannot be negative, got %d", c.MaxTicks)
	}
	switch c.Store.Backend {
	case store.BackendSQLite, store.BackendFile:
		if c.Store.Path == "" {
			return errors.Errorf("store %q needs a path", c.Store.Backend)
		}
	case store.BackendMemory:
	default:
		return errors.Errorf("unknown store backend %q", c.Store.Backend)
	}
	if c.Spectate.Enabled && c.Spectate.Addr == "" {
		return errors.New("spectator server needs an address")
	}
	if c.Headless.Enabled && c.Headless.Games <= 0 {
		return errors.Errorf("headless games must be positive, got %d", c.Headless.Games)
	}
	return nil
}

// Origin is the classic starting cell when it fits, the grid centre otherwise.
func (c Config) Origin() types.Point {
	if c.Grid.Contains(types.Origin) {
		return types.Origin
	}
	return types.Point{X: c.Grid.Width / 2, Y: c.Grid.Height / 2}
}

// GameConfig derives the controller settings.
func (c Config) GameConfig() game.Config {
	gc := game.DefaultConfig()
	gc.Grid = c.Grid
	gc.Origin = c.Origin()
	gc.MaxTicks = c.MaxTicks
	if c.Seed != 0 {
		gc.Seed = c.Seed
	} else {
		gc.Seed = uint64(time.Now().UnixNano())
	}
	return gc
}
