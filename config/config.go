// Package config loads sandbox settings from UIPROJECTOR_* environment
// variables, with command-line flags layered on top.
package config

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/milk9111/uiprojector/projection"
	"golang.org/x/image/math/f64"
)

const envPrefix = "UIPROJECTOR_"

var ErrInvalid = errors.New("config: invalid")

// Correction names the corrector attached to each emitted label.
type Correction string

const (
	CorrectNone   Correction = "none"
	CorrectScreen Correction = "screen"
	CorrectSafe   Correction = "safe"
	CorrectScript Correction = "script"
)

func (c *Correction) UnmarshalText(text []byte) error {
	switch v := Correction(strings.ToLower(strings.TrimSpace(string(text)))); v {
	case CorrectNone, CorrectScreen, CorrectSafe, CorrectScript:
		*c = v
		return nil
	default:
		return fmt.Errorf("%w: correction %q", ErrInvalid, string(text))
	}
}

func (c Correction) String() string { return string(c) }

// Set implements flag.Value.
func (c *Correction) Set(s string) error { return c.UnmarshalText([]byte(s)) }

type Config struct {
	WindowWidth  int `env:"WINDOW_WIDTH"  envDefault:"1280"`
	WindowHeight int `env:"WINDOW_HEIGHT" envDefault:"720"`

	// Objects is how many targets are scattered inside a sphere of Radius.
	Objects int     `env:"OBJECTS" envDefault:"200"`
	Radius  float64 `env:"RADIUS"  envDefault:"40"`
	// ObjectTTL despawns targets after that many frames. Zero keeps them.
	ObjectTTL int   `env:"OBJECT_TTL" envDefault:"0"`
	Seed      int64 `env:"SEED"       envDefault:"1"`

	Template     string     `env:"TEMPLATE"   envDefault:"overlay"`
	Correction   Correction `env:"CORRECTION" envDefault:"screen"`
	Script       string     `env:"SCRIPT"     envDefault:"safe_clamp"`
	Margin       float64    `env:"MARGIN"     envDefault:"40"`
	WorldOffset  []float64  `env:"WORLD_OFFSET"  envSeparator:"," envDefault:"0,1.5,0"`
	ScreenOffset []float64  `env:"SCREEN_OFFSET" envSeparator:"," envDefault:"0,0"`
	// SafeInsets are the top, bottom, left and right pixels lost to the
	// display's unsafe border.
	SafeInsets []float64 `env:"SAFE_INSETS" envSeparator:"," envDefault:"0,0,0,0"`

	UsePool  bool `env:"USE_POOL"  envDefault:"true"`
	PoolSize int  `env:"POOL_SIZE" envDefault:"64"`

	Watch        bool   `env:"WATCH"         envDefault:"true"`
	TemplatesDir string `env:"TEMPLATES_DIR" envDefault:"templates"`
	Debug        bool   `env:"DEBUG"`
}

// Load reads the environment and validates the result.
func Load() (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: envPrefix}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// RegisterFlags binds flags to cfg. Values already in cfg become the flag
// defaults, so flags override the environment.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.WindowWidth, "width", c.WindowWidth, "window width")
	fs.IntVar(&c.WindowHeight, "height", c.WindowHeight, "window height")
	fs.IntVar(&c.Objects, "objects", c.Objects, "number of target objects")
	fs.Float64Var(&c.Radius, "radius", c.Radius, "radius of the sphere objects are scattered in")
	fs.IntVar(&c.ObjectTTL, "ttl", c.ObjectTTL, "despawn objects after this many frames (0 keeps them)")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "random seed for object placement")
	fs.StringVar(&c.Template, "template", c.Template, "surface template name in templates/")
	fs.Var(&c.Correction, "correct", "label correction: none, screen, safe or script")
	fs.StringVar(&c.Script, "script", c.Script, "correction script name in templates/scripts/")
	fs.Float64Var(&c.Margin, "margin", c.Margin, "screen and safe-area correction margin in pixels")
	fs.BoolVar(&c.UsePool, "pool", c.UsePool, "reuse labels through an object pool")
	fs.BoolVar(&c.Watch, "watch", c.Watch, "hot reload templates and scripts")
	fs.BoolVar(&c.Debug, "debug", c.Debug, "enable debug logging and overlays")
}

func (c Config) Validate() error {
	switch {
	case c.WindowWidth <= 0 || c.WindowHeight <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.WindowWidth, c.WindowHeight)
	case c.Objects < 0:
		return fmt.Errorf("%w: objects %d", ErrInvalid, c.Objects)
	case c.Radius < 0:
		return fmt.Errorf("%w: radius %v", ErrInvalid, c.Radius)
	case c.ObjectTTL < 0:
		return fmt.Errorf("%w: object ttl %d", ErrInvalid, c.ObjectTTL)
	case c.PoolSize < 0:
		return fmt.Errorf("%w: pool size %d", ErrInvalid, c.PoolSize)
	case len(c.WorldOffset) != 3:
		return fmt.Errorf("%w: world offset needs 3 components, got %d", ErrInvalid, len(c.WorldOffset))
	case len(c.ScreenOffset) != 2:
		return fmt.Errorf("%w: screen offset needs 2 components, got %d", ErrInvalid, len(c.ScreenOffset))
	case len(c.SafeInsets) != 4:
		return fmt.Errorf("%w: safe insets need 4 components, got %d", ErrInvalid, len(c.SafeInsets))
	case c.Template == "":
		return fmt.Errorf("%w: empty template name", ErrInvalid)
	}
	return nil
}

func (c Config) WorldOffsetVec() f64.Vec3 {
	return f64.Vec3{c.WorldOffset[0], c.WorldOffset[1], c.WorldOffset[2]}
}

func (c Config) ScreenOffsetVec() f64.Vec2 {
	return f64.Vec2{c.ScreenOffset[0], c.ScreenOffset[1]}
}

func (c Config) MarginInsets() projection.Margins {
	return projection.Margins{Top: c.Margin, Bottom: c.Margin, Left: c.Margin, Right: c.Margin}
}

func (c Config) SafeArea() projection.Margins {
	return projection.Margins{
		Top:    c.SafeInsets[0],
		Bottom: c.SafeInsets[1],
		Left:   c.SafeInsets[2],
		Right:  c.SafeInsets[3],
	}
}
