package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

type Config struct {
	Game     GameConfig     `toml:"game"`
	Data     DataConfig     `toml:"data"`
	API      APIConfig      `toml:"api"`
	Display  DisplayConfig  `toml:"display"`
	Terminal TerminalConfig `toml:"terminal"`
	Logging  LoggingConfig  `toml:"logging"`

	// Bindings maps extra key names to action names, on top of the
	// built-in keys: j = "left".
	Bindings map[string]string `toml:"bindings"`
}

type GameConfig struct {
	Variant       string   `toml:"variant"`
	Seed          int64    `toml:"seed"`            // 0 = seed from the clock
	FrameRate     int      `toml:"frame_rate"`      // host frames per second
	FixedStep     Duration `toml:"fixed_step"`      // non-zero replaces measured frame delta
	MaxFrameDelta Duration `toml:"max_frame_delta"` // cap on one frame's dt
}

type DataConfig struct {
	Labels  string `toml:"labels"`
	Ranks   string `toml:"ranks"`
	Scripts string `toml:"scripts"`
}

type APIConfig struct {
	BaseURL string   `toml:"base_url"`
	Token   string   `toml:"token"`
	UserID  int64    `toml:"user_id"`
	GameID  int      `toml:"game_id"`
	Timeout Duration `toml:"timeout"`
}

type DisplayConfig struct {
	Frontend string  `toml:"frontend"` // "window", "terminal" or "headless"
	Scale    float64 `toml:"scale"`    // window size multiplier over the logical playfield
	Title    string  `toml:"title"`
}

type TerminalConfig struct {
	Cols    int      `toml:"cols"`
	Rows    int      `toml:"rows"`
	KeyHold Duration `toml:"key_hold"` // terminals report no key-up; a key stays held this long after its last repeat
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
	Output string `toml:"output"` // zap output path, "stderr" by default
}

// Duration decodes TOML strings such as "250ms" into a time.Duration.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Load reads the TOML file at path over the defaults, then applies .env and
// ARCADE_* environment overrides.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	if err := applyEnv(cfg, os.Getenv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Path returns the config file location, honouring ARCADE_CONFIG.
func Path() string {
	if p := os.Getenv("ARCADE_CONFIG"); p != "" {
		return p
	}
	return "config/arcade.toml"
}

func applyEnv(cfg *Config, getenv func(string) string) error {
	if v := getenv("ARCADE_API_BASE_URL"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := getenv("ARCADE_API_TOKEN"); v != "" {
		cfg.API.Token = v
	}
	if v := getenv("ARCADE_USER_ID"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("ARCADE_USER_ID %q: %w", v, err)
		}
		cfg.API.UserID = id
	}
	if v := getenv("ARCADE_FRONTEND"); v != "" {
		cfg.Display.Frontend = v
	}
	return nil
}

// Validate rejects values the loop or the hosts cannot run with.
func (c *Config) Validate() error {
	if c.Game.Variant == "" {
		return errors.New("game.variant is empty")
	}
	if c.Game.FrameRate <= 0 {
		return fmt.Errorf("game.frame_rate must be positive, got %d", c.Game.FrameRate)
	}
	if c.Game.FixedStep.Duration < 0 || c.Game.MaxFrameDelta.Duration <= 0 {
		return errors.New("game.fixed_step must be >= 0 and game.max_frame_delta > 0")
	}
	switch c.Display.Frontend {
	case "window", "terminal", "headless":
	default:
		return fmt.Errorf("display.frontend must be window, terminal or headless, got %q", c.Display.Frontend)
	}
	if c.Display.Scale <= 0 {
		return fmt.Errorf("display.scale must be positive, got %v", c.Display.Scale)
	}
	if c.Terminal.Cols < 20 || c.Terminal.Rows < 10 {
		return fmt.Errorf("terminal grid %dx%d is too small", c.Terminal.Cols, c.Terminal.Rows)
	}
	if c.API.BaseURL == "" {
		return errors.New("api.base_url is empty")
	}
	if c.API.Timeout.Duration <= 0 {
		return fmt.Errorf("api.timeout must be positive, got %s", c.API.Timeout.Duration)
	}
	return nil
}

func defaults() *Config {
	return &Config{
		Game: GameConfig{
			Variant:       "phish-blaster",
			FrameRate:     60,
			MaxFrameDelta: Duration{250 * time.Millisecond},
		},
		Data: DataConfig{
			Labels:  "data/yaml/labels.yaml",
			Ranks:   "data/yaml/ranks.yaml",
			Scripts: "scripts",
		},
		API: APIConfig{
			BaseURL: "http://localhost:8000/api",
			GameID:  1,
			Timeout: Duration{5 * time.Second},
		},
		Display: DisplayConfig{
			Frontend: "window",
			Scale:    1.0,
			Title:    "CyberQuest Arcade",
		},
		Terminal: TerminalConfig{
			Cols:    90,
			Rows:    30,
			KeyHold: Duration{550 * time.Millisecond},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
			Output: "stderr",
		},
	}
}
