// Package config loads PaintTool settings: built-in defaults, overlaid by an
// optional TOML file, overlaid by environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"PaintTool/internal/export"
	"PaintTool/internal/logging"
	"PaintTool/internal/render"
	"PaintTool/internal/state"
)

const (
	// EnvFile names a config file that must exist.
	EnvFile = "PAINTTOOL_CONFIG"
	// EnvLogLevel overrides log_level.
	EnvLogLevel = "PAINTTOOL_LOG_LEVEL"
	// DefaultFile is read from the working directory when present.
	DefaultFile = "painttool.toml"
)

var ErrInvalidConfig = errors.New("config: invalid")

type Config struct {
	Title        string   `toml:"title"`
	CanvasWidth  int      `toml:"canvas_width"`
	CanvasHeight int      `toml:"canvas_height"`
	ExportScale  float64  `toml:"export_scale"`
	ExportName   string   `toml:"export_name"`
	Thin         float64  `toml:"thin"`
	Thick        float64  `toml:"thick"`
	Color        string   `toml:"color"`
	Stickers     []string `toml:"stickers"`
	StickerFont  string   `toml:"sticker_font"`
	FontSize     float64  `toml:"font_size"`
	UndoOrder    string   `toml:"undo_order"`
	LogLevel     string   `toml:"log_level"`
}

func Default() Config {
	return Config{
		Title:        "Paint Tool",
		CanvasWidth:  256,
		CanvasHeight: 256,
		ExportScale:  export.DefaultScale,
		ExportName:   export.DefaultName,
		Thin:         state.ThicknessThin,
		Thick:        state.ThicknessThick,
		Color:        "#000000",
		Stickers:     append([]string(nil), state.DefaultStickers...),
		FontSize:     render.DefaultFontSize,
		UndoOrder:    state.UndoChronological.String(),
		LogLevel:     "info",
	}
}

// Load overlays the TOML file at path on the defaults and validates the
// result. Keys the file sets but Config does not know are logged.
func Load(path string) (Config, error) {
	cfg, err := read(path)
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func read(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	for _, key := range md.Undecoded() {
		logging.Logger().Warn("unknown config key", "file", path, "key", key.String())
	}
	return cfg, nil
}

// FromEnv loads $PAINTTOOL_CONFIG if set, else painttool.toml if it exists,
// else the defaults, then applies $PAINTTOOL_LOG_LEVEL. The result is
// validated once, after the override.
func FromEnv() (Config, error) {
	cfg := Default()
	var err error
	if p := os.Getenv(EnvFile); p != "" {
		cfg, err = read(p)
	} else if _, statErr := os.Stat(DefaultFile); statErr == nil {
		cfg, err = read(DefaultFile)
	} else if !errors.Is(statErr, fs.ErrNotExist) {
		err = fmt.Errorf("config: %w", statErr)
	}
	if err != nil {
		return Config{}, err
	}

	if lvl := os.Getenv(EnvLogLevel); lvl != "" {
		cfg.LogLevel = lvl
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first invalid field, wrapped in ErrInvalidConfig.
func (c Config) Validate() error {
	invalid := func(field string, v any) error {
		return fmt.Errorf("%w: %s = %v", ErrInvalidConfig, field, v)
	}
	switch {
	case c.CanvasWidth <= 0:
		return invalid("canvas_width", c.CanvasWidth)
	case c.CanvasHeight <= 0:
		return invalid("canvas_height", c.CanvasHeight)
	case c.ExportScale <= 0:
		return invalid("export_scale", c.ExportScale)
	case strings.TrimSpace(c.ExportName) == "":
		return invalid("export_name", c.ExportName)
	case c.Thin <= 0:
		return invalid("thin", c.Thin)
	case c.Thick <= 0:
		return invalid("thick", c.Thick)
	case c.FontSize <= 0:
		return invalid("font_size", c.FontSize)
	}
	if _, err := state.ParseColor(c.Color); err != nil {
		return fmt.Errorf("%w: color: %w", ErrInvalidConfig, err)
	}
	if _, err := state.ParseUndoOrder(c.UndoOrder); err != nil {
		return fmt.Errorf("%w: undo_order: %w", ErrInvalidConfig, err)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log_level: %w", ErrInvalidConfig, err)
	}
	return nil
}

// SessionOptions converts the drawing settings for state.NewSession.
func (c Config) SessionOptions() (state.Options, error) {
	col, err := state.ParseColor(c.Color)
	if err != nil {
		return state.Options{}, fmt.Errorf("%w: color: %w", ErrInvalidConfig, err)
	}
	order, err := state.ParseUndoOrder(c.UndoOrder)
	if err != nil {
		return state.Options{}, fmt.Errorf("%w: undo_order: %w", ErrInvalidConfig, err)
	}
	return state.Options{
		Thin:      c.Thin,
		Thick:     c.Thick,
		Color:     col,
		Stickers:  append([]string(nil), c.Stickers...),
		UndoOrder: order,
	}, nil
}

// ExportOptions pairs the canvas size and export scale with faces.
func (c Config) ExportOptions(faces *render.Faces) export.Options {
	return export.Options{
		Width:  c.CanvasWidth,
		Height: c.CanvasHeight,
		Scale:  c.ExportScale,
		Faces:  faces,
	}
}
