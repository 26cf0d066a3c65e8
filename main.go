package main

import (
	"log"
	"os"

	"github.com/gogpu/gg"

	"PaintTool/internal/config"
	"PaintTool/internal/logging"
	"PaintTool/internal/render"
	"PaintTool/internal/state"
	"PaintTool/internal/ui"
)

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	level, _ := logging.ParseLevel(cfg.LogLevel) // validated by FromEnv
	logger := logging.New(os.Stderr, level)
	logging.SetLogger(logger)
	gg.SetLogger(logger.With("lib", "gg"))

	faces, err := render.LoadFaces(cfg.StickerFont, cfg.FontSize, ui.FallbackFonts()...)
	if err != nil {
		log.Fatalf("Failed to load sticker font: %v", err)
	}
	defer faces.Close()

	opts, err := cfg.SessionOptions()
	if err != nil {
		log.Fatalf("Invalid drawing settings: %v", err)
	}
	session := state.NewSession(opts)

	logger.Info("starting", "title", cfg.Title,
		"canvas_width", cfg.CanvasWidth, "canvas_height", cfg.CanvasHeight,
		"undo_order", opts.UndoOrder)
	ui.RunApp(cfg, session, faces)
}
