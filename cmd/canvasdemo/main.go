// Command canvasdemo runs a canvas scene in an Ebitengine window.
//
// Usage:
//
//	canvasdemo -config demo.toml
//
// The config may name a YAML layout and a directory of Lua scripts. Without a
// layout a small built-in scene is created: click anywhere to move the hero,
// collect the coins.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"os"

	canvas "github.com/JusticeDevHub/canvas-engine"
	"github.com/JusticeDevHub/canvas-engine/config"
	"github.com/JusticeDevHub/canvas-engine/ebitenview"
	"github.com/JusticeDevHub/canvas-engine/layout"
	"github.com/JusticeDevHub/canvas-engine/script"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfgPath := flag.String("config", os.Getenv("CANVAS_CONFIG"), "path to a TOML config file")
	flag.Parse()

	// 1. Load config
	cfg := config.Defaults()
	if *cfgPath != "" {
		var err error
		if cfg, err = config.Load(*cfgPath); err != nil {
			return fmt.Errorf("load config: %w", err)
		}
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	// 3. Bind view and scene
	view := ebitenview.NewView(cfg.Viewport.Width, cfg.Viewport.Height)
	scene, err := canvas.NewScene(view, cfg.SceneOptions(log)...)
	if err != nil {
		return fmt.Errorf("create scene: %w", err)
	}
	defer scene.Shutdown()
	scene.OnError(func(err error) {
		log.Error("scene inconsistency", zap.Error(err))
	})

	// 4. Scripts and layout
	engine := script.NewEngine(scene, log)
	defer engine.Close()
	if cfg.Paths.Scripts != "" {
		if err := engine.LoadDir(cfg.Paths.Scripts); err != nil {
			return fmt.Errorf("scripts: %w", err)
		}
	}
	if cfg.Paths.Layout != "" {
		l, err := layout.LoadFile(cfg.Paths.Layout)
		if err != nil {
			return err
		}
		if err := l.Apply(scene, engine); err != nil {
			return fmt.Errorf("apply layout: %w", err)
		}
	}
	if scene.Len() == 0 {
		populate(scene, view)
	}
	if hero, ok := scene.GetObject("hero"); ok {
		controls(scene, hero)
	}

	log.Info("scene ready",
		zap.Int("objects", scene.Len()),
		zap.Int("width", cfg.Viewport.Width),
		zap.Int("height", cfg.Viewport.Height),
		zap.Int("tps", cfg.Frame.TPS),
	)

	// 5. Run
	game := ebitenview.New(scene, view, ebitenview.Options{
		Title:         cfg.Viewport.Title,
		TPS:           cfg.Frame.TPS,
		ShowFPS:       cfg.Frame.ShowFPS,
		ScreenshotDir: cfg.Paths.Screenshots,
		Logger:        log,
	})
	if cfg.Paths.InputScript != "" {
		data, err := os.ReadFile(cfg.Paths.InputScript)
		if err != nil {
			return fmt.Errorf("input script: %w", err)
		}
		inputs, err := canvas.LoadInputScript(data)
		if err != nil {
			return err
		}
		inputs.OnCapture = game.Screenshot
		scene.SetInputScript(inputs)
		log.Info("input script attached", zap.String("path", cfg.Paths.InputScript))
	}
	return game.Run()
}

// populate builds the default scene: a hero and a ring of coins it collects
// on contact.
func populate(scene *canvas.Scene, view *ebitenview.View) {
	hero := scene.CreateObject("hero").SetSize(32, 32)
	view.SetColor("hero", color.RGBA{0x3c, 0xb3, 0x71, 0xff})

	for i := range 8 {
		id := fmt.Sprintf("coin-%d", i)
		p := canvas.Direction(float64(i) * 45).Scale(200)
		scene.CreateObject(id).SetSize(16, 16).SetPosition(p.X, p.Y).AddTag("coin")
		view.SetColor(id, color.RGBA{0xff, 0xd7, 0x00, 0xff})
	}

	hero.SetVariable("coins", 0)
	hero.OnCollision("coin", func(self, other *canvas.Object) {
		n, _ := self.GetVariable("coins")
		self.SetVariable("coins", n.(int)+1)
		other.Destroy()
	})
}

// controls makes hero walk to wherever the pointer clicks, with the camera
// trailing it. Space stops it.
func controls(scene *canvas.Scene, hero *canvas.Object) {
	scene.On(canvas.EventClick, "", func(ev canvas.InputEvent) {
		hero.MoveTo(ev.X, ev.Y, 250)
	})
	scene.On(canvas.EventKeyDown, "", func(ev canvas.InputEvent) {
		if ev.Key == "Space" {
			hero.StopMovement()
		}
	})
	scene.Camera().SetBounds(canvas.Rect{Size: canvas.Size{Width: 200, Height: 200}}).Follow(hero, 0.1)
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
