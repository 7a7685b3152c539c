package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cyberquest/arcade/internal/config"
	"github.com/cyberquest/arcade/internal/core/ecs"
	"github.com/cyberquest/arcade/internal/data"
	"github.com/cyberquest/arcade/internal/frontend"
	"github.com/cyberquest/arcade/internal/frontend/headless"
	"github.com/cyberquest/arcade/internal/frontend/term"
	"github.com/cyberquest/arcade/internal/frontend/window"
	"github.com/cyberquest/arcade/internal/game"
	"github.com/cyberquest/arcade/internal/input"
	"github.com/cyberquest/arcade/internal/loop"
	"github.com/cyberquest/arcade/internal/render"
	"github.com/cyberquest/arcade/internal/score"
	"github.com/cyberquest/arcade/internal/scripting"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner(title, variant string) {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m          CyberQuest Arcade  v0.1.0        \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  │\033[0m        spot the threat, keep it safe      \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
	fmt.Printf("  \033[1mGame:\033[0m %s \033[90m(%s)\033[0m\n\n", title, variant)
}

func printSection(title string) {
	lineLen := 46 - render.TextCells(title) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := 42 - render.TextCells(label) - len(numStr)
	if dotsLen < 3 {
		dotsLen = 3
	}
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printWarn(msg string) {
	fmt.Printf("  \033[33m!\033[0m %s\n", msg)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

// ── Main ──────────────────────────────────────────────────────────

func run() error {
	// 1. Flags and config
	configPath := flag.String("config", config.Path(), "path to arcade.toml")
	frontendFlag := flag.String("frontend", "", "window, terminal or headless (overrides config)")
	variantFlag := flag.String("variant", "", "game variant (overrides config)")
	seedFlag := flag.Int64("seed", 0, "random seed, 0 keeps the configured seed")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if *frontendFlag != "" {
		cfg.Display.Frontend = *frontendFlag
	}
	if *variantFlag != "" {
		cfg.Game.Variant = *variantFlag
	}
	if *seedFlag != 0 {
		cfg.Game.Seed = *seedFlag
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("flags: %w", err)
	}

	// 2. Logger. The terminal host owns the screen, so its logs go to a file.
	if cfg.Display.Frontend == "terminal" && isConsole(cfg.Logging.Output) {
		cfg.Logging.Output = "arcade.log"
	}
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	// 3. Data tables
	labels, err := data.LoadLabelTable(cfg.Data.Labels)
	if err != nil {
		return fmt.Errorf("load labels: %w", err)
	}
	variant := labels.Get(cfg.Game.Variant)
	if variant == nil {
		return fmt.Errorf("unknown variant %q (have %s)", cfg.Game.Variant, strings.Join(labels.Variants(), ", "))
	}
	pool, _ := labels.Pool(variant.Variant)

	ranks, err := data.LoadRankTable(cfg.Data.Ranks)
	if err != nil {
		return fmt.Errorf("load ranks: %w", err)
	}

	printBanner(variant.Title, variant.Variant)
	printSection("Data")
	printStat("Variants", len(labels.Variants()))
	printStat("Labels", labels.Count())
	printStat("Ranks", ranks.Count())
	fmt.Println()

	// 4. Variant tuning from Lua rules
	printSection("Rules")
	engine, err := scripting.NewEngine(cfg.Data.Scripts, log)
	if err != nil {
		return fmt.Errorf("scripting: %w", err)
	}
	defer engine.Close()

	tuning := game.DefaultTuning()
	tuning.MaxFrameDelta = cfg.Game.MaxFrameDelta.Seconds()
	overrides := engine.TuningOverrides(variant.Variant)
	if unknown := tuning.Apply(overrides); len(unknown) > 0 {
		log.Warn("ignoring unknown tuning keys", zap.Strings("keys", unknown))
	}
	if err := tuning.Validate(); err != nil {
		return fmt.Errorf("tuning for %s: %w", variant.Variant, err)
	}
	printStat("Tuning overrides", len(overrides))
	printOK("Variant rules loaded")
	fmt.Println()

	// 5. Score API
	printSection("Scores")
	client := score.NewClient(cfg.API.BaseURL, cfg.API.Token, cfg.API.Timeout.Duration)
	board := score.NewLeaderboard(client, cfg.API.GameID, log)
	reporter := score.NewReporter(client, board, cfg.API.UserID, cfg.API.GameID, log)

	fetchCtx, cancelFetch := context.WithTimeout(context.Background(), cfg.API.Timeout.Duration)
	if err := board.Refresh(fetchCtx); err != nil {
		printWarn("Leaderboard unavailable, playing offline")
	} else {
		printStat("Leaderboard entries", len(board.Entries()))
	}
	cancelFetch()
	fmt.Println()

	// 6. Simulation and loop
	seed := cfg.Game.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	world := ecs.NewWorld()
	sim := game.NewSim(tuning, pool, rand.New(rand.NewSource(seed)), world)
	bindings := input.DefaultBindings()
	if err := bindings.Apply(cfg.Bindings); err != nil {
		return fmt.Errorf("config bindings: %w", err)
	}
	sampler := input.NewSampler(bindings)
	queue := loop.NewFrameQueue()
	renderer := render.NewRenderer(tuning, render.DefaultPalette())

	driverCfg := loop.Config{
		Sim:       sim,
		World:     world,
		Sampler:   sampler,
		Scheduler: queue,
		Renderer:  renderer,
		Reporter:  reporter,
		Variant:   variant.Variant,
		FixedStep: cfg.Game.FixedStep.Duration,
		Log:       log,
	}
	scene := &frontend.Scene{
		Sampler: sampler,
		Board:   board,
		Ranks:   ranks,
		Palette: renderer.Palette(),
		Title:   variant.Title,
	}

	log.Info("arcade ready",
		zap.String("variant", variant.Variant),
		zap.String("frontend", cfg.Display.Frontend),
		zap.Int64("seed", seed),
	)
	printReady(fmt.Sprintf("Starting %s frontend", cfg.Display.Frontend))

	// 7. Host
	switch cfg.Display.Frontend {
	case "window":
		frame := window.NewFrame(tuning.Width, tuning.Height)
		driverCfg.Canvas = window.NewCanvas(frame)
		driver := loop.NewDriver(driverCfg)
		defer shutdown(driver, log)

		pad := input.DefaultTouchPad(tuning.Width, tuning.Height)
		scene.Driver, scene.Pad = driver, &pad
		g := window.NewGame(queue, scene, frame, log)
		g.Paint(renderer, game.State{PlayerX: tuning.Width / 2, Lives: tuning.StartLives})
		return window.Run(g, window.Options{
			Title:     cfg.Display.Title,
			Scale:     cfg.Display.Scale,
			FrameRate: cfg.Game.FrameRate,
			Width:     tuning.Width,
			Height:    tuning.Height,
		})

	case "terminal":
		grid := term.NewGrid(tuning.Width, tuning.Height, cfg.Terminal.Cols, cfg.Terminal.Rows)
		driverCfg.Canvas = grid
		driver := loop.NewDriver(driverCfg)
		defer shutdown(driver, log)

		scene.Driver = driver
		renderer.Draw(grid, game.State{PlayerX: tuning.Width / 2, Lives: tuning.StartLives})
		return term.Run(term.NewModel(queue, scene, grid, term.Options{
			FrameRate: cfg.Game.FrameRate,
			KeyHold:   cfg.Terminal.KeyHold.Duration,
			Cols:      cfg.Terminal.Cols,
			Rows:      cfg.Terminal.Rows,
		}, log))

	case "headless":
		driver := loop.NewDriver(driverCfg)
		defer shutdown(driver, log)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		interval := time.Second / time.Duration(cfg.Game.FrameRate)
		final, err := headless.Run(ctx, driver, queue, sampler, headless.Pilot{Tuning: tuning}, interval, log)
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		fmt.Println()
		printSection("Result")
		printStat("Score", final.Score)
		printStat("Leaderboard position", board.Position(final.Score))
		fmt.Printf("  Rank: %s\n", ranks.Title(final.Score))
		return nil
	}
	return fmt.Errorf("unknown frontend %q", cfg.Display.Frontend)
}

// shutdown stops the loop and waits for a score report still in flight.
func shutdown(d *loop.Driver, log *zap.Logger) {
	d.Close()
	d.Wait()
	log.Info("arcade closed")
}

func isConsole(output string) bool {
	return output == "" || output == "stderr" || output == "stdout"
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
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		if isConsole(cfg.Output) {
			zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		}
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	if cfg.Output != "" {
		zapCfg.OutputPaths = []string{cfg.Output}
	}

	return zapCfg.Build()
}
