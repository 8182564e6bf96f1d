package main

import (
	"classic-snake/autopilot"
	"classic-snake/config"
	"classic-snake/game"
	"classic-snake/logger"
	"classic-snake/spectate"
	"classic-snake/store"
	"classic-snake/ui"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/pkg/errors"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "snake: %v\n", err)
		os.Exit(2)
	}
	log := logger.New(cfg.Debug)

	if err := run(cfg, log); err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(cfg.Store)
	if err != nil {
		return errors.Wrap(err, "open store")
	}
	defer st.Close()

	if cfg.Headless.Enabled {
		report, runErr := runHeadless(ctx, cfg, st, log)
		summary, err := st.Summary(ctx)
		if err != nil {
			log.Warnf("could not load all-time stats: %v", err)
		}
		report.Print(os.Stdout, summary)
		return runErr
	}
	return play(ctx, cfg, st, log)
}

// play runs the windowed game. Input, ticks and drawing all happen on this
// goroutine, once per frame.
func play(ctx context.Context, cfg config.Config, st store.Store, log *logger.Logger) error {
	opts := []game.Option{
		game.WithLogger(log),
		game.WithPilot(autopilot.New()),
	}
	var hub *spectate.Hub
	if cfg.Spectate.Enabled {
		hub = spectate.NewHub(log)
		opts = append(opts, game.WithObserver(hub))
	}

	g := game.New(cfg.GameConfig(), st, opts...)
	defer g.Close()
	g.SetAutopilot(cfg.Autopilot)

	if hub != nil {
		go hub.Run(ctx)
		srv := spectate.NewServer(ctx, hub, st, log)
		go func() {
			if err := srv.ListenAndServe(cfg.Spectate.Addr); err != nil {
				log.Errorf("%v", err)
			}
		}()
	}

	renderer := ui.NewRenderer(cfg.CellSize)
	width, height := renderer.WindowSize(cfg.Grid)
	rl.InitWindow(width, height, "Snake")
	defer rl.CloseWindow()
	rl.SetExitKey(0) // Esc goes through the key map
	rl.SetTargetFPS(int32(cfg.FPS))

	for !rl.WindowShouldClose() && ctx.Err() == nil {
		if ui.PollInput(g) {
			break
		}
		select {
		case <-g.Ticks():
			g.Tick()
		default:
		}
		renderer.Draw(g.Snapshot())
	}
	log.Infof("bye, high score %d", g.HighScore())
	return nil
}
