package game

import (
	"classic-snake/game/entity"
	"classic-snake/game/manager"
	"classic-snake/game/timer"
	"classic-snake/game/types"
	"classic-snake/logger"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Config holds the fixed parameters of a game.
type Config struct {
	Grid   types.Grid
	Origin types.Point
	Seed   uint64
	// MaxTicks ends a game after that many ticks; 0 means no limit.
	MaxTicks int
	// PersistTimeout bounds every store call made from the game loop.
	PersistTimeout time.Duration
}

// DefaultConfig matches the classic 20x20 board.
func DefaultConfig() Config {
	return Config{
		Grid:           types.DefaultGrid,
		Origin:         types.Origin,
		Seed:           uint64(time.Now().UnixNano()),
		PersistTimeout: 2 * time.Second,
	}
}

type Option func(*Game)

// WithTimerFactory replaces the wall-clock ticker.
func WithTimerFactory(f timer.Factory) Option {
	return func(g *Game) { g.newTimer = f }
}

func WithLogger(l *logger.Logger) Option {
	return func(g *Game) { g.log = l }
}

func WithObserver(o Observer) Option {
	return func(g *Game) { g.observers = append(g.observers, o) }
}

// WithPilot installs the autopilot; it stays off until SetAutopilot(true).
func WithPilot(p Pilot) Option {
	return func(g *Game) { g.pilot = p }
}

// WithClock replaces time.Now for game records.
func WithClock(now func() time.Time) Option {
	return func(g *Game) { g.now = now }
}

// Game owns one snake, its food, the score and the tick timer. All methods
// must be called from the same goroutine.
type Game struct {
	UUID string // session id of the current or last game

	cfg       Config
	phase     types.Phase
	snake     *entity.Snake
	food      *manager.FoodManager
	scores    *manager.ScoreManager
	timer     timer.Timer
	newTimer  timer.Factory
	observers []Observer
	pilot     Pilot
	autopilot bool
	log       *logger.Logger
	now       func() time.Time

	startTime time.Time
	ticks     int
	cause     types.EndCause
}

// New builds a game in the Welcome phase and loads the high score. A store
// that cannot be read leaves the high score at zero.
func New(cfg Config, store manager.ScoreStore, opts ...Option) *Game {
	if cfg.PersistTimeout <= 0 {
		cfg.PersistTimeout = 2 * time.Second
	}
	g := &Game{
		cfg:      cfg,
		phase:    types.Welcome,
		snake:    entity.NewSnake(cfg.Origin),
		food:     manager.NewFoodManager(cfg.Grid, cfg.Seed),
		scores:   manager.NewScoreManager(store),
		newTimer: timer.NewTicker,
		log:      logger.Discard(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}

	ctx, cancel := g.persistContext()
	defer cancel()
	if err := g.scores.LoadHighScore(ctx); err != nil {
		g.log.Warnf("could not read high score, starting from 0: %v", err)
	}
	return g
}

func (g *Game) persistContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), g.cfg.PersistTimeout)
}

// Start begins a new game from any phase. A previously armed timer is
// cancelled before the new one is armed.
func (g *Game) Start() {
	g.stopTimer()

	g.snake.Reset()
	g.scores.Reset()
	g.UUID = uuid.New().String()
	g.startTime = g.now()
	g.ticks = 0
	g.cause = types.NotEnded
	g.phase = types.Running

	if _, ok := g.food.GenerateFood(g.snake); !ok {
		g.end(types.BoardFull)
		return
	}
	g.timer = g.newTimer(g.snake.Interval())
	g.log.Event("GAME_START", g.UUID, fmt.Sprintf("grid=%dx%d food=%v", g.cfg.Grid.Width, g.cfg.Grid.Height, g.food.Food()))
	g.notify()
}

// Restart starts a new game only from GameOver and reports whether it did.
func (g *Game) Restart() bool {
	if g.phase != types.GameOver {
		return false
	}
	g.Start()
	return true
}

// SetHeading forwards a direction to the snake while a game is running.
func (g *Game) SetHeading(d types.Direction) {
	if g.phase != types.Running || d == types.None {
		return
	}
	g.snake.SetHeading(d.ToPoint())
}

// Tick advances the game by one step: move, eat, then check collisions.
func (g *Game) Tick() {
	if g.phase != types.Running {
		return
	}
	if g.autopilot && g.pilot != nil {
		if d, ok := g.pilot.Next(g.Snapshot()); ok {
			g.snake.SetHeading(d.ToPoint())
		}
	}

	g.ticks++
	g.snake.Advance()

	boardFull := false
	if g.food.IsFoodCollision(g.snake.Head()) {
		g.snake.Grow()

		ctx, cancel := g.persistContext()
		improved, err := g.scores.Add(ctx, types.FoodScore)
		cancel()
		if err != nil {
			g.log.Warnf("could not persist high score %d: %v", g.scores.HighScore(), err)
		}
		if improved {
			g.log.Debugf("new high score %d", g.scores.HighScore())
		}

		_, placed := g.food.GenerateFood(g.snake)
		boardFull = !placed
	}

	if cause := g.snake.Collision(g.cfg.Grid); cause != types.NotEnded {
		g.end(cause)
		return
	}
	if boardFull {
		g.end(types.BoardFull)
		return
	}
	if g.cfg.MaxTicks > 0 && g.ticks >= g.cfg.MaxTicks {
		g.end(types.TickLimitReach)
		return
	}

	if g.timer != nil {
		if d := g.snake.Interval(); d != g.timer.Interval() {
			g.timer.Reset(d)
		}
	}
	g.notify()
}

// end moves to GameOver, releases the timer and records the game.
func (g *Game) end(cause types.EndCause) {
	g.phase = types.GameOver
	g.cause = cause
	g.stopTimer()

	rec := types.GameRecord{
		ID:        g.UUID,
		Score:     g.scores.Score(),
		Length:    g.snake.Len(),
		Ticks:     g.ticks,
		Cause:     cause,
		StartTime: g.startTime,
		EndTime:   g.now(),
	}
	ctx, cancel := g.persistContext()
	defer cancel()
	if err := g.scores.Record(ctx, rec); err != nil {
		g.log.Warnf("could not record game %s: %v", g.UUID, err)
	}
	g.log.Event("GAME_OVER", g.UUID, fmt.Sprintf("cause=%s score=%d high=%d ticks=%d", cause, rec.Score, g.scores.HighScore(), g.ticks))
	g.notify()
}

func (g *Game) stopTimer() {
	if g.timer != nil {
		g.timer.Stop()
		g.timer = nil
	}
}

// Ticks delivers the armed timer's ticks; nil outside Running.
func (g *Game) Ticks() <-chan time.Time {
	if g.timer == nil {
		return nil
	}
	return g.timer.C()
}

// SetAutopilot turns the installed pilot on or off.
func (g *Game) SetAutopilot(on bool) {
	g.autopilot = on && g.pilot != nil
	g.notify()
}

func (g *Game) Autopilot() bool {
	return g.autopilot
}

// Close releases the timer.
func (g *Game) Close() {
	g.stopTimer()
}

func (g *Game) Phase() types.Phase {
	return g.phase
}

func (g *Game) Score() int {
	return g.scores.Score()
}

func (g *Game) HighScore() int {
	return g.scores.HighScore()
}

func (g *Game) Food() types.Point {
	return g.food.Food()
}

func (g *Game) Cause() types.EndCause {
	return g.cause
}

// Snapshot copies the current state.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Session:   g.UUID,
		Phase:     g.phase,
		Grid:      g.cfg.Grid,
		Heading:   types.DirectionOf(g.snake.Heading()),
		Food:      g.food.Food(),
		Score:     g.scores.Score(),
		HighScore: g.scores.HighScore(),
		Interval:  g.snake.Interval(),
		Ticks:     g.ticks,
		Cause:     g.cause,
		Autopilot: g.autopilot,
		StartTime: g.startTime,
	}
	if g.phase != types.Welcome {
		s.Snake = g.snake.Segments()
	}
	return s
}

func (g *Game) notify() {
	if len(g.observers) == 0 {
		return
	}
	s := g.Snapshot()
	for _, o := range g.observers {
		o.OnSnapshot(s)
	}
}
