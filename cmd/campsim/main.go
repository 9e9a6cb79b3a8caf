// Command campsim runs the living-camp simulation against a synthetic
// campaign, for tuning and observation.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/caarlos0/env/v11"

	"github.com/talgya/camplife/internal/api"
	"github.com/talgya/camplife/internal/clock"
	"github.com/talgya/camplife/internal/company"
	"github.com/talgya/camplife/internal/defs"
	"github.com/talgya/camplife/internal/needs"
	"github.com/talgya/camplife/internal/persistence"
	"github.com/talgya/camplife/internal/rng"
	"github.com/talgya/camplife/internal/session"
	"github.com/talgya/camplife/internal/worldstate"
)

type config struct {
	Seed       int64   `env:"CAMPSIM_SEED" envDefault:"42"`
	DBPath     string  `env:"CAMPSIM_DB" envDefault:"data/campsim.db"`
	ContentDir string  `env:"CAMPSIM_CONTENT" envDefault:""`
	Speed      float64 `env:"CAMPSIM_SPEED" envDefault:"60"`
	RosterSize int     `env:"CAMPSIM_ROSTER" envDefault:"120"`
	PlayerTier int     `env:"CAMPSIM_TIER" envDefault:"3"`
	APIPort    int     `env:"CAMPSIM_API_PORT" envDefault:"8090"`
	AdminKey   string  `env:"CAMPSIM_ADMIN_KEY" envDefault:""`
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	var cfg config
	if err := env.Parse(&cfg); err != nil {
		slog.Error("bad environment", "error", err)
		os.Exit(1)
	}

	slog.Info("campsim starting", "seed", cfg.Seed, "db", cfg.DBPath, "speed", cfg.Speed)

	os.MkdirAll("data", 0755)
	db, err := persistence.Open(cfg.DBPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	eng := clock.NewEngine()
	eng.Speed = cfg.Speed

	world := worldstate.NewSyntheticProvider(cfg.Seed, func() clock.CampTime { return eng.Now })
	news := needs.NewMemoryNews()

	sess := session.New(session.Config{
		Definitions: defs.Load(cfg.ContentDir),
		Random:      rng.New(cfg.Seed),
		World:       world,
		Store:       needs.NewMemoryStore(),
		News:        news,
		Queue:       &needs.MemoryQueue{},
		Gold:        &needs.MemoryLedger{Balance: 60},
		Reputation:  &needs.MemoryReputation{Standing: 20},
		XP:          needs.NewMemoryXP(),
		Conditions:  &needs.MemoryConditions{},
		Notifier:    needs.LogNotifier{},
		SimConfig:   company.DefaultSimConfig(),
	})

	if db.HasSession() {
		st, err := db.LoadSession()
		if err != nil {
			slog.Error("failed to load session", "error", err)
			os.Exit(1)
		}
		sess.Restore(st)
		// Saves written before the player overlay existed carry no tier.
		if sess.Player.Tier == 0 {
			sess.Player.Tier = cfg.PlayerTier
		}
		eng.Now = clock.CampTime{Day: st.Day, Hour: clock.HourDawn}
		slog.Info("session restored", "lord", st.Lord, "day", st.Day)
	} else {
		sess.Enlist("Lord Ostheim", cfg.RosterSize, cfg.PlayerTier)
	}

	eng.OnHour = func(t clock.CampTime) {
		sess.OnHourlyTick(t)
		if clock.IsBoundaryHour(t.Hour) {
			for _, c := range sess.CurrentOpportunities(t) {
				slog.Info("opportunity offered",
					"id", c.Def.ID,
					"type", defs.TypeName(c.Def.Type),
					"score", fmt.Sprintf("%.1f", c.Score),
				)
			}
		}
	}
	eng.OnDay = func(day int) {
		sess.OnDailyTick(day)
		if err := db.SaveSession(sess.Snapshot()); err != nil {
			slog.Error("daily save failed", "error", err)
		}
	}

	srv := &api.Server{
		Session:  sess,
		Engine:   eng,
		News:     news,
		Port:     cfg.APIPort,
		AdminKey: cfg.AdminKey,
	}
	srv.Start()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("received signal, shutting down", "signal", sig)
		eng.Stop()
	}()

	fmt.Printf("Camp is alive under %s. (Ctrl+C to stop)\n", sess.LordName)
	eng.Run()

	if err := db.SaveSession(sess.Snapshot()); err != nil {
		slog.Error("final save failed", "error", err)
	}
	fmt.Println("Simulation stopped. Session saved.")
}
