package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Sofya-Khabibulina/HabitTracker/internal/api"
	"github.com/Sofya-Khabibulina/HabitTracker/internal/quotes"
	"github.com/Sofya-Khabibulina/HabitTracker/internal/ratelimit"
	"github.com/Sofya-Khabibulina/HabitTracker/internal/repository"
	"github.com/Sofya-Khabibulina/HabitTracker/internal/service"
	"github.com/Sofya-Khabibulina/HabitTracker/internal/wizard"
	"github.com/Sofya-Khabibulina/HabitTracker/pkg/cleanup"
	"github.com/Sofya-Khabibulina/HabitTracker/pkg/config"
	jwtservice "github.com/Sofya-Khabibulina/HabitTracker/pkg/jwt_service"
)

func init() {
	service.InitValidator()
}

func newPersister(cfg *config.Config) repository.PersisterI {
	if cfg.GetStringDefault("STORAGE_DRIVER", "file") == "postgres" {
		return repository.NewPostgresStore(&repository.PGCfg{
			Address:  cfg.GetString("POSTGRES_DB_ADDRESS"),
			Username: cfg.GetString("POSTGRES_USER"),
			Password: cfg.GetString("POSTGRES_PASSWORD"),
			DB:       cfg.GetString("POSTGRES_DB"),
		})
	}
	return repository.NewFileStore(cfg.GetStringDefault("DATA_FILE_PATH", "storage/habits_data.json"))
}

func main() {
	cfg := config.New()

	service.SetHabitNameBounds(cfg.GetInt("HABIT_NAME_MIN", 2), cfg.GetInt("HABIT_NAME_MAX", 50))

	store, err := service.NewHabitStore(context.Background(), newPersister(cfg))
	if err != nil {
		log.Fatal("initializing habit store error: " + err.Error())
	}
	store.SetStreakHorizon(cfg.GetInt("STREAK_HORIZON_DAYS", 365))

	guardCfg := ratelimit.DefaultConfig()
	guardCfg.MinInterval = cfg.GetDuration("THROTTLE_INTERVAL", guardCfg.MinInterval)
	guardCfg.FloodWindow = cfg.GetDuration("FLOOD_WINDOW", guardCfg.FloodWindow)
	guardCfg.FloodThreshold = cfg.GetInt("FLOOD_THRESHOLD", guardCfg.FloodThreshold)
	guardCfg.PenaltyBase = cfg.GetDuration("PENALTY_BASE", guardCfg.PenaltyBase)
	guardCfg.PenaltyCap = cfg.GetDuration("PENALTY_CAP", guardCfg.PenaltyCap)
	guard := ratelimit.NewGuard(guardCfg)
	sweeper := ratelimit.NewSweeper(guard, cfg.GetDuration("SWEEP_INTERVAL", 5*time.Minute))
	sweeper.Start()
	cleanup.Register(&cleanup.Job{
		Name: "stopping rate guard sweeper",
		F:    sweeper.Stop,
	})

	quoteCfg := quotes.DefaultConfig()
	quoteCfg.URL = cfg.GetStringDefault("QUOTE_API_URL", quoteCfg.URL)
	quoteCfg.Timeout = cfg.GetDuration("QUOTE_TIMEOUT", quoteCfg.Timeout)
	quoteCfg.CacheTTL = cfg.GetDuration("QUOTE_CACHE_TTL", quoteCfg.CacheTTL)

	serv := api.New(&api.Options{
		Store:             store,
		Guard:             guard,
		Wizard:            wizard.New(store),
		Quotes:            quotes.NewClient(quoteCfg),
		JwtService:        jwtservice.New(cfg.GetString("JWT_SECRET")),
		AdminIDs:          cfg.GetInt64Slice("ADMIN_IDS"),
		AdminPasswordHash: cfg.GetString("ADMIN_PASSWORD_HASH"),
	})

	go func() {
		err := serv.Run(cfg.GetStringDefault("API_ADDRESS", ":8080"))
		if err != nil {
			log.Println("Server error: " + err.Error())
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	cleanup.CleanUp()
}
