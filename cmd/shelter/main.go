package main

import (
	"context"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"pet-adoption-center/internal/adapters/storage/jsonfile"
	"pet-adoption-center/internal/adapters/storage/memory"
	"pet-adoption-center/internal/adapters/storage/postgres"
	"pet-adoption-center/internal/cli"
	"pet-adoption-center/internal/config"
	"pet-adoption-center/internal/domain/adopters"
	"pet-adoption-center/internal/domain/adoptions"
	"pet-adoption-center/internal/domain/animals"
	"pet-adoption-center/internal/domain/compat"
	"pet-adoption-center/internal/domain/reports"
	"pet-adoption-center/internal/domain/reservations"
	"pet-adoption-center/internal/domain/screening"
	"pet-adoption-center/internal/domain/waitlist"
	"pet-adoption-center/internal/platform/eventlog"
	"pet-adoption-center/internal/platform/logger"
)

type repos struct {
	animals      animals.Repository
	adopters     adopters.Repository
	reservations reservations.Repository
	waitlist     waitlist.Repository
}

func main() {
	// .env ausente não é erro: em produção as variáveis vêm do ambiente.
	_ = godotenv.Load()

	log := logger.NewFromEnv()

	settingsPath := os.Getenv("SHELTER_SETTINGS")
	if settingsPath == "" {
		settingsPath = "settings.json"
	}

	cfg, err := config.Load(settingsPath)
	if err != nil {
		log.Error("configuração inválida", "path", settingsPath, "err", err)
		os.Exit(1)
	}
	log = buildLogger(cfg.Log)

	ctx := context.Background()

	store, err := openStorage(ctx, cfg.Storage)
	if err != nil {
		log.Error("falha ao abrir armazenamento", "driver", cfg.Storage.Driver, "err", err)
		os.Exit(1)
	}

	events := buildEvents(cfg, log)

	engine := screening.NewEngine(cfg.Policies)
	scorer := compat.NewScorer(cfg.Compatibility.Weights, adopters.Housing(cfg.Policies.LargeAllowedHousing))

	feeStrategy, err := adoptions.StrategyFromConfig(cfg.Fees)
	if err != nil {
		log.Error("estratégia de taxa inválida", "err", err)
		os.Exit(1)
	}

	animalSvc := animals.NewService(store.animals, events)
	adopterSvc := adopters.NewService(store.adopters, store.reservations)
	waitlistSvc := waitlist.NewService(store.waitlist, store.animals, store.adopters, scorer)
	reservationSvc := reservations.NewService(reservations.Params{
		Reservations: store.reservations,
		Animals:      store.animals,
		Adopters:     store.adopters,
		Screener:     engine,
		Fees:         feeStrategy,
		Waitlist:     waitlistSvc,
		Events:       events,
		Duration:     cfg.ReservationDuration(),
	})
	reportSvc := reports.NewService(store.animals, store.adopters, engine, scorer)

	app := cli.NewApp(os.Stdin, os.Stdout)
	app.Animals = animalSvc
	app.Adopters = adopterSvc
	app.Screening = engine
	app.Scorer = scorer
	app.Waitlist = waitlistSvc
	app.Reservations = reservationSvc
	app.Reports = reportSvc
	app.Contracts = adoptions.NewContractWriter(cfg.ContractsDir)
	app.Log = log

	log.Info("centro de adoção iniciado",
		"driver", cfg.Storage.Driver,
		"reserva_horas", cfg.Reservation.DurationHours,
		"taxa", cfg.Fees.Strategy,
	)

	if err := app.Run(ctx); err != nil {
		log.Error("erro fatal no menu", "err", err)
		os.Exit(1)
	}
}

func openStorage(ctx context.Context, cfg config.Storage) (repos, error) {
	switch cfg.Driver {
	case "memory":
		return repos{
			animals:      memory.NewAnimalRepo(),
			adopters:     memory.NewAdopterRepo(),
			reservations: memory.NewReservationRepo(),
			waitlist:     memory.NewWaitlistRepo(),
		}, nil

	case "postgres":
		db, err := postgres.Open(cfg.PostgresDSN)
		if err != nil {
			return repos{}, err
		}
		if err := postgres.EnsureSchema(ctx, db); err != nil {
			return repos{}, err
		}
		return repos{
			animals:      postgres.NewAnimalRepo(db),
			adopters:     postgres.NewAdopterRepo(db),
			reservations: postgres.NewReservationRepo(db),
			waitlist:     postgres.NewWaitlistRepo(db),
		}, nil

	default: // jsonfile, validado pelo config
		animalRepo, err := jsonfile.NewAnimalRepo(cfg.DataDir)
		if err != nil {
			return repos{}, err
		}
		adopterRepo, err := jsonfile.NewAdopterRepo(cfg.DataDir)
		if err != nil {
			return repos{}, err
		}
		reservationRepo, err := jsonfile.NewReservationRepo(cfg.DataDir)
		if err != nil {
			return repos{}, err
		}
		waitlistRepo, err := jsonfile.NewWaitlistRepo(cfg.DataDir)
		if err != nil {
			return repos{}, err
		}
		return repos{
			animals:      animalRepo,
			adopters:     adopterRepo,
			reservations: reservationRepo,
			waitlist:     waitlistRepo,
		}, nil
	}
}

// buildLogger aplica o nível e formato do settings.json; as variáveis de
// ambiente LOG_LEVEL e LOG_FORMAT têm precedência.
func buildLogger(cfg config.Log) logger.Logger {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		level = cfg.Level
	}
	format := os.Getenv("LOG_FORMAT")
	if format == "" {
		format = cfg.Format
	}
	return logger.New(logger.Options{
		Level: logger.ParseLevel(level),
		JSON:  strings.EqualFold(strings.TrimSpace(format), "json"),
		App:   os.Getenv("APP_NAME"),
	})
}

func buildEvents(cfg config.Config, log logger.Logger) eventlog.Sink {
	sinks := eventlog.Multi{eventlog.LoggerSink{Log: log}}
	fileSink, err := eventlog.NewFileSink(cfg.Storage.DataDir)
	if err != nil {
		log.Warn("log de eventos em arquivo desabilitado", "err", err)
	} else {
		sinks = append(sinks, fileSink)
	}
	return sinks
}
