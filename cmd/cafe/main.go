package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/cafe-inventory/internal/application/access"
	"github.com/jhoicas/cafe-inventory/internal/application/connectivity"
	"github.com/jhoicas/cafe-inventory/internal/application/inventory"
	"github.com/jhoicas/cafe-inventory/internal/application/notify"
	"github.com/jhoicas/cafe-inventory/internal/domain/repository"
	"github.com/jhoicas/cafe-inventory/internal/infrastructure/localstore"
	infrapdf "github.com/jhoicas/cafe-inventory/internal/infrastructure/pdf"
	httpRouter "github.com/jhoicas/cafe-inventory/internal/interfaces/http"
	"github.com/jhoicas/cafe-inventory/pkg/config"
	"github.com/jhoicas/cafe-inventory/pkg/logger"
	"github.com/jhoicas/cafe-inventory/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Espacio clave/valor local del dispositivo
	var kv repository.KeyValueStore
	switch cfg.Storage.Driver {
	case "memory":
		kv = localstore.NewMemoryKV()
	default:
		fileKV, err := localstore.NewFileKV(cfg.Storage.Dir, cfg.Storage.Namespace, cfg.Storage.QuotaBytes)
		if err != nil {
			log.Fatal().Err(err).Msg("abrir almacenamiento local")
		}
		log.Info().Str("path", fileKV.Path()).Msg("almacenamiento local")
		kv = fileKV
	}

	hub := notify.NewHub(log, notify.DefaultCapacity)

	// Conectividad: estado inicial sin avisos, luego sondeo periódico.
	var prober connectivity.Prober
	if cfg.Connectivity.ProbeAddr != "" {
		prober = connectivity.NewDialProber(cfg.Connectivity.ProbeAddr, cfg.Connectivity.ProbeTimeout)
	}
	monitor := connectivity.NewMonitor(prober, hub, log, cfg.Connectivity.ProbeInterval)
	monitor.Start(ctx)
	go monitor.Run(ctx)

	store := localstore.NewInventoryStore(kv, cfg.Storage.ItemsKey, log)
	manager := inventory.NewManager(store, hub, log, inventory.Config{
		LoadRetries:    cfg.Inventory.LoadRetries,
		LoadRetryDelay: cfg.Inventory.LoadRetryDelay,
	})
	if err := manager.Initialize(ctx); err != nil {
		log.Info().Err(err).Msg("arranque cancelado")
		return
	}

	unsubscribe := monitor.Subscribe(func(online bool) {
		log.Info().Bool("online", online).Int("items", manager.Len()).Msg("cambio de conectividad")
	})
	defer unsubscribe()

	gate := access.NewGate(kv, access.Config{
		Password: cfg.Access.Password,
		FlagKey:  cfg.Storage.AccessKey,
	}, log)

	// PDF: informe imprimible del inventario
	reportUC := inventory.NewReportUseCase(manager, infrapdf.NewMarotoReportGenerator())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": cfg.App.Name,
			"online":  monitor.IsOnline(),
			"items":   manager.Len(),
		})
	})

	reg := metrics.NewRegistry(metrics.Sources{
		Items:         manager.Len,
		Online:        monitor.IsOnline,
		Notifications: hub.Last,
	})
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler(reg)))

	if err := httpRouter.Router(app, httpRouter.RouterDeps{
		Inventory:     manager,
		Report:        reportUC,
		Gate:          gate,
		Monitor:       monitor,
		Notifications: hub,
		Log:           log,
	}); err != nil {
		log.Fatal().Err(err).Msg("registrar rutas")
	}

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	<-ctx.Done()

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
