package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"golang.org/x/crypto/acme/autocert"

	"github.com/padraicbc/racecal/catalog"
	"github.com/padraicbc/racecal/config"
	"github.com/padraicbc/racecal/db"
	"github.com/padraicbc/racecal/handlers"
	applog "github.com/padraicbc/racecal/logger"
	mw "github.com/padraicbc/racecal/middleware"
	"github.com/padraicbc/racecal/models"
	"github.com/padraicbc/racecal/sheets"
)

func main() {
	cfg := config.Load()
	logger, err := applog.New(cfg.Debug)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	bdb := db.Setup(cfg)
	defer bdb.Close()

	if err := db.CreateTables(context.Background(), bdb); err != nil {
		logger.Fatal("create tables failed", zap.Error(err))
	}

	parser := sheets.NewParser(
		sheets.WithLocation(cfg.Location),
		sheets.WithReporter(sheets.ZapReporter(logger.Named("sheets"))),
	)
	pipeline := sheets.NewPipeline(sheets.NewRetriever(cfg.FetchTimeout), parser)
	races := catalog.New(func(ctx context.Context) ([]models.Race, error) {
		return pipeline.GetRaces(ctx, cfg.SheetURL)
	}, cfg.CacheTTL, logger.Named("catalog"))

	h := handlers.New(handlers.Deps{
		Races:    races,
		Store:    db.NewStore(bdb),
		JWTKey:   cfg.JWTKey(),
		SheetURL: cfg.SheetURL,
		Location: cfg.Location,
		Logger:   logger,
	})

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod: true,
		LogURI:    true,
		LogStatus: true,
		LogError:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.Int("status", v.Status),
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
			}
			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
			}
			switch {
			case v.Status >= 500:
				logger.Error("http request", fields...)
			case v.Status >= 400:
				logger.Warn("http request", fields...)
			default:
				logger.Info("http request", fields...)
			}
			return nil
		},
	}))
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{"*", "Authorization"},
	}))

	e.GET("/healthz", h.Health)

	// Public
	api := e.Group("/api")
	api.GET("/races", h.Races)
	api.GET("/races/:id", h.Race)
	api.GET("/calendar", h.Calendar)
	api.POST("/signin", h.Signin)

	// Protected – require valid JWT in Authorization header
	admin := api.Group("/admin", mw.JWT(cfg.JWTKey()))
	admin.POST("/import", h.Import)

	if cfg.Debug {
		logger.Info("starting server", zap.String("mode", "debug"), zap.String("addr", cfg.Port))
		if err := e.Start(cfg.Port); err != nil {
			logger.Fatal("server exited", zap.Error(err))
		}
		return
	}

	autoTLS := &autocert.Manager{
		Prompt:     autocert.AcceptTOS,
		Cache:      autocert.DirCache(".cache"),
		HostPolicy: autocert.HostWhitelist(cfg.TLSDomains...),
	}

	s := &http.Server{
		Addr:         ":443",
		Handler:      e,
		TLSConfig:    autoTLS.TLSConfig(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  15 * time.Second,
	}

	if err := s.ListenAndServeTLS("", ""); err != http.ErrServerClosed {
		logger.Error("tls server exited", zap.Error(err))
		os.Exit(1)
	}
}
