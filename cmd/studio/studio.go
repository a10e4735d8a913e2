package studio

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/spf13/viper"
	tele "gopkg.in/telebot.v3"

	"github.com/Badsnus/qr-studio/internal/adapters/config"
	"github.com/Badsnus/qr-studio/internal/adapters/database/postgres"
	"github.com/Badsnus/qr-studio/internal/adapters/database/redis"
	"github.com/Badsnus/qr-studio/internal/adapters/presets"
	"github.com/Badsnus/qr-studio/internal/adapters/sink"
	"github.com/Badsnus/qr-studio/internal/domain/service"
	"github.com/Badsnus/qr-studio/pkg/logger"
	"github.com/Badsnus/qr-studio/pkg/logger/types"
	"github.com/Badsnus/qr-studio/pkg/smtp"
)

// Studio holds everything the HTTP handlers work with.
type Studio struct {
	Sessions *service.SessionService
	Exports  *service.ExportService
	Logos    *service.LogoLoader
	Presets  *presets.Store
	Logger   *types.Logger
	Addr     string
}

func New(cfg *config.Config) (*Studio, error) {
	studioLogger, err := logger.Named("studio")
	if err != nil {
		return nil, err
	}
	rendererLogger, err := logger.Named("renderer")
	if err != nil {
		return nil, err
	}
	exportLogger, err := logger.Named("export")
	if err != nil {
		return nil, err
	}

	store, err := presets.Load(viper.GetString("presets.file"))
	if err != nil {
		return nil, err
	}

	sinks, err := newSinks(cfg)
	if err != nil {
		return nil, err
	}

	var (
		cache   service.ArtifactCache
		storage service.ExportStorage
	)
	if cfg.Redis != nil {
		cache = redis.New(cfg.Redis).Artifacts
	}
	if cfg.Database != nil {
		storage = postgres.NewExportStorage(cfg.Database)
	}
	exportService := service.NewExportService(
		service.NewExporter(service.NewEngine, exportLogger),
		cache,
		storage,
		sinks,
		viper.GetDuration("export.cache-ttl"),
		exportLogger,
	)

	httpClient := resty.New().SetTimeout(10 * time.Second)

	return &Studio{
		Sessions: service.NewSessionService(
			service.NewEngine,
			viper.GetDuration("render.debounce"),
			viper.GetInt("render.preview-size"),
			rendererLogger,
		),
		Exports: exportService,
		Logos:   service.NewLogoLoader(httpClient, studioLogger),
		Presets: store,
		Logger:  studioLogger,
		Addr:    viper.GetString("service.http.addr"),
	}, nil
}

func newSinks(cfg *config.Config) ([]service.Sink, error) {
	var sinks []service.Sink

	if viper.GetBool("sinks.file.enabled") {
		sinks = append(sinks, sink.NewFile(viper.GetString("export.output-dir")))
	}

	if viper.GetBool("sinks.telegram.enabled") {
		b, err := tele.NewBot(tele.Settings{
			Token:   viper.GetString("sinks.telegram.token"),
			Offline: viper.GetBool("sinks.telegram.offline"),
		})
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, sink.NewTelegram(b, viper.GetInt64("sinks.telegram.chat-id")))
	}

	if cfg.SMTPDialer != nil {
		client := smtp.NewClient(cfg.SMTPDialer, viper.GetString("service.smtp.email"), viper.GetString("service.smtp.domain"))
		sinks = append(sinks, sink.NewMail(client, viper.GetStringSlice("service.smtp.to"), viper.GetString("service.smtp.subject")))
	}

	return sinks, nil
}

// Start serves handler until SIGINT or SIGTERM, then closes every session.
func (s *Studio) Start(handler http.Handler) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server := &http.Server{
		Addr:              s.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Log.Infof("Studio listening on %s", s.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Panicf("Failed to serve: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Log.Info("Studio shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorf("Failed to shut down: %v", err)
	}
	s.Sessions.CloseAll()
}
