//go:build wireinject

package di

import (
	"log/slog"
	"net"
	"os"

	"github.com/google/wire"

	"kofi-relay/internal/adapter/discord"
	"kofi-relay/internal/adapter/httpapi"
	"kofi-relay/internal/adapter/logging"
	"kofi-relay/internal/app"
	"kofi-relay/internal/config"
	"kofi-relay/internal/domain/ports"
	"kofi-relay/internal/usecase"
)

// InitializeApp wires the application components together.
func InitializeApp() (*app.App, error) {
	wire.Build(
		config.Load,
		provideSlogLogger,
		logging.New,
		wire.Bind(new(ports.Logger), new(*logging.SLogger)),
		provideTranslator,
		provideNotifier,
		provideRelayConfig,
		usecase.NewSupportRelay,
		wire.Bind(new(httpapi.Relayer), new(*usecase.SupportRelay)),
		wire.Bind(new(app.SelfTester), new(*usecase.SupportRelay)),
		provideServiceInfo,
		httpapi.NewHandler,
		httpapi.NewRouter,
		provideAppOptions,
		app.New,
	)
	return nil, nil
}

func provideSlogLogger(cfg *config.Config) *slog.Logger {
	logger := logging.NewJSON(os.Stdout, cfg.LogLevel)
	logger.Info("configuration loaded", "config", cfg)
	return logger
}

func provideTranslator(cfg *config.Config) *usecase.Translator {
	return usecase.NewTranslator(usecase.TranslatorConfig{
		Locale:      cfg.Language,
		DisplayName: cfg.KofiName,
		LogoURL:     cfg.KofiLogo,
		Version:     cfg.Version,
		Location:    cfg.Location,
	})
}

func provideNotifier(cfg *config.Config, logger ports.Logger) ports.Notifier {
	identity := discord.Identity{
		Username:  cfg.WebhookUsername,
		AvatarURL: cfg.KofiLogo,
	}
	return discord.NewWebhook(cfg.DiscordWebhookURL, identity, cfg.RequestTimeout, logger)
}

func provideRelayConfig(cfg *config.Config) usecase.RelayConfig {
	return usecase.RelayConfig{
		VerificationToken: cfg.VerificationToken,
	}
}

func provideServiceInfo(cfg *config.Config) httpapi.ServiceInfo {
	return httpapi.ServiceInfo{
		Version:              cfg.Version,
		Language:             cfg.Language,
		KofiName:             cfg.KofiName,
		Port:                 cfg.Port,
		ConfigPath:           cfg.ConfigPath,
		HasWebhookURL:        cfg.DiscordWebhookURL != "",
		HasVerificationToken: cfg.VerificationToken != "",
	}
}

func provideAppOptions(cfg *config.Config) app.Options {
	return app.Options{
		Addr:            net.JoinHostPort("", cfg.Port),
		MaxConnections:  cfg.MaxConnections,
		ShutdownTimeout: cfg.ShutdownTimeout,
		TestSchedule:    cfg.TestSchedule,
	}
}
