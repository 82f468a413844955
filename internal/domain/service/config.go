package service

import (
	"context"
	"fmt"
	"home-panel/internal/domain/model"
	"home-panel/internal/ports"
	"os"
	"strings"
)

// ConfigService loads the panel configuration from the repository, lets the
// environment override it and writes overrides back for the next start.
type ConfigService struct {
	repo   ports.ConfigRepository
	lookup func(string) (string, bool)
}

func NewConfigService(repo ports.ConfigRepository) *ConfigService {
	return &ConfigService{
		repo:   repo,
		lookup: os.LookupEnv,
	}
}

// GetConfig returns the effective config. Only operator-supplied values are
// written back; derived values such as the socket URL are recomputed on every
// load so they follow the controller when it moves.
func (s *ConfigService) GetConfig(ctx context.Context) (*model.Config, error) {
	cfg, err := s.repo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	storedController, storedSocket := cfg.ControllerURL, cfg.SocketURL
	changed := s.applyEnv(cfg)
	if cfg.ControllerURL != storedController && cfg.SocketURL == storedSocket && derivedSocket(storedController, storedSocket) {
		cfg.SocketURL = ""
	}
	persisted := *cfg

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if changed {
		if err := s.repo.Save(ctx, &persisted); err != nil {
			return nil, fmt.Errorf("save config: %w", err)
		}
	}
	return cfg, nil
}

func (s *ConfigService) UpdateConfig(ctx context.Context, cfg *model.Config) error {
	effective := *cfg
	effective.ApplyDefaults()
	if err := effective.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return s.repo.Save(ctx, cfg)
}

// derivedSocket reports whether socketURL is empty or the value derived from
// controllerURL, i.e. not something the operator chose.
func derivedSocket(controllerURL, socketURL string) bool {
	if socketURL == "" {
		return true
	}
	derived, err := model.SocketURLFor(strings.TrimSpace(controllerURL))
	return err == nil && derived == socketURL
}

func (s *ConfigService) applyEnv(cfg *model.Config) bool {
	changed := false
	set := func(key string, dst *string) {
		if v, ok := s.lookup(key); ok && v != "" && v != *dst {
			*dst = v
			changed = true
		}
	}
	set("CONTROLLER_URL", &cfg.ControllerURL)
	set("SOCKET_URL", &cfg.SocketURL)
	set("LISTEN_ADDR", &cfg.ListenAddr)
	set("LOG_LEVEL", &cfg.LogLevel)
	set("MQTT_BROKER", &cfg.MQTT.Broker)
	return changed
}
