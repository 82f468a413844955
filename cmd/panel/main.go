package main

import (
	"context"
	"errors"
	"fmt"
	"home-panel/internal/adapters/input/http"
	"home-panel/internal/adapters/input/ssdp"
	"home-panel/internal/adapters/output/controller"
	"home-panel/internal/adapters/output/metrics"
	"home-panel/internal/adapters/output/mqtt"
	"home-panel/internal/adapters/output/notify"
	"home-panel/internal/adapters/output/persistence"
	"home-panel/internal/domain/service"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"
)

func main() {
	if err := run(); err != nil {
		slog.Error("home panel stopped", "error", err)
		os.Exit(1)
	}
}

// run wires the panel and blocks until the context is cancelled or the HTTP
// server fails. Every resource is released by defer before it returns.
func run() error {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.json"
	}
	configService := service.NewConfigService(persistence.NewJSONConfigRepository(configPath))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := configService.GetConfig(ctx)
	if err != nil {
		return fmt.Errorf("load config %s: %w", configPath, err)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logger.Warn("log_level_invalid", "value", cfg.LogLevel)
		level = slog.LevelInfo
	}
	logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	logger.Info("starting home panel", "controller", cfg.ControllerURL, "socket", cfg.SocketURL)

	client, err := controller.NewClient(cfg.ControllerURL)
	if err != nil {
		return fmt.Errorf("controller client: %w", err)
	}

	recorder := metrics.NewRecorder()
	var prompters notify.Fanout

	var publisher *mqtt.Publisher
	if cfg.MQTT.Enabled() {
		publisher, err = mqtt.Connect(cfg.MQTT, logger.With("component", "mqtt"))
		if err != nil {
			logger.Warn("mqtt_unavailable", "broker", cfg.MQTT.Broker, "error", err)
		} else {
			defer publisher.Close()
			prompters = append(prompters, publisher)
		}
	}

	panel := service.NewPanel(client, controller.NewSocket(cfg.SocketURL), prompters, *cfg, recorder, logger)
	recorder.WatchSnapshot(panel.Snapshot)
	if publisher != nil {
		unsubscribe := panel.Store().Subscribe(publisher.PublishSnapshot)
		defer unsubscribe()
	}

	if err := panel.Mount(ctx); err != nil {
		return fmt.Errorf("mount panel: %w", err)
	}
	defer panel.Unmount()

	if cfg.Discovery {
		startDiscovery(ctx, cfg.ListenAddr, logger.With("component", "ssdp"))
	}

	server := http.NewServer(panel, recorder.Handler(), logger.With("component", "http"))
	if err := server.ListenAndServe(ctx, cfg.ListenAddr); err != nil {
		return fmt.Errorf("http server: %w", err)
	}
	logger.Info("shutting down")
	return nil
}

func startDiscovery(ctx context.Context, listenAddr string, logger *slog.Logger) {
	ip := os.Getenv("LOCAL_IP")
	if ip == "" {
		ip = getLocalIP()
	}
	if ip == "" {
		logger.Warn("ssdp_disabled", "error", errors.New("could not determine local IP, set LOCAL_IP"))
		return
	}

	_, portStr, err := net.SplitHostPort(listenAddr)
	port, convErr := strconv.Atoi(portStr)
	if err != nil || convErr != nil {
		logger.Warn("ssdp_disabled", "listen_addr", listenAddr)
		return
	}

	go func() {
		if err := ssdp.NewServer(ip, port, logger).Start(ctx); err != nil {
			logger.Warn("ssdp_server_failed", "error", err)
		}
	}()
}

func getLocalIP() string {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return ""
	}
	for _, address := range addrs {
		if ipnet, ok := address.(*net.IPNet); ok && !ipnet.IP.IsLoopback() {
			if ipnet.IP.To4() != nil {
				return ipnet.IP.String()
			}
		}
	}
	return ""
}
