package mqtt

import (
	"context"
	"encoding/json"
	"fmt"
	"home-panel/internal/domain/model"
	"log/slog"
	"strings"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
)

const (
	connectTimeout = 10 * time.Second
	publishTimeout = 2 * time.Second
)

type client interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
}

// Publisher mirrors the panel onto a broker: the snapshot is retained on
// <prefix>/state and every prompt goes to <prefix>/prompt.
type Publisher struct {
	client client
	prefix string
	logger *slog.Logger
	close  func()
}

type statePayload struct {
	model.Snapshot
	Lines     []string  `json:"lines"`
	UpdatedAt time.Time `json:"updated_at"`
}

func Connect(cfg model.MQTTConfig, logger *slog.Logger) (*Publisher, error) {
	opts := paho.NewClientOptions()
	opts.AddBroker(cfg.Broker)
	opts.SetClientID(cfg.ClientID)
	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(true)
	opts.SetConnectTimeout(connectTimeout)
	opts.OnConnectionLost = func(_ paho.Client, err error) {
		logger.Warn("mqtt_connection_lost", "error", err)
	}

	c := paho.NewClient(opts)
	if token := c.Connect(); token.WaitTimeout(connectTimeout) && token.Error() != nil {
		return nil, fmt.Errorf("connect %s: %w", cfg.Broker, token.Error())
	}
	p := newPublisher(c, cfg.TopicPrefix, logger)
	p.close = func() { c.Disconnect(250) }
	return p, nil
}

func newPublisher(c client, prefix string, logger *slog.Logger) *Publisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{
		client: c,
		prefix: strings.TrimRight(prefix, "/"),
		logger: logger,
	}
}

// PublishSnapshot has the signature of a store listener.
func (p *Publisher) PublishSnapshot(snap model.Snapshot) {
	payload := statePayload{Snapshot: snap, Lines: snap.Lines(), UpdatedAt: time.Now().UTC()}
	p.publish("state", true, payload)
}

func (p *Publisher) Present(_ context.Context, prompt model.Prompt) {
	p.publish("prompt", false, prompt)
}

func (p *Publisher) Close() {
	if p.close != nil {
		p.close()
	}
}

func (p *Publisher) publish(suffix string, retained bool, v any) {
	topic := p.prefix + "/" + suffix
	body, err := json.Marshal(v)
	if err != nil {
		p.logger.Error("mqtt_encode_failed", "topic", topic, "error", err)
		return
	}
	token := p.client.Publish(topic, 0, retained, body)
	if !token.WaitTimeout(publishTimeout) {
		p.logger.Warn("mqtt_publish_timeout", "topic", topic)
		return
	}
	if err := token.Error(); err != nil {
		p.logger.Warn("mqtt_publish_failed", "topic", topic, "error", err)
	}
}
