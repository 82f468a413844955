package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultListenAddr     = ":8080"
	DefaultPollInterval   = 3 * time.Second
	DefaultCommandTimeout = 10 * time.Second
	DefaultLogLevel       = "info"
	DefaultMQTTPrefix     = "home-panel"
	DefaultMQTTClientID   = "home-panel"
)

// Duration is a time.Duration that reads "3s" style strings or plain seconds from JSON.
type Duration time.Duration

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case float64:
		*d = Duration(time.Duration(v * float64(time.Second)))
	case string:
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse duration %q: %w", v, err)
		}
		*d = Duration(parsed)
	case nil:
		*d = 0
	default:
		return fmt.Errorf("invalid duration %s", string(data))
	}
	return nil
}

type MQTTConfig struct {
	Broker      string `json:"broker,omitempty"`
	TopicPrefix string `json:"topic_prefix,omitempty"`
	ClientID    string `json:"client_id,omitempty"`
}

func (m MQTTConfig) Enabled() bool {
	return strings.TrimSpace(m.Broker) != ""
}

type Config struct {
	ControllerURL  string       `json:"controller_url"`
	SocketURL      string       `json:"socket_url,omitempty"`
	ListenAddr     string       `json:"listen_addr,omitempty"`
	PollInterval   Duration     `json:"poll_interval,omitempty"`
	CommandTimeout Duration     `json:"command_timeout,omitempty"`
	PromptPolicy   PromptPolicy `json:"prompt_policy,omitempty"`
	LogLevel       string       `json:"log_level,omitempty"`
	MQTT           MQTTConfig   `json:"mqtt,omitempty"`
	// Discovery answers SSDP searches on the LAN with the panel page location.
	Discovery      bool         `json:"discovery,omitempty"`
}

// ApplyDefaults fills every optional field that is still zero.
func (c *Config) ApplyDefaults() {
	c.ControllerURL = strings.TrimRight(strings.TrimSpace(c.ControllerURL), "/")
	if c.SocketURL == "" && c.ControllerURL != "" {
		if derived, err := SocketURLFor(c.ControllerURL); err == nil {
			c.SocketURL = derived
		}
	}
	if c.ListenAddr == "" {
		c.ListenAddr = DefaultListenAddr
	}
	if c.PollInterval <= 0 {
		c.PollInterval = Duration(DefaultPollInterval)
	}
	if c.CommandTimeout <= 0 {
		c.CommandTimeout = Duration(DefaultCommandTimeout)
	}
	if c.PromptPolicy == "" {
		c.PromptPolicy = PromptPolicyQueue
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.MQTT.Enabled() {
		if c.MQTT.TopicPrefix == "" {
			c.MQTT.TopicPrefix = DefaultMQTTPrefix
		}
		if c.MQTT.ClientID == "" {
			c.MQTT.ClientID = DefaultMQTTClientID
		}
	}
}

// Validate enforces what the panel cannot start without.
func (c *Config) Validate() error {
	if c.ControllerURL == "" {
		return errors.New("controller_url is required")
	}
	u, err := url.Parse(c.ControllerURL)
	if err != nil || u.Host == "" {
		return fmt.Errorf("controller_url %q is not an absolute URL", c.ControllerURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("controller_url scheme must be http or https, got %q", u.Scheme)
	}
	if c.SocketURL == "" {
		return errors.New("socket_url is required")
	}
	if !c.PromptPolicy.Valid() {
		return fmt.Errorf("prompt_policy %q must be one of queue, ignore, replace", c.PromptPolicy)
	}
	return nil
}

// SocketURLFor derives ws://host/ws from the controller base URL.
func SocketURLFor(controllerURL string) (string, error) {
	u, err := url.Parse(controllerURL)
	if err != nil {
		return "", err
	}
	if u.Host == "" {
		return "", fmt.Errorf("controller url %q has no host", controllerURL)
	}
	scheme := "ws"
	if u.Scheme == "https" {
		scheme = "wss"
	}
	return (&url.URL{Scheme: scheme, Host: u.Host, Path: "/ws"}).String(), nil
}
