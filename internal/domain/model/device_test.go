package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDevice(t *testing.T) {
	for _, name := range []string{"light", "fan", "door", " Light "} {
		_, err := ParseDevice(name)
		assert.NoError(t, err, name)
	}

	_, err := ParseDevice("garage")
	assert.ErrorIs(t, err, ErrUnknownDevice)
}

func TestDevice_CommandPath(t *testing.T) {
	assert.Equal(t, "/light/on", DeviceLight.CommandPath(true))
	assert.Equal(t, "/door/off", DeviceDoor.CommandPath(false))
}

func TestDeviceState_GetWith(t *testing.T) {
	s := DeviceState{}.With(DeviceFan, true)
	assert.True(t, s.Get(DeviceFan))
	assert.False(t, s.Get(DeviceLight))
	assert.False(t, s.Get(Device("garage")))
}

func TestConfig_Defaults(t *testing.T) {
	cfg := &Config{ControllerURL: "http://10.0.0.5/"}
	cfg.ApplyDefaults()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "http://10.0.0.5", cfg.ControllerURL)
	assert.Equal(t, "ws://10.0.0.5/ws", cfg.SocketURL)
	assert.Equal(t, DefaultListenAddr, cfg.ListenAddr)
	assert.Equal(t, Duration(3*time.Second), cfg.PollInterval)
	assert.Equal(t, PromptPolicyQueue, cfg.PromptPolicy)
	assert.False(t, cfg.MQTT.Enabled())
}

func TestConfig_Validate(t *testing.T) {
	cfg := &Config{}
	cfg.ApplyDefaults()
	assert.Error(t, cfg.Validate())

	cfg = &Config{ControllerURL: "ftp://host", PromptPolicy: "stack"}
	cfg.ApplyDefaults()
	assert.Error(t, cfg.Validate())

	cfg = &Config{ControllerURL: "http://host", PromptPolicy: "stack"}
	cfg.ApplyDefaults()
	assert.ErrorContains(t, cfg.Validate(), "prompt_policy")
}

func TestDuration_JSON(t *testing.T) {
	var cfg Config
	require.NoError(t, json.Unmarshal([]byte(`{"poll_interval":"500ms","command_timeout":2}`), &cfg))
	assert.Equal(t, Duration(500*time.Millisecond), cfg.PollInterval)
	assert.Equal(t, Duration(2*time.Second), cfg.CommandTimeout)

	data, err := json.Marshal(Duration(3 * time.Second))
	require.NoError(t, err)
	assert.Equal(t, `"3s"`, string(data))

	assert.Error(t, json.Unmarshal([]byte(`{"poll_interval":"soon"}`), &cfg))
}

func TestSocketURLFor(t *testing.T) {
	u, err := SocketURLFor("https://panel.local:8443")
	require.NoError(t, err)
	assert.Equal(t, "wss://panel.local:8443/ws", u)

	_, err = SocketURLFor("not a url")
	assert.Error(t, err)
}
