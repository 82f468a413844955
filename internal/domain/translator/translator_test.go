package translator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"home-panel/internal/domain/model"
)

func TestSensorUpdate(t *testing.T) {
	u, ok := SensorUpdate(model.DHTReading{Temp: model.Float(24.5), Hum: model.Float(60)})
	require.True(t, ok)
	assert.Equal(t, 24.5, *u.Temperature)
	assert.Equal(t, 60.0, *u.Humidity)

	// Either null means the sensor is not ready and nothing is applied
	_, ok = SensorUpdate(model.DHTReading{Temp: model.Float(24.5)})
	assert.False(t, ok)
	_, ok = SensorUpdate(model.DHTReading{Hum: model.Float(60)})
	assert.False(t, ok)
	_, ok = SensorUpdate(model.DHTReading{})
	assert.False(t, ok)
}

func TestDecodeEvent_Fields(t *testing.T) {
	u, err := DecodeEvent([]byte(`{"door": true}`))
	require.NoError(t, err)
	assert.True(t, *u.Door)
	assert.Nil(t, u.Light)
	assert.Nil(t, u.Fan)
	assert.False(t, u.Motion)

	u, err = DecodeEvent([]byte(`{"light": false, "fan": true, "temp": 21.5, "hum": 48}`))
	require.NoError(t, err)
	assert.False(t, *u.Light)
	assert.True(t, *u.Fan)
	assert.Equal(t, 21.5, *u.Temperature)
	assert.Equal(t, 48.0, *u.Humidity)
}

func TestDecodeEvent_Motion(t *testing.T) {
	u, err := DecodeEvent([]byte(`{"motion": true}`))
	require.NoError(t, err)
	assert.True(t, u.Motion)

	u, err = DecodeEvent([]byte(`{"motion": false}`))
	require.NoError(t, err)
	assert.False(t, u.Motion)
	assert.False(t, u.ClearMotion)
	assert.True(t, u.IsEmpty())
}

func TestDecodeEvent_NullSensorIsAbsent(t *testing.T) {
	u, err := DecodeEvent([]byte(`{"temp": null, "hum": 55}`))
	require.NoError(t, err)
	assert.Nil(t, u.Temperature)
	assert.Equal(t, 55.0, *u.Humidity)
}

func TestDecodeEvent_Malformed(t *testing.T) {
	for _, payload := range []string{`not json`, `{"light": "on"}`, `[1,2]`, `{"temp": "hot"}`} {
		_, err := DecodeEvent([]byte(payload))
		assert.ErrorIs(t, err, ErrMalformed, payload)
	}
}
