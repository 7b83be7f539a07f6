package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/go-home-io/viomise/mocks"
	"github.com/go-home-io/viomise/plugins/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Tests level filtering and fields.
func TestLogrusLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	l, err := NewLoggerProvider(&ConstructLogger{Level: "info", JSON: true, Output: buf,
		Fields: []string{"node", "test"}})
	require.NoError(t, err)

	l.Debug("hidden")
	l.Info("visible", common.LogDeviceNameToken, "Viomi SE")
	l.Error("failed", errors.New("boom"), common.LogDeviceCommandToken, "set_charge")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var first, second map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))

	assert.Equal(t, "visible", first["msg"])
	assert.Equal(t, "Viomi SE", first[common.LogDeviceNameToken])
	assert.Equal(t, "test", first["node"])
	assert.Equal(t, "info", first["level"])

	assert.Equal(t, "error", second["level"])
	assert.Equal(t, "boom", second[common.LogErrorToken])
	assert.Equal(t, "set_charge", second[common.LogDeviceCommandToken])
}

// Tests text output.
func TestTextLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	l, err := NewLoggerProvider(&ConstructLogger{Level: "debug", Output: buf})
	require.NoError(t, err)

	l.Debug("polling", common.LogDeviceHostToken, "192.168.1.10")
	out := buf.String()

	assert.Contains(t, out, "level=debug")
	assert.Contains(t, out, `msg=polling`)
	assert.Contains(t, out, common.LogDeviceHostToken+"=192.168.1.10")
	assert.False(t, json.Valid([]byte(strings.TrimSpace(out))))
}

// Tests invalid level.
func TestWrongLevel(t *testing.T) {
	_, err := NewLoggerProvider(&ConstructLogger{Level: "loud"})
	assert.Error(t, err)
}

// Tests device logger fields.
func TestDeviceLogger(t *testing.T) {
	var messages []string
	l := NewDeviceLogger(&ConstructDeviceLogger{
		SystemLogger: mocks.FakeNewLogger(func(s string) { messages = append(messages, s) }),
		System:       "vacuum",
		Device:       "Viomi SE",
	})

	l.Debug("Debug")
	l.Info("Info")
	l.Warn("Warn")
	l.Error("Error", errors.New("test"))
	l.Fatal("Fatal", errors.New("test"))

	assert.Equal(t, []string{"Debug", "Info", "Warn", "Error", "Fatal"}, messages)
}
