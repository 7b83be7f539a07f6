package main

import (
	"testing"

	"github.com/go-home-io/viomise/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Tests client settings resolution.
func TestNewClient(t *testing.T) {
	flagHost, flagToken = "", ""
	t.Setenv(envHost, "")
	t.Setenv(envToken, "")

	_, err := newClient(mocks.FakeNewLogger(nil))
	assert.Error(t, err)

	t.Setenv(envHost, "192.168.1.10")
	t.Setenv(envToken, "00112233445566778899aabbccddeeff")
	c, err := newClient(mocks.FakeNewLogger(nil))
	require.NoError(t, err)
	assert.NotNil(t, c)

	flagToken = "bad"
	defer func() { flagToken = "" }()
	_, err = newClient(mocks.FakeNewLogger(nil))
	assert.Error(t, err)
}

// Tests params validation of the raw command.
func TestSendInvalidParams(t *testing.T) {
	assert.Error(t, runSend(nil, []string{"get_prop", "{"}))
}
