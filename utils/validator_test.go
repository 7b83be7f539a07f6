package utils

import (
	"testing"

	"github.com/go-home-io/viomise/mocks"
	"github.com/stretchr/testify/assert"
)

type testStruct struct {
	Percent uint8  `validate:"percent"`
	Port    int32  `validate:"port"`
	Host    string `validate:"host"`
	Name    string `default:"Viomi SE"`
}

// Tests success validation
func TestSuccessValidation(t *testing.T) {
	in := []*testStruct{
		{
			Percent: 0,
			Port:    8080,
			Host:    "127.0.0.1",
		},
		{
			Percent: 100,
			Port:    65535,
			Host:    "10.0.0.100:54321",
		},
		{
			Port: 1,
			Host: "vacuum.local",
		},
		{
			Port: 1,
			Host: "fe80::1",
		},
	}

	validator := NewValidator(mocks.FakeNewLogger(nil))
	for _, v := range in {
		assert.True(t, validator.Validate(v), v.Host)
	}
}

// Tests that defaults are applied.
func TestDefaults(t *testing.T) {
	d := &testStruct{Port: 8000, Host: "192.168.1.2"}
	validator := NewValidator(mocks.FakeNewLogger(nil))
	assert.True(t, validator.Validate(d))
	assert.Equal(t, "Viomi SE", d.Name)
}

// Tests validation without pointer.
func TestNotPointer(t *testing.T) {
	validator := NewValidator(mocks.FakeNewLogger(nil))
	d := testStruct{
		Percent: 0,
		Port:    8080,
		Host:    "127.0.0.1",
	}

	assert.False(t, validator.Validate(d))
}

// Tests incorrect data
func TestFailedValidation(t *testing.T) {
	in := []*testStruct{
		{
			Percent: 120,
			Port:    1,
			Host:    "127.0.0.1",
		},
		{
			Port: 100000,
			Host: "127.0.0.1",
		},
		{
			Port: 1,
			Host: "10.0.0.100:test",
		},
		{
			Port: 1,
			Host: "10.0.0.100:22:123",
		},
		{
			Port: 1,
			Host: "",
		},
		{
			Port: 1,
			Host: "bad host name",
		},
	}

	validator := NewValidator(mocks.FakeNewLogger(nil))
	for k, v := range in {
		assert.False(t, validator.Validate(v), "%d", k)
	}
}
