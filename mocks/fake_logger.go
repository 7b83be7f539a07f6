//go:build !release
// +build !release

package mocks

// Fake logger forwarding every message to the callback.
type fakeLogger struct {
	callback func(string)
}

func (p *fakeLogger) Debug(msg string, _ ...string) {
	p.record(msg)
}

func (p *fakeLogger) Info(msg string, _ ...string) {
	p.record(msg)
}

func (p *fakeLogger) Warn(msg string, _ ...string) {
	p.record(msg)
}

func (p *fakeLogger) Error(msg string, _ error, _ ...string) {
	p.record(msg)
}

// Fatal doesn't exit.
func (p *fakeLogger) Fatal(msg string, _ error, _ ...string) {
	p.record(msg)
}

func (p *fakeLogger) record(msg string) {
	if p.callback != nil {
		p.callback(msg)
	}
}

// FakeNewLogger creates a fake logger provider.
// Callback receives messages of all levels.
func FakeNewLogger(callback func(string)) *fakeLogger {
	return &fakeLogger{
		callback: callback,
	}
}
