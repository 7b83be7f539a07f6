package utils

import (
	"fmt"
	"time"

	"github.com/go-home-io/viomise/providers"
	"gopkg.in/robfig/cron.v2"
)

// MinPollingPeriod is the shortest allowed device polling period.
const MinPollingPeriod = 10 * time.Second

// Cron implementation.
type provider struct {
	cron *cron.Cron
}

// NewCron creates a new scheduler.
func NewCron() providers.ICronProvider {
	p := provider{
		cron: cron.New(),
	}

	p.cron.Start()
	return &p
}

// AddFunc schedules a new job.
func (p *provider) AddFunc(spec string, cmd func()) (int, error) {
	id, err := p.cron.AddFunc(spec, cmd)
	return int(id), err
}

// RemoveFunc removes scheduled job from cron.
func (p *provider) RemoveFunc(id int) {
	p.cron.Remove(cron.EntryID(id))
}

// EverySpec returns cron spec for the polling period.
// Periods shorter than MinPollingPeriod are raised to it.
func EverySpec(period time.Duration) string {
	interval := int(period / time.Second)
	if interval < int(MinPollingPeriod/time.Second) {
		interval = int(MinPollingPeriod / time.Second)
	}

	return fmt.Sprintf("@every %ds", interval)
}
