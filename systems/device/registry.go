package device

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/go-home-io/viomise/plugins/common"
	"github.com/go-home-io/viomise/providers"
	"github.com/go-home-io/viomise/systems/miio"
	"github.com/go-home-io/viomise/systems/viomi"
	"github.com/pkg/errors"
)

const logSystem = "device"

// ClientFactory opens device client for the configured entry.
type ClientFactory func(host, token string) (miio.IClient, error)

// ConstructRegistry has data required for a new registry.
type ConstructRegistry struct {
	Settings  providers.ISettingsProvider
	Metrics   *viomi.Metrics
	NewClient ClientFactory
}

// Registry keeps loaded vacuums.
// Implements IDeviceManagerProvider.
type Registry struct {
	sync.RWMutex

	ctor   *ConstructRegistry
	logger common.ILoggerProvider

	byHost   map[string]IVacuumWrapperProvider
	byEntity map[string]IVacuumWrapperProvider

	wg sync.WaitGroup
}

// NewRegistry constructs a new vacuums registry.
func NewRegistry(ctor *ConstructRegistry) *Registry {
	return &Registry{
		ctor:     ctor,
		logger:   ctor.Settings.SystemLogger(),
		byHost:   make(map[string]IVacuumWrapperProvider),
		byEntity: make(map[string]IVacuumWrapperProvider),
	}
}

// Load creates vacuum and battery entities for the entry and starts polling.
// First refresh runs in background.
func (r *Registry) Load(entry *providers.Entry) error {
	r.Lock()
	defer r.Unlock()

	if _, ok := r.byHost[entry.Host]; ok {
		return &ErrDuplicateDevice{Host: entry.Host}
	}

	for _, v := range r.byHost {
		if v.UniqueID() == entry.UniqueID {
			return &ErrDuplicateDevice{Host: entry.Host}
		}
	}

	client, err := r.ctor.NewClient(entry.Host, entry.Token)
	if err != nil {
		return errors.Wrap(err, "failed to create device client")
	}

	settings := r.ctor.Settings.DeviceSettings()
	logger := r.ctor.Settings.DeviceLogger(entry.Name)

	vacuum := viomi.NewVacuum(&viomi.ConstructVacuum{
		EntityID:     r.freeEntityID(viomi.EntityID(entry.Name)),
		Name:         entry.Name,
		Host:         entry.Host,
		UniqueID:     entry.UniqueID,
		Client:       client,
		Logger:       logger,
		Metrics:      r.ctor.Metrics,
		UpdatePeriod: time.Duration(settings.UpdatePeriod) * time.Second,
	})

	wrapper := newVacuumWrapper(&wrapperConstruct{
		Vacuum:  vacuum,
		Battery: viomi.NewBatterySensor(vacuum, logger),
		Logger:  logger,
		Cron:    r.ctor.Settings.Cron(),
		FanOut:  r.ctor.Settings.FanOut(),
		Timeout: pollTimeout(settings),
	})

	r.byHost[entry.Host] = wrapper
	r.byEntity[wrapper.GetID()] = wrapper

	r.logger.Info("Loaded vacuum", common.LogSystemToken, logSystem,
		common.LogEntityToken, wrapper.GetID(), common.LogDeviceHostToken, entry.Host)

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		wrapper.pullUpdate()
	}()

	return nil
}

// Unload stops polling of the vacuum with the given unique ID.
func (r *Registry) Unload(uniqueID string) {
	r.Lock()
	defer r.Unlock()

	for host, v := range r.byHost {
		if v.UniqueID() != uniqueID {
			continue
		}

		v.Unload()
		delete(r.byHost, host)
		delete(r.byEntity, v.GetID())

		r.logger.Info("Unloaded vacuum", common.LogSystemToken, logSystem,
			common.LogEntityToken, v.GetID(), common.LogDeviceHostToken, host)
		return
	}
}

// Devices returns current state of all loaded entities ordered by ID.
func (r *Registry) Devices() []*common.MsgDeviceUpdate {
	r.RLock()
	defer r.RUnlock()

	result := make([]*common.MsgDeviceUpdate, 0, 2*len(r.byHost))
	for _, v := range r.byHost {
		result = append(result, v.GetUpdateMessages()...)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Get returns loaded vacuum by entity ID.
func (r *Registry) Get(entityID string) (IVacuumWrapperProvider, error) {
	r.RLock()
	defer r.RUnlock()

	w, ok := r.byEntity[entityID]
	if !ok {
		return nil, &ErrUnknownDevice{ID: entityID}
	}
	return w, nil
}

// ByHost returns loaded vacuum by its address.
func (r *Registry) ByHost(host string) (IVacuumWrapperProvider, error) {
	r.RLock()
	defer r.RUnlock()

	w, ok := r.byHost[host]
	if !ok {
		return nil, &ErrUnknownDevice{ID: host}
	}
	return w, nil
}

// Stop unloads all vacuums and waits for background refreshes.
func (r *Registry) Stop() {
	r.Lock()
	for host, v := range r.byHost {
		v.Unload()
		delete(r.byHost, host)
		delete(r.byEntity, v.GetID())
	}
	r.Unlock()

	r.wg.Wait()
}

// Returns sorted list of loaded vacuums.
func (r *Registry) all() []IVacuumWrapperProvider {
	r.RLock()
	defer r.RUnlock()

	result := make([]IVacuumWrapperProvider, 0, len(r.byEntity))
	for _, v := range r.byEntity {
		result = append(result, v)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].GetID() < result[j].GetID()
	})
	return result
}

// Returns entity ID which isn't taken yet, adding numeric suffix if required.
func (r *Registry) freeEntityID(id string) string {
	if _, ok := r.byEntity[id]; !ok {
		return id
	}

	for ii := 2; ; ii++ {
		candidate := fmt.Sprintf("%s_%d", id, ii)
		if _, ok := r.byEntity[candidate]; !ok {
			return candidate
		}
	}
}

// Single refresh may issue fetch, mop correction and a second fetch.
func pollTimeout(settings *providers.DeviceSettings) time.Duration {
	return 3 * time.Duration(settings.Timeout) * time.Second
}
