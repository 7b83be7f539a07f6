// Package mqtt contains optional state publisher.
package mqtt

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/go-home-io/viomise/plugins/common"
	"github.com/go-home-io/viomise/providers"
	"github.com/pkg/errors"
)

const (
	logSystem = "mqtt"

	statusOnline  = "online"
	statusOffline = "offline"

	connectTimeout = 10 * time.Second
	publishTimeout = 5 * time.Second
	// Quiesce period in milliseconds.
	disconnectQuiesce = 250
)

// ConstructPublisher has data required for a new publisher.
type ConstructPublisher struct {
	Settings providers.ISettingsProvider
	// Client overrides broker client built from the settings.
	Client paho.Client
}

// Publisher mirrors entity updates into retained broker topics.
type Publisher struct {
	logger   common.ILoggerProvider
	fanOut   providers.IInternalFanOutProvider
	settings *providers.MQTTSettings
	client   paho.Client

	subID int64
	wg    sync.WaitGroup
	stop  chan struct{}
	once  sync.Once
}

// NewPublisher constructs a new publisher.
func NewPublisher(ctor *ConstructPublisher) *Publisher {
	p := &Publisher{
		logger:   ctor.Settings.SystemLogger(),
		fanOut:   ctor.Settings.FanOut(),
		settings: ctor.Settings.MQTTSettings(),
		client:   ctor.Client,
		stop:     make(chan struct{}),
	}

	if nil == p.client {
		p.client = paho.NewClient(p.clientOptions())
	}

	return p
}

// StatusTopic returns bridge availability topic.
func (p *Publisher) StatusTopic() string {
	return fmt.Sprintf("%s/status", p.settings.Prefix)
}

// StateTopic returns entity state topic.
func (p *Publisher) StateTopic(entityID string) string {
	return fmt.Sprintf("%s/%s/state", p.settings.Prefix, entityID)
}

// AvailabilityTopic returns entity availability topic.
func (p *Publisher) AvailabilityTopic(entityID string) string {
	return fmt.Sprintf("%s/%s/availability", p.settings.Prefix, entityID)
}

// Start connects to the broker and starts mirroring updates.
func (p *Publisher) Start() error {
	token := p.client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return errors.Errorf("timeout connecting to %s", p.settings.Broker)
	}

	if err := token.Error(); err != nil {
		return errors.Wrap(err, "connect")
	}

	var updates chan *common.MsgDeviceUpdate
	p.subID, updates = p.fanOut.SubscribeDeviceUpdates()

	p.wg.Add(1)
	go p.cycle(updates)

	p.logger.Info("Connected to MQTT broker", common.LogSystemToken, logSystem,
		common.LogURLToken, p.settings.Broker)
	return nil
}

// Stop detaches from the fan-out and disconnects.
func (p *Publisher) Stop() {
	p.once.Do(func() {
		close(p.stop)
		p.wg.Wait()
		p.fanOut.UnSubscribeDeviceUpdates(p.subID)

		if p.client.IsConnected() {
			p.publish(p.StatusTopic(), []byte(statusOffline))
			p.client.Disconnect(disconnectQuiesce)
		}
	})
}

func (p *Publisher) cycle(updates chan *common.MsgDeviceUpdate) {
	defer p.wg.Done()
	for {
		select {
		case <-p.stop:
			return
		case msg, ok := <-updates:
			if !ok {
				return
			}
			p.processUpdate(msg)
		}
	}
}

// Publishes entity state and availability.
func (p *Publisher) processUpdate(msg *common.MsgDeviceUpdate) {
	data, err := json.Marshal(msg.State)
	if err != nil {
		p.logger.Error("Failed to marshal state", err, common.LogSystemToken, logSystem,
			common.LogEntityToken, msg.ID)
		return
	}

	availability := statusOffline
	if msg.Available {
		availability = statusOnline
	}

	p.publish(p.StateTopic(msg.ID), data)
	p.publish(p.AvailabilityTopic(msg.ID), []byte(availability))
}

func (p *Publisher) publish(topic string, payload []byte) {
	token := p.client.Publish(topic, byte(p.settings.QoS), true, payload)
	if !token.WaitTimeout(publishTimeout) {
		p.logger.Warn("Timeout publishing MQTT message", common.LogSystemToken, logSystem,
			common.LogTopicToken, topic)
		return
	}

	if err := token.Error(); err != nil {
		p.logger.Error("Failed to publish MQTT message", err, common.LogSystemToken, logSystem,
			common.LogTopicToken, topic)
	}
}

// Broker client options from the settings.
func (p *Publisher) clientOptions() *paho.ClientOptions {
	options := paho.NewClientOptions()
	options.AddBroker(p.settings.Broker)
	options.SetClientID(p.settings.ClientID)
	options.SetUsername(p.settings.Username)
	options.SetPassword(p.settings.Password)
	options.SetAutoReconnect(true)
	options.SetCleanSession(true)
	options.SetOrderMatters(true)
	options.SetWill(p.StatusTopic(), statusOffline, byte(p.settings.QoS), true)
	options.SetOnConnectHandler(func(paho.Client) {
		p.publish(p.StatusTopic(), []byte(statusOnline))
	})
	options.SetConnectionLostHandler(func(_ paho.Client, err error) {
		p.logger.Warn("Lost connection to MQTT broker", common.LogSystemToken, logSystem,
			common.LogErrorToken, err.Error())
	})

	return options
}
