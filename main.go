package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-home-io/viomise/plugins/common"
	"github.com/go-home-io/viomise/providers"
	"github.com/go-home-io/viomise/server"
	"github.com/go-home-io/viomise/settings"
	"github.com/go-home-io/viomise/systems/device"
	"github.com/go-home-io/viomise/systems/flow"
	"github.com/go-home-io/viomise/systems/miio"
	"github.com/go-home-io/viomise/systems/mqtt"
	"github.com/go-home-io/viomise/systems/viomi"
	"github.com/jessevdk/go-flags"
)

const shutdownTimeout = 10 * time.Second

func main() {
	options := &settings.StartUpOptions{}
	_, err := flags.Parse(options)
	if err != nil {
		os.Exit(1)
	}

	s, err := settings.Load(options)
	if err != nil {
		panic(err)
	}

	log := s.SystemLogger()
	log.Info("Starting viomise")

	metrics := viomi.NewMetrics()
	s.MetricsRegistry().MustRegister(metrics.Collectors()...)

	newClient := clientFactory(s)
	registry := device.NewRegistry(&device.ConstructRegistry{
		Settings:  s,
		Metrics:   metrics,
		NewClient: newClient,
	})

	flowManager := flow.NewManager(flow.NewFlow(&flow.ConstructFlow{
		Logger:    log,
		Validator: s.Validator(),
		Entries:   s.Entries(),
		NewClient: newClient,
		OnCreate:  registry.Load,
	}), log)

	for _, v := range s.Entries().All() {
		if err := registry.Load(v); err != nil {
			log.Error("Failed to load vacuum", err, common.LogDeviceNameToken, v.Name,
				common.LogDeviceHostToken, v.Host)
		}
	}

	var publisher *mqtt.Publisher
	if s.MQTTSettings().Enabled {
		publisher = mqtt.NewPublisher(&mqtt.ConstructPublisher{Settings: s})
		if err := publisher.Start(); err != nil {
			log.Error("Failed to start MQTT publisher", err)
			publisher = nil
		}
	}

	srv, err := server.NewServer(&server.ConstructServer{
		Settings: s,
		Devices:  registry,
		Flow:     flowManager,
	})
	if err != nil {
		log.Fatal("Failed to create server", err)
	}

	if err := srv.Start(); err != nil {
		log.Fatal("Failed to start server", err)
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	log.Info("Stopping viomise")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Stop(ctx); err != nil {
		log.Error("Failed to stop server", err)
	}

	registry.Stop()
	if publisher != nil {
		publisher.Stop()
	}
	s.FanOut().Stop()
}

// Builds device clients using configured call timeout.
func clientFactory(s providers.ISettingsProvider) func(host, token string) (miio.IClient, error) {
	return func(host, token string) (miio.IClient, error) {
		c, err := miio.NewClient(&miio.ConstructClient{
			Host:    host,
			Token:   token,
			Timeout: time.Duration(s.DeviceSettings().Timeout) * time.Second,
			Logger:  s.SystemLogger(),
		})
		if err != nil {
			return nil, err
		}
		return c, nil
	}
}
