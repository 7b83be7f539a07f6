// Package server contains HTTP and WS API.
package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-home-io/viomise/plugins/common"
	"github.com/go-home-io/viomise/providers"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	// Logger system representation.
	logSystem = "server"
)

// ConstructServer has data required for a new server.
type ConstructServer struct {
	Settings providers.ISettingsProvider
	Devices  providers.IDeviceManagerProvider
	Flow     providers.IFlowProvider
}

// GoHomeServer describes HTTP API server.
type GoHomeServer struct {
	Settings providers.ISettingsProvider
	Logger   common.ILoggerProvider

	devices    providers.IDeviceManagerProvider
	flow       providers.IFlowProvider
	wsSettings *websocket.Upgrader
	httpServer *http.Server
}

// NewServer constructs a new API server.
func NewServer(ctor *ConstructServer) (*GoHomeServer, error) {
	if nil == ctor.Devices || nil == ctor.Flow {
		return nil, errors.New("devices and flow providers are required")
	}

	server := &GoHomeServer{
		Logger:   ctor.Settings.SystemLogger(),
		Settings: ctor.Settings,
		devices:  ctor.Devices,
		flow:     ctor.Flow,
		wsSettings: &websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}

	origins := ctor.Settings.ServerSettings().CORSOrigins
	server.wsSettings.CheckOrigin = func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if 0 == len(origins) || "" == origin {
			return true
		}

		for _, v := range origins {
			if v == "*" || v == origin {
				return true
			}
		}
		return false
	}

	return server, nil
}

// Start launches HTTP server.
func (s *GoHomeServer) Start() error {
	addr := fmt.Sprintf(":%d", s.Settings.ServerSettings().Port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.Wrap(err, "listen")
	}

	s.httpServer = &http.Server{
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		err := s.httpServer.Serve(listener)
		if err != nil && err != http.ErrServerClosed {
			s.Logger.Error("HTTP server stopped", err, common.LogSystemToken, logSystem)
		}
	}()

	s.Logger.Info(fmt.Sprintf("Started server on port %d", s.Settings.ServerSettings().Port),
		common.LogSystemToken, logSystem)
	return nil
}

// Stop gracefully shuts HTTP server down.
func (s *GoHomeServer) Stop(ctx context.Context) error {
	if nil == s.httpServer {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

// Router returns API handler with all middlewares.
func (s *GoHomeServer) Router() http.Handler {
	router := mux.NewRouter()
	s.registerAPI(router)

	var handler http.Handler = router
	origins := s.Settings.ServerSettings().CORSOrigins
	if len(origins) > 0 {
		handler = handlers.CORS(
			handlers.AllowedOrigins(origins),
			handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
			handlers.AllowedHeaders([]string{"Content-Type"}),
		)(handler)
	}

	return handlers.RecoveryHandler(
		handlers.RecoveryLogger(&recoveryLogger{logger: s.Logger}),
		handlers.PrintRecoveryStack(false),
	)(handler)
}

// All API registration.
// Routes are registered on the root router so method mismatch is reported as 405.
func (s *GoHomeServer) registerAPI(router *mux.Router) {
	router.HandleFunc(routePublic+"/ping", s.ping).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.HandlerFor(s.Settings.MetricsRegistry(), promhttp.HandlerOpts{})).
		Methods(http.MethodGet)

	router.HandleFunc(routeAPI+"/device", s.getDevices).Methods(http.MethodGet)
	router.HandleFunc(fmt.Sprintf("%s/service/{%s}", routeAPI, urlService), s.callService).
		Methods(http.MethodPost)
	router.HandleFunc(routeAPI+"/flow", s.startFlow).Methods(http.MethodPost)
	router.HandleFunc(fmt.Sprintf("%s/flow/{%s}", routeAPI, urlFlowID), s.configureFlow).
		Methods(http.MethodPost)
	router.HandleFunc(routeAPI+"/ws", s.handleWS).Methods(http.MethodGet)

	router.MethodNotAllowedHandler = http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		respondError(writer, http.StatusMethodNotAllowed, "method not allowed")
	})
	router.Use(s.logMiddleware)
}
