package server

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-home-io/viomise/plugins/common"
	"github.com/gorilla/websocket"
)

const (
	// Single service call timeout for WS commands.
	wsCallTimeout = 30 * time.Second
	// Write deadline for a single WS message.
	wsWriteTimeout = 10 * time.Second
)

// Incoming WS service invocation.
type wsCmd struct {
	ID      string                 `json:"id"`
	Service string                 `json:"service"`
	Data    map[string]interface{} `json:"data"`
}

// Outgoing WS service invocation result.
type wsResult struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// Serializes writes into a single WS connection.
type wsConn struct {
	sync.Mutex
	conn *websocket.Conn
}

func (c *wsConn) writeJSON(v interface{}) error {
	c.Lock()
	defer c.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout)) // nolint: errcheck
	return c.conn.WriteJSON(v)
}

func (c *wsConn) writeMessage(mt int, data []byte) error {
	c.Lock()
	defer c.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout)) // nolint: errcheck
	return c.conn.WriteMessage(mt, data)
}

// Handles WS upgrade request.
func (s *GoHomeServer) handleWS(writer http.ResponseWriter, request *http.Request) {
	c, err := s.wsSettings.Upgrade(writer, request, nil)
	if err != nil {
		s.Logger.Error("Failed to establish a WS connection", err, common.LogSystemToken, logSystem)
		return
	}

	go s.processWSConnection(&wsConn{conn: c})
}

// Streams device updates into WS connection.
func (s *GoHomeServer) processWSConnection(conn *wsConn) {
	stop := make(chan bool, 1)
	deviceSubID, deviceUpd := s.Settings.FanOut().SubscribeDeviceUpdates()
	defer s.Settings.FanOut().UnSubscribeDeviceUpdates(deviceSubID)

	go s.processIncomingWSMessages(conn, stop)

	for _, v := range s.devices.Devices() {
		if err := conn.writeJSON(v); err != nil {
			s.Logger.Debug("Failed to send WS snapshot", common.LogSystemToken, logSystem,
				common.LogErrorToken, err.Error())
			conn.conn.Close() // nolint: errcheck
			return
		}
	}

	for {
		select {
		case <-stop:
			return
		case msg, ok := <-deviceUpd:
			if !ok {
				conn.conn.Close() // nolint: errcheck
				return
			}

			if err := conn.writeJSON(msg); err != nil {
				s.Logger.Debug("Failed to send WS update", common.LogSystemToken, logSystem,
					common.LogErrorToken, err.Error())
			}
		}
	}
}

// Processes incoming WS messages.
func (s *GoHomeServer) processIncomingWSMessages(conn *wsConn, stop chan bool) {
	defer conn.conn.Close() // nolint: errcheck
	for {
		mt, message, err := conn.conn.ReadMessage()
		if err != nil {
			s.Logger.Debug("Closing WS connection", common.LogSystemToken, logSystem)
			stop <- true
			return
		}

		// Ping request comes as a un-wrapped string
		if 4 == len(message) {
			conn.writeMessage(mt, []byte("pong")) // nolint: errcheck
			continue
		}

		cmd := &wsCmd{}
		err = json.Unmarshal(message, cmd)
		if err != nil || "" == cmd.Service {
			s.Logger.Warn("Failed to un-marshal WS command", common.LogSystemToken, logSystem)
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), wsCallTimeout)
		err = s.devices.CallService(ctx, cmd.Service, cmd.Data)
		cancel()

		res := &wsResult{ID: cmd.ID, Type: "result", Success: err == nil}
		if err != nil {
			res.Error = err.Error()
			s.Logger.Warn("WS service call failed", common.LogSystemToken, logSystem,
				common.LogServiceToken, cmd.Service, common.LogErrorToken, err.Error())
		}

		conn.writeJSON(res) // nolint: errcheck
	}
}
