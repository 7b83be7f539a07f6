package server

import (
	"net"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-home-io/viomise/mocks"
	"github.com/go-home-io/viomise/plugins/common"
	"github.com/go-home-io/viomise/plugins/device/enums"
	"github.com/go-home-io/viomise/providers"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type wsSuite struct {
	suite.Suite

	s       providers.ISettingsProvider
	devices *mocks.FakeDeviceManager
	ts      *httptest.Server
	ws      *websocket.Conn
}

func (w *wsSuite) SetupTest() {
	w.s = mocks.FakeNewSettings(nil)
	w.devices = mocks.FakeNewDeviceManager(&common.MsgDeviceUpdate{
		ID:   "vacuum.viomi_se",
		Type: enums.DevVacuum,
	})

	srv, err := NewServer(&ConstructServer{
		Settings: w.s,
		Devices:  w.devices,
		Flow:     mocks.FakeNewFlow(nil, nil),
	})
	w.Require().NoError(err)

	w.ts = httptest.NewServer(srv.Router())
	u := "ws" + strings.TrimPrefix(w.ts.URL, "http") + "/api/v1/ws"
	w.ws, _, err = websocket.DefaultDialer.Dial(u, nil)
	w.Require().NoError(err)
	w.ws.SetReadDeadline(time.Now().Add(2 * time.Second)) // nolint: errcheck

	snapshot := &common.MsgDeviceUpdate{}
	w.Require().NoError(w.ws.ReadJSON(snapshot))
	w.Equal("vacuum.viomi_se", snapshot.ID)
}

func (w *wsSuite) TearDownTest() {
	w.ws.Close() // nolint: errcheck
	w.ts.Close()
}

// Tests ping-pong.
func (w *wsSuite) TestPing() {
	w.Require().NoError(w.ws.WriteMessage(websocket.TextMessage, []byte("ping")))
	_, msg, err := w.ws.ReadMessage()
	w.Require().NoError(err)
	w.Equal("pong", string(msg))
}

// Tests device updates streaming.
func (w *wsSuite) TestUpdates() {
	w.s.FanOut().ChannelInDeviceUpdates() <- &common.MsgDeviceUpdate{
		ID:    "sensor.viomi_se_battery",
		Type:  enums.DevSensor,
		State: map[string]interface{}{"value": 80},
	}

	msg := &common.MsgDeviceUpdate{}
	w.Require().NoError(w.ws.ReadJSON(msg))
	w.Equal("sensor.viomi_se_battery", msg.ID)
	w.Equal(float64(80), msg.State["value"])
}

// Tests service invocation.
func (w *wsSuite) TestServiceCall() {
	w.Require().NoError(w.ws.WriteJSON(map[string]interface{}{
		"id":      "1",
		"service": "vacuum_clean_segment",
		"data":    map[string]interface{}{"segments": []int{1, 2}},
	}))

	res := &wsResult{}
	w.Require().NoError(w.ws.ReadJSON(res))
	w.Equal("1", res.ID)
	w.True(res.Success)

	calls := w.devices.Calls()
	w.Require().Len(calls, 1)
	w.Equal("vacuum_clean_segment", calls[0].Service)
}

// Tests failed service invocation.
func (w *wsSuite) TestServiceCallError() {
	w.devices.SetError(errors.New("boom"))
	w.Require().NoError(w.ws.WriteJSON(map[string]interface{}{"id": "2", "service": "locate"}))

	res := &wsResult{}
	w.Require().NoError(w.ws.ReadJSON(res))
	w.False(res.Success)
	w.Equal("boom", res.Error)
}

// Tests malformed commands are ignored.
func (w *wsSuite) TestMalformed() {
	w.Require().NoError(w.ws.WriteMessage(websocket.TextMessage, []byte("{not json}")))
	w.Require().NoError(w.ws.WriteMessage(websocket.TextMessage, []byte("ping")))

	_, msg, err := w.ws.ReadMessage()
	w.Require().NoError(err)
	w.Equal("pong", string(msg))
	w.Empty(w.devices.Calls())
}

func TestWS(t *testing.T) {
	suite.Run(t, new(wsSuite))
}

// Tests that connection is closed when initial states can't be sent.
func TestWSSnapshotFailure(t *testing.T) {
	devices := mocks.FakeNewDeviceManager(&common.MsgDeviceUpdate{
		ID:    "vacuum.viomi_se",
		State: map[string]interface{}{"broken": make(chan int)},
	})

	srv, err := NewServer(&ConstructServer{
		Settings: mocks.FakeNewSettings(nil),
		Devices:  devices,
		Flow:     mocks.FakeNewFlow(nil, nil),
	})
	if err != nil {
		t.Fatal(err)
	}

	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	ws, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/api/v1/ws", nil)
	if err != nil {
		t.Fatal(err)
	}
	defer ws.Close() // nolint: errcheck

	ws.SetReadDeadline(time.Now().Add(2 * time.Second)) // nolint: errcheck
	_, _, err = ws.ReadMessage()
	if err == nil {
		t.Fatal("expected closed connection")
	}

	if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
		t.Fatal("connection was left open")
	}
}
