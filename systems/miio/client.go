// Package miio contains a client for the local miIO protocol spoken by Viomi vacuums.
package miio

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/go-home-io/viomise/plugins/common"
)

const (
	// DefaultPort is the UDP port miIO devices listen on.
	DefaultPort = 54321
	// DefaultTimeout is used when constructor doesn't provide a timeout.
	DefaultTimeout = 5 * time.Second

	maxRequestID = 9999
)

// IClient defines device RPC surface used by the entities.
type IClient interface {
	RawCommand(ctx context.Context, method string, params interface{}) (interface{}, error)
	Info(ctx context.Context) (*DeviceInfo, error)
}

// DeviceInfo is a static identity record returned by the device.
type DeviceInfo struct {
	MacAddress      string `json:"mac"`
	Model           string `json:"model"`
	FirmwareVersion string `json:"fw_ver"`
	HardwareVersion string `json:"hw_ver"`
}

// ConstructClient has data required for a new client.
type ConstructClient struct {
	Host    string
	Token   string
	Port    int
	Timeout time.Duration
	Logger  common.ILoggerProvider
}

type request struct {
	ID     int         `json:"id"`
	Method string      `json:"method"`
	Params interface{} `json:"params"`
}

type responseError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type response struct {
	ID     int            `json:"id"`
	Result interface{}    `json:"result"`
	Error  *responseError `json:"error"`
}

// Client talks to a single device.
// Calls are serialized, only one request is in flight at a time.
type Client struct {
	sync.Mutex

	host    string
	addr    string
	timeout time.Duration
	crypt   *cryptor
	logger  common.ILoggerProvider

	handshaked bool
	deviceID   uint32
	stamp      uint32
	stampAt    time.Time
	requestID  int
}

// NewClient constructs a new device client.
// No network activity happens until the first call.
func NewClient(ctor *ConstructClient) (*Client, error) {
	crypt, err := newCryptor(ctor.Token)
	if err != nil {
		return nil, err
	}

	port := ctor.Port
	if port == 0 {
		port = DefaultPort
	}

	timeout := ctor.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		host:    ctor.Host,
		addr:    net.JoinHostPort(ctor.Host, strconv.Itoa(port)),
		timeout: timeout,
		crypt:   crypt,
		logger:  ctor.Logger,
	}, nil
}

// RawCommand sends a method with positional params and returns raw result.
func (c *Client) RawCommand(ctx context.Context, method string, params interface{}) (interface{}, error) {
	c.Lock()
	defer c.Unlock()

	result, err := c.send(ctx, method, params)
	if err != nil {
		c.handshaked = false
		return nil, &ErrDevice{Host: c.host, Method: method, Err: err}
	}

	return result, nil
}

// Info requests device identity.
func (c *Client) Info(ctx context.Context) (*DeviceInfo, error) {
	result, err := c.RawCommand(ctx, "miIO.info", nil)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(result)
	if err != nil {
		return nil, &ErrDevice{Host: c.host, Method: "miIO.info", Err: err}
	}

	info := &DeviceInfo{}
	if err := json.Unmarshal(data, info); err != nil {
		return nil, &ErrDevice{Host: c.host, Method: "miIO.info", Err: err}
	}

	return info, nil
}

// Performs a single request-response exchange.
func (c *Client) send(ctx context.Context, method string, params interface{}) (interface{}, error) {
	if params == nil {
		params = []interface{}{}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	dialer := net.Dialer{}
	conn, err := dialer.DialContext(ctx, "udp", c.addr)
	if err != nil {
		return nil, err
	}
	defer conn.Close() // nolint: errcheck

	if deadline, ok := ctx.Deadline(); ok {
		if err := conn.SetDeadline(deadline); err != nil {
			return nil, err
		}
	}

	if !c.handshaked {
		if err := c.hello(conn); err != nil {
			return nil, err
		}
	}

	c.requestID++
	if c.requestID > maxRequestID {
		c.requestID = 1
	}
	id := c.requestID

	payload, err := json.Marshal(&request{ID: id, Method: method, Params: params})
	if err != nil {
		return nil, err
	}

	stamp := c.stamp + uint32(time.Since(c.stampAt)/time.Second) + 1
	pkt, err := c.crypt.encode(c.deviceID, stamp, payload)
	if err != nil {
		return nil, err
	}

	c.debug("Sending device request", method, id)
	if _, err := conn.Write(pkt); err != nil {
		return nil, err
	}

	buf := make([]byte, 65535)
	for {
		n, err := conn.Read(buf)
		if err != nil {
			return nil, err
		}

		h, data, err := c.crypt.decode(buf[:n])
		if err != nil {
			return nil, err
		}
		if data == nil {
			continue
		}

		resp := &response{}
		if err := json.Unmarshal(data, resp); err != nil {
			return nil, err
		}
		if resp.ID != id {
			c.debug("Skipping stale device response", method, resp.ID)
			continue
		}

		c.stamp, c.stampAt = h.Stamp, time.Now()
		if resp.Error != nil {
			return nil, &ErrResponse{Code: resp.Error.Code, Message: resp.Error.Message}
		}

		return resp.Result, nil
	}
}

// Performs handshake which reveals device ID and stamp.
func (c *Client) hello(conn net.Conn) error {
	if _, err := conn.Write(helloPacket()); err != nil {
		return err
	}

	buf := make([]byte, 1024)
	n, err := conn.Read(buf)
	if err != nil {
		return err
	}

	h, err := parseHeader(buf[:n])
	if err != nil {
		return err
	}

	c.deviceID = h.DeviceID
	c.stamp = h.Stamp
	c.stampAt = time.Now()
	c.handshaked = true
	return nil
}

func (c *Client) debug(msg string, method string, id int) {
	if c.logger == nil {
		return
	}
	c.logger.Debug(msg, common.LogDeviceHostToken, c.host, common.LogDeviceCommandToken, method,
		"request_id", fmt.Sprintf("%d", id))
}
