package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/net/proxy"
)

// Client manages one WebSocket session against the Prixe price stream.
// Connection loss is terminal for the session: there is no reconnect. A
// caller that wants a new session constructs a new Client.
type Client struct {
	url          string
	handler      EventHandler
	conn         *websocket.Conn
	mu           sync.RWMutex
	writeMu      sync.Mutex
	ctx          context.Context
	cancel       context.CancelFunc
	done         chan struct{}
	doneOnce     sync.Once
	closeOnce    sync.Once
	subscribed   map[string]bool // tickers subscribed this session
	subscribedMu sync.RWMutex
	useProxy     bool
	proxyAddr    string
}

// NewClient creates a stream client. The handler receives every
// dispatched frame and is required.
func NewClient(url string, handler EventHandler) *Client {
	ctx, cancel := context.WithCancel(context.Background())
	return &Client{
		url:        url,
		handler:    handler,
		ctx:        ctx,
		cancel:     cancel,
		done:       make(chan struct{}),
		subscribed: make(map[string]bool),
	}
}

// NewClientWithProxy creates a stream client that dials through a SOCKS5
// proxy.
func NewClientWithProxy(url string, handler EventHandler, useProxy bool, proxyAddr string) *Client {
	c := NewClient(url, handler)
	c.useProxy = useProxy
	c.proxyAddr = proxyAddr
	return c
}

// Connect establishes the WebSocket connection, sends the initial
// subscribe frame for ticker if non-empty, and starts the read loop on a
// background goroutine.
func (c *Client) Connect(ticker string) error {
	c.mu.Lock()

	dialer := &websocket.Dialer{HandshakeTimeout: 10 * time.Second}

	if c.useProxy && c.proxyAddr != "" {
		log.Printf("Using SOCKS5 proxy: %s", c.proxyAddr)
		dialer.NetDialContext = func(ctx context.Context, network, addr string) (net.Conn, error) {
			proxyDialer, err := proxy.SOCKS5("tcp", c.proxyAddr, nil, proxy.Direct)
			if err != nil {
				return nil, fmt.Errorf("failed to create SOCKS5 proxy: %w", err)
			}
			return proxyDialer.Dial(network, addr)
		}
	}

	conn, _, err := dialer.Dial(c.url, nil)
	if err != nil {
		c.mu.Unlock()
		c.finish()
		return fmt.Errorf("failed to connect to %s: %w", c.url, err)
	}

	c.conn = conn
	c.mu.Unlock()
	log.Printf("WebSocket connected to %s", c.url)

	if ticker != "" {
		if err := c.Subscribe(ticker); err != nil {
			c.Close()
			c.finish()
			return err
		}
	}

	go c.readLoop()
	return nil
}

// finish marks the session as ended. The read loop does this on exit;
// failed Connect paths do it too so Done never blocks a caller forever.
func (c *Client) finish() {
	c.doneOnce.Do(func() { close(c.done) })
}

// readLoop reads frames until the connection drops or Close is called,
// dispatching each frame to the handler.
func (c *Client) readLoop() {
	defer c.finish()

	for {
		select {
		case <-c.ctx.Done():
			return
		default:
			c.mu.RLock()
			conn := c.conn
			c.mu.RUnlock()

			if conn == nil {
				return
			}

			_, message, err := conn.ReadMessage()
			if err != nil {
				if c.ctx.Err() == nil {
					log.Printf("Connection closed: %v", err)
				}
				return
			}

			Dispatch(c.handler, message)
		}
	}
}

// Done is closed when the session ends, whether by Close or by the
// server dropping the connection.
func (c *Client) Done() <-chan struct{} {
	return c.done
}

// Subscribe sends a subscribe frame for one ticker.
func (c *Client) Subscribe(ticker string) error {
	msg := map[string]interface{}{
		"event": "subscribe",
		"data":  map[string]string{"ticker": ticker},
	}
	if err := c.writeJSON(msg); err != nil {
		return fmt.Errorf("failed to send subscribe for %s: %w", ticker, err)
	}

	c.subscribedMu.Lock()
	c.subscribed[ticker] = true
	c.subscribedMu.Unlock()

	log.Printf("Subscribed to %s", ticker)
	return nil
}

// Unsubscribe sends an unsubscribe frame. The server drops every
// subscription of this session, so the local tracking is cleared too.
func (c *Client) Unsubscribe() error {
	if err := c.writeJSON(map[string]string{"event": "unsubscribe"}); err != nil {
		return fmt.Errorf("failed to send unsubscribe: %w", err)
	}

	c.subscribedMu.Lock()
	c.subscribed = make(map[string]bool)
	c.subscribedMu.Unlock()

	log.Println("Unsubscribed")
	return nil
}

// GetSubscribed returns the tickers subscribed this session.
func (c *Client) GetSubscribed() []string {
	c.subscribedMu.RLock()
	defer c.subscribedMu.RUnlock()

	tickers := make([]string, 0, len(c.subscribed))
	for t := range c.subscribed {
		tickers = append(tickers, t)
	}
	return tickers
}

func (c *Client) writeJSON(v interface{}) error {
	c.mu.RLock()
	conn := c.conn
	c.mu.RUnlock()

	if conn == nil {
		return fmt.Errorf("websocket not connected")
	}

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return conn.WriteMessage(websocket.TextMessage, data)
}

// Close ends the session: stop the read loop, send a best-effort close
// frame, and close the connection. Safe to call more than once.
func (c *Client) Close() error {
	var closeErr error
	c.closeOnce.Do(func() {
		c.cancel()

		c.mu.Lock()
		defer c.mu.Unlock()

		if c.conn == nil {
			return
		}

		c.writeMu.Lock()
		err := c.conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		)
		c.writeMu.Unlock()
		if err != nil {
			log.Printf("Error sending close message: %v", err)
		}

		closeErr = c.conn.Close()
		c.conn = nil
	})
	return closeErr
}
