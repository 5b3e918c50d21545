package transport

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/six78/wordle-duel-cli/internal/config"
	"github.com/six78/wordle-duel-cli/internal/version"
)

const (
	handshakeTimeout = 10 * time.Second
	writeTimeout     = 5 * time.Second
	socketPath       = "/socket"
)

type subscriber struct {
	ch   chan []byte
	done chan struct{}
	once sync.Once
}

func (s *subscriber) cancel() {
	s.once.Do(func() {
		close(s.done)
	})
}

// Node is a client connection to the match server.
type Node struct {
	ctx    context.Context
	logger *zap.Logger
	server string

	dialer     *websocket.Dialer
	conn       *websocket.Conn
	writeMutex sync.Mutex
	mutex      sync.RWMutex

	messageSubscribers []*subscriber
	statusSubscribers  []ConnectionStatusSubscription
	connectionStatus   ConnectionStatus
	stopOnce           sync.Once
}

func NewNode(ctx context.Context, logger *zap.Logger, server string) *Node {
	return &Node{
		ctx:    ctx,
		logger: logger.Named("websocket"),
		server: server,
		connectionStatus: ConnectionStatus{
			IsOnline: false,
			Server:   server,
		},
	}
}

func (n *Node) Initialize() error {
	_, err := SocketURL(n.server, "")
	if err != nil {
		return err
	}

	n.dialer = &websocket.Dialer{
		Proxy:            http.ProxyFromEnvironment,
		HandshakeTimeout: handshakeTimeout,
	}

	return nil
}

func (n *Node) Start(nickname string) error {
	if n.dialer == nil {
		return ErrNotInitialized
	}

	u, err := SocketURL(n.server, nickname)
	if err != nil {
		return err
	}

	n.logger.Info("connecting", zap.String("url", u.String()))

	header := http.Header{}
	header.Set("User-Agent", version.UserAgent(config.ApplicationName))

	conn, _, err := n.dialer.DialContext(n.ctx, u.String(), header)
	if err != nil {
		return errors.Wrap(err, "failed to connect to server")
	}

	n.mutex.Lock()
	n.conn = conn
	n.mutex.Unlock()

	n.notifyConnectionStatus(true)

	go n.readLoop(conn)
	go func() {
		<-n.ctx.Done()
		n.Stop()
	}()

	return nil
}

func (n *Node) Stop() {
	n.stopOnce.Do(func() {
		n.mutex.RLock()
		conn := n.conn
		n.mutex.RUnlock()

		if conn == nil {
			return
		}

		n.writeMutex.Lock()
		message := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
		err := conn.WriteControl(websocket.CloseMessage, message, time.Now().Add(writeTimeout))
		n.writeMutex.Unlock()
		if err != nil {
			n.logger.Debug("failed to send close message", zap.Error(err))
		}

		err = conn.Close()
		if err != nil {
			n.logger.Debug("failed to close connection", zap.Error(err))
		}
	})
}

func (n *Node) readLoop(conn *websocket.Conn) {
	defer func() {
		n.closeSubscribers()
		n.notifyConnectionStatus(false)
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				n.logger.Info("connection closed", zap.Error(err))
			} else {
				n.logger.Warn("connection lost", zap.Error(err))
			}
			return
		}
		n.logger.Debug("message received", zap.ByteString("data", data))
		n.dispatch(data)
	}
}

func (n *Node) dispatch(data []byte) {
	n.mutex.RLock()
	subscribers := make([]*subscriber, len(n.messageSubscribers))
	copy(subscribers, n.messageSubscribers)
	n.mutex.RUnlock()

	for _, s := range subscribers {
		select {
		case s.ch <- data:
		case <-s.done:
		case <-n.ctx.Done():
			return
		}
	}
}

func (n *Node) closeSubscribers() {
	n.mutex.Lock()
	defer n.mutex.Unlock()
	for _, s := range n.messageSubscribers {
		close(s.ch)
	}
	n.messageSubscribers = nil
}

func (n *Node) SubscribeToMessages() (*MessagesSubscription, error) {
	s := &subscriber{
		ch:   make(chan []byte, 42),
		done: make(chan struct{}),
	}

	n.mutex.Lock()
	n.messageSubscribers = append(n.messageSubscribers, s)
	n.mutex.Unlock()

	return &MessagesSubscription{
		Ch: s.ch,
		Unsubscribe: func() {
			s.cancel()
			n.mutex.Lock()
			defer n.mutex.Unlock()
			for i, other := range n.messageSubscribers {
				if other == s {
					n.messageSubscribers = append(n.messageSubscribers[:i], n.messageSubscribers[i+1:]...)
					break
				}
			}
		},
	}, nil
}

func (n *Node) PublishMessage(payload []byte) error {
	n.mutex.RLock()
	conn := n.conn
	online := n.connectionStatus.IsOnline
	n.mutex.RUnlock()

	if conn == nil || !online {
		return ErrNotConnected
	}

	n.writeMutex.Lock()
	defer n.writeMutex.Unlock()

	err := conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err != nil {
		return errors.Wrap(err, "failed to set write deadline")
	}

	err = conn.WriteMessage(websocket.TextMessage, payload)
	if err != nil {
		return errors.Wrap(err, "failed to write message")
	}

	n.logger.Debug("message sent", zap.ByteString("data", payload))
	return nil
}

func (n *Node) ConnectionStatus() ConnectionStatus {
	n.mutex.RLock()
	defer n.mutex.RUnlock()
	return n.connectionStatus
}

func (n *Node) SubscribeToConnectionStatus() ConnectionStatusSubscription {
	channel := make(ConnectionStatusSubscription, 10)
	n.mutex.Lock()
	n.statusSubscribers = append(n.statusSubscribers, channel)
	n.mutex.Unlock()
	return channel
}

func (n *Node) notifyConnectionStatus(online bool) {
	n.mutex.Lock()
	n.connectionStatus.IsOnline = online
	status := n.connectionStatus
	subscribers := n.statusSubscribers
	n.mutex.Unlock()

	for _, subscriber := range subscribers {
		select {
		case subscriber <- status:
		default:
			n.logger.Warn("connection status subscriber is full")
		}
	}
}

// SocketURL builds the websocket URL of the server. Server may be a bare
// host:port or a full ws:// or wss:// URL.
func SocketURL(server string, nickname string) (*url.URL, error) {
	if server == "" {
		return nil, errors.New("empty server address")
	}
	if !strings.Contains(server, "://") {
		server = "ws://" + server
	}

	u, err := url.Parse(server)
	if err != nil {
		return nil, errors.Wrap(err, "invalid server address")
	}
	if u.Scheme != "ws" && u.Scheme != "wss" {
		return nil, errors.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return nil, errors.New("server address has no host")
	}
	if u.Path == "" || u.Path == "/" {
		u.Path = socketPath
	}

	if nickname != "" {
		query := u.Query()
		query.Set("nickname", nickname)
		u.RawQuery = query.Encode()
	}

	return u, nil
}
