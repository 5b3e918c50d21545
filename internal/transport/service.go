package transport

import "github.com/pkg/errors"

//go:generate mockgen -source=service.go -destination=mock/service.go

var (
	ErrNotInitialized = errors.New("transport not initialized")
	ErrNotConnected   = errors.New("not connected")
)

type Service interface {
	Initialize() error
	Start(nickname string) error
	Stop()

	SubscribeToMessages() (*MessagesSubscription, error)
	PublishMessage(payload []byte) error

	ConnectionStatus() ConnectionStatus
	SubscribeToConnectionStatus() ConnectionStatusSubscription
}

// MessagesSubscription delivers raw frames. Ch is closed when the connection ends.
type MessagesSubscription struct {
	Ch          chan []byte
	Unsubscribe func()
}

type ConnectionStatus struct {
	IsOnline bool
	Server   string
}

type ConnectionStatusSubscription chan ConnectionStatus
