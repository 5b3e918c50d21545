package game

import (
	"sync"

	"go.uber.org/zap"
	"golang.org/x/exp/slices"

	"github.com/six78/wordle-duel-cli/pkg/match"
	"github.com/six78/wordle-duel-cli/pkg/protocol"
)

type Status int

const (
	StatusIdle Status = iota
	StatusConnecting
	StatusMatching
	StatusPlaying
	StatusFinished
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusConnecting:
		return "connecting"
	case StatusMatching:
		return "matching"
	case StatusPlaying:
		return "playing"
	case StatusFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Update is sent to subscribers every time the session changes.
// State is a snapshot and must not be modified.
type Update struct {
	Status        Status
	Player        *protocol.Player
	State         *match.State
	Notifications []match.Notification
}

type UpdateSubscription chan Update

type EventManager struct {
	logger        *zap.Logger
	mutex         sync.Mutex
	subscriptions []UpdateSubscription
}

func NewEventManager(logger *zap.Logger) *EventManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventManager{
		logger:        logger,
		subscriptions: make([]UpdateSubscription, 0, 1),
	}
}

// Send never blocks. When a subscriber's buffer is full, its queued updates
// are coalesced into this one: the newest snapshot wins and the queued
// notifications are carried over in order.
func (m *EventManager) Send(update Update) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for _, sub := range m.subscriptions {
		select {
		case sub <- update:
			continue
		default:
		}
		m.coalesce(sub, update)
	}
}

func (m *EventManager) coalesce(sub UpdateSubscription, update Update) {
	var notifications []match.Notification
	drained := 0
	for done := false; !done; {
		select {
		case queued := <-sub:
			notifications = append(notifications, queued.Notifications...)
			drained++
		default:
			done = true
		}
	}

	coalesced := update
	coalesced.Notifications = append(notifications, update.Notifications...)

	select {
	case sub <- coalesced:
		m.logger.Debug("update subscriber is full, updates coalesced",
			zap.Stringer("status", update.Status),
			zap.Int("coalesced", drained),
			zap.Int("notifications", len(coalesced.Notifications)))
	default:
		m.logger.Error("update subscriber is full, update dropped",
			zap.Stringer("status", update.Status),
			zap.Int("notifications", len(coalesced.Notifications)))
	}
}

func (m *EventManager) Subscribe() UpdateSubscription {
	subscription := make(UpdateSubscription, 10)
	m.mutex.Lock()
	m.subscriptions = append(m.subscriptions, subscription)
	m.mutex.Unlock()
	return subscription
}

func (m *EventManager) Unsubscribe(subscription UpdateSubscription) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	index := slices.Index(m.subscriptions, subscription)
	if index < 0 {
		return
	}
	m.subscriptions = slices.Delete(m.subscriptions, index, index+1)
	close(subscription)
}

func (m *EventManager) Count() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return len(m.subscriptions)
}

func (m *EventManager) Close() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	for _, sub := range m.subscriptions {
		close(sub)
	}
	m.subscriptions = nil
}
