package eventhandler

import (
	tea "github.com/charmbracelet/bubbletea"
)

type buildMessageFunc[E any, M any] func(E) M

type subscription[E any, M any] struct {
	sub     chan E
	convert buildMessageFunc[E, M]
}

// Model turns events from a channel into bubbletea messages of type M.
// Only one event is awaited at a time, so events keep their order.
type Model[E any, M any] struct {
	// subscription is a pointer wrapper to share same subscription between models
	// and to enable nullifying it when channel is closed
	subscription *subscription[E, M]
}

func New[E any, M any](convert buildMessageFunc[E, M]) Model[E, M] {
	return Model[E, M]{
		subscription: &subscription[E, M]{
			sub:     nil,
			convert: convert,
		},
	}
}

// Init starts listening to input. The current value is queued first unless
// the channel is already full, in which case newer events are pending anyway.
func (m Model[E, M]) Init(input chan E, current E) tea.Cmd {
	if input == nil {
		return nil
	}
	m.subscription.sub = input
	select {
	case m.subscription.sub <- current:
	default:
	}
	return WaitForEvent[E, M](m.subscription)
}

func (m Model[E, M]) Update(msg tea.Msg) (Model[E, M], tea.Cmd) {
	if !m.Active() {
		return m, nil
	}
	var cmd tea.Cmd
	switch msg.(type) {
	case M:
		cmd = WaitForEvent[E, M](m.subscription)
	}
	return m, cmd
}

func (m Model[E, M]) Active() bool {
	return m.subscription != nil && m.subscription.sub != nil
}

func WaitForEvent[E any, M any](subscription *subscription[E, M]) tea.Cmd {
	return func() tea.Msg {
		if subscription.sub == nil {
			return nil
		}
		event, more := <-subscription.sub
		if more {
			return subscription.convert(event)
		}
		subscription.sub = nil
		return nil
	}
}
