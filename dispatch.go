package main

import (
	"reflect"

	tea "github.com/charmbracelet/bubbletea"
)

// dispatcher is the handler table controllers bind to. Handlers for one
// message type run in registration order and their commands are batched.
type dispatcher struct {
	handlers map[reflect.Type][]func(tea.Msg) tea.Cmd
}

func newDispatcher() *dispatcher {
	return &dispatcher{handlers: make(map[reflect.Type][]func(tea.Msg) tea.Cmd)}
}

// on registers fn for messages of type T.
func on[T any](d *dispatcher, fn func(T) tea.Cmd) {
	t := reflect.TypeFor[T]()
	d.handlers[t] = append(d.handlers[t], func(msg tea.Msg) tea.Cmd {
		return fn(msg.(T))
	})
}

// dispatch runs every handler bound to msg's type. handled is false when
// nothing is bound.
func (d *dispatcher) dispatch(msg tea.Msg) (cmd tea.Cmd, handled bool) {
	if msg == nil {
		return nil, false
	}
	hs := d.handlers[reflect.TypeOf(msg)]
	if len(hs) == 0 {
		return nil, false
	}
	cmds := make([]tea.Cmd, 0, len(hs))
	for _, h := range hs {
		cmds = append(cmds, h(msg))
	}
	return tea.Batch(cmds...), true
}
