package main

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// newDebouncer wraps fn so that it runs once, wait after the last call of a
// burst, with that call's argument. Safe for concurrent callers.
func newDebouncer[T any](wait time.Duration, fn func(T)) func(T) {
	var (
		mu    sync.Mutex
		timer *time.Timer
		gen   uint64
	)
	return func(arg T) {
		mu.Lock()
		defer mu.Unlock()
		gen++
		mine := gen
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(wait, func() {
			// A timer that fired just before Stop must still lose to the
			// newer call.
			mu.Lock()
			stale := mine != gen
			mu.Unlock()
			if !stale {
				fn(arg)
			}
		})
	}
}

// debounceGate is the Update-loop form of newDebouncer: each trigger bumps
// the generation, and only the tick carrying the latest one is fresh.
type debounceGate struct {
	gen int
}

func (g *debounceGate) trigger(wait time.Duration, msg func(gen int) tea.Msg) tea.Cmd {
	g.gen++
	gen := g.gen
	return tea.Tick(wait, func(time.Time) tea.Msg {
		return msg(gen)
	})
}

func (g *debounceGate) fresh(gen int) bool {
	return gen == g.gen
}
