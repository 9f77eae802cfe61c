package main

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

var (
	fadeOutDelay = 300 * time.Millisecond
	fadeInDelay  = 10 * time.Millisecond
)

type fadePhase int

const (
	fadeShown  fadePhase = iota
	fadeOut              // transparent, still in layout
	fadeHidden           // removed from layout
	fadeIn               // back in layout, becoming opaque
)

func (p fadePhase) String() string {
	switch p {
	case fadeOut:
		return "fading-out"
	case fadeHidden:
		return "hidden"
	case fadeIn:
		return "fading-in"
	default:
		return "shown"
	}
}

// fader is the two-phase show/hide transition of a card.
type fader struct {
	phase fadePhase
	gen   int
}

func (f *fader) hide(group, key string) tea.Cmd {
	if f.phase == fadeOut || f.phase == fadeHidden {
		return nil
	}
	f.phase = fadeOut
	return f.schedule(fadeOutDelay, group, key)
}

func (f *fader) show(group, key string) tea.Cmd {
	if f.phase == fadeShown || f.phase == fadeIn {
		return nil
	}
	f.phase = fadeIn
	return f.schedule(fadeInDelay, group, key)
}

func (f *fader) schedule(d time.Duration, group, key string) tea.Cmd {
	f.gen++
	gen := f.gen
	return tea.Tick(d, func(time.Time) tea.Msg {
		return fadeDoneMsg{group: group, key: key, gen: gen}
	})
}

func (f *fader) complete(gen int) {
	if gen != f.gen {
		return
	}
	switch f.phase {
	case fadeOut:
		f.phase = fadeHidden
	case fadeIn:
		f.phase = fadeShown
	}
}

// visible reports the target state: shown or on its way there.
func (f fader) visible() bool { return f.phase == fadeShown || f.phase == fadeIn }

func (f fader) inLayout() bool { return f.phase != fadeHidden }

func (f fader) opaque() bool { return f.phase == fadeShown }
