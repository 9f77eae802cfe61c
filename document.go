package main

// ─── Document ────────────────────────────────────────────────────────────────
//
// Shared page state. Each slot has exactly one owning controller that writes
// it; everyone else only reads.

type document struct {
	theme *themeState        // owner: themeManager
	notes *notificationSlot  // owner: notificationSlot itself (show is the only entry point)
	modal *modalSlot         // owner: projectManager
	lock  *scrollLock        // owner: projectManager
}

func newDocument() *document {
	return &document{
		theme: &themeState{current: themeLight, palette: paletteFor(themeLight)},
		notes: &notificationSlot{},
		modal: &modalSlot{ariaHidden: true},
		lock:  &scrollLock{},
	}
}

type themeState struct {
	current theme
	palette palette
}

func (s *themeState) set(t theme) {
	s.current = t
	s.palette = paletteFor(t)
}

// glamourStyle is the glamour standard style matching the theme.
func (s *themeState) glamourStyle() string {
	if s.current == themeDark {
		return "dark"
	}
	return "light"
}

// scrollLock suppresses page scrolling while held (body overflow hidden).
type scrollLock struct {
	held bool
}

func (l *scrollLock) locked() bool { return l.held }

type modalPhase int

const (
	modalClosed modalPhase = iota
	modalOpening
	modalOpen
	modalClosing
)

func (p modalPhase) String() string {
	switch p {
	case modalOpening:
		return "opening"
	case modalOpen:
		return "open"
	case modalClosing:
		return "closing"
	default:
		return "closed"
	}
}

// modalSlot is the single project detail overlay. There is never more than
// one, so "open" is a phase on this slot rather than a stack.
type modalSlot struct {
	phase      modalPhase
	ariaHidden bool
	gen        int
	projectID  string
	title      string
	found      bool
	markdown   string
	rendered   string
}

func (s *modalSlot) visible() bool { return s.phase != modalClosed }
