package main

import (
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const certSearchDebounce = 300 * time.Millisecond

type certCard struct {
	key         string
	title       string
	description string
	provider    string
	issued      string
	fade        fader
}

// matchesCertificate reports whether a card passes the search term and the
// provider filter. The term is compared case-insensitively.
func matchesCertificate(title, description, provider, term, providerFilter string) bool {
	term = strings.ToLower(term)
	matchesSearch := term == "" ||
		strings.Contains(strings.ToLower(title), term) ||
		strings.Contains(strings.ToLower(description), term)
	matchesProvider := providerFilter == allFilter || provider == providerFilter
	return matchesSearch && matchesProvider
}

// certificateManager combines a debounced text search with a provider
// filter over the certificate cards.
type certificateManager struct {
	cards     []certCard
	providers []string
	provider  string
	search    textinput.Model
	gate      debounceGate
}

func newCertificateManager(c *content) *certificateManager {
	ti := textinput.New()
	ti.Prompt = "Search: "
	ti.Placeholder = "title or description"
	ti.CharLimit = 60
	ti.Width = 30
	m := &certificateManager{provider: allFilter, search: ti}
	m.load(c)
	return m
}

func (m *certificateManager) load(c *content) {
	prev := make(map[string]fader, len(m.cards))
	for _, card := range m.cards {
		prev[card.key] = card.fade
	}
	m.cards = m.cards[:0]
	for _, cert := range c.Certificates {
		card := certCard{
			key:         cert.key(),
			title:       cert.Title,
			description: cert.Description,
			provider:    cert.Provider,
			issued:      cert.Issued,
		}
		if f, ok := prev[card.key]; ok {
			card.fade = f
		} else if !m.matches(card) {
			card.fade.phase = fadeHidden
		}
		m.cards = append(m.cards, card)
	}
	m.providers = append([]string{allFilter}, c.providers()...)
}

func (m *certificateManager) bind(d *dispatcher) {
	on(d, func(msg searchKeyMsg) tea.Cmd {
		before := m.search.Value()
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg.key)
		if m.search.Value() == before {
			return cmd
		}
		return tea.Batch(cmd, m.gate.trigger(certSearchDebounce, func(gen int) tea.Msg {
			return certSearchTickMsg{gen: gen}
		}))
	})
	on(d, func(focusSearchMsg) tea.Cmd { return m.search.Focus() })
	on(d, func(blurSearchMsg) tea.Cmd {
		m.search.Blur()
		return nil
	})
	on(d, func(msg certSearchTickMsg) tea.Cmd {
		if !m.gate.fresh(msg.gen) {
			return nil
		}
		return m.filterCertificates()
	})
	on(d, func(msg selectProviderMsg) tea.Cmd {
		m.provider = msg.provider
		return m.filterCertificates()
	})
	on(d, func(msg cycleProviderMsg) tea.Cmd {
		i := slices.Index(m.providers, m.provider)
		if i < 0 {
			i = 0
		}
		i = (i + msg.delta + len(m.providers)) % len(m.providers)
		m.provider = m.providers[i]
		return m.filterCertificates()
	})
	on(d, func(msg fadeDoneMsg) tea.Cmd {
		if msg.group != "cert" {
			return nil
		}
		for i := range m.cards {
			if m.cards[i].key == msg.key {
				m.cards[i].fade.complete(msg.gen)
			}
		}
		return nil
	})
}

func (m *certificateManager) matches(card certCard) bool {
	return matchesCertificate(card.title, card.description, card.provider, m.search.Value(), m.provider)
}

// filterCertificates recomputes visibility for every card.
func (m *certificateManager) filterCertificates() tea.Cmd {
	var cmds []tea.Cmd
	for i := range m.cards {
		card := &m.cards[i]
		if m.matches(*card) {
			cmds = append(cmds, card.fade.show("cert", card.key))
		} else {
			cmds = append(cmds, card.fade.hide("cert", card.key))
		}
	}
	return tea.Batch(cmds...)
}
