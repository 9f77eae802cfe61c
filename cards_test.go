package main

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestTagStyleConsistent(t *testing.T) {
	a := tagStyle("web").GetForeground()
	b := tagStyle("web").GetForeground()
	if a != b {
		t.Fatalf("tagStyle(web) colors differ: %v vs %v", a, b)
	}
}

func TestRenderProjectCard(t *testing.T) {
	card := projectCard{id: "1", title: "Alpha", summary: "Short summary.", category: "web"}
	out := renderProjectCard(card, false, 40, lightPalette)
	for _, want := range []string{"Alpha", "#web", "Short summary.", "details"} {
		if !strings.Contains(out, want) {
			t.Errorf("card missing %q:\n%s", want, out)
		}
	}
	if w := lipgloss.Width(out); w != 42 {
		t.Errorf("card width = %d, want 42 (content plus border)", w)
	}

	card.fade.phase = fadeOut
	faded := renderProjectCard(card, false, 40, lightPalette)
	if lipgloss.Height(faded) != lipgloss.Height(out) {
		t.Errorf("fading card height = %d, want %d", lipgloss.Height(faded), lipgloss.Height(out))
	}
	if strings.Contains(faded, "#web") {
		t.Error("fading card should drop the category tag")
	}
}

func TestRenderCertCard(t *testing.T) {
	card := certCard{title: "Cloud Basics", description: "Intro course.", provider: "dicoding", issued: "2024"}
	out := renderCertCard(card, 40, darkPalette)
	for _, want := range []string{"Cloud Basics", "Intro course.", "dicoding", "2024"} {
		if !strings.Contains(out, want) {
			t.Errorf("card missing %q:\n%s", want, out)
		}
	}
}
