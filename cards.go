package main

import (
	"hash/fnv"

	"github.com/charmbracelet/lipgloss"
)

// ─── Cards ───────────────────────────────────────────────────────────────────

// tagColors are 256-color palette values readable on light and dark
// backgrounds. Prime length for better hash distribution.
var tagColors = []string{
	"204", "209", "173", "136", "71", "35", "37", "33", "69",
	"98", "133", "168", "131", "166", "67", "30", "61",
}

// tagStyle returns a consistent style for a category or provider name.
func tagStyle(name string) lipgloss.Style {
	h := fnv.New32a()
	h.Write([]byte(name))
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(tagColors[h.Sum32()%uint32(len(tagColors))]))
}

func cardStyle(border lipgloss.Color, width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(width)
}

// renderProjectCard draws a project card. Cards that are not opaque keep
// their size but lose their color.
func renderProjectCard(card projectCard, focused bool, width int, pal palette) string {
	border := pal.muted
	if focused {
		border = pal.accent
	}
	if !card.fade.opaque() {
		faint := lipgloss.NewStyle().Foreground(pal.muted)
		return cardStyle(pal.muted, width).Render(faint.Render(card.title + "\n" + card.summary + "\n "))
	}
	title := lipgloss.NewStyle().Bold(true).Render(card.title)
	tag := tagStyle(card.category).Render("#" + card.category)
	hint := lipgloss.NewStyle().Foreground(pal.dim).Render("enter · details")
	return cardStyle(border, width).Render(title + "  " + tag + "\n" + card.summary + "\n" + hint)
}

func renderCertCard(card certCard, width int, pal palette) string {
	if !card.fade.opaque() {
		faint := lipgloss.NewStyle().Foreground(pal.muted)
		return cardStyle(pal.muted, width).Render(faint.Render(card.title + "\n" + card.description + "\n "))
	}
	title := lipgloss.NewStyle().Bold(true).Render(card.title)
	meta := tagStyle(card.provider).Render(card.provider) +
		lipgloss.NewStyle().Foreground(pal.dim).Render(" · "+card.issued)
	return cardStyle(pal.muted, width).Render(title + "\n" + card.description + "\n" + meta)
}
