package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/fsnotify/fsnotify"
)

// rendererPool caches glamour renderers keyed by "style:width".
// Each key maps to a sync.Pool so concurrent goroutines get their own instance.
var (
	rendererPoolMu sync.Mutex
	rendererPools  = make(map[string]*sync.Pool)
)

func getRenderer(style string, width int) (*glamour.TermRenderer, error) {
	key := fmt.Sprintf("%s:%d", style, width)
	rendererPoolMu.Lock()
	pool, ok := rendererPools[key]
	if !ok {
		pool = &sync.Pool{}
		rendererPools[key] = pool
	}
	rendererPoolMu.Unlock()

	if r, _ := pool.Get().(*glamour.TermRenderer); r != nil {
		return r, nil
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, fmt.Errorf("could not create renderer for %s: %w", key, err)
	}
	return r, nil
}

func putRenderer(style string, width int, r *glamour.TermRenderer) {
	key := fmt.Sprintf("%s:%d", style, width)
	rendererPoolMu.Lock()
	pool := rendererPools[key]
	rendererPoolMu.Unlock()
	if pool != nil {
		pool.Put(r)
	}
}

// ─── Commands ────────────────────────────────────────────────────────────────

// glamourRender renders markdown at width, falling back to the raw text.
func glamourRender(markdown, style string, width int) string {
	if width < 20 {
		width = 20
	}
	r, err := getRenderer(style, width)
	if err != nil {
		return markdown
	}
	rendered, err := r.Render(markdown)
	putRenderer(style, width, r)
	if err != nil {
		return markdown
	}
	return rendered
}

// renderMarkdownCmd renders off the Update loop and reports back as a
// markdownMsg for target.
func renderMarkdownCmd(target string, gen int, markdown, style string, width int) tea.Cmd {
	return func() tea.Msg {
		return markdownMsg{target: target, gen: gen, content: glamourRender(markdown, style, width)}
	}
}

const contentReloadDebounce = 100 * time.Millisecond

// watchContent watches the directories holding files and sends a
// contentChangedMsg once writes to any of them settle. It returns when ctx
// is done or the watcher closes.
func watchContent(ctx context.Context, watcher *fsnotify.Watcher, files []string, send func(tea.Msg), log *slog.Logger) {
	watched := make(map[string]bool, len(files))
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			abs = f
		}
		watched[abs] = true
		// Editors often replace files by rename, which drops a file watch.
		dir := filepath.Dir(abs)
		if err := watcher.Add(dir); err != nil {
			log.Warn("watch content dir", "dir", dir, "err", err)
		}
	}
	changed := newDebouncer(contentReloadDebounce, func(file string) {
		send(contentChangedMsg{file: file})
	})
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-watcher.Events:
			if !ok {
				return
			}
			name, err := filepath.Abs(ev.Name)
			if err != nil || !watched[name] {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				changed(name)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Warn("content watcher", "err", err)
		}
	}
}
