package main

import (
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func TestDebouncerRunsOnceWithLastArgument(t *testing.T) {
	var (
		mu    sync.Mutex
		calls []int
	)
	done := make(chan struct{}, 4)
	f := newDebouncer(20*time.Millisecond, func(n int) {
		mu.Lock()
		calls = append(calls, n)
		mu.Unlock()
		done <- struct{}{}
	})

	f(1)
	f(2)
	f(3)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("debounced function never ran")
	}
	time.Sleep(60 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if len(calls) != 1 || calls[0] != 3 {
		t.Fatalf("calls = %v, want [3]", calls)
	}
}

func TestDebouncerSeparateBursts(t *testing.T) {
	got := make(chan string, 4)
	f := newDebouncer(10*time.Millisecond, func(s string) { got <- s })

	f("a")
	if s := <-got; s != "a" {
		t.Fatalf("first burst = %q, want a", s)
	}
	f("b")
	if s := <-got; s != "b" {
		t.Fatalf("second burst = %q, want b", s)
	}
}

func TestDebouncerConcurrentCallers(t *testing.T) {
	got := make(chan int, 64)
	f := newDebouncer(30*time.Millisecond, func(n int) { got <- n })

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			f(i)
		}()
	}
	wg.Wait()

	select {
	case <-got:
	case <-time.After(time.Second):
		t.Fatal("debounced function never ran")
	}
	select {
	case n := <-got:
		t.Fatalf("ran twice, second with %d", n)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestDebounceGateOnlyLatestIsFresh(t *testing.T) {
	var g debounceGate
	first := g.trigger(time.Millisecond, func(gen int) tea.Msg { return gen })
	second := g.trigger(time.Millisecond, func(gen int) tea.Msg { return gen })

	m1 := first().(int)
	m2 := second().(int)
	if g.fresh(m1) {
		t.Errorf("first trigger (gen %d) should be stale", m1)
	}
	if !g.fresh(m2) {
		t.Errorf("second trigger (gen %d) should be fresh", m2)
	}
}
