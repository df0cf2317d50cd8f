package ui

import (
	"strings"
	"testing"

	"numtower/internal/batch"
)

func TestTruncate(t *testing.T) {
	cases := []struct {
		in    string
		width int
		want  string
	}{
		{"short.num", 20, "short.num"},
		{"a/very/long/path/file.num", 10, "a/ve..."},
		{"abcdef", 3, "abc"},
		{"１２３４５", 8, "１..."},
		{"any", 0, "any"},
	}
	for _, tc := range cases {
		if got := truncate(tc.in, tc.width); got != tc.want {
			t.Fatalf("truncate(%q, %d) = %q, want %q", tc.in, tc.width, got, tc.want)
		}
	}
}

func TestProgressModelTracksEvents(t *testing.T) {
	events := make(chan batch.Event)
	m := NewProgressModel("batch", []string{"a.num", "b.num"}, events).(*progressModel)

	m.Update(eventMsg(batch.Event{File: "a.num", Status: batch.StatusWorking, Line: 1, Total: 4}))
	if got := m.percent(); got != 0.125 {
		t.Fatalf("percent = %v, want 0.125", got)
	}
	m.Update(eventMsg(batch.Event{File: "a.num", Status: batch.StatusDone, Line: 4, Total: 4}))
	m.Update(eventMsg(batch.Event{File: "b.num", Status: batch.StatusCached, Line: 2, Total: 2}))
	if got := m.percent(); got != 1 {
		t.Fatalf("percent = %v, want 1", got)
	}
	m.Update(eventMsg(batch.Event{File: "unknown.num", Status: batch.StatusError}))

	view := m.View()
	for _, want := range []string{"a.num", "b.num", "done", "cached", "4/4"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}

	m.Update(doneMsg{})
	if !m.done || !strings.Contains(m.View(), "done: batch") {
		t.Fatalf("model not finished:\n%s", m.View())
	}
}
