package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

type recordingSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *recordingSink) OnEvent(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

func (s *recordingSink) count(status Status) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, ev := range s.events {
		if ev.Status == status {
			n++
		}
	}
	return n
}

func TestRunEvaluatesLines(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "div.num", `# integer division
4 / -3

1 / 0.0
1 / 0
13 / "10"
10**50 / (10**40 + 1)
`)
	results, err := Run(context.Background(), []string{path}, Options{Jobs: 1})
	require.NoError(t, err)
	require.Len(t, results, 1)

	lines := results[0].Lines
	require.Len(t, lines, 5)
	assert.Equal(t, LineResult{Line: 2, Expr: "4 / -3", Text: "-2", Kind: "Integer", Int: lines[0].Int}, lines[0])
	assert.Equal(t, "-2", lines[0].Int.String())
	assert.Equal(t, "Infinity", lines[1].Text)
	assert.Equal(t, "Float", lines[1].Kind)
	assert.Equal(t, "ZeroDivisionError: divided by 0", lines[2].Err)
	assert.Equal(t, "TypeError: String can't be coerced into Integer", lines[3].Err)
	assert.Equal(t, "9999999999", lines[4].Text)
	assert.Equal(t, 2, results[0].Failures())
}

func TestRunPreservesOrder(t *testing.T) {
	dir := t.TempDir()
	var files []string
	for i := range 24 {
		files = append(files, writeFile(t, dir, fmt.Sprintf("f%02d.num", i), fmt.Sprintf("%d * 2\n", i)))
	}
	sink := &recordingSink{}
	results, err := Run(context.Background(), files, Options{Jobs: 4, Sink: sink})
	require.NoError(t, err)
	for i, res := range results {
		assert.Equal(t, files[i], res.Path)
		require.Len(t, res.Lines, 1)
		assert.Equal(t, fmt.Sprint(i*2), res.Lines[0].Text)
	}
	assert.Equal(t, len(files), sink.count(StatusQueued))
	assert.Equal(t, len(files), sink.count(StatusDone))
}

func TestRunMissingFile(t *testing.T) {
	results, err := Run(context.Background(), []string{filepath.Join(t.TempDir(), "nope.num")}, Options{})
	require.NoError(t, err)
	assert.True(t, errors.Is(results[0].Err, os.ErrNotExist))
}

func TestRunCancelled(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.num", "1 + 1\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := Run(ctx, []string{path}, Options{Jobs: 1})
	assert.True(t, errors.Is(err, context.Canceled))
	assert.True(t, errors.Is(results[0].Err, context.Canceled))
}

func TestRunUsesCache(t *testing.T) {
	dir := t.TempDir()
	cache, err := OpenCache(filepath.Join(dir, "cache"))
	require.NoError(t, err)
	path := writeFile(t, dir, "big.num", "2 ** 100\n1 / 0\n")

	first, err := Run(context.Background(), []string{path}, Options{Cache: cache})
	require.NoError(t, err)
	assert.False(t, first[0].Cached)

	sink := &recordingSink{}
	second, err := Run(context.Background(), []string{path}, Options{Cache: cache, Sink: sink})
	require.NoError(t, err)
	assert.True(t, second[0].Cached)
	require.Len(t, second[0].Lines, 2)
	assert.Equal(t, "1267650600228229401496703205376", second[0].Lines[0].Int.String())
	assert.Equal(t, first[0].Lines[1].Err, second[0].Lines[1].Err)
	assert.Equal(t, 1, sink.count(StatusCached))
}

func TestCacheMissAndNil(t *testing.T) {
	var nilCache *Cache
	ok, err := nilCache.Get(KeyFor([]byte("x")), &Payload{})
	assert.False(t, ok)
	assert.NoError(t, err)
	assert.NoError(t, nilCache.Put(KeyFor([]byte("x")), &Payload{}))

	cache, err := OpenCache(t.TempDir())
	require.NoError(t, err)
	ok, err = cache.Get(KeyFor([]byte("missing")), &Payload{})
	assert.False(t, ok)
	assert.NoError(t, err)
}

func TestChannelSink(t *testing.T) {
	ch := make(chan Event, 1)
	ChannelSink{Ch: ch}.OnEvent(Event{File: "a", Status: StatusDone})
	assert.Equal(t, "a", (<-ch).File)
	ChannelSink{}.OnEvent(Event{})
}
