// Package batch evaluates expression files concurrently.
package batch

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"numtower/internal/expr"
	"numtower/internal/numeric"
	"numtower/internal/trace"
)

// LineResult is the outcome of one expression line.
type LineResult struct {
	Line int    // 1-based line number in the file
	Expr string // source text, trimmed
	Text string // formatted value; empty on error
	Kind string // Integer, Float, Rational or the Go type for others
	// Int holds integer results so cached entries keep the exact value.
	Int *numeric.Int `msgpack:",omitempty"`
	Err string       `msgpack:",omitempty"`
}

// Failed reports whether the line produced an error.
func (r LineResult) Failed() bool { return r.Err != "" }

// FileResult collects the lines of one file in source order.
type FileResult struct {
	Path   string
	Lines  []LineResult
	Cached bool
	Err    error // read failure or cancellation
}

// Failures counts failed lines.
func (r FileResult) Failures() int {
	n := 0
	for _, l := range r.Lines {
		if l.Failed() {
			n++
		}
	}
	return n
}

// Options configure Run.
type Options struct {
	Jobs   int          // maximum files in flight; <= 0 means GOMAXPROCS
	Sink   Sink         // progress events, may be nil
	Cache  *Cache       // result cache, may be nil
	Tracer trace.Tracer // dispatch and command tracing, may be nil
}

// Run evaluates every file and returns results in the order of files.
// Lines that are blank or start with '#' are skipped. Evaluation errors are
// recorded per line; only context cancellation makes Run fail.
func Run(ctx context.Context, files []string, opts Options) ([]FileResult, error) {
	results := make([]FileResult, len(files))
	if len(files) == 0 {
		return results, nil
	}
	tracer := opts.Tracer
	if tracer == nil {
		tracer = trace.Nop
	}
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	emit := func(ev Event) {
		if opts.Sink != nil {
			opts.Sink.OnEvent(ev)
		}
	}
	for _, path := range files {
		emit(Event{File: path, Status: StatusQueued})
	}

	span := trace.Begin(tracer, trace.ScopeCommand, "batch", 0)
	evaluator := expr.NewEvaluator(numeric.NewDispatcher(tracer))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				results[i] = FileResult{Path: path, Err: gctx.Err()}
				emit(Event{File: path, Status: StatusError, Err: gctx.Err()})
				return gctx.Err()
			default:
			}
			results[i] = runFile(gctx, path, evaluator, opts.Cache, tracer, span.ID(), emit)
			return nil
		})
	}
	err := g.Wait()
	if err != nil {
		span.Fail()
	}
	span.End(fmt.Sprintf("%d files", len(files)))
	return results, err
}

func runFile(ctx context.Context, path string, ev *expr.Evaluator, cache *Cache, tracer trace.Tracer, parent uint64, emit func(Event)) FileResult {
	started := time.Now()
	span := trace.Begin(tracer, trace.ScopeCommand, "file", parent).WithExtra("path", path)
	res := FileResult{Path: path}

	content, err := os.ReadFile(path)
	if err != nil {
		res.Err = err
		span.Fail().End("")
		emit(Event{File: path, Status: StatusError, Err: err, Elapsed: time.Since(started)})
		return res
	}

	key := KeyFor(content)
	var cached Payload
	if ok, err := cache.Get(key, &cached); err == nil && ok {
		res.Lines = cached.Lines
		res.Cached = true
		span.WithExtra("cached", "true").End(strconv.Itoa(len(res.Lines)) + " lines")
		emit(Event{File: path, Status: StatusCached, Line: len(res.Lines), Total: len(res.Lines), Elapsed: time.Since(started)})
		return res
	}

	lines := sourceLines(content)
	emit(Event{File: path, Status: StatusWorking, Total: len(lines)})
	for i, l := range lines {
		if ctx.Err() != nil {
			res.Err = ctx.Err()
			span.Fail().End("cancelled")
			emit(Event{File: path, Status: StatusError, Err: res.Err, Elapsed: time.Since(started)})
			return res
		}
		res.Lines = append(res.Lines, evalLine(ev, l))
		emit(Event{File: path, Status: StatusWorking, Line: i + 1, Total: len(lines)})
	}

	if err := cache.Put(key, &Payload{Lines: res.Lines}); err != nil {
		span.WithExtra("cache_error", err.Error())
	}
	if res.Failures() > 0 {
		span.Fail()
	}
	span.End(strconv.Itoa(len(res.Lines)) + " lines")
	emit(Event{File: path, Status: StatusDone, Line: len(lines), Total: len(lines), Elapsed: time.Since(started)})
	return res
}

type sourceLine struct {
	num  int
	text string
}

func sourceLines(content []byte) []sourceLine {
	var out []sourceLine
	sc := bufio.NewScanner(bytes.NewReader(content))
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	n := 0
	for sc.Scan() {
		n++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		out = append(out, sourceLine{num: n, text: text})
	}
	return out
}

func evalLine(ev *expr.Evaluator, l sourceLine) LineResult {
	res := LineResult{Line: l.num, Expr: l.text}
	v, err := ev.EvalString(l.text)
	if err != nil {
		res.Err = err.Error()
		return res
	}
	res.Text = expr.Format(v)
	switch x := v.(type) {
	case numeric.Int:
		res.Kind = x.Kind().String()
		res.Int = &x
	case numeric.Value:
		res.Kind = x.Kind().String()
	default:
		res.Kind = fmt.Sprintf("%T", v)
	}
	return res
}
