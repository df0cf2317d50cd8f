package batch

import "time"

// Status captures the progress state of one file.
type Status string

const (
	// StatusQueued indicates the file is waiting for a worker.
	StatusQueued Status = "queued"
	// StatusWorking indicates lines are being evaluated.
	StatusWorking Status = "working"
	// StatusCached indicates results came from the cache.
	StatusCached Status = "cached"
	// StatusDone indicates every line was evaluated.
	StatusDone Status = "done"
	// StatusError indicates the file could not be read or was cancelled.
	StatusError Status = "error"
)

// Event reports progress for a file. Line and Total count evaluated lines.
type Event struct {
	File    string
	Status  Status
	Line    int
	Total   int
	Err     error
	Elapsed time.Duration
}

// Sink consumes progress events. Implementations must be goroutine-safe.
type Sink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}
