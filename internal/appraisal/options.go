package appraisal

import (
	"context"
	"fmt"
	"time"

	"github.com/cisglee/uppraisal/internal/config"
)

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Sleep is the default SleepFunc backed by a timer.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// BatchProgress describes the state of one batch (or one record for the
// single-record uploader) after a submit or poll.
type BatchProgress struct {
	Index int // 0-based
	Total int
	Size  int
	Polls int
	State string
	Done  bool
}

// Options configures the upload protocols.
type Options struct {
	// ChunkSize is the maximum number of records per update_grades request
	ChunkSize int

	// PollInterval is the wait before every progress poll
	PollInterval time.Duration

	// RecordDelay is the wait after every single-record update
	RecordDelay time.Duration

	// MaxPolls bounds the polls per job; 0 polls until the job leaves the
	// queued state
	MaxPolls int

	// RejectDuplicates fails before any request when an identifier occurs
	// twice in one batch. Otherwise the later record wins.
	RejectDuplicates bool

	// HTMLFormat marks comments as HTML to be converted to plain text
	HTMLFormat bool

	// Sleep replaces the real clock; nil uses Sleep
	Sleep SleepFunc

	// OnProgress, when set, is called after every submit and poll
	OnProgress func(BatchProgress)
}

// DefaultOptions returns the standard chunk size and timings.
func DefaultOptions() Options {
	return Options{
		ChunkSize:    config.DefaultChunkSize,
		PollInterval: config.DefaultPollInterval,
		RecordDelay:  config.DefaultRecordDelay,
	}
}

// Validate checks the options before any request is attempted.
func (o Options) Validate() error {
	if o.ChunkSize < 1 || o.ChunkSize > config.MaxChunkSize {
		return &ConfigurationError{Msg: fmt.Sprintf("chunk size must be between 1 and %d, got %d", config.MaxChunkSize, o.ChunkSize)}
	}
	if o.PollInterval < 0 {
		return &ConfigurationError{Msg: fmt.Sprintf("poll interval cannot be negative, got %v", o.PollInterval)}
	}
	if o.RecordDelay < 0 {
		return &ConfigurationError{Msg: fmt.Sprintf("record delay cannot be negative, got %v", o.RecordDelay)}
	}
	if o.MaxPolls < 0 {
		return &ConfigurationError{Msg: fmt.Sprintf("max polls cannot be negative, got %d", o.MaxPolls)}
	}
	return nil
}

func (o Options) sleep(ctx context.Context, d time.Duration) error {
	if o.Sleep != nil {
		return o.Sleep(ctx, d)
	}
	return Sleep(ctx, d)
}

func (o Options) progress(p BatchProgress) {
	if o.OnProgress != nil {
		o.OnProgress(p)
	}
}
