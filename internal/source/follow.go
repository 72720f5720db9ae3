package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/charmbracelet/vscroll/internal/log"
	"github.com/nxadm/tail"
)

// Follow reads lines from a file that keeps growing. Lines are collected in
// the background; LoadMore hands out whatever has arrived without waiting.
type Follow struct {
	path string
	t    *tail.Tail

	mu      sync.Mutex
	pending []Record
	next    int64
	err     error

	done chan struct{}
}

// OpenFollow starts following path. When fromStart is false only lines
// written after opening are returned.
func OpenFollow(path string, fromStart bool) (*Follow, error) {
	if path == "" {
		return nil, errors.New("file source requires a path")
	}
	cfg := tail.Config{
		Follow:    true,
		ReOpen:    true,
		MustExist: true,
		Logger:    tail.DiscardingLogger,
	}
	if !fromStart {
		cfg.Location = &tail.SeekInfo{Offset: 0, Whence: io.SeekEnd}
	}
	t, err := tail.TailFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("follow %s: %w", path, err)
	}
	f := &Follow{
		path: path,
		t:    t,
		done: make(chan struct{}),
	}
	go f.collect()
	return f, nil
}

func (f *Follow) collect() {
	defer close(f.done)
	defer log.RecoverPanic("follow", nil)
	for line := range f.t.Lines {
		f.mu.Lock()
		if line.Err != nil {
			slog.Warn("Error following file", "path", f.path, "error", line.Err)
			f.err = line.Err
			f.mu.Unlock()
			continue
		}
		f.pending = append(f.pending, Record{
			Seq:       f.next,
			Body:      line.Text,
			CreatedAt: line.Time,
		})
		f.next++
		f.mu.Unlock()
	}
}

// LoadMore implements scroller.Loader.
func (f *Follow) LoadMore(_ context.Context, count int) ([]Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		err := f.err
		f.err = nil
		return nil, fmt.Errorf("follow %s: %w", f.path, err)
	}
	n := min(count, len(f.pending))
	out := make([]Record, n)
	copy(out, f.pending[:n])
	f.pending = f.pending[n:]
	return out, nil
}

// Buffered returns how many lines arrived that were not handed out yet.
func (f *Follow) Buffered() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.pending)
}

// WaitBuffered blocks until at least n lines are buffered or the timeout
// passes. It reports whether n lines are available.
func (f *Follow) WaitBuffered(n int, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for {
		if f.Buffered() >= n {
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(10 * time.Millisecond)
	}
}

// Close stops following the file.
func (f *Follow) Close() error {
	err := f.t.Stop()
	f.t.Cleanup()
	<-f.done
	return err
}
