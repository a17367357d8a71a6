package leaderboard

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/storage"
)

type memBoard struct {
	mu      sync.Mutex
	entries []Entry
	err     error
	delay   time.Duration
}

func (b *memBoard) Submit(ctx context.Context, name string, score int) error {
	if b.delay > 0 {
		select {
		case <-time.After(b.delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if b.err != nil {
		return b.err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries = append(b.entries, Entry{Name: name, Score: score})
	return nil
}

func (b *memBoard) Top(ctx context.Context, limit int) ([]Entry, error) {
	if b.err != nil {
		return nil, b.err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Entry(nil), b.entries...), nil
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", DefaultName},
		{"   ", DefaultName},
		{"  ada ", "ada"},
		{strings.Repeat("x", 30), strings.Repeat("x", MaxNameLength)},
		{strings.Repeat("é", 30), strings.Repeat("é", MaxNameLength)},
	}
	for _, tt := range tests {
		if got := NormalizeName(tt.in); got != tt.want {
			t.Errorf("NormalizeName(%q) = %q, expected %q", tt.in, got, tt.want)
		}
	}
}

func TestReporterSubmit(t *testing.T) {
	board := &memBoard{}
	r := NewReporter(board, nil)

	if r.Submit("ada", 0) != nil || r.Submit("ada", -3) != nil {
		t.Error("non-positive scores should not be submitted")
	}
	done := r.Submit("  ", 7)
	if done == nil {
		t.Fatal("positive score should be submitted")
	}
	<-done

	top := r.Top(10)
	if len(top) != 1 || top[0] != (Entry{Name: DefaultName, Score: 7}) {
		t.Errorf("Top() = %+v, expected one Anonymous/7 entry", top)
	}
}

func TestReporterFailureIsLogged(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)
	board := &memBoard{err: errors.New("store offline")}
	r := NewReporter(board, logger)

	r.Submit("ada", 3)
	r.Wait()
	if !strings.Contains(buf.String(), "store offline") {
		t.Errorf("submit failure not logged: %q", buf.String())
	}

	if top := r.Top(5); top != nil {
		t.Errorf("failed fetch should yield nil, got %+v", top)
	}
}

func TestReporterSubmitDoesNotBlock(t *testing.T) {
	board := &memBoard{delay: time.Second}
	r := NewReporter(board, nil)
	r.SetTimeout(20 * time.Millisecond)

	start := time.Now()
	r.Submit("ada", 1)
	if time.Since(start) > 100*time.Millisecond {
		t.Error("Submit blocked on the store")
	}
	r.Wait()

	if len(board.entries) != 0 {
		t.Error("timed out submission should not be stored")
	}
}

// gatedBoard holds submissions for one name until gate is closed.
type gatedBoard struct {
	memBoard
	gated string
	gate  chan struct{}
}

func (b *gatedBoard) Submit(ctx context.Context, name string, score int) error {
	if name == b.gated {
		select {
		case <-b.gate:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return b.memBoard.Submit(ctx, name, score)
}

func TestReporterSubmitDoneIsPerCall(t *testing.T) {
	board := &gatedBoard{gated: "slow", gate: make(chan struct{})}
	r := NewReporter(board, nil)

	slow := r.Submit("slow", 1)
	fast := r.Submit("fast", 2)

	select {
	case <-fast:
	case <-time.After(time.Second):
		t.Fatal("done should close without waiting for other submissions")
	}
	select {
	case <-slow:
		t.Fatal("held submission reported done")
	default:
	}

	close(board.gate)
	<-slow
	r.Wait()

	if top := r.Top(10); len(top) != 2 {
		t.Errorf("Top() = %+v, expected both entries", top)
	}
}

func TestNilReporterBoard(t *testing.T) {
	r := NewReporter(nil, nil)
	if r.Enabled() {
		t.Error("reporter without a board should be disabled")
	}
	if r.Submit("ada", 5) != nil {
		t.Error("disabled reporter accepted a score")
	}
	if r.Top(10) != nil {
		t.Error("disabled reporter returned scores")
	}
	r.Wait()

	var nilReporter *Reporter
	if nilReporter.Enabled() {
		t.Error("nil reporter should be disabled")
	}
	nilReporter.Wait()
}

func TestStoreBoard(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("storage.Open failed: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	board := NewStoreBoard(store, "flappy")
	other := NewStoreBoard(store, "other")

	for _, e := range []Entry{{"ada", 3}, {"bob", 9}, {"cy", 5}} {
		if err := board.Submit(ctx, e.Name, e.Score); err != nil {
			t.Fatalf("Submit failed: %v", err)
		}
	}
	if err := other.Submit(ctx, "dan", 100); err != nil {
		t.Fatal(err)
	}

	top, err := board.Top(ctx, 2)
	if err != nil {
		t.Fatalf("Top failed: %v", err)
	}
	want := []Entry{{"bob", 9}, {"cy", 5}}
	if len(top) != len(want) || top[0] != want[0] || top[1] != want[1] {
		t.Errorf("Top(2) = %+v, expected %+v", top, want)
	}
}
