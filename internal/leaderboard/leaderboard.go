// Package leaderboard connects finished rounds to a ranked score store.
// Submissions are best effort: a failing store is logged and never affects
// the round that produced the score.
package leaderboard

import (
	"context"
	"io"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/storage"
)

const (
	// DefaultName replaces blank player names.
	DefaultName = "Anonymous"

	// MaxNameLength is the longest name kept, in runes.
	MaxNameLength = 24

	// DefaultLimit is the size of the displayed top list.
	DefaultLimit = 10

	defaultTimeout = 5 * time.Second
)

// Entry is one ranked score.
type Entry struct {
	Name  string
	Score int
}

// Board is a ranked score store.
type Board interface {
	Submit(ctx context.Context, name string, score int) error
	Top(ctx context.Context, limit int) ([]Entry, error)
}

// StoreBoard is a Board backed by the SQLite score store.
type StoreBoard struct {
	store  *storage.Store
	gameID string
}

// NewStoreBoard creates a board over store for one game ID.
func NewStoreBoard(store *storage.Store, gameID string) *StoreBoard {
	return &StoreBoard{store: store, gameID: gameID}
}

// Submit saves a score.
func (b *StoreBoard) Submit(ctx context.Context, name string, score int) error {
	_, err := b.store.SaveScore(ctx, b.gameID, name, score)
	return err
}

// Top returns the best scores, highest first.
func (b *StoreBoard) Top(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := b.store.TopScores(ctx, b.gameID, limit)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, len(rows))
	for i, r := range rows {
		entries[i] = Entry{Name: r.PlayerName, Score: r.Score}
	}
	return entries, nil
}

// Reporter submits finished rounds to a Board in the background.
// A nil Board is allowed and turns every call into a no-op.
type Reporter struct {
	board   Board
	logger  *log.Logger
	timeout time.Duration
	wg      sync.WaitGroup
}

// NewReporter creates a reporter. logger may be nil.
func NewReporter(board Board, logger *log.Logger) *Reporter {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Reporter{board: board, logger: logger, timeout: defaultTimeout}
}

// SetTimeout overrides how long a single store call may take.
func (r *Reporter) SetTimeout(d time.Duration) {
	if d > 0 {
		r.timeout = d
	}
}

// Enabled reports whether scores go anywhere.
func (r *Reporter) Enabled() bool {
	return r != nil && r.board != nil
}

// Submit sends a score without blocking the caller. Scores of zero or less
// are not recorded. The returned channel is closed once this submission has
// finished (stored, failed or timed out); it is nil if nothing was sent.
func (r *Reporter) Submit(name string, score int) <-chan struct{} {
	if !r.Enabled() || score <= 0 {
		return nil
	}
	name = NormalizeName(name)

	done := make(chan struct{})
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer close(done)
		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()

		if err := r.board.Submit(ctx, name, score); err != nil {
			r.logger.Warn("score submit failed", "name", name, "score", score, "error", err)
			return
		}
		r.logger.Debug("score submitted", "name", name, "score", score)
	}()
	return done
}

// Top fetches the best scores. Failures are logged and yield nil.
func (r *Reporter) Top(limit int) []Entry {
	if !r.Enabled() {
		return nil
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	entries, err := r.board.Top(ctx, limit)
	if err != nil {
		r.logger.Warn("score fetch failed", "error", err)
		return nil
	}
	return entries
}

// Wait blocks until all pending submissions have finished, including those
// made by other callers sharing this reporter.
func (r *Reporter) Wait() {
	if r != nil {
		r.wg.Wait()
	}
}

// NormalizeName trims the name, substitutes DefaultName for blanks and cuts
// it to MaxNameLength runes.
func NormalizeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultName
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		name = strings.TrimSpace(string([]rune(name)[:MaxNameLength]))
	}
	return name
}
