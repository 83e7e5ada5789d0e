package core

// session.go holds the per-user import state between parse and commit.
//
// A session owns at most one set of pending drafts. Every parse replaces
// that set wholesale; nothing is merged across parses. Commit pushes the
// drafts to a TaskSink one at a time in order and is not atomic: drafts
// created before a failing one stay created.

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// Preview is a snapshot of a session for display.
type Preview struct {
	Drafts     []TaskDraft  `json:"drafts"`
	Report     ImportReport `json:"report"`
	Err        error        `json:"-"`
	Processing bool         `json:"processing"`

	// Stale is set when the last import failed and Drafts are left over
	// from an earlier one.
	Stale bool `json:"stale"`
}

// ImportSession is the import state for one user.
type ImportSession struct {
	UserID string

	mu       sync.Mutex
	pending  []TaskDraft
	report   ImportReport
	err      error
	lastUsed time.Time

	// parses in flight; Processing is true while positive
	inflight atomic.Int32
}

// NewImportSession creates an empty session.
func NewImportSession(userID string) *ImportSession {
	return &ImportSession{
		UserID:   userID,
		lastUsed: time.Now(),
	}
}

// RunFileImport reads payload with the reader for kind and replaces the
// pending drafts with the rows that pass validation.
//
// If the reader fails, pending drafts are left as they were and the error
// (wrapping ErrFileParse unless it is a context error) is recorded. If the
// reader succeeds but no row validates, pending becomes empty and
// ErrNoValidRows is recorded. On success the recorded error is cleared.
func (s *ImportSession) RunFileImport(ctx context.Context, payload []byte, kind FileKind) (err error) {
	s.inflight.Add(1)
	defer s.inflight.Add(-1)

	if kind == KindText {
		return s.Fail(fmt.Errorf("%w: %s", ErrUnsupportedFileType, kind))
	}
	reader, ok := ReaderFor(kind)
	if !ok {
		return s.Fail(fmt.Errorf("%w: %s", ErrUnsupportedFileType, kind))
	}

	defer func() {
		if r := recover(); r != nil {
			err = s.Fail(fmt.Errorf("%w: %v", ErrFileParse, r))
		}
	}()

	res, err := reader.Read(ctx, payload)
	if err != nil {
		if ctx.Err() == nil && !errors.Is(err, ErrFileParse) {
			err = fmt.Errorf("%w: %w", ErrFileParse, err)
		}
		return s.Fail(err)
	}
	return s.publish(res)
}

// RunTextImport parses pipe-delimited text and replaces the pending drafts
// with the lines that pass validation. Blank text records ErrEmptyInput and
// leaves pending drafts untouched.
func (s *ImportSession) RunTextImport(ctx context.Context, text string) (err error) {
	s.inflight.Add(1)
	defer s.inflight.Add(-1)

	defer func() {
		if r := recover(); r != nil {
			err = s.Fail(fmt.Errorf("%w: %v", ErrTextParse, r))
		}
	}()

	res, err := ReadText(ctx, text)
	if err != nil {
		if ctx.Err() == nil && !errors.Is(err, ErrEmptyInput) {
			err = fmt.Errorf("%w: %w", ErrTextParse, err)
		}
		return s.Fail(err)
	}
	return s.publish(res)
}

// publish validates rows and installs the result as the pending set.
func (s *ImportSession) publish(res ReadResult) error {
	drafts, report := ValidateRows(res.Rows)
	report.SkippedLines = res.SkippedLines

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pending = drafts
	s.report = report
	s.lastUsed = time.Now()
	if len(drafts) == 0 {
		s.err = ErrNoValidRows
	} else {
		s.err = nil
	}

	slog.Debug("import parsed",
		"user_id", s.UserID,
		"total_rows", report.TotalRows,
		"accepted", report.Accepted,
		"rejected", report.Rejected,
		"skipped_lines", report.SkippedLines,
	)
	return s.err
}

// Fail records err as the session's error without touching pending drafts.
// It returns err for convenience.
func (s *ImportSession) Fail(err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.err = err
	s.lastUsed = time.Now()
	return err
}

func (s *ImportSession) touch(t time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastUsed = t
}

// ClearPending discards pending drafts. The recorded error is kept.
func (s *ImportSession) ClearPending() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pending = nil
	s.report = ImportReport{}
	s.lastUsed = time.Now()
}

// Commit sends every pending draft to sink, in order. After full success
// pending is empty. If sink fails, the drafts already created stay created,
// the failing draft and those after it remain pending, and the error is
// returned. An empty session returns ErrNothingToCommit.
func (s *ImportSession) Commit(ctx context.Context, sink TaskSink) (CommitResult, error) {
	start := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastUsed = start
	total := len(s.pending)
	if total == 0 {
		return CommitResult{}, ErrNothingToCommit
	}

	for i, draft := range s.pending {
		if err := ctx.Err(); err != nil {
			s.pending = append([]TaskDraft(nil), s.pending[i:]...)
			return CommitResult{Committed: i, Remaining: total - i, Duration: time.Since(start)}, err
		}
		if err := sink.CreateTask(ctx, draft); err != nil {
			s.pending = append([]TaskDraft(nil), s.pending[i:]...)
			return CommitResult{Committed: i, Remaining: total - i, Duration: time.Since(start)},
				fmt.Errorf("commit task %d of %d: %w", i+1, total, err)
		}
	}

	s.pending = nil
	s.report = ImportReport{}
	return CommitResult{Committed: total, Duration: time.Since(start)}, nil
}

// Snapshot returns a copy of the session state.
func (s *ImportSession) Snapshot() Preview {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Preview{
		Drafts:     append([]TaskDraft{}, s.pending...),
		Report:     s.report,
		Err:        s.err,
		Processing: s.Processing(),
		Stale:      s.err != nil && len(s.pending) > 0,
	}
}

// Processing reports whether a parse is running.
func (s *ImportSession) Processing() bool {
	return s.inflight.Load() > 0
}

// PendingCount returns the number of pending drafts.
func (s *ImportSession) PendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// LastUsed returns when the session was last modified.
func (s *ImportSession) LastUsed() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastUsed
}
