package core

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// DefaultMaxFileSize is the largest payload accepted for import (10MB).
const DefaultMaxFileSize int64 = 10 * 1024 * 1024

// DefaultImportTimeout bounds one parse operation.
const DefaultImportTimeout = 2 * time.Minute

// DefaultSessionIdleTTL is how long an untouched session is kept.
const DefaultSessionIdleTTL = 2 * time.Hour

// ServiceConfig tunes import limits. Zero values select defaults.
type ServiceConfig struct {
	MaxFileSize          int64
	MaxConcurrentImports int
	ImportWait           time.Duration
	ImportTimeout        time.Duration
	SessionIdleTTL       time.Duration
}

func (c ServiceConfig) withDefaults() ServiceConfig {
	if c.MaxFileSize <= 0 {
		c.MaxFileSize = DefaultMaxFileSize
	}
	if c.ImportTimeout <= 0 {
		c.ImportTimeout = DefaultImportTimeout
	}
	if c.SessionIdleTTL <= 0 {
		c.SessionIdleTTL = DefaultSessionIdleTTL
	}
	return c
}

// Service provides import sessions and task operations for all users.
type Service struct {
	store   TaskStore
	limiter *ImportLimiter
	cfg     ServiceConfig
	now     func() time.Time

	mu       sync.Mutex
	sessions map[string]*ImportSession
}

// NewService creates a Service backed by store.
func NewService(store TaskStore, cfg ServiceConfig) *Service {
	cfg = cfg.withDefaults()
	return &Service{
		store:    store,
		limiter:  NewImportLimiter(cfg.MaxConcurrentImports, cfg.ImportWait),
		cfg:      cfg,
		now:      time.Now,
		sessions: make(map[string]*ImportSession),
	}
}

// Limiter exposes the import limiter for status reporting and shutdown.
func (s *Service) Limiter() *ImportLimiter {
	return s.limiter
}

// MaxFileSize returns the configured payload limit.
func (s *Service) MaxFileSize() int64 {
	return s.cfg.MaxFileSize
}

// Session returns the user's import session, creating it if needed, and
// marks it as used.
func (s *Service) Session(userID string) *ImportSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessionLocked(userID)
}

func (s *Service) sessionLocked(userID string) *ImportSession {
	sess, ok := s.sessions[userID]
	if !ok {
		sess = NewImportSession(userID)
		s.sessions[userID] = sess
	}
	sess.touch(s.now())
	return sess
}

// hold returns the user's session already counted as in flight, so
// SweepIdle cannot drop it between lookup and parse. Call release when the
// import is done.
func (s *Service) hold(userID string) (sess *ImportSession, release func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess = s.sessionLocked(userID)
	sess.inflight.Add(1)
	return sess, func() { sess.inflight.Add(-1) }
}

// CloseSession discards the user's session. Returns false if none existed.
func (s *Service) CloseSession(userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[userID]; !ok {
		return false
	}
	delete(s.sessions, userID)
	return true
}

// SessionCount returns the number of open sessions.
func (s *Service) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// ImportFile detects the file kind from fileName, parses payload and
// replaces the user's pending drafts. The returned Preview reflects the
// session after the attempt, including any recorded error.
func (s *Service) ImportFile(ctx context.Context, userID, fileName string, payload []byte) (Preview, error) {
	sess, release := s.hold(userID)
	err := s.importFile(ctx, sess, fileName, payload)
	release()
	return sess.Snapshot(), err
}

func (s *Service) importFile(ctx context.Context, sess *ImportSession, fileName string, payload []byte) error {
	if int64(len(payload)) > s.cfg.MaxFileSize {
		return sess.Fail(fmt.Errorf("%w: %d bytes exceeds %d", ErrFileTooLarge, len(payload), s.cfg.MaxFileSize))
	}

	kind, err := DetectKind(fileName)
	if err != nil {
		return sess.Fail(err)
	}

	err = s.run(ctx, sess, func(ctx context.Context) error {
		return sess.RunFileImport(ctx, payload, kind)
	})

	logImport(ctx, sess, "file", err, "file_name", fileName, "kind", kind.String(), "bytes", len(payload))
	return err
}

// ImportText parses pipe-delimited text and replaces the user's pending
// drafts.
func (s *Service) ImportText(ctx context.Context, userID, text string) (Preview, error) {
	sess, release := s.hold(userID)
	err := s.importText(ctx, sess, text)
	release()
	return sess.Snapshot(), err
}

func (s *Service) importText(ctx context.Context, sess *ImportSession, text string) error {
	if int64(len(text)) > s.cfg.MaxFileSize {
		return sess.Fail(fmt.Errorf("%w: %d bytes exceeds %d", ErrFileTooLarge, len(text), s.cfg.MaxFileSize))
	}

	err := s.run(ctx, sess, func(ctx context.Context) error {
		return sess.RunTextImport(ctx, text)
	})

	logImport(ctx, sess, "text", err, "bytes", len(text))
	return err
}

// run executes parse under the import limiter and timeout.
func (s *Service) run(ctx context.Context, sess *ImportSession, parse func(context.Context) error) error {
	if err := s.limiter.Acquire(ctx); err != nil {
		return sess.Fail(err)
	}
	defer s.limiter.Release()

	ctx, cancel := context.WithTimeout(ctx, s.cfg.ImportTimeout)
	defer cancel()

	return parse(ctx)
}

func logImport(ctx context.Context, sess *ImportSession, source string, err error, attrs ...any) {
	attrs = append(attrs, "user_id", sess.UserID, "source", source, "pending", sess.PendingCount())
	if err != nil {
		slog.WarnContext(ctx, "import rejected", append(attrs, "error", err, "code", MapError(err).Code)...)
		return
	}
	slog.InfoContext(ctx, "import parsed", attrs...)
}

// Preview returns the user's session state.
func (s *Service) Preview(userID string) Preview {
	return s.Session(userID).Snapshot()
}

// Clear discards the user's pending drafts.
func (s *Service) Clear(userID string) Preview {
	sess := s.Session(userID)
	sess.ClearPending()
	return sess.Snapshot()
}

// Commit creates a custom task for each of the user's pending drafts.
func (s *Service) Commit(ctx context.Context, userID string) (CommitResult, error) {
	sess := s.Session(userID)
	result, err := sess.Commit(ctx, SinkFor(s.store, userID))
	if err != nil {
		slog.WarnContext(ctx, "import commit failed",
			"user_id", userID,
			"committed", result.Committed,
			"remaining", result.Remaining,
			"error", err,
		)
		return result, err
	}
	slog.InfoContext(ctx, "import committed",
		"user_id", userID,
		"committed", result.Committed,
		"duration_ms", result.Duration.Milliseconds(),
	)
	return result, nil
}

// SweepIdle removes sessions untouched for longer than the idle TTL.
// Sessions with a parse in flight are kept. Returns the number removed.
func (s *Service) SweepIdle() int {
	cutoff := s.now().Add(-s.cfg.SessionIdleTTL)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, sess := range s.sessions {
		if sess.Processing() || sess.LastUsed().After(cutoff) {
			continue
		}
		delete(s.sessions, id)
		removed++
	}
	return removed
}
